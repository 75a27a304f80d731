package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hubspot-mcp/hubspot-mcp/internal/config"
	"github.com/hubspot-mcp/hubspot-mcp/internal/crm"
	"github.com/hubspot-mcp/hubspot-mcp/internal/hubspot"
	"github.com/hubspot-mcp/hubspot-mcp/internal/server"
	"github.com/hubspot-mcp/hubspot-mcp/internal/tools"
)

// Version is reported to MCP clients during initialization.
var Version = "1.0.0"

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hubspot-mcp",
		Short: "HubSpot CRM MCP server",
		Long: `hubspot-mcp exposes HubSpot contacts, companies, deals and email as MCP tools.
Without a subcommand it serves MCP over stdin/stdout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")

	stdioCmd := NewStdioCommand()
	rootCmd.RunE = stdioCmd.RunE

	rootCmd.AddCommand(stdioCmd)
	rootCmd.AddCommand(NewHTTPCommand())
	rootCmd.AddCommand(NewToolsCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads configuration and applies its log level unless --debug
// already raised it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if debug, _ := cmd.Flags().GetBool("debug"); !debug {
		zerolog.SetGlobalLevel(cfg.Level())
	}
	return cfg, nil
}

// newDispatcher wires the HubSpot client, the record service and the tool
// handlers together.
func newDispatcher(cfg *config.Config) (*server.Dispatcher, error) {
	httpClient := http.DefaultClient
	if cfg.HubSpot.Timeout > 0 {
		httpClient = &http.Client{Timeout: cfg.HubSpot.Timeout}
	}

	client, err := hubspot.New(cfg.HubSpot.BaseURL, cfg.Credentials(), httpClient)
	if err != nil {
		return nil, fmt.Errorf("create hubspot client: %w", err)
	}

	var sender crm.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		sender = crm.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.From)
	}

	svc := crm.NewService(client, sender)
	if svc.HasSender() {
		log.Info().Msg("Email delivery enabled through Resend")
	} else {
		log.Info().Msg("RESEND_API_KEY not set; send_email will return a placeholder result")
	}
	return server.NewDispatcher(log.Logger, tools.All(svc)...), nil
}
