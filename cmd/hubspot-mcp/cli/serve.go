package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hubspot-mcp/hubspot-mcp/internal/server"
)

func NewStdioCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Serve MCP over stdin/stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			d, err := newDispatcher(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info().Str("name", server.ServerName).Str("version", Version).Msg("HubSpot MCP server running on stdio")
			if err := server.RunStdio(ctx, server.NewMCPServer(d, Version)); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("stdio server: %w", err)
			}
			return nil
		},
	}
}

func NewHTTPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "http",
		Short: "Serve the tool list and tool calls over HTTPS",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.HTTP.TLSCertFile == "" || cfg.HTTP.TLSKeyFile == "" {
				return errors.New("TLS_CERT_FILE and TLS_KEY_FILE are required. Provide TLS cert/key or run behind a TLS-terminating proxy")
			}
			if cfg.HTTP.Token == "" {
				log.Warn().Msg("MCP_TOKEN not set; endpoints will be open. Set MCP_TOKEN to secure.")
			}

			d, err := newDispatcher(cfg)
			if err != nil {
				return err
			}
			srv := server.New(server.Config{Token: cfg.HTTP.Token}, d, log.Logger)

			httpSrv := &http.Server{
				Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
				Handler:           srv.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", httpSrv.Addr).Msg("Starting MCP HTTP server with TLS")
				errCh <- httpSrv.ListenAndServeTLS(cfg.HTTP.TLSCertFile, cfg.HTTP.TLSKeyFile)
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server error: %w", err)
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			log.Info().Msg("Shutting down HTTP server")
			return httpSrv.Shutdown(shutdownCtx)
		},
	}
}
