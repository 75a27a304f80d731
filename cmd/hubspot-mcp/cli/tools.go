package cli

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hubspot-mcp/hubspot-mcp/internal/server"
	"github.com/hubspot-mcp/hubspot-mcp/internal/tools"
)

func NewToolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the declared tools as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Descriptors never touch the service, so no credentials are needed.
			d := server.NewDispatcher(log.Logger, tools.All(nil)...)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(server.ListToolsResponse{Tools: d.ListTools()})
		},
	}
}
