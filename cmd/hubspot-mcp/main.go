// Command hubspot-mcp serves HubSpot CRM tools to MCP clients.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hubspot-mcp/hubspot-mcp/cmd/hubspot-mcp/cli"
)

func main() {
	// stdout belongs to the stdio transport.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cli.Execute()
}
