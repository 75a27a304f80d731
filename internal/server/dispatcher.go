package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hubspot-mcp/hubspot-mcp/internal/tools"
)

// Dispatcher routes tool calls by name to the handler that declared them.
// The routing table is built once and read-only afterwards.
type Dispatcher struct {
	handlers []tools.Handler
	owners   map[string]tools.Handler
	log      zerolog.Logger
}

// NewDispatcher registers every tool of every handler. When two handlers
// declare the same name the first one keeps it.
func NewDispatcher(log zerolog.Logger, handlers ...tools.Handler) *Dispatcher {
	d := &Dispatcher{
		handlers: handlers,
		owners:   make(map[string]tools.Handler),
		log:      log,
	}
	for _, h := range handlers {
		for _, desc := range h.Tools() {
			if _, taken := d.owners[desc.Name]; taken {
				log.Warn().Str("tool", desc.Name).Msg("Tool name already registered, keeping first handler")
				continue
			}
			d.owners[desc.Name] = h
		}
	}
	return d
}

// ListTools returns the descriptors of all handlers in registration order.
// Unlike a plain concatenation, a descriptor whose name was already claimed
// by an earlier handler is left out, so the listing matches what CallTool
// routes to.
func (d *Dispatcher) ListTools() []tools.Descriptor {
	var out []tools.Descriptor
	for _, h := range d.handlers {
		for _, desc := range h.Tools() {
			if d.owners[desc.Name] == h {
				out = append(out, desc)
			}
		}
	}
	return out
}

// CallTool runs the named tool. It never returns an error: unknown names,
// validation failures and upstream errors all come back as an error-flagged
// response.
func (d *Dispatcher) CallTool(ctx context.Context, name string, args map[string]any) CallResponse {
	start := time.Now()
	if args == nil {
		args = map[string]any{}
	}

	res, err := d.execute(ctx, name, args)
	if err != nil {
		d.log.Warn().Err(err).Str("tool", name).Dur("duration", time.Since(start)).Msg("Tool call failed")
		return errorResponse(fmt.Sprintf("Error executing tool %s: %v", name, err))
	}

	text, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		d.log.Error().Err(err).Str("tool", name).Msg("Failed to encode tool result")
		return errorResponse(fmt.Sprintf("Error executing tool %s: %v", name, err))
	}

	d.log.Debug().Str("tool", name).Dur("duration", time.Since(start)).Msg("Tool call completed")
	return textResponse(string(text))
}

// Owns reports whether some handler serves the named tool.
func (d *Dispatcher) Owns(name string) bool {
	_, ok := d.owners[name]
	return ok
}

func (d *Dispatcher) execute(ctx context.Context, name string, args map[string]any) (*tools.Result, error) {
	h, ok := d.owners[name]
	if !ok {
		return nil, tools.UnknownToolError(name)
	}
	return h.Execute(ctx, name, args)
}
