// Package tools declares the HubSpot MCP tools and executes them against the
// record service.
package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Descriptor describes one callable tool.
type Descriptor struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	InputSchema *jsonschema.Schema   `json:"inputSchema"`
	Annotations *mcp.ToolAnnotations `json:"annotations,omitempty"`
}

// Handler owns the tools of one entity kind.
type Handler interface {
	// Tools returns the handler's fixed descriptor list.
	Tools() []Descriptor
	// Execute runs the named tool. Names the handler does not own fail with
	// ErrUnknownTool.
	Execute(ctx context.Context, name string, args map[string]any) (*Result, error)
}

// ErrUnknownTool is returned for a tool name nobody declares.
var ErrUnknownTool = errors.New("unknown tool")

// UnknownToolError wraps ErrUnknownTool with the offending name.
func UnknownToolError(name string) error {
	return fmt.Errorf("%w: %s", ErrUnknownTool, name)
}

// MissingArgumentError reports a required argument that was absent or empty.
type MissingArgumentError struct {
	Field string
}

func (e *MissingArgumentError) Error() string {
	return "missing required argument: " + e.Field
}

// Result is the envelope every tool returns on success.
type Result struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Count     *int   `json:"count,omitempty"`
	Query     string `json:"query,omitempty"`
	HasMore   *bool  `json:"hasMore,omitempty"`
	NextAfter string `json:"nextAfter,omitempty"`
	Message   string `json:"message,omitempty"`
	ContactID string `json:"contactId,omitempty"`
	Limit     *int   `json:"limit,omitempty"`
}

func dataResult(data any, message string) *Result {
	return &Result{Success: true, Data: data, Message: message}
}

// All returns one handler per entity kind in registration order.
func All(svc Service) []Handler {
	return []Handler{
		NewContactHandler(svc),
		NewCompanyHandler(svc),
		NewDealHandler(svc),
		NewEmailHandler(svc),
	}
}

// cloneDescriptors copies the descriptors together with their schemas and
// annotations, so callers cannot alter the package tables.
func cloneDescriptors(in []Descriptor) []Descriptor {
	out := make([]Descriptor, len(in))
	for i, desc := range in {
		desc.InputSchema = desc.InputSchema.CloneSchemas()
		if desc.Annotations != nil {
			a := *desc.Annotations
			desc.Annotations = &a
		}
		out[i] = desc
	}
	return out
}
