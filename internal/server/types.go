package server

import "github.com/hubspot-mcp/hubspot-mcp/internal/tools"

// CallRequest is the body of POST /mcp/call.
type CallRequest struct {
	Name string         `json:"name"`
	Args map[string]any `json:"arguments"`
}

// Content is one block of a tool response. Only text blocks are produced.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallResponse is a protocol-level tool result.
type CallResponse struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// ListToolsResponse is the body of GET /mcp/tools.
type ListToolsResponse struct {
	Tools []tools.Descriptor `json:"tools"`
}

func textResponse(text string) CallResponse {
	return CallResponse{Content: []Content{{Type: "text", Text: text}}}
}

func errorResponse(text string) CallResponse {
	return CallResponse{Content: []Content{{Type: "text", Text: text}}, IsError: true}
}
