package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubspot-mcp/hubspot-mcp/internal/crm"
	"github.com/hubspot-mcp/hubspot-mcp/internal/hubspot"
	"github.com/hubspot-mcp/hubspot-mcp/internal/tools"
)

// stubClient answers every CRM call with a fixed record, or err when set.
type stubClient struct {
	created map[string]any
	calls   int
	err     error
}

func (c *stubClient) GetPage(context.Context, hubspot.ObjectKind, int, string, []string) (*hubspot.Page, error) {
	c.calls++
	return &hubspot.Page{Results: []hubspot.Object{{ID: "1"}}}, c.err
}

func (c *stubClient) GetByID(_ context.Context, _ hubspot.ObjectKind, id string, _ []string) (*hubspot.Object, error) {
	c.calls++
	return &hubspot.Object{ID: id}, c.err
}

func (c *stubClient) Create(_ context.Context, _ hubspot.ObjectKind, properties map[string]any) (*hubspot.Object, error) {
	c.calls++
	c.created = properties
	return &hubspot.Object{ID: "100", Properties: properties}, c.err
}

func (c *stubClient) Update(_ context.Context, _ hubspot.ObjectKind, id string, properties map[string]any) (*hubspot.Object, error) {
	c.calls++
	return &hubspot.Object{ID: id, Properties: properties}, c.err
}

func (c *stubClient) Search(context.Context, hubspot.ObjectKind, hubspot.SearchRequest) (*hubspot.Page, error) {
	c.calls++
	return &hubspot.Page{}, c.err
}

func newDispatcher(client crm.Client) *Dispatcher {
	return NewDispatcher(zerolog.Nop(), tools.All(crm.NewService(client, nil))...)
}

func TestHealth(t *testing.T) {
	s := New(Config{}, newDispatcher(&stubClient{}), zerolog.Nop())
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestToolsAndCall(t *testing.T) {
	client := &stubClient{}
	s := New(Config{Token: "x"}, newDispatcher(client), zerolog.Nop())

	// Unauthorized
	req := httptest.NewRequest(http.MethodGet, "/mcp/tools", nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	// Authorized tools
	req = httptest.NewRequest(http.MethodGet, "/mcp/tools", nil)
	req.Header.Set("Authorization", "Bearer x")
	rr = httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var list struct {
		Tools []struct {
			Name        string         `json:"name"`
			InputSchema map[string]any `json:"inputSchema"`
		} `json:"tools"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
	assert.Len(t, list.Tools, 15)
	assert.Equal(t, "get_contacts", list.Tools[0].Name)
	assert.Equal(t, "object", list.Tools[0].InputSchema["type"])

	// Call create_contact
	body, _ := json.Marshal(map[string]any{
		"name":      "create_contact",
		"arguments": map[string]any{"email": "a@b.com"},
	})
	req = httptest.NewRequest(http.MethodPost, "/mcp/call", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer x")
	rr = httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp CallResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.False(t, resp.IsError)
	require.Len(t, resp.Content, 1)
	assert.Equal(t, "text", resp.Content[0].Type)
	assert.Contains(t, resp.Content[0].Text, `"message": "Contact created successfully"`)
	assert.Equal(t, map[string]any{"email": "a@b.com"}, client.created)
}

func TestCallInvalidJSON(t *testing.T) {
	s := New(Config{}, newDispatcher(&stubClient{}), zerolog.Nop())
	req := httptest.NewRequest(http.MethodPost, "/mcp/call", strings.NewReader("{"))
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCallUnknownToolOverHTTP(t *testing.T) {
	s := New(Config{}, newDispatcher(&stubClient{}), zerolog.Nop())
	body := `{"name":"delete_everything","arguments":{}}`
	req := httptest.NewRequest(http.MethodPost, "/mcp/call", strings.NewReader(body))
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp CallResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.IsError)
	assert.Equal(t, "Error executing tool delete_everything: unknown tool: delete_everything", resp.Content[0].Text)
}

func TestDispatcherResults(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		err      error
		isError  bool
		contains string
	}{
		{
			name:     "success is indented json",
			tool:     "get_contact",
			args:     map[string]any{"contactId": "7"},
			contains: "{\n  \"success\": true,\n  \"data\": {\n    \"id\": \"7\"",
		},
		{
			name:     "unknown tool",
			tool:     "nope",
			isError:  true,
			contains: "Error executing tool nope: unknown tool: nope",
		},
		{
			name:     "missing argument",
			tool:     "create_deal",
			args:     map[string]any{"dealname": "D"},
			isError:  true,
			contains: "Error executing tool create_deal: missing required argument: dealstage",
		},
		{
			name:     "upstream failure",
			tool:     "get_deals",
			err:      &hubspot.APIError{StatusCode: 429, Message: "You have reached your secondly limit."},
			isError:  true,
			contains: "Error executing tool get_deals: hubspot api status 429: You have reached your secondly limit.",
		},
		{
			name:     "nil arguments",
			tool:     "get_companies",
			contains: `"count": 1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDispatcher(&stubClient{err: tt.err})
			resp := d.CallTool(context.Background(), tt.tool, tt.args)
			assert.Equal(t, tt.isError, resp.IsError)
			require.Len(t, resp.Content, 1)
			assert.Contains(t, resp.Content[0].Text, tt.contains)
		})
	}
}

func TestValidationFailureNeverReachesClient(t *testing.T) {
	client := &stubClient{}
	d := newDispatcher(client)
	for _, desc := range d.ListTools() {
		if len(desc.InputSchema.Required) == 0 {
			continue
		}
		resp := d.CallTool(context.Background(), desc.Name, map[string]any{})
		assert.True(t, resp.IsError, desc.Name)
		assert.Contains(t, resp.Content[0].Text, desc.InputSchema.Required[0], desc.Name)
	}
	assert.Zero(t, client.calls)
}

type fakeHandler struct {
	id    string
	names []string
}

func (h *fakeHandler) Tools() []tools.Descriptor {
	out := make([]tools.Descriptor, 0, len(h.names))
	for _, n := range h.names {
		out = append(out, tools.Descriptor{Name: n, Description: h.id})
	}
	return out
}

func (h *fakeHandler) Execute(_ context.Context, name string, _ map[string]any) (*tools.Result, error) {
	if name == "fail" {
		return nil, errors.New("handler exploded")
	}
	return &tools.Result{Success: true, Data: h.id}, nil
}

func TestFirstRegistrantWins(t *testing.T) {
	first := &fakeHandler{id: "first", names: []string{"shared", "a"}}
	second := &fakeHandler{id: "second", names: []string{"b", "shared"}}
	d := NewDispatcher(zerolog.Nop(), first, second)

	var names, owners []string
	for _, desc := range d.ListTools() {
		names = append(names, desc.Name)
		owners = append(owners, desc.Description)
	}
	assert.Equal(t, []string{"shared", "a", "b"}, names)
	assert.Equal(t, []string{"first", "first", "second"}, owners)

	resp := d.CallTool(context.Background(), "shared", nil)
	assert.False(t, resp.IsError)
	assert.Contains(t, resp.Content[0].Text, `"data": "first"`)
}

func TestOwns(t *testing.T) {
	d := newDispatcher(&stubClient{})
	assert.True(t, d.Owns("get_deal"))
	assert.False(t, d.Owns("delete_everything"))
}

func TestHandlerErrorIsFlagged(t *testing.T) {
	d := NewDispatcher(zerolog.Nop(), &fakeHandler{id: "h", names: []string{"fail"}})
	resp := d.CallTool(context.Background(), "fail", nil)
	assert.Equal(t, errorResponse("Error executing tool fail: handler exploded"), resp)
}
