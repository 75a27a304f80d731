package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubspot-mcp/hubspot-mcp/internal/config"
)

func TestToolsCommandPrintsDescriptors(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"tools"})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	require.NotEmpty(t, resp.Tools)
	assert.Equal(t, "get_contacts", resp.Tools[0].Name)
	assert.Equal(t, "get_email_events", resp.Tools[len(resp.Tools)-1].Name)
}

func TestNewDispatcherRequiresCredentials(t *testing.T) {
	_, err := newDispatcher(&config.Config{})
	assert.Error(t, err)

	cfg := &config.Config{HubSpot: config.HubSpotConfig{AccessToken: "pat", BaseURL: "http://localhost"}}
	d, err := newDispatcher(cfg)
	require.NoError(t, err)
	assert.Len(t, d.ListTools(), 15)
}
