package prompts

import (
	"context"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptText(t *testing.T, res *sdkmcp.GetPromptResult) string {
	t.Helper()
	require.Len(t, res.Messages, 1)
	text, ok := res.Messages[0].Content.(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleBasePrompt(t *testing.T) {
	cfg := &Config{DefaultAccount: "default", CredentialsConfigured: true}
	res, err := HandleBasePrompt(cfg)(context.Background(), &sdkmcp.GetPromptRequest{Params: &sdkmcp.GetPromptParams{}})
	require.NoError(t, err)

	text := promptText(t, res)
	assert.Contains(t, text, "`default` account")
	assert.Contains(t, text, "configured credentials")

	cfg.CredentialsConfigured = false
	res, err = HandleBasePrompt(cfg)(context.Background(), &sdkmcp.GetPromptRequest{Params: &sdkmcp.GetPromptParams{}})
	require.NoError(t, err)
	assert.Contains(t, promptText(t, res), "No credentials are configured")
}

func TestHandleToggleForwarding(t *testing.T) {
	cfg := &Config{DefaultAccount: "default"}
	req := &sdkmcp.GetPromptRequest{Params: &sdkmcp.GetPromptParams{
		Name: "toggle_forwarding",
		Arguments: map[string]string{
			"account":      "work",
			"phone_hint":   "Desk",
			"target_state": "off",
		},
	}}

	res, err := HandleToggleForwarding(cfg)(context.Background(), req)
	require.NoError(t, err)

	text := promptText(t, res)
	assert.Contains(t, text, `gvoice_status(account: "work")`)
	assert.Contains(t, text, `matching "Desk"`)
	assert.Contains(t, text, "enabled: false)")
	assert.Contains(t, text, "ask the user for credentials")
}

func TestHandleToggleForwarding_NoArguments(t *testing.T) {
	cfg := &Config{DefaultAccount: "default", CredentialsConfigured: true}
	res, err := HandleToggleForwarding(cfg)(context.Background(), &sdkmcp.GetPromptRequest{Params: &sdkmcp.GetPromptParams{}})
	require.NoError(t, err)

	text := promptText(t, res)
	assert.Contains(t, text, `gvoice_status(account: "default")`)
	assert.Contains(t, text, "enabled: <true|false>")
}
