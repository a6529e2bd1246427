package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	// Prompt 1: Tool usage guide
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "gvoice_guide",
		Description: "Guide to the Google Voice tools: sessions, settings cache, error codes and jq paths.",
	}, HandleBasePrompt(cfg))

	// Prompt 2: Toggle forwarding
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "toggle_forwarding",
		Description: "RECOMMENDED: Enable or disable call forwarding to one phone. Walks through session check, phone lookup and the toggle.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "account",
				Description: "Account name (default: the configured default account)",
				Required:    false,
			},
			{
				Name:        "phone_hint",
				Description: "Name or number of the phone to change",
				Required:    false,
			},
			{
				Name:        "target_state",
				Description: "enabled or disabled",
				Required:    false,
			},
		},
	}, HandleToggleForwarding(cfg))
}
