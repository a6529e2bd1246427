package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleToggleForwarding walks through enabling or disabling forwarding to a
// phone.
func HandleToggleForwarding(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments

		account := cfg.DefaultAccount
		phoneHint := ""
		target := ""
		if args != nil {
			if v := args["account"]; v != "" {
				account = v
			}
			phoneHint = args["phone_hint"]
			target = strings.ToLower(args["target_state"])
		}

		var sb strings.Builder

		sb.WriteString("# Toggle Google Voice Call Forwarding\n\n")
		sb.WriteString("You are changing which phones a Google Voice number rings. ")
		sb.WriteString("Each change is a single call with no undo, so confirm the phone before toggling.\n\n")

		sb.WriteString("## Workflow Steps\n\n")
		fmt.Fprintf(&sb, "1. **Check the session** -- `gvoice_status(account: %q)`\n", account)
		if cfg.CredentialsConfigured {
			sb.WriteString("   - If not logged in, call `gvoice_login` (configured credentials are used)\n\n")
		} else {
			sb.WriteString("   - If not logged in, ask the user for credentials and call `gvoice_login`\n\n")
		}
		fmt.Fprintf(&sb, "2. **List phones** -- `gvoice_list_phones(account: %q, refresh: true)`\n", account)
		if phoneHint != "" {
			fmt.Fprintf(&sb, "   - Pick the phone matching %q by name or number\n", phoneHint)
		} else {
			sb.WriteString("   - Ask the user which phone if more than one could match\n")
		}
		sb.WriteString("   - Note its `id` and current `enabled` flag\n\n")

		sb.WriteString("3. **Toggle** -- ")
		switch target {
		case "enabled", "on", "true":
			sb.WriteString("`gvoice_set_phone(phone_id: <id>, enabled: true)`\n")
		case "disabled", "off", "false":
			sb.WriteString("`gvoice_set_phone(phone_id: <id>, enabled: false)`\n")
		default:
			sb.WriteString("`gvoice_set_phone(phone_id: <id>, enabled: <true|false>)`\n")
		}
		sb.WriteString("   - Skip the call if the phone is already in the requested state\n\n")

		sb.WriteString("4. **Report** -- state the phone name, number and new state\n")
		sb.WriteString("   - The returned phone reflects the request, not a re-read; call `gvoice_list_phones(refresh: true)` if the user wants confirmation from the service\n")

		sb.WriteString("\n## Rules\n")
		sb.WriteString("- Never repeat `gvoice_login` after `LOGIN_FAILED`; report the error instead\n")
		sb.WriteString("- Never echo the password back to the user\n")

		return &sdkmcp.GetPromptResult{
			Description: "Enable or disable call forwarding to one phone",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
