package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleBasePrompt serves the tool usage guide. The login section depends on
// whether credentials are configured on the server.
func HandleBasePrompt(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var sb strings.Builder

		sb.WriteString("# Google Voice Tool Guide\n\n")

		// --- Sessions ---
		sb.WriteString("## Sessions\n\n")
		fmt.Fprintf(&sb, "- Calls without `account` use the `%s` account\n", cfg.DefaultAccount)
		if cfg.CredentialsConfigured {
			sb.WriteString("- `gvoice_login()` with no arguments logs in with the server's configured credentials\n")
		} else {
			sb.WriteString("- No credentials are configured: pass `username` and `password` to `gvoice_login`\n")
		}
		sb.WriteString("- `gvoice_status()` is free (no network): check it before logging in again\n")
		sb.WriteString("- A session is the `gvx` cookie; it is kept in memory only and lost on restart\n")

		// --- Decision table ---
		sb.WriteString("\n## Which Tool\n\n")
		sb.WriteString("| Goal | Tool |\n")
		sb.WriteString("|------|------|\n")
		sb.WriteString("| See which phones ring | `gvoice_list_phones` |\n")
		sb.WriteString("| Only disabled phones | `gvoice_list_phones(state: \"disabled\")` |\n")
		sb.WriteString("| Turn forwarding on/off | `gvoice_set_phone(phone_id, enabled)` |\n")
		sb.WriteString("| Read any other setting | `gvoice_query_settings(expression)` |\n")
		sb.WriteString("| End the session | `gvoice_logout` |\n")

		// --- Caching ---
		sb.WriteString("\n## Settings Cache\n")
		sb.WriteString("- Settings are fetched once per account and reused until `refresh: true` or logout\n")
		sb.WriteString("- `gvoice_set_phone` resends the whole phone record from that cache; use `refresh: true` when the phone may have been edited elsewhere\n")
		sb.WriteString("- A successful toggle updates the cached phone without re-fetching\n")

		// --- Errors ---
		sb.WriteString("\n## Error Codes\n")
		sb.WriteString("- `NOT_AUTHENTICATED`: call `gvoice_login`\n")
		sb.WriteString("- `LOGIN_FAILED`: the login page changed shape, the password was rejected, or no session cookie was issued. Do not retry in a loop\n")
		sb.WriteString("- `MALFORMED_RESPONSE`: the settings payload did not match the expected shape\n")
		sb.WriteString("- `UPSTREAM_ERROR` / `TIMEOUT`: the service failed; nothing was retried\n")

		// --- JQ Quick Reference ---
		sb.WriteString("\n## JQ Quick Reference\n")
		sb.WriteString("- `.settings_response.user_preferences.forwarding[] | {id, name, phone_number}` - phone summary\n")
		sb.WriteString("- `.settings_response.user_preferences.default_call_settings.disabled_forwarding_id` - exclusion list\n")
		sb.WriteString("- `.settings_response.user_preferences | keys` - available preference groups\n")

		return &sdkmcp.GetPromptResult{
			Description: "Essential guide for the Google Voice tools",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
