package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: gvoice_login
	AddTool(srv, &sdkmcp.Tool{
		Name:        "gvoice_login",
		Description: "Log a Google Voice account in. Runs the two-step username/password form login and succeeds only if the service issues a session cookie. Credentials default to GV_USERNAME/GV_PASSWORD. Accounts are independent sessions keyed by the account name.",
	}, ToolLogin(d))

	// Tool 2: gvoice_logout
	AddTool(srv, &sdkmcp.Tool{
		Name:        "gvoice_logout",
		Description: "Log out one account, or every logged-in account with all=true. Set reset_cookies=true to also drop local cookies.",
	}, ToolLogout(d))

	// Tool 3: gvoice_status
	AddTool(srv, &sdkmcp.Tool{
		Name:        "gvoice_status",
		Description: "Report whether accounts hold a session cookie, their login state, and when settings were last fetched. Makes no network calls.",
	}, ToolStatus(d))

	// Tool 4: gvoice_list_phones
	AddTool(srv, &sdkmcp.Tool{
		Name:        "gvoice_list_phones",
		Description: "List forwarding phones with id, name, number and enabled flag. Settings are cached per account after the first fetch; set refresh=true to re-fetch. Filter with state=enabled|disabled.",
	}, ToolListPhones(d))

	// Tool 5: gvoice_set_phone
	AddTool(srv, &sdkmcp.Tool{
		Name:        "gvoice_set_phone",
		Description: "Enable or disable call forwarding to one phone by phone_id. The service has no partial update: the whole phone record is resent as last fetched, so pass refresh=true if the phone may have changed since gvoice_list_phones. On success the cached phone is updated without re-fetching.",
	}, ToolSetPhone(d))

	// Tool 6: gvoice_query_settings
	AddTool(srv, &sdkmcp.Tool{
		Name:        "gvoice_query_settings",
		Description: "Run a jq expression over the raw settings payload (settings_response.user_preferences.{forwarding[], default_call_settings.disabled_forwarding_id}). Returns values, per-output errors, and truncated when results exceed QUERY_MAX_RESULTS.",
	}, ToolQuerySettings(d))
}
