package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/gvoice-mcp/internal/accounts"
)

// LoginInput is the input for gvoice_login.
type LoginInput struct {
	Account  string `json:"account,omitempty" jsonschema:"Account name (default: the configured default account)"`
	Username string `json:"username,omitempty" jsonschema:"Google account email (default: GV_USERNAME)"`
	Password string `json:"password,omitempty" jsonschema:"Google account password (default: GV_PASSWORD)"`
}

// LoginOutput is the output for gvoice_login.
type LoginOutput struct {
	Account  string `json:"account"`
	LoggedIn bool   `json:"logged_in"`
	State    string `json:"state"`
}

// LogoutInput is the input for gvoice_logout.
type LogoutInput struct {
	Account      string `json:"account,omitempty" jsonschema:"Account name (default: the configured default account)"`
	All          bool   `json:"all,omitempty" jsonschema:"Log out every logged-in account"`
	ResetCookies bool   `json:"reset_cookies,omitempty" jsonschema:"Also discard local cookies (default: false)"`
}

// LogoutOutput is the output for gvoice_logout.
type LogoutOutput struct {
	LoggedOut []string `json:"logged_out,omitzero"`
}

// StatusInput is the input for gvoice_status.
type StatusInput struct {
	Account string `json:"account,omitempty" jsonschema:"Account name (default: all accounts)"`
}

// StatusOutput is the output for gvoice_status.
type StatusOutput struct {
	Accounts []accounts.Status `json:"accounts,omitzero"`
}

// ToolLogin logs an account in, creating it on first use.
func ToolLogin(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input LoginInput) (*sdkmcp.CallToolResult, LoginOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input LoginInput) (*sdkmcp.CallToolResult, LoginOutput, error) {
		username, password := input.Username, input.Password
		if username == "" && password == "" && d.Config != nil {
			username, password = d.Config.Username, d.Config.Password
		}
		if username == "" || password == "" {
			return nil, LoginOutput{}, ErrInvalidInput("username and password are required (or set GV_USERNAME and GV_PASSWORD)")
		}

		name := d.AccountName(input.Account)
		acct, err := d.Accounts.Login(ctx, name, username, password)
		if err != nil {
			return nil, LoginOutput{}, WrapLoginError(err)
		}

		st := acct.Status()
		return nil, LoginOutput{Account: name, LoggedIn: st.LoggedIn, State: st.State}, nil
	}
}

// ToolLogout ends one session or all of them.
func ToolLogout(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input LogoutInput) (*sdkmcp.CallToolResult, LogoutOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input LogoutInput) (*sdkmcp.CallToolResult, LogoutOutput, error) {
		if input.All {
			var names []string
			for _, name := range d.Accounts.Names() {
				if acct, ok := d.Accounts.Get(name); ok && acct.IsLoggedIn() {
					names = append(names, name)
				}
			}
			if err := d.Accounts.LogoutAll(ctx, input.ResetCookies); err != nil {
				return nil, LogoutOutput{}, WrapVoiceError(err)
			}
			return nil, LogoutOutput{LoggedOut: names}, nil
		}

		acct, err := d.Account(input.Account)
		if err != nil {
			return nil, LogoutOutput{}, err
		}
		if err := acct.Logout(ctx, input.ResetCookies); err != nil {
			return nil, LogoutOutput{}, WrapVoiceError(err)
		}
		return nil, LogoutOutput{LoggedOut: []string{acct.Name()}}, nil
	}
}

// ToolStatus reports session state without touching the network.
func ToolStatus(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input StatusInput) (*sdkmcp.CallToolResult, StatusOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input StatusInput) (*sdkmcp.CallToolResult, StatusOutput, error) {
		if input.Account != "" {
			acct, err := d.Account(input.Account)
			if err != nil {
				return nil, StatusOutput{}, err
			}
			return nil, StatusOutput{Accounts: []accounts.Status{acct.Status()}}, nil
		}

		var output StatusOutput
		for _, name := range d.Accounts.Names() {
			if acct, ok := d.Accounts.Get(name); ok {
				output.Accounts = append(output.Accounts, acct.Status())
			}
		}
		return nil, output, nil
	}
}
