package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/gvoice-mcp/pkg/voice"
)

// ListPhonesInput is the input for gvoice_list_phones.
type ListPhonesInput struct {
	Account string `json:"account,omitempty" jsonschema:"Account name (default: the configured default account)"`
	State   string `json:"state,omitempty" jsonschema:"Filter: enabled, disabled, or all (default: all)"`
	Refresh bool   `json:"refresh,omitempty" jsonschema:"Re-fetch settings instead of using the cached copy"`
}

// ListPhonesOutput is the output for gvoice_list_phones.
type ListPhonesOutput struct {
	Account  string        `json:"account"`
	Phones   []voice.Phone `json:"phones,omitzero"`
	Enabled  int           `json:"enabled"`
	Disabled int           `json:"disabled"`
}

// SetPhoneInput is the input for gvoice_set_phone.
type SetPhoneInput struct {
	Account string `json:"account,omitempty" jsonschema:"Account name (default: the configured default account)"`
	PhoneID int64  `json:"phone_id" jsonschema:"required,Phone id from gvoice_list_phones"`
	Enabled *bool  `json:"enabled" jsonschema:"required,true to forward calls to the phone, false to stop"`
	Refresh bool   `json:"refresh,omitempty" jsonschema:"Re-fetch settings first so the resent phone record is current"`
}

// SetPhoneOutput is the output for gvoice_set_phone.
type SetPhoneOutput struct {
	Account string      `json:"account"`
	Phone   voice.Phone `json:"phone"`
	Hint    string      `json:"hint,omitempty"`
}

// ToolListPhones lists the forwarding phones of an account.
func ToolListPhones(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListPhonesInput) (*sdkmcp.CallToolResult, ListPhonesOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListPhonesInput) (*sdkmcp.CallToolResult, ListPhonesOutput, error) {
		switch input.State {
		case "", "all", "enabled", "disabled":
		default:
			return nil, ListPhonesOutput{}, ErrInvalidInput("state must be 'enabled', 'disabled', or 'all'")
		}

		acct, err := d.Account(input.Account)
		if err != nil {
			return nil, ListPhonesOutput{}, err
		}
		phones, err := acct.Phones(ctx, input.Refresh)
		if err != nil {
			return nil, ListPhonesOutput{}, WrapVoiceError(err)
		}

		output := ListPhonesOutput{Account: acct.Name()}
		for _, p := range phones {
			if p.Enabled {
				output.Enabled++
			} else {
				output.Disabled++
			}
			if input.State == "enabled" && !p.Enabled || input.State == "disabled" && p.Enabled {
				continue
			}
			output.Phones = append(output.Phones, p)
		}
		return nil, output, nil
	}
}

// ToolSetPhone enables or disables forwarding to one phone.
func ToolSetPhone(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SetPhoneInput) (*sdkmcp.CallToolResult, SetPhoneOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SetPhoneInput) (*sdkmcp.CallToolResult, SetPhoneOutput, error) {
		if input.Enabled == nil {
			return nil, SetPhoneOutput{}, ErrInvalidInput("enabled is required")
		}

		acct, err := d.Account(input.Account)
		if err != nil {
			return nil, SetPhoneOutput{}, err
		}
		phone, err := acct.SetPhone(ctx, input.PhoneID, *input.Enabled, input.Refresh)
		if err != nil {
			return nil, SetPhoneOutput{}, WrapVoiceError(err)
		}

		output := SetPhoneOutput{Account: acct.Name(), Phone: phone}
		if !input.Refresh {
			output.Hint = fmt.Sprintf("phone %d was sent as last fetched; pass refresh=true if it was edited elsewhere", phone.ID)
		}
		return nil, output, nil
	}
}
