package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// QuerySettingsInput is the input for gvoice_query_settings.
type QuerySettingsInput struct {
	Account    string `json:"account,omitempty" jsonschema:"Account name (default: the configured default account)"`
	Expression string `json:"expression" jsonschema:"required,jq expression run against the settings payload"`
	Refresh    bool   `json:"refresh,omitempty" jsonschema:"Re-fetch settings instead of using the cached copy"`
}

// QuerySettingsOutput is the output for gvoice_query_settings.
type QuerySettingsOutput struct {
	Values    []any    `json:"values,omitzero"`
	Errors    []string `json:"errors,omitzero"`
	Truncated bool     `json:"truncated,omitempty"`
}

// ToolQuerySettings runs a jq expression over the raw settings payload.
func ToolQuerySettings(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input QuerySettingsInput) (*sdkmcp.CallToolResult, QuerySettingsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input QuerySettingsInput) (*sdkmcp.CallToolResult, QuerySettingsOutput, error) {
		if err := d.Query.ValidateExpression(input.Expression); err != nil {
			return nil, QuerySettingsOutput{}, ErrInvalidInput(err.Error())
		}

		acct, err := d.Account(input.Account)
		if err != nil {
			return nil, QuerySettingsOutput{}, err
		}
		raw, err := acct.SettingsJSON(ctx, input.Refresh)
		if err != nil {
			return nil, QuerySettingsOutput{}, WrapVoiceError(err)
		}

		result, err := d.Query.Query(raw, input.Expression)
		if err != nil {
			return nil, QuerySettingsOutput{}, ErrInvalidInput(err.Error())
		}

		output := QuerySettingsOutput{
			Values:    result.Values,
			Errors:    result.Errors,
			Truncated: result.Truncated,
		}
		res, err := MakeJSONToolResult(output)
		if err != nil {
			return nil, QuerySettingsOutput{}, err
		}
		return res, output, nil
	}
}
