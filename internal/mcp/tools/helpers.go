// Package tools contains MCP tool implementations for Google Voice accounts.
package tools

import (
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// MIME type constant.
const MimeJSON = "application/json"

// MakeJSONToolResult creates a CallToolResult with JSON text content.
func MakeJSONToolResult(v any) (*sdkmcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: string(b)},
		},
	}, nil
}
