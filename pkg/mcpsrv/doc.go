// Package mcpsrv provides an extensible MCP server for Google Voice call
// forwarding.
//
// This package exposes a high-level API for creating and running an MCP server
// with all builtin account, phone and settings tools, prompts, and resources.
// Users can extend the server with custom tools, prompts, and resources using
// functional options.
//
// # Basic Usage
//
// Create a server configured from the environment (GV_USERNAME, GV_PASSWORD,
// GV_LOGIN_URL, ...):
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// When GV_USERNAME and GV_PASSWORD are set, Run logs the default account in
// before serving. A failed startup login is logged and the server still runs.
//
// # Extension
//
// Add custom tools that use the account sessions:
//
//	import mcp "github.com/modelcontextprotocol/go-sdk/mcp"
//
//	type MyInput struct {
//	    Account string `json:"account,omitempty"`
//	}
//
//	type MyOutput struct {
//	    Count int `json:"count"`
//	}
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithDepsTool(&mcp.Tool{Name: "count_phones", Description: "Count phones"},
//	        func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, input MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	            return func(ctx context.Context, req *mcp.CallToolRequest, input MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	                acct, err := d.Accounts.Lookup(input.Account)
//	                if err != nil {
//	                    return nil, MyOutput{}, err
//	                }
//	                phones, err := acct.Phones(ctx, false)
//	                return nil, MyOutput{Count: len(phones)}, err
//	            }
//	        }),
//	)
//
// # Configuration
//
// Configure logging and other options:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/gvoice-mcp.log"),
//	)
package mcpsrv
