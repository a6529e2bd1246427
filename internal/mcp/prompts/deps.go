// Package prompts contains MCP prompt implementations for Google Voice
// call forwarding.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	DefaultAccount        string
	CredentialsConfigured bool
}
