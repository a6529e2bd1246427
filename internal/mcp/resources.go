package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/gvoice-mcp/internal/mcp/tools"
)

// Resource URI scheme: gvoice://
// Supported URIs:
//   gvoice://settings/{account}
//   gvoice://phones/{account}

const resourceScheme = "gvoice://"

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: "gvoice://settings/{account}",
		Name:        "Voice Settings",
		Description: "Raw settings payload for a logged-in account, with the response prefix removed. Served from the account's cached copy; fetched once if nothing is cached. Use gvoice_query_settings to extract parts of it.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.4,
		},
	}, s.handleResourceSettings)

	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: "gvoice://phones/{account}",
		Name:        "Forwarding Phones",
		Description: "Forwarding phones of an account with their enabled flag. Same data as gvoice_list_phones.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.6,
		},
	}, s.handleResourcePhones)
}

// Resource handlers

func (s *Server) handleResourceSettings(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	acct, err := s.deps.Account(params["account"])
	if err != nil {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}
	raw, err := acct.SettingsJSON(ctx, false)
	if err != nil {
		return nil, tools.WrapVoiceError(err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: tools.MimeJSON,
				Text:     string(raw),
			},
		},
	}, nil
}

func (s *Server) handleResourcePhones(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	acct, err := s.deps.Account(params["account"])
	if err != nil {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}
	phones, err := acct.Phones(ctx, false)
	if err != nil {
		return nil, tools.WrapVoiceError(err)
	}

	content := map[string]any{
		"account": acct.Name(),
		"phones":  phones,
	}
	return toResourceResult(req.Params.URI, content)
}

// Helper functions

// parseResourceURI extracts parameters from a gvoice:// URI.
func parseResourceURI(uri string) (map[string]string, error) {
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, tools.ErrInvalidInput("invalid URI scheme: expected " + resourceScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, resourceScheme), "/")
	resourceType := parts[0]

	switch resourceType {
	case "settings", "phones":
		if len(parts) < 2 || parts[1] == "" {
			return nil, tools.ErrInvalidInput(resourceType + " URI requires an account name")
		}
		return map[string]string{"account": parts[1]}, nil
	case "":
		return nil, tools.ErrInvalidInput("empty resource path")
	default:
		return nil, tools.ErrInvalidInput(fmt.Sprintf("unknown resource type: %s", resourceType))
	}
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
