package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/querytrans/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for querytrans resources.
	uriScheme = "querytrans://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "schemes",
		Name:        "schemes",
		Description: "Conversion schemes that can be applied to query terms",
		MIMEType:    "application/json",
	}, s.handleSchemesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Schemes and spelling ordering used when rewriting queries",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	// Template for explaining a URL-escaped query.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "explain/{query}",
		Name:        "query-explanation",
		Description: "Parsed tree, expanded tree and output of a query",
		MIMEType:    "application/json",
	}, s.handleExplainResource)
}

// handleSchemesResource lists every known scheme.
func (s *Server) handleSchemesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResult(req.Params.URI, domain.KnownSchemes())
}

// handleSettingsResource returns the transform settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type settingsInfo struct {
		Schemes  []domain.Scheme `json:"schemes"`
		Ordering domain.Ordering `json:"ordering"`
	}

	if s.ports.Settings == nil {
		opts := domain.DefaultExpandOptions()
		return jsonResult(req.Params.URI, settingsInfo{Schemes: opts.Schemes, Ordering: opts.Ordering})
	}

	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	return jsonResult(req.Params.URI, settingsInfo{
		Schemes:  settings.Transform.Schemes,
		Ordering: settings.Transform.Ordering,
	})
}

// handleExplainResource explains the query embedded in the URI.
func (s *Server) handleExplainResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	query := extractQuery(req.Params.URI)
	if query == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	exp, err := s.ports.Query.Explain(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("explaining query: %w", err)
	}

	return jsonResult(req.Params.URI, exp)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractQuery extracts the unescaped query from a URI like querytrans://explain/{query}.
func extractQuery(uri string) string {
	const prefix = uriScheme + "explain/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	query, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return query
}
