package mcp

import (
	"github.com/custodia-labs/querytrans/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query rewrites search queries.
	Query driving.QueryService

	// WordCount counts words in archived messages.
	WordCount driving.WordCountService

	// Settings exposes the current configuration.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	// WordCount and Settings are optional
	return nil
}
