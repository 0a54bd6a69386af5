// Package mcp provides an MCP (Model Context Protocol) server adapter for querytrans.
// It lets AI assistants rewrite search queries and count words in archived chats.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
