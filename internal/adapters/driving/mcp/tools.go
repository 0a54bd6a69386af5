package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/querytrans/internal/core/domain"
)

// defaultWordLimit caps the words returned by count_words.
const defaultWordLimit = 50

// TransformInput is the input schema for the transform_query tool.
type TransformInput struct {
	Query string `json:"query" jsonschema:"the search query to rewrite"`
}

// TransformOutput is the output schema for the transform_query tool.
type TransformOutput struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// ExplainOutput is the output schema for the explain_query tool.
type ExplainOutput struct {
	Explanation domain.Explanation `json:"explanation"`
}

// CountWordsInput is the input schema for the count_words tool.
type CountWordsInput struct {
	GroupID int64 `json:"group_id" jsonschema:"the chat group to read"`
	After   int64 `json:"after,omitempty" jsonschema:"only count messages sent after this unix time"`
	UserID  int64 `json:"user_id,omitempty" jsonschema:"only count messages from this sender"`
	Limit   int   `json:"limit,omitempty" jsonschema:"maximum number of words to return (default 50)"`
}

// CountWordsOutput is the output schema for the count_words tool.
type CountWordsOutput struct {
	ID       string             `json:"id"`
	Messages int                `json:"messages"`
	Words    []domain.WordCount `json:"words"`
	Count    int                `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "transform_query",
		Description: "Rewrite a search query so every term also matches its Simplified and Traditional Chinese spellings",
	}, s.handleTransform)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "explain_query",
		Description: "Show the parsed and expanded trees of a search query",
	}, s.handleExplain)

	if s.ports.WordCount != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "count_words",
			Description: "Count the most frequent words in a chat group's archived messages",
		}, s.handleCountWords)
	}
}

// handleTransform handles the transform_query tool invocation.
func (s *Server) handleTransform(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TransformInput,
) (*mcp.CallToolResult, TransformOutput, error) {
	out, err := s.ports.Query.Transform(ctx, input.Query)
	if err != nil {
		return nil, TransformOutput{}, err
	}
	return nil, TransformOutput{Input: input.Query, Output: out}, nil
}

// handleExplain handles the explain_query tool invocation.
func (s *Server) handleExplain(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TransformInput,
) (*mcp.CallToolResult, ExplainOutput, error) {
	exp, err := s.ports.Query.Explain(ctx, input.Query)
	if err != nil {
		return nil, ExplainOutput{}, err
	}
	return nil, ExplainOutput{Explanation: *exp}, nil
}

// handleCountWords handles the count_words tool invocation.
func (s *Server) handleCountWords(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CountWordsInput,
) (*mcp.CallToolResult, CountWordsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultWordLimit
	}

	filter := domain.MessageFilter{
		GroupID: input.GroupID,
		UserID:  input.UserID,
	}
	if input.After > 0 {
		filter.After = time.Unix(input.After, 0)
	}

	report, err := s.ports.WordCount.Count(ctx, filter)
	if err != nil {
		return nil, CountWordsOutput{}, err
	}

	words := report.Words
	if len(words) > limit {
		words = words[:limit]
	}

	return nil, CountWordsOutput{
		ID:       report.ID,
		Messages: report.Messages,
		Words:    words,
		Count:    len(words),
	}, nil
}
