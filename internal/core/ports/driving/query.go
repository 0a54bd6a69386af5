package driving

import (
	"context"

	"github.com/custodia-labs/querytrans/internal/core/domain"
)

// QueryService rewrites search queries so literals match in every orthography.
type QueryService interface {
	// Transform parses input, expands every literal and renders the result.
	// Parse failures match domain.ErrParse.
	Transform(ctx context.Context, input string) (string, error)

	// Explain reports the parsed tree, the expanded tree and the output.
	Explain(ctx context.Context, input string) (*domain.Explanation, error)

	// TransformBatch transforms independent inputs concurrently.
	// Per-input failures are reported in the results; the error is
	// non-nil only when ctx is cancelled.
	TransformBatch(ctx context.Context, inputs []string) ([]domain.TransformResult, error)
}
