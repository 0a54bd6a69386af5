package services

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/querytrans/internal/core/domain"
	"github.com/custodia-labs/querytrans/internal/core/ports/driven"
	"github.com/custodia-labs/querytrans/internal/core/ports/driving"
	"github.com/custodia-labs/querytrans/internal/core/querylang"
	"github.com/custodia-labs/querytrans/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService rewrites search queries so every literal matches all of its
// orthographic spellings.
type QueryService struct {
	converter driven.Converter
	opts      domain.ExpandOptions
	workers   int
}

// NewQueryService creates a query service expanding literals with converter.
// Empty opts.Schemes means literals are left as they are.
func NewQueryService(converter driven.Converter, opts domain.ExpandOptions) *QueryService {
	return &QueryService{
		converter: converter,
		opts:      opts,
		workers:   runtime.GOMAXPROCS(0),
	}
}

// SetWorkers bounds the number of concurrent transforms in TransformBatch.
// Values below one reset the bound to GOMAXPROCS.
func (s *QueryService) SetWorkers(n int) {
	if n < 1 {
		n = runtime.GOMAXPROCS(0)
	}
	s.workers = n
}

// Options returns the expansion options in use.
func (s *QueryService) Options() domain.ExpandOptions {
	return s.opts
}

// Transform parses input, expands every literal and renders the result.
func (s *QueryService) Transform(ctx context.Context, input string) (string, error) {
	_, expanded, err := s.run(ctx, input)
	if err != nil {
		return "", err
	}
	return expanded.String(), nil
}

// Explain returns the parsed and expanded trees along with the output.
func (s *QueryService) Explain(ctx context.Context, input string) (*domain.Explanation, error) {
	parsed, expanded, err := s.run(ctx, input)
	if err != nil {
		return nil, err
	}
	return &domain.Explanation{
		Input:    input,
		Parsed:   domain.ViewQuery(parsed),
		Expanded: domain.ViewQuery(expanded),
		Output:   expanded.String(),
	}, nil
}

// TransformBatch transforms each input independently. A failed input is
// reported in its result; only context cancellation fails the batch.
// Results are in input order.
func (s *QueryService) TransformBatch(ctx context.Context, inputs []string) ([]domain.TransformResult, error) {
	logger.Debug("Transforming batch of %d queries with %d workers", len(inputs), s.workers)

	results := make([]domain.TransformResult, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := s.Transform(ctx, input)
			results[i] = domain.TransformResult{Input: input, Output: out, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *QueryService) run(ctx context.Context, input string) (domain.Query, domain.Query, error) {
	if err := ctx.Err(); err != nil {
		return domain.Query{}, domain.Query{}, err
	}

	logger.Section("Transform")
	logger.Debug("Input: %q", input)

	parsed, err := querylang.Parse(input)
	if err != nil {
		logger.Debug("Parse failed: %v", err)
		return domain.Query{}, domain.Query{}, err
	}
	logger.Debug("Parsed: %s", parsed)

	expanded, err := querylang.Expand(parsed, s.converter, s.opts)
	if err != nil {
		return domain.Query{}, domain.Query{}, fmt.Errorf("expand %q: %w", input, err)
	}
	logger.Debug("Expanded: %s", expanded)

	return parsed, expanded, nil
}
