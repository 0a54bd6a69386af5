package driving

import (
	"context"

	"github.com/custodia-labs/querytrans/internal/core/domain"
)

// WordCountService counts words across archived messages.
type WordCountService interface {
	// Count reads every message matching filter and tallies its words.
	Count(ctx context.Context, filter domain.MessageFilter) (*domain.WordCountReport, error)

	// CountDump tallies the words of the messages in a dump file that
	// match filter, without storing them.
	CountDump(ctx context.Context, path string, filter domain.MessageFilter) (*domain.WordCountReport, error)

	// SetStopWords replaces the stop-word set.
	SetStopWords(words []string)
}
