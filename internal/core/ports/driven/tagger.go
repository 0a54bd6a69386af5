package driven

import "github.com/custodia-labs/querytrans/internal/core/domain"

// Tagger segments text into words with part-of-speech tags.
type Tagger interface {
	// Tag segments one line of text.
	Tag(text string) []domain.TaggedWord
}
