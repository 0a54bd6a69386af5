// Package segmenter adapts the gse Chinese word segmenter to driven.Tagger.
package segmenter

import (
	"fmt"
	"sync"

	"github.com/go-ego/gse"

	"github.com/custodia-labs/querytrans/internal/core/domain"
	"github.com/custodia-labs/querytrans/internal/core/ports/driven"
	"github.com/custodia-labs/querytrans/internal/logger"
)

// Ensure Tagger implements the interface.
var _ driven.Tagger = (*Tagger)(nil)

// userWordFreq is the frequency given to user dictionary words, high
// enough that the segmenter keeps them whole.
const userWordFreq = 100000

// Tagger segments text into words tagged with their part of speech.
type Tagger struct {
	mu  sync.RWMutex
	seg gse.Segmenter
}

// NewTagger loads gse's bundled dictionary.
func NewTagger() (*Tagger, error) {
	logger.Debug("Loading segmenter dictionary")
	t := &Tagger{}
	t.seg.SkipLog = true
	if err := t.seg.LoadDict(); err != nil {
		return nil, fmt.Errorf("load segmenter dictionary: %w", err)
	}
	return t, nil
}

// AddWords adds user dictionary entries so they segment as one word with
// the given tag.
func (t *Tagger) AddWords(entries []domain.DictEntry) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, e := range entries {
		if err := t.seg.AddToken(e.Word, userWordFreq, e.Tag); err != nil {
			return fmt.Errorf("add word %q: %w", e.Word, err)
		}
	}
	logger.Debug("Added %d user dictionary words", len(entries))
	return nil
}

// Tag segments text into non-overlapping words that concatenate back to
// text.
func (t *Tagger) Tag(text string) []domain.TaggedWord {
	t.mu.RLock()
	segs := t.seg.Pos(text, false)
	t.mu.RUnlock()

	out := make([]domain.TaggedWord, 0, len(segs))
	for _, s := range segs {
		out = append(out, domain.TaggedWord{Word: s.Text, Tag: s.Pos})
	}
	return out
}
