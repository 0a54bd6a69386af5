package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/custodia-labs/querytrans/internal/core/domain"
	"github.com/custodia-labs/querytrans/internal/core/ports/driven"
)

// mapConverter implements driven.Converter with a lookup table.
// Missing entries convert to the input.
type mapConverter struct {
	table map[domain.Scheme]map[string]string
	err   error
}

func (m *mapConverter) Convert(scheme domain.Scheme, text string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if out, ok := m.table[scheme][text]; ok {
		return out, nil
	}
	return text, nil
}

func newMapConverter() *mapConverter {
	return &mapConverter{table: map[domain.Scheme]map[string]string{
		domain.SchemeS2TW:  {"头发": "頭髮", "简体": "簡體"},
		domain.SchemeTW2S:  {"頭髮": "头发", "簡體": "简体"},
		domain.SchemeS2TWP: {"头发": "頭髮", "简体": "簡體"},
		domain.SchemeTW2SP: {"頭髮": "头发", "簡體": "简体"},
	}}
}

// spaceTagger implements driven.Tagger by splitting on spaces. A word of
// the form "word/tag" carries its tag, other words are tagged "n".
type spaceTagger struct{}

func (spaceTagger) Tag(text string) []domain.TaggedWord {
	var out []domain.TaggedWord
	for _, field := range strings.Fields(text) {
		word, tag, ok := strings.Cut(field, "/")
		if !ok {
			tag = "n"
		}
		out = append(out, domain.TaggedWord{Word: word, Tag: tag})
	}
	return out
}

// failingSource returns an iterator that yields msgs and then err.
type failingSource struct {
	msgs    []domain.Message
	err     error
	openErr error
}

func (f *failingSource) Messages(_ context.Context, _ domain.MessageFilter) (driven.MessageIterator, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return &failingIterator{msgs: f.msgs, err: f.err}, nil
}

type failingIterator struct {
	msgs []domain.Message
	pos  int
	err  error
}

func (it *failingIterator) Next(_ context.Context) (domain.Message, error) {
	if it.pos < len(it.msgs) {
		m := it.msgs[it.pos]
		it.pos++
		return m, nil
	}
	if it.err != nil {
		return domain.Message{}, it.err
	}
	return domain.Message{}, io.EOF
}

func (it *failingIterator) Close() error { return nil }

// sliceDump implements driven.DumpReader over in-memory dumps keyed by path.
type sliceDump struct {
	files map[string][]domain.Message
	err   error
}

func (d *sliceDump) ReadDump(ctx context.Context, path string, fn func(domain.Message) error) (int, error) {
	msgs, ok := d.files[path]
	if !ok {
		return 0, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	n := 0
	for _, m := range msgs {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if err := fn(m); err != nil {
			return n, err
		}
		n++
	}
	return n, d.err
}
