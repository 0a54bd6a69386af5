package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/custodia-labs/querytrans/internal/core/domain"
	"github.com/custodia-labs/querytrans/internal/core/ports/driven"
	"github.com/custodia-labs/querytrans/internal/core/ports/driving"
	"github.com/custodia-labs/querytrans/internal/logger"
)

// Ensure WordCountService implements the interface.
var _ driving.WordCountService = (*WordCountService)(nil)

// ErrNoDumpReader is returned by CountDump when no dump reader is set.
var ErrNoDumpReader = errors.New("dump reading is not configured")

// WordCountService counts the words of archived chat messages.
type WordCountService struct {
	source driven.MessageSource
	dump   driven.DumpReader
	tagger driven.Tagger
	opts   domain.CountOptions

	mu        sync.RWMutex
	stopWords map[string]struct{}
	progress  func(messages int)
}

// NewWordCountService creates a word count service reading from source.
func NewWordCountService(
	source driven.MessageSource, tagger driven.Tagger, opts domain.CountOptions,
) *WordCountService {
	return &WordCountService{
		source:    source,
		tagger:    tagger,
		opts:      opts,
		stopWords: make(map[string]struct{}),
	}
}

// SetDumpReader enables CountDump.
func (s *WordCountService) SetDumpReader(r driven.DumpReader) {
	s.dump = r
}

// SetProgress registers a callback invoked with the running message total
// after every message read. Counts already running keep the callback they
// started with.
func (s *WordCountService) SetProgress(fn func(messages int)) {
	s.mu.Lock()
	s.progress = fn
	s.mu.Unlock()
}

// SetStopWords replaces the stop-word set. Counts already running keep the
// set they started with.
func (s *WordCountService) SetStopWords(words []string) {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}

	s.mu.Lock()
	s.stopWords = set
	s.mu.Unlock()

	logger.Debug("Stop words replaced: %d entries", len(set))
}

func (s *WordCountService) snapshot() (map[string]struct{}, func(int)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stopWords, s.progress
}

// Count reads every message matching filter and counts its words.
func (s *WordCountService) Count(ctx context.Context, filter domain.MessageFilter) (*domain.WordCountReport, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	return s.run(filter, "archive", func(fn func(domain.Message) error) error {
		it, err := s.source.Messages(ctx, filter)
		if err != nil {
			return fmt.Errorf("open messages: %w", err)
		}
		defer it.Close()

		for {
			msg, err := it.Next(ctx)
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("read messages: %w", err)
			}
			if err := fn(msg); err != nil {
				return err
			}
		}
	})
}

// CountDump counts the words of the messages in the dump at path that
// match filter.
func (s *WordCountService) CountDump(
	ctx context.Context, path string, filter domain.MessageFilter,
) (*domain.WordCountReport, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if s.dump == nil {
		return nil, ErrNoDumpReader
	}

	return s.run(filter, path, func(fn func(domain.Message) error) error {
		_, err := s.dump.ReadDump(ctx, path, func(m domain.Message) error {
			if !filter.Matches(m) {
				return nil
			}
			return fn(m)
		})
		if err != nil {
			return fmt.Errorf("read dump: %w", err)
		}
		return nil
	})
}

// run counts the messages each yields and builds the report.
func (s *WordCountService) run(
	filter domain.MessageFilter, from string, each func(fn func(domain.Message) error) error,
) (*domain.WordCountReport, error) {
	report := &domain.WordCountReport{
		ID:      uuid.NewString(),
		GroupID: filter.GroupID,
		After:   filter.After,
		UserID:  filter.UserID,
	}
	log := logger.L().With(
		zap.String("report", report.ID),
		zap.Int64("group", filter.GroupID),
		zap.String("from", from),
	)

	logger.Section("Word Count")
	log.Info("processing messages")

	stopWords, progress := s.snapshot()
	c := &counter{
		opts:      s.opts,
		tagger:    s.tagger,
		stopWords: stopWords,
		stopTags:  make(map[string]struct{}, len(s.opts.StopTags)),
		counts:    make(map[string]int),
	}
	for _, tag := range s.opts.StopTags {
		c.stopTags[tag] = struct{}{}
	}

	err := each(func(msg domain.Message) error {
		report.Messages++
		c.message(msg.Text)
		if progress != nil {
			progress(report.Messages)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	report.Words = c.sorted()
	log.Info("word count finished", zap.Int("messages", report.Messages), zap.Int("words", len(report.Words)))
	return report, nil
}

// counter accumulates word counts for one run.
type counter struct {
	opts      domain.CountOptions
	tagger    driven.Tagger
	stopWords map[string]struct{}
	stopTags  map[string]struct{}
	counts    map[string]int
}

func (c *counter) message(text string) {
	if text == "" {
		return
	}
	for _, prefix := range c.opts.SkipPrefixes {
		if strings.HasPrefix(text, prefix) {
			return
		}
	}

	for _, line := range strings.Split(text, "\n") {
		for _, marker := range c.opts.SkipLineMarkers {
			// the rest of the message is an attachment; earlier lines stay counted
			if strings.HasPrefix(line, marker) {
				return
			}
		}
		c.line(line)
	}
}

func (c *counter) line(line string) {
	for _, tw := range c.tagger.Tag(line) {
		if _, stop := c.stopTags[tw.Tag]; stop {
			continue
		}
		if c.opts.MaxWordBytes > 0 && len(tw.Word) > c.opts.MaxWordBytes {
			continue
		}
		word := strings.ToLower(tw.Word)
		if strings.TrimSpace(word) == "" {
			continue
		}
		if _, stop := c.stopWords[word]; stop {
			continue
		}
		c.counts[word]++
	}
}

// sorted returns the counts ordered by count descending, then by word.
func (c *counter) sorted() []domain.WordCount {
	out := make([]domain.WordCount, 0, len(c.counts))
	for w, n := range c.counts {
		out = append(out, domain.WordCount{Word: w, Count: n})
	}
	slices.SortFunc(out, func(a, b domain.WordCount) int {
		if n := cmp.Compare(b.Count, a.Count); n != 0 {
			return n
		}
		return cmp.Compare(a.Word, b.Word)
	})
	return out
}
