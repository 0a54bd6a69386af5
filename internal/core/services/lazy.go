package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/querytrans/internal/core/domain"
	"github.com/custodia-labs/querytrans/internal/core/ports/driving"
	"github.com/custodia-labs/querytrans/internal/logger"
)

// Ensure LazyWordCountService implements the interface.
var _ driving.WordCountService = (*LazyWordCountService)(nil)

// LazyWordCountService defers building a word count service until the
// first Count. Loading the segmenter dictionary takes seconds, and most
// commands never count words.
type LazyWordCountService struct {
	build func() (driving.WordCountService, error)

	mu        sync.Mutex
	svc       driving.WordCountService
	stopWords []string
	hasStop   bool
	progress  func(messages int)
}

// progressSetter is implemented by services that report progress.
type progressSetter interface {
	SetProgress(fn func(messages int))
}

// NewLazyWordCountService creates a service that calls build on first use.
// A failed build is retried by the next Count.
func NewLazyWordCountService(build func() (driving.WordCountService, error)) *LazyWordCountService {
	return &LazyWordCountService{build: build}
}

// Count builds the underlying service if needed and delegates to it.
func (s *LazyWordCountService) Count(ctx context.Context, filter domain.MessageFilter) (*domain.WordCountReport, error) {
	svc, err := s.service()
	if err != nil {
		return nil, err
	}
	return svc.Count(ctx, filter)
}

// CountDump builds the underlying service if needed and delegates to it.
func (s *LazyWordCountService) CountDump(
	ctx context.Context, path string, filter domain.MessageFilter,
) (*domain.WordCountReport, error) {
	svc, err := s.service()
	if err != nil {
		return nil, err
	}
	return svc.CountDump(ctx, path, filter)
}

// SetStopWords forwards to the underlying service, or keeps the words
// until it is built.
func (s *LazyWordCountService) SetStopWords(words []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.svc != nil {
		s.svc.SetStopWords(words)
		return
	}
	s.stopWords = words
	s.hasStop = true
}

// SetProgress forwards to the underlying service when it reports progress,
// or keeps fn until it is built.
func (s *LazyWordCountService) SetProgress(fn func(messages int)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress = fn
	if p, ok := s.svc.(progressSetter); ok {
		p.SetProgress(fn)
	}
}

// Built reports whether the underlying service exists yet.
func (s *LazyWordCountService) Built() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.svc != nil
}

func (s *LazyWordCountService) service() (driving.WordCountService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.svc != nil {
		return s.svc, nil
	}

	logger.Debug("Building word count service")
	svc, err := s.build()
	if err != nil {
		return nil, fmt.Errorf("initialising word count: %w", err)
	}
	if s.hasStop {
		svc.SetStopWords(s.stopWords)
		s.stopWords, s.hasStop = nil, false
	}
	if p, ok := svc.(progressSetter); ok && s.progress != nil {
		p.SetProgress(s.progress)
	}
	s.svc = svc
	return svc, nil
}
