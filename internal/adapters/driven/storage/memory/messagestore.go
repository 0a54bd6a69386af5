package memory

import (
	"cmp"
	"context"
	"io"
	"slices"
	"sync"

	"github.com/custodia-labs/querytrans/internal/core/domain"
	"github.com/custodia-labs/querytrans/internal/core/ports/driven"
)

// Ensure MessageStore implements the interface.
var _ driven.MessageStore = (*MessageStore)(nil)

// MessageStore is an in-memory implementation of driven.MessageStore.
type MessageStore struct {
	mu       sync.RWMutex
	messages map[messageKey]domain.Message
}

type messageKey struct {
	group int64
	id    int64
}

// NewMessageStore creates a new in-memory message store holding msgs.
func NewMessageStore(msgs ...domain.Message) *MessageStore {
	s := &MessageStore{messages: make(map[messageKey]domain.Message)}
	for _, m := range msgs {
		s.messages[messageKey{m.GroupID, m.ID}] = m
	}
	return s
}

// SaveMessages inserts or replaces messages.
func (s *MessageStore) SaveMessages(_ context.Context, msgs []domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range msgs {
		s.messages[messageKey{m.GroupID, m.ID}] = m
	}
	return nil
}

// Messages returns a cursor over a snapshot of the matching messages,
// newest id first.
func (s *MessageStore) Messages(_ context.Context, filter domain.MessageFilter) (driven.MessageIterator, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	matched := make([]domain.Message, 0)
	for _, m := range s.messages {
		if filter.Matches(m) {
			matched = append(matched, m)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b domain.Message) int {
		return cmp.Compare(b.ID, a.ID)
	})
	return &sliceIterator{messages: matched}, nil
}

// CountMessages returns the number of messages in a group, or in every
// group when groupID is zero.
func (s *MessageStore) CountMessages(_ context.Context, groupID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if groupID == 0 {
		return len(s.messages), nil
	}
	n := 0
	for k := range s.messages {
		if k.group == groupID {
			n++
		}
	}
	return n, nil
}

// Count returns the number of stored messages.
func (s *MessageStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

type sliceIterator struct {
	messages []domain.Message
	pos      int
	closed   bool
}

func (it *sliceIterator) Next(ctx context.Context) (domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return domain.Message{}, err
	}
	if it.closed || it.pos >= len(it.messages) {
		return domain.Message{}, io.EOF
	}
	m := it.messages[it.pos]
	it.pos++
	return m, nil
}

func (it *sliceIterator) Close() error {
	it.closed = true
	return nil
}
