package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/querytrans/internal/core/domain"
	"github.com/custodia-labs/querytrans/internal/core/ports/driven"
	"github.com/custodia-labs/querytrans/internal/core/ports/driving"
	"github.com/custodia-labs/querytrans/internal/logger"
)

// Ensure MessageService implements the interface.
var _ driving.MessageService = (*MessageService)(nil)

// DefaultImportBatchSize is the number of messages saved per call to
// SaveMessages during an import.
const DefaultImportBatchSize = 500

// MessageService imports message dumps into the archive.
type MessageService struct {
	store     driven.MessageStore
	dump      driven.DumpReader
	batchSize int
}

// NewMessageService creates a message service.
func NewMessageService(store driven.MessageStore, dump driven.DumpReader) *MessageService {
	return &MessageService{
		store:     store,
		dump:      dump,
		batchSize: DefaultImportBatchSize,
	}
}

// SetBatchSize changes how many messages are saved at once.
// Non-positive values restore the default.
func (s *MessageService) SetBatchSize(n int) {
	if n <= 0 {
		n = DefaultImportBatchSize
	}
	s.batchSize = n
}

// Import copies the dump at path into the store. Messages saved before a
// failure stay saved.
func (s *MessageService) Import(ctx context.Context, path string) (int, error) {
	batch := make([]domain.Message, 0, s.batchSize)
	saved := 0
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.store.SaveMessages(ctx, batch); err != nil {
			return fmt.Errorf("saving messages: %w", err)
		}
		saved += len(batch)
		batch = batch[:0]
		return nil
	}

	n, err := s.dump.ReadDump(ctx, path, func(m domain.Message) error {
		if m.GroupID == 0 {
			return fmt.Errorf("%w: message %d has no group", domain.ErrInvalidInput, m.ID)
		}
		batch = append(batch, m)
		if len(batch) == s.batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return saved, fmt.Errorf("importing %s: %w", path, err)
	}
	if err := flush(); err != nil {
		return saved, fmt.Errorf("importing %s: %w", path, err)
	}

	logger.Info("Imported %d messages from %s", n, path)
	return n, nil
}

// Count returns the number of archived messages in a group.
func (s *MessageService) Count(ctx context.Context, groupID int64) (int, error) {
	return s.store.CountMessages(ctx, groupID)
}
