package services

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/querytrans/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/querytrans/internal/core/domain"
)

// recordingStore wraps a memory store and records batch sizes.
type recordingStore struct {
	*memory.MessageStore
	batches []int
	err     error
}

func (r *recordingStore) SaveMessages(ctx context.Context, msgs []domain.Message) error {
	if r.err != nil {
		return r.err
	}
	r.batches = append(r.batches, len(msgs))
	return r.MessageStore.SaveMessages(ctx, msgs)
}

func TestMessageService_Import(t *testing.T) {
	msgs := groupMessages("a", "b", "c", "d", "e")
	store := &recordingStore{MessageStore: memory.NewMessageStore()}
	service := NewMessageService(store, &sliceDump{files: map[string][]domain.Message{"chat.jsonl": msgs}})
	service.SetBatchSize(2)

	n, err := service.Import(context.Background(), "chat.jsonl")
	require.NoError(t, err)

	assert.Equal(t, 5, n)
	assert.Equal(t, []int{2, 2, 1}, store.batches)

	count, err := service.Count(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestMessageService_Import_DefaultBatchSize(t *testing.T) {
	store := &recordingStore{MessageStore: memory.NewMessageStore()}
	service := NewMessageService(store, &sliceDump{files: map[string][]domain.Message{"x": groupMessages("a", "b")}})
	service.SetBatchSize(0)

	_, err := service.Import(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, []int{2}, store.batches)
}

func TestMessageService_Import_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		service := NewMessageService(memory.NewMessageStore(), &sliceDump{})
		_, err := service.Import(ctx, "nope")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("message without group", func(t *testing.T) {
		dump := &sliceDump{files: map[string][]domain.Message{"x": {{ID: 1}}}}
		service := NewMessageService(memory.NewMessageStore(), dump)
		_, err := service.Import(ctx, "x")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("save failure", func(t *testing.T) {
		boom := errors.New("disk full")
		store := &recordingStore{MessageStore: memory.NewMessageStore(), err: boom}
		service := NewMessageService(store, &sliceDump{files: map[string][]domain.Message{"x": groupMessages("a")}})
		n, err := service.Import(ctx, "x")
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, n)
	})
}
