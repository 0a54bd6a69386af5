package driven

import (
	"context"

	"github.com/custodia-labs/querytrans/internal/core/domain"
)

// MessageSource opens cursors over archived chat messages.
type MessageSource interface {
	// Messages returns a fresh cursor over messages matching filter,
	// newest first. A cursor cannot be rewound; call Messages again instead.
	Messages(ctx context.Context, filter domain.MessageFilter) (MessageIterator, error)
}

// MessageIterator is a lazy cursor over messages.
type MessageIterator interface {
	// Next returns the next message, or io.EOF once the data is exhausted.
	// Fetch errors are sticky: every call after a failure returns it again.
	Next(ctx context.Context) (domain.Message, error)

	// Close releases resources.
	Close() error
}

// MessageStore is a MessageSource that can also persist messages.
type MessageStore interface {
	MessageSource

	// SaveMessages inserts or replaces messages.
	SaveMessages(ctx context.Context, msgs []domain.Message) error

	// CountMessages returns the number of messages in a group, or in
	// every group when groupID is zero.
	CountMessages(ctx context.Context, groupID int64) (int, error)
}

// DumpReader streams messages from an exported archive file.
type DumpReader interface {
	// ReadDump calls fn for every message in file order and returns how
	// many were read. It stops at the first error from fn.
	ReadDump(ctx context.Context, path string, fn func(domain.Message) error) (int, error)
}
