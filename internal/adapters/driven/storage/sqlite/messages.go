package sqlite

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/custodia-labs/querytrans/internal/core/domain"
	"github.com/custodia-labs/querytrans/internal/core/ports/driven"
	"github.com/custodia-labs/querytrans/internal/logger"
)

// MessageStore returns a MessageStore interface backed by this store.
func (s *Store) MessageStore() driven.MessageStore {
	return &messageStore{store: s}
}

// messageStore implements driven.MessageStore.
type messageStore struct {
	store *Store
}

var _ driven.MessageStore = (*messageStore)(nil)

// SaveMessages inserts or replaces messages in one transaction.
func (s *messageStore) SaveMessages(ctx context.Context, msgs []domain.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO messages (group_id, msgid, from_user, created_at, text)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(group_id, msgid) DO UPDATE SET
			from_user = excluded.from_user,
			created_at = excluded.created_at,
			text = excluded.text
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range msgs {
		if m.GroupID == 0 {
			return fmt.Errorf("%w: message %d has no group", domain.ErrInvalidInput, m.ID)
		}
		if _, err := stmt.ExecContext(ctx, m.GroupID, m.ID, m.FromUser, m.CreatedAt.Unix(), m.Text); err != nil {
			return fmt.Errorf("saving message %d: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing messages: %w", err)
	}
	return nil
}

// Messages returns a paginated cursor over matching messages, newest first.
func (s *messageStore) Messages(_ context.Context, filter domain.MessageFilter) (driven.MessageIterator, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	after := int64(math.MinInt64)
	if !filter.After.IsZero() {
		after = filter.After.Unix()
	}

	return &messageIterator{
		store:  s.store,
		filter: filter,
		after:  after,
		lastID: math.MaxInt64,
	}, nil
}

// CountMessages returns the number of messages stored for a group, or for
// every group when groupID is zero.
func (s *messageStore) CountMessages(ctx context.Context, groupID int64) (int, error) {
	return s.store.CountMessages(ctx, groupID)
}

// CountMessages returns the number of messages stored for a group, or for
// every group when groupID is zero.
func (s *Store) CountMessages(ctx context.Context, groupID int64) (int, error) {
	var n int
	var err error
	if groupID == 0 {
		err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages").Scan(&n)
	} else {
		err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages WHERE group_id = ?", groupID).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("counting messages: %w", err)
	}
	return n, nil
}

// messageIterator fetches one page at a time, keyed on the smallest msgid
// of the previous page. A page shorter than the page size is the last one.
type messageIterator struct {
	store  *Store
	filter domain.MessageFilter
	after  int64

	page   []domain.Message
	idx    int
	lastID int64
	done   bool
	err    error
}

func (it *messageIterator) Next(ctx context.Context) (domain.Message, error) {
	if it.err != nil {
		return domain.Message{}, it.err
	}

	if it.idx == len(it.page) {
		if it.done {
			return domain.Message{}, io.EOF
		}
		if err := it.fetch(ctx); err != nil {
			it.err = err
			return domain.Message{}, err
		}
		if len(it.page) == 0 {
			it.done = true
			return domain.Message{}, io.EOF
		}
	}

	m := it.page[it.idx]
	it.page[it.idx] = domain.Message{}
	it.idx++
	return m, nil
}

func (it *messageIterator) fetch(ctx context.Context) error {
	if it.store.limiter != nil {
		if err := it.store.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for page: %w", err)
		}
	}

	logger.Debug("Fetching messages of group %d below msgid %d", it.filter.GroupID, it.lastID)

	query := `
		SELECT msgid, group_id, from_user, created_at, text FROM messages
		WHERE msgid < ? AND group_id = ? AND created_at > ?`
	args := []any{it.lastID, it.filter.GroupID, it.after}
	if it.filter.UserID != 0 {
		query += " AND from_user = ?"
		args = append(args, it.filter.UserID)
	}
	query += " ORDER BY msgid DESC LIMIT ?"
	args = append(args, it.store.pageSize)

	rows, err := it.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	page := make([]domain.Message, 0, it.store.pageSize)
	for rows.Next() {
		var m domain.Message
		var created int64
		if err := rows.Scan(&m.ID, &m.GroupID, &m.FromUser, &created, &m.Text); err != nil {
			return fmt.Errorf("scanning message: %w", err)
		}
		m.CreatedAt = time.Unix(created, 0).UTC()
		page = append(page, m)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating messages: %w", err)
	}

	if len(page) < it.store.pageSize {
		it.done = true
	}
	if len(page) > 0 {
		it.lastID = page[len(page)-1].ID
	}
	it.page = page
	it.idx = 0
	return nil
}

// Close drops the buffered page. No connection is held between pages.
func (it *messageIterator) Close() error {
	it.page = nil
	it.idx = 0
	it.done = true
	return nil
}
