package driving

import "context"

// MessageService manages the local message archive.
type MessageService interface {
	// Import copies every message of a dump file into the archive and
	// returns how many were read.
	Import(ctx context.Context, path string) (int, error)

	// Count returns the number of archived messages in a group, or in
	// every group when groupID is zero.
	Count(ctx context.Context, groupID int64) (int, error)
}
