package adapter

import (
	"context"

	"github.com/google/uuid"
)

// UserLocker serializes balance changes per user across processes.
type UserLocker interface {
	// LockUsers acquires the lock of every given user or none of them.
	// Returns ErrSettlementInProgress when any lock is held elsewhere.
	// The returned release function is safe to call once.
	LockUsers(ctx context.Context, userIDs []uuid.UUID) (release func(), err error)
}
