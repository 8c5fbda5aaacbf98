// Package lock serialises booking writes per room.
package lock

import (
	"context"
	"errors"
)

// ErrNotAcquired is returned when the lock could not be taken before the wait
// timeout or the context ended.
var ErrNotAcquired = errors.New("room lock not acquired")

// Locker hands out exclusive per-room locks. The returned function releases
// the lock and is safe to call once.
type Locker interface {
	Lock(ctx context.Context, roomID int64) (unlock func(), err error)
}
