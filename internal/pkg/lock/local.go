package lock

import (
	"context"
	"sync"
	"time"
)

// roomSlot is shared by everyone holding or waiting for one room.
type roomSlot struct {
	ch   chan struct{}
	refs int
}

// LocalLocker is an in-process Locker for single-instance deployments. A
// room's slot is dropped once nobody holds or waits for it.
type LocalLocker struct {
	mu    sync.Mutex
	rooms map[int64]*roomSlot
	wait  time.Duration
}

func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{
		rooms: make(map[int64]*roomSlot),
		wait:  wait,
	}
}

func (l *LocalLocker) acquire(roomID int64) *roomSlot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.rooms[roomID]
	if !ok {
		s = &roomSlot{ch: make(chan struct{}, 1)}
		l.rooms[roomID] = s
	}
	s.refs++
	return s
}

func (l *LocalLocker) release(roomID int64, s *roomSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.rooms, roomID)
	}
}

func (l *LocalLocker) Lock(ctx context.Context, roomID int64) (func(), error) {
	s := l.acquire(roomID)

	if l.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(roomID, s)
		return nil, ErrNotAcquired
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.release(roomID, s)
		})
	}, nil
}
