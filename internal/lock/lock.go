// Package lock provides per-session advisory locks so that two mutating
// calls against the same session cannot interleave their read-modify-write.
package lock

import (
	"context"
	"errors"
	"sync"
)

// ErrNotAcquired is returned when the lock could not be taken before the
// context ended.
var ErrNotAcquired = errors.New("session lock not acquired")

// SessionLocker hands out exclusive locks keyed by session id. The returned
// release function must be called exactly once.
type SessionLocker interface {
	Lock(ctx context.Context, sessionID string) (release func(), err error)
}

type keyedMutex struct {
	ch   chan struct{}
	refs int
}

type memoryLocker struct {
	mu    sync.Mutex
	locks map[string]*keyedMutex
}

// NewMemoryLocker returns a process-local locker.
func NewMemoryLocker() SessionLocker {
	return &memoryLocker{locks: make(map[string]*keyedMutex)}
}

func (l *memoryLocker) Lock(ctx context.Context, sessionID string) (func(), error) {
	l.mu.Lock()
	km, ok := l.locks[sessionID]
	if !ok {
		km = &keyedMutex{ch: make(chan struct{}, 1)}
		l.locks[sessionID] = km
	}
	km.refs++
	l.mu.Unlock()

	select {
	case km.ch <- struct{}{}:
	case <-ctx.Done():
		l.unref(sessionID, km)
		return nil, errors.Join(ErrNotAcquired, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-km.ch
			l.unref(sessionID, km)
		})
	}, nil
}

func (l *memoryLocker) unref(sessionID string, km *keyedMutex) {
	l.mu.Lock()
	defer l.mu.Unlock()
	km.refs--
	if km.refs == 0 {
		delete(l.locks, sessionID)
	}
}
