// Package keylock provides per-key mutual exclusion within one process.
package keylock

import (
	"context"
	"strconv"
	"sync"

	"github.com/puzpuzpuz/xsync"
)

// Locker hands out one mutex per key. Locks on different keys never contend.
// Entries are kept for the lifetime of the process; keys are raffle ids so the
// registry stays small.
type Locker struct {
	locks *xsync.MapOf[string, *sync.Mutex]
}

func New() *Locker {
	return &Locker{locks: xsync.NewMapOf[*sync.Mutex]()}
}

func (l *Locker) mutex(key string) *sync.Mutex {
	m, _ := l.locks.LoadOrStore(key, &sync.Mutex{})
	return m
}

// Lock blocks until the key is free and returns its unlock function.
func (l *Locker) Lock(key string) (unlock func()) {
	m := l.mutex(key)
	m.Lock()
	return m.Unlock
}

// LockID is Lock for numeric ids.
func (l *Locker) LockID(id uint) (unlock func()) {
	return l.Lock(strconv.FormatUint(uint64(id), 10))
}

// WithLock runs fn while holding key's lock.
func (l *Locker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	unlock := l.Lock(key)
	defer unlock()
	return fn(ctx)
}
