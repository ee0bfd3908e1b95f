package memory

import (
	"context"
	"sync"
	"time"

	"github.com/suzuryg/facial-expression-switcher/pkg/ports"
)

// lockEntry holds the semaphore and the reference count.
type lockEntry struct {
	sem  chan struct{}
	refs int
}

// Locker serializes passes within a single process. It implements
// ports.DistributedLocker; the TTL is ignored since the holder cannot vanish
// without the process going with it.
// Entries are reference counted so unused keys do not accumulate.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

// NewLocker creates an empty locker.
func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*lockEntry)}
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must call release(key) once it no longer waits on or holds the entry.
func (l *Locker) acquire(key string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.locks[key]
	if !ok {
		entry = &lockEntry{sem: make(chan struct{}, 1)}
		l.locks[key] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (l *Locker) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.locks[key]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(l.locks, key)
	}
}

// Lock blocks until key is free or ctx is done.
func (l *Locker) Lock(ctx context.Context, key string, _ time.Duration) (ports.UnlockFunc, error) {
	entry := l.acquire(key)
	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(key)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			<-entry.sem
			l.release(key)
		})
		return nil
	}, nil
}

// held reports the number of keys with holders or waiters.
func (l *Locker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
