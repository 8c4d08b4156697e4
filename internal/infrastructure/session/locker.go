package session

import "sync"

// Locker serializes turns per chat identity. Distinct chats never block each
// other, and a key's mutex is released once no turn holds or waits on it.
type Locker struct {
	mu    sync.Mutex
	locks map[int64]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func NewLocker() *Locker {
	return &Locker{locks: make(map[int64]*keyLock)}
}

// Lock blocks until chatID is free and returns the matching unlock func.
func (l *Locker) Lock(chatID int64) (unlock func()) {
	l.mu.Lock()
	k, ok := l.locks[chatID]
	if !ok {
		k = &keyLock{}
		l.locks[chatID] = k
	}
	k.refs++
	l.mu.Unlock()

	k.mu.Lock()
	var once sync.Once
	return func() {
		once.Do(func() {
			k.mu.Unlock()
			l.mu.Lock()
			k.refs--
			if k.refs == 0 {
				delete(l.locks, chatID)
			}
			l.mu.Unlock()
		})
	}
}

// Held returns the number of chat identities with a turn in flight or queued.
func (l *Locker) Held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
