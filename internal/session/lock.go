package session

import "sync"

// Locks serialises read-modify-write cycles per browser namespace.  Every
// component writing into a browser's documents must share the same Locks so
// that a reset cannot interleave with another step's write.  Entries are
// dropped once nobody holds or waits for them.
type Locks struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func NewLocks() *Locks {
	return &Locks{locks: make(map[string]*refMutex)}
}

// Lock acquires the mutex of key and returns its release function.
func (k *Locks) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
