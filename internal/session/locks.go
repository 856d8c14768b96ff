package session

import "sync"

// keyedLocks serializes point ingestion per session id. Ingestion is a
// read-modify-write of cumulative metrics, so concurrent samples for the
// same session must not interleave; different sessions stay independent.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: map[string]*sync.Mutex{}}
}

func (k *keyedLocks) get(id string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	if l, ok := k.locks[id]; ok {
		return l
	}
	l := &sync.Mutex{}
	k.locks[id] = l
	return l
}
