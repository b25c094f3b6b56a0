package services

import "sync"

// keyedMutex serializes work per word id. LockAll excludes every id at once.
type keyedMutex struct {
	all   sync.RWMutex
	mu    sync.Mutex
	locks map[int64]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[int64]*keyedLock)}
}

// Lock blocks until id is free and returns the matching unlock.
func (k *keyedMutex) Lock(id int64) func() {
	k.all.RLock()
	k.mu.Lock()
	l, ok := k.locks[id]
	if !ok {
		l = &keyedLock{}
		k.locks[id] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
		k.all.RUnlock()
	}
}

// LockAll blocks until no id is held and returns the matching unlock.
func (k *keyedMutex) LockAll() func() {
	k.all.Lock()
	return k.all.Unlock
}
