// Package locks provides per-key mutexes held in a bounded LRU so the
// registry does not grow with the number of users.
package locks

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

type Keyed struct {
	mu    sync.Mutex
	cache *lru.Cache
}

func NewKeyed(size int) (*Keyed, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Keyed{cache: cache}, nil
}

// Lock blocks until the mutex for key is held and returns its release func.
// An entry evicted while held keeps working for its current holders.
func (k *Keyed) Lock(key string) func() {
	k.mu.Lock()
	var m *sync.Mutex
	if v, ok := k.cache.Get(key); ok {
		m = v.(*sync.Mutex)
	} else {
		m = &sync.Mutex{}
		k.cache.Add(key, m)
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func (k *Keyed) Len() int {
	return k.cache.Len()
}
