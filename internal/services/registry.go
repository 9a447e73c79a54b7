package services

import (
	"sync"
	"time"

	"gbm-go-api/internal/models"
)

// Generic in-memory TTL store with type safety
type ttlStore[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]*storeItem[V]
	ttl   time.Duration
}

type storeItem[V any] struct {
	value      V
	expiration time.Time
}

func newTTLStore[K comparable, V any](ttl time.Duration) *ttlStore[K, V] {
	s := &ttlStore[K, V]{
		items: make(map[K]*storeItem[V]),
		ttl:   ttl,
	}

	// Start cleanup goroutine
	go s.cleanup()

	return s
}

func (s *ttlStore[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.items[key]
	if !exists || time.Now().After(item.expiration) {
		var zero V
		return zero, false
	}

	return item.value, true
}

func (s *ttlStore[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = &storeItem[V]{
		value:      value,
		expiration: time.Now().Add(s.ttl),
	}
}

func (s *ttlStore[K, V]) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for key, item := range s.items {
			if now.After(item.expiration) {
				delete(s.items, key)
			}
		}
		s.mu.Unlock()
	}
}

// ResultRegistry keeps recently simulated paths addressable by the id
// returned from the simulate call. Results are held in memory only and
// expire after the configured TTL.
type ResultRegistry struct {
	results *ttlStore[string, *models.SimulateResponse]
}

// NewResultRegistry creates a registry whose entries expire after ttl.
func NewResultRegistry(ttl time.Duration) *ResultRegistry {
	return &ResultRegistry{
		results: newTTLStore[string, *models.SimulateResponse](ttl),
	}
}

// Get returns the result for id if it is still live.
func (r *ResultRegistry) Get(id string) (*models.SimulateResponse, bool) {
	return r.results.Get(id)
}

// Put stores a result under its id.
func (r *ResultRegistry) Put(result *models.SimulateResponse) {
	r.results.Set(result.ID, result)
}
