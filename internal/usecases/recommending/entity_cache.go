package recommending

import (
	"sync"
	"time"

	"github.com/ChristopherHoole/gads-optimizer/infrastructure/repository"
	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
)

// EntityCache is a read-through cache for entity metadata (display names,
// status). It is injected explicitly wherever names are needed; entries
// expire after the TTL and can be invalidated per account after a sync.
type EntityCache struct {
	repo repository.EntityRepository
	ttl  time.Duration
	now  func() time.Time

	mu      sync.RWMutex
	entries map[string]entityCacheEntry
}

type entityCacheEntry struct {
	entities  []domain.Entity
	expiresAt time.Time
}

func NewEntityCache(repo repository.EntityRepository, ttl time.Duration) *EntityCache {
	return &EntityCache{
		repo:    repo,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entityCacheEntry),
	}
}

// GetByAccountID returns the cached entity set for the account, reading
// through to the repository when the entry is missing or expired.
func (c *EntityCache) GetByAccountID(accountID string) ([]domain.Entity, error) {
	c.mu.RLock()
	entry, ok := c.entries[accountID]
	c.mu.RUnlock()

	if ok && c.now().Before(entry.expiresAt) {
		return entry.entities, nil
	}

	entities, err := c.repo.GetByAccountID(accountID)
	if err != nil {
		// Serve a stale entry over failing the caller.
		if ok {
			return entry.entities, nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.entries[accountID] = entityCacheEntry{
		entities:  entities,
		expiresAt: c.now().Add(c.ttl),
	}
	c.mu.Unlock()

	return entities, nil
}

// Invalidate drops the cached entry for the account. Called after an entity
// metadata sync.
func (c *EntityCache) Invalidate(accountID string) {
	c.mu.Lock()
	delete(c.entries, accountID)
	c.mu.Unlock()
}
