package registers

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/vikey/internal/log"
)

// entry is the value type stored in the in-memory cache.
type entry struct {
	text     string
	linewise bool
}

// memCache is a small read-through TTL cache in front of the Store, so a
// burst of Put/Yank activity on the same register doesn't round-trip to
// SQLite on every keystroke.
type memCache struct {
	c *gocache.Cache
}

func newMemCache(ttl time.Duration) *memCache {
	cleanup := ttl * 3
	if cleanup <= 0 {
		cleanup = 30 * time.Minute
	}
	return &memCache{c: gocache.New(ttl, cleanup)}
}

func (m *memCache) get(name byte) (entry, bool) {
	v, found := m.c.Get(string(name))
	if !found {
		return entry{}, false
	}
	e, ok := v.(entry)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting register", "name", string(name))
		return entry{}, false
	}
	log.Debug(log.CatCache, "register cache hit", "name", string(name))
	return e, true
}

func (m *memCache) set(name byte, e entry) {
	m.c.SetDefault(string(name), e)
}
