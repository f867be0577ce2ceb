package registers

import (
	"fmt"
	"time"

	"github.com/zjrosen/vikey/internal/config"
)

// DefaultRegister mirrors vikey.DefaultRegister; the playground never
// imports vikey/DefaultRegister directly here to keep this package free of
// a dependency on the parser's internal constant surface, but the two must
// agree — both are the double-quote register vi uses when no register is
// named explicitly.
const DefaultRegister = '"'

// Bank fronts a durable Store with a read-through in-memory cache, giving
// the playground host a single Get/Set surface for Yank and Put events.
type Bank struct {
	store *Store
	cache *memCache
}

// OpenBank opens the register database described by cfg and wraps it with a
// cache whose TTL is also taken from cfg.
func OpenBank(cfg config.RegistersConfig) (*Bank, error) {
	store, err := OpenStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening register bank: %w", err)
	}

	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &Bank{store: store, cache: newMemCache(ttl)}, nil
}

// Close releases the underlying store connection.
func (b *Bank) Close() error {
	return b.store.Close()
}

// Get returns a register's content, checking the cache before falling back
// to the durable store.
func (b *Bank) Get(name byte) (text string, linewise bool, ok bool, err error) {
	if e, found := b.cache.get(name); found {
		return e.text, e.linewise, true, nil
	}

	text, linewise, ok, err = b.store.Get(name)
	if err != nil || !ok {
		return text, linewise, ok, err
	}
	b.cache.set(name, entry{text: text, linewise: linewise})
	return text, linewise, true, nil
}

// Set writes a register's content through to the store and refreshes the
// cache.
func (b *Bank) Set(name byte, text string, linewise bool) error {
	if err := b.store.Set(name, text, linewise, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return err
	}
	b.cache.set(name, entry{text: text, linewise: linewise})
	return nil
}
