package introspect

import (
	"sync"

	"ormreveal/internal/core"
)

// FKCache memoizes per-table foreign-key results across repeated
// ReadTables invocations within a single process. The key includes the
// connection-string identity, not just the table name, so results from
// different databases/servers never collide.
type FKCache struct {
	mu    sync.Mutex
	byKey map[string][]*core.ForeignKey
}

// NewFKCache constructs an empty cache.
func NewFKCache() *FKCache {
	return &FKCache{byKey: make(map[string][]*core.ForeignKey)}
}

func fkCacheKey(connStr, tableName string) string {
	return connStr + "\x00" + tableName
}

// Get returns the cached foreign keys for (connStr, tableName), if any.
func (c *FKCache) Get(connStr, tableName string) ([]*core.ForeignKey, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fks, ok := c.byKey[fkCacheKey(connStr, tableName)]
	return fks, ok
}

// Put stores the foreign keys for (connStr, tableName).
func (c *FKCache) Put(connStr, tableName string, fks []*core.ForeignKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byKey[fkCacheKey(connStr, tableName)] = fks
}

// Clear empties the cache, e.g. between runs to avoid cross-run
// leakage.
func (c *FKCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byKey = make(map[string][]*core.ForeignKey)
}
