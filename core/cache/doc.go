// Package cache provides a thread-safe, generic LRU cache with optional
// per-entry TTL expiry.
//
// The implementation combines a hash map and a doubly-linked list for O(1)
// Get/Put/Remove, plus a min-heap keyed by expiry deadline so the background
// sweep always removes the soonest-expiring entries first. Per-entry TTL
// overrides shorter than the default are honored.
//
// # Usage
//
//	c := cache.New[string, []byte](1000,
//		cache.WithTTL[string, []byte](10*time.Second),
//		cache.WithCleanupInterval[string, []byte](10*time.Second),
//	)
//	defer c.Close()
//
//	c.Put("key", data)                       // default TTL
//	c.PutTTL("short", data, time.Second)     // per-entry override
//
//	if v, ok := c.Get("key"); ok {
//		// hit promotes the entry to most recently used
//		_ = v
//	}
//
// When capacity is reached, Put evicts the least recently used entry.
// Expired entries are removed by the periodic sweep and also dropped lazily
// when accessed. An eviction callback can be registered for resource
// cleanup:
//
//	c := cache.New[string, *Conn](50,
//		cache.WithEvictCallback(func(key string, conn *Conn) {
//			conn.Close()
//		}),
//	)
//
// All operations are safe for concurrent use; eviction callbacks run
// outside the cache lock.
package cache
