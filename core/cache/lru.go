package cache

import (
	"container/heap"
	"container/list"
	"sync"
	"time"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 500

// LRU is a bounded least-recently-used cache with optional per-entry TTL.
// Expiry is tracked in a min-heap keyed by deadline rather than by assuming
// LRU order approximates expiry order, so an entry with a shorter TTL than
// older entries is still swept on time. Safe for concurrent use.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[K]*entry[K, V]
	order    *list.List // front is most recently used
	deadline deadlineHeap[K, V]
	onEvict  func(K, V)

	stop     chan struct{}
	stopOnce sync.Once
}

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time // zero means no expiry
	elem      *list.Element
	heapIndex int // -1 when not in the deadline heap
}

// Option configures an LRU cache.
type Option[K comparable, V any] func(*LRU[K, V]) *janitorConfig

type janitorConfig struct {
	interval time.Duration
}

// WithTTL sets the default time-to-live applied by Put.
// A non-positive value means entries do not expire by default.
func WithTTL[K comparable, V any](ttl time.Duration) Option[K, V] {
	return func(l *LRU[K, V]) *janitorConfig {
		l.ttl = ttl
		return nil
	}
}

// WithCleanupInterval sets the period of the background sweep that removes
// expired entries. A non-positive value disables the sweep; expired entries
// are then dropped lazily on access.
func WithCleanupInterval[K comparable, V any](interval time.Duration) Option[K, V] {
	return func(l *LRU[K, V]) *janitorConfig {
		return &janitorConfig{interval: interval}
	}
}

// WithEvictCallback registers a callback invoked whenever an entry is
// evicted by capacity, expiry, or Remove. The callback runs outside the
// cache lock.
func WithEvictCallback[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(l *LRU[K, V]) *janitorConfig {
		l.onEvict = fn
		return nil
	}
}

// New creates an LRU cache holding at most capacity entries.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) *LRU[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	l := &LRU[K, V]{
		capacity: capacity,
		entries:  make(map[K]*entry[K, V]),
		order:    list.New(),
		stop:     make(chan struct{}),
	}

	var janitor *janitorConfig
	for _, opt := range opts {
		if jc := opt(l); jc != nil {
			janitor = jc
		}
	}

	if janitor != nil && janitor.interval > 0 {
		go l.sweepLoop(janitor.interval)
	}

	return l
}

// Get returns the value cached under key and promotes it to most recently
// used. An expired entry counts as a miss and is dropped.
func (l *LRU[K, V]) Get(key K) (V, bool) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		l.mu.Unlock()
		var zero V
		return zero, false
	}
	if l.expired(e, time.Now()) {
		l.unlink(e)
		l.mu.Unlock()
		l.evicted(e)
		var zero V
		return zero, false
	}
	l.order.MoveToFront(e.elem)
	v := e.value
	l.mu.Unlock()
	return v, true
}

// Put stores a value under key with the cache's default TTL, evicting the
// least recently used entry if the cache is full.
func (l *LRU[K, V]) Put(key K, value V) {
	l.PutTTL(key, value, l.ttl)
}

// PutTTL stores a value with an explicit TTL overriding the default.
// A non-positive TTL means the entry never expires.
func (l *LRU[K, V]) PutTTL(key K, value V, ttl time.Duration) {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	l.mu.Lock()

	if e, ok := l.entries[key]; ok {
		e.value = value
		l.setDeadline(e, expiresAt)
		l.order.MoveToFront(e.elem)
		l.mu.Unlock()
		return
	}

	var victim *entry[K, V]
	if len(l.entries) >= l.capacity {
		if back := l.order.Back(); back != nil {
			victim = back.Value.(*entry[K, V])
			l.unlink(victim)
		}
	}

	e := &entry[K, V]{key: key, value: value, expiresAt: expiresAt, heapIndex: -1}
	e.elem = l.order.PushFront(e)
	l.entries[key] = e
	if !expiresAt.IsZero() {
		heap.Push(&l.deadline, e)
	}

	l.mu.Unlock()

	if victim != nil {
		l.evicted(victim)
	}
}

// Remove deletes the entry for key and returns its value.
func (l *LRU[K, V]) Remove(key K) (V, bool) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		l.mu.Unlock()
		var zero V
		return zero, false
	}
	l.unlink(e)
	l.mu.Unlock()
	l.evicted(e)
	return e.value, true
}

// Len returns the number of cached entries, including any that have expired
// but not yet been swept.
func (l *LRU[K, V]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear drops all entries without invoking the eviction callback.
func (l *LRU[K, V]) Clear() {
	l.mu.Lock()
	l.entries = make(map[K]*entry[K, V])
	l.order.Init()
	l.deadline = l.deadline[:0]
	l.mu.Unlock()
}

// Close stops the background sweep. The cache remains usable; expired
// entries are then only dropped lazily on access.
func (l *LRU[K, V]) Close() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Sweep removes all entries whose deadline has passed and reports how many
// were dropped. The janitor calls it periodically; it can also be called
// directly.
func (l *LRU[K, V]) Sweep() int {
	now := time.Now()

	l.mu.Lock()
	var expired []*entry[K, V]
	for len(l.deadline) > 0 && !l.deadline[0].expiresAt.After(now) {
		e := l.deadline[0]
		l.unlink(e)
		expired = append(expired, e)
	}
	l.mu.Unlock()

	for _, e := range expired {
		l.evicted(e)
	}
	return len(expired)
}

func (l *LRU[K, V]) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.Sweep()
		case <-l.stop:
			return
		}
	}
}

func (l *LRU[K, V]) expired(e *entry[K, V], now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}

// unlink removes an entry from all three indexes. Caller holds the lock.
func (l *LRU[K, V]) unlink(e *entry[K, V]) {
	delete(l.entries, e.key)
	l.order.Remove(e.elem)
	if e.heapIndex >= 0 {
		heap.Remove(&l.deadline, e.heapIndex)
	}
}

// setDeadline updates an existing entry's expiry, fixing its heap position.
// Caller holds the lock.
func (l *LRU[K, V]) setDeadline(e *entry[K, V], expiresAt time.Time) {
	e.expiresAt = expiresAt
	switch {
	case expiresAt.IsZero() && e.heapIndex >= 0:
		heap.Remove(&l.deadline, e.heapIndex)
	case !expiresAt.IsZero() && e.heapIndex < 0:
		heap.Push(&l.deadline, e)
	case e.heapIndex >= 0:
		heap.Fix(&l.deadline, e.heapIndex)
	}
}

func (l *LRU[K, V]) evicted(e *entry[K, V]) {
	if l.onEvict != nil {
		l.onEvict(e.key, e.value)
	}
}

// deadlineHeap is a min-heap of entries ordered by expiry time.
type deadlineHeap[K comparable, V any] []*entry[K, V]

func (h deadlineHeap[K, V]) Len() int { return len(h) }

func (h deadlineHeap[K, V]) Less(i, j int) bool {
	return h[i].expiresAt.Before(h[j].expiresAt)
}

func (h deadlineHeap[K, V]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}

func (h *deadlineHeap[K, V]) Push(x any) {
	e := x.(*entry[K, V])
	e.heapIndex = len(*h)
	*h = append(*h, e)
}

func (h *deadlineHeap[K, V]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.heapIndex = -1
	*h = old[:n-1]
	return e
}
