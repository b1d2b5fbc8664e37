package engine

import "sync"

// CacheMaxSize bounds the number of positions a PositionCache holds.
const CacheMaxSize = 10000

// CacheEntry is one memoized whole-board score.
type CacheEntry struct {
	Key   string
	Score int
}

// PositionCache memoizes ScoreBoard results keyed by Board.Key. When full,
// the oldest inserted entry is evicted; lookups do not refresh the order.
type PositionCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]int
	order    []string
	head     int
}

func NewPositionCache(capacity int) *PositionCache {
	if capacity <= 0 {
		capacity = CacheMaxSize
	}
	return &PositionCache{
		capacity: capacity,
		entries:  make(map[string]int, capacity),
		order:    make([]string, 0, capacity),
	}
}

func (c *PositionCache) Get(key string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	score, ok := c.entries[key]
	return score, ok
}

func (c *PositionCache) Put(key string, score int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.putLocked(key, score)
}

func (c *PositionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *PositionCache) Capacity() int {
	return c.capacity
}

// Entries returns the cached positions oldest first.
func (c *PositionCache) Entries() []CacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CacheEntry, 0, len(c.order))
	for i := 0; i < len(c.order); i++ {
		key := c.order[(c.head+i)%len(c.order)]
		out = append(out, CacheEntry{Key: key, Score: c.entries[key]})
	}
	return out
}

// Restore inserts entries in order, as if each had been Put. It does not
// clear what is already cached.
func (c *PositionCache) Restore(entries []CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, entry := range entries {
		c.putLocked(entry.Key, entry.Score)
	}
}

func (c *PositionCache) putLocked(key string, score int) {
	if _, ok := c.entries[key]; ok {
		c.entries[key] = score
		return
	}
	if len(c.order) < c.capacity {
		c.order = append(c.order, key)
		c.entries[key] = score
		return
	}
	// Full: the slot at head holds the oldest key and takes the new one.
	delete(c.entries, c.order[c.head])
	c.order[c.head] = key
	c.head = (c.head + 1) % c.capacity
	c.entries[key] = score
}
