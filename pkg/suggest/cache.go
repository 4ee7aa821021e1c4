package suggest

import (
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// cacheEntry is a ranked result for one prefix. limit is the limit it was
// computed with; a result shorter than its limit is complete.
type cacheEntry struct {
	suggestions []Suggestion
	limit       int
}

func (e *cacheEntry) covers(limit int) bool {
	if e.limit <= 0 || len(e.suggestions) < e.limit {
		return true
	}
	return limit > 0 && limit <= e.limit
}

// HotCache keeps recent ranked results keyed by prefix. Prefixes live in a
// patricia trie so that an insert can drop every cached prefix of the new word.
type HotCache struct {
	hotTrie     *patricia.Trie
	accessTime  map[string]int64
	accessCount int64
	hits        int64
	misses      int64
	maxEntries  int
	mu          sync.Mutex
}

// NewHotCache returns a cache holding at most maxEntries prefixes.
func NewHotCache(maxEntries int) *HotCache {
	return &HotCache{
		hotTrie:    patricia.NewTrie(),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns up to limit cached suggestions for prefix.
func (hc *HotCache) Get(prefix string, limit int) ([]Suggestion, bool) {
	if hc == nil || prefix == "" {
		return nil, false
	}
	hc.mu.Lock()
	defer hc.mu.Unlock()

	item := hc.hotTrie.Get(patricia.Prefix(prefix))
	if item == nil {
		hc.misses++
		return nil, false
	}
	entry := item.(*cacheEntry)
	if !entry.covers(limit) {
		hc.misses++
		return nil, false
	}

	hc.hits++
	hc.markAccessed(prefix)
	n := len(entry.suggestions)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Suggestion, n)
	copy(out, entry.suggestions[:n])
	return out, true
}

// Put stores a result computed with limit.
func (hc *HotCache) Put(prefix string, limit int, suggestions []Suggestion) {
	if hc == nil || prefix == "" || hc.maxEntries <= 0 {
		return
	}
	hc.mu.Lock()
	defer hc.mu.Unlock()

	if _, exists := hc.accessTime[prefix]; !exists && len(hc.accessTime) >= hc.maxEntries {
		hc.evictLRU()
	}
	stored := make([]Suggestion, len(suggestions))
	copy(stored, suggestions)
	hc.hotTrie.Set(patricia.Prefix(prefix), &cacheEntry{suggestions: stored, limit: limit})
	hc.markAccessed(prefix)
}

// Invalidate drops every cached prefix of word, since their results may now include it.
// Prefixes match byte-wise, so callers only cache valid UTF-8 prefixes.
func (hc *HotCache) Invalidate(word string) {
	if hc == nil || word == "" {
		return
	}
	hc.mu.Lock()
	defer hc.mu.Unlock()

	var stale []string
	err := hc.hotTrie.VisitPrefixes(patricia.Prefix(word), func(p patricia.Prefix, _ patricia.Item) error {
		stale = append(stale, string(p))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting hot cache prefixes: %v", err)
	}
	for _, prefix := range stale {
		hc.remove(prefix)
	}
	if len(stale) > 0 {
		log.Debugf("Invalidated %d cached prefixes of '%s'", len(stale), word)
	}
}

// Clear empties the cache.
func (hc *HotCache) Clear() {
	if hc == nil {
		return
	}
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.hotTrie = patricia.NewTrie()
	hc.accessTime = make(map[string]int64, hc.maxEntries)
}

// Stats reports cache size and hit counters.
func (hc *HotCache) Stats() map[string]int {
	if hc == nil {
		return map[string]int{}
	}
	hc.mu.Lock()
	defer hc.mu.Unlock()

	return map[string]int{
		"hotCacheEntries": len(hc.accessTime),
		"maxHotEntries":   hc.maxEntries,
		"hotCacheHits":    int(hc.hits),
		"hotCacheMisses":  int(hc.misses),
	}
}

func (hc *HotCache) markAccessed(prefix string) {
	hc.accessCount++
	hc.accessTime[prefix] = hc.accessCount
}

func (hc *HotCache) remove(prefix string) {
	hc.hotTrie.Delete(patricia.Prefix(prefix))
	delete(hc.accessTime, prefix)
}

func (hc *HotCache) evictLRU() {
	var oldestPrefix string
	var oldestTime int64 = math.MaxInt64

	for prefix, accessTime := range hc.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldestPrefix = prefix
		}
	}

	if oldestPrefix != "" {
		hc.remove(oldestPrefix)
		log.Debugf("Evicted prefix '%s' from hot cache", oldestPrefix)
	}
}
