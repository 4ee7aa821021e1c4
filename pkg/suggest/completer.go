package suggest

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

// DefaultHotEntries is the hot cache size used by NewCompleter.
const DefaultHotEntries = 2048

// Suggestion is one ranked completion.
type Suggestion struct {
	Word   string
	Weight int
}

// Completer guards a trie with a RWMutex so many readers can complete while
// writes are serialised. Results are cached per prefix in a HotCache.
type Completer struct {
	mu        sync.RWMutex
	dict      *trie.Node[int]
	hotCache  *HotCache
	source    string
	loadStats dictionary.LoadStats
	added     int
}

// NewCompleter returns a completer over an empty dictionary.
func NewCompleter() *Completer {
	return NewCompleterFromTrie(trie.New[int]())
}

// NewCompleterFromTrie takes ownership of dict.
func NewCompleterFromTrie(dict *trie.Node[int]) *Completer {
	if dict == nil {
		dict = trie.New[int]()
	}
	return &Completer{
		dict:     dict,
		hotCache: NewHotCache(DefaultHotEntries),
	}
}

// LoadDictionary replaces the dictionary with the file or chunk directory at path.
func (c *Completer) LoadDictionary(path string, maxChunks int) error {
	dict, stats, err := dictionary.LoadPath(path, maxChunks)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}
	c.swap(dict, path, stats)
	log.Debugf("Dictionary loaded from %s: %d words (%s)", path, stats.Words, stats.Format)
	return nil
}

// Resize reloads the first chunks of the chunk directory the dictionary came from.
func (c *Completer) Resize(chunks int) error {
	c.mu.RLock()
	source, format := c.source, c.loadStats.Format
	c.mu.RUnlock()

	if format != dictionary.FormatChunk {
		return fmt.Errorf("dictionary was not loaded from chunks")
	}
	dict, err := dictionary.NewChunkSet(source).Build(chunks)
	if err != nil {
		return err
	}
	c.swap(dict, source, dictionary.LoadStats{
		Format: dictionary.FormatChunk,
		Words:  dict.Len(),
		Lines:  dict.Len(),
		Chunks: chunks,
	})
	return nil
}

// SizeOptions lists the sizes Resize accepts.
func (c *Completer) SizeOptions() ([]dictionary.SizeOption, error) {
	c.mu.RLock()
	source, format := c.source, c.loadStats.Format
	c.mu.RUnlock()

	if format != dictionary.FormatChunk {
		return nil, fmt.Errorf("dictionary was not loaded from chunks")
	}
	return dictionary.NewChunkSet(source).SizeOptions()
}

func (c *Completer) swap(dict *trie.Node[int], source string, stats dictionary.LoadStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dict = dict
	c.source = source
	c.loadStats = stats
	c.added = 0
	c.hotCache.Clear()
}

// AddWord inserts word, overwriting its weight if present.
func (c *Completer) AddWord(word string, weight int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.dict.Get(word); !exists {
		c.added++
	}
	c.dict.Insert(word, weight)
	c.hotCache.Invalidate(word)
}

// Weight returns the stored weight of word.
func (c *Completer) Weight(word string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dict.Get(word)
}

// Complete returns up to limit words starting with prefix, heaviest first,
// equal weights in lexicographic order. A limit <= 0 returns every match.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	cacheable := utf8.ValidString(prefix)
	if cacheable {
		if cached, ok := c.hotCache.Get(prefix, limit); ok {
			return cached
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	pairs := c.dict.Top(prefix, limit)
	suggestions := make([]Suggestion, len(pairs))
	for i, p := range pairs {
		suggestions[i] = Suggestion{Word: p.Word, Weight: p.Weight}
	}
	// stored under the read lock so a concurrent AddWord cannot be missed
	if cacheable {
		c.hotCache.Put(prefix, limit, suggestions)
	}
	return suggestions
}

// Stats reports dictionary and cache counters.
func (c *Completer) Stats() map[string]int {
	c.mu.RLock()
	stats := map[string]int{
		"totalWords":  c.dict.Len(),
		"loadedWords": c.loadStats.Words,
		"addedWords":  c.added,
		"chunks":      c.loadStats.Chunks,
	}
	c.mu.RUnlock()

	for k, v := range c.hotCache.Stats() {
		stats[k] = v
	}
	return stats
}
