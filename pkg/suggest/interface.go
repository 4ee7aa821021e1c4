// Package suggest serves ranked completions from a weighted prefix trie.
package suggest

// ICompleter defines the interface for word completion engines
type ICompleter interface {
	// Complete returns up to limit suggestions for prefix, heaviest first
	Complete(prefix string, limit int) []Suggestion

	// AddWord adds a word or overwrites its weight
	AddWord(word string, weight int)

	// Stats returns statistics about the loaded dictionary
	Stats() map[string]int
}
