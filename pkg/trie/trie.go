/*
Package trie implements a weighted prefix-search index.

Each edge of the tree is labelled by one rune, so multi-byte characters are matched
as whole units. A node carries a terminal when an inserted word ends exactly there.

Words returns every word below a prefix ordered by descending weight. Equal weights
keep lexicographic order: the subtree is collected in pre-order with children visited
in ascending rune order, and the result is then sorted with a stable sort on weight alone.

	dict := trie.New[int]()
	dict.Insert("A", 1)
	dict.Insert("AA", 2)
	dict.Insert("ABC", 3)
	dict.Words("A") // [{ABC 3} {AA 2} {A 1}]

A Node is not safe for concurrent mutation. Wrap it behind a lock, or share it read-only
once construction is done.
*/
package trie

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Pair is a word and its weight as returned by Words.
type Pair[W constraints.Ordered] struct {
	Word   string
	Weight W
}

// edge links a node to one of its children.
type edge[W constraints.Ordered] struct {
	r    rune
	node *Node[W]
}

// Node is both the root of a trie and any of its subtries.
// The zero value is an empty trie ready to use.
type Node[W constraints.Ordered] struct {
	// children is kept sorted by rune
	children []edge[W]
	terminal *Pair[W]
}

// New returns an empty trie.
func New[W constraints.Ordered]() *Node[W] {
	return &Node[W]{}
}

// Build inserts pairs in order into a new trie. A repeated word keeps its last weight.
func Build[W constraints.Ordered](pairs []Pair[W]) *Node[W] {
	n := New[W]()
	for _, p := range pairs {
		n.Insert(p.Word, p.Weight)
	}
	return n
}

// BuildWithoutWeights builds a trie where every word carries the zero weight.
func BuildWithoutWeights[W constraints.Ordered](words []string) *Node[W] {
	var zero W
	n := New[W]()
	for _, w := range words {
		n.Insert(w, zero)
	}
	return n
}

// Insert adds word with the given weight, overwriting the weight of an existing entry.
// The empty string is stored on the root. Words are expected to be valid UTF-8: each
// invalid byte is walked as utf8.RuneError, so it shares an edge with a literal U+FFFD.
func (n *Node[W]) Insert(word string, weight W) {
	node := n
	for _, r := range word {
		node = node.childOrCreate(r)
	}
	node.terminal = &Pair[W]{Word: word, Weight: weight}
}

// Words returns every indexed word starting with prefix, heaviest first.
// Ties are in lexicographic order. An unknown prefix yields an empty slice.
// Invalid UTF-8 in prefix is matched rune by rune the same way Insert walks it.
func (n *Node[W]) Words(prefix string) []Pair[W] {
	node := n.find(prefix)
	if node == nil {
		return []Pair[W]{}
	}
	words := make([]Pair[W], 0)
	node.collect(&words)
	sort.SliceStable(words, func(i, j int) bool {
		return words[i].Weight > words[j].Weight
	})
	return words
}

// Top is Words truncated to limit entries. A limit <= 0 returns everything.
func (n *Node[W]) Top(prefix string, limit int) []Pair[W] {
	words := n.Words(prefix)
	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}
	return words
}

// Get returns the weight stored for word.
func (n *Node[W]) Get(word string) (W, bool) {
	node := n.find(word)
	if node == nil || node.terminal == nil {
		var zero W
		return zero, false
	}
	return node.terminal.Weight, true
}

// Len counts the words stored in the subtree rooted at n.
func (n *Node[W]) Len() int {
	count := 0
	if n.terminal != nil {
		count++
	}
	for _, e := range n.children {
		count += e.node.Len()
	}
	return count
}

// find walks prefix from n and returns the landing node, or nil.
func (n *Node[W]) find(prefix string) *Node[W] {
	node := n
	for _, r := range prefix {
		node = node.child(r)
		if node == nil {
			return nil
		}
	}
	return node
}

// collect appends the subtree's terminals in pre-order, children by ascending rune.
func (n *Node[W]) collect(result *[]Pair[W]) {
	if n.terminal != nil {
		*result = append(*result, *n.terminal)
	}
	for _, e := range n.children {
		e.node.collect(result)
	}
}

func (n *Node[W]) search(r rune) int {
	return sort.Search(len(n.children), func(i int) bool {
		return n.children[i].r >= r
	})
}

func (n *Node[W]) child(r rune) *Node[W] {
	i := n.search(r)
	if i < len(n.children) && n.children[i].r == r {
		return n.children[i].node
	}
	return nil
}

func (n *Node[W]) childOrCreate(r rune) *Node[W] {
	i := n.search(r)
	if i < len(n.children) && n.children[i].r == r {
		return n.children[i].node
	}
	child := New[W]()
	n.children = append(n.children, edge[W]{})
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = edge[W]{r: r, node: child}
	return child
}
