package trie

import (
	"bufio"
	"os"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tchap/go-patricia/v2/patricia"
)

func loadWords(t testing.TB, path string) []string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	return words
}

func TestInserting(t *testing.T) {
	dict := New[int]()
	assert.Empty(t, dict.Words("A"))

	dict.Insert("A", 1)
	assert.Equal(t, []Pair[int]{{"A", 1}}, dict.Words("A"))

	dict.Insert("AA", 2)
	assert.Equal(t, []Pair[int]{{"AA", 2}, {"A", 1}}, dict.Words("A"))

	dict.Insert("ABC", 3)
	assert.Equal(t, []Pair[int]{{"ABC", 3}, {"AA", 2}, {"A", 1}}, dict.Words("A"))

	// overwrite keeps the rest of the tree untouched
	dict.Insert("A", 10)
	assert.Equal(t, []Pair[int]{{"A", 10}, {"ABC", 3}, {"AA", 2}}, dict.Words("A"))
	assert.Equal(t, 3, dict.Len())
}

func TestEqualWeightsAreLexicographic(t *testing.T) {
	dict := Build([]Pair[int]{
		{"AB", 2},
		{"AC", 1},
		{"AA", 1},
		{"AD", 1},
	})

	assert.Equal(t, []Pair[int]{
		{"AB", 2},
		{"AA", 1},
		{"AC", 1},
		{"AD", 1},
	}, dict.Words("A"))
}

func TestEmptyTrie(t *testing.T) {
	dict := New[int]()
	words := dict.Words("anything")
	require.NotNil(t, words)
	assert.Len(t, words, 0)
	assert.Empty(t, dict.Words(""))

	var zero Node[int]
	assert.Empty(t, zero.Words(""))
}

func TestBuilding(t *testing.T) {
	words := loadWords(t, "testdata/dictionary.txt")
	dict := BuildWithoutWeights[int](words)

	assert.Len(t, dict.Words(""), len(words))
	assert.Empty(t, dict.Words("not_in_dictionary"))
	assert.Equal(t, []Pair[int]{
		{"test", 0},
		{"testament", 0},
		{"tested", 0},
		{"tester", 0},
		{"testern", 0},
		{"testify", 0},
		{"testimonied", 0},
		{"testimonies", 0},
		{"testimony", 0},
		{"testiness", 0},
		{"testril", 0},
		{"testy", 0},
	}, dict.Words("test"))
}

func TestNonASCII(t *testing.T) {
	dict := BuildWithoutWeights[int]([]string{"úpěl"})
	assert.Equal(t, []Pair[int]{{"úpěl", 0}}, dict.Words("ú"))
	assert.Equal(t, []Pair[int]{{"úpěl", 0}}, dict.Words("úpě"))

	// the first byte of a multi-byte rune is not an edge on its own
	assert.Empty(t, dict.Words(string([]byte("ú")[:1])))
	assert.Empty(t, dict.Words("u"))
}

func TestEmptyWord(t *testing.T) {
	dict := Build([]Pair[int]{{"", 5}, {"a", 7}})
	assert.Equal(t, []Pair[int]{{"a", 7}, {"", 5}}, dict.Words(""))
	assert.Equal(t, []Pair[int]{{"a", 7}}, dict.Words("a"))

	w, ok := dict.Get("")
	assert.True(t, ok)
	assert.Equal(t, 5, w)
}

func TestExactWordComesBeforeLongerTies(t *testing.T) {
	dict := Build([]Pair[int]{{"carton", 4}, {"cart", 4}, {"car", 4}, {"care", 9}})
	assert.Equal(t, []Pair[int]{
		{"care", 9},
		{"car", 4},
		{"cart", 4},
		{"carton", 4},
	}, dict.Words("car"))
}

func TestBuildLastDuplicateWins(t *testing.T) {
	dict := Build([]Pair[int]{{"go", 1}, {"gopher", 2}, {"go", 3}})
	assert.Equal(t, []Pair[int]{{"go", 3}, {"gopher", 2}}, dict.Words("g"))
}

func TestInsertIdempotent(t *testing.T) {
	once := Build([]Pair[int]{{"alpha", 3}, {"alps", 1}})
	twice := Build([]Pair[int]{{"alpha", 3}, {"alps", 1}, {"alpha", 3}})

	for _, prefix := range []string{"", "a", "alp", "alpha", "x"} {
		assert.Equal(t, once.Words(prefix), twice.Words(prefix), "prefix %q", prefix)
	}
}

func TestReinsertOnlyChangesOneEntry(t *testing.T) {
	dict := Build([]Pair[int]{{"ab", 1}, {"abc", 2}, {"abd", 3}, {"b", 4}})
	before := dict.Words("")

	dict.Insert("abc", 42)
	after := dict.Words("")
	require.Len(t, after, len(before))

	weights := make(map[string]int, len(after))
	for _, p := range after {
		weights[p.Word] = p.Weight
	}
	for _, p := range before {
		if p.Word == "abc" {
			assert.Equal(t, 42, weights[p.Word])
			continue
		}
		assert.Equal(t, p.Weight, weights[p.Word], "word %q", p.Word)
	}
}

func TestOrderingLaw(t *testing.T) {
	words := loadWords(t, "testdata/dictionary.txt")
	pairs := make([]Pair[int], len(words))
	for i, w := range words {
		// few distinct weights so ties are common
		pairs[len(words)-1-i] = Pair[int]{Word: w, Weight: len(w) % 3}
	}
	dict := Build(pairs)

	prefixes := []string{"", "a", "te", "test", "super", "b", "ú", "zz"}
	for _, prefix := range prefixes {
		result := dict.Words(prefix)
		for i := 1; i < len(result); i++ {
			prev, cur := result[i-1], result[i]
			require.GreaterOrEqual(t, prev.Weight, cur.Weight, "prefix %q at %d", prefix, i)
			if prev.Weight == cur.Weight {
				assert.Less(t, prev.Word, cur.Word, "prefix %q at %d", prefix, i)
			}
		}
	}
}

func TestTerminalWordMatchesPath(t *testing.T) {
	dict := BuildWithoutWeights[int]([]string{"ABC", "AB", "ÀB"})
	var check func(n *Node[int], path string)
	check = func(n *Node[int], path string) {
		if n.terminal != nil {
			assert.Equal(t, path, n.terminal.Word)
		}
		for i, e := range n.children {
			if i > 0 {
				assert.Less(t, n.children[i-1].r, e.r)
			}
			check(e.node, path+string(e.r))
		}
	}
	check(dict, "")

	// "A" is an internal node without a word of its own
	assert.Nil(t, dict.find("A").terminal)
}

func TestGet(t *testing.T) {
	dict := Build([]Pair[float64]{{"pi", 3.14}, {"phi", 1.618}})

	w, ok := dict.Get("pi")
	assert.True(t, ok)
	assert.Equal(t, 3.14, w)

	_, ok = dict.Get("p")
	assert.False(t, ok)
	_, ok = dict.Get("tau")
	assert.False(t, ok)
}

func TestTop(t *testing.T) {
	dict := Build([]Pair[int]{{"a", 1}, {"ab", 2}, {"abc", 3}, {"abd", 3}})

	testCases := []struct {
		limit    int
		expected []Pair[int]
	}{
		{0, []Pair[int]{{"abc", 3}, {"abd", 3}, {"ab", 2}, {"a", 1}}},
		{-1, []Pair[int]{{"abc", 3}, {"abd", 3}, {"ab", 2}, {"a", 1}}},
		{2, []Pair[int]{{"abc", 3}, {"abd", 3}}},
		{10, []Pair[int]{{"abc", 3}, {"abd", 3}, {"ab", 2}, {"a", 1}}},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, dict.Top("a", tc.limit), "limit %d", tc.limit)
	}
}

func TestStringWeights(t *testing.T) {
	dict := Build([]Pair[string]{{"x1", "b"}, {"x2", "a"}, {"x3", "b"}})
	assert.Equal(t, []Pair[string]{{"x1", "b"}, {"x3", "b"}, {"x2", "a"}}, dict.Words("x"))
}

// Every distinct word must come back exactly once, matching an independent trie.
func TestMatchesPatriciaContents(t *testing.T) {
	words := loadWords(t, "testdata/dictionary.txt")
	words = append(words, "test", "apple", "band", "test")

	dict := New[int]()
	oracle := patricia.NewTrie()
	for i, w := range words {
		dict.Insert(w, i)
		oracle.Set(patricia.Prefix(w), i)
	}

	for _, prefix := range []string{"", "te", "test", "band", "super", "q"} {
		expected := map[string]int{}
		visit := func(p patricia.Prefix, item patricia.Item) error {
			expected[string(p)] = item.(int)
			return nil
		}
		var err error
		if prefix == "" {
			err = oracle.Visit(visit)
		} else {
			err = oracle.VisitSubtree(patricia.Prefix(prefix), visit)
		}
		require.NoError(t, err)

		got := map[string]int{}
		result := dict.Words(prefix)
		for _, p := range result {
			got[p.Word] = p.Weight
		}
		assert.Len(t, result, len(expected), "prefix %q", prefix)
		assert.Equal(t, expected, got, "prefix %q", prefix)
	}
}

func TestCollectIsLexicographic(t *testing.T) {
	words := loadWords(t, "testdata/dictionary.txt")
	dict := New[int]()
	for i := len(words) - 1; i >= 0; i-- {
		dict.Insert(words[i], 0)
	}

	var collected []Pair[int]
	dict.collect(&collected)
	got := make([]string, len(collected))
	for i, p := range collected {
		got[i] = p.Word
	}
	assert.True(t, sort.StringsAreSorted(got))
}

func TestInvalidUTF8WalksAsReplacementRune(t *testing.T) {
	dict := New[int]()
	dict.Insert("\xffx", 1)
	dict.Insert("\uFFFDy", 2)

	// both words hang below the same U+FFFD edge; terminals keep the inserted bytes
	assert.Equal(t, []Pair[int]{{"\uFFFDy", 2}, {"\xffx", 1}}, dict.Words("\xff"))
	assert.Equal(t, dict.Words("\xff"), dict.Words("\uFFFD"))
	_, ok := dict.Get("\uFFFDx")
	assert.True(t, ok)
}
