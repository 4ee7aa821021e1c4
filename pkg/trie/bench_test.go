package trie

import "testing"

var benchResult []Pair[int]

func benchDict(b *testing.B) *Node[int] {
	b.Helper()
	return BuildWithoutWeights[int](loadWords(b, "testdata/dictionary.txt"))
}

// empty prefix is the worst case for building the result slice
func BenchmarkWordsAll(b *testing.B) {
	dict := benchDict(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchResult = dict.Words("")
	}
}

func BenchmarkWordsLongPrefix(b *testing.B) {
	dict := benchDict(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchResult = dict.Words("superserviceabl")
	}
}

func BenchmarkInsert(b *testing.B) {
	words := loadWords(b, "testdata/dictionary.txt")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dict := New[int]()
		for j, w := range words {
			dict.Insert(w, j)
		}
	}
}
