/*
Package dictionary reads word lists from disk and turns them into tries.

Three on-disk formats are understood:

  - .txt: one word per line. Every word gets the zero weight.
  - .tsv/.wts: a word, whitespace, then an integer weight. A line with only a word
    gets the zero weight.
  - dict_NNNN.bin: ranked binary chunks. A little-endian int32 word count, then for
    each word a uint16 length, the word bytes and a uint16 rank. Rank 1 is the most
    frequent word and becomes weight 65535.

I/O and decoding failures are returned to the caller; the trie itself never fails.
*/
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

// LoadStats describes what a Load call read.
type LoadStats struct {
	Format FileFormat
	Lines  int
	Words  int
	Chunks int
}

// ReadWords reads a newline-delimited word list. Blank lines are skipped and a
// trailing carriage return is dropped.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSuffix(scanner.Text(), "\r")
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return words, nil
}

// LoadWords opens path and reads it as a word list.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer file.Close()

	words, err := ReadWords(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

// ReadWeighted reads "word weight" lines.
func ReadWeighted(r io.Reader) ([]trie.Pair[int], error) {
	var pairs []trie.Pair[int]
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		switch len(fields) {
		case 0:
			continue
		case 1:
			pairs = append(pairs, trie.Pair[int]{Word: fields[0]})
		case 2:
			weight, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid weight %q: %w", lineNum, fields[1], err)
			}
			pairs = append(pairs, trie.Pair[int]{Word: fields[0], Weight: weight})
		default:
			return nil, fmt.Errorf("line %d: expected word and weight, got %d fields", lineNum, len(fields))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read weighted list: %w", err)
	}
	return pairs, nil
}

// Load reads a single dictionary file, detecting its format from the name.
func Load(path string) (*trie.Node[int], LoadStats, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, LoadStats{}, err
	}
	stats := LoadStats{Format: format}

	switch format {
	case FormatText:
		words, err := LoadWords(path)
		if err != nil {
			return nil, stats, err
		}
		stats.Lines = len(words)
		dict := trie.BuildWithoutWeights[int](words)
		stats.Words = dict.Len()
		log.Debugf("Loaded %d words from %s", stats.Words, path)
		return dict, stats, nil

	case FormatWeighted:
		file, err := os.Open(path)
		if err != nil {
			return nil, stats, fmt.Errorf("failed to open weighted list %s: %w", path, err)
		}
		defer file.Close()
		pairs, err := ReadWeighted(file)
		if err != nil {
			return nil, stats, fmt.Errorf("%s: %w", path, err)
		}
		stats.Lines = len(pairs)
		dict := trie.Build(pairs)
		stats.Words = dict.Len()
		log.Debugf("Loaded %d weighted words from %s", stats.Words, path)
		return dict, stats, nil

	case FormatChunk:
		pairs, err := LoadChunk(path)
		if err != nil {
			return nil, stats, err
		}
		stats.Lines = len(pairs)
		stats.Chunks = 1
		dict := trie.Build(pairs)
		stats.Words = dict.Len()
		return dict, stats, nil
	}
	return nil, stats, fmt.Errorf("unsupported format %v for %s", format, path)
}

// LoadPath loads a file with Load, or every chunk of a directory with a ChunkSet.
// maxChunks only applies to directories; 0 loads all of them.
func LoadPath(path string, maxChunks int) (*trie.Node[int], LoadStats, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("failed to stat dictionary %s: %w", path, err)
	}
	if !info.IsDir() {
		return Load(path)
	}

	set := NewChunkSet(path)
	available, err := set.Available()
	if err != nil {
		return nil, LoadStats{}, err
	}
	if maxChunks <= 0 || maxChunks > len(available) {
		maxChunks = len(available)
	}
	dict, err := set.Build(maxChunks)
	if err != nil {
		return nil, LoadStats{}, err
	}
	return dict, LoadStats{Format: FormatChunk, Words: dict.Len(), Lines: dict.Len(), Chunks: maxChunks}, nil
}
