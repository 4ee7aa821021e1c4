package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

// maxChunkWords is the sanity bound on a chunk header.
const maxChunkWords = 1000000

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ID        int
	Filename  string
	WordCount int
}

// SizeOption is one loadable dictionary size: the first ChunkCount chunks.
type SizeOption struct {
	ChunkCount int
	WordCount  int
	SizeLabel  string
}

// ChunkSet is a directory of dict_NNNN.bin files.
type ChunkSet struct {
	dirPath string
}

// NewChunkSet returns a ChunkSet rooted at dirPath.
func NewChunkSet(dirPath string) *ChunkSet {
	return &ChunkSet{dirPath: dirPath}
}

// ChunkFilename returns the file name used for chunk id.
func ChunkFilename(id int) string {
	return fmt.Sprintf("dict_%04d.bin", id)
}

// Available scans the directory for chunk files, sorted by ID.
func (cs *ChunkSet) Available() ([]ChunkInfo, error) {
	pattern := filepath.Join(cs.dirPath, "dict_*.bin")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		// dict_0001.bin -> 1
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			log.Debugf("Skipping %s: not a chunk file", file)
			continue
		}
		wordCount, err := chunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
			wordCount = 0
		}
		chunks = append(chunks, ChunkInfo{ID: id, Filename: file, WordCount: wordCount})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ID < chunks[j].ID
	})
	return chunks, nil
}

// Build loads the first count chunks, in ID order, into a new trie.
// A word present in several chunks keeps the weight from the last one.
func (cs *ChunkSet) Build(count int) (*trie.Node[int], error) {
	if count < 1 {
		return nil, fmt.Errorf("minimum dictionary size is 1 chunk")
	}
	chunks, err := cs.Available()
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunk files found in %s", cs.dirPath)
	}
	if count > len(chunks) {
		return nil, fmt.Errorf("requested %d chunks, only %d available in %s", count, len(chunks), cs.dirPath)
	}

	dict := trie.New[int]()
	for _, chunk := range chunks[:count] {
		pairs, err := LoadChunk(chunk.Filename)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", chunk.ID, err)
		}
		for _, p := range pairs {
			dict.Insert(p.Word, p.Weight)
		}
		log.Debugf("Chunk %d loaded: %d words", chunk.ID, len(pairs))
	}
	return dict, nil
}

// SizeOptions lists the cumulative word counts for each possible chunk count.
func (cs *ChunkSet) SizeOptions() ([]SizeOption, error) {
	chunks, err := cs.Available()
	if err != nil {
		return nil, err
	}

	options := make([]SizeOption, 0, len(chunks))
	totalWords := 0
	for i, chunk := range chunks {
		totalWords += chunk.WordCount
		options = append(options, SizeOption{
			ChunkCount: i + 1,
			WordCount:  totalWords,
			SizeLabel:  fmt.Sprintf("%dK words", totalWords/1000),
		})
	}
	return options, nil
}

// chunkWordCount reads the word count from a chunk file's header
func chunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

// LoadChunk reads one chunk file.
func LoadChunk(filename string) ([]trie.Pair[int], error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	pairs, err := ReadChunk(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return pairs, nil
}

// ReadChunk decodes a binary chunk. Ranks become weights, rank 1 being the heaviest.
func ReadChunk(r io.Reader) ([]trie.Pair[int], error) {
	var totalEntries int32
	if err := binary.Read(r, binary.LittleEndian, &totalEntries); err != nil {
		return nil, fmt.Errorf("failed to read chunk header: %w", err)
	}
	if totalEntries < 0 || totalEntries > maxChunkWords {
		return nil, fmt.Errorf("invalid chunk word count %d", totalEntries)
	}

	pairs := make([]trie.Pair[int], 0, totalEntries)
	for len(pairs) < int(totalEntries) {
		var wordLen uint16
		if err := binary.Read(r, binary.LittleEndian, &wordLen); err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("chunk header claims %d words, found %d", totalEntries, len(pairs))
			}
			return nil, fmt.Errorf("failed to read word length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(r, wordBytes); err != nil {
			return nil, fmt.Errorf("failed to read word: %w", err)
		}

		var rank uint16
		if err := binary.Read(r, binary.LittleEndian, &rank); err != nil {
			return nil, fmt.Errorf("failed to read rank: %w", err)
		}

		pairs = append(pairs, trie.Pair[int]{
			Word:   string(wordBytes),
			Weight: rankToWeight(rank),
		})
	}
	return pairs, nil
}

// WriteChunk encodes words, most frequent first, as a binary chunk.
func WriteChunk(w io.Writer, words []string) error {
	if len(words) > math.MaxUint16 {
		return fmt.Errorf("chunk holds at most %d words, got %d", math.MaxUint16, len(words))
	}
	if err := binary.Write(w, binary.LittleEndian, int32(len(words))); err != nil {
		return fmt.Errorf("failed to write chunk header: %w", err)
	}

	ranks := utils.CreateRankList(len(words))
	for i, word := range words {
		if len(word) > math.MaxUint16 {
			return fmt.Errorf("word %d is too long (%d bytes)", i, len(word))
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(len(word))); err != nil {
			return fmt.Errorf("failed to write word length: %w", err)
		}
		if _, err := io.WriteString(w, word); err != nil {
			return fmt.Errorf("failed to write word: %w", err)
		}
		if err := binary.Write(w, binary.LittleEndian, ranks[i]); err != nil {
			return fmt.Errorf("failed to write rank: %w", err)
		}
	}
	return nil
}

// rankToWeight maps rank 1 to 65535, rank 2 to 65534 and so on.
func rankToWeight(rank uint16) int {
	return math.MaxUint16 + 1 - int(rank)
}
