package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Completer is what the server needs from the completion engine.
type Completer interface {
	suggest.ICompleter
	Weight(word string) (int, bool)
	Resize(chunks int) error
	SizeOptions() ([]dictionary.SizeOption, error)
}

// Server handles the IPC for word completions
type Server struct {
	completer    Completer
	config       *config.Config
	configPath   string
	decoder      *msgpack.Decoder
	writer       *bufio.Writer
	encoder      *msgpack.Encoder
	requestCount int
}

// NewServer creates a new completion server using stdin/stdout for IPC
func NewServer(completer Completer, cfg *config.Config, configPath string) *Server {
	return NewServerWithIO(completer, cfg, configPath, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from r and writing responses to w.
func NewServerWithIO(completer Completer, cfg *config.Config, configPath string, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	writer := bufio.NewWriter(w)
	return &Server{
		completer:  completer,
		config:     cfg,
		configPath: configPath,
		decoder:    msgpack.NewDecoder(bufio.NewReader(r)),
		writer:     writer,
		encoder:    msgpack.NewEncoder(writer),
	}
}

// maxBadFrames is how many undecodable frames in a row end the server.
const maxBadFrames = 64

// Start processes requests until the input is closed.
func (s *Server) Start() error {
	log.Debug("Starting msgpack server")
	badFrames := 0
	for {
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("Client closed input")
				return nil
			}
			log.Errorf("Reading request: %v", err)
			s.requestCount++
			if sendErr := s.sendError("", "malformed msgpack frame", 400); sendErr != nil {
				return sendErr
			}
			// a frame cut short by EOF cannot be followed by anything
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			badFrames++
			if badFrames >= maxBadFrames {
				return fmt.Errorf("failed to read request: %d malformed frames in a row: %w", badFrames, err)
			}
			// the decoder has consumed the offending code, carry on from the next byte
			continue
		}
		badFrames = 0
		s.requestCount++
		if err := s.handleRequest(raw); err != nil {
			return err
		}
	}
}

// handleRequest decodes one frame and routes it by action.
func (s *Server) handleRequest(raw msgpack.RawMessage) error {
	var request Request
	if err := msgpack.Unmarshal(raw, &request); err != nil {
		log.Errorf("Unmarshaling request: %v", err)
		return s.sendError("", "invalid request", 400)
	}

	switch request.Action {
	case "":
		return s.handleComplete(request)
	case "insert":
		return s.handleInsert(request)
	case "stats":
		return s.send(StatsResponse{
			ID:       request.ID,
			Status:   "ok",
			Stats:    s.completer.Stats(),
			Requests: s.requestCount,
		})
	case "get_info", "get_options", "set_size":
		return s.handleDictionary(request)
	case "config":
		return s.handleConfig(request)
	default:
		return s.sendError(request.ID, fmt.Sprintf("unknown action: %s", request.Action), 400)
	}
}

func (s *Server) handleComplete(request Request) error {
	if request.Prefix == nil {
		log.Debug("Prefix is missing in request")
		return s.sendError(request.ID, "missing 'p' parameter", 400)
	}
	prefix := *request.Prefix
	srv := s.config.Server

	length := utf8.RuneCountInString(prefix)
	if length < srv.MinPrefix {
		return s.sendError(request.ID, fmt.Sprintf("prefix must be at least %d characters", srv.MinPrefix), 400)
	}
	if length > srv.MaxPrefix {
		return s.sendError(request.ID, fmt.Sprintf("prefix exceeds maximum length of %d characters", srv.MaxPrefix), 400)
	}

	limit := request.Limit
	if limit < 1 {
		limit = srv.DefaultLimit
	}
	if limit > srv.MaxLimit {
		limit = srv.MaxLimit
	}

	start := time.Now()
	var suggestions []suggest.Suggestion
	if !srv.EnableFilter || utils.IsValidInput(prefix) {
		suggestions = s.completer.Complete(prefix, limit)
	} else {
		log.Debugf("Prefix '%s' filtered out", prefix)
	}
	elapsed := time.Since(start)

	ranks := utils.CreateRankList(len(suggestions))
	results := make([]CompletionSuggestion, len(suggestions))
	for i, sg := range suggestions {
		results[i] = CompletionSuggestion{Word: sg.Word, Rank: ranks[i], Weight: sg.Weight}
	}

	return s.send(CompletionResponse{
		ID:          request.ID,
		Suggestions: results,
		Count:       len(results),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleInsert(request Request) error {
	if !utf8.ValidString(request.Word) {
		return s.sendError(request.ID, "word is not valid UTF-8", 400)
	}
	_, existed := s.completer.Weight(request.Word)
	s.completer.AddWord(request.Word, request.Weight)
	log.Debugf("Inserted '%s' with weight %d", request.Word, request.Weight)

	return s.send(InsertResponse{
		ID:      request.ID,
		Status:  "ok",
		Word:    request.Word,
		Weight:  request.Weight,
		Created: !existed,
	})
}

func (s *Server) handleDictionary(request Request) error {
	response := DictionaryResponse{ID: request.ID, Status: "ok"}

	if request.Action == "set_size" {
		if request.ChunkCount == nil {
			return s.sendError(request.ID, "missing 'chunk_count' parameter", 400)
		}
		if err := s.completer.Resize(*request.ChunkCount); err != nil {
			response.Status = "error"
			response.Error = err.Error()
			return s.send(response)
		}
	}

	stats := s.completer.Stats()
	response.TotalWords = stats["totalWords"]
	response.CurrentChunks = stats["chunks"]

	options, err := s.completer.SizeOptions()
	if err != nil {
		// plain word lists have no chunk options
		log.Debugf("No size options: %v", err)
		return s.send(response)
	}
	response.AvailableChunks = len(options)
	if request.Action == "get_options" {
		for _, opt := range options {
			response.Options = append(response.Options, DictionarySizeOption{
				ChunkCount: opt.ChunkCount,
				WordCount:  opt.WordCount,
				SizeLabel:  opt.SizeLabel,
			})
		}
	}
	return s.send(response)
}

func (s *Server) handleConfig(request Request) error {
	response := ConfigResponse{ID: request.ID, Status: "ok"}
	if s.configPath == "" {
		response.Status = "error"
		response.Error = "no config file in use"
	} else if err := s.config.Update(s.configPath, request.MaxLimit, request.MinPrefix, request.MaxPrefix, request.EnableFilter); err != nil {
		log.Errorf("Saving config: %v", err)
		response.Status = "error"
		response.Error = err.Error()
	}

	srv := s.config.Server
	response.MaxLimit = srv.MaxLimit
	response.MinPrefix = srv.MinPrefix
	response.MaxPrefix = srv.MaxPrefix
	response.EnableFilter = srv.EnableFilter
	return s.send(response)
}

// send encodes one response frame and flushes it.
func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Marshaling response: %v", err)
		return fmt.Errorf("failed to encode response: %w", err)
	}
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) error {
	return s.send(CompletionError{ID: id, Error: message, Code: code})
}
