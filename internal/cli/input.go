// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var wordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

// InputHandler processes user input from stdin, providing
// suggestions. It accepts many flags to control behavior such as
// minimum and maximum prefix length, suggestion limits, and filtering options.
type InputHandler struct {
	completer       suggest.ICompleter
	input           io.Reader
	out             *log.Logger
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	noFilter        bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.ICompleter, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return NewInputHandlerWithIO(completer, minLength, maxLength, limit, noFilter, os.Stdin, os.Stderr)
}

// NewInputHandlerWithIO is NewInputHandler reading prefixes from r and printing to w.
func NewInputHandlerWithIO(completer suggest.ICompleter, minLength, maxLength, limit int, noFilter bool, r io.Reader, w io.Writer) *InputHandler {
	return &InputHandler{
		completer:       completer,
		input:           r,
		out:             logger.NewWithWriter(w, ""),
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
	}
}

// Start reads one prefix per line and prints its suggestions until input ends.
func (h *InputHandler) Start() error {
	h.out.Print("wordtrie CLI")
	h.out.Print("type a prefix and press Enter to see the suggestions (Ctrl+C to exit):")
	reader := bufio.NewReader(h.input)

	for {
		h.out.Print("> ")
		line, err := reader.ReadString('\n')
		if prefix := strings.TrimSpace(line); prefix != "" {
			h.handleInput(prefix)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// handleInput validates one prefix and prints the ranked words for it.
func (h *InputHandler) handleInput(prefix string) {
	length := utf8.RuneCountInString(prefix)
	if length < h.minPrefixLength {
		h.out.Errorf("Prefix too short: %s", prefix)
		return
	}
	if length > h.maxPrefixLength {
		h.out.Errorf("Prefix too long: %s", prefix)
		return
	}

	if !h.noFilter && !utils.IsValidInput(prefix) {
		h.out.Warnf("No suggestions found for prefix: '%s' (filtered out)", prefix)
		return
	}

	start := time.Now()
	suggestions := h.completer.Complete(prefix, h.suggestLimit)
	log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	if len(suggestions) == 0 {
		h.out.Warnf("No suggestions found for prefix: '%s'", prefix)
		return
	}

	h.out.Printf("Found %d suggestions for prefix '%s':", len(suggestions), prefix)
	for i, s := range suggestions {
		h.out.Printf("%2d. %-40s (weight: %8s)", i+1, wordStyle.Render(s.Word), utils.FormatWithCommas(s.Weight))
	}
}
