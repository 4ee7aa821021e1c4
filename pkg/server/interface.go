/*
Package server implements msgpack IPC for word completion services.

Clients write msgpack maps to stdin and read one msgpack map per request from stdout.
Every message carries an "id" that is echoed back. A message without an "action" is a
completion request:

	{"id": "req_001", "p": "ame", "l": 24}

The response lists words heaviest first with their 1-based rank and weight. Equal
weights come back in lexicographic order. "t" is the lookup time in microseconds:

	{"id": "req_001", "s": [{"w": "america", "r": 1, "wt": 900}, {"w": "amenity", "r": 2, "wt": 12}], "c": 2, "t": 145}

Other actions:

	{"id": "i1", "action": "insert", "word": "amethyst", "weight": 40}
	{"id": "s1", "action": "stats"}
	{"id": "d1", "action": "get_info"}
	{"id": "d2", "action": "get_options"}
	{"id": "d3", "action": "set_size", "chunk_count": 5}
	{"id": "c1", "action": "config", "max_limit": 32, "enable_filter": false}

Malformed or invalid requests get a CompletionError with an HTTP-like code. The
stream stays usable after an error: every frame is read whole before decoding, and
bytes that are not msgpack at all are skipped one code at a time. Many undecodable
frames in a row stop the server.
*/
package server

// Request is any client message. Fields are filled depending on Action.
type Request struct {
	ID     string  `msgpack:"id"`
	Action string  `msgpack:"action,omitempty"`
	Prefix *string `msgpack:"p,omitempty"`
	Limit  int     `msgpack:"l,omitempty"`

	// insert
	Word   string `msgpack:"word,omitempty"`
	Weight int    `msgpack:"weight,omitempty"`

	// set_size
	ChunkCount *int `msgpack:"chunk_count,omitempty"`

	// config
	MaxLimit     *int  `msgpack:"max_limit,omitempty"`
	MinPrefix    *int  `msgpack:"min_prefix,omitempty"`
	MaxPrefix    *int  `msgpack:"max_prefix,omitempty"`
	EnableFilter *bool `msgpack:"enable_filter,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word   string `msgpack:"w"`
	Rank   uint16 `msgpack:"r"`
	Weight int    `msgpack:"wt"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// InsertResponse acknowledges an insert. Created is false when a weight was overwritten.
type InsertResponse struct {
	ID      string `msgpack:"id"`
	Status  string `msgpack:"status"`
	Word    string `msgpack:"word"`
	Weight  int    `msgpack:"weight"`
	Created bool   `msgpack:"created"`
}

// StatsResponse carries completer counters.
type StatsResponse struct {
	ID       string         `msgpack:"id"`
	Status   string         `msgpack:"status"`
	Stats    map[string]int `msgpack:"stats"`
	Requests int            `msgpack:"requests"`
}

// DictionarySizeOption - dictionary size option
type DictionarySizeOption struct {
	ChunkCount int    `msgpack:"chunk_count"`
	WordCount  int    `msgpack:"word_count"`
	SizeLabel  string `msgpack:"size_label"`
}

// DictionaryResponse - dictionary operation response
type DictionaryResponse struct {
	ID              string                 `msgpack:"id"`
	Status          string                 `msgpack:"status"`
	Error           string                 `msgpack:"error,omitempty"`
	TotalWords      int                    `msgpack:"total_words,omitempty"`
	CurrentChunks   int                    `msgpack:"current_chunks,omitempty"`
	AvailableChunks int                    `msgpack:"available_chunks,omitempty"`
	Options         []DictionarySizeOption `msgpack:"options,omitempty"`
}

// ConfigResponse - config operation response
type ConfigResponse struct {
	ID           string `msgpack:"id"`
	Status       string `msgpack:"status"`
	Error        string `msgpack:"error,omitempty"`
	MaxLimit     int    `msgpack:"max_limit"`
	MinPrefix    int    `msgpack:"min_prefix"`
	MaxPrefix    int    `msgpack:"max_prefix"`
	EnableFilter bool   `msgpack:"enable_filter"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
