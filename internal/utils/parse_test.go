package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseTOMLWithRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	content := "[server]\nmax_limit = 12\nenable_filter = false\n\n[dict]\npath = \"words.txt\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	raw, err := ParseTOMLWithRecovery(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	server, ok := ExtractSection(raw, "server")
	if !ok {
		t.Fatal("server section missing")
	}
	if v, ok := ExtractInt(server, "max_limit"); !ok || v != 12 {
		t.Errorf("max_limit = %d (%v), want 12", v, ok)
	}
	if v, ok := ExtractBool(server, "enable_filter"); !ok || v {
		t.Errorf("enable_filter = %v (%v), want false", v, ok)
	}
	if _, ok := ExtractInt(server, "missing"); ok {
		t.Error("missing key reported as present")
	}

	dict, _ := ExtractSection(raw, "dict")
	if v, ok := ExtractString(dict, "path"); !ok || v != "words.txt" {
		t.Errorf("path = %q (%v), want words.txt", v, ok)
	}
}

func TestSaveAndLoadTOMLFile(t *testing.T) {
	type section struct {
		Name  string `toml:"name"`
		Count int    `toml:"count"`
	}
	path := filepath.Join(t.TempDir(), "out.toml")
	if err := SaveTOMLFile(section{Name: "trie", Count: 3}, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !FileExists(path) {
		t.Fatal("file was not written")
	}

	var got section
	if err := LoadTOMLFile(path, &got); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Name != "trie" || got.Count != 3 {
		t.Errorf("got %+v", got)
	}
}
