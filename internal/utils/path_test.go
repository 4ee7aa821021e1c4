package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestConfigDirFor(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("XDG layout only")
	}
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := configDirFor("/home/u", "wordtrie"); got != "/xdg/wordtrie" {
		t.Errorf("configDirFor with XDG_CONFIG_HOME = %q", got)
	}
	t.Setenv("XDG_CONFIG_HOME", "")
	if got := configDirFor("/home/u", "wordtrie"); got != filepath.Join("/home/u", ".config", "wordtrie") {
		t.Errorf("configDirFor without XDG_CONFIG_HOME = %q", got)
	}
}

func TestResolveDictPath(t *testing.T) {
	configDir := t.TempDir()
	execDir := t.TempDir()
	pr := &PathResolver{executableDir: execDir, homeDir: t.TempDir(), configDir: configDir}

	if err := os.MkdirAll(filepath.Join(configDir, "data"), 0755); err != nil {
		t.Fatal(err)
	}
	inData := filepath.Join(configDir, "data", "words.txt")
	if err := os.WriteFile(inData, []byte("a\n"), 0644); err != nil {
		t.Fatal(err)
	}
	nextToBin := filepath.Join(execDir, "near.txt")
	if err := os.WriteFile(nextToBin, []byte("b\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		input string
		want  string
	}{
		{"words.txt", inData},
		{"near.txt", nextToBin},
		{inData, inData},
	}
	for _, tt := range tests {
		got, err := pr.ResolveDictPath(tt.input)
		if err != nil {
			t.Errorf("ResolveDictPath(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveDictPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if _, err := pr.ResolveDictPath("missing.txt"); !os.IsNotExist(err) {
		t.Errorf("ResolveDictPath(missing) error = %v, want not-exist", err)
	}
}

func TestGetConfigPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "wordtrie")
	pr := &PathResolver{executableDir: t.TempDir(), configDir: dir}
	if got := pr.GetConfigPath("config.toml"); got != filepath.Join(dir, "config.toml") {
		t.Errorf("GetConfigPath = %q", got)
	}
	if !FileExists(dir) {
		t.Error("config dir was not created")
	}
}
