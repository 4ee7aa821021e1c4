// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the wordtrie completion server or its debugging CLI.

wordtrie answers "every word starting with this prefix, heaviest first" from a
weighted prefix trie. Equal weights come back in lexicographic order.

# Usage

Serve msgpack completions over stdin/stdout from a word list:

	wordtrie -dict words.txt

Use a weighted list or a directory of ranked chunks, with debug logs:

	wordtrie -dict words.tsv -d
	wordtrie -dict data/ -chunks 3

Run the interactive CLI:

	wordtrie -c -dict words.txt -limit 10 -prmin 2

# Dictionaries

A .txt file holds one word per line, all with weight 0. A .tsv or .wts file holds
"word weight" lines. A directory holds dict_0001.bin, dict_0002.bin, ... ranked
chunks where rank 1 is the heaviest word.

# Configuration

Settings live in config.toml under the user config directory, created with defaults
on first run. Flags given on the command line override it.

	[server]
	max_limit = 64
	default_limit = 10
	min_prefix = 1
	max_prefix = 60
	enable_filter = true

	[dict]
	path = "dictionary.txt"
	max_chunks = 0

See package server for the IPC protocol.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordtrie/internal/cli"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/server"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0"
	AppName = "wordtrie"
	gh      = "https://github.com/bastiangx/wordtrie"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, dictionary and the chosen frontend together.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dictPath := flag.String("dict", defaults.Dict.Path, "Word list file or directory of dict_*.bin chunks")
	configFile := flag.String("config", "", "Path to a config.toml")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaults.CLI.DefaultLimit, "Number of suggestions to return")
	minPrefix := flag.Int("prmin", defaults.CLI.DefaultMinLen, "Minimum prefix length for suggestions")
	maxPrefix := flag.Int("prmax", defaults.CLI.DefaultMaxLen, "Maximum prefix length for suggestions")
	noFilter := flag.Bool("no-filter", defaults.CLI.DefaultNoFilter, "Disable input filtering (DBG only)")
	maxChunks := flag.Int("chunks", defaults.Dict.MaxChunks, "Number of chunks to load from a chunk directory (0 for all)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	pathResolver, err := utils.NewPathResolver(AppName)
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	appConfig, configPath := config.LoadConfigWithPriority(*configFile, pathResolver.GetConfigPath("config.toml"))
	log.Debugf("Using config file: (%s)", utils.GetAbsolutePath(configPath))

	// flags given explicitly win over the config file
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["dict"] {
		*dictPath = appConfig.Dict.Path
	}
	if !set["chunks"] {
		*maxChunks = appConfig.Dict.MaxChunks
	}
	if !set["limit"] {
		*limit = appConfig.CLI.DefaultLimit
	}
	if !set["prmin"] {
		*minPrefix = appConfig.CLI.DefaultMinLen
	}
	if !set["prmax"] {
		*maxPrefix = appConfig.CLI.DefaultMaxLen
	}
	if !set["no-filter"] {
		*noFilter = appConfig.CLI.DefaultNoFilter
	}

	completer := suggest.NewCompleter()
	resolvedDict, err := pathResolver.ResolveDictPath(*dictPath)
	if err != nil {
		log.Warnf("Dictionary %s not found, running with empty dict...", *dictPath)
	} else if err := completer.LoadDictionary(resolvedDict, *maxChunks); err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minPrefix", *minPrefix,
			"maxPrefix", *maxPrefix,
			"limit", *limit,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(completer, *minPrefix, *maxPrefix, *limit, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	srv := server.NewServer(completer, appConfig, configPath)
	showStartupInfo(resolvedDict, completer.Stats()["totalWords"])

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// printVersion prints a styled version banner.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("[ wordtrie ] weighted prefix completions")
	logger.Print("", "version", Version)
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(dictPath string, words int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("dictionary: ( %s )", dictPath)
	log.Infof("words: %s", utils.FormatWithCommas(words))
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}
