// Package config provides configuration structures and utilities for lyricscan.
// It covers CLI options, the .lyricscan YAML file (custom clichés and song
// titles), .env overrides and the XDG directories used for history.
package config
