package config

import (
	"path/filepath"
	"strings"

	"github.com/nao1215/lyricscan/internal/prosody"
)

// SongConfig holds per-song settings.
type SongConfig struct {
	// Title is the song name the analysis is filed under in history.
	Title string `yaml:"title,omitempty"`
}

// File represents the structure of the .lyricscan configuration file.
type File struct {
	// Cliches are extra phrases appended to the built-in cliché table.
	// An entry whose phrase is already in the table replaces its suggestion.
	Cliches []prosody.ClicheEntry `yaml:"cliches,omitempty"`

	// IgnoreCliches are phrases removed from the cliché table.
	// Matching is case-insensitive.
	IgnoreCliches []string `yaml:"ignoreCliches,omitempty"`

	// Songs maps input file names (base name, with extension) to per-song settings.
	Songs map[string]SongConfig `yaml:"songs,omitempty"`
}

// ClicheTable returns the built-in table with the file's additions and removals applied.
// A nil File yields the built-in table.
func (cf *File) ClicheTable() []prosody.ClicheEntry {
	table := prosody.DefaultClicheTable()
	if cf == nil {
		return table
	}

	ignored := make(map[string]bool, len(cf.IgnoreCliches))
	for _, p := range cf.IgnoreCliches {
		ignored[phraseKey(p)] = true
	}

	out := make([]prosody.ClicheEntry, 0, len(table)+len(cf.Cliches))
	index := make(map[string]int, len(table)+len(cf.Cliches))
	add := func(e prosody.ClicheEntry) {
		e.Phrase = strings.TrimSpace(e.Phrase)
		key := phraseKey(e.Phrase)
		if key == "" || ignored[key] {
			return
		}
		if i, ok := index[key]; ok {
			out[i].Suggestion = e.Suggestion
			return
		}
		index[key] = len(out)
		out = append(out, e)
	}

	for _, e := range table {
		add(e)
	}
	for _, e := range cf.Cliches {
		add(e)
	}
	return out
}

// SongTitle returns the configured title for an input path, or "" when none is set.
// Entries are keyed by base file name so the same config works from any directory.
func (cf *File) SongTitle(input string) string {
	if cf == nil {
		return ""
	}
	if song, ok := cf.Songs[filepath.Base(input)]; ok {
		return song.Title
	}
	return ""
}

func phraseKey(p string) string {
	return strings.ToLower(strings.TrimSpace(p))
}
