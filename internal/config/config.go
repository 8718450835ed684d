package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "lyricscan"

	// DefaultBatchSize is the number of documents analysed concurrently.
	// Analysis is CPU-bound and fast, so a small pool keeps output responsive
	// without oversubscribing the machine.
	DefaultBatchSize = 4

	// DefaultMaxInputSize caps the size of a single lyric document.
	// 1MB is far beyond any song and stops a mistyped path to a binary
	// or log file from being read into memory.
	DefaultMaxInputSize = 1024 * 1024 // 1MB

	// StdinSource is the input name that reads lyrics from standard input.
	StdinSource = "-"
)

// Config holds all configuration options for lyricscan.
// It is populated from CLI flags, the YAML config file and environment
// overrides, then passed down explicitly rather than held in global state.
//
// Design decision: a single flat struct, as the option set is small.
type Config struct {
	// Inputs is the list of lyric files to analyse. "-" reads stdin.
	Inputs []string

	// Title overrides the song name of a single input.
	// When empty the song name is taken from the config file or the file name.
	Title string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// BatchSize is the number of documents analysed concurrently.
	BatchSize int

	// MaxInputSize is the largest accepted document in bytes.
	MaxInputSize int64

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .lyricscan in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// File holds the settings loaded from the config file.
	// Nil when no config file was found.
	File *File

	// JSONReport selects the JSON report. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects the Markdown report. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// DBDir is the directory holding the SQLite history database.
	// Defaults to the XDG data directory (~/.local/share/lyricscan on Linux).
	DBDir string

	// SaveToDB indicates whether analyses are recorded in the history database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		BatchSize:    DefaultBatchSize,
		MaxInputSize: DefaultMaxInputSize,
		DBDir:        XDGDataDir(),
		SaveToDB:     true,
	}
}

// XDGDataDir returns the XDG data directory for lyricscan.
// On Linux: ~/.local/share/lyricscan
// On macOS: ~/Library/Application Support/lyricscan
// On Windows: %LOCALAPPDATA%\lyricscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for lyricscan.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first problem found.
// It is called once after flag parsing, before any input is read.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.MaxInputSize <= 0 {
		return ErrInvalidMaxInputSize
	}

	// A title names one song; it cannot apply to several inputs.
	if c.Title != "" && len(c.Inputs) > 1 {
		return ErrTitleWithMultipleInputs
	}

	if stdinCount(c.Inputs) > 1 {
		return ErrStdinRepeated
	}

	return nil
}

// SongTitle returns the configured song name for an input, or "" when
// neither the --title flag nor the config file names it.
func (c *Config) SongTitle(input string) string {
	if c.Title != "" {
		return c.Title
	}
	if c.File == nil {
		return ""
	}
	return c.File.SongTitle(input)
}

func stdinCount(inputs []string) int {
	n := 0
	for _, in := range inputs {
		if in == StdinSource {
			n++
		}
	}
	return n
}
