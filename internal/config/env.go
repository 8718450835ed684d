package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override defaults. Flags given on the command
// line take precedence; the CLI applies the environment before parsing flags
// into the Config.
const (
	// EnvDBDir overrides the history database directory.
	EnvDBDir = "LYRICSCAN_DB_DIR"

	// EnvBatch overrides the batch size.
	EnvBatch = "LYRICSCAN_BATCH"

	// EnvNoSave disables history recording when set to a true value.
	EnvNoSave = "LYRICSCAN_NO_SAVE"
)

// DefaultEnvFile is the dotenv file read from the current directory.
const DefaultEnvFile = ".env"

// LoadEnvFile loads variables from a dotenv file into the process environment.
// Variables already set in the environment are not overwritten.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv copies the LYRICSCAN_* environment overrides into c.
// An unparsable value is reported and leaves the field unchanged.
func (c *Config) ApplyEnv() error {
	if dir := os.Getenv(EnvDBDir); dir != "" {
		c.DBDir = dir
	}

	if v := os.Getenv(EnvBatch); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvBatch, v, err)
		}
		c.BatchSize = n
	}

	if v := os.Getenv(EnvNoSave); v != "" {
		noSave, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvNoSave, v, err)
		}
		c.SaveToDB = !noSave
	}

	return nil
}
