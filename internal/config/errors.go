package config

import "errors"

// Configuration validation errors returned by Config.Validate.
//
// Design decision: package-level sentinels so callers can use errors.Is
// while the CLI still prints a readable message.
var (
	// ErrNoInput is returned when no lyric file or "-" is given.
	ErrNoInput = errors.New("no input specified: provide a lyric file or - for stdin")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown are given.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxInputSize is returned when the input size cap is not positive.
	ErrInvalidMaxInputSize = errors.New("invalid max input size: must be positive")

	// ErrTitleWithMultipleInputs is returned when --title is combined with several inputs.
	ErrTitleWithMultipleInputs = errors.New("--title can only be used with a single input")

	// ErrStdinRepeated is returned when "-" appears more than once.
	ErrStdinRepeated = errors.New("stdin (-) can only be read once")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
