package source

import "errors"

var (
	// ErrEmptyPath is returned when an input path is empty.
	ErrEmptyPath = errors.New("empty input path")

	// ErrInputTooLarge is returned when a document exceeds the size cap.
	ErrInputTooLarge = errors.New("input too large")

	// ErrUnsupportedFormat is returned for file extensions that are not lyric documents.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)
