// Package log provides slog loggers that keep lyric content out of log output.
//
// Lyrics under analysis are usually unpublished. Logs, on the other hand, end
// up in terminals, CI output and bug reports. The PrivacyHandler sits between
// slog and the real handler and replaces lyric content with a length marker:
//   - values under content keys (lyrics, text, line, content, verse, chorus, ...)
//   - any multi-line string value, whatever its key
//
// Song names, file paths, digests and counts pass through unchanged, so logs
// stay useful for debugging.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("loaded input", "song", "night-drive", "text", text)
//	// text=[redacted: 412 chars]
//
//	slog.SetDefault(logger)
package log
