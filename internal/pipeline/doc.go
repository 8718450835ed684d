// Package pipeline runs lyric documents through a sequence of steps.
//
// The standard pipeline loads a document, normalizes its text, fingerprints
// it, runs the prosody engine and condenses the result into a summary. Each
// stage is a Step that receives the current SongReport and can modify it.
//
// Design decision: the engine itself is a pure function of text. Everything
// that touches files, encodings or logging happens in steps around it, so the
// engine stays easy to test and reuse.
//
// The BatchProcessor analyses several documents concurrently with errgroup,
// bounded by a configurable limit.
package pipeline
