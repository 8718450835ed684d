// Package prosody is a heuristic prosody engine for song lyrics.
//
// It turns raw lyric text into per-line metrics, rhyme schemes, per-section
// stability and cliché detections. Everything is a pure function of the input
// text: there is no I/O, no logging, and no state shared across calls, so the
// same text always produces the same result.
//
// # Pipeline
//
//	raw text
//	  -> lines (blank lines and [Tag] lines removed)
//	  -> LineAnalysis per line (syllables, stress, ending, rhyme key)
//	  -> sections split on [Tag] lines, each with a rhyme scheme and statistics
//	  -> document aggregates (overall stability, dominant scheme)
//
// Cliché detection scans the raw text independently and reports positions on
// physical lines, including tag and blank lines.
//
// # Heuristics
//
// Syllables are counted as runs of a, e, i, o and u, minus a silent final "e",
// with a small exception table. A single-syllable word is stressed unless it is
// on the closed function-word list; every multi-syllable word contributes one
// stressed syllable. Endings are classified by ordered suffix rules and rhymes
// are matched on the last two letters. The results are good enough to color a
// line in an editor; they are not a phonetic transcription.
//
// # Usage
//
//	analysis := prosody.Analyze(text)
//	fmt.Println(analysis.DominantRhymeScheme)
//
//	// With a custom cliché table
//	a := prosody.New(prosody.WithClicheTable(entries))
//	analysis = a.Analyze(text)
package prosody
