package model

import "time"

// SongReport is the result of running the analysis pipeline over one lyric document.
// It wraps the engine output with the provenance the CLI needs for output and history.
//
// Design decision: ProsodyAnalysis stays a pure engine value. Everything that
// depends on where the text came from or when it was analysed lives here, so the
// engine output can be compared byte for byte between runs.
type SongReport struct {
	// Song is the name the analysis is filed under in the history database.
	// It defaults to the input file name without extension.
	Song string `json:"song"`

	// Source is the path the text was read from, or "-" for stdin.
	Source string `json:"source"`

	// Digest is the hex sha3-256 digest of the normalized text.
	Digest string `json:"digest,omitempty"`

	// ClicheDigest fingerprints the cliché table the analysis ran with.
	// Editing the config file's cliché lists changes it.
	ClicheDigest string `json:"cliche_digest,omitempty"`

	// RunID identifies this analysis in the history database.
	RunID string `json:"run_id,omitempty"`

	// DateAnalyzed is when the report was created.
	DateAnalyzed time.Time `json:"date_analyzed"`

	// Text is the lyric text handed to the engine.
	// Excluded from JSON; the analysis already carries every analysed line.
	Text string `json:"-"`

	// Analysis is the engine output.
	Analysis *ProsodyAnalysis `json:"analysis,omitempty"`

	// Summary condenses Analysis for quick review.
	Summary *Summary `json:"summary,omitempty"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Cancelled is true if the pipeline stopped on context cancellation.
	Cancelled bool `json:"cancelled,omitempty"`

	// Error holds the last step error, if any.
	Error error `json:"-"`

	// ErrorMessage is Error as text for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewSongReport creates a report for the given song name, source and text.
func NewSongReport(song, source, text string) *SongReport {
	return &SongReport{
		Song:           song,
		Source:         source,
		Text:           text,
		DateAnalyzed:   time.Now(),
		PerformedSteps: make([]string, 0),
	}
}

// Failed reports whether any pipeline step recorded an error.
func (r *SongReport) Failed() bool {
	return r.Error != nil || r.ErrorMessage != ""
}
