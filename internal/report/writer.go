package report

import (
	"io"

	"github.com/nao1215/lyricscan/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Writer defines the interface for report output.
// Implementations write song reports in various formats.
//
// Design decision: We use an interface so the analyze command can write the
// same report to a file, stdout or both without caring about the format.
type Writer interface {
	// Write outputs the full report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.SongReport) (int, error)

	// WriteSummary outputs only the summary portion of the report.
	WriteSummary(report *model.SongReport) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// The analyze command uses it to save a report file while still
// printing a short summary to the terminal.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.SongReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteSummary outputs the summary to all configured Writers.
func (m *MultiWriter) WriteSummary(report *model.SongReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteSummary(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// titleCaser turns wire names such as "unstable" into display labels.
var titleCaser = cases.Title(language.English)

// label returns the display form of an enum wire name.
func label(s string) string {
	return titleCaser.String(s)
}

// summaryOf returns the report summary, computing it from the analysis
// when the summary step did not run.
func summaryOf(report *model.SongReport) *model.Summary {
	if report.Summary != nil {
		return report.Summary
	}
	return model.NewSummary(report.Analysis)
}

// statusText describes how the pipeline finished for one report.
func statusText(report *model.SongReport) string {
	switch {
	case report.Cancelled:
		return "Cancelled (partial results)"
	case report.ErrorMessage != "":
		return "Error - " + report.ErrorMessage
	case report.Error != nil:
		return "Error - " + report.Error.Error()
	default:
		return "Complete"
	}
}
