package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/lyricscan/internal/model"
	"github.com/nao1215/lyricscan/internal/prosody"
)

// JSONWriter outputs reports in JSON format for tool integration.
//
// Design decision: We use standard encoding/json. The engine types carry
// their JSON tags directly, so no intermediate encoding layer is needed.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in JSON format.
func (w *JSONWriter) Write(report *model.SongReport) (int, error) {
	if report.Summary == nil {
		report.Summary = summaryOf(report)
	}
	return w.writeJSON(report)
}

// WriteSummary outputs only the summary in JSON format.
func (w *JSONWriter) WriteSummary(report *model.SongReport) (int, error) {
	return w.writeJSON(summaryOf(report))
}

// WriteValue outputs any JSON-serializable value with the writer's settings.
// The stress and history commands use it for their own result types.
func (w *JSONWriter) WriteValue(v any) (int, error) {
	return w.writeJSON(v)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Trailing newline for terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}

// JSONReport wraps a song report with the versions that produced it.
//
// Design decision: Analyses are only comparable when the lookup tables
// match, so the table revision travels with every exported report.
type JSONReport struct {
	// Version is the lyricscan version that generated this report.
	Version string `json:"version"`

	// TableVersion is the revision of the engine's lookup tables.
	TableVersion int `json:"table_version"`

	// Report is the full song report.
	Report *model.SongReport `json:"report"`
}

// NewJSONReport creates a JSONReport wrapper with version information.
func NewJSONReport(report *model.SongReport, version string) *JSONReport {
	if report.Summary == nil {
		report.Summary = summaryOf(report)
	}
	return &JSONReport{
		Version:      version,
		TableVersion: prosody.TableVersion,
		Report:       report,
	}
}

// FullJSONWriter outputs complete reports with the metadata wrapper.
type FullJSONWriter struct {
	*JSONWriter

	// version is the lyricscan version string.
	version string
}

// NewFullJSONWriter creates a writer for complete reports with metadata.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write outputs the full report wrapped with metadata.
func (w *FullJSONWriter) Write(report *model.SongReport) (int, error) {
	return w.writeJSON(NewJSONReport(report, w.version))
}
