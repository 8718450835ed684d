package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/lyricscan/internal/model"
)

// ruleWidth is the width of the horizontal rules in text output.
const ruleWidth = 70

// SimpleWriter outputs human-readable text reports for terminal display.
//
// Design decision: We use plain text with ASCII rules rather than ANSI
// colors so the output pipes cleanly into files and other tools.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with nothing to show are printed.
	showEmpty bool

	// verbose adds the per-line table to every section.
	verbose bool

	// summaryOnly makes Write behave like WriteSummary.
	summaryOnly bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables the per-line breakdown.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithSummaryOnly makes Write print only the header and summary.
func WithSummaryOnly(summaryOnly bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.summaryOnly = summaryOnly
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
func (w *SimpleWriter) Write(report *model.SongReport) (int, error) {
	if w.summaryOnly {
		return w.WriteSummary(report)
	}

	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, summaryOf(report))
	w.writeSections(&sb, report.Analysis)
	w.writeCliches(&sb, report.Analysis)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteSummary outputs the header and summary only.
func (w *SimpleWriter) WriteSummary(report *model.SongReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, summaryOf(report))

	return w.output.Write([]byte(sb.String()))
}

// writeRule writes a titled block separator.
func writeRule(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

// writeHeader writes the report header with provenance information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.SongReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("                          LYRICSCAN REPORT\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Song:           %s\n", report.Song))
	sb.WriteString(fmt.Sprintf("Source:         %s\n", report.Source))
	sb.WriteString(fmt.Sprintf("Analysed:       %s\n", report.DateAnalyzed.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Status:         %s\n", statusText(report)))
	sb.WriteString("\n")
}

// writeSummary writes the condensed metrics.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, s *model.Summary) {
	writeRule(sb, "SUMMARY")

	scheme := s.DominantRhymeScheme
	if scheme == "" {
		scheme = "-"
	}

	sb.WriteString(fmt.Sprintf("  Stability:     %s\n", label(s.OverallStability.String())))
	sb.WriteString(fmt.Sprintf("  Rhyme scheme:  %s\n", scheme))
	sb.WriteString(fmt.Sprintf("  Lines:         %d in %d section(s)\n", s.LineCount, s.SectionCount))
	sb.WriteString(fmt.Sprintf("  Endings:       stable %d, unstable %d, neutral %d\n",
		s.StableCount, s.UnstableCount, s.NeutralCount))
	sb.WriteString(fmt.Sprintf("  Syllables:     %d total, %s stressed per line\n",
		s.TotalSyllables, formatFloat(s.AverageStressed)))
	sb.WriteString(fmt.Sprintf("  Clichés:       %d\n", s.ClicheCount))
	sb.WriteString("\n")
}

// writeSections writes one block per section.
func (w *SimpleWriter) writeSections(sb *strings.Builder, a *model.ProsodyAnalysis) {
	if a == nil || (len(a.Sections) == 0 && !w.showEmpty) {
		return
	}

	writeRule(sb, "SECTIONS")

	if len(a.Sections) == 0 {
		sb.WriteString("  No sections\n\n")
		return
	}

	for _, section := range a.Sections {
		sb.WriteString(fmt.Sprintf("[%s]\n", section.Name))
		sb.WriteString(fmt.Sprintf("  Lines: %d  Stability: %s  Scheme: %s\n",
			section.LineCount, label(section.Stability.String()), section.RhymeScheme))
		sb.WriteString(fmt.Sprintf("  Syllables: avg %s, variance %s\n",
			formatFloat(section.AverageSyllables), formatFloat(section.LineVariance)))

		for _, conn := range section.RhymeConnections {
			sb.WriteString(fmt.Sprintf("  ~ %s rhyme on %q: lines %s\n",
				conn.Type, conn.RhymeSound, joinLineNumbers(conn.Lines)))
		}

		if w.verbose {
			w.writeLines(sb, section.Lines)
		}
		sb.WriteString("\n")
	}
}

// writeLines writes the per-line table of a section.
func (w *SimpleWriter) writeLines(sb *strings.Builder, lines []model.LineAnalysis) {
	sb.WriteString(fmt.Sprintf("  %-4s %-4s %-4s %-9s %-6s %s\n", "#", "Syl", "Str", "Ending", "Rhyme", "Text"))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  %-4d %-4d %-4d %-9s %-6s %s\n",
			line.LineNumber,
			line.SyllableCount,
			line.StressedSyllableCount,
			line.EndingType,
			line.RhymeSound,
			line.Text,
		))
	}
}

// writeCliches writes every cliché detection with its position.
func (w *SimpleWriter) writeCliches(sb *strings.Builder, a *model.ProsodyAnalysis) {
	if a == nil || (len(a.ClicheDetections) == 0 && !w.showEmpty) {
		return
	}

	writeRule(sb, "CLICHÉS")

	if len(a.ClicheDetections) == 0 {
		sb.WriteString("  No clichés detected\n\n")
		return
	}

	for _, d := range a.ClicheDetections {
		sb.WriteString(fmt.Sprintf("  * line %d [%d-%d] %q\n", d.LineNumber, d.StartIndex, d.EndIndex, d.Phrase))
		if d.Suggestion != "" {
			sb.WriteString(fmt.Sprintf("    Try: %s\n", d.Suggestion))
		}
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("Report generated by lyricscan\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}

// joinLineNumbers renders 0-based line indexes as 1-based numbers.
func joinLineNumbers(lines []int) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = strconv.Itoa(l + 1)
	}
	return strings.Join(parts, ", ")
}

// formatFloat renders a metric with two decimals.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
