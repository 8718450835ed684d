package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/lyricscan/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// maxMarkdownCell is the longest lyric text shown in a table cell.
const maxMarkdownCell = 60

// MarkdownWriter outputs reports in Markdown format for sharing with
// co-writers or pasting into a songbook repository.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation, which gives us tables, mermaid charts and GitHub alerts
// without string templating.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.SongReport) (int, error) {
	md := markdown.NewMarkdown(w.output)
	summary := summaryOf(report)

	w.writeHeader(md, report)
	w.writeSummary(md, summary)
	w.writeSections(md, report.Analysis)
	w.writeCliches(md, report.Analysis)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteSummary outputs the header and summary in Markdown format.
func (w *MarkdownWriter) WriteSummary(report *model.SongReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, summaryOf(report))

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and provenance table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.SongReport) {
	md.H1("Lyric Report: " + report.Song)
	md.PlainText("")

	rows := [][]string{
		{"Source", "`" + report.Source + "`"},
		{"Analysed", report.DateAnalyzed.Format("2006-01-02 15:04:05 MST")},
		{"Status", statusText(report)},
	}
	if report.Digest != "" {
		rows = append(rows, []string{"Digest", "`" + shortDigest(report.Digest) + "`"})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSummary writes the metrics table, the ending chart and an alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, s *model.Summary) {
	md.H2("Summary")
	md.PlainText("")

	scheme := s.DominantRhymeScheme
	if scheme == "" {
		scheme = "-"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Overall stability", label(s.OverallStability.String())},
			{"Dominant rhyme scheme", "`" + scheme + "`"},
			{"Lines", strconv.Itoa(s.LineCount)},
			{"Sections", strconv.Itoa(s.SectionCount)},
			{"Total syllables", strconv.Itoa(s.TotalSyllables)},
			{"Stressed per line", formatFloat(s.AverageStressed)},
			{"Clichés", strconv.Itoa(s.ClicheCount)},
		},
	})
	md.PlainText("")

	if s.LineCount > 0 {
		w.writePieChart(md, s)
	}

	w.writeAlert(md, s)
}

// writePieChart writes a mermaid pie chart of the line ending types.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Line Endings"),
		piechart.WithShowData(true),
	)

	if s.StableCount > 0 {
		chart.LabelAndIntValue(label(model.EndingStable.String()), uint64(s.StableCount))
	}
	if s.UnstableCount > 0 {
		chart.LabelAndIntValue(label(model.EndingUnstable.String()), uint64(s.UnstableCount))
	}
	if s.NeutralCount > 0 {
		chart.LabelAndIntValue(label(model.EndingNeutral.String()), uint64(s.NeutralCount))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes a GitHub alert that points at the most useful next edit.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, s *model.Summary) {
	switch {
	case s.LineCount == 0:
		md.Note("No lyric lines found.")
	case s.ClicheCount > 0:
		md.Warningf(
			"%d cliché(s) detected: %s.",
			s.ClicheCount,
			strings.Join(s.ClichePhrases, ", "),
		)
	case s.OverallStability == model.StabilityUnstable:
		md.Importantf(
			"Unstable endings dominate (%d of %d lines). The song may feel unresolved.",
			s.UnstableCount,
			s.LineCount,
		)
	default:
		md.Tip("No clichés detected.")
	}
	md.PlainText("")
}

// writeSections writes one table per section.
func (w *MarkdownWriter) writeSections(md *markdown.Markdown, a *model.ProsodyAnalysis) {
	md.H2("Sections")
	md.PlainText("")

	if a == nil || len(a.Sections) == 0 {
		md.PlainText("No sections.")
		md.PlainText("")
		return
	}

	for _, section := range a.Sections {
		md.H3(section.Name)
		md.PlainText("")
		md.PlainTextf("%d lines, %s, scheme `%s`, average %s syllables (variance %s)",
			section.LineCount,
			section.Stability,
			section.RhymeScheme,
			formatFloat(section.AverageSyllables),
			formatFloat(section.LineVariance),
		)
		md.PlainText("")

		rows := make([][]string, len(section.Lines))
		for i, line := range section.Lines {
			rows[i] = []string{
				strconv.Itoa(line.LineNumber),
				escapeCell(truncateString(line.Text, maxMarkdownCell)),
				strconv.Itoa(line.SyllableCount),
				strconv.Itoa(line.StressedSyllableCount),
				label(line.EndingType.String()),
				schemeLetterAt(section.RhymeScheme, i),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"#", "Line", "Syllables", "Stressed", "Ending", "Rhyme"},
			Rows:   rows,
		})
		md.PlainText("")

		if len(section.RhymeConnections) > 0 {
			items := make([]string, len(section.RhymeConnections))
			for i, conn := range section.RhymeConnections {
				items[i] = label(conn.Type.String()) + " rhyme on `" + conn.RhymeSound + "`: lines " + joinLineNumbers(conn.Lines)
			}
			md.BulletList(items...)
			md.PlainText("")
		}
	}
}

// writeCliches writes the cliché table.
func (w *MarkdownWriter) writeCliches(md *markdown.Markdown, a *model.ProsodyAnalysis) {
	md.H2("Clichés")
	md.PlainText("")

	if a == nil || len(a.ClicheDetections) == 0 {
		md.PlainText("No clichés detected.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(a.ClicheDetections))
	for i, d := range a.ClicheDetections {
		suggestion := d.Suggestion
		if suggestion == "" {
			suggestion = "-"
		}
		rows[i] = []string{
			strconv.Itoa(d.LineNumber),
			d.Phrase,
			strconv.Itoa(d.StartIndex) + "-" + strconv.Itoa(d.EndIndex),
			suggestion,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Line", "Phrase", "Position", "Suggestion"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by lyricscan*")
}

// schemeLetterAt returns the i-th rune of a rhyme scheme, or "-".
func schemeLetterAt(scheme string, i int) string {
	runes := []rune(scheme)
	if i < 0 || i >= len(runes) {
		return "-"
	}
	return string(runes[i])
}

// escapeCell keeps pipes in lyric text from breaking the table.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// shortDigest shortens a hex digest for display.
func shortDigest(d string) string {
	if len(d) <= 12 {
		return d
	}
	return d[:12]
}

// truncateString truncates a string to maxLen runes with ellipsis.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
