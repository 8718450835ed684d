package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/lyricscan/internal/config"
	"github.com/nao1215/lyricscan/internal/database"
	"github.com/nao1215/lyricscan/internal/model"
	"github.com/nao1215/lyricscan/internal/report"
	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"
)

// Trend directions of a comparison, judged by the cliché count.
const (
	trendImproved  = "improved"
	trendWorsened  = "worsened"
	trendUnchanged = "unchanged"
)

// NewHistoryCmd creates the history command.
// This command lists and compares analyses stored in the database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [song]",
		Short: "List and compare past analyses of a song",
		Long: `History shows how a song changed between stored analyses.

By default the latest analysis of the song is compared with the one before
it and the command shows:
- Overall stability change
- Change in line count and dominant rhyme scheme
- Clichés added and clichés resolved

Use 'lyricscan analyze' to record analyses. A run with the same text and
cliché table as the latest stored run is not stored again.

Examples:
  # Compare the latest two analyses of a song
  lyricscan history "Night Drive"

  # List stored analyses of a song
  lyricscan history --list "Night Drive"

  # Compare with a specific analysis by ID
  lyricscan history --with-id 5 "Night Drive"

  # Compare with the first analysis since a date
  lyricscan history --since 2026-01-01 "Night Drive"

  # Output the comparison as JSON
  lyricscan history --json "Night Drive"

  # List all songs in the database
  lyricscan history --list-songs`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	// Listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List stored analyses of the specified song")
	cmd.Flags().BoolP("list-songs", "L", false,
		"List all songs in the database")

	// Comparison target flags
	cmd.Flags().Int64P("with-id", "i", 0,
		"Compare with a specific analysis by ID (use --list to see available IDs)")
	cmd.Flags().StringP("since", "s", "",
		"Compare with the first analysis on or after this date (format: YYYY-MM-DD)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	return cmd
}

// historyOptions holds the parsed flags of the history command.
type historyOptions struct {
	song      string
	listSongs bool
	list      bool
	withID    int64
	since     string
	json      bool
	markdown  bool
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	opts, err := parseHistoryFlags(cmd, args)
	if err != nil {
		return err
	}

	cfg := config.NewConfig()
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return runHistory(context.Background(), db, opts, cmd.OutOrStdout())
}

// parseHistoryFlags reads and validates the history flags.
// Validation happens before the database is opened.
func parseHistoryFlags(cmd *cobra.Command, args []string) (*historyOptions, error) {
	opts := &historyOptions{}
	var err error

	if opts.listSongs, err = cmd.Flags().GetBool("list-songs"); err != nil {
		return nil, err
	}
	if opts.list, err = cmd.Flags().GetBool("list"); err != nil {
		return nil, err
	}
	if opts.withID, err = cmd.Flags().GetInt64("with-id"); err != nil {
		return nil, err
	}
	if opts.since, err = cmd.Flags().GetString("since"); err != nil {
		return nil, err
	}
	if opts.json, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if opts.markdown, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}

	if opts.listSongs {
		return opts, nil
	}

	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return nil, errors.New("song name is required (use --list-songs to see stored songs)")
	}
	opts.song = args[0]

	if opts.json && opts.markdown {
		return nil, config.ErrConflictingReportFormats
	}
	if opts.withID != 0 && opts.since != "" {
		return nil, errors.New("--with-id and --since cannot be used together")
	}

	return opts, nil
}

// runHistory dispatches to listing or comparison.
func runHistory(ctx context.Context, db *database.HistoryDB, opts *historyOptions, out io.Writer) error {
	if opts.listSongs {
		return listSongs(ctx, db, out)
	}
	if opts.list {
		return listSongHistory(ctx, db, opts.song, out)
	}
	return runComparison(ctx, db, opts, out)
}

// listSongs lists every song with stored analyses.
func listSongs(ctx context.Context, db *database.HistoryDB, out io.Writer) error {
	songs, err := db.ListSongs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	if len(songs) == 0 {
		fmt.Fprintln(out, "No songs found in the database.")
		fmt.Fprintln(out, "\nUse 'lyricscan analyze <file>' to analyse a song.")
		return nil
	}

	fmt.Fprintf(out, "Stored songs (%d):\n\n", len(songs))
	for _, song := range songs {
		fmt.Fprintf(out, "  • %s\n", song)
	}
	fmt.Fprintln(out, "\nUse 'lyricscan history --list <song>' to see the analyses of a song.")

	return nil
}

// listSongHistory lists the stored analyses of one song.
func listSongHistory(ctx context.Context, db *database.HistoryDB, song string, out io.Writer) error {
	entries, err := db.GetHistoryWithMetadata(ctx, song)
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintf(out, "No history found for %s\n", song)
		fmt.Fprintln(out, "\nUse 'lyricscan analyze' to analyse this song.")
		return nil
	}

	fmt.Fprintf(out, "History of %s (%d analyses):\n\n", song, len(entries))
	fmt.Fprintf(out, "  %-6s  %-20s  %-12s  %s\n", "ID", "Date", "Digest", "Summary")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 68))

	for _, meta := range entries {
		fmt.Fprintf(out, "  %-6d  %-20s  %-12s  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			shortHash(meta.Digest),
			formatSummaryLine(&meta.Summary),
		)
	}

	fmt.Fprintln(out, "\nUse 'lyricscan history <song>' to compare the latest two analyses.")
	fmt.Fprintln(out, "Use 'lyricscan history --with-id <id> <song>' to compare with a specific analysis.")

	return nil
}

// formatSummaryLine condenses a summary into one listing column.
func formatSummaryLine(s *model.Summary) string {
	if s.LineCount == 0 && s.SectionCount == 0 {
		return "No lines"
	}
	scheme := s.DominantRhymeScheme
	if scheme == "" {
		scheme = "-"
	}
	return fmt.Sprintf("%d lines, %s, %s, %d cliché(s)",
		s.LineCount, s.OverallStability, scheme, s.ClicheCount)
}

// shortHash shortens a hex digest for listings.
func shortHash(d string) string {
	if len(d) <= 12 {
		return d
	}
	return d[:12]
}

// runComparison compares the latest analysis of a song with an earlier one.
func runComparison(ctx context.Context, db *database.HistoryDB, opts *historyOptions, out io.Writer) error {
	reports, err := db.GetHistory(ctx, opts.song)
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	if len(reports) == 0 {
		return fmt.Errorf("no history found for %s", opts.song)
	}

	previous, err := selectPrevious(ctx, db, opts, reports)
	if err != nil {
		return err
	}

	comparison := compareReports(previous, reports[0])

	switch {
	case opts.json:
		_, err = report.NewJSONWriter(out, report.WithPrettyPrint()).WriteValue(comparison)
		return err
	case opts.markdown:
		return outputComparisonMarkdown(comparison, out)
	default:
		return outputComparisonText(comparison, out)
	}
}

// selectPrevious picks the analysis to compare the latest one with.
// reports are newest first; reports[0] is always the current analysis.
func selectPrevious(ctx context.Context, db *database.HistoryDB, opts *historyOptions, reports []*model.SongReport) (*model.SongReport, error) {
	current := reports[0]

	switch {
	case opts.withID > 0:
		previous, err := db.GetReportByID(ctx, opts.withID)
		if err != nil {
			return nil, fmt.Errorf("failed to get analysis with ID %d: %w", opts.withID, err)
		}
		if previous == nil {
			return nil, fmt.Errorf("analysis with ID %d not found", opts.withID)
		}
		if previous.Song != opts.song {
			return nil, fmt.Errorf("analysis ID %d belongs to %s, not %s", opts.withID, previous.Song, opts.song)
		}
		return previous, nil

	case opts.since != "":
		parsedDate, err := time.Parse("2006-01-02", opts.since)
		if err != nil {
			return nil, fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
		}

		// Oldest first, so the first match is the earliest analysis on or after the date.
		var previous *model.SongReport
		for i := len(reports) - 1; i >= 0; i-- {
			if !reports[i].DateAnalyzed.Before(parsedDate) {
				previous = reports[i]
				break
			}
		}
		if previous == nil {
			return nil, fmt.Errorf("no analyses found since %s", opts.since)
		}
		if previous == current {
			return nil, fmt.Errorf("only one analysis found since %s; at least 2 are required for comparison", opts.since)
		}
		return previous, nil

	default:
		if len(reports) < 2 {
			return nil, fmt.Errorf("at least 2 analyses are required for comparison (found %d)", len(reports))
		}
		return reports[1], nil
	}
}

// ComparisonResult holds the result of comparing two analyses of a song.
type ComparisonResult struct {
	// Song is the compared song.
	Song string `json:"song"`

	// Previous describes the earlier analysis.
	Previous RunMetadata `json:"previous"`

	// Current describes the latest analysis.
	Current RunMetadata `json:"current"`

	// StabilityChanged is true when the overall stability differs.
	StabilityChanged bool `json:"stability_changed"`

	// LineDelta is the change in analysed line count.
	LineDelta int `json:"line_delta"`

	// SchemeChanged is true when the dominant rhyme scheme differs.
	SchemeChanged bool `json:"scheme_changed"`

	// NewCliches are phrases detected more often than before, one entry per extra occurrence.
	NewCliches []string `json:"new_cliches,omitempty"`

	// ResolvedCliches are phrases detected less often than before, one entry per removed occurrence.
	ResolvedCliches []string `json:"resolved_cliches,omitempty"`

	// UnchangedCliches is the number of occurrences present in both analyses.
	UnchangedCliches int `json:"unchanged_cliches"`

	// Trend is "improved", "worsened", or "unchanged" by cliché count.
	Trend string `json:"trend"`
}

// RunMetadata contains metadata about one analysis for comparison display.
type RunMetadata struct {
	// RunID is the UUID of the stored analysis.
	RunID string `json:"run_id"`

	// DateAnalyzed is when the analysis ran.
	DateAnalyzed time.Time `json:"date_analyzed"`

	// Digest is the digest of the analysed text.
	Digest string `json:"digest"`

	// Summary is the summary of the analysis.
	Summary model.Summary `json:"summary"`
}

// compareReports compares two analyses and generates a comparison result.
func compareReports(previous, current *model.SongReport) *ComparisonResult {
	result := &ComparisonResult{
		Song:     current.Song,
		Previous: runMetadata(previous),
		Current:  runMetadata(current),
	}

	prev := result.Previous.Summary
	cur := result.Current.Summary

	result.StabilityChanged = prev.OverallStability != cur.OverallStability
	result.LineDelta = cur.LineCount - prev.LineCount
	result.SchemeChanged = prev.DominantRhymeScheme != cur.DominantRhymeScheme

	previousCounts := clicheCounts(previous.Analysis)
	currentCounts := clicheCounts(current.Analysis)

	for _, phrase := range sortedPhrases(previousCounts, currentCounts) {
		p, c := previousCounts[phrase], currentCounts[phrase]
		result.UnchangedCliches += min(p, c)
		for range c - p {
			result.NewCliches = append(result.NewCliches, phrase)
		}
		for range p - c {
			result.ResolvedCliches = append(result.ResolvedCliches, phrase)
		}
	}

	result.Trend = calculateTrend(prev.ClicheCount, cur.ClicheCount)

	return result
}

// runMetadata extracts comparison metadata from a stored report.
func runMetadata(r *model.SongReport) RunMetadata {
	summary := r.Summary
	if summary == nil {
		summary = model.NewSummary(r.Analysis)
	}
	return RunMetadata{
		RunID:        r.RunID,
		DateAnalyzed: r.DateAnalyzed,
		Digest:       r.Digest,
		Summary:      *summary,
	}
}

// clicheCounts counts detections per phrase.
func clicheCounts(a *model.ProsodyAnalysis) map[string]int {
	counts := make(map[string]int)
	if a == nil {
		return counts
	}
	for _, d := range a.ClicheDetections {
		counts[d.Phrase]++
	}
	return counts
}

// sortedPhrases returns the union of phrases of both count maps, sorted.
func sortedPhrases(a, b map[string]int) []string {
	phrases := make([]string, 0, len(a)+len(b))
	for p := range a {
		phrases = append(phrases, p)
	}
	for p := range b {
		if _, ok := a[p]; !ok {
			phrases = append(phrases, p)
		}
	}
	sort.Strings(phrases)
	return phrases
}

// calculateTrend judges a revision by its cliché count.
func calculateTrend(previous, current int) string {
	switch {
	case current < previous:
		return trendImproved
	case current > previous:
		return trendWorsened
	default:
		return trendUnchanged
	}
}

// outputComparisonMarkdown outputs the comparison result in Markdown format.
func outputComparisonMarkdown(result *ComparisonResult, out io.Writer) error {
	md := markdown.NewMarkdown(out)
	prev, cur := result.Previous.Summary, result.Current.Summary

	md.H1("Lyric Comparison: " + result.Song)
	md.PlainText("")
	md.H2("Summary")
	md.PlainText("")
	md.PlainTextf("**Trend:** %s", formatTrend(result.Trend))
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Previous", "Current", "Change"},
		Rows: [][]string{
			{"Date", runDate(result.Previous), runDate(result.Current), "-"},
			{"Stability", prev.OverallStability.String(), cur.OverallStability.String(), changedText(result.StabilityChanged)},
			{"Rhyme scheme", "`" + prev.DominantRhymeScheme + "`", "`" + cur.DominantRhymeScheme + "`", changedText(result.SchemeChanged)},
			{"Lines", strconv.Itoa(prev.LineCount), strconv.Itoa(cur.LineCount), formatDelta(result.LineDelta)},
			{"Sections", strconv.Itoa(prev.SectionCount), strconv.Itoa(cur.SectionCount), formatDelta(cur.SectionCount - prev.SectionCount)},
			{"Unstable endings", strconv.Itoa(prev.UnstableCount), strconv.Itoa(cur.UnstableCount), formatDelta(cur.UnstableCount - prev.UnstableCount)},
			{"Clichés", strconv.Itoa(prev.ClicheCount), strconv.Itoa(cur.ClicheCount), formatDelta(cur.ClicheCount - prev.ClicheCount)},
		},
	})
	md.PlainText("")

	if len(result.NewCliches) > 0 {
		md.H2(fmt.Sprintf("New Clichés (%d)", len(result.NewCliches)))
		md.PlainText("")
		md.BulletList(result.NewCliches...)
		md.PlainText("")
	}

	if len(result.ResolvedCliches) > 0 {
		md.H2(fmt.Sprintf("Resolved Clichés (%d)", len(result.ResolvedCliches)))
		md.PlainText("")
		items := make([]string, len(result.ResolvedCliches))
		for i, phrase := range result.ResolvedCliches {
			items[i] = "~~" + phrase + "~~"
		}
		md.BulletList(items...)
		md.PlainText("")
	}

	if result.UnchangedCliches > 0 {
		md.HorizontalRule()
		md.PlainText("")
		md.PlainTextf("*%d cliché(s) unchanged*", result.UnchangedCliches)
	}

	return md.Build()
}

// runDate formats the analysis date of a run for tables.
func runDate(m RunMetadata) string {
	return m.DateAnalyzed.Format("2006-01-02 15:04")
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *ComparisonResult, out io.Writer) error {
	prev, cur := result.Previous.Summary, result.Current.Summary

	fmt.Fprintf(out, "Lyric Comparison: %s\n", result.Song)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	fmt.Fprintf(out, "\nTrend: %s\n", formatTrend(result.Trend))

	fmt.Fprintf(out, "\nPrevious analysis: %s\n", result.Previous.DateAnalyzed.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Current analysis:  %s\n", result.Current.DateAnalyzed.Format("2006-01-02 15:04:05"))

	fmt.Fprintln(out, "\nSummary:")
	fmt.Fprintf(out, "  %-16s  %-10s  %-10s  %-10s\n", "Metric", "Previous", "Current", "Change")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 52))
	fmt.Fprintf(out, "  %-16s  %-10s  %-10s  %-10s\n", "Stability",
		prev.OverallStability, cur.OverallStability, changedText(result.StabilityChanged))
	fmt.Fprintf(out, "  %-16s  %-10s  %-10s  %-10s\n", "Rhyme scheme",
		prev.DominantRhymeScheme, cur.DominantRhymeScheme, changedText(result.SchemeChanged))
	fmt.Fprintf(out, "  %-16s  %-10d  %-10d  %-10s\n", "Lines",
		prev.LineCount, cur.LineCount, formatDelta(result.LineDelta))
	fmt.Fprintf(out, "  %-16s  %-10d  %-10d  %-10s\n", "Sections",
		prev.SectionCount, cur.SectionCount, formatDelta(cur.SectionCount-prev.SectionCount))
	fmt.Fprintf(out, "  %-16s  %-10d  %-10d  %-10s\n", "Unstable endings",
		prev.UnstableCount, cur.UnstableCount, formatDelta(cur.UnstableCount-prev.UnstableCount))
	fmt.Fprintf(out, "  %-16s  %-10d  %-10d  %-10s\n", "Clichés",
		prev.ClicheCount, cur.ClicheCount, formatDelta(cur.ClicheCount-prev.ClicheCount))

	if len(result.NewCliches) > 0 {
		fmt.Fprintf(out, "\nNew Clichés (%d):\n", len(result.NewCliches))
		for _, phrase := range result.NewCliches {
			fmt.Fprintf(out, "  [+] %s\n", phrase)
		}
	}

	if len(result.ResolvedCliches) > 0 {
		fmt.Fprintf(out, "\nResolved Clichés (%d):\n", len(result.ResolvedCliches))
		for _, phrase := range result.ResolvedCliches {
			fmt.Fprintf(out, "  [-] %s\n", phrase)
		}
	}

	if result.UnchangedCliches > 0 {
		fmt.Fprintf(out, "\nUnchanged: %d cliché(s)\n", result.UnchangedCliches)
	}

	return nil
}

// formatTrend formats the trend for display.
func formatTrend(trend string) string {
	switch trend {
	case trendImproved:
		return "IMPROVED (fewer clichés)"
	case trendWorsened:
		return "WORSENED (more clichés)"
	default:
		return "UNCHANGED"
	}
}

// changedText renders a changed flag for the Change column.
func changedText(changed bool) string {
	if changed {
		return "changed"
	}
	return "-"
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
