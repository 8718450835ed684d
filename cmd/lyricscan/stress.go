package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/lyricscan/internal/model"
	"github.com/nao1215/lyricscan/internal/prosody"
	"github.com/nao1215/lyricscan/internal/report"
	"github.com/spf13/cobra"
)

// NewStressCmd creates the stress command.
func NewStressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress <line>",
		Short: "Explain the syllable and stress count of one line",
		Long: `Stress breaks a single lyric line into words and shows how each word
contributes to the line's syllable and stressed syllable totals, along with
the ending classification and rhyme key of the last word.

Arguments are joined with spaces, so quoting the line is optional.

Examples:
  # Explain a line
  lyricscan stress "I keep falling through the night"

  # Output JSON
  lyricscan stress -j "I keep falling through the night"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runStressCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Output JSON")

	return cmd
}

// StressResult is the JSON form of the stress command output.
type StressResult struct {
	// Line is the line metrics as the analyze command computes them.
	Line model.LineAnalysis `json:"line"`

	// Words explains each word's contribution.
	Words []model.WordAnalysis `json:"words"`
}

// runStressCmd executes the stress command.
func runStressCmd(cmd *cobra.Command, args []string) error {
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return fmt.Errorf("line is empty")
	}

	result := &StressResult{
		Line:  prosody.AnalyzeLine(text, 1),
		Words: prosody.AnalyzeWords(text),
	}

	if jsonOutput {
		_, err := report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint()).WriteValue(result)
		return err
	}
	return outputStressText(result, cmd.OutOrStdout())
}

// outputStressText writes the per-word table and the line totals.
func outputStressText(result *StressResult, out io.Writer) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n\n", result.Line.Text)
	fmt.Fprintf(&sb, "  %-16s  %-3s  %-3s  %s\n", "Word", "Syl", "Str", "Reason")
	sb.WriteString("  " + strings.Repeat("-", 60) + "\n")
	for _, w := range result.Words {
		fmt.Fprintf(&sb, "  %-16s  %-3d  %-3d  %s\n", w.Word, w.Syllables, w.Stressed, reasonText(w.Reason))
	}
	sb.WriteString("  " + strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(&sb, "  %-16s  %-3d  %-3d\n\n", "Total", result.Line.SyllableCount, result.Line.StressedSyllableCount)

	ending := result.Line.EndingWord
	if ending == "" {
		ending = "-"
	}
	fmt.Fprintf(&sb, "Ending: %s (%s)\n", ending, result.Line.EndingType)
	fmt.Fprintf(&sb, "Rhyme:  %s\n", result.Line.RhymeSound)

	_, err := io.WriteString(out, sb.String())
	return err
}

// reasonText turns a stress reason code into a short phrase.
func reasonText(reason string) string {
	switch reason {
	case prosody.ReasonFunctionWord:
		return "function word, unstressed"
	case prosody.ReasonContextual:
		return "stressed in context"
	case prosody.ReasonContentWord:
		return "content word, stressed"
	case prosody.ReasonMultisyllable:
		return "several syllables, one stress"
	case prosody.ReasonNoLetters:
		return "no letters"
	default:
		return reason
	}
}
