package prosody

import (
	"regexp"
	"strings"

	"github.com/nao1215/lyricscan/internal/model"
)

// sectionTagPattern matches a trimmed line enclosed in square brackets, e.g. "[Verse 1]".
// Brackets do not nest: everything between the first "[" and the last "]" is the name.
var sectionTagPattern = regexp.MustCompile(`^\[(.*)\]$`)

// sectionTag reports whether a line is a section tag and returns its name.
// An empty or blank name falls back to DefaultSectionName.
func sectionTag(line string) (string, bool) {
	m := sectionTagPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		name = DefaultSectionName
	}
	return name, true
}

// splitLines splits raw text into physical lines on "\n", dropping a trailing "\r".
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// contentLines returns the trimmed lines that reach the line analyzer:
// non-empty and not a section tag.
func contentLines(text string) []string {
	var out []string
	for _, raw := range splitLines(text) {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if _, ok := sectionTag(trimmed); ok {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

// analyzeLines runs the line analyzer over lines with 1-based numbering.
func analyzeLines(lines []string) []model.LineAnalysis {
	out := make([]model.LineAnalysis, 0, len(lines))
	for i, l := range lines {
		out = append(out, AnalyzeLine(l, i+1))
	}
	return out
}

// SegmentSections splits raw text into sections on tag lines and analyses each one.
//
// Lines before the first tag belong to a section named DefaultSectionName.
// A section that collects no content lines, such as two tags in a row, is
// dropped. Sections are independent of one another.
func SegmentSections(text string) []model.SectionAnalysis {
	sections := make([]model.SectionAnalysis, 0)

	name := DefaultSectionName
	var pending []string
	closeSection := func() {
		if len(pending) > 0 {
			sections = append(sections, analyzeSection(name, pending))
		}
		pending = nil
	}

	for _, raw := range splitLines(text) {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if tag, ok := sectionTag(trimmed); ok {
			closeSection()
			name = tag
			continue
		}
		pending = append(pending, trimmed)
	}
	closeSection()

	return sections
}

// analyzeSection builds the aggregate record for one section's content lines.
func analyzeSection(name string, lines []string) model.SectionAnalysis {
	analyzed := analyzeLines(lines)
	scheme, connections := DetectRhymeScheme(analyzed)
	mean, variance := syllableStats(analyzed)

	return model.SectionAnalysis{
		Name:             name,
		LineCount:        len(analyzed),
		Stability:        MajorityStability(analyzed),
		RhymeScheme:      scheme,
		RhymeConnections: connections,
		AverageSyllables: mean,
		LineVariance:     variance,
		Lines:            analyzed,
	}
}

// syllableStats returns the mean and population variance of the syllable counts.
// The mean is 0 for no lines and the variance is 0 for fewer than two.
func syllableStats(lines []model.LineAnalysis) (float64, float64) {
	if len(lines) == 0 {
		return 0, 0
	}

	sum := 0
	for _, l := range lines {
		sum += l.SyllableCount
	}
	n := float64(len(lines))
	mean := float64(sum) / n
	if len(lines) < 2 {
		return mean, 0
	}

	var squares float64
	for _, l := range lines {
		d := float64(l.SyllableCount) - mean
		squares += d * d
	}
	return mean, squares / n
}

// MajorityStability votes over line endings: stable when stable endings
// outnumber unstable ones, unstable for the reverse, mixed otherwise.
// Neutral endings do not vote.
func MajorityStability(lines []model.LineAnalysis) model.Stability {
	stable, unstable := 0, 0
	for _, l := range lines {
		switch l.EndingType {
		case model.EndingStable:
			stable++
		case model.EndingUnstable:
			unstable++
		case model.EndingNeutral:
		}
	}
	switch {
	case stable > unstable:
		return model.StabilityStable
	case unstable > stable:
		return model.StabilityUnstable
	default:
		return model.StabilityMixed
	}
}
