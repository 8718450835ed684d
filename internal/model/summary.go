package model

// Summary is a condensed view of a ProsodyAnalysis for terminal output,
// history listings and comparisons.
type Summary struct {
	// LineCount is the number of analysed lines in the document.
	LineCount int `json:"line_count"`

	// SectionCount is the number of sections.
	SectionCount int `json:"section_count"`

	// StableCount is the number of lines with a stable ending.
	StableCount int `json:"stable_count"`

	// UnstableCount is the number of lines with an unstable ending.
	UnstableCount int `json:"unstable_count"`

	// NeutralCount is the number of lines with a neutral ending.
	NeutralCount int `json:"neutral_count"`

	// ClicheCount is the number of cliché detections.
	ClicheCount int `json:"cliche_count"`

	// TotalSyllables is the syllable total over all lines.
	TotalSyllables int `json:"total_syllables"`

	// AverageStressed is the mean stressed-syllable count per line.
	AverageStressed float64 `json:"average_stressed"`

	// OverallStability mirrors ProsodyAnalysis.OverallStability.
	OverallStability Stability `json:"overall_stability"`

	// DominantRhymeScheme mirrors ProsodyAnalysis.DominantRhymeScheme.
	DominantRhymeScheme string `json:"dominant_rhyme_scheme"`

	// ClichePhrases lists distinct detected phrases in first-seen order.
	ClichePhrases []string `json:"cliche_phrases,omitempty"`
}

// NewSummary condenses an analysis. A nil analysis yields a zero summary
// with mixed stability.
func NewSummary(a *ProsodyAnalysis) *Summary {
	s := &Summary{OverallStability: StabilityMixed}
	if a == nil {
		return s
	}

	s.LineCount = len(a.Lines)
	s.SectionCount = len(a.Sections)
	s.ClicheCount = len(a.ClicheDetections)
	s.OverallStability = a.OverallStability
	s.DominantRhymeScheme = a.DominantRhymeScheme

	stressed := 0
	for _, line := range a.Lines {
		switch line.EndingType {
		case EndingStable:
			s.StableCount++
		case EndingUnstable:
			s.UnstableCount++
		default:
			s.NeutralCount++
		}
		s.TotalSyllables += line.SyllableCount
		stressed += line.StressedSyllableCount
	}
	if s.LineCount > 0 {
		s.AverageStressed = float64(stressed) / float64(s.LineCount)
	}

	seen := make(map[string]bool)
	for _, d := range a.ClicheDetections {
		if seen[d.Phrase] {
			continue
		}
		seen[d.Phrase] = true
		s.ClichePhrases = append(s.ClichePhrases, d.Phrase)
	}

	return s
}

// HasCliches reports whether any cliché was detected.
func (s *Summary) HasCliches() bool {
	return s.ClicheCount > 0
}

// EndingShare returns the fraction of lines with the given ending type.
// It returns 0 for an empty document.
func (s *Summary) EndingShare(e EndingType) float64 {
	if s.LineCount == 0 {
		return 0
	}
	var n int
	switch e {
	case EndingStable:
		n = s.StableCount
	case EndingUnstable:
		n = s.UnstableCount
	default:
		n = s.NeutralCount
	}
	return float64(n) / float64(s.LineCount)
}
