package model

import (
	"reflect"
	"testing"
)

func TestNewSummary(t *testing.T) {
	t.Parallel()

	t.Run("nil analysis", func(t *testing.T) {
		t.Parallel()

		s := NewSummary(nil)
		if s.OverallStability != StabilityMixed {
			t.Errorf("expected mixed stability, got %s", s.OverallStability)
		}
		if s.LineCount != 0 || s.ClicheCount != 0 {
			t.Errorf("expected zero counts, got %+v", s)
		}
	})

	t.Run("counts lines and clichés", func(t *testing.T) {
		t.Parallel()

		a := &ProsodyAnalysis{
			Lines: []LineAnalysis{
				{SyllableCount: 6, StressedSyllableCount: 4, EndingType: EndingStable},
				{SyllableCount: 5, StressedSyllableCount: 3, EndingType: EndingStable},
				{SyllableCount: 4, StressedSyllableCount: 2, EndingType: EndingUnstable},
				{SyllableCount: 3, StressedSyllableCount: 3, EndingType: EndingNeutral},
			},
			Sections:            []SectionAnalysis{{Name: "Verse"}, {Name: "Chorus"}},
			OverallStability:    StabilityStable,
			DominantRhymeScheme: "AABB",
			ClicheDetections: []ClicheDetection{
				{Phrase: "heart on fire", LineNumber: 1},
				{Phrase: "walk away", LineNumber: 2},
				{Phrase: "heart on fire", LineNumber: 4},
			},
		}

		s := NewSummary(a)

		if s.LineCount != 4 || s.SectionCount != 2 {
			t.Errorf("expected 4 lines in 2 sections, got %d in %d", s.LineCount, s.SectionCount)
		}
		if s.StableCount != 2 || s.UnstableCount != 1 || s.NeutralCount != 1 {
			t.Errorf("unexpected ending counts %+v", s)
		}
		if s.TotalSyllables != 18 {
			t.Errorf("expected 18 syllables, got %d", s.TotalSyllables)
		}
		if s.AverageStressed != 3 {
			t.Errorf("expected 3 stressed per line, got %v", s.AverageStressed)
		}
		if s.ClicheCount != 3 {
			t.Errorf("expected 3 clichés, got %d", s.ClicheCount)
		}
		if !reflect.DeepEqual(s.ClichePhrases, []string{"heart on fire", "walk away"}) {
			t.Errorf("expected distinct phrases in first-seen order, got %v", s.ClichePhrases)
		}
		if s.OverallStability != StabilityStable || s.DominantRhymeScheme != "AABB" {
			t.Errorf("expected mirrored stability and scheme, got %s %s", s.OverallStability, s.DominantRhymeScheme)
		}
		if !s.HasCliches() {
			t.Error("expected HasCliches")
		}
	})
}

func TestSummaryEndingShare(t *testing.T) {
	t.Parallel()

	s := &Summary{LineCount: 4, StableCount: 2, UnstableCount: 1, NeutralCount: 1}

	tests := []struct {
		ending EndingType
		want   float64
	}{
		{EndingStable, 0.5},
		{EndingUnstable, 0.25},
		{EndingNeutral, 0.25},
	}
	for _, tt := range tests {
		if got := s.EndingShare(tt.ending); got != tt.want {
			t.Errorf("EndingShare(%s) = %v, want %v", tt.ending, got, tt.want)
		}
	}

	if got := (&Summary{}).EndingShare(EndingStable); got != 0 {
		t.Errorf("expected 0 for empty summary, got %v", got)
	}
}
