package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRhymeTypeStrength(t *testing.T) {
	t.Parallel()

	ordered := []RhymeType{RhymePerfect, RhymeFamily, RhymeAssonance, RhymeConsonance, RhymeNone}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Strength() <= ordered[i].Strength() {
			t.Errorf("expected %s to be stronger than %s", ordered[i-1], ordered[i])
		}
	}

	if got := RhymeType("unknown").Strength(); got != 0 {
		t.Errorf("expected unknown rhyme type strength 0, got %d", got)
	}
}

func TestEnumStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		got  string
		want string
	}{
		{EndingStable.String(), "stable"},
		{EndingUnstable.String(), "unstable"},
		{EndingNeutral.String(), "neutral"},
		{StabilityStable.String(), "stable"},
		{StabilityMixed.String(), "mixed"},
		{StabilityUnstable.String(), "unstable"},
		{RhymePerfect.String(), "perfect"},
		{RhymeNone.String(), "none"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, tt.got)
		}
	}
}

func TestProsodyAnalysisJSONNames(t *testing.T) {
	t.Parallel()

	a := ProsodyAnalysis{
		Lines: []LineAnalysis{{Text: "I keep falling", LineNumber: 1, EndingType: EndingUnstable}},
		Sections: []SectionAnalysis{{
			Name:             "Chorus",
			RhymeConnections: []RhymeConnection{},
			Lines:            []LineAnalysis{},
		}},
		OverallStability:    StabilityUnstable,
		DominantRhymeScheme: "A",
		ClicheDetections:    []ClicheDetection{},
	}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	for _, key := range []string{
		`"lineNumber":1`,
		`"stressedSyllableCount"`,
		`"endingType":"unstable"`,
		`"rhymeConnections":[]`,
		`"overallStability":"unstable"`,
		`"dominantRhymeScheme":"A"`,
		`"clicheDetections":[]`,
	} {
		if !strings.Contains(string(data), key) {
			t.Errorf("expected %s in %s", key, data)
		}
	}
}
