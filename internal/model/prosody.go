package model

// EndingType classifies the final word of a line by its suffix shape.
// Stable endings read as closed ("masculine") line endings, unstable
// endings as open or flowing ("feminine") ones.
type EndingType string

const (
	// EndingStable marks a closed ending such as "night" or "street".
	EndingStable EndingType = "stable"

	// EndingUnstable marks an open ending such as "falling" or "motion".
	EndingUnstable EndingType = "unstable"

	// EndingNeutral marks an ending that matches no suffix pattern.
	EndingNeutral EndingType = "neutral"
)

// String returns the wire name of the ending type.
func (e EndingType) String() string {
	return string(e)
}

// Stability is the majority-vote classification of a group of lines.
type Stability string

const (
	// StabilityStable means stable endings outnumber unstable endings.
	StabilityStable Stability = "stable"

	// StabilityMixed means neither side has a strict majority.
	// An all-neutral group is mixed as well.
	StabilityMixed Stability = "mixed"

	// StabilityUnstable means unstable endings outnumber stable endings.
	StabilityUnstable Stability = "unstable"
)

// String returns the wire name of the stability.
func (s Stability) String() string {
	return string(s)
}

// RhymeType is the strength of the match that joined two lines.
// Constants are declared strongest first.
type RhymeType string

const (
	// RhymePerfect is an identical word or an identical rhyme key.
	RhymePerfect RhymeType = "perfect"

	// RhymeFamily is a shared word family. The heuristic matcher never
	// produces it; it is kept so the wire enum stays complete.
	RhymeFamily RhymeType = "family"

	// RhymeAssonance is a shared trailing vowel.
	RhymeAssonance RhymeType = "assonance"

	// RhymeConsonance is a shared trailing consonant.
	RhymeConsonance RhymeType = "consonance"

	// RhymeNone means the two endings do not rhyme.
	RhymeNone RhymeType = "none"
)

// String returns the wire name of the rhyme type.
func (r RhymeType) String() string {
	return string(r)
}

// Strength orders rhyme types; a larger value is a closer match.
func (r RhymeType) Strength() int {
	switch r {
	case RhymePerfect:
		return 4
	case RhymeFamily:
		return 3
	case RhymeAssonance:
		return 2
	case RhymeConsonance:
		return 1
	default:
		return 0
	}
}

// LineAnalysis holds the metrics of one lyric line.
// Values are produced once per analysis call and never mutated.
type LineAnalysis struct {
	// Text is the trimmed line content.
	Text string `json:"text"`

	// LineNumber is the 1-based position of the line in its scope:
	// the whole document for ProsodyAnalysis.Lines, the section for
	// SectionAnalysis.Lines. Tag lines and blank lines are not counted.
	LineNumber int `json:"lineNumber"`

	// SyllableCount is the sum of estimated syllables over all words.
	SyllableCount int `json:"syllableCount"`

	// StressedSyllableCount approximates the stressed syllables of the line,
	// the length measure songwriters count.
	StressedSyllableCount int `json:"stressedSyllableCount"`

	// EndingType classifies EndingWord.
	EndingType EndingType `json:"endingType"`

	// EndingWord is the last word of the line, lowercased with punctuation stripped.
	EndingWord string `json:"endingWord"`

	// RhymeSound is the trailing-character rhyme key of EndingWord.
	RhymeSound string `json:"rhymeSound"`
}

// RhymeConnection groups the lines of one rhyme scheme letter.
type RhymeConnection struct {
	// Type is the weakest match that joined a line into the group.
	Type RhymeType `json:"type"`

	// Lines are 0-based indexes into the analysed line list, ascending.
	// A connection always has at least two lines.
	Lines []int `json:"lines"`

	// RhymeSound is the rhyme key of the first line of the group.
	RhymeSound string `json:"rhymeSound"`
}

// SectionAnalysis aggregates one named section of a song.
type SectionAnalysis struct {
	// Name is the interior of the bracket tag that opened the section.
	Name string `json:"name"`

	// LineCount is the number of analysed lines.
	LineCount int `json:"lineCount"`

	// Stability is the majority vote over the line endings.
	Stability Stability `json:"stability"`

	// RhymeScheme holds one letter per line, e.g. "ABAB".
	RhymeScheme string `json:"rhymeScheme"`

	// RhymeConnections lists the rhyme groups with two or more lines.
	RhymeConnections []RhymeConnection `json:"rhymeConnections"`

	// AverageSyllables is the mean syllable count per line.
	AverageSyllables float64 `json:"averageSyllables"`

	// LineVariance is the population variance of the syllable counts.
	LineVariance float64 `json:"lineVariance"`

	// Lines are the section's lines, numbered from 1 within the section.
	Lines []LineAnalysis `json:"lines"`
}

// ClicheDetection is one occurrence of a known cliché phrase.
type ClicheDetection struct {
	// Phrase is the cliché as listed in the phrase table.
	Phrase string `json:"phrase"`

	// LineNumber is the 1-based physical line of the raw text.
	LineNumber int `json:"lineNumber"`

	// StartIndex is the character offset of the match within the line.
	StartIndex int `json:"startIndex"`

	// EndIndex is the character offset just past the match.
	EndIndex int `json:"endIndex"`

	// Suggestion is an optional fresher alternative.
	Suggestion string `json:"suggestion,omitempty"`
}

// ProsodyAnalysis is the full result of analysing one lyric document.
type ProsodyAnalysis struct {
	// Lines are all analysed lines of the document, section tags excluded.
	Lines []LineAnalysis `json:"lines"`

	// Sections are the segmented sections in document order.
	Sections []SectionAnalysis `json:"sections"`

	// OverallStability is the majority vote across all Lines.
	OverallStability Stability `json:"overallStability"`

	// DominantRhymeScheme is the first section's scheme cut to four letters.
	DominantRhymeScheme string `json:"dominantRhymeScheme"`

	// ClicheDetections are the raw cliché matches in scan order.
	ClicheDetections []ClicheDetection `json:"clicheDetections"`
}

// WordAnalysis explains how a single word contributed to its line.
type WordAnalysis struct {
	// Word is the token as written.
	Word string `json:"word"`

	// Cleaned is the lowercase, letters-only form used for lookups.
	Cleaned string `json:"cleaned"`

	// Syllables is the estimated syllable count of Cleaned.
	Syllables int `json:"syllables"`

	// Stressed is the number of stressed syllables credited to the word.
	Stressed int `json:"stressed"`

	// Reason names the rule that decided Stressed.
	Reason string `json:"reason"`
}
