package prosody

import "github.com/nao1215/lyricscan/internal/model"

// Analyzer runs the whole engine over a lyric document.
// An Analyzer is immutable after New and safe for concurrent use.
type Analyzer struct {
	cliches []ClicheEntry
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClicheTable replaces the built-in cliché table. The slice is copied.
// A nil or empty table disables cliché detection.
func WithClicheTable(table []ClicheEntry) Option {
	return func(a *Analyzer) {
		a.cliches = make([]ClicheEntry, len(table))
		copy(a.cliches, table)
	}
}

// New creates an Analyzer. Without options it uses the built-in tables.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		cliches: DefaultClicheTable(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ClicheTable returns a copy of the cliché table in use.
func (a *Analyzer) ClicheTable() []ClicheEntry {
	out := make([]ClicheEntry, len(a.cliches))
	copy(out, a.cliches)
	return out
}

// Analyze produces the full prosody analysis of text.
//
// It never fails: empty, blank or malformed input yields a well-formed result.
// Equal input always yields an equal result.
func (a *Analyzer) Analyze(text string) *model.ProsodyAnalysis {
	lines := analyzeLines(contentLines(text))
	sections := SegmentSections(text)

	return &model.ProsodyAnalysis{
		Lines:               lines,
		Sections:            sections,
		OverallStability:    MajorityStability(lines),
		DominantRhymeScheme: dominantScheme(sections),
		ClicheDetections:    DetectCliches(text, a.cliches),
	}
}

// dominantScheme returns the first section's scheme cut to four letters,
// or DefaultRhymeScheme when there are no sections.
func dominantScheme(sections []model.SectionAnalysis) string {
	if len(sections) == 0 {
		return DefaultRhymeScheme
	}
	runes := []rune(sections[0].RhymeScheme)
	if len(runes) > dominantSchemeLength {
		runes = runes[:dominantSchemeLength]
	}
	return string(runes)
}

var defaultAnalyzer = New()

// Analyze runs the engine with the built-in tables.
func Analyze(text string) *model.ProsodyAnalysis {
	return defaultAnalyzer.Analyze(text)
}
