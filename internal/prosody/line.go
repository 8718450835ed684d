package prosody

import (
	"strings"

	"github.com/nao1215/lyricscan/internal/model"
)

// AnalyzeLine computes the metrics of one line at the given 1-based position.
// Callers pass only non-empty lines that are not section tags.
func AnalyzeLine(text string, lineNumber int) model.LineAnalysis {
	trimmed := strings.TrimSpace(text)
	tokens := tokenize(trimmed)

	syllables := 0
	stressed := 0
	for _, token := range tokens {
		w := cleanWord(token)
		n := CountSyllables(w)
		s, _ := wordStress(w, n)
		syllables += n
		stressed += s
	}

	ending := lastWord(tokens)
	return model.LineAnalysis{
		Text:                  trimmed,
		LineNumber:            lineNumber,
		SyllableCount:         syllables,
		StressedSyllableCount: stressed,
		EndingType:            ClassifyEnding(ending),
		EndingWord:            ending,
		RhymeSound:            RhymeSound(ending),
	}
}

// AnalyzeWords breaks a line into words and explains each word's contribution
// to the line's syllable and stress totals.
func AnalyzeWords(text string) []model.WordAnalysis {
	tokens := tokenize(text)
	out := make([]model.WordAnalysis, 0, len(tokens))
	for _, token := range tokens {
		w := cleanWord(token)
		n := CountSyllables(w)
		s, reason := wordStress(w, n)
		out = append(out, model.WordAnalysis{
			Word:      token,
			Cleaned:   w,
			Syllables: n,
			Stressed:  s,
			Reason:    reason,
		})
	}
	return out
}
