package prosody

import (
	"unicode"

	"github.com/nao1215/lyricscan/internal/model"
)

// DetectCliches scans every physical line of text for the phrases in table.
//
// Matching is a case-insensitive substring search. Offsets count characters
// (runes) from the start of the raw line, and EndIndex is exclusive.
// Every occurrence of every phrase is reported, ordered by line, then by table
// order, then by position; overlapping phrases are not deduplicated.
func DetectCliches(text string, table []ClicheEntry) []model.ClicheDetection {
	detections := make([]model.ClicheDetection, 0)
	if len(table) == 0 {
		return detections
	}

	phrases := make([][]rune, len(table))
	for i, entry := range table {
		phrases[i] = foldRunes(entry.Phrase)
	}

	for i, raw := range splitLines(text) {
		line := foldRunes(raw)
		for p, phrase := range phrases {
			for _, start := range indexAll(line, phrase) {
				detections = append(detections, model.ClicheDetection{
					Phrase:     table[p].Phrase,
					LineNumber: i + 1,
					StartIndex: start,
					EndIndex:   start + len(phrase),
					Suggestion: table[p].Suggestion,
				})
			}
		}
	}
	return detections
}

// foldRunes lowercases s rune by rune, keeping a one-to-one mapping between
// input and output positions.
func foldRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

// indexAll returns the start of every occurrence of needle in haystack,
// including occurrences that overlap an earlier one.
func indexAll(haystack, needle []rune) []int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return nil
	}
	var starts []int
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if runesEqual(haystack[i:i+len(needle)], needle) {
			starts = append(starts, i)
		}
	}
	return starts
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
