package prosody

import "strings"

// CountSyllables estimates the syllables of a word.
// The word is cleaned first, so "Fire!" and "fire" count the same.
// Empty input, or input without letters, counts 0; any other word counts at least 1.
func CountSyllables(word string) int {
	w := cleanWord(word)
	if w == "" {
		return 0
	}
	if n, ok := syllableExceptions[w]; ok {
		return n
	}

	count := 0
	inRun := false
	for _, r := range w {
		if isVowel(r) {
			if !inRun {
				count++
			}
			inRun = true
			continue
		}
		inRun = false
	}

	if count > 1 && hasSilentE(w) {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

// hasSilentE reports a trailing "e" after a consonant, except the "-le" ending
// which keeps its own syllable ("table", "little").
func hasSilentE(w string) bool {
	runes := []rune(w)
	n := len(runes)
	if n < 2 || runes[n-1] != 'e' {
		return false
	}
	if strings.HasSuffix(w, "le") {
		return false
	}
	return !isVowel(runes[n-2])
}
