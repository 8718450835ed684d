package prosody

import (
	"strings"
	"unicode"
)

// cleanWord lowercases a token and drops every character that is not a letter.
func cleanWord(token string) string {
	return strings.Map(func(r rune) rune {
		if !unicode.IsLetter(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, token)
}

// tokenize splits a line on whitespace.
func tokenize(line string) []string {
	return strings.Fields(line)
}

// lastWord returns the cleaned form of the last token.
// A trailing token made only of punctuation ("...", "--") yields "", so the
// line has a neutral ending and no rhyme key.
func lastWord(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	return cleanWord(tokens[len(tokens)-1])
}

// isVowel reports whether r opens a syllable run.
func isVowel(r rune) bool {
	return strings.ContainsRune(vowels, r)
}
