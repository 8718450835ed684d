package prosody

import "github.com/nao1215/lyricscan/internal/model"

// rhymeKeyLength is the number of trailing letters that make up a rhyme key.
const rhymeKeyLength = 2

// RhymeSound derives the coarse rhyme key of a word: its last two letters
// after cleaning, or the whole cleaned word when it is shorter.
func RhymeSound(word string) string {
	runes := []rune(cleanWord(word))
	if len(runes) <= rhymeKeyLength {
		return string(runes)
	}
	return string(runes[len(runes)-rhymeKeyLength:])
}

// MatchRhyme compares two ending words and returns the strength of their rhyme.
// Identical words and identical two-letter keys are perfect rhymes; a shared
// last letter is assonance when it is a vowel and consonance otherwise.
// An empty word never rhymes.
func MatchRhyme(a, b string) model.RhymeType {
	wa, wb := cleanWord(a), cleanWord(b)
	if wa == "" || wb == "" {
		return model.RhymeNone
	}
	if wa == wb {
		return model.RhymePerfect
	}

	ka, kb := RhymeSound(wa), RhymeSound(wb)
	if ka == kb && len([]rune(ka)) >= rhymeKeyLength {
		return model.RhymePerfect
	}

	ra, rb := []rune(wa), []rune(wb)
	last := ra[len(ra)-1]
	if last != rb[len(rb)-1] {
		return model.RhymeNone
	}
	if isVowel(last) {
		return model.RhymeAssonance
	}
	return model.RhymeConsonance
}
