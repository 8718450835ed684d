package prosody

// Reason codes reported by AnalyzeWords.
const (
	ReasonFunctionWord  = "function_word_unstressed"
	ReasonContextual    = "contextual_stressed"
	ReasonContentWord   = "content_word_stressed"
	ReasonMultisyllable = "multisyllable_approximated"
	ReasonNoLetters     = "no_letters"
)

// IsStressed classifies a single-syllable word. Function words from the closed
// list are unstressed; contextual words and everything else are stressed.
// The word is cleaned before lookup.
func IsStressed(word string) bool {
	stressed, _ := classifyStress(cleanWord(word))
	return stressed
}

// classifyStress looks up an already cleaned word and names the rule used.
func classifyStress(w string) (bool, string) {
	stressed, listed := stressWords[w]
	switch {
	case !listed:
		return true, ReasonContentWord
	case stressed:
		return true, ReasonContextual
	default:
		return false, ReasonFunctionWord
	}
}

// wordStress returns the stressed syllables credited to a cleaned word with
// the given syllable count. A multi-syllable word always contributes exactly
// one stressed syllable; that flat approximation is kept as is because
// consumers depend on the counts it produces.
func wordStress(w string, syllables int) (int, string) {
	switch {
	case syllables == 0:
		return 0, ReasonNoLetters
	case syllables > 1:
		return 1, ReasonMultisyllable
	}
	stressed, reason := classifyStress(w)
	if !stressed {
		return 0, reason
	}
	return 1, reason
}
