package prosody

import (
	"strings"

	"github.com/nao1215/lyricscan/internal/model"
)

// ClassifyEnding classifies a line's trailing word by suffix.
// Rules are tried in table order and the first match decides; a word that
// matches no rule, including the empty word, is neutral.
func ClassifyEnding(word string) model.EndingType {
	w := cleanWord(word)
	if w == "" {
		return model.EndingNeutral
	}
	for _, rule := range endingRules {
		if strings.HasSuffix(w, rule.suffix) {
			return rule.ending
		}
	}
	return model.EndingNeutral
}
