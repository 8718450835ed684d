package prosody

import "github.com/nao1215/lyricscan/internal/model"

// TableVersion identifies the revision of the lookup tables in this file.
// Bump it whenever a word list, suffix rule or cliché entry changes, since
// stored analyses are only comparable when produced from the same tables.
const TableVersion = 1

// DefaultSectionName labels lines that appear before the first section tag.
const DefaultSectionName = "Untitled"

// DefaultRhymeScheme is reported when a document has no sections.
const DefaultRhymeScheme = "ABAB"

// dominantSchemeLength is the number of letters kept from the first section's scheme.
const dominantSchemeLength = 4

// vowels are the letters that open a syllable run.
const vowels = "aeiou"

// syllableExceptions overrides the vowel-run count for common words it gets wrong.
var syllableExceptions = map[string]int{
	"the":        1,
	"a":          1,
	"i":          1,
	"are":        1,
	"were":       1,
	"where":      1,
	"there":      1,
	"here":       1,
	"fire":       1,
	"hour":       1,
	"our":        1,
	"eye":        1,
	"eyes":       1,
	"every":      2,
	"being":      2,
	"going":      2,
	"doing":      2,
	"crying":     2,
	"trying":     2,
	"dying":      2,
	"lying":      2,
	"flying":     2,
	"baby":       2,
	"body":       2,
	"lady":       2,
	"only":       2,
	"very":       2,
	"really":     2,
	"maybe":      2,
	"people":     2,
	"poem":       2,
	"quiet":      2,
	"create":     2,
	"idea":       3,
	"forever":    3,
	"beautiful":  3,
	"everything": 3,
	"everyone":   3,
	"memories":   3,
}

// stressWords is the closed function-word list. A false value marks a word
// that is unstressed when it stands as a single syllable; a true value marks
// a contextual word that currently defaults to stressed. Words missing from
// the map are stressed.
var stressWords = map[string]bool{
	// articles
	"a":   false,
	"an":  false,
	"the": false,

	// coordinating conjunctions
	"and": false,
	"but": false,
	"or":  false,
	"nor": false,
	"for": false,
	"so":  false,
	"yet": false,

	// personal pronouns
	"i":     false,
	"me":    false,
	"my":    false,
	"you":   false,
	"your":  false,
	"he":    false,
	"him":   false,
	"his":   false,
	"she":   false,
	"her":   false,
	"it":    false,
	"its":   false,
	"we":    false,
	"us":    false,
	"our":   false,
	"they":  false,
	"them":  false,
	"their": false,

	// prepositions
	"at":      false,
	"by":      false,
	"from":    false,
	"in":      false,
	"into":    false,
	"of":      false,
	"off":     false,
	"on":      false,
	"onto":    false,
	"to":      false,
	"up":      false,
	"with":    false,
	"as":      false,
	"through": false,

	// be, do, have
	"am":   false,
	"is":   false,
	"are":  false,
	"was":  false,
	"were": false,
	"be":   false,
	"been": false,
	"do":   false,
	"does": false,
	"did":  false,
	"have": false,
	"has":  false,
	"had":  false,

	// modals
	"can":    false,
	"could":  false,
	"will":   false,
	"would":  false,
	"shall":  false,
	"should": false,
	"may":    false,
	"might":  false,
	"must":   false,

	// contextual
	"there": true,
	"here":  true,
	"where": true,
	"when":  true,
	"how":   true,
	"why":   true,
	"what":  true,
}

// suffixRule maps a word ending to an ending type.
type suffixRule struct {
	suffix string
	ending model.EndingType
}

// endingRules are tested in order and the first match wins. Every stable rule,
// including the bare "y" fallback, comes before every unstable rule, so an
// ending such as "-ly" resolves to stable.
var endingRules = []suffixRule{
	{"ight", model.EndingStable},
	{"ound", model.EndingStable},
	{"eak", model.EndingStable},
	{"eet", model.EndingStable},
	{"eat", model.EndingStable},
	{"ine", model.EndingStable},
	{"ay", model.EndingStable},
	{"ow", model.EndingStable},
	{"ade", model.EndingStable},
	{"ame", model.EndingStable},
	{"ace", model.EndingStable},
	{"ide", model.EndingStable},
	{"y", model.EndingStable},

	{"ing", model.EndingUnstable},
	{"er", model.EndingUnstable},
	{"le", model.EndingUnstable},
	{"ly", model.EndingUnstable},
	{"tion", model.EndingUnstable},
	{"ness", model.EndingUnstable},
	{"ment", model.EndingUnstable},
	{"ful", model.EndingUnstable},
}

// ClicheEntry is one row of the cliché phrase table.
type ClicheEntry struct {
	// Phrase is matched case-insensitively as a substring of a line.
	Phrase string `yaml:"phrase" json:"phrase"`

	// Suggestion is an optional replacement offered with each match.
	Suggestion string `yaml:"suggestion,omitempty" json:"suggestion,omitempty"`
}

// clicheTable is the built-in phrase list, scanned in this order.
var clicheTable = []ClicheEntry{
	{Phrase: "heart on fire", Suggestion: "burning passion"},
	{Phrase: "broken heart", Suggestion: "shattered trust"},
	{Phrase: "tears like rain", Suggestion: "grief in torrents"},
	{Phrase: "love is blind", Suggestion: "love ignores the warnings"},
	{Phrase: "meant to be", Suggestion: "written in our bones"},
	{Phrase: "end of the road", Suggestion: "the last mile marker"},
	{Phrase: "forever and ever", Suggestion: "past the last tomorrow"},
	{Phrase: "dancing in the rain", Suggestion: "soaked and still moving"},
	{Phrase: "set me free", Suggestion: "cut the rope"},
	{Phrase: "lost without you", Suggestion: "a compass with no north"},
	{Phrase: "take my breath away", Suggestion: "leave me gasping"},
	{Phrase: "cold as ice", Suggestion: "frost on the window"},
	{Phrase: "head over heels", Suggestion: "tumbling in"},
	{Phrase: "fire in my soul", Suggestion: "embers in my chest"},
	{Phrase: "shine like a diamond", Suggestion: "catch every light"},
	{Phrase: "chasing dreams", Suggestion: "running after the horizon"},
	{Phrase: "against all odds", Suggestion: "when the numbers said no"},
	{Phrase: "hold me tight", Suggestion: "pull me closer"},
	{Phrase: "walk away", Suggestion: "leave the door swinging"},
	{Phrase: "one more time", Suggestion: "again, against my better sense"},
	{Phrase: "my everything", Suggestion: "the whole of it"},
	{Phrase: "light up the sky", Suggestion: "set the clouds glowing"},
	{Phrase: "in my dreams"},
	{Phrase: "baby baby"},
	{Phrase: "yeah yeah yeah"},
}

// DefaultClicheTable returns a copy of the built-in cliché table.
func DefaultClicheTable() []ClicheEntry {
	out := make([]ClicheEntry, len(clicheTable))
	copy(out, clicheTable)
	return out
}
