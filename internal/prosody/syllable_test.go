package prosody

import "testing"

// TestCountSyllables covers the vowel-run count, the silent-e rule and the exception table.
func TestCountSyllables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		word string
		want int
	}{
		{name: "empty word counts zero", word: "", want: 0},
		{name: "punctuation only counts zero", word: "!!!", want: 0},
		{name: "single vowel run", word: "cat", want: 1},
		{name: "two vowel runs", word: "walked", want: 2},
		{name: "three vowel runs", word: "banana", want: 3},
		{name: "adjacent vowels form one run", word: "free", want: 1},
		{name: "silent e after consonant is dropped", word: "time", want: 1},
		{name: "silent e in some", word: "some", want: 1},
		{name: "le ending keeps its syllable", word: "table", want: 2},
		{name: "lone e is not silent", word: "be", want: 1},
		{name: "no vowels still counts one", word: "rhythm", want: 1},
		{name: "exception the", word: "the", want: 1},
		{name: "exception crying", word: "crying", want: 2},
		{name: "exception create", word: "create", want: 2},
		{name: "exception idea", word: "idea", want: 3},
		{name: "long word", word: "beautiful", want: 3},
		{name: "word is cleaned before counting", word: "Fire!", want: 1},
		{name: "apostrophe is stripped", word: "don't", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CountSyllables(tt.word); got != tt.want {
				t.Errorf("CountSyllables(%q) = %d, want %d", tt.word, got, tt.want)
			}
		})
	}
}

// TestCountSyllablesMinimum verifies that any word with letters counts at least one syllable.
func TestCountSyllablesMinimum(t *testing.T) {
	t.Parallel()

	for _, word := range []string{"a", "i", "y", "shh", "nth", "brr", "e", "me"} {
		if got := CountSyllables(word); got < 1 {
			t.Errorf("CountSyllables(%q) = %d, want at least 1", word, got)
		}
	}
}

// TestSyllableExceptionsAreLowercase guards the exception table against entries
// that could never match a cleaned word.
func TestSyllableExceptionsAreLowercase(t *testing.T) {
	t.Parallel()

	for word, n := range syllableExceptions {
		if cleanWord(word) != word {
			t.Errorf("exception %q is not in cleaned form", word)
		}
		if n < 1 {
			t.Errorf("exception %q maps to %d, want at least 1", word, n)
		}
	}
}
