package prosody

import (
	"strings"

	"github.com/nao1215/lyricscan/internal/model"
)

// DetectRhymeScheme assigns one scheme letter per line and groups rhyming lines.
//
// Each line is compared with every earlier line in index order. The first
// earlier line that rhymes donates its letter; a line that rhymes with nothing
// earlier takes the next unused letter. The scan is quadratic and order
// sensitive by contract: reordering lines changes the letters.
//
// Connections are returned in letter order. Their Lines hold 0-based indexes
// into lines. A connection's Type is the weakest match that joined any of its
// members, so a perfect connection only ever holds lines with equal rhyme keys.
func DetectRhymeScheme(lines []model.LineAnalysis) (string, []model.RhymeConnection) {
	groupOf := make([]int, len(lines))
	var groups []*model.RhymeConnection

	var scheme strings.Builder
	for i, line := range lines {
		group := -1
		var match model.RhymeType
		for j := 0; j < i; j++ {
			match = MatchRhyme(line.EndingWord, lines[j].EndingWord)
			if match != model.RhymeNone {
				group = groupOf[j]
				break
			}
		}

		if group < 0 {
			group = len(groups)
			groups = append(groups, &model.RhymeConnection{
				Type:       model.RhymeNone,
				Lines:      []int{i},
				RhymeSound: line.RhymeSound,
			})
		} else {
			g := groups[group]
			g.Lines = append(g.Lines, i)
			if g.Type == model.RhymeNone || match.Strength() < g.Type.Strength() {
				g.Type = match
			}
		}

		groupOf[i] = group
		scheme.WriteRune(schemeLetter(group))
	}

	connections := make([]model.RhymeConnection, 0)
	for _, g := range groups {
		if len(g.Lines) < 2 {
			continue
		}
		connections = append(connections, *g)
	}
	return scheme.String(), connections
}

// schemeLetter maps a group index to its letter: A-Z, then a-z, then
// consecutive code points from U+00C0. Letters are never reused, so a long
// section keeps one distinct rune per rhyme group.
func schemeLetter(n int) rune {
	switch {
	case n < 26:
		return rune('A' + n)
	case n < 52:
		return rune('a' + n - 26)
	default:
		return rune(0x00C0 + n - 52)
	}
}
