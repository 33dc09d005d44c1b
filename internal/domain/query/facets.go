package query

import (
	"strings"

	"github.com/magnuspl/navnetips/internal/ports"
)

// Alphabet is the browsing alphabet: A-Z followed by Æ, Ø, Å.
var Alphabet = []string{
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
	"Æ", "Ø", "Å",
}

// Origins returns the distinct origins of records in first-occurrence
// order. This is the option list of the origin filter, without All.
func Origins(records []ports.NameRecord) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, r := range records {
		if r.Origin == "" || seen[r.Origin] {
			continue
		}
		seen[r.Origin] = true
		out = append(out, r.Origin)
	}
	return out
}

// LetterCount is the number of names starting with one alphabet letter.
type LetterCount struct {
	Letter string `json:"letter"`
	Count  int    `json:"count"`
}

// LetterCounts counts records per Alphabet letter, in Alphabet order.
// Letters with no names are included with a zero count.
func LetterCounts(records []ports.NameRecord) []LetterCount {
	counts := make([]LetterCount, len(Alphabet))
	for i, l := range Alphabet {
		prefix := ports.Fold(l)
		counts[i].Letter = l
		for _, r := range records {
			if strings.HasPrefix(ports.Fold(r.Name), prefix) {
				counts[i].Count++
			}
		}
	}
	return counts
}
