package common

import (
	"sort"
	"strings"
)

// PairSeparator joins the two names of a PairKey. Character names are normalized
// so that they never contain it.
const PairSeparator = "-"

// DialogueRecord is one attributed line of spoken text. Records are kept in the
// order they appear in the script.
type DialogueRecord struct {
	Character string `json:"character"`
	Text      string `json:"text"`
}

// CharacterTally maps a character name to the number of lines spoken.
type CharacterTally map[string]int

// Count is a single name/count entry of a sorted tally.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Sorted returns the tally ordered by count (descending), then name.
func (t CharacterTally) Sorted() []Count {
	out := make([]Count, 0, len(t))
	for name, n := range t {
		out = append(out, Count{Name: name, Count: n})
	}
	sortCounts(out)
	return out
}

// Has reports whether name is part of the tally.
func (t CharacterTally) Has(name string) bool {
	_, ok := t[name]
	return ok
}

// PairKey identifies an unordered pair of two distinct characters: both names
// sorted lexicographically and joined with PairSeparator.
type PairKey string

// NewPairKey builds the canonical key for a and b. The result is the same for
// (a, b) and (b, a).
func NewPairKey(a, b string) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey(a + PairSeparator + b)
}

// Names decodes the key back into its two names.
func (k PairKey) Names() (string, string) {
	a, b, _ := strings.Cut(string(k), PairSeparator)
	return a, b
}

// PairTally maps a PairKey to the number of exchanges between its characters.
type PairTally map[PairKey]int

// Sorted returns the tally ordered by count (descending), then key.
func (t PairTally) Sorted() []Count {
	out := make([]Count, 0, len(t))
	for key, n := range t {
		out = append(out, Count{Name: string(key), Count: n})
	}
	sortCounts(out)
	return out
}

func sortCounts(c []Count) {
	sort.Slice(c, func(i, j int) bool {
		if c[i].Count == c[j].Count {
			return c[i].Name < c[j].Name
		}
		return c[i].Count > c[j].Count
	})
}
