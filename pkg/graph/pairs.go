package graph

import (
	"slices"
	"strings"

	"github.com/OFFIS-RIT/scriptnet/backend/pkg/common"
)

const (
	// DefaultMinCharacterLines is the strict line count a character has to exceed
	// to be kept.
	DefaultMinCharacterLines = 5
	// DefaultMinPairExchanges is the strict exchange count a pair has to exceed;
	// single exchanges are mostly attribution noise.
	DefaultMinPairExchanges = 1
)

// DefaultSentinels are labels the dialogue extractor yields for scene transitions.
var DefaultSentinels = []string{"FADE TO BLACK", "CUT TO"}

// PairParams tunes BuildPairs. Zero values select the defaults.
type PairParams struct {
	Sentinels         []string
	MinCharacterLines int
	MinPairExchanges  int
}

func (p PairParams) withDefaults() PairParams {
	if len(p.Sentinels) == 0 {
		p.Sentinels = DefaultSentinels
	}
	if p.MinCharacterLines <= 0 {
		p.MinCharacterLines = DefaultMinCharacterLines
	}
	if p.MinPairExchanges <= 0 {
		p.MinPairExchanges = DefaultMinPairExchanges
	}
	return p
}

// PairResult is the outcome of BuildPairs.
//
// Characters and AllPairs are the unfiltered tallies, TopCharacters and Pairs
// the filtered ones. Nodes lists, sorted, every name that occurs in Pairs.
type PairResult struct {
	Characters    common.CharacterTally
	TopCharacters common.CharacterTally
	AllPairs      common.PairTally
	Pairs         common.PairTally
	Nodes         []string
}

// NormalizeCharacter applies the label normalization used before pairing.
// Hyphens become spaces, so "MR-PINK" and "MR PINK" end up as one character.
func NormalizeCharacter(name string) string {
	return strings.ReplaceAll(name, common.PairSeparator, " ")
}

// BuildPairs turns ordered dialogue records into the filtered set of character
// pairs. Two consecutive lines by different speakers count as one exchange
// between them; a speaker following themselves counts for nothing.
//
// A pair is kept when both of its characters speak more than MinCharacterLines
// lines and the pair has more than MinPairExchanges exchanges. Empty input gives
// an empty result, never an error.
func BuildPairs(records []common.DialogueRecord, params PairParams) PairResult {
	params = params.withDefaults()

	speakers := make([]string, 0, len(records))
	for _, r := range records {
		if slices.Contains(params.Sentinels, r.Character) {
			continue
		}
		speakers = append(speakers, NormalizeCharacter(r.Character))
	}

	allPairs := make(common.PairTally)
	for i := 0; i+1 < len(speakers); i++ {
		a, b := speakers[i], speakers[i+1]
		if a == b {
			continue
		}
		allPairs[common.NewPairKey(a, b)]++
	}

	characters := make(common.CharacterTally)
	for _, s := range speakers {
		characters[s]++
	}

	top := make(common.CharacterTally)
	for name, n := range characters {
		if n > params.MinCharacterLines {
			top[name] = n
		}
	}

	pairs := make(common.PairTally)
	nodeSet := make(map[string]struct{})
	for key, n := range allPairs {
		if n <= params.MinPairExchanges {
			continue
		}
		a, b := key.Names()
		if !top.Has(a) || !top.Has(b) {
			continue
		}
		pairs[key] = n
		nodeSet[a] = struct{}{}
		nodeSet[b] = struct{}{}
	}

	nodes := make([]string, 0, len(nodeSet))
	for name := range nodeSet {
		nodes = append(nodes, name)
	}
	slices.Sort(nodes)

	return PairResult{
		Characters:    characters,
		TopCharacters: top,
		AllPairs:      allPairs,
		Pairs:         pairs,
		Nodes:         nodes,
	}
}
