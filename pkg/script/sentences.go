package script

import (
	"strings"
	"unicode"
)

const maxCueWords = 5

var sceneHeadingPrefixes = []string{"INT.", "EXT.", "INT/EXT", "I/E."}

// Sentence is one sentence-like unit of a cleaned script. Block numbers the
// blank-line separated paragraph the unit came from; Cue marks a speaker line.
type Sentence struct {
	Text  string
	Block int
	Cue   bool
}

// IsCue reports whether line looks like a character cue: upper case, short,
// made of name characters only, and not a scene heading.
func IsCue(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || len(strings.Fields(line)) > maxCueWords {
		return false
	}
	for _, prefix := range sceneHeadingPrefixes {
		if strings.HasPrefix(line, prefix) {
			return false
		}
	}

	hasLetter := false
	for _, r := range line {
		switch {
		case unicode.IsLetter(r):
			if unicode.IsLower(r) {
				return false
			}
			hasLetter = true
		case unicode.IsDigit(r), r == ' ', r == '.', r == '\'', r == '-', r == '#', r == '&':
		default:
			return false
		}
	}
	return hasLetter
}

// SplitSentences splits cleaned script text into sentence units. Cue lines are
// units of their own; other lines are joined within a block and split on
// terminal punctuation.
func SplitSentences(text string) []Sentence {
	var sentences []Sentence
	block := 0
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		if s != "" {
			sentences = append(sentences, Sentence{Text: s, Block: block})
		}
		current.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			flush()
			if len(sentences) > 0 && sentences[len(sentences)-1].Block == block {
				block++
			}
			continue
		}

		if IsCue(trimmed) {
			flush()
			sentences = append(sentences, Sentence{Text: trimmed, Block: block, Cue: true})
			continue
		}

		for _, part := range splitLineIntoSentences(trimmed) {
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(part)

			if endsSentence(part) {
				flush()
			}
		}
	}
	flush()

	return sentences
}

const (
	terminators = ".!?"
	closers     = `"')]}`
)

func endsSentence(s string) bool {
	s = strings.TrimRight(strings.TrimSpace(s), closers)
	return s != "" && strings.ContainsRune(terminators, rune(s[len(s)-1]))
}

// isListingDot reports whether the '.' at line[i] numbers a listing, as in
// "1. ", which does not end a sentence.
func isListingDot(line string, i int) bool {
	return line[i] == '.' && i > 0 && line[i-1] >= '0' && line[i-1] <= '9' &&
		i+1 < len(line) && line[i+1] == ' '
}

// splitLineIntoSentences cuts one line after every run of terminators, keeping
// closing quotes and brackets with the sentence they close.
func splitLineIntoSentences(line string) []string {
	var sentences []string
	start := 0

	for pos := 0; pos < len(line); {
		k := strings.IndexAny(line[pos:], terminators)
		if k < 0 {
			break
		}
		end := pos + k
		if isListingDot(line, end) {
			pos = end + 1
			continue
		}

		rest := strings.TrimLeft(line[end:], terminators)
		rest = strings.TrimLeft(rest, closers)
		end = len(line) - len(rest)

		if s := strings.TrimSpace(line[start:end]); s != "" {
			sentences = append(sentences, s)
		}
		start, pos = end, end
	}

	if s := strings.TrimSpace(line[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
