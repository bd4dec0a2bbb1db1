package script

import (
	"regexp"
	"strings"

	"github.com/OFFIS-RIT/scriptnet/backend/internal/util"

	"golang.org/x/text/unicode/norm"
)

var (
	reParenthetical = regexp.MustCompile(`\([^()\n]*\)`)
	reInlineCue     = regexp.MustCompile(`^([^:a-z]{1,40}):\s+(\S.*)$`)
	reSpaces        = regexp.MustCompile(`[ \t\f\v]+`)
	reBlankRuns     = regexp.MustCompile(`\n{3,}`)

	quoteReplacer = strings.NewReplacer(
		"‘", "'", "’", "'", "“", `"`, "”", `"`,
		"–", "-", "—", "--",
	)
)

// CleanText normalizes raw script text so that SplitSentences can rely on one
// layout: LF line endings, single spaces, no parenthetical stage directions, cue
// lines on their own line without a trailing colon, and at most one blank line
// between blocks. Letter case is kept, cue detection depends on it.
func CleanText(text string) string {
	text = util.SanitizeText(text)
	text = norm.NFKC.String(text)
	text = quoteReplacer.Replace(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	rawLines := strings.Split(text, "\n")
	lines := make([]string, 0, len(rawLines))
	for _, raw := range rawLines {
		line := strings.TrimSpace(reSpaces.ReplaceAllString(raw, " "))
		if line == "" {
			lines = append(lines, "")
			continue
		}

		line = strings.TrimSpace(reSpaces.ReplaceAllString(reParenthetical.ReplaceAllString(line, ""), " "))
		if line == "" {
			// the line only held a stage direction; dropping it keeps the block intact
			continue
		}

		if m := reInlineCue.FindStringSubmatch(line); m != nil && IsCue(m[1]) {
			lines = append(lines, strings.TrimSpace(m[1]), strings.TrimSpace(m[2]))
			continue
		}

		if trimmed := strings.TrimSuffix(line, ":"); trimmed != line && IsCue(trimmed) {
			line = strings.TrimSpace(trimmed)
		}
		lines = append(lines, line)
	}

	text = strings.Join(lines, "\n")
	text = reBlankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
