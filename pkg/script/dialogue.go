package script

import (
	"strings"

	"github.com/OFFIS-RIT/scriptnet/backend/pkg/common"
)

// ExtractDialogues maps sentence units to dialogue records. A cue followed by
// text in the same block becomes one record; the text runs until the next cue
// or the end of the block. Cues without text are dropped.
func ExtractDialogues(sentences []Sentence) []common.DialogueRecord {
	records := make([]common.DialogueRecord, 0)

	speaker := ""
	block := -1
	var parts []string

	flush := func() {
		if speaker != "" && len(parts) > 0 {
			records = append(records, common.DialogueRecord{
				Character: speaker,
				Text:      strings.Join(parts, " "),
			})
		}
		speaker = ""
		parts = parts[:0]
	}

	for _, s := range sentences {
		if s.Block != block {
			flush()
			block = s.Block
		}
		if s.Cue {
			flush()
			speaker = s.Text
			continue
		}
		if speaker != "" {
			parts = append(parts, s.Text)
		}
	}
	flush()

	return records
}
