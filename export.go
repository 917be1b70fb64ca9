package pdfgenie

// Turn is one question/answer pair for export. A trailing user message
// with no response yet yields a Turn with HasBot false.
type Turn struct {
	User   string
	Bot    string
	HasBot bool
}

// PairTurns groups transcript messages positionally: even index = user
// turn, odd index = response turn.
func PairTurns(msgs []Message) []Turn {
	var turns []Turn
	for i := 0; i < len(msgs); i += 2 {
		t := Turn{User: msgs[i].Text}
		if i+1 < len(msgs) {
			t.Bot = msgs[i+1].Text
			t.HasBot = true
		}
		turns = append(turns, t)
	}
	return turns
}

// RenderLines renders paired turns as plain text lines: "You: …" then
// "Bot: …", with an empty line between pairs. An unmatched trailing user
// turn is rendered alone, with no "Bot:" line following it.
func RenderLines(msgs []Message) []string {
	var lines []string
	for i, t := range PairTurns(msgs) {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "You: "+t.User)
		if t.HasBot {
			lines = append(lines, "Bot: "+t.Bot)
		}
	}
	return lines
}

// TranscriptRenderer serializes rendered transcript lines into a
// downloadable document. The export package provides a PDF implementation.
type TranscriptRenderer interface {
	Render(lines []string) ([]byte, error)
}

// Export renders the full transcript through r. Pure function of the
// transcript contents; exporting an empty transcript is an error.
func Export(t *Transcript, r TranscriptRenderer) ([]byte, error) {
	if t.Len() == 0 {
		return nil, ErrEmptyTranscript
	}
	return r.Render(RenderLines(t.Messages()))
}
