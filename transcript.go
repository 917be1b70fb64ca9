package pdfgenie

// RecentWindowSize is the fixed capacity of the recent-message view used
// for display. Older messages stay in the transcript for export.
const RecentWindowSize = 6

// Transcript is the append-only log of conversation turns for one session.
// Insertion order is significant. The recent window is a computed view
// over the log rather than a separately maintained deque, so the two can
// never drift apart.
type Transcript struct {
	messages []Message
}

// Append adds messages to the end of the log.
func (t *Transcript) Append(msgs ...Message) {
	t.messages = append(t.messages, msgs...)
}

// Len returns the number of messages in the log.
func (t *Transcript) Len() int { return len(t.messages) }

// Messages returns a copy of the full log in insertion order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Window returns a copy of the last n messages in insertion order.
// When the log holds fewer than n messages, all of them are returned.
func (t *Transcript) Window(n int) []Message {
	if n > len(t.messages) {
		n = len(t.messages)
	}
	if n <= 0 {
		return nil
	}
	out := make([]Message, n)
	copy(out, t.messages[len(t.messages)-n:])
	return out
}

// Recent returns the display window: the last RecentWindowSize messages.
func (t *Transcript) Recent() []Message {
	return t.Window(RecentWindowSize)
}
