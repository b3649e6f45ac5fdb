package scanner

// StateSize is the exact size of a serialized State in bytes. Embedding
// parsers reserve this much room per checkpoint.
const StateSize = 10

// Flag bits of the serialized flags byte. Remaining bits are reserved.
const flagEmphasisOpening = 1 << 0

// State is everything the scanner persists between calls. The zero value is
// the state at the start of a document. Fields are exported for debugging
// tools; treat the record as opaque otherwise.
type State struct {
	// EmphasisOpening is the direction of the in-progress emphasis run:
	// true while re-emitting opens, false while re-emitting closes.
	EmphasisOpening bool

	// CodeSpanRun and MathSpanRun hold the delimiter run length of the
	// currently open span, 0 when closed.
	CodeSpanRun uint8
	MathSpanRun uint8

	// EmphasisLeft counts the undecided delimiters remaining in the current
	// emphasis run.
	EmphasisLeft uint8

	// ShortcodeDepth is the shortcode nesting depth. While non-zero, quote
	// characters are treated as string-literal delimiters, not prose.
	ShortcodeDepth uint8

	// Span toggles.
	SuperscriptOpen bool
	SubscriptOpen   bool
	StrikeoutOpen   bool
	SingleQuoteOpen bool
	DoubleQuoteOpen bool
}

// Serialize writes the state into buf in the fixed wire order and returns the
// number of bytes written. Returns 0 if buf is shorter than StateSize.
func (s *State) Serialize(buf []byte) int {
	if len(buf) < StateSize {
		return 0
	}
	var flags uint8
	if s.EmphasisOpening {
		flags |= flagEmphasisOpening
	}
	buf[0] = flags
	buf[1] = s.CodeSpanRun
	buf[2] = s.MathSpanRun
	buf[3] = s.EmphasisLeft
	buf[4] = s.ShortcodeDepth
	buf[5] = boolByte(s.SuperscriptOpen)
	buf[6] = boolByte(s.SubscriptOpen)
	buf[7] = boolByte(s.StrikeoutOpen)
	buf[8] = boolByte(s.SingleQuoteOpen)
	buf[9] = boolByte(s.DoubleQuoteOpen)
	return StateSize
}

// Deserialize restores the state from buf. A buffer shorter than StateSize
// resets to the zero state; extra bytes are ignored.
func (s *State) Deserialize(buf []byte) {
	if len(buf) < StateSize {
		*s = State{}
		return
	}
	s.EmphasisOpening = buf[0]&flagEmphasisOpening != 0
	s.CodeSpanRun = buf[1]
	s.MathSpanRun = buf[2]
	s.EmphasisLeft = buf[3]
	s.ShortcodeDepth = buf[4]
	s.SuperscriptOpen = buf[5] != 0
	s.SubscriptOpen = buf[6] != 0
	s.StrikeoutOpen = buf[7] != 0
	s.SingleQuoteOpen = buf[8] != 0
	s.DoubleQuoteOpen = buf[9] != 0
}

// Reset returns the state to the start-of-document zero value.
func (s *State) Reset() {
	*s = State{}
}

// IsZero reports whether the state equals the start-of-document state.
func (s State) IsZero() bool {
	return s == State{}
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
