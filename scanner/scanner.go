// Package scanner implements a stateful tokenizer for markdown-style inline
// span delimiters: emphasis runs, code and math spans, strikeout, superscript,
// subscript, smart quotes, citations, and shortcodes.
//
// The scanner is designed to sit underneath an incremental parser. It commits
// one token per Scan call, chosen from a caller-supplied candidate set, and
// keeps all persistent state in a 10-byte serializable record so the embedding
// parser can checkpoint and resume mid-document. It operates on raw bytes; all
// delimiters are ASCII, so no UTF-8 decoding is needed.
package scanner

// Scanner tokenizes inline span delimiters one token at a time.
type Scanner struct {
	state State
}

// New creates a scanner in the start-of-document state.
func New() *Scanner {
	return &Scanner{}
}

// State returns a copy of the persistent state.
func (s *Scanner) State() State {
	return s.state
}

// SetState replaces the persistent state, e.g. when resuming from a
// checkpoint.
func (s *Scanner) SetState(st State) {
	s.state = st
}

// Serialize writes the persistent state into buf. See State.Serialize.
func (s *Scanner) Serialize(buf []byte) int {
	return s.state.Serialize(buf)
}

// Deserialize restores the persistent state from buf. See State.Deserialize.
func (s *Scanner) Deserialize(buf []byte) {
	s.state.Deserialize(buf)
}

// Reset returns the scanner to the start-of-document state.
func (s *Scanner) Reset() {
	s.state.Reset()
}

// Scan attempts to commit one token at the cursor position. valid is the set
// of token kinds the caller accepts here, plus the LastTokenWhitespace and
// LastTokenPunctuation context flags describing the byte before the cursor.
//
// On success the committed token ends at the cursor's marked end (or its
// current position when no end was marked); any lookahead past that point was
// speculative. On decline the scanner state is untouched and the caller must
// rewind the cursor before trying anything else.
func (s *Scanner) Scan(cur Cursor, valid TokenSet) (TokenType, bool) {
	// A forced error always wins: commit the catch-all token without
	// consuming input so the caller can fail the enclosing construct.
	if valid.Has(ForcedError) {
		return Error, true
	}

	snapshot := s.state
	tok, ok := s.dispatch(cur, valid)
	if !ok {
		s.state = snapshot
		return Error, false
	}
	return tok, true
}

func (s *Scanner) dispatch(cur Cursor, valid TokenSet) (TokenType, bool) {
	switch cur.Peek() {
	case '{':
		return s.scanShortcodeOpen(cur, valid)
	case '>':
		return s.scanShortcodeClose(cur, valid)
	case '@':
		return s.scanCiteAuthor(cur, valid)
	case '-':
		return s.scanCiteSuppressAuthor(cur, valid)
	case '^':
		return s.scanCaret(cur, valid)
	case '`':
		return s.scanSpanDelimiter(cur, valid, '`', &s.state.CodeSpanRun, CodeSpanOpen, CodeSpanClose)
	case '$':
		return s.scanSpanDelimiter(cur, valid, '$', &s.state.MathSpanRun, MathSpanOpen, MathSpanClose)
	case '*':
		return s.scanEmphasis(cur, valid, '*', EmphasisOpenStar, EmphasisCloseStar)
	case '_':
		return s.scanEmphasis(cur, valid, '_', EmphasisOpenUnderscore, EmphasisCloseUnderscore)
	case '~':
		return s.scanTilde(cur, valid)
	case '\'':
		// Quotes only open after whitespace and never inside shortcode
		// arguments, where they delimit string literals instead.
		if s.state.ShortcodeDepth == 0 && (valid.Has(LastTokenWhitespace) || s.state.SingleQuoteOpen) {
			return s.scanSingleQuote(cur, valid)
		}
	case '"':
		if s.state.ShortcodeDepth == 0 && (valid.Has(LastTokenWhitespace) || s.state.DoubleQuoteOpen) {
			return s.scanDoubleQuote(cur, valid)
		}
	}
	return Error, false
}

// IsPunctuation reports whether b falls in one of the four ASCII punctuation
// ranges used by the flanking rules. Drivers use the same classification to
// set the LastTokenPunctuation flag.
func IsPunctuation(b byte) bool {
	return (b >= '!' && b <= '/') ||
		(b >= ':' && b <= '@') ||
		(b >= '[' && b <= '`') ||
		(b >= '{' && b <= '~')
}

// IsWhitespace reports whether b is space, tab, or a line break. Drivers use
// the same classification to set the LastTokenWhitespace flag.
func IsWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// isWhitespace reports whether the cursor is at space, tab, or a line end.
// EOF counts as whitespace for flanking purposes.
func isWhitespace(cur Cursor) bool {
	return IsWhitespace(cur.Peek()) || cur.EOF()
}
