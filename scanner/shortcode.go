package scanner

// Shortcodes open with {{< (plain) or {{{< (escaped) and close with >}} or
// >}}} respectively. The scanner only tracks nesting depth; argument syntax
// inside the shortcode is the grammar's concern.

func (s *Scanner) scanShortcodeOpen(cur Cursor, valid TokenSet) (TokenType, bool) {
	cur.Advance()
	if cur.Peek() != '{' {
		return Error, false
	}
	cur.Advance()
	if cur.Peek() == '<' && valid.Has(ShortcodeOpen) {
		cur.Advance()
		cur.MarkEnd()
		s.state.ShortcodeDepth++
		return ShortcodeOpen, true
	}
	if cur.Peek() == '{' {
		cur.Advance()
		if cur.Peek() == '<' && valid.Has(ShortcodeOpenEscaped) {
			cur.Advance()
			cur.MarkEnd()
			s.state.ShortcodeDepth++
			return ShortcodeOpenEscaped, true
		}
	}
	return Error, false
}

func (s *Scanner) scanShortcodeClose(cur Cursor, valid TokenSet) (TokenType, bool) {
	cur.Advance()
	if cur.Peek() != '}' {
		return Error, false
	}
	cur.Advance()
	if cur.Peek() != '}' {
		return Error, false
	}
	cur.Advance()
	if cur.Peek() == '}' && valid.Has(ShortcodeCloseEscaped) {
		cur.Advance()
		cur.MarkEnd()
		s.closeShortcode()
		return ShortcodeCloseEscaped, true
	}
	if valid.Has(ShortcodeClose) {
		cur.MarkEnd()
		s.closeShortcode()
		return ShortcodeClose, true
	}
	return Error, false
}

// closeShortcode saturates at zero: a close the grammar requested without a
// matching open must not wrap the depth and poison quote handling.
func (s *Scanner) closeShortcode() {
	if s.state.ShortcodeDepth > 0 {
		s.state.ShortcodeDepth--
	}
}
