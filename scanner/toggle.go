package scanner

// Strikeout, superscript, subscript, and smart quotes are plain toggles: the
// same delimiter both opens and closes, so the scanner only tracks whether it
// is currently inside the span. Closing wins whenever the caller accepts it.

// scanCaret handles '^'. A caret directly before '[' belongs to the bracketed
// superscript syntax, which is not a leaf token.
func (s *Scanner) scanCaret(cur Cursor, valid TokenSet) (TokenType, bool) {
	cur.Advance()
	cur.MarkEnd()
	if cur.Peek() == '[' {
		return Error, false
	}
	return s.toggle(valid, &s.state.SuperscriptOpen, SuperscriptOpen, SuperscriptClose)
}

// scanTilde routes '~' to strikeout (~~) or subscript (~).
func (s *Scanner) scanTilde(cur Cursor, valid TokenSet) (TokenType, bool) {
	cur.Advance()
	if cur.Peek() == '~' {
		cur.Advance()
		cur.MarkEnd()
		return s.toggle(valid, &s.state.StrikeoutOpen, StrikeoutOpen, StrikeoutClose)
	}
	cur.MarkEnd()
	return s.toggle(valid, &s.state.SubscriptOpen, SubscriptOpen, SubscriptClose)
}

func (s *Scanner) scanSingleQuote(cur Cursor, valid TokenSet) (TokenType, bool) {
	cur.Advance()
	cur.MarkEnd()
	if valid.Has(SingleQuoteClose) {
		s.state.SingleQuoteOpen = false
		return SingleQuoteClose, true
	}
	// An opening quote directly before whitespace is an apostrophe.
	if valid.Has(SingleQuoteOpen) && !isWhitespace(cur) {
		s.state.SingleQuoteOpen = true
		return SingleQuoteOpen, true
	}
	return Error, false
}

func (s *Scanner) scanDoubleQuote(cur Cursor, valid TokenSet) (TokenType, bool) {
	cur.Advance()
	cur.MarkEnd()
	return s.toggle(valid, &s.state.DoubleQuoteOpen, DoubleQuoteOpen, DoubleQuoteClose)
}

func (s *Scanner) toggle(valid TokenSet, inside *bool, open, close TokenType) (TokenType, bool) {
	if valid.Has(close) {
		*inside = false
		return close, true
	}
	if valid.Has(open) {
		*inside = true
		return open, true
	}
	return Error, false
}
