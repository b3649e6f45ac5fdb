package scanner

// Emphasis delimiters follow the CommonMark left/right-flanking rules,
// restricted to ASCII classes. A delimiter run is classified once, on its
// first byte; the decision is then replayed for the rest of the run, one
// delimiter per call, tracked by State.EmphasisLeft and
// State.EmphasisOpening.

func (s *Scanner) scanEmphasis(cur Cursor, valid TokenSet, delim byte, open, close TokenType) (TokenType, bool) {
	cur.Advance()

	// Replay the decision for a run already classified.
	if s.state.EmphasisLeft > 0 {
		if s.state.EmphasisOpening && valid.Has(open) {
			s.state.EmphasisLeft--
			return open, true
		}
		if valid.Has(close) {
			s.state.EmphasisLeft--
			return close, true
		}
	}

	cur.MarkEnd()
	count := uint8(1)
	for cur.Peek() == delim {
		cur.Advance()
		count++
	}
	if !valid.Has(open) && !valid.Has(close) {
		return Error, false
	}
	s.state.EmphasisLeft = count - 1

	nextWhitespace := isWhitespace(cur)
	nextPunctuation := IsPunctuation(cur.Peek())
	prevWhitespace := valid.Has(LastTokenWhitespace)
	prevPunctuation := valid.Has(LastTokenPunctuation)

	// Closing wins over opening. A run closes when it is right-flanking:
	// not preceded by whitespace, and a preceding punctuation byte requires
	// punctuation or whitespace after the run.
	if valid.Has(close) && !prevWhitespace &&
		(!prevPunctuation || nextPunctuation || nextWhitespace) {
		s.state.EmphasisOpening = false
		return close, true
	}
	// A run opens when it is left-flanking: not followed by whitespace, and a
	// following punctuation byte requires punctuation or whitespace before
	// the run.
	if valid.Has(open) && !nextWhitespace &&
		(!nextPunctuation || prevWhitespace || prevPunctuation) {
		s.state.EmphasisOpening = true
		return open, true
	}
	return Error, false
}
