package scanner

// Code spans and math spans share the same length-sensitive delimiter logic:
// a span opened by a run of N delimiters is closed only by a run of exactly
// N. Whether a run opens at all is decided by an unbounded forward scan for
// a matching closer; the lookahead is speculative and never moves the
// committed token end past the run itself.

func (s *Scanner) scanSpanDelimiter(cur Cursor, valid TokenSet, delim byte, runLen *uint8, open, close TokenType) (TokenType, bool) {
	var level uint8
	for cur.Peek() == delim {
		cur.Advance()
		level++
	}
	cur.MarkEnd()

	if level == *runLen && valid.Has(close) {
		*runLen = 0
		return close, true
	}
	if !valid.Has(open) {
		return Error, false
	}

	// Look ahead for a run of exactly the same length. Longer or shorter
	// runs reset the match; a run cut off by EOF still counts.
	matched := 0
	for !cur.EOF() {
		if cur.Peek() == delim {
			matched++
		} else {
			if matched == int(level) {
				break
			}
			matched = 0
		}
		cur.Advance()
	}
	if matched == int(level) {
		*runLen = level
		return open, true
	}
	if valid.Has(UnclosedSpan) {
		return UnclosedSpan, true
	}
	return Error, false
}
