package scanner

// Citation markers are stateless: '@' starts an author-in-text citation,
// '-@' a suppressed-author one. A '{' directly after the marker selects the
// bracketed variant, whose key is enclosed in braces by the grammar.

func (s *Scanner) scanCiteAuthor(cur Cursor, valid TokenSet) (TokenType, bool) {
	cur.Advance()
	if cur.Peek() == '{' && valid.Has(CiteAuthorBracketed) {
		cur.Advance()
		cur.MarkEnd()
		return CiteAuthorBracketed, true
	}
	if valid.Has(CiteAuthor) {
		cur.MarkEnd()
		return CiteAuthor, true
	}
	return Error, false
}

func (s *Scanner) scanCiteSuppressAuthor(cur Cursor, valid TokenSet) (TokenType, bool) {
	cur.Advance()
	if cur.Peek() != '@' {
		return Error, false
	}
	cur.Advance()
	if cur.Peek() == '{' && valid.Has(CiteSuppressAuthorBracketed) {
		cur.Advance()
		cur.MarkEnd()
		return CiteSuppressAuthorBracketed, true
	}
	if valid.Has(CiteSuppressAuthor) {
		cur.MarkEnd()
		return CiteSuppressAuthor, true
	}
	return Error, false
}
