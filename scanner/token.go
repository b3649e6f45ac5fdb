package scanner

import "fmt"

// TokenType identifies an inline delimiter token. The ordinal values are part
// of the wire contract with embedding grammars and must not be reordered.
type TokenType uint8

const (
	// Error is the catch-all token committed on a forced-error scan.
	Error TokenType = iota
	// ForcedError is never returned; its presence in the candidate set
	// instructs the scanner to commit Error without consuming input.
	ForcedError

	// Code spans (backtick runs, length-sensitive)
	CodeSpanOpen
	CodeSpanClose

	// Emphasis delimiters
	EmphasisOpenStar
	EmphasisOpenUnderscore
	EmphasisCloseStar
	EmphasisCloseUnderscore

	// Context flags. Callers set these in the candidate set to describe the
	// byte before the scan position; they are never returned as tokens.
	LastTokenWhitespace
	LastTokenPunctuation

	// Strikeout (~~)
	StrikeoutOpen
	StrikeoutClose

	// Math spans (dollar runs, length-sensitive)
	MathSpanOpen
	MathSpanClose

	// Smart quotes
	SingleQuoteOpen
	SingleQuoteClose
	DoubleQuoteOpen
	DoubleQuoteClose

	// Superscript (^) and subscript (~)
	SuperscriptOpen
	SuperscriptClose
	SubscriptOpen
	SubscriptClose

	// Citations
	CiteAuthorBracketed         // @{
	CiteSuppressAuthorBracketed // -@{
	CiteAuthor                  // @
	CiteSuppressAuthor          // -@

	// Shortcodes
	ShortcodeOpenEscaped  // {{{<
	ShortcodeCloseEscaped // >}}}
	ShortcodeOpen         // {{<
	ShortcodeClose        // >}}

	// UnclosedSpan is committed in place of a code/math span open whose
	// closing run never arrives before EOF.
	UnclosedSpan

	// NumTokenTypes is the number of token kinds; values at or above it are
	// free for embedders.
	NumTokenTypes
)

var tokenNames = map[TokenType]string{
	Error:       "error",
	ForcedError: "forced-error",

	CodeSpanOpen:  "code-span-open",
	CodeSpanClose: "code-span-close",

	EmphasisOpenStar:        "emphasis-open-star",
	EmphasisOpenUnderscore:  "emphasis-open-underscore",
	EmphasisCloseStar:       "emphasis-close-star",
	EmphasisCloseUnderscore: "emphasis-close-underscore",

	LastTokenWhitespace:  "last-token-whitespace",
	LastTokenPunctuation: "last-token-punctuation",

	StrikeoutOpen:  "strikeout-open",
	StrikeoutClose: "strikeout-close",

	MathSpanOpen:  "math-span-open",
	MathSpanClose: "math-span-close",

	SingleQuoteOpen:  "single-quote-open",
	SingleQuoteClose: "single-quote-close",
	DoubleQuoteOpen:  "double-quote-open",
	DoubleQuoteClose: "double-quote-close",

	SuperscriptOpen:  "superscript-open",
	SuperscriptClose: "superscript-close",
	SubscriptOpen:    "subscript-open",
	SubscriptClose:   "subscript-close",

	CiteAuthorBracketed:         "citation-author-bracketed",
	CiteSuppressAuthorBracketed: "citation-suppress-author-bracketed",
	CiteAuthor:                  "citation-author",
	CiteSuppressAuthor:          "citation-suppress-author",

	ShortcodeOpenEscaped:  "shortcode-open-escaped",
	ShortcodeCloseEscaped: "shortcode-close-escaped",
	ShortcodeOpen:         "shortcode-open",
	ShortcodeClose:        "shortcode-close",

	UnclosedSpan: "unclosed-span",
}

// String returns the stable identifier for the token type. Embedding grammars
// mirror these names, so they must not change.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint8(t))
}

// IsFlag reports whether t is a context flag rather than an emittable token.
func (t TokenType) IsFlag() bool {
	return t == LastTokenWhitespace || t == LastTokenPunctuation
}

// TokenSet is the candidate set passed to Scan: the kinds the caller is
// prepared to accept at the current position, plus the two context flags.
type TokenSet uint32

// NewTokenSet builds a set from the given types.
func NewTokenSet(types ...TokenType) TokenSet {
	var s TokenSet
	return s.With(types...)
}

// Has reports whether t is in the set.
func (s TokenSet) Has(t TokenType) bool {
	return s&(1<<t) != 0
}

// With returns a copy of the set with the given types added.
func (s TokenSet) With(types ...TokenType) TokenSet {
	for _, t := range types {
		s |= 1 << t
	}
	return s
}

// Without returns a copy of the set with the given types removed.
func (s TokenSet) Without(types ...TokenType) TokenSet {
	for _, t := range types {
		s &^= 1 << t
	}
	return s
}

// Token is a positioned token. It stores byte offsets into the source rather
// than text; use Bytes or Text to materialize the content.
type Token struct {
	Type   TokenType
	Start  int // Byte offset where token starts
	End    int // Byte offset where token ends (exclusive)
	Line   int // Line number (1-indexed)
	Column int // Column number (1-indexed)
}

// Bytes returns the raw bytes of the token from the source.
func (t Token) Bytes(source []byte) []byte {
	if t.Start < 0 || t.End > len(source) || t.Start > t.End {
		return nil
	}
	return source[t.Start:t.End]
}

// Text returns the token content as a string.
func (t Token) Text(source []byte) string {
	return string(t.Bytes(source))
}

// Len returns the token length in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}

// String returns a human-readable representation for debugging.
func (t Token) String() string {
	return fmt.Sprintf("%s[%d:%d]", t.Type, t.Start, t.End)
}
