package scanner

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestEmphasisBasicPair(t *testing.T) {
	s := New()
	src := "*bold*"

	// Document start counts as preceded by whitespace.
	tok, n, ok := scanAt(s, src, 0, NewTokenSet(EmphasisOpenStar, EmphasisCloseStar, LastTokenWhitespace))
	assert.True(t, ok)
	assert.Equal(t, EmphasisOpenStar, tok)
	assert.Equal(t, 1, n)
	assert.True(t, s.State().EmphasisOpening)

	tok, n, ok = scanAt(s, src, 5, NewTokenSet(EmphasisOpenStar, EmphasisCloseStar))
	assert.True(t, ok)
	assert.Equal(t, EmphasisCloseStar, tok)
	assert.Equal(t, 1, n)
	assert.False(t, s.State().EmphasisOpening)
}

func TestEmphasisDoubleStar(t *testing.T) {
	s := New()
	src := "**bold**"
	both := NewTokenSet(EmphasisOpenStar, EmphasisCloseStar)

	tok, n, ok := scanAt(s, src, 0, both.With(LastTokenWhitespace))
	assert.True(t, ok)
	assert.Equal(t, EmphasisOpenStar, tok)
	assert.Equal(t, 1, n, "one token per delimiter, not per run")
	assert.Equal(t, uint8(1), s.State().EmphasisLeft)

	tok, n, ok = scanAt(s, src, 1, both)
	assert.True(t, ok)
	assert.Equal(t, EmphasisOpenStar, tok, "second delimiter replays the open decision")
	assert.Equal(t, 1, n)
	assert.Equal(t, uint8(0), s.State().EmphasisLeft)

	tok, _, ok = scanAt(s, src, 6, both)
	assert.True(t, ok)
	assert.Equal(t, EmphasisCloseStar, tok)
	assert.Equal(t, uint8(1), s.State().EmphasisLeft)

	tok, _, ok = scanAt(s, src, 7, both)
	assert.True(t, ok)
	assert.Equal(t, EmphasisCloseStar, tok)
	assert.Equal(t, uint8(0), s.State().EmphasisLeft)
}

func TestEmphasisFlanking(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid TokenSet
		want  TokenType
		ok    bool
	}{
		{
			name:  "opens after whitespace before word",
			input: "*a",
			valid: NewTokenSet(EmphasisOpenStar, EmphasisCloseStar, LastTokenWhitespace),
			want:  EmphasisOpenStar,
			ok:    true,
		},
		{
			name:  "declines between whitespace",
			input: "* a",
			valid: NewTokenSet(EmphasisOpenStar, EmphasisCloseStar, LastTokenWhitespace),
			ok:    false,
		},
		{
			name:  "declines at end of input after whitespace",
			input: "*",
			valid: NewTokenSet(EmphasisOpenStar, LastTokenWhitespace),
			ok:    false,
		},
		{
			name:  "closes after word at end of input",
			input: "*",
			valid: NewTokenSet(EmphasisCloseStar),
			want:  EmphasisCloseStar,
			ok:    true,
		},
		{
			name:  "close wins over open between words",
			input: "*a",
			valid: NewTokenSet(EmphasisOpenStar, EmphasisCloseStar),
			want:  EmphasisCloseStar,
			ok:    true,
		},
		{
			name:  "opens after punctuation before word",
			input: "*a",
			valid: NewTokenSet(EmphasisOpenStar, EmphasisCloseStar, LastTokenPunctuation),
			want:  EmphasisOpenStar,
			ok:    true,
		},
		{
			name:  "closes between punctuation",
			input: "*.",
			valid: NewTokenSet(EmphasisOpenStar, EmphasisCloseStar, LastTokenPunctuation),
			want:  EmphasisCloseStar,
			ok:    true,
		},
		{
			name:  "declines within word before punctuation",
			input: "*.",
			valid: NewTokenSet(EmphasisOpenStar),
			ok:    false,
		},
		{
			name:  "underscore opens after whitespace",
			input: "_a",
			valid: NewTokenSet(EmphasisOpenUnderscore, EmphasisCloseUnderscore, LastTokenWhitespace),
			want:  EmphasisOpenUnderscore,
			ok:    true,
		},
		{
			name:  "underscore closes after word",
			input: "_ ",
			valid: NewTokenSet(EmphasisOpenUnderscore, EmphasisCloseUnderscore),
			want:  EmphasisCloseUnderscore,
			ok:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			tok, n, ok := scanAt(s, tt.input, 0, tt.valid)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, tok)
				assert.Equal(t, 1, n)
			}
		})
	}
}

func TestEmphasisRunKeepsDirection(t *testing.T) {
	s := New()
	src := "***x***"
	both := NewTokenSet(EmphasisOpenStar, EmphasisCloseStar)

	// The run is classified once; the remaining delimiters reuse the
	// decision even though close is offered every call.
	for i := 0; i < 3; i++ {
		tok, n, ok := scanAt(s, src, i, both.With(LastTokenWhitespace))
		assert.True(t, ok, "call %d", i)
		assert.Equal(t, EmphasisOpenStar, tok, "call %d", i)
		assert.Equal(t, 1, n)
	}
	assert.Equal(t, uint8(0), s.State().EmphasisLeft)

	for i := 4; i < 7; i++ {
		tok, _, ok := scanAt(s, src, i, both)
		assert.True(t, ok, "call %d", i)
		assert.Equal(t, EmphasisCloseStar, tok, "call %d", i)
	}
	assert.Equal(t, uint8(0), s.State().EmphasisLeft)
}

func TestEmphasisReplayFallsBackToClose(t *testing.T) {
	s := New()
	s.SetState(State{EmphasisOpening: true, EmphasisLeft: 2})

	// The stored direction says open, but the caller no longer accepts an
	// open; the replayed delimiter closes instead.
	tok, n, ok := scanAt(s, "*", 0, NewTokenSet(EmphasisCloseStar))

	assert.True(t, ok)
	assert.Equal(t, EmphasisCloseStar, tok)
	assert.Equal(t, 1, n)
	assert.Equal(t, uint8(1), s.State().EmphasisLeft)
}

func TestEmphasisRunCountsWholeRun(t *testing.T) {
	s := New()

	tok, n, ok := scanAt(s, "****a", 0, NewTokenSet(EmphasisOpenStar, LastTokenWhitespace))

	assert.True(t, ok)
	assert.Equal(t, EmphasisOpenStar, tok)
	assert.Equal(t, 1, n, "only the first delimiter is committed")
	assert.Equal(t, uint8(3), s.State().EmphasisLeft, "the rest of the run is remembered")
}
