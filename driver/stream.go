package driver

import (
	"time"

	"github.com/spanlex/spanlex/scanner"
)

// TextRun marks byte ranges no inline token claimed. It lives outside the
// scanner's serialized enum; only the driver emits it.
const TextRun = scanner.TokenType(scanner.NumTokenTypes)

// KindName returns the display name for a token kind, including the
// driver-level TextRun kind the scanner does not know about.
func KindName(t scanner.TokenType) string {
	if t == TextRun {
		return "text"
	}
	return t.String()
}

// Checkpoint captures everything needed to resume a scan mid-document:
// the byte offset, how many tokens were already emitted, the human
// position, and the scanner's serialized state.
//
// Lookahead is the furthest byte any scan had inspected when the
// checkpoint was taken. A checkpoint is only a safe resume point for an
// edit at or after that offset; speculative span matching means a token
// can depend on bytes far past its own end.
type Checkpoint struct {
	Offset     int
	TokenIndex int
	Line       int
	Column     int
	Lookahead  int
	State      [scanner.StateSize]byte
}

// Stats counts the work one scan performed.
type Stats struct {
	// ScanCalls is the number of scanner invocations, including declined ones.
	ScanCalls int
	// Declined counts scans where no candidate matched and the byte fell
	// through to a text run.
	Declined int
	// Tokens counts committed inline tokens, excluding text runs.
	Tokens int
	// TextBytes is the total length of all text runs.
	TextBytes int
	// LookaheadBytes is how many byte reads exceeded the committed length,
	// the cost of speculative span matching.
	LookaheadBytes int
	// ReusedTokens counts tokens carried over from a previous stream.
	ReusedTokens int
	// RescannedBytes is how much of the source was actually scanned.
	RescannedBytes int
	Elapsed        time.Duration
}

// Stream is the result of scanning one document: the full token stream
// with text runs filling the gaps, plus diagnostics and resume points.
type Stream struct {
	Source      []byte
	Filename    string
	Tokens      []scanner.Token
	Diagnostics []*Diagnostic
	Checkpoints []Checkpoint
	Stats       Stats

	interner *Interner
}

// TokenText returns the token's source text, interned so repeated
// delimiters share one allocation.
func (st *Stream) TokenText(tok scanner.Token) string {
	if st.interner != nil {
		return st.interner.InternBytes(tok.Bytes(st.Source))
	}
	return tok.Text(st.Source)
}

// PositionOf converts a token's recorded location into a Position.
func (st *Stream) PositionOf(tok scanner.Token) Position {
	return Position{
		Filename: st.Filename,
		Offset:   tok.Start,
		Line:     tok.Line,
		Column:   tok.Column,
	}
}

// HasErrors reports whether the scan produced any diagnostics.
func (st *Stream) HasErrors() bool {
	return len(st.Diagnostics) > 0
}
