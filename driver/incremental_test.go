package driver

import (
	"bytes"
	"context"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/spanlex/spanlex/scanner"
)

// rescanMatchesFresh asserts the one property incremental scanning must
// hold: Rescan produces the same tokens and diagnostics as a fresh scan.
func rescanMatchesFresh(t *testing.T, d *Driver, old, new []byte) *Stream {
	t.Helper()
	ctx := context.Background()

	prev, err := d.Scan(ctx, old)
	assert.NoError(t, err)

	inc, err := d.Rescan(ctx, prev, new)
	assert.NoError(t, err)

	fresh, err := d.Scan(ctx, new)
	assert.NoError(t, err)

	assert.Equal(t, fresh.Tokens, inc.Tokens)
	assert.Equal(t, len(fresh.Diagnostics), len(inc.Diagnostics))
	for i := range fresh.Diagnostics {
		assert.Equal(t, fresh.Diagnostics[i].Message, inc.Diagnostics[i].Message)
		assert.Equal(t, fresh.Diagnostics[i].Pos, inc.Diagnostics[i].Pos)
	}
	return inc
}

func TestRescanAppend(t *testing.T) {
	d := New()
	inc := rescanMatchesFresh(t, d,
		[]byte("*a* and "),
		[]byte("*a* and `x`"))

	// The emphasis pair and the text between it and the edit are reused.
	assert.Equal(t, 3, inc.Stats.ReusedTokens)
	assert.True(t, inc.Stats.RescannedBytes < 11)
}

func TestRescanIdenticalSource(t *testing.T) {
	d := New()
	src := []byte("*a* b `c` d")
	inc := rescanMatchesFresh(t, d, src, src)

	assert.True(t, inc.Stats.ReusedTokens > 0)
	assert.True(t, inc.Stats.RescannedBytes < len(src))
}

func TestRescanEditInsideSpanInvalidatesOpener(t *testing.T) {
	// The opener at offset 0 matched the closer at offset 4; removing the
	// closer must re-decide the opener, so no checkpoint survives.
	d := New()
	inc := rescanMatchesFresh(t, d,
		[]byte("`abc`x"),
		[]byte("`abcx"))

	assert.Equal(t, 0, inc.Stats.ReusedTokens)
	assert.Equal(t, scanner.UnclosedSpan, inc.Tokens[0].Type)
	assert.Equal(t, 1, len(inc.Diagnostics))
}

func TestRescanEditAfterLookaheadReusesPrefix(t *testing.T) {
	d := New()
	prevSrc := []byte("*a* b `c` d")
	inc := rescanMatchesFresh(t, d, prevSrc, []byte("*a* b `c` d!e"))

	// Everything through the code span close is safe to keep.
	assert.Equal(t, 7, inc.Stats.ReusedTokens)
}

func TestRescanEditAfterSplitRun(t *testing.T) {
	// A double-star run splits into two tokens; the checkpoint after the
	// second one must carry state with the replay counter drained.
	d := New()
	rescanMatchesFresh(t, d,
		[]byte("**bold** tail"),
		[]byte("**bold** tial"))
}

func TestRescanEditInsideOpenEmphasis(t *testing.T) {
	// The edit lands after an emphasis opener but before its closer.
	// Replaying the kept opener must reopen the construct, or the closer
	// would never be offered as a candidate.
	d := New()
	rescanMatchesFresh(t, d,
		[]byte("*alpha beta* tail"),
		[]byte("*alpha bXta* tail"))
}

func TestRescanEditInsideShortcode(t *testing.T) {
	d := New()
	rescanMatchesFresh(t, d,
		[]byte(`{{< fig src="a.png" >}} after`),
		[]byte(`{{< fig src="b.png" >}} after`))
}

func TestRescanPrefixShrinks(t *testing.T) {
	d := New()
	rescanMatchesFresh(t, d,
		[]byte("*a* and *b* and *c*"),
		[]byte("*a*"))
}

func TestRescanGrowsFromEmpty(t *testing.T) {
	d := New()
	rescanMatchesFresh(t, d, nil, []byte("*a* `b`"))
}

func TestRescanNilPrevious(t *testing.T) {
	d := New()
	ctx := context.Background()

	inc, err := d.Rescan(ctx, nil, []byte("*a*"))
	assert.NoError(t, err)
	assert.Equal(t, 3, len(inc.Tokens))
	assert.Equal(t, 0, inc.Stats.ReusedTokens)
}

func TestRescanDoesNotMutatePrevious(t *testing.T) {
	d := New()
	ctx := context.Background()

	old := []byte("*a* b")
	prev, err := d.Scan(ctx, old)
	assert.NoError(t, err)

	tokensBefore := make([]scanner.Token, len(prev.Tokens))
	copy(tokensBefore, prev.Tokens)
	cpsBefore := make([]Checkpoint, len(prev.Checkpoints))
	copy(cpsBefore, prev.Checkpoints)

	_, err = d.Rescan(ctx, prev, []byte("*a* b *c*"))
	assert.NoError(t, err)

	assert.Equal(t, tokensBefore, prev.Tokens)
	assert.Equal(t, cpsBefore, prev.Checkpoints)
	assert.True(t, bytes.Equal(old, prev.Source))
}

func TestRescanRepeatedEdits(t *testing.T) {
	// Simulate an editing session: each revision rescans against the
	// previous stream and must stay equivalent to a fresh scan.
	d := New()
	ctx := context.Background()

	revisions := [][]byte{
		[]byte("# notes"),
		[]byte("# notes\n\n*work* in `progress"),
		[]byte("# notes\n\n*work* in `progress`"),
		[]byte("# notes\n\n*work* in `progress` -- see @doe"),
		[]byte("# notes\n\n*work* `progress` -- see @doe"),
	}

	var prev *Stream
	for _, rev := range revisions {
		inc, err := d.Rescan(ctx, prev, rev)
		assert.NoError(t, err)

		fresh, err := d.Scan(ctx, rev)
		assert.NoError(t, err)
		assert.Equal(t, fresh.Tokens, inc.Tokens)
		assert.Equal(t, len(fresh.Diagnostics), len(inc.Diagnostics))

		prev = inc
	}
}
