package scanner

// Cursor is the input capability the scanner reads through. The committed end
// of a token defaults to the current advance position; after MarkEnd the end
// is pinned and further Advance calls are non-destructive lookahead.
//
// On a declined scan the caller is responsible for restoring the cursor to
// the pre-scan position (the scanner restores its own state).
type Cursor interface {
	// Peek returns the byte at the lookahead position, or 0 at EOF.
	Peek() byte
	// EOF reports whether the lookahead position is past the input.
	EOF() bool
	// Advance consumes one byte. No-op at EOF.
	Advance()
	// MarkEnd pins the committed token end at the current position.
	MarkEnd()
}

// BytesCursor is a Cursor over an in-memory byte slice. It tracks the token
// bracketing and the lookahead high-water mark that drivers use to measure
// speculative scanning.
type BytesCursor struct {
	src      []byte
	start    int  // current token start
	pos      int  // lookahead position
	mark     int  // pinned token end, valid when marked
	marked   bool
	scanned  int  // furthest lookahead position reached
	steps    int  // total Advance calls, including re-walked lookahead
	eofSeen  bool // a read probed the end of input
}

var _ Cursor = (*BytesCursor)(nil)

// NewCursor creates a cursor positioned at the start of src.
func NewCursor(src []byte) *BytesCursor {
	return &BytesCursor{src: src}
}

// Peek returns the byte at the lookahead position, or 0 at EOF.
func (c *BytesCursor) Peek() byte {
	if c.pos >= len(c.src) {
		c.eofSeen = true
		return 0
	}
	return c.src[c.pos]
}

// EOF reports whether the lookahead position is past the input.
func (c *BytesCursor) EOF() bool {
	if c.pos >= len(c.src) {
		c.eofSeen = true
		return true
	}
	return false
}

// Advance consumes one byte. No-op at EOF.
func (c *BytesCursor) Advance() {
	if c.pos < len(c.src) {
		c.pos++
		c.steps++
		if c.pos > c.scanned {
			c.scanned = c.pos
		}
	}
}

// MarkEnd pins the committed token end at the current position.
func (c *BytesCursor) MarkEnd() {
	c.mark = c.pos
	c.marked = true
}

// Start returns the offset where the current token began.
func (c *BytesCursor) Start() int {
	return c.start
}

// Offset returns the current lookahead position.
func (c *BytesCursor) Offset() int {
	return c.pos
}

// End returns the committed token end: the marked position if MarkEnd was
// called, otherwise the current position.
func (c *BytesCursor) End() int {
	if c.marked {
		return c.mark
	}
	return c.pos
}

// Rewind undoes all consumption since the token started. Used by callers
// after a declined scan.
func (c *BytesCursor) Rewind() {
	c.pos = c.start
	c.marked = false
}

// Commit finalizes the current token, realigns the lookahead position to its
// end, and begins the next token there. Returns the committed range.
func (c *BytesCursor) Commit() (start, end int) {
	start, end = c.start, c.End()
	c.pos = end
	c.start = end
	c.marked = false
	return start, end
}

// Seek repositions the cursor, abandoning any in-progress token. Used when
// resuming from a checkpoint.
func (c *BytesCursor) Seek(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(c.src) {
		offset = len(c.src)
	}
	c.start = offset
	c.pos = offset
	c.marked = false
}

// Scanned returns the furthest lookahead position reached, which can exceed
// the committed position after speculative forward scans. Once any read has
// probed the end of input it returns one past the input length: a decision
// that saw where the input ends depends on bytes appended after it.
func (c *BytesCursor) Scanned() int {
	if c.eofSeen {
		return len(c.src) + 1
	}
	return c.scanned
}

// Steps returns the total number of bytes stepped over, counting re-walked
// lookahead. Steps minus the committed length is the speculative overhead.
func (c *BytesCursor) Steps() int {
	return c.steps
}

// Len returns the total input length.
func (c *BytesCursor) Len() int {
	return len(c.src)
}
