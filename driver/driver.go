// Package driver runs the inline scanner over whole documents. It owns
// everything the scanner itself stays agnostic about: which token kinds
// to request at each position, where text runs begin and end, line and
// column tracking, diagnostics for unbalanced constructs, and the
// checkpoints that make incremental rescans possible.
package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/exp/slices"

	"github.com/spanlex/spanlex/scanner"
	"github.com/spanlex/spanlex/telemetry"
)

// ErrTokenLimit is returned when a scan exceeds the configured token cap.
var ErrTokenLimit = errors.New("token limit exceeded")

// checkEvery is how many scan calls pass between context checks.
const checkEvery = 1024

// Driver scans documents with a fixed configuration. A Driver is cheap
// and carries no per-document state; the same instance can scan many
// sources.
type Driver struct {
	unclosedSpans bool
	maxTokens     int
	filename      string
	interner      *Interner
}

// Option configures a Driver.
type Option func(*Driver)

// WithUnclosedSpans controls whether a code or math span opener with no
// matching closer is reported as a token of its own. Enabled by default;
// disabling it makes such openers fall through to plain text.
func WithUnclosedSpans(enabled bool) Option {
	return func(d *Driver) {
		d.unclosedSpans = enabled
	}
}

// WithMaxTokens caps the number of inline tokens a single scan may emit.
// Zero means no limit.
func WithMaxTokens(n int) Option {
	return func(d *Driver) {
		d.maxTokens = n
	}
}

// WithFilename sets the name reported in positions and diagnostics when
// scanning from memory.
func WithFilename(name string) Option {
	return func(d *Driver) {
		d.filename = name
	}
}

// WithInterner shares a string interner across drivers, useful when many
// documents repeat the same delimiter text.
func WithInterner(in *Interner) Option {
	return func(d *Driver) {
		d.interner = in
	}
}

// New creates a Driver.
func New(opts ...Option) *Driver {
	d := &Driver{
		unclosedSpans: true,
		interner:      NewInterner(64),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Scan tokenizes src in a single pass.
func (d *Driver) Scan(ctx context.Context, src []byte) (*Stream, error) {
	return d.run(ctx, src, d.filename, nil)
}

// ScanString tokenizes a string source.
func (d *Driver) ScanString(ctx context.Context, src string) (*Stream, error) {
	return d.run(ctx, []byte(src), d.filename, nil)
}

// ScanFile reads and tokenizes a file.
func (d *Driver) ScanFile(ctx context.Context, filename string) (*Stream, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return d.run(ctx, data, filename, nil)
}

// MustScan is like Scan but panics on error.
func (d *Driver) MustScan(ctx context.Context, src []byte) *Stream {
	st, err := d.Scan(ctx, src)
	if err != nil {
		panic(err)
	}
	return st
}

// MustScanFile is like ScanFile but panics on error.
func (d *Driver) MustScanFile(ctx context.Context, filename string) *Stream {
	st, err := d.ScanFile(ctx, filename)
	if err != nil {
		panic(err)
	}
	return st
}

// Rescan tokenizes src reusing work from a previous stream. It finds the
// longest unchanged prefix, resumes from the last checkpoint whose
// lookahead never crossed the edit, and scans only the remainder. The
// previous stream is not modified.
func (d *Driver) Rescan(ctx context.Context, prev *Stream, src []byte) (*Stream, error) {
	if prev == nil {
		return d.Scan(ctx, src)
	}

	edit := commonPrefixLen(prev.Source, src)
	cp, ok := resumePoint(prev.Checkpoints, edit)
	if !ok {
		return d.run(ctx, src, prev.Filename, nil)
	}

	res := &resume{
		offset:      cp.Offset,
		line:        cp.Line,
		column:      cp.Column,
		state:       cp.State,
		tokens:      prev.Tokens[:cp.TokenIndex],
		checkpoints: checkpointsUpTo(prev.Checkpoints, cp),
	}
	return d.run(ctx, src, prev.Filename, res)
}

// resume carries the reusable prefix of a previous scan into run.
type resume struct {
	offset      int
	line        int
	column      int
	state       [scanner.StateSize]byte
	tokens      []scanner.Token
	checkpoints []Checkpoint
}

func (d *Driver) run(ctx context.Context, src []byte, filename string, res *resume) (*Stream, error) {
	timer := telemetry.StartTimer(ctx, "driver.scan")
	timer.SetBytes(len(src))
	defer timer.End()

	started := time.Now()
	st := &Stream{
		Source:   src,
		Filename: filename,
		interner: d.interner,
	}

	s := scanner.New()
	cur := scanner.NewCursor(src)
	pol := newPolicy(d.unclosedSpans)
	line, col := 1, 1

	if res != nil {
		st.Tokens = append(st.Tokens, res.tokens...)
		st.Checkpoints = append(st.Checkpoints, res.checkpoints...)
		for _, tok := range res.tokens {
			if tok.Type == TextRun {
				st.Stats.TextBytes += tok.Len()
				continue
			}
			st.Stats.Tokens++
			pol.apply(tok, filename)
		}
		s.Deserialize(res.state[:])
		cur.Seek(res.offset)
		line, col = res.line, res.column
		st.Stats.ReusedTokens = len(res.tokens)
	}

	// committed is the offset everything before which has been emitted;
	// line and col always describe that position. Text between committed
	// and the cursor is a pending text run.
	committed := cur.Offset()
	textStart := committed
	advanceTo := func(to int) {
		for i := committed; i < to; i++ {
			if src[i] == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
		committed = to
	}
	flushText := func(upto int) {
		if upto <= textStart {
			return
		}
		tok := scanner.Token{Type: TextRun, Start: textStart, End: upto, Line: line, Column: col}
		advanceTo(upto)
		st.Tokens = append(st.Tokens, tok)
		st.Stats.TextBytes += tok.Len()
		textStart = upto
	}

	for !cur.EOF() {
		if st.Stats.ScanCalls%checkEvery == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		st.Stats.ScanCalls++

		valid := pol.valid() | contextFlags(src, cur.Offset())
		kind, ok := s.Scan(cur, valid)
		if !ok {
			// Nothing matched here. The byte joins the pending text run.
			st.Stats.Declined++
			cur.Rewind()
			cur.Advance()
			cur.Commit()
			continue
		}

		start, end := cur.Commit()
		flushText(start)
		tok := scanner.Token{Type: kind, Start: start, End: end, Line: line, Column: col}
		advanceTo(end)
		textStart = end
		st.Tokens = append(st.Tokens, tok)
		st.Stats.Tokens++
		pol.apply(tok, filename)

		cp := Checkpoint{
			Offset:     end,
			TokenIndex: len(st.Tokens),
			Line:       line,
			Column:     col,
			Lookahead:  cur.Scanned(),
		}
		s.Serialize(cp.State[:])
		st.Checkpoints = append(st.Checkpoints, cp)

		if d.maxTokens > 0 && st.Stats.Tokens > d.maxTokens {
			return nil, fmt.Errorf("%w after %d tokens", ErrTokenLimit, d.maxTokens)
		}
	}
	flushText(len(src))

	st.Diagnostics = d.collectDiagnostics(st, pol)

	startOffset := 0
	if res != nil {
		startOffset = res.offset
	}
	st.Stats.RescannedBytes = len(src) - startOffset
	if ahead := cur.Steps() - st.Stats.RescannedBytes; ahead > 0 {
		st.Stats.LookaheadBytes = ahead
	}
	st.Stats.Elapsed = time.Since(started)
	return st, nil
}

func (d *Driver) collectDiagnostics(st *Stream, pol *policy) []*Diagnostic {
	var diags []*Diagnostic
	for _, tok := range st.Tokens {
		if tok.Type != scanner.UnclosedSpan {
			continue
		}
		construct := "code span"
		if st.Source[tok.Start] == '$' {
			construct = "math span"
		}
		diags = append(diags, unclosedDiagnostic(tok.Type, st.PositionOf(tok), construct))
	}
	diags = append(diags, pol.eofDiagnostics()...)
	slices.SortFunc(diags, func(a, b *Diagnostic) int {
		return a.Pos.Offset - b.Pos.Offset
	})
	return diags
}

// contextFlags classifies the byte before offset the way the scanner
// expects. The start of the document counts as whitespace.
func contextFlags(src []byte, offset int) scanner.TokenSet {
	if offset == 0 {
		return scanner.NewTokenSet(scanner.LastTokenWhitespace)
	}
	prev := src[offset-1]
	switch {
	case scanner.IsWhitespace(prev):
		return scanner.NewTokenSet(scanner.LastTokenWhitespace)
	case scanner.IsPunctuation(prev):
		return scanner.NewTokenSet(scanner.LastTokenPunctuation)
	}
	return 0
}

func commonPrefixLen(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// resumePoint returns the last checkpoint whose lookahead stayed before
// the edit. Lookahead is monotone across checkpoints, so the scan walks
// backwards and stops at the first safe one.
func resumePoint(cps []Checkpoint, edit int) (Checkpoint, bool) {
	for i := len(cps) - 1; i >= 0; i-- {
		if cps[i].Lookahead <= edit {
			return cps[i], true
		}
	}
	return Checkpoint{}, false
}

func checkpointsUpTo(cps []Checkpoint, last Checkpoint) []Checkpoint {
	for i := len(cps) - 1; i >= 0; i-- {
		if cps[i].TokenIndex == last.TokenIndex && cps[i].Offset == last.Offset {
			return cps[:i+1]
		}
	}
	return nil
}
