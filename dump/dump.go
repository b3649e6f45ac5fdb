// Package dump renders token streams for humans and machines: an aligned
// text table for the CLI and a JSON shape shared with the web playground.
package dump

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/spanlex/spanlex/driver"
	"github.com/spanlex/spanlex/output"
	"github.com/spanlex/spanlex/scanner"
)

const (
	// DefaultMaxTextWidth is the widest the TEXT column grows before
	// truncation. Text runs can span whole paragraphs.
	DefaultMaxTextWidth = 40

	// MinimumSpacing is the gap between columns.
	MinimumSpacing = 2
)

// Table renders a driver.Stream as an aligned token table:
//
//	KIND                 START-END  LINE:COL  TEXT
//	emphasis-open-star   4-5        1:5       *
//	text                 5-9        1:6       bold
//	emphasis-close-star  9-10       1:10      *
type Table struct {
	// KindWidth is the width of the KIND column. If 0, a good value is
	// selected from the contents.
	KindWidth int

	// ShowText controls whether the TEXT column is rendered. Default: true.
	ShowText bool

	// MaxTextWidth truncates the TEXT column to this display width.
	MaxTextWidth int

	styles *output.Styles
}

// Option is a functional option for configuring a Table.
type Option func(*Table)

// WithKindWidth sets a fixed width for the KIND column.
func WithKindWidth(width int) Option {
	return func(t *Table) {
		t.KindWidth = width
	}
}

// WithShowText enables or disables the TEXT column.
func WithShowText(show bool) Option {
	return func(t *Table) {
		t.ShowText = show
	}
}

// WithMaxTextWidth sets the display width the TEXT column truncates at.
func WithMaxTextWidth(width int) Option {
	return func(t *Table) {
		if width > 0 {
			t.MaxTextWidth = width
		}
	}
}

// WithStyles enables terminal styling for the rendered table.
func WithStyles(styles *output.Styles) Option {
	return func(t *Table) {
		t.styles = styles
	}
}

// New creates a new Table with the given options.
func New(opts ...Option) *Table {
	t := &Table{
		ShowText:     true,
		MaxTextWidth: DefaultMaxTextWidth,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Format renders the stream as a table and writes it to w.
func (t *Table) Format(st *driver.Stream, w io.Writer) error {
	var buf strings.Builder
	buf.Grow(len(st.Tokens) * 48)

	kindWidth, rangeWidth, posWidth := t.widths(st)

	t.writeCell(&buf, "KIND", kindWidth, t.styleHeader)
	t.writeCell(&buf, "START-END", rangeWidth, t.styleHeader)
	if t.ShowText {
		t.writeCell(&buf, "LINE:COL", posWidth, t.styleHeader)
		t.writeLastCell(&buf, "TEXT", t.styleHeader)
	} else {
		t.writeLastCell(&buf, "LINE:COL", t.styleHeader)
	}
	buf.WriteByte('\n')

	for _, tok := range st.Tokens {
		t.writeCell(&buf, driver.KindName(tok.Type), kindWidth, t.styleKind(tok.Type))
		t.writeCell(&buf, rangeText(tok), rangeWidth, t.styleDim)
		if t.ShowText {
			t.writeCell(&buf, posText(tok), posWidth, t.styleDim)
			t.writeLastCell(&buf, t.textCell(st, tok), t.styleText(tok.Type))
		} else {
			t.writeLastCell(&buf, posText(tok), t.styleDim)
		}
		buf.WriteByte('\n')
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

// widths performs a single pass over the tokens to size each column.
func (t *Table) widths(st *driver.Stream) (kind, rng, pos int) {
	kind = t.KindWidth
	if kind == 0 {
		kind = len("KIND")
		for _, tok := range st.Tokens {
			kind = max(kind, len(driver.KindName(tok.Type)))
		}
	}
	rng = len("START-END")
	pos = len("LINE:COL")
	for _, tok := range st.Tokens {
		rng = max(rng, len(rangeText(tok)))
		pos = max(pos, len(posText(tok)))
	}
	return kind, rng, pos
}

// writeCell writes text padded to width plus the column gap. Styling is
// applied after padding is computed, so escape sequences never skew the
// alignment.
func (t *Table) writeCell(buf *strings.Builder, text string, width int, style func(string) string) {
	pad := width - runewidth.StringWidth(text)
	if pad < 0 {
		pad = 0
	}
	buf.WriteString(style(text))
	buf.WriteString(strings.Repeat(" ", pad+MinimumSpacing))
}

// writeLastCell writes the final column without padding.
func (t *Table) writeLastCell(buf *strings.Builder, text string, style func(string) string) {
	buf.WriteString(style(text))
}

// textCell renders the token text with control characters escaped and the
// result truncated to the configured display width.
func (t *Table) textCell(st *driver.Stream, tok scanner.Token) string {
	text := escapeText(st.TokenText(tok))
	if runewidth.StringWidth(text) > t.MaxTextWidth {
		text = runewidth.Truncate(text, t.MaxTextWidth, "…")
	}
	return text
}

func (t *Table) styleHeader(s string) string {
	if t.styles == nil {
		return s
	}
	return t.styles.Keyword(s)
}

func (t *Table) styleDim(s string) string {
	if t.styles == nil {
		return s
	}
	return t.styles.Dim(s)
}

func (t *Table) styleKind(kind scanner.TokenType) func(string) string {
	return func(s string) string {
		if t.styles == nil {
			return s
		}
		if kind == driver.TextRun {
			return t.styles.Dim(s)
		}
		return t.styles.TokenKind(s)
	}
}

func (t *Table) styleText(kind scanner.TokenType) func(string) string {
	return func(s string) string {
		if t.styles == nil || kind == driver.TextRun {
			return s
		}
		return t.styles.Delimiter(s)
	}
}

func rangeText(tok scanner.Token) string {
	return itoa(tok.Start) + "-" + itoa(tok.End)
}

func posText(tok scanner.Token) string {
	return itoa(tok.Line) + ":" + itoa(tok.Column)
}

// itoa avoids fmt for the hot table loop.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b [20]byte
	i := len(b)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		b[i] = '-'
	}
	return string(b[i:])
}

// escapeText escapes control characters so a token never breaks the table
// row it is printed on.
func escapeText(s string) string {
	needsEscape := false
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\t' || s[i] == '\r' {
			needsEscape = true
			break
		}
	}
	if !needsEscape {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s) + 8)
	for _, c := range s {
		switch c {
		case '\n':
			buf.WriteString(`\n`)
		case '\t':
			buf.WriteString(`\t`)
		case '\r':
			buf.WriteString(`\r`)
		default:
			buf.WriteRune(c)
		}
	}
	return buf.String()
}
