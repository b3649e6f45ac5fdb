package driver

import (
	"github.com/spanlex/spanlex/scanner"
)

// policy is the stand-in for the embedding grammar: it decides which token
// kinds to request at each position based on the constructs currently open.
// It is deterministic over the committed token stream, so resuming from a
// checkpoint rebuilds it by replaying the kept tokens.
type policy struct {
	unclosedSpans bool

	emphasisStar       int
	emphasisUnderscore int
	shortcodes         int
	codeSpan           bool
	mathSpan           bool
	strikeout          bool
	superscript        bool
	subscript          bool
	singleQuote        bool
	doubleQuote        bool

	// Last open position per construct, for end-of-input diagnostics.
	opened map[scanner.TokenType]Position
}

func newPolicy(unclosedSpans bool) *policy {
	return &policy{
		unclosedSpans: unclosedSpans,
		opened:        make(map[scanner.TokenType]Position),
	}
}

// valid returns the candidate set for the next scan, without context flags.
func (p *policy) valid() scanner.TokenSet {
	// Span content is atomic: only the matching closer is requested.
	if p.codeSpan {
		return scanner.NewTokenSet(scanner.CodeSpanClose)
	}
	if p.mathSpan {
		return scanner.NewTokenSet(scanner.MathSpanClose)
	}
	// Shortcode arguments have their own lexical rules; only shortcode
	// delimiters are inline tokens there.
	if p.shortcodes > 0 {
		return scanner.NewTokenSet(
			scanner.ShortcodeOpen, scanner.ShortcodeOpenEscaped,
			scanner.ShortcodeClose, scanner.ShortcodeCloseEscaped,
		)
	}

	set := scanner.NewTokenSet(
		scanner.CodeSpanOpen, scanner.MathSpanOpen,
		scanner.EmphasisOpenStar, scanner.EmphasisOpenUnderscore,
		scanner.CiteAuthor, scanner.CiteAuthorBracketed,
		scanner.CiteSuppressAuthor, scanner.CiteSuppressAuthorBracketed,
		scanner.ShortcodeOpen, scanner.ShortcodeOpenEscaped,
	)
	if p.unclosedSpans {
		set = set.With(scanner.UnclosedSpan)
	}
	if p.emphasisStar > 0 {
		set = set.With(scanner.EmphasisCloseStar)
	}
	if p.emphasisUnderscore > 0 {
		set = set.With(scanner.EmphasisCloseUnderscore)
	}
	// Toggles request exactly one side. The scanner prefers closing, so
	// offering a close while nothing is open would close a span that was
	// never entered.
	set = set.With(p.toggleSide(p.strikeout, scanner.StrikeoutOpen, scanner.StrikeoutClose))
	set = set.With(p.toggleSide(p.superscript, scanner.SuperscriptOpen, scanner.SuperscriptClose))
	set = set.With(p.toggleSide(p.subscript, scanner.SubscriptOpen, scanner.SubscriptClose))
	set = set.With(p.toggleSide(p.singleQuote, scanner.SingleQuoteOpen, scanner.SingleQuoteClose))
	set = set.With(p.toggleSide(p.doubleQuote, scanner.DoubleQuoteOpen, scanner.DoubleQuoteClose))
	return set
}

func (p *policy) toggleSide(inside bool, open, close scanner.TokenType) scanner.TokenType {
	if inside {
		return close
	}
	return open
}

// apply folds a committed token into the open-construct bookkeeping.
func (p *policy) apply(tok scanner.Token, filename string) {
	pos := Position{Filename: filename, Offset: tok.Start, Line: tok.Line, Column: tok.Column}
	switch tok.Type {
	case scanner.CodeSpanOpen:
		p.codeSpan = true
		p.opened[scanner.CodeSpanOpen] = pos
	case scanner.CodeSpanClose:
		p.codeSpan = false
		delete(p.opened, scanner.CodeSpanOpen)
	case scanner.MathSpanOpen:
		p.mathSpan = true
		p.opened[scanner.MathSpanOpen] = pos
	case scanner.MathSpanClose:
		p.mathSpan = false
		delete(p.opened, scanner.MathSpanOpen)
	case scanner.EmphasisOpenStar:
		p.emphasisStar++
		p.opened[scanner.EmphasisOpenStar] = pos
	case scanner.EmphasisCloseStar:
		if p.emphasisStar > 0 {
			p.emphasisStar--
		}
		if p.emphasisStar == 0 {
			delete(p.opened, scanner.EmphasisOpenStar)
		}
	case scanner.EmphasisOpenUnderscore:
		p.emphasisUnderscore++
		p.opened[scanner.EmphasisOpenUnderscore] = pos
	case scanner.EmphasisCloseUnderscore:
		if p.emphasisUnderscore > 0 {
			p.emphasisUnderscore--
		}
		if p.emphasisUnderscore == 0 {
			delete(p.opened, scanner.EmphasisOpenUnderscore)
		}
	case scanner.StrikeoutOpen:
		p.strikeout = true
		p.opened[scanner.StrikeoutOpen] = pos
	case scanner.StrikeoutClose:
		p.strikeout = false
		delete(p.opened, scanner.StrikeoutOpen)
	case scanner.SuperscriptOpen:
		p.superscript = true
		p.opened[scanner.SuperscriptOpen] = pos
	case scanner.SuperscriptClose:
		p.superscript = false
		delete(p.opened, scanner.SuperscriptOpen)
	case scanner.SubscriptOpen:
		p.subscript = true
		p.opened[scanner.SubscriptOpen] = pos
	case scanner.SubscriptClose:
		p.subscript = false
		delete(p.opened, scanner.SubscriptOpen)
	case scanner.SingleQuoteOpen:
		p.singleQuote = true
		p.opened[scanner.SingleQuoteOpen] = pos
	case scanner.SingleQuoteClose:
		p.singleQuote = false
		delete(p.opened, scanner.SingleQuoteOpen)
	case scanner.DoubleQuoteOpen:
		p.doubleQuote = true
		p.opened[scanner.DoubleQuoteOpen] = pos
	case scanner.DoubleQuoteClose:
		p.doubleQuote = false
		delete(p.opened, scanner.DoubleQuoteOpen)
	case scanner.ShortcodeOpen, scanner.ShortcodeOpenEscaped:
		p.shortcodes++
		p.opened[scanner.ShortcodeOpen] = pos
	case scanner.ShortcodeClose, scanner.ShortcodeCloseEscaped:
		if p.shortcodes > 0 {
			p.shortcodes--
		}
		if p.shortcodes == 0 {
			delete(p.opened, scanner.ShortcodeOpen)
		}
	}
}

var constructNames = map[scanner.TokenType]string{
	scanner.CodeSpanOpen:           "code span",
	scanner.MathSpanOpen:           "math span",
	scanner.EmphasisOpenStar:       "emphasis",
	scanner.EmphasisOpenUnderscore: "emphasis",
	scanner.StrikeoutOpen:          "strikeout",
	scanner.SuperscriptOpen:        "superscript",
	scanner.SubscriptOpen:          "subscript",
	scanner.SingleQuoteOpen:        "quoted span",
	scanner.DoubleQuoteOpen:        "quoted span",
	scanner.ShortcodeOpen:          "shortcode",
}

// eofDiagnostics reports every construct still open at end of input.
func (p *policy) eofDiagnostics() []*Diagnostic {
	var diags []*Diagnostic
	for kind, pos := range p.opened {
		diags = append(diags, unclosedDiagnostic(kind, pos, constructNames[kind]))
	}
	return diags
}
