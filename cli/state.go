package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/spanlex/spanlex/scanner"
)

// StateCmd decodes the serialized scanner state records that embedding
// parsers store in their checkpoints.
type StateCmd struct {
	Record string `help:"Hex-encoded scanner state record (20 hex digits). Omit to print the start-of-document record." arg:"" optional:""`
}

// Run executes the state command.
func (cmd *StateCmd) Run(ctx *kong.Context, globals *Globals) error {
	if cmd.Record == "" {
		var zero scanner.State
		buf := make([]byte, scanner.StateSize)
		zero.Serialize(buf)
		_, _ = fmt.Fprintf(ctx.Stdout, "%x\n", buf)
		return nil
	}

	raw := strings.TrimPrefix(strings.TrimSpace(cmd.Record), "0x")
	buf, err := hex.DecodeString(raw)
	if err != nil {
		return fmt.Errorf("invalid state record: %w", err)
	}
	if len(buf) != scanner.StateSize {
		return fmt.Errorf("invalid state record: got %d bytes, want %d", len(buf), scanner.StateSize)
	}

	var s scanner.State
	s.Deserialize(buf)

	// Re-serializing drops reserved flag bits, so this line is the
	// canonical form of the record.
	canonical := make([]byte, scanner.StateSize)
	s.Serialize(canonical)
	_, _ = fmt.Fprintf(ctx.Stdout, "%-18s %x", "record", canonical)
	if s.IsZero() {
		_, _ = fmt.Fprint(ctx.Stdout, " (start of document)")
	}
	_, _ = fmt.Fprintln(ctx.Stdout)

	fields := []struct {
		name  string
		value string
	}{
		{"emphasis-opening", fmt.Sprintf("%t", s.EmphasisOpening)},
		{"code-span-run", fmt.Sprintf("%d", s.CodeSpanRun)},
		{"math-span-run", fmt.Sprintf("%d", s.MathSpanRun)},
		{"emphasis-left", fmt.Sprintf("%d", s.EmphasisLeft)},
		{"shortcode-depth", fmt.Sprintf("%d", s.ShortcodeDepth)},
		{"superscript-open", fmt.Sprintf("%t", s.SuperscriptOpen)},
		{"subscript-open", fmt.Sprintf("%t", s.SubscriptOpen)},
		{"strikeout-open", fmt.Sprintf("%t", s.StrikeoutOpen)},
		{"single-quote-open", fmt.Sprintf("%t", s.SingleQuoteOpen)},
		{"double-quote-open", fmt.Sprintf("%t", s.DoubleQuoteOpen)},
	}
	for _, f := range fields {
		_, _ = fmt.Fprintf(ctx.Stdout, "%-18s %s\n", f.name, f.value)
	}

	return nil
}
