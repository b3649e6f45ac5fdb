package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/spanlex/spanlex/driver"
	"github.com/spanlex/spanlex/dump"
	"github.com/spanlex/spanlex/output"
	"github.com/spanlex/spanlex/telemetry"
)

type ScanCmd struct {
	File            FileOrStdin `help:"Markdown input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Format          string      `help:"Output format." enum:"table,json,repr" default:"table"`
	NoText          bool        `help:"Hide the TEXT column in table output."`
	MaxTokens       int         `help:"Abort after this many inline tokens (0 is unlimited)." default:"0"`
	NoUnclosedSpans bool        `help:"Scan unterminated code and math spans as plain text instead of unclosed-span tokens."`
}

func (cmd *ScanCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx := context.Background()

	if globals.Telemetry {
		collector := telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		scanTimer := collector.Start(fmt.Sprintf("scan %s", filepath.Base(cmd.File.Filename)))
		defer func() {
			scanTimer.End()
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
		}()
	}

	var opts []driver.Option
	if cmd.MaxTokens > 0 {
		opts = append(opts, driver.WithMaxTokens(cmd.MaxTokens))
	}
	if cmd.NoUnclosedSpans {
		opts = append(opts, driver.WithUnclosedSpans(false))
	}

	st, err := cmd.File.Scan(runCtx, opts...)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}

	switch cmd.Format {
	case "json":
		if err := dump.FormatJSON(st, ctx.Stdout); err != nil {
			return err
		}
		// Diagnostics travel inside the payload; only the exit code
		// repeats them.
		if st.HasErrors() {
			return NewCommandError(1)
		}
		return nil

	case "repr":
		repr.New(ctx.Stdout, repr.Indent("  ")).Println(st.Tokens)

	default:
		table := dump.New(
			dump.WithShowText(!cmd.NoText),
			dump.WithStyles(output.NewStyles(ctx.Stdout)),
		)
		if err := table.Format(st, ctx.Stdout); err != nil {
			return err
		}
	}

	printInfof(ctx.Stderr, "%d tokens, %d text bytes, %d scan calls in %s",
		st.Stats.Tokens, st.Stats.TextBytes, st.Stats.ScanCalls, st.Stats.Elapsed)

	if st.HasErrors() {
		renderer := NewErrorRenderer(st.Source)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.RenderAll(st.Diagnostics))

		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, fmt.Sprintf("%d unclosed construct(s) found", len(st.Diagnostics)))

		return NewCommandError(1)
	}

	printSuccess(ctx.Stderr, "no unclosed constructs")
	return nil
}
