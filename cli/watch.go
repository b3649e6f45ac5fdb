package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/spanlex/spanlex/driver"
	"github.com/spanlex/spanlex/output"
	"github.com/spanlex/spanlex/telemetry"
)

type WatchCmd struct {
	File            string `help:"Markdown file to watch." arg:"" type:"existingfile"`
	NoUnclosedSpans bool   `help:"Scan unterminated code and math spans as plain text instead of unclosed-span tokens."`
}

func (cmd *WatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if globals.Telemetry {
		collector := telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		defer func() {
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
		}()
	}

	file, err := filepath.Abs(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	var opts []driver.Option
	if cmd.NoUnclosedSpans {
		opts = append(opts, driver.WithUnclosedSpans(false))
	}
	d := driver.New(opts...)

	st, err := d.ScanFile(runCtx, file)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}
	cmd.report(ctx, st)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(file); err != nil {
		return fmt.Errorf("failed to watch %s: %w", file, err)
	}

	printInfof(ctx.Stdout, "Watching %s (press Ctrl-C to stop)", pathStyle.Render(file))

	// Debounce timer - editors often write files in multiple steps
	const debounceDelay = 100 * time.Millisecond
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	rescans := make(chan struct{}, 1)

	for {
		select {
		case <-runCtx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// React to write/create/remove/rename events
			// (Remove/Rename are common in atomic saves)
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}

			debounceTimer = time.AfterFunc(debounceDelay, func() {
				select {
				case rescans <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(ctx.Stderr, fmt.Sprintf("file watcher error: %v", err))

		case <-rescans:
			// Atomic saves replace the inode; re-add to keep receiving events.
			_ = watcher.Add(file)

			src, err := os.ReadFile(file)
			if err != nil {
				printError(ctx.Stderr, fmt.Sprintf("failed to read %s: %v", file, err))
				continue
			}

			next, err := d.Rescan(runCtx, st, src)
			if err != nil {
				printError(ctx.Stderr, err.Error())
				continue
			}
			st = next
			cmd.report(ctx, st)
		}
	}
}

// report prints one summary line per scan, plus a warning when the
// document still has unclosed constructs.
func (cmd *WatchCmd) report(ctx *kong.Context, st *driver.Stream) {
	printInfof(ctx.Stdout, "%d tokens (%d reused), scanned %d of %d bytes in %s",
		st.Stats.Tokens, st.Stats.ReusedTokens, st.Stats.RescannedBytes, len(st.Source), st.Stats.Elapsed)

	if st.HasErrors() {
		printError(ctx.Stdout, fmt.Sprintf("%d unclosed construct(s)", len(st.Diagnostics)))
	}
}
