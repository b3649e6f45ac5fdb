// Package telemetry provides hierarchical timing collection for scan
// operations. Collectors travel through context, so instrumentation costs
// nothing when disabled and no function signature ever changes.
//
// Example usage:
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := telemetry.StartTimer(ctx, "scan notes.md")
//	timer.SetBytes(len(src))
//	child := timer.Child("build token table")
//	// ... work ...
//	child.End()
//	timer.End()
//
//	collector.Report(os.Stderr, nil)
package telemetry

import (
	"context"
	"io"

	"github.com/spanlex/spanlex/output"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{}

var collectorKey = contextKey{}

// Collector receives timing data. Implementations decide how to record
// and report it.
type Collector interface {
	// Start begins timing an operation and returns a Timer.
	// The timer must be ended with End() when the operation completes.
	Start(name string) Timer

	// Report outputs the collected telemetry to a writer. styles may be
	// nil for unstyled output.
	Report(w io.Writer, styles *output.Styles)
}

// Timer tracks a single operation's timing. Timers nest via Child().
type Timer interface {
	// End stops the timer and records the duration.
	End()

	// Child creates a nested timer under this timer.
	Child(name string) Timer

	// SetBytes records how many source bytes the operation covered.
	// Operations with a byte count report their throughput.
	SetBytes(n int)
}

// WithCollector adds a collector to a context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext extracts the collector from context. If no collector is
// present it returns a no-op collector, never nil.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

// StartTimer begins a timer on the context's collector. It is the usual
// one-line instrumentation call.
func StartTimer(ctx context.Context, name string) Timer {
	return FromContext(ctx).Start(name)
}
