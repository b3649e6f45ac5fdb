package telemetry

import (
	"io"
	"sync"
	"time"

	"github.com/spanlex/spanlex/output"
)

// TimingCollector builds a forest of timed operations. Ending a top-level
// timer closes its tree, so a collector that outlives one scan (the watch
// loop, the playground server) reports every pass separately instead of
// nesting them all under the first.
type TimingCollector struct {
	mu      sync.Mutex
	roots   []*span
	current *span
}

// span is one timed operation in a tree.
type span struct {
	name     string
	start    time.Time
	end      time.Time
	bytes    int
	children []*span
	parent   *span
}

// NewTimingCollector creates a new timing collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

// Start begins timing an operation. With no timer open it starts a new
// tree; otherwise the operation nests under the innermost open one.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := &span{
		name:   name,
		start:  time.Now(),
		parent: c.current,
	}
	if c.current == nil {
		c.roots = append(c.roots, node)
	} else {
		c.current.children = append(c.current.children, node)
	}
	c.current = node

	return &timingTimer{
		collector: c,
		node:      node,
	}
}

// Report outputs every collected tree to a writer.
func (c *TimingCollector) Report(w io.Writer, styles *output.Styles) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, root := range c.roots {
		formatTimingTree(w, root, styles)
	}
}

// timingTimer is a Timer implementation that records to a TimingCollector.
type timingTimer struct {
	collector *TimingCollector
	node      *span
}

// End stops the timer. If it was the innermost open operation, the
// collector's position moves back to its parent.
func (t *timingTimer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	t.node.end = time.Now()

	if t.collector.current == t.node {
		t.collector.current = t.node.parent
	}
}

// Child creates a nested timer.
func (t *timingTimer) Child(name string) Timer {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	node := &span{
		name:   name,
		start:  time.Now(),
		parent: t.node,
	}

	t.node.children = append(t.node.children, node)

	return &timingTimer{
		collector: t.collector,
		node:      node,
	}
}

// SetBytes records the byte count the operation processed.
func (t *timingTimer) SetBytes(n int) {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	t.node.bytes = n
}
