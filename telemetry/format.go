package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/spanlex/spanlex/output"
)

// slowThreshold marks operations worth calling out in the report.
const slowThreshold = 100 * time.Millisecond

// formatTimingTree outputs one timing tree in a hierarchical format.
// Example output:
//
//	scan notes.md: 125ms (81 MB/s)
//	├─ build token table: 85ms
//	│  └─ intern texts: 5ms
//	└─ render: 40ms
func formatTimingTree(w io.Writer, root *span, styles *output.Styles) {
	if styles != nil {
		_, _ = fmt.Fprintf(w, "%s: %s\n", styles.Keyword(root.name), describe(root))
	} else {
		_, _ = fmt.Fprintf(w, "%s: %s\n", root.name, describe(root))
	}

	for i, child := range root.children {
		formatNode(w, child, "", i == len(root.children)-1, styles)
	}
}

// formatNode recursively formats a node and its children.
func formatNode(w io.Writer, node *span, prefix string, isLast bool, styles *output.Styles) {
	slow := node.end.Sub(node.start) >= slowThreshold

	var branch, extension string
	if isLast {
		branch = "└─ "
		extension = "   "
	} else {
		branch = "├─ "
		extension = "│  "
	}

	if styles != nil {
		timing := describe(node)
		if slow {
			timing = styles.Warning(timing)
		} else {
			timing = styles.Dim(timing)
		}
		_, _ = fmt.Fprintf(w, "%s%s: %s\n", styles.Dim(prefix+branch), node.name, timing)
	} else {
		_, _ = fmt.Fprintf(w, "%s%s%s: %s\n", prefix, branch, node.name, describe(node))
	}

	childPrefix := prefix + extension
	for i, child := range node.children {
		formatNode(w, child, childPrefix, i == len(node.children)-1, styles)
	}
}

// describe renders a span's duration, with throughput when a byte count
// was recorded.
func describe(node *span) string {
	d := node.end.Sub(node.start)
	out := formatDuration(d)
	if node.bytes > 0 && d > 0 {
		rate := uint64(float64(node.bytes) / d.Seconds())
		out += " (" + humanize.Bytes(rate) + "/s)"
	}
	return out
}

// formatDuration shows milliseconds below one second, seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
}
