// Package errors provides formatting infrastructure for scan diagnostics.
// It separates presentation from the driver's domain logic, so the same
// diagnostics can be rendered as text for the CLI or as structured JSON for
// the web playground and API consumers.
//
// The package defines a Formatter interface and provides two implementations:
//   - TextFormatter: renders file:line:col messages with source context
//   - JSONFormatter: renders structured JSON for APIs and web interfaces
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spanlex/spanlex/driver"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// positioned is the shape shared by every error the driver reports.
type positioned interface {
	GetPosition() driver.Position
	Error() string
}

// TextFormatter renders diagnostics for command-line output. When source
// content is available it prints the offending line with a caret under the
// error column.
type TextFormatter struct {
	source       []byte
	contextLines int
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the source content used for context snippets.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.source = source
	}
}

// WithContextLines sets how many lines to show before the error line.
func WithContextLines(n int) TextFormatterOption {
	return func(tf *TextFormatter) {
		if n >= 0 {
			tf.contextLines = n
		}
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{contextLines: 2}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error. Errors without position information fall
// back to their plain Error string.
func (tf *TextFormatter) Format(err error) string {
	e, ok := err.(positioned)
	if !ok {
		return err.Error()
	}
	if tf.source != nil {
		return tf.formatWithSourceContext(e.GetPosition(), e.Error())
	}
	return fmt.Sprintf("%s: %s", e.GetPosition(), e.Error())
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf bytes.Buffer
	for i, err := range errs {
		buf.WriteString(tf.Format(err))
		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}
	return buf.String()
}

// formatWithSourceContext renders the positioned message followed by the
// source lines around it and a caret pointing at the error column.
func (tf *TextFormatter) formatWithSourceContext(pos driver.Position, message string) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s: %s\n\n", pos, message)

	lines := strings.Split(string(tf.source), "\n")
	startLine := pos.Line - 1 - tf.contextLines // 0-based first line to show
	if startLine < 0 {
		startLine = 0
	}
	endLine := pos.Line - 1 // the error line itself
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	for i := startLine; i <= endLine; i++ {
		buf.WriteString("   ")
		buf.WriteString(lines[i])
		buf.WriteByte('\n')

		// pos.Line is 1-based, i is 0-based.
		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(strings.Repeat(" ", pos.Column-1))
			buf.WriteString("^\n")
		}
	}

	return buf.String()
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string        `json:"type"`
	Message  string        `json:"message"`
	Kind     string        `json:"kind,omitempty"`
	Position *PositionJSON `json:"position,omitempty"`
}

// PositionJSON represents a source position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename,omitempty"`
	Offset   int    `json:"offset"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	data, _ := json.MarshalIndent(jf.FormatAllToSlice(errs), "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs, for
// embedding in larger API responses.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.toJSON(err))
	}
	return result
}

// toJSON converts an error to ErrorJSON.
func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
	}

	if d, ok := err.(*driver.Diagnostic); ok {
		errJSON.Kind = d.Kind.String()
	}

	if e, ok := err.(interface{ GetPosition() driver.Position }); ok {
		pos := e.GetPosition()
		errJSON.Position = &PositionJSON{
			Filename: pos.Filename,
			Offset:   pos.Offset,
			Line:     pos.Line,
			Column:   pos.Column,
		}
	}

	return errJSON
}
