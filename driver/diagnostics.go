package driver

import (
	"fmt"

	"github.com/spanlex/spanlex/scanner"
)

// Diagnostic reports a malformed inline construct found while scanning:
// a span whose closer never arrives, or a construct still open at the end
// of input. Diagnostics implement error so generic formatters can render
// them.
type Diagnostic struct {
	Pos     Position
	Kind    scanner.TokenType // the opening token kind involved
	Message string
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return d.Message
}

// GetPosition returns the position of the offending construct.
func (d *Diagnostic) GetPosition() Position {
	return d.Pos
}

func unclosedDiagnostic(kind scanner.TokenType, pos Position, construct string) *Diagnostic {
	return &Diagnostic{
		Pos:     pos,
		Kind:    kind,
		Message: fmt.Sprintf("%s opened here is never closed", construct),
	}
}
