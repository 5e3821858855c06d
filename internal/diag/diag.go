// Package diag defines the diagnostic sink contract: the core never opens
// a terminal itself, it only reports through this interface. The
// reference in-memory Sink here (Recorder) is what every _test.go in this
// repo uses to assert on emitted diagnostics; a colored terminal renderer
// lives in internal/diagcli, imported only by the driver.
package diag

import (
	"fmt"

	"github.com/alir-lang/alirc/internal/ast"
)

// Span locates a diagnostic in source: a filename, line, and column, plus
// an optional token for highlighting.
type Span struct {
	File  string
	Line  int
	Col   int
	Token string
}

func SpanOf(pos ast.Pos) Span {
	return Span{File: pos.File, Line: pos.Line, Col: pos.Col}
}

func (s Span) String() string {
	if s.File == "" {
		return fmt.Sprintf("%d:%d", s.Line, s.Col)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Col)
}

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported entry: a severity, the issuing phase's error
// code, a span, and a human-readable message.
type Diagnostic struct {
	Severity Severity
	Code     string
	Span     Span
	Message  string
}

// Sink is the four-entry-point contract every compiler stage depends on.
// Implementations decide how (or whether) to render a diagnostic; stages
// never inspect the return value because reporting never changes control
// flow — the stage's own error counter does that.
type Sink interface {
	Error(span Span, code, msg string)
	Warning(span Span, code, msg string)
	Info(span Span, code, msg string)
	Hint(span Span, msg string)
}

// Recorder is an in-memory Sink: it batches every diagnostic for later
// inspection, used by every _test.go in this repo (no terminal involved).
type Recorder struct {
	Diagnostics []Diagnostic
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Error(span Span, code, msg string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Severity: SeverityError, Code: code, Span: span, Message: msg})
}

func (r *Recorder) Warning(span Span, code, msg string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Severity: SeverityWarning, Code: code, Span: span, Message: msg})
}

func (r *Recorder) Info(span Span, code, msg string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Severity: SeverityInfo, Code: code, Span: span, Message: msg})
}

func (r *Recorder) Hint(span Span, msg string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Severity: SeverityHint, Code: "", Span: span, Message: msg})
}

// ErrorCount returns the number of SeverityError diagnostics recorded.
func (r *Recorder) ErrorCount() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}
