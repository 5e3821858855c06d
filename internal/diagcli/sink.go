// Package diagcli is the driver-side terminal renderer for diag.Diagnostic:
// a colored Sink built on github.com/fatih/color. None of internal/sema,
// internal/irgen, or internal/irverify import this package — they only see
// diag.Sink — so the core stays usable from a test Recorder with no
// terminal involved and no package in the pipeline ever opens one directly.
package diagcli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/alir-lang/alirc/internal/diag"
)

var (
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// ColorSink writes each diagnostic to w as one colored line, and counts
// errors and warnings separately so a driver can decide whether to keep
// running the pipeline.
type ColorSink struct {
	w        io.Writer
	Errors   int
	Warnings int
}

func New(w io.Writer) *ColorSink {
	return &ColorSink{w: w}
}

func (s *ColorSink) Error(span diag.Span, code, msg string) {
	s.Errors++
	fmt.Fprintf(s.w, "%s %s %s: %s\n", red("error"), dim(span.String()), cyan(code), msg)
}

func (s *ColorSink) Warning(span diag.Span, code, msg string) {
	s.Warnings++
	fmt.Fprintf(s.w, "%s %s %s: %s\n", yellow("warning"), dim(span.String()), cyan(code), msg)
}

func (s *ColorSink) Info(span diag.Span, code, msg string) {
	fmt.Fprintf(s.w, "%s %s %s: %s\n", cyan("info"), dim(span.String()), cyan(code), msg)
}

func (s *ColorSink) Hint(span diag.Span, msg string) {
	fmt.Fprintf(s.w, "%s %s: %s\n", dim("hint"), dim(span.String()), msg)
}
