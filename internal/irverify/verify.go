// Package irverify is the IR Verifier: structural verification of an
// ir.Module before it is handed to a backend. Three independent passes run
// per function — CFG well-formedness, type consistency across defs and
// uses, and local memory-safety — each reporting through a diag.Sink and
// continuing past the offending instruction rather than aborting.
package irverify

import (
	"fmt"

	"github.com/alir-lang/alirc/internal/diag"
	"github.com/alir-lang/alirc/internal/ir"
)

// Verify runs the CFG, type, and memory checks over every function in m and
// reports findings through sink. Returns the number of errors reported
// (warnings don't count); callers compare this against zero the same way
// every other pipeline stage does.
func Verify(m *ir.Module, sink diag.Sink) int {
	v := &verifier{sink: sink}
	for _, fn := range m.Functions {
		v.checkCFG(fn)
		v.checkTypes(fn)
		v.checkMemory(fn)
	}
	return v.errorCount
}

type verifier struct {
	sink       diag.Sink
	errorCount int
}

func (v *verifier) errf(line, col int, code, format string, args ...interface{}) {
	v.errorCount++
	v.sink.Error(diag.Span{Line: line, Col: col}, code, fmt.Sprintf(format, args...))
}

func (v *verifier) warnf(line, col int, code, format string, args ...interface{}) {
	v.sink.Warning(diag.Span{Line: line, Col: col}, code, fmt.Sprintf(format, args...))
}
