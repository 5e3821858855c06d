package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorderCountsOnlyErrors(t *testing.T) {
	r := NewRecorder()
	r.Error(Span{Line: 1}, "SEM001", "undefined name x")
	r.Warning(Span{Line: 2}, "IRV008", "unreachable block")
	r.Info(Span{Line: 3}, "SEM005", "implicit narrowing cast")
	r.Hint(Span{Line: 3}, "did you mean 'foo'?")

	assert.Equal(t, 1, r.ErrorCount())
	assert.Len(t, r.Diagnostics, 4)
	assert.Equal(t, SeverityHint, r.Diagnostics[3].Severity)
}
