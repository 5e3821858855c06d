package diagcli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alir-lang/alirc/internal/diag"
)

func TestColorSinkCountsAndRenders(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	s.Error(diag.Span{File: "t.alir", Line: 3, Col: 5}, "IRV001", "missing terminator")
	s.Warning(diag.Span{File: "t.alir", Line: 7, Col: 1}, "IRV008", "unreachable block")
	s.Info(diag.Span{}, "SEM013", "implicit narrowing conversion")
	s.Hint(diag.Span{}, "did you mean 'count'?")

	assert.Equal(t, 1, s.Errors)
	assert.Equal(t, 1, s.Warnings)

	out := buf.String()
	assert.Contains(t, out, "IRV001")
	assert.Contains(t, out, "missing terminator")
	assert.Contains(t, out, "IRV008")
	assert.Contains(t, out, "did you mean")
}
