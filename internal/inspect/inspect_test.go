package inspect

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchWalksFullPipeline(t *testing.T) {
	var out bytes.Buffer
	s := &Session{}

	s.dispatch(":load add", &out)
	s.dispatch(":sema", &out)
	s.dispatch(":irgen", &out)
	s.dispatch(":verify", &out)
	s.dispatch(":dump", &out)

	text := out.String()
	assert.Contains(t, text, `loaded "add"`)
	assert.Contains(t, text, "semantic analysis: 0 error(s)")
	assert.Contains(t, text, "IR generation: 0 error(s), 1 function(s)")
	assert.Contains(t, text, "IR verification: 0 error(s)")
	assert.Contains(t, text, "func _Z3addii(a, b)")
}

func TestDispatchIrgenRunsSemaImplicitly(t *testing.T) {
	var out bytes.Buffer
	s := &Session{}
	s.dispatch(":load counter", &out)
	s.dispatch(":irgen", &out)

	require.NotNil(t, s.module)
	assert.Contains(t, out.String(), "semantic analysis")
	assert.Contains(t, out.String(), "IR generation")
}

func TestDispatchUnknownDemoReportsError(t *testing.T) {
	var out bytes.Buffer
	s := &Session{}
	s.dispatch(":load nope", &out)
	assert.True(t, strings.Contains(out.String(), "no such demo"))
}
