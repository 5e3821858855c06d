package sema

import (
	"fmt"
	"strings"

	"github.com/alir-lang/alirc/internal/types"
)

// Mangle produces the IR-level symbol name for a function. `main` is never
// mangled. Everything else mangles as _Z<len><name> followed by
// per-parameter sigils: i/d/f/b/c/v/s for int/double/float/bool/char/void/
// string, C<len><name> for classes, E<len><name> for enums, a P prefix per
// pointer level, and an A<N>_ prefix for arrays.
//
// short/long/long-long/unsigned each get their own sigil (h/l/q, a U
// prefix) rather than collapsing onto a shared fallback: two signatures
// differing only in, say, long vs long long must mangle differently, or
// two distinct overloads would collide on one IR symbol name.
func Mangle(name string, paramTypes []types.Type) string {
	if name == "main" {
		return "main"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "_Z%d%s", len(name), name)
	if len(paramTypes) == 0 {
		b.WriteString("v")
		return b.String()
	}
	for _, p := range paramTypes {
		mangleType(&b, p)
	}
	return b.String()
}

func mangleType(b *strings.Builder, t types.Type) {
	if t.ArraySize > 0 {
		fmt.Fprintf(b, "A%d_", t.ArraySize)
	}
	for i := 0; i < t.PointerDepth; i++ {
		b.WriteString("P")
	}
	if t.Unsigned {
		b.WriteString("U")
	}
	switch t.Base {
	case types.Int:
		b.WriteString("i")
	case types.Double:
		b.WriteString("d")
	case types.Float:
		b.WriteString("f")
	case types.Bool:
		b.WriteString("b")
	case types.Char:
		b.WriteString("c")
	case types.Void:
		b.WriteString("v")
	case types.String:
		b.WriteString("s")
	case types.Short:
		b.WriteString("h")
	case types.Long:
		b.WriteString("l")
	case types.LongLong:
		b.WriteString("q")
	case types.LongDouble:
		b.WriteString("e")
	case types.Class:
		fmt.Fprintf(b, "C%d%s", len(t.Name), t.Name)
	case types.Enum:
		fmt.Fprintf(b, "E%d%s", len(t.Name), t.Name)
	default:
		b.WriteString("u")
	}
}
