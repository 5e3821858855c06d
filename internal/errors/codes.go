// Package errors provides centralized error code definitions for Alir.
// Codes are organized by compiler phase so a Diagnostic's Code prefix alone
// identifies which stage raised it.
package errors

// Error code constants organized by phase. Each constant represents a
// specific error condition reported through a diag.Sink.
const (
	// ============================================================================
	// Semantic Errors (SEM###) — name resolution, typing, control flow
	// ============================================================================

	// SEM001 indicates a reference to an undeclared name
	SEM001 = "SEM001"

	// SEM002 indicates a redeclaration of a name already bound in this scope
	SEM002 = "SEM002"

	// SEM003 indicates a type mismatch in an expression or assignment
	SEM003 = "SEM003"

	// SEM004 indicates a `let` with no initializer and no type annotation
	SEM004 = "SEM004"

	// SEM005 indicates a `let x: Auto = expr` whose initializer has type Void or Unknown
	SEM005 = "SEM005"

	// SEM006 indicates `break` used outside any loop or switch
	SEM006 = "SEM006"

	// SEM007 indicates `continue` used outside any loop
	SEM007 = "SEM007"

	// SEM008 indicates a `return` expression type incompatible with the
	// enclosing function's declared return type
	SEM008 = "SEM008"

	// SEM009 indicates a member access on a type with no such member
	SEM009 = "SEM009"

	// SEM010 indicates a call to a name that does not denote a function or class
	SEM010 = "SEM010"

	// SEM011 indicates assignment to an immutable (non-`mut`) binding
	SEM011 = "SEM011"

	// SEM012 indicates `emit` used outside a flux function body
	SEM012 = "SEM012"

	// SEM013 indicates an accepted implicit conversion worth flagging: a
	// narrowing numeric cast, or a string<->char*/char[] conversion.
	// Reported as info, not an error.
	SEM013 = "SEM013"

	// ============================================================================
	// IR Generation Errors (IRG###) — lowering preconditions
	// ============================================================================

	// IRG001 indicates a construction target name that does not resolve to a
	// known class layout
	IRG001 = "IRG001"

	// IRG002 indicates a member access whose field name has no index in the
	// class's struct layout
	IRG002 = "IRG002"

	// IRG003 indicates a `break`/`continue` with no enclosing loop-stack frame
	// (should have been caught by Semantic; IR Gen degrades to a warning)
	IRG003 = "IRG003"

	// IRG004 indicates an `emit` lowered with no active flux context (should
	// have been caught by SEM012; IR Gen degrades to a defensive error) or a
	// flux body referencing a capture the pre-pass never collected
	IRG004 = "IRG004"

	// IRG005 indicates a call whose callee name does not resolve to any
	// scanned function declaration (should have been caught by Semantic's
	// name resolution; IR Gen degrades to a defensive error rather than
	// emitting a call to a target that was never compiled)
	IRG005 = "IRG005"

	// ============================================================================
	// IR Verification Errors (IRV###) — structural/type/memory checks
	// ============================================================================

	// IRV001 indicates a basic block with no terminator, or a terminator that
	// is not the block's last instruction
	IRV001 = "IRV001"

	// IRV002 indicates a branch/switch target naming a block absent from the
	// enclosing function
	IRV002 = "IRV002"

	// IRV003 indicates an operand kind disagreeing with its opcode's family
	// (e.g. a floating opcode applied to an integer operand)
	IRV003 = "IRV003"

	// IRV004 indicates a store/load whose pointer-depth arithmetic does not
	// check out
	IRV004 = "IRV004"

	// IRV005 indicates a `free` with no matching prior `alloc_heap`/`bitcast`
	// in the same function
	IRV005 = "IRV005"

	// IRV006 indicates a `get_ptr` targeting a non-pointer value
	IRV006 = "IRV006"

	// IRV007 indicates dereferencing a constant-integer address
	IRV007 = "IRV007"

	// IRV008 (warning) indicates a block unreachable from the function entry
	IRV008 = "IRV008"
)
