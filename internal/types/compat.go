package types

// CompatKind classifies how a source type relates to a destination type for
// assignment purposes. The semantic analyzer decides, per kind, whether to
// accept silently, accept with an info diagnostic, or reject with an error;
// this package only classifies.
type CompatKind int

const (
	Incompatible CompatKind = iota
	Identical
	WideningNumeric
	NarrowingNumeric
	EnumIntConversion
	StringCharConversion
	ArrayDecay
	VoidPointerConversion
)

// Compatibility classifies whether src is assignable to dst. It never
// reports diagnostics — that is the analyzer's job — it only names which
// rule (if any) applies.
func Compatibility(src, dst Type) CompatKind {
	if src.Equals(dst) {
		return Identical
	}

	// Rule 6: void* accepts any pointer.
	if dst.Base == Void && dst.PointerDepth == 1 && src.IsPointer() {
		return VoidPointerConversion
	}

	// Rule 5: array-to-pointer decay, T[N] -> T*.
	if src.IsArray() && dst.IsPointer() && !dst.IsArray() {
		elem := src.ElementType()
		elem.PointerDepth = dst.PointerDepth - 1
		if elem.Equals(Type{Base: dst.Base, Unsigned: dst.Unsigned, Name: dst.Name, Func: dst.Func}) {
			return ArrayDecay
		}
	}

	// Rule 4: string <-> char*/char[] implicit conversion.
	if isStringCharCompatible(src, dst) || isStringCharCompatible(dst, src) {
		return StringCharConversion
	}

	// Rule 3: enum <-> integer.
	if src.Base == Enum && dst.IsIntegerKind() && dst.PointerDepth == 0 {
		return EnumIntConversion
	}
	if dst.Base == Enum && src.IsIntegerKind() && src.PointerDepth == 0 {
		return EnumIntConversion
	}

	// Rule 2: numeric widening/narrowing.
	if src.IsScalarNumeric() && dst.IsScalarNumeric() {
		if dst.Rank() >= src.Rank() {
			return WideningNumeric
		}
		return NarrowingNumeric
	}

	return Incompatible
}

func isStringCharCompatible(s, d Type) bool {
	if s.Base != String || s.PointerDepth != 0 {
		return false
	}
	isCharPtr := d.Base == Char && d.PointerDepth == 1
	isCharArr := d.Base == Char && d.IsArray()
	return isCharPtr || isCharArr
}

// Assignable is a convenience wrapper: true for every kind except
// Incompatible.
func Assignable(src, dst Type) bool {
	return Compatibility(src, dst) != Incompatible
}
