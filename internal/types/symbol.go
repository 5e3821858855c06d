package types

// SymbolKind distinguishes what a Symbol denotes.
type SymbolKind int

const (
	VarSymbol SymbolKind = iota
	FuncSymbol
	ClassSymbol
	EnumSymbol
	NamespaceSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case VarSymbol:
		return "var"
	case FuncSymbol:
		return "func"
	case ClassSymbol:
		return "class"
	case EnumSymbol:
		return "enum"
	case NamespaceSymbol:
		return "namespace"
	default:
		return "unknown"
	}
}

// Symbol is an entry in a Scope: a name bound to a kind and a type, with the
// extra bookkeeping each kind needs downstream.
type Symbol struct {
	Name        string
	Kind        SymbolKind
	Type        Type
	Mutable     bool
	Initialized bool

	// ParentName is the immediate base class name; only meaningful for
	// ClassSymbol. Empty means no parent.
	ParentName string

	// Inner is the scope attached to this symbol (classes, namespaces,
	// functions). Nil for plain variables.
	Inner *Scope

	// ParamTypes is the ordered parameter type list; only meaningful for
	// FuncSymbol.
	ParamTypes []Type

	// EnumValue holds the integer value of an enum member constant; only
	// meaningful when Kind == VarSymbol and the symbol was synthesized by
	// enum registration (see Scope.Define callers in the semantic package).
	EnumValue    int
	IsEnumMember bool
}
