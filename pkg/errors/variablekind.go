package errors

// VariableKind classifies how a declared variable came to exist
// (spec.md §3 Variable kind). It rides along on diagnostics that need to
// describe the declaration being complained about (e.g.
// AssignmentToConstVariable).
type VariableKind int

const (
	VariableKindVar VariableKind = iota
	VariableKindLet
	VariableKindConst
	VariableKindFunction
	VariableKindClass
	VariableKindParameter
	VariableKindCatch
	VariableKindImport
)

func (k VariableKind) String() string {
	switch k {
	case VariableKindVar:
		return "var"
	case VariableKindLet:
		return "let"
	case VariableKindConst:
		return "const"
	case VariableKindFunction:
		return "function"
	case VariableKindClass:
		return "class"
	case VariableKindParameter:
		return "parameter"
	case VariableKindCatch:
		return "catch"
	case VariableKindImport:
		return "import"
	default:
		return "unknown"
	}
}

// Hoists reports whether declarations of this kind hoist to the nearest
// enclosing function/module scope rather than staying in the block they
// were written in (spec.md §3 invariants: only var/function hoist).
func (k VariableKind) Hoists() bool {
	return k == VariableKindVar || k == VariableKindFunction
}

// IsReadOnly reports whether assigning to a variable of this kind is
// always illegal (const and import bindings, spec.md §4.5 step 2).
func (k VariableKind) IsReadOnly() bool {
	return k == VariableKindConst || k == VariableKindImport
}
