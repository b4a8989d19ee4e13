package ast

import "jslint/pkg/source"

// Arena is a monotonically growing bump allocator for Expr nodes,
// owned by a single parse (spec.md §3 "Arena", §4.6). Unlike the
// teacher's per-kind-slice arena, every Expr lives in one backing
// slice addressed by ExprID (an index, not a pointer): an Arena that
// outgrows its backing array during a parse never invalidates an
// already-issued ExprID, because the handle is an offset rather than
// a raw pointer into memory that append may relocate.
type Arena struct {
	nodes []Expr
}

// NewArena returns an Arena pre-sized for a typical small-to-medium
// source file.
func NewArena() *Arena {
	return &Arena{nodes: make([]Expr, 1, 512)} // index 0 reserved as "absent"
}

// Reset clears the arena for reuse, keeping its backing memory.
func (a *Arena) Reset() {
	a.nodes = a.nodes[:1]
}

// New allocates a zeroed Expr of the given kind/span and returns its
// ExprID.
func (a *Arena) New(kind Kind, span source.Span) ExprID {
	a.nodes = append(a.nodes, Expr{Kind: kind, Span: span})
	return ExprID(len(a.nodes) - 1)
}

// Get dereferences id. Get(0) (the absent sentinel) does not panic: it
// returns the reserved zero slot, whose Kind is Invalid, so callers
// check IsValid to tell an absent child from a real node.
func (a *Arena) Get(id ExprID) *Expr {
	return &a.nodes[id]
}

// IsValid reports whether id denotes a real node rather than the
// absent-child sentinel.
func (id ExprID) IsValid() bool {
	return id != 0
}

// Len returns the number of nodes with valid IDs (Id 0 excluded).
func (a *Arena) Len() int {
	return len(a.nodes) - 1
}

// --- AST inspection surface (spec.md §6, tests only) ---

// Kind returns id's tag.
func (a *Arena) Kind(id ExprID) Kind { return a.nodes[id].Kind }

// Span returns id's source span.
func (a *Arena) Span(id ExprID) source.Span { return a.nodes[id].Span }

// ChildCount returns the number of variadic children id carries (0 for
// kinds that only use the fixed A/B/C slots).
func (a *Arena) ChildCount(id ExprID) int { return len(a.nodes[id].Children) }

// Child returns the i-th variadic child of id.
func (a *Arena) Child(id ExprID, i int) ExprID { return a.nodes[id].Children[i] }

// VariableName returns the normalized identifier text for a Variable,
// NamedFunction, or Dot node.
func (a *Arena) VariableName(id ExprID) string { return a.nodes[id].Text }

// FunctionAttributes returns the function's normal/async tag.
func (a *Arena) FunctionAttributes(id ExprID) Attributes {
	return a.nodes[id].Function.Attributes
}

// ObjectEntryCount returns the number of entries of an Object node.
func (a *Arena) ObjectEntryCount(id ExprID) int { return len(a.nodes[id].Entries) }

// ObjectEntryAt returns the i-th entry of an Object node.
func (a *Arena) ObjectEntryAt(id ExprID, i int) ObjectEntry { return a.nodes[id].Entries[i] }
