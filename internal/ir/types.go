// Package ir implements the flat, scope-path-tagged intermediate
// representation the generator lowers checked expressions into before
// reducing them to UPLC. Unlike a conventional AST or CFG, the IR is a
// single prefix-order (Polish-notation) sequence: lexical nesting is
// recovered from each node's scope path instead of from tree edges,
// which is what lets the hoisting pass relocate a node to a new
// position just by editing where in the sequence it sits.
package ir

import (
	"ulang/internal/ast"
	"ulang/internal/scope"
	"ulang/internal/types"
)

// Node is one element of the flat IR sequence.
type Node interface {
	Scope() scope.Path
}

type base struct {
	ScopePath scope.Path
}

func (b base) Scope() scope.Path { return b.ScopePath }

type Int struct {
	base
	Value string
}

type String struct {
	base
	Value string
}

type ByteArray struct {
	base
	Bytes []byte
}

// Var references a name: a local binding, a module function/builtin,
// a module constant, or a data type constructor. Constructor carries
// which of those it is.
type Var struct {
	base
	Name        string
	Constructor types.ValueConstructor
}

// Builtin is a direct reference to a UPLC built-in primitive, reached
// via a qualified module call to one of the language's builtin
// functions.
type Builtin struct {
	base
	Func types.BuiltinFn
}

// List builds a list value from Count popped arguments. Tail is true
// when the list was built from a `[x, ..rest]` spread, meaning the
// last popped argument is already a list to prepend onto rather than
// a bare element.
type List struct {
	base
	Count int
	Tipo  types.Type
	Tail  bool
}

// Tail is unused by any implemented lowering rule in this generator;
// carried as a placeholder so the node set matches the checked AST's
// full pattern surface.
type Tail struct {
	base
}

// ListAccessor destructures a list pattern, binding Names to
// successive elements (and, if Tail, the remaining list) of the value
// on top of the argument stack.
type ListAccessor struct {
	base
	Names []string
	Tail  bool
}

// Call applies the top stack term to Count-1 popped arguments.
type Call struct {
	base
	Count int
}

// BinOp reduces a binary operator over the top two stack terms.
type BinOp struct {
	base
	Op   ast.BinOp
	Tipo types.Type
}

// Assignment binds Name to a popped right-hand-side term within a
// popped body term.
type Assignment struct {
	base
	Name string
	Kind ast.AssignmentKind
}

// When starts a pattern match: SubjectName is the name the compiled
// subject is bound to for the clauses to reference, Tipo its checked
// type (used to decide whether the subject needs unwrapping through
// the constructor-index exposer first).
type When struct {
	base
	Count       int
	SubjectName string
	Tipo        types.Type
}

// Clause is one `is pattern ->` arm: SubjectName/Tipo describe what is
// being compared against, the popped terms are (in order) the value
// to compare, this clause's body, and the fallthrough branch.
type Clause struct {
	base
	SubjectName string
	Tipo        types.Type
}

// Finally marks the last arm of a When: it discards that arm's pattern
// value, which is never compared, leaving the arm's body on the stack
// as the fallthrough branch of the preceding Clause.
type Finally struct {
	base
}

// Lam wraps the popped body in a lambda over Name, immediately applied
// to the popped argument. Its only producer is When lowering, which
// uses it to bind the raw subject to the constructor variable; function
// literals are not lowered through it (they are reported as not yet
// implemented).
type Lam struct {
	base
	Name string
}

// DefineFunc introduces a hoisted function definition at the point the
// hoisting pass decided is its lowest common use-site ancestor.
type DefineFunc struct {
	base
	FuncName   string
	ModuleName string
	Params     []string
	Recursive  bool
}

// RecordAccess reads field Index (already known to have checked type
// Tipo) out of the popped constructor value.
type RecordAccess struct {
	base
	Index int
	Tipo  types.Type
}

// FieldsExposeField is one field a FieldsExpose node unpacks.
type FieldsExposeField struct {
	Index int
	Name  string
	Tipo  types.Type
}

// FieldsExpose unpacks Count (named fields plus the constructor's tag
// and field list) bindings out of the popped constructor value,
// binding each named field for the popped body.
type FieldsExpose struct {
	base
	Count   int
	Indices []FieldsExposeField
}

// The following are placeholder node kinds: the generator they are
// ported from never finished their reduction rule (left `todo!()` in
// the original), and this port preserves that by returning a
// structured "not yet implemented" error (see internal/errors) rather
// than guessing at semantics nobody has specified. Discard is the one
// exception: pattern lowering emits it and synthesis reduces it to the
// unit constant.
type (
	Discard struct{ base }
	Todo    struct {
		base
		Label string
	}
	If                      struct{ base }
	Constr                  struct{ base }
	Fields                  struct{ base }
	RecordUpdate            struct{ base }
	Negate                  struct{ base }
	DefineConst             struct{ base }
	DefineConstrFields      struct{ base }
	DefineConstrFieldAccess struct{ base }
)

func at(s scope.Path) base { return base{ScopePath: s} }
