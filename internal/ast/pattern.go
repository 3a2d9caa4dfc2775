package ast

import "ulang/internal/types"

// Pattern is a match pattern appearing on the left of an assignment or
// as a `when`/`is` clause head.
type Pattern interface {
	isPattern()
}

type PatternInt struct{ Value string }
type PatternString struct{ Value string }

// PatternVar binds the matched value to Name.
type PatternVar struct{ Name string }

// PatternVarUsage references an already-bound name inside a pattern
// (used for literal-equality patterns like repeated variables).
type PatternVarUsage struct{ Name string }

// PatternAssign binds Name to the whole match while also destructuring
// it against Inner, e.g. `x as Some(y)`.
type PatternAssign struct {
	Name  string
	Inner Pattern
}

// PatternDiscard is `_` or `_name`: matches anything, binds nothing.
type PatternDiscard struct{ Label string }

// PatternList destructures a list literal; Tail is non-nil for a
// `[a, b, ..rest]` spread pattern.
type PatternList struct {
	Elements []Pattern
	Tail     Pattern
}

// PatternFieldArg is one constructor argument pattern, optionally
// carrying a record field label for `Ctor { field: pattern }` style
// matches.
type PatternFieldArg struct {
	Label string
	Value Pattern
}

// PatternConstructor matches an algebraic data type constructor,
// either positionally or (when IsRecord) by field label.
type PatternConstructor struct {
	Name      string
	IsRecord  bool
	Arguments []PatternFieldArg
	Type      types.Type
	FieldMap  map[string]int // label -> declared field index, set when IsRecord
}

type PatternTuple struct {
	Elements []Pattern
}

func (PatternInt) isPattern()         {}
func (PatternString) isPattern()      {}
func (PatternVar) isPattern()         {}
func (PatternVarUsage) isPattern()    {}
func (PatternAssign) isPattern()      {}
func (PatternDiscard) isPattern()     {}
func (PatternList) isPattern()        {}
func (PatternConstructor) isPattern() {}
func (PatternTuple) isPattern()       {}
