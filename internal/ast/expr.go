package ast

import "ulang/internal/types"

// BinOp is a binary operator appearing in a TypedExpr.BinOp node.
type BinOp int

const (
	And BinOp = iota
	Or
	Eq
	NotEq
	LtInt
	LtEqInt
	GtEqInt
	GtInt
	AddInt
	SubInt
	MultInt
	DivInt
	ModInt
)

// AssignmentKind distinguishes a binding that must succeed (Let) from
// one that may fail at runtime (Expect), mirroring the source
// language's `let`/`expect` distinction. The generator does not branch
// on it; it is carried through for diagnostics further up the pipeline.
type AssignmentKind int

const (
	Let AssignmentKind = iota
	Expect
)

// ArgName is the name shape of a function argument: present and used,
// present but discarded, or given a distinct external label.
type ArgName interface {
	VariableName() (string, bool)
}

type ArgNamed struct{ Name string }

func (a ArgNamed) VariableName() (string, bool) { return a.Name, true }

type ArgNamedLabeled struct {
	Label string
	Name  string
}

func (a ArgNamedLabeled) VariableName() (string, bool) { return a.Name, true }

type ArgDiscarded struct{ Label string }

func (a ArgDiscarded) VariableName() (string, bool) { return "", false }

// TypedArg is one checked function parameter.
type TypedArg struct {
	ArgName ArgName
	Type    types.Type
}

// Function is a checked, module-level function definition.
type Function struct {
	Name      string
	Module    string
	Arguments []TypedArg
	Body      TypedExpr
}

// TypedExpr is a node of the checked expression tree the generator
// consumes. Each concrete type implements the interface as a marker;
// the generator switches on concrete type in its lowering pass.
type TypedExpr interface {
	ExprType() types.Type
	Pos() Position
}

type ExprBase struct {
	Type     types.Type
	Position Position
}

func (e ExprBase) ExprType() types.Type { return e.Type }
func (e ExprBase) Pos() Position        { return e.Position }

type Int struct {
	ExprBase
	Value string
}

type String struct {
	ExprBase
	Value string
}

type ByteArray struct {
	ExprBase
	Bytes []byte
}

// Sequence is a `;`-separated block of expressions; only the last
// one's value escapes the block.
type Sequence struct {
	ExprBase
	Expressions []TypedExpr
}

// Pipeline is the `|>` chain; by the time it reaches the generator it
// carries the same shape as Sequence (each stage already rewritten
// into a call using the previous stage's result).
type Pipeline struct {
	ExprBase
	Expressions []TypedExpr
}

type Var struct {
	ExprBase
	Name        string
	Constructor types.ValueConstructor
}

// Fn is a lambda literal.
type Fn struct {
	ExprBase
	Args []TypedArg
	Body TypedExpr
}

type List struct {
	ExprBase
	Elements []TypedExpr
	Tail     TypedExpr // non-nil for `[x, ..rest]` style spreads
}

type Call struct {
	ExprBase
	Fun  TypedExpr
	Args []TypedExpr
}

type BinOpExpr struct {
	ExprBase
	Op    BinOp
	Left  TypedExpr
	Right TypedExpr
}

type Assignment struct {
	ExprBase
	Pattern Pattern
	Value   TypedExpr
	Kind    AssignmentKind
}

// Clause is one `is pattern -> body` arm of a When expression.
type Clause struct {
	Pattern Pattern
	Then    TypedExpr
}

type When struct {
	ExprBase
	Subject TypedExpr
	Clauses []Clause
}

type If struct {
	ExprBase
	Condition TypedExpr
	Then      TypedExpr
	Else      TypedExpr
}

type RecordAccess struct {
	ExprBase
	Record TypedExpr
	Label  string
	Index  int
}

// ModuleSelect is a qualified reference like `math.abs`.
type ModuleSelect struct {
	ExprBase
	ModuleName  string
	Constructor ModuleValueConstructor
}

// ModuleValueConstructor mirrors the shape of what a ModuleSelect
// resolves to: a function, a constant, or a record constructor defined
// in another module.
type ModuleValueConstructor interface {
	isModuleValueConstructor()
}

type ModuleValueConstructorFn struct{ Name string }
type ModuleValueConstructorConstant struct{ Name string }
type ModuleValueConstructorRecord struct{ Name string }

func (ModuleValueConstructorFn) isModuleValueConstructor()       {}
func (ModuleValueConstructorConstant) isModuleValueConstructor() {}
func (ModuleValueConstructorRecord) isModuleValueConstructor()   {}

type Todo struct {
	ExprBase
	Label string
}

type RecordUpdate struct {
	ExprBase
	Base   TypedExpr
	Fields map[string]TypedExpr
}

type Negate struct {
	ExprBase
	Value TypedExpr
}

type Tuple struct {
	ExprBase
	Elements []TypedExpr
}

type Trace struct {
	ExprBase
	Label TypedExpr
	Then  TypedExpr
}
