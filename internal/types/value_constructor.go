package types

// ConstructorDescriptor distinguishes what a Var IR node's name
// actually refers to: a local binding, a constant, a module function
// (possibly a builtin), or an algebraic data type constructor.
type ConstructorDescriptor interface {
	isConstructorDescriptor()
}

// LocalVariable is a let-bound name, function parameter, or pattern
// variable local to the current function.
type LocalVariable struct{}

func (LocalVariable) isConstructorDescriptor() {}

// ModuleConstant is a top-level `const` declaration.
type ModuleConstant struct {
	Module string
	Name   string
}

func (ModuleConstant) isConstructorDescriptor() {}

// ModuleFn is a reference to a module-level function. Builtin is set
// when the function is one of the language's built-in primitives
// rather than a user-defined function, and names the UPLC builtin it
// lowers to directly.
type ModuleFn struct {
	Module  string
	Name    string
	Builtin *BuiltinFn // nil when the function is user-defined
}

func (ModuleFn) isConstructorDescriptor() {}

// Record is a reference to an algebraic data type constructor, e.g.
// `Some` or `True`.
type Record struct {
	Name string
}

func (Record) isConstructorDescriptor() {}

// ValueConstructor pairs a resolved type with a descriptor of what
// kind of value the name refers to.
type ValueConstructor struct {
	Type      Type
	Variant   ConstructorDescriptor
}

// TypeInfo is the small ambient lookup table the generator consults
// for values imported via a qualified module reference
// (`module.function`), standing in for the full module registry a
// type checker would own.
type TypeInfo struct {
	ModuleName string
	Values     map[string]ValueConstructor
}
