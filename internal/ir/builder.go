package ir

import (
	"fmt"

	"ulang/internal/ast"
	"ulang/internal/errors"
	"ulang/internal/scope"
	"ulang/internal/types"
)

// Builder lowers a checked expression tree into the flat IR sequence
// and then hoists shared function definitions, mirroring the two
// passes CodeGenerator::generate runs before synthesis.
type Builder struct {
	Functions   map[types.FunctionAccessKey]*ast.Function
	DataTypes   map[types.DataTypeKey]*types.DataType
	ModuleTypes map[string]*types.TypeInfo

	needsFieldAccess bool
	inProgress       map[types.FunctionAccessKey]bool
}

// NewBuilder constructs a Builder against the ambient tables a checked
// module provides: its own and its dependencies' function and data
// type definitions, keyed the same way the checker keys them.
func NewBuilder(
	functions map[types.FunctionAccessKey]*ast.Function,
	dataTypes map[types.DataTypeKey]*types.DataType,
	moduleTypes map[string]*types.TypeInfo,
) *Builder {
	return &Builder{
		Functions:        functions,
		DataTypes:        dataTypes,
		ModuleTypes:      moduleTypes,
		inProgress:       map[types.FunctionAccessKey]bool{},
	}
}

// NeedsFieldAccess reports whether BuildIR encountered any record
// access or field-pattern destructuring, meaning program assembly must
// install the constructor field-accessor helpers.
func (b *Builder) NeedsFieldAccess() bool { return b.needsFieldAccess }

func notImplemented(construct string) {
	panic(errors.NotYetImplemented(construct, ast.Position{}))
}

// BuildIR lowers a single checked expression into the flat IR,
// appending nodes onto stack in prefix order (the order they must be
// popped and reduced in reverse).
func (b *Builder) BuildIR(expr ast.TypedExpr, stack *[]Node, scp scope.Path) {
	switch e := expr.(type) {
	case ast.Int:
		*stack = append(*stack, Int{at(scp), e.Value})
	case ast.String:
		*stack = append(*stack, String{at(scp), e.Value})
	case ast.ByteArray:
		*stack = append(*stack, ByteArray{at(scp), e.Bytes})
	case ast.Sequence:
		for _, inner := range e.Expressions {
			b.BuildIR(inner, stack, scope.Push(scp))
		}
	case ast.Pipeline:
		for _, inner := range e.Expressions {
			b.BuildIR(inner, stack, scope.Push(scp))
		}
	case ast.Var:
		*stack = append(*stack, Var{at(scp), e.Name, e.Constructor})
	case ast.Fn:
		notImplemented("anonymous function literal")
	case ast.List:
		b.buildList(e, stack, scp)
	case ast.Call:
		b.buildCall(e, stack, scp)
	case ast.BinOpExpr:
		*stack = append(*stack, BinOp{at(scp), e.Op, e.Left.ExprType()})
		b.BuildIR(e.Left, stack, scope.Push(scp))
		b.BuildIR(e.Right, stack, scope.Push(scp))
	case ast.Assignment:
		var patternVec, valueVec []Node
		b.BuildIR(e.Value, &valueVec, scope.Push(scp))
		b.AssignmentIR(e.Pattern, &patternVec, &valueVec, e.Kind, scp)
		*stack = append(*stack, patternVec...)
	case ast.When:
		b.buildWhen(e, stack, scp)
	case ast.If:
		notImplemented("if expression")
	case ast.RecordAccess:
		b.needsFieldAccess = true
		*stack = append(*stack, RecordAccess{at(scp), e.Index, e.ExprType()})
		b.BuildIR(e.Record, stack, scp)
	case ast.ModuleSelect:
		b.buildModuleSelect(e, stack, scp)
	case ast.Todo:
		notImplemented("todo expression")
	case ast.RecordUpdate:
		notImplemented("record update")
	case ast.Negate:
		notImplemented("unary negation")
	case ast.Tuple:
		notImplemented("tuple expression")
	case ast.Trace:
		notImplemented("trace expression")
	default:
		panic(fmt.Sprintf("ir: unhandled checked expression %T", expr))
	}
}

func (b *Builder) buildList(e ast.List, stack *[]Node, scp scope.Path) {
	count := len(e.Elements)
	*stack = append(*stack, List{at(scp), count, e.ExprType(), e.Tail != nil})
	for _, elem := range e.Elements {
		b.BuildIR(elem, stack, scope.Push(scp))
	}
	if e.Tail != nil {
		b.BuildIR(e.Tail, stack, scope.Push(scp))
	}
}

func (b *Builder) buildCall(e ast.Call, stack *[]Node, scp scope.Path) {
	*stack = append(*stack, Call{at(scp), len(e.Args) + 1})
	b.BuildIR(e.Fun, stack, scope.Push(scp))
	for _, arg := range e.Args {
		b.BuildIR(arg, stack, scope.Push(scp))
	}
}

func (b *Builder) buildModuleSelect(e ast.ModuleSelect, stack *[]Node, scp scope.Path) {
	switch c := e.Constructor.(type) {
	case ast.ModuleValueConstructorFn:
		key := types.FunctionAccessKey{ModuleName: e.ModuleName, FunctionName: c.Name}
		if _, ok := b.Functions[key]; ok {
			*stack = append(*stack, Var{
				at(scp), c.Name,
				types.ValueConstructor{Type: e.ExprType(), Variant: types.ModuleFn{Module: e.ModuleName, Name: c.Name}},
			})
			return
		}
		info, ok := b.ModuleTypes[e.ModuleName]
		if !ok {
			panic(fmt.Sprintf("ir: unknown module %q", e.ModuleName))
		}
		value, ok := info.Values[c.Name]
		if !ok {
			panic(fmt.Sprintf("ir: unknown module function %s.%s", e.ModuleName, c.Name))
		}
		fn, ok := value.Variant.(types.ModuleFn)
		if !ok || fn.Builtin == nil {
			panic("ir: module-level function reference without a builtin or definition")
		}
		*stack = append(*stack, Builtin{at(scp), *fn.Builtin})
	case ast.ModuleValueConstructorRecord:
		notImplemented("module-qualified record constructor reference")
	case ast.ModuleValueConstructorConstant:
		notImplemented("module-qualified constant reference")
	default:
		panic(fmt.Sprintf("ir: unhandled module select constructor %T", c))
	}
}

func (b *Builder) buildWhen(e ast.When, stack *[]Node, scp scope.Path) {
	subjectName := fmt.Sprintf("__subject_name_%d", scope.NextID())
	constrVar := fmt.Sprintf("__constr_var_%d", scope.NextID())

	var clausesVec []Node
	needsConstrVar := false

	last := e.Clauses[len(e.Clauses)-1]
	finalScope := scope.Push(scp)
	var patternVec []Node

	b.BuildIR(last.Then, &clausesVec, finalScope)
	patternVec = append(patternVec, Finally{at(finalScope)})
	b.WhenIR(last.Pattern, &patternVec, &clausesVec, e.Subject.ExprType(), constrVar, &needsConstrVar, scp)

	for i := len(e.Clauses) - 2; i >= 0; i-- {
		clause := e.Clauses[i]
		clauseScope := scope.Push(scp)

		var clauseVec []Node
		b.BuildIR(clause.Then, &clauseVec, clauseScope)

		thisPatternVec := []Node{Clause{at(clauseScope), subjectName, e.Subject.ExprType()}}
		b.WhenIR(clause.Pattern, &thisPatternVec, &clauseVec, e.Subject.ExprType(), constrVar, &needsConstrVar, clauseScope)

		patternVec = append(thisPatternVec, patternVec...)
	}

	if needsConstrVar {
		*stack = append(*stack, Lam{at(scp), constrVar})
		b.BuildIR(e.Subject, stack, scp)
		*stack = append(*stack, When{at(scp), len(e.Clauses) + 1, subjectName, e.Subject.ExprType()})
		innerScope := scope.Push(scp)
		*stack = append(*stack, Var{
			at(innerScope), constrVar,
			types.ValueConstructor{Type: e.Subject.ExprType(), Variant: types.LocalVariable{}},
		})
	} else {
		*stack = append(*stack, When{at(scp), len(e.Clauses) + 1, subjectName, e.Subject.ExprType()})
		b.BuildIR(e.Subject, stack, scope.Push(scp))
	}

	*stack = append(*stack, patternVec...)
}

// AssignmentIR lowers the pattern of a `let`/`expect` binding.
func (b *Builder) AssignmentIR(pattern ast.Pattern, patternVec *[]Node, valueVec *[]Node, kind ast.AssignmentKind, scp scope.Path) {
	switch p := pattern.(type) {
	case ast.PatternVar:
		*patternVec = append(*patternVec, Assignment{at(scp), p.Name, kind})
		*patternVec = append(*patternVec, *valueVec...)
	case ast.PatternList:
		b.PatternIR(p, patternVec, valueVec, scp)
	case ast.PatternInt, ast.PatternString, ast.PatternVarUsage, ast.PatternAssign, ast.PatternDiscard:
		notImplemented("this pattern in a let/expect binding")
	case ast.PatternConstructor:
		notImplemented("constructor pattern in a let/expect binding")
	case ast.PatternTuple:
		notImplemented("tuple pattern in a let/expect binding")
	default:
		panic(fmt.Sprintf("ir: unhandled pattern %T", pattern))
	}
}

// WhenIR lowers one `when`/`is` clause head, deciding whether the
// clause needs direct access to the raw (still-encoded) subject value
// alongside its destructured fields.
func (b *Builder) WhenIR(pattern ast.Pattern, patternVec *[]Node, values *[]Node, tipo types.Type, constrVar string, needsConstrVar *bool, scp scope.Path) {
	switch p := pattern.(type) {
	case ast.PatternInt:
		*patternVec = append(*patternVec, Int{at(scp), p.Value})
		*patternVec = append(*patternVec, *values...)
	case ast.PatternConstructor:
		needsAccess := false
		for _, arg := range p.Arguments {
			switch arg.Value.(type) {
			case ast.PatternVar, ast.PatternList, ast.PatternConstructor:
				needsAccess = true
			}
		}

		newVec := []Node{Var{
			at(scp), constrVar,
			types.ValueConstructor{Type: tipo, Variant: types.LocalVariable{}},
		}}

		if needsAccess {
			*needsConstrVar = true
			newVec = append(newVec, *values...)
			b.PatternIR(p, patternVec, &newVec, scp)
		} else {
			b.PatternIR(p, patternVec, values, scp)
		}
	case ast.PatternString, ast.PatternVar, ast.PatternVarUsage, ast.PatternAssign, ast.PatternList, ast.PatternTuple:
		notImplemented("this subject pattern in a when/is clause")
	case ast.PatternDiscard:
		panic("ir: discard pattern reached as a when clause head, should be unreachable")
	default:
		panic(fmt.Sprintf("ir: unhandled when pattern %T", pattern))
	}
}

// PatternIR lowers a destructuring pattern that already has a bound
// subject value available on the stack.
func (b *Builder) PatternIR(pattern ast.Pattern, patternVec *[]Node, values *[]Node, scp scope.Path) {
	switch p := pattern.(type) {
	case ast.PatternDiscard:
		*patternVec = append(*patternVec, Discard{at(scp)})
		*patternVec = append(*patternVec, *values...)
	case ast.PatternList:
		b.patternList(p, patternVec, values, scp)
	case ast.PatternConstructor:
		b.patternConstructor(p, patternVec, values, scp)
	case ast.PatternInt, ast.PatternString, ast.PatternVar, ast.PatternVarUsage, ast.PatternAssign, ast.PatternTuple:
		notImplemented("this nested pattern")
	default:
		panic(fmt.Sprintf("ir: unhandled pattern %T", pattern))
	}
}

func (b *Builder) patternList(p ast.PatternList, patternVec *[]Node, values *[]Node, scp scope.Path) {
	var elementsVec []Node
	var names []string

	for _, elem := range p.Elements {
		switch el := elem.(type) {
		case ast.PatternVar:
			names = append(names, el.Name)
		case ast.PatternList:
			itemName := fmt.Sprintf("list_item_id_%d", scope.NextID())
			names = append(names, itemName)
			varVec := []Node{Var{
				at(scp), itemName,
				types.ValueConstructor{Type: types.App{}, Variant: types.LocalVariable{}},
			}}
			b.PatternIR(el, &elementsVec, &varVec, scp)
		default:
			notImplemented("nested non-variable list element pattern")
		}
	}

	hasTail := p.Tail != nil
	if hasTail {
		switch t := p.Tail.(type) {
		case ast.PatternVar:
			names = append(names, t.Name)
		case ast.PatternDiscard:
		default:
			panic("ir: list pattern tail must be a variable or discard")
		}
	}

	*patternVec = append(*patternVec, ListAccessor{at(scp), names, hasTail})
	*patternVec = append(*patternVec, *values...)
	*patternVec = append(*patternVec, elementsVec...)
}

func (b *Builder) patternConstructor(p ast.PatternConstructor, patternVec *[]Node, values *[]Node, scp scope.Path) {
	key := dataTypeKeyOf(p.Type)
	dataType, ok := b.DataTypes[key]
	if !ok {
		panic(fmt.Sprintf("ir: unknown data type %s.%s", key.ModuleName, key.DefinedType))
	}
	index, ok := dataType.IndexOf(p.Name)
	if !ok {
		panic(fmt.Sprintf("ir: unknown constructor %s for data type %s", p.Name, dataType.Name))
	}

	*patternVec = append(*patternVec, Int{at(scp), fmt.Sprintf("%d", index)})

	constructor := dataType.Constructors[index]
	type fieldBinding struct {
		index int
		name  string
	}
	var bindings []fieldBinding
	typeOf := func(i int) types.Type { return constructor.Fields[i].Type }

	if p.IsRecord {
		for _, arg := range p.Arguments {
			fieldIndex := p.FieldMap[arg.Label]
			switch v := arg.Value.(type) {
			case ast.PatternVar:
				bindings = append(bindings, fieldBinding{fieldIndex, v.Name})
			case ast.PatternDiscard:
			default:
				notImplemented("nested pattern inside a record constructor field")
			}
		}
	} else {
		for i, arg := range p.Arguments {
			switch v := arg.Value.(type) {
			case ast.PatternVar:
				bindings = append(bindings, fieldBinding{i, v.Name})
			case ast.PatternDiscard:
			default:
				notImplemented("nested pattern inside a constructor field")
			}
		}
	}

	if len(bindings) > 0 {
		fields := make([]FieldsExposeField, len(bindings))
		for i, bnd := range bindings {
			fields[i] = FieldsExposeField{Index: bnd.index, Name: bnd.name, Tipo: typeOf(bnd.index)}
		}
		*patternVec = append(*patternVec, FieldsExpose{at(scp), len(bindings) + 2, fields})
	}
	*patternVec = append(*patternVec, *values...)
}

func dataTypeKeyOf(t types.Type) types.DataTypeKey {
	switch v := t.(type) {
	case types.App:
		return types.DataTypeKey{ModuleName: v.Module, DefinedType: v.Name}
	case types.Fn:
		return dataTypeKeyOf(v.Ret)
	default:
		panic(fmt.Sprintf("ir: cannot resolve a data type key from %T", t))
	}
}
