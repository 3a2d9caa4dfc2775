package uplc

import (
	"fmt"
	"strconv"

	"ulang/internal/ast"
	"ulang/internal/errors"
	"ulang/internal/ir"
	"ulang/internal/types"
)

// Synthesize reduces a flat IR sequence (already hoisted) to a single
// UPLC term by popping nodes off the end of stack in reverse order and
// folding them onto an argument stack, exactly mirroring
// CodeGenerator::uplc_code_gen / gen_uplc.
func Synthesize(stack []ir.Node) Term {
	var argStack []Term

	for i := len(stack) - 1; i >= 0; i-- {
		reduce(stack[i], &argStack)
	}

	if len(argStack) != 1 {
		panic(fmt.Sprintf("uplc: synthesis left %d terms on the argument stack, expected 1", len(argStack)))
	}
	return argStack[0]
}

func pop(stack *[]Term) Term {
	s := *stack
	last := s[len(s)-1]
	*stack = s[:len(s)-1]
	return last
}

func push(stack *[]Term, t Term) { *stack = append(*stack, t) }

func reduce(node ir.Node, stack *[]Term) {
	switch n := node.(type) {
	case ir.Int:
		value, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			panic(fmt.Sprintf("uplc: malformed integer literal %q", n.Value))
		}
		push(stack, ConstantTerm{CInteger{value}})

	case ir.String:
		push(stack, ConstantTerm{CString{n.Value}})

	case ir.ByteArray:
		push(stack, ConstantTerm{CByteString{n.Bytes}})

	case ir.Var:
		reduceVar(n, stack)

	case ir.Discard:
		push(stack, ConstantTerm{CUnit{}})

	case ir.List:
		reduceList(n, stack)

	case ir.ListAccessor:
		reduceListAccessor(n, stack)

	case ir.Call:
		reduceCall(n, stack)

	case ir.Builtin:
		push(stack, BuiltinTerm(n.Func))

	case ir.BinOp:
		reduceBinOp(n, stack)

	case ir.Assignment:
		rightHand := pop(stack)
		lamBody := pop(stack)
		push(stack, Apply{Lambda{n.Name, lamBody}, rightHand})

	case ir.DefineFunc:
		reduceDefineFunc(n, stack)

	case ir.Lam:
		arg := pop(stack)
		body := pop(stack)
		push(stack, Apply{Lambda{n.Name, body}, arg})

	case ir.When:
		reduceWhen(n, stack)

	case ir.Clause:
		reduceClause(n, stack)

	case ir.Finally:
		pop(stack)

	case ir.RecordAccess:
		reduceRecordAccess(n, stack)

	case ir.FieldsExpose:
		reduceFieldsExpose(n, stack)

	case ir.If, ir.Constr, ir.Fields, ir.RecordUpdate, ir.Negate,
		ir.DefineConst, ir.DefineConstrFields, ir.DefineConstrFieldAccess, ir.Todo, ir.Tail:
		panic(errors.NotYetImplemented(fmt.Sprintf("%T", node), ast.Position{}))

	default:
		panic(fmt.Sprintf("uplc: unhandled ir node %T", node))
	}
}

func reduceVar(n ir.Var, stack *[]Term) {
	switch variant := n.Constructor.Variant.(type) {
	case types.LocalVariable:
		push(stack, Var{n.Name})
	case types.ModuleConstant:
		panic(errors.NotYetImplemented("module constant reference", ast.Position{}))
	case types.ModuleFn:
		if variant.Builtin != nil {
			push(stack, BuiltinTerm(*variant.Builtin))
			return
		}
		// A reference to a hoisted user function: by synthesis time
		// Hoist has placed a DefineFunc binding this exact name in an
		// enclosing scope, whether the call is a forward reference to
		// a dependency or the function calling itself.
		push(stack, Var{variant.Name})
	case types.Record:
		reduceRecordVar(n, variant, stack)
	default:
		panic(fmt.Sprintf("uplc: unhandled var constructor %T", variant))
	}
}

func reduceRecordVar(n ir.Var, variant types.Record, stack *[]Term) {
	key := dataTypeKeyOf(n.Constructor.Type)

	if key.DefinedType == "Bool" {
		push(stack, ConstantTerm{CBool{variant.Name == "True"}})
		return
	}

	dataType, ok := dataTypes[key]
	if !ok {
		panic(fmt.Sprintf("uplc: unknown data type %s.%s", key.ModuleName, key.DefinedType))
	}
	index, ok := dataType.IndexOf(variant.Name)
	if !ok {
		panic(fmt.Sprintf("uplc: unknown constructor %s", variant.Name))
	}

	push(stack, ConstrData(int64(index), nil))
}

func dataTypeKeyOf(t types.Type) types.DataTypeKey {
	switch v := t.(type) {
	case types.App:
		return types.DataTypeKey{ModuleName: v.Module, DefinedType: v.Name}
	case types.Fn:
		return dataTypeKeyOf(v.Ret)
	default:
		panic(fmt.Sprintf("uplc: cannot resolve a data type key from %T", t))
	}
}

// dataTypes is populated by SetDataTypes before synthesis runs; the
// reducer needs it only for constructor tag lookup, resolved purely
// from a data type's declared shape (the Bool fast path never reads it).
var dataTypes map[types.DataTypeKey]*types.DataType

// SetDataTypes installs the ambient data type table Synthesize
// consults for constructor tag lookups.
func SetDataTypes(dt map[types.DataTypeKey]*types.DataType) { dataTypes = dt }

func reduceList(n ir.List, stack *[]Term) {
	args := make([]Term, n.Count)
	for i := 0; i < n.Count; i++ {
		args[i] = pop(stack)
	}

	allConstant := true
	constants := make([]Constant, n.Count)
	for i, a := range args {
		c, ok := a.(ConstantTerm)
		if !ok {
			allConstant = false
			break
		}
		constants[i] = c.Value
	}

	elemType, ok := n.Tipo.(types.List)
	listTypeName := "data"
	if ok {
		listTypeName = uplcTypeName(elemType.Elem)
	}

	if allConstant && !n.Tail {
		push(stack, ConstantTerm{CProtoList{ElemType: listTypeName, Elements: constants}})
		return
	}

	var term Term
	if n.Tail {
		term = pop(stack)
	} else {
		term = ConstantTerm{CProtoList{ElemType: listTypeName}}
	}

	for _, arg := range args {
		term = Apply2(BuiltinTerm(types.MkCons), arg, term)
	}
	push(stack, term)
}

func reduceListAccessor(n ir.ListAccessor, stack *[]Term) {
	value := pop(stack)
	term := pop(stack)

	if len(n.Names) == 0 {
		push(stack, term)
		return
	}

	first := n.Names[0]
	rest := n.Names[1:]

	body := term
	var cur Term = value

	for i, name := range rest {
		tailTerm := Apply{BuiltinTerm(types.TailList), cur}
		if i == len(rest)-1 && n.Tail {
			body = Apply{Lambda{name, body}, tailTerm}
		} else {
			body = Apply{Lambda{name, body}, Apply{BuiltinTerm(types.HeadList), tailTerm}}
		}
		cur = tailTerm
	}

	result := Apply{
		Lambda{first, body},
		Apply{BuiltinTerm(types.HeadList), value},
	}
	push(stack, result)
}

func reduceCall(n ir.Call, stack *[]Term) {
	if n.Count < 2 {
		panic(errors.NotYetImplemented("zero-argument call", ast.Position{}))
	}
	term := pop(stack)
	for i := 0; i < n.Count-1; i++ {
		term = Apply{term, pop(stack)}
	}
	push(stack, term)
}

func reduceBinOp(n ir.BinOp, stack *[]Term) {
	left := pop(stack)
	right := pop(stack)

	var term Term
	switch n.Op {
	case ast.Eq:
		term = reduceEq(n.Tipo, left, right)
	case ast.LtInt:
		term = Apply2(Builtin{types.LessThanInteger}, left, right)
	case ast.GtInt:
		term = Apply2(Builtin{types.LessThanInteger}, right, left)
	case ast.AddInt:
		term = Apply2(Builtin{types.AddInteger}, left, right)
	case ast.SubInt:
		term = Apply2(Builtin{types.SubtractInteger}, left, right)
	case ast.MultInt:
		term = Apply2(Builtin{types.MultiplyInteger}, left, right)
	case ast.DivInt:
		term = Apply2(Builtin{types.DivideInteger}, left, right)
	case ast.ModInt:
		term = Apply2(Builtin{types.ModInteger}, left, right)
	case ast.LtEqInt:
		term = ForceWrap(Apply3(
			ForceWrap(Builtin{types.IfThenElse}),
			Apply2(Builtin{types.LessThanInteger}, right, left),
			Delay{ConstantTerm{CBool{false}}},
			Delay{ConstantTerm{CBool{true}}},
		))
	case ast.GtEqInt:
		term = ForceWrap(Apply3(
			ForceWrap(Builtin{types.IfThenElse}),
			Apply2(Builtin{types.LessThanInteger}, left, right),
			Delay{ConstantTerm{CBool{false}}},
			Delay{ConstantTerm{CBool{true}}},
		))
	case ast.NotEq:
		term = ForceWrap(Apply3(
			ForceWrap(Builtin{types.IfThenElse}),
			reduceEq(n.Tipo, left, right),
			Delay{ConstantTerm{CBool{false}}},
			Delay{ConstantTerm{CBool{true}}},
		))
	case ast.And, ast.Or:
		panic(errors.NotYetImplemented("boolean and/or operator", ast.Position{}))
	default:
		panic(fmt.Sprintf("uplc: unhandled binop %v", n.Op))
	}
	push(stack, term)
}

// reduceEq expands equality per the subject type: types with a direct
// builtin use it, Bool (which has none) is expanded inline via nested
// IfThenElse, matching the truth table `left == right`.
func reduceEq(tipo types.Type, left, right Term) Term {
	switch {
	case tipo.IsInt():
		return Apply2(Builtin{types.EqualsInteger}, left, right)
	case tipo.IsString():
		return Apply2(Builtin{types.EqualsString}, left, right)
	case tipo.IsByteArray():
		return Apply2(Builtin{types.EqualsByteString}, left, right)
	case tipo.IsBool():
		return ForceWrap(Apply3(
			ForceWrap(Builtin{types.IfThenElse}),
			left,
			Delay{Apply3(ForceWrap(Builtin{types.IfThenElse}), right, ConstantTerm{CBool{true}}, ConstantTerm{CBool{false}})},
			Delay{Apply3(ForceWrap(Builtin{types.IfThenElse}), right, ConstantTerm{CBool{false}}, ConstantTerm{CBool{true}})},
		))
	default:
		return Apply2(Builtin{types.EqualsData}, left, right)
	}
}

// reduceDefineFunc binds a hoisted function definition around the
// remaining program. Its own body was spliced directly after this
// marker (see Hoist), so it reduces to a term after the untouched
// continuation that follows it in the original stack and sits on top
// of the argument stack: the body is popped first, the continuation
// last. Non-recursive functions are a plain curried
// lambda binding; recursive ones go through fixpoint so calls to the
// function's own name inside its body resolve correctly.
func reduceDefineFunc(n ir.DefineFunc, stack *[]Term) {
	funcBody := pop(stack)
	rest := pop(stack)

	if n.Recursive {
		push(stack, Apply{
			Lambda{n.FuncName, rest},
			fixpoint(n.FuncName, n.Params, funcBody),
		})
		return
	}

	value := funcBody
	for i := len(n.Params) - 1; i >= 0; i-- {
		value = Lambda{n.Params[i], value}
	}
	push(stack, Apply{Lambda{n.FuncName, rest}, value})
}

func reduceWhen(n ir.When, stack *[]Term) {
	subject := pop(stack)
	term := pop(stack)

	var argument Term
	if n.Tipo.IsInt() || n.Tipo.IsByteArray() || n.Tipo.IsString() || n.Tipo.IsList() {
		argument = subject
	} else {
		argument = constrIndexExposer(subject)
	}

	push(stack, Apply{Lambda{n.SubjectName, term}, argument})
}

func reduceClause(n ir.Clause, stack *[]Term) {
	clause := pop(stack)
	body := pop(stack)
	fallthroughTerm := pop(stack)

	var checker Term
	switch {
	case n.Tipo.IsInt():
		checker = Apply{Builtin{types.EqualsInteger}, Var{n.SubjectName}}
	case n.Tipo.IsByteArray():
		checker = Apply{Builtin{types.EqualsByteString}, Var{n.SubjectName}}
	case n.Tipo.IsString():
		checker = Apply{Builtin{types.EqualsString}, Var{n.SubjectName}}
	default:
		checker = Apply{Builtin{types.EqualsInteger}, Var{n.SubjectName}}
	}

	term := ForceWrap(Apply3(
		ForceWrap(Builtin{types.IfThenElse}),
		Apply{checker, clause},
		Delay{body},
		Delay{fallthroughTerm},
	))
	push(stack, term)
}

func reduceRecordAccess(n ir.RecordAccess, stack *[]Term) {
	constr := pop(stack)

	term := Apply{
		Apply{Var{constrGetFieldName}, Apply{Var{constrFieldsExposerName}, constr}},
		ConstantTerm{CInteger{int64(n.Index)}},
	}

	switch {
	case n.Tipo.IsInt():
		term = Apply{Builtin{types.UnIData}, term}
	case n.Tipo.IsByteArray():
		term = Apply{Builtin{types.UnBData}, term}
	case n.Tipo.IsList():
		term = Apply{Builtin{types.UnListData}, term}
	}

	push(stack, term)
}

// reduceFieldsExpose binds one local name per exposed field, each read
// out of the constructor's field list at its own declared index
// (walking TailList that many times then taking HeadList) rather than
// by position among the exposed fields, so a pattern that discards
// some fields still reads the kept ones from their true position.
func reduceFieldsExpose(n ir.FieldsExpose, stack *[]Term) {
	constrVar := pop(stack)
	body := pop(stack)

	fieldsVar := Apply{Var{constrFieldsExposerName}, constrVar}

	for _, field := range n.Indices {
		at := fieldsVar
		for i := 0; i < field.Index; i++ {
			at = Apply{BuiltinTerm(types.TailList), at}
		}
		head := Apply{BuiltinTerm(types.HeadList), at}

		switch {
		case field.Tipo.IsInt():
			head = Apply{Builtin{types.UnIData}, head}
		case field.Tipo.IsByteArray():
			head = Apply{Builtin{types.UnBData}, head}
		case field.Tipo.IsList():
			head = Apply{Builtin{types.UnListData}, head}
		}

		body = Apply{Lambda{field.Name, body}, head}
	}

	push(stack, body)
}
