package uplc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ulang/internal/ast"
	"ulang/internal/ir"
	"ulang/internal/scope"
	"ulang/internal/types"
)

func localVarNode(name string, tipo types.Type) ir.Var {
	return ir.Var{Name: name, Constructor: types.ValueConstructor{Type: tipo, Variant: types.LocalVariable{}}}
}

// TestSynthesizeAssignmentBindsValueNotContinuation locks in the fix
// for the Assignment pop-order bug: `let x = 7; x` must synthesize to
// `(\x -> x) 7`, binding x to the value 7 with the rest of the block as
// the lambda body — not the other way around.
func TestSynthesizeAssignmentBindsValueNotContinuation(t *testing.T) {
	stack := []ir.Node{
		ir.Assignment{Name: "x", Kind: ast.Let},
		ir.Int{Value: "7"},
		localVarNode("x", types.Int),
	}

	got := Synthesize(stack)

	app, ok := got.(Apply)
	require.True(t, ok, "expected an Apply at the top, got %T", got)
	require.Equal(t, ConstantTerm{CInteger{7}}, app.Arg, "expected the value (7) as the applied argument")

	lam, ok := app.Fun.(Lambda)
	require.True(t, ok)
	require.Equal(t, "x", lam.Param)
	require.Equal(t, Var{"x"}, lam.Body, "expected the continuation (x) as the lambda body")
}

func TestSynthesizeCallAppliesFunToArgs(t *testing.T) {
	fnType := types.Fn{Args: []types.Type{types.Int}, Ret: types.Int}
	addInt := types.AddInteger

	stack := []ir.Node{
		ir.Call{Count: 3},
		ir.Var{Name: "add_int", Constructor: types.ValueConstructor{Type: fnType, Variant: types.ModuleFn{Module: "builtin", Name: "add_int", Builtin: &addInt}}},
		ir.Int{Value: "1"},
		ir.Int{Value: "2"},
	}

	got := Synthesize(stack)

	outer, ok := got.(Apply)
	require.True(t, ok)
	require.Equal(t, ConstantTerm{CInteger{2}}, outer.Arg)

	inner, ok := outer.Fun.(Apply)
	require.True(t, ok)
	require.Equal(t, ConstantTerm{CInteger{1}}, inner.Arg)

	require.Equal(t, BuiltinTerm(types.AddInteger), inner.Fun)
}

// TestSynthesizeBinOpLeftMinusRight confirms reduceBinOp's left/right
// pop order lines up with the flat array order BuildIR produces
// ([BinOp, Left, Right]): SubtractInteger must receive Left as its
// first argument and Right as its second, giving left - right rather
// than right - left.
func TestSynthesizeBinOpLeftMinusRight(t *testing.T) {
	stack := []ir.Node{
		ir.BinOp{Op: ast.SubInt, Tipo: types.Int},
		ir.Int{Value: "5"},
		ir.Int{Value: "3"},
	}

	got := Synthesize(stack)

	outer, ok := got.(Apply)
	require.True(t, ok)
	require.Equal(t, ConstantTerm{CInteger{3}}, outer.Arg, "Right (3) must be the second SubtractInteger argument")

	inner, ok := outer.Fun.(Apply)
	require.True(t, ok)
	require.Equal(t, ConstantTerm{CInteger{5}}, inner.Arg, "Left (5) must be the first SubtractInteger argument")
	require.Equal(t, Builtin{types.SubtractInteger}, inner.Fun)
}

func TestReduceEqBoolExpandsToNestedIfThenElse(t *testing.T) {
	got := reduceEq(types.Bool, Var{"a"}, Var{"b"})

	force, ok := got.(Force)
	require.True(t, ok)
	outer, ok := force.Inner.(Apply)
	require.True(t, ok)
	// Outermost IfThenElse condition is `a`.
	cond := outer.Fun.(Apply).Fun.(Apply).Arg
	require.Equal(t, Var{"a"}, cond)
}

func TestFinalWrapperShape(t *testing.T) {
	body := Var{"result"}
	got := FinalWrapper(body)

	force, ok := got.(Force)
	require.True(t, ok)

	l3, ok := force.Inner.(Apply)
	require.True(t, ok)
	require.Equal(t, Delay{ErrorTerm{}}, l3.Arg)

	l2, ok := l3.Fun.(Apply)
	require.True(t, ok)
	require.Equal(t, Delay{ConstantTerm{CUnit{}}}, l2.Arg)

	l1, ok := l2.Fun.(Apply)
	require.True(t, ok)
	require.Equal(t, body, l1.Arg)
}

func TestDefineFuncRecursiveUsesFixpoint(t *testing.T) {
	var stack []Term
	push(&stack, Var{"rest-of-program"})
	push(&stack, Apply{Var{"loop"}, Var{"n"}})

	reduceDefineFunc(ir.DefineFunc{FuncName: "loop", Params: []string{"n"}, Recursive: true}, &stack)

	require.Len(t, stack, 1)
	app, ok := stack[0].(Apply)
	require.True(t, ok)
	lam, ok := app.Fun.(Lambda)
	require.True(t, ok)
	require.Equal(t, "loop", lam.Param)
	require.Equal(t, Var{"rest-of-program"}, lam.Body)

	// app.Arg must be the fixpoint encoding, not a bare curried Lambda.
	_, isLambda := app.Arg.(Lambda)
	require.False(t, isLambda, "recursive DefineFunc must bind through fixpoint, not a plain lambda")
	_, ok = app.Arg.(Apply)
	require.True(t, ok, "fixpoint's outer term is an Apply (self-applied selfApply)")
}

func TestDefineFuncNonRecursiveIsPlainCurriedLambda(t *testing.T) {
	var stack []Term
	push(&stack, Var{"rest-of-program"})
	push(&stack, Var{"n"})

	reduceDefineFunc(ir.DefineFunc{FuncName: "double", Params: []string{"n"}, Recursive: false}, &stack)

	require.Len(t, stack, 1)
	app, ok := stack[0].(Apply)
	require.True(t, ok)
	lam, ok := app.Arg.(Lambda)
	require.True(t, ok, "expected a plain curried Lambda value, got %T", app.Arg)
	require.Equal(t, "n", lam.Param)
}

func TestSynthesizeWhenIntDispatch(t *testing.T) {
	// when n is { 0 -> 10; 1 -> 20 }
	b := ir.NewBuilder(
		map[types.FunctionAccessKey]*ast.Function{},
		map[types.DataTypeKey]*types.DataType{},
		map[string]*types.TypeInfo{},
	)

	when := ast.When{
		ExprBase: ast.ExprBase{Type: types.Int},
		Subject: ast.Var{
			ExprBase:    ast.ExprBase{Type: types.Int},
			Name:        "n",
			Constructor: types.ValueConstructor{Type: types.Int, Variant: types.LocalVariable{}},
		},
		Clauses: []ast.Clause{
			{Pattern: ast.PatternInt{Value: "0"}, Then: ast.Int{ExprBase: ast.ExprBase{Type: types.Int}, Value: "10"}},
			{Pattern: ast.PatternInt{Value: "1"}, Then: ast.Int{ExprBase: ast.ExprBase{Type: types.Int}, Value: "20"}},
		},
	}

	var stack []ir.Node
	b.BuildIR(when, &stack, scope.Path{scope.NextID()})

	got := Synthesize(stack)

	// Top term must be an Apply binding the subject name around a term
	// containing a Force(IfThenElse) dispatch chain.
	app, ok := got.(Apply)
	require.True(t, ok, "expected the subject-binding Apply at the top, got %T", got)
	_, ok = app.Fun.(Lambda)
	require.True(t, ok)
}
