package ir

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ulang/internal/ast"
	"ulang/internal/errors"
	"ulang/internal/scope"
	"ulang/internal/types"
)

func newBuilder() *Builder {
	return NewBuilder(
		map[types.FunctionAccessKey]*ast.Function{},
		map[types.DataTypeKey]*types.DataType{},
		map[string]*types.TypeInfo{},
	)
}

func localVar(name string, tipo types.Type) ast.Var {
	return ast.Var{
		ExprBase:    ast.ExprBase{Type: tipo},
		Name:        name,
		Constructor: types.ValueConstructor{Type: tipo, Variant: types.LocalVariable{}},
	}
}

func TestBuildIRLiterals(t *testing.T) {
	b := newBuilder()
	var stack []Node

	b.BuildIR(ast.Int{ExprBase: ast.ExprBase{Type: types.Int}, Value: "42"}, &stack, scope.Path{1})

	require.Len(t, stack, 1)
	n, ok := stack[0].(Int)
	require.True(t, ok)
	require.Equal(t, "42", n.Value)
}

// TestBuildCallOrder locks in the fix for a real ordering bug: the
// function term must be lowered before its arguments, since reduceCall
// expects the callee on top of the stack when the Call marker reduces.
func TestBuildCallOrder(t *testing.T) {
	b := newBuilder()
	var stack []Node

	fun := localVar("f", types.Fn{Args: []types.Type{types.Int}, Ret: types.Int})
	arg := ast.Int{ExprBase: ast.ExprBase{Type: types.Int}, Value: "1"}

	b.BuildIR(ast.Call{Fun: fun, Args: []ast.TypedExpr{arg}}, &stack, scope.Path{1})

	require.Len(t, stack, 3)
	call, ok := stack[0].(Call)
	require.True(t, ok)
	require.Equal(t, 2, call.Count)

	funNode, ok := stack[1].(Var)
	require.True(t, ok, "expected Fun lowered immediately after the Call marker, got %T", stack[1])
	require.Equal(t, "f", funNode.Name)

	argNode, ok := stack[2].(Int)
	require.True(t, ok, "expected Args lowered after Fun, got %T", stack[2])
	require.Equal(t, "1", argNode.Value)
}

func TestBuildCallMultipleArgsPreservesOrder(t *testing.T) {
	b := newBuilder()
	var stack []Node

	fun := localVar("f", types.Fn{Args: []types.Type{types.Int, types.Int}, Ret: types.Int})
	a1 := ast.Int{ExprBase: ast.ExprBase{Type: types.Int}, Value: "1"}
	a2 := ast.Int{ExprBase: ast.ExprBase{Type: types.Int}, Value: "2"}

	b.BuildIR(ast.Call{Fun: fun, Args: []ast.TypedExpr{a1, a2}}, &stack, scope.Path{1})

	require.Len(t, stack, 4)
	_, ok := stack[0].(Call)
	require.True(t, ok)
	_, ok = stack[1].(Var)
	require.True(t, ok)
	require.Equal(t, "1", stack[2].(Int).Value)
	require.Equal(t, "2", stack[3].(Int).Value)
}

func TestBuildIRBinOpOrder(t *testing.T) {
	b := newBuilder()
	var stack []Node

	left := ast.Int{ExprBase: ast.ExprBase{Type: types.Int}, Value: "1"}
	right := ast.Int{ExprBase: ast.ExprBase{Type: types.Int}, Value: "2"}

	b.BuildIR(ast.BinOpExpr{
		ExprBase: ast.ExprBase{Type: types.Int},
		Op:       ast.AddInt,
		Left:     left,
		Right:    right,
	}, &stack, scope.Path{1})

	require.Len(t, stack, 3)
	op, ok := stack[0].(BinOp)
	require.True(t, ok)
	require.Equal(t, ast.AddInt, op.Op)
	require.Equal(t, "1", stack[1].(Int).Value)
	require.Equal(t, "2", stack[2].(Int).Value)
}

// TestBuildIRAssignmentOrder locks in the fix for the let-binding pop
// order bug: the value must sit between the Assignment marker and the
// continuation in the flat array so reduce's ir.Assignment case (which
// pops right-hand-side first, then the continuation) lines up.
func TestBuildIRAssignmentOrder(t *testing.T) {
	b := newBuilder()
	var stack []Node

	assign := ast.Assignment{
		ExprBase: ast.ExprBase{Type: types.Int},
		Pattern:  ast.PatternVar{Name: "x"},
		Kind:     ast.Let,
		Value:    ast.Int{ExprBase: ast.ExprBase{Type: types.Int}, Value: "7"},
	}

	b.BuildIR(assign, &stack, scope.Path{1})

	require.Len(t, stack, 2)
	a, ok := stack[0].(Assignment)
	require.True(t, ok)
	require.Equal(t, "x", a.Name)
	require.Equal(t, "7", stack[1].(Int).Value)
}

func TestBuildIRAnonymousFnNotImplemented(t *testing.T) {
	b := newBuilder()
	var stack []Node

	defer func() {
		r := recover()
		require.NotNil(t, r)
		ce, ok := r.(errors.CompilerError)
		require.True(t, ok, "expected a CompilerError panic, got %T", r)
		require.Equal(t, errors.ErrorNotYetImplemented, ce.Code)
	}()

	b.BuildIR(ast.Fn{}, &stack, scope.Path{1})
}

func TestBuildWhenTwoClausesEmitsClauseAndFinallyMarkers(t *testing.T) {
	b := newBuilder()
	var stack []Node

	when := ast.When{
		ExprBase: ast.ExprBase{Type: types.Int},
		Subject:  localVar("n", types.Int),
		Clauses: []ast.Clause{
			{Pattern: ast.PatternInt{Value: "0"}, Then: ast.Int{ExprBase: ast.ExprBase{Type: types.Int}, Value: "10"}},
			{Pattern: ast.PatternInt{Value: "1"}, Then: ast.Int{ExprBase: ast.ExprBase{Type: types.Int}, Value: "20"}},
		},
	}

	b.BuildIR(when, &stack, scope.Path{1})

	var sawClause, sawFinally bool
	for _, n := range stack {
		switch n.(type) {
		case Clause:
			sawClause = true
		case Finally:
			sawFinally = true
		}
	}
	require.True(t, sawClause, "expected a Clause marker for the non-final arm")
	require.True(t, sawFinally, "expected a Finally marker for the final arm")

	_, ok := stack[0].(When)
	require.True(t, ok, "expected the When marker first in the flat sequence, got %T", stack[0])
}
