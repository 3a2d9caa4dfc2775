package uplc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// selfApplicationArity counts how many curried arguments the
// self-application wrapper forwards, by walking the left spine of
// Applies rooted at Var{"__self"} applied to Var{"__self"}.
func selfApplicationArity(t Term) int {
	n := 0
	for {
		app, ok := t.(Apply)
		if !ok {
			return n
		}
		if inner, ok := app.Fun.(Apply); ok {
			if v1, ok1 := inner.Fun.(Var); ok1 && v1.Name == "__self" {
				if v2, ok2 := inner.Arg.(Var); ok2 && v2.Name == "__self" {
					return n + 1
				}
			}
		}
		t = app.Fun
		n++
	}
}

// TestFixpointSingleParamMatchesPriorBehaviour is the one-parameter
// case the original encoding already handled.
func TestFixpointSingleParamMatchesPriorBehaviour(t *testing.T) {
	body := Apply{Var{"v"}, ConstantTerm{CInteger{1}}}
	got := fixpoint("f", []string{"v"}, body)

	outer, ok := got.(Apply)
	require.True(t, ok)
	selfApply, ok := outer.Fun.(Lambda)
	require.True(t, ok)
	require.Equal(t, "__self", selfApply.Param)
}

// TestFixpointMultiParamForwardsEveryArgument pins the generalization
// fix: a two-parameter recursive function's self-reference must curry
// over both parameters before self-applying, not just the first —
// otherwise a recursive call would get stuck partially applied.
func TestFixpointMultiParamForwardsEveryArgument(t *testing.T) {
	body := Var{"acc"}
	got := fixpoint("sum", []string{"acc", "n"}, body)

	outer, ok := got.(Apply)
	require.True(t, ok)
	selfApply, ok := outer.Fun.(Lambda)
	require.True(t, ok)
	require.Equal(t, "__self", selfApply.Param)

	// selfApply.Body == Apply{f, wrapped}, where wrapped is the curried
	// self-application wrapper: Lambda{acc, Lambda{n, ((__self __self) acc) n}}.
	fApply, ok := selfApply.Body.(Apply)
	require.True(t, ok)

	wrapped, ok := fApply.Arg.(Lambda)
	require.True(t, ok, "expected the self-application wrapper as f's argument, got %T", fApply.Arg)
	require.Equal(t, "acc", wrapped.Param)

	wrapperLam2, ok := wrapped.Body.(Lambda)
	require.True(t, ok)
	require.Equal(t, "n", wrapperLam2.Param)

	require.Equal(t, 2, selfApplicationArity(wrapperLam2.Body),
		"expected the self-application wrapper to forward both params")
}
