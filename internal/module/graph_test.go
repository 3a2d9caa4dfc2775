package module

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ulang/internal/errors"
)

func TestSequencePlacesDependenciesBeforeDependents(t *testing.T) {
	g := NewGraph()
	g.AddModule("app", []string{"util"})
	g.AddModule("util", nil)

	seq, err := g.Sequence()
	require.NoError(t, err)
	require.Equal(t, []string{"util", "app"}, seq)
}

func TestSequenceIgnoresUnknownDependency(t *testing.T) {
	g := NewGraph()
	g.AddModule("app", []string{"missing"})

	seq, err := g.Sequence()
	require.NoError(t, err)
	require.Equal(t, []string{"app"}, seq)
}

func TestSequenceDetectsImportCycle(t *testing.T) {
	g := NewGraph()
	g.AddModule("a", []string{"b"})
	g.AddModule("b", []string{"c"})
	g.AddModule("c", []string{"a"})

	_, err := g.Sequence()
	require.Error(t, err)

	ce, ok := err.(errors.CompilerError)
	require.True(t, ok, "expected a CompilerError, got %T", err)
	require.Equal(t, errors.ErrorImportCycle, ce.Code)
}

func TestSequenceNoDependenciesIncludesEveryModule(t *testing.T) {
	g := NewGraph()
	g.AddModule("a", nil)
	g.AddModule("b", nil)

	seq, err := g.Sequence()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "b"}, seq)
}
