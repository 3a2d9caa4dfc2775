// Package codegen wires together the lowering, hoisting, and synthesis
// passes into the generator's single public entry point, mirroring
// CodeGenerator::generate: build the flat IR, hoist shared function
// definitions, reduce to a UPLC term, install the field-access helpers
// if anything in the body needed them, wrap the result so a failed
// validator aborts evaluation, then curry the term over the
// validator's own arguments and tag it with the program version.
package codegen

import (
	"ulang/internal/ast"
	"ulang/internal/errors"
	"ulang/internal/ir"
	"ulang/internal/scope"
	"ulang/internal/types"
	"ulang/internal/uplc"
)

// Input bundles the checked tables a single Generate call needs: the
// validator being compiled plus every function, data type, and module
// type table its body and any function it calls may reference.
type Input struct {
	Body        ast.TypedExpr
	Arguments   []ast.TypedArg
	Functions   map[types.FunctionAccessKey]*ast.Function
	DataTypes   map[types.DataTypeKey]*types.DataType
	ModuleTypes map[string]*types.TypeInfo
}

// Generate lowers and synthesizes a single validator body into a
// complete UPLC program. Any checked-AST construct the generator has
// no lowering rule for yet is reported as a normal error rather than
// an unrecoverable panic; any other panic is a genuine compiler bug
// and is left to propagate.
func Generate(in Input) (prog uplc.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ce, ok := r.(errors.CompilerError); ok {
				err = ce
				return
			}
			panic(r)
		}
	}()

	builder := ir.NewBuilder(in.Functions, in.DataTypes, in.ModuleTypes)
	uplc.SetDataTypes(in.DataTypes)

	var stack []ir.Node
	builder.BuildIR(in.Body, &stack, scope.Path{scope.NextID()})
	builder.Hoist(&stack)

	term := uplc.Synthesize(stack)

	if builder.NeedsFieldAccess() {
		term = uplc.InstallFieldAccessHelpers(term)
	}

	term = uplc.FinalWrapper(term)

	for i := len(in.Arguments) - 1; i >= 0; i-- {
		name, ok := in.Arguments[i].ArgName.VariableName()
		if !ok {
			name = "_"
		}
		term = uplc.Lambda{Param: name, Body: term}
	}

	return uplc.Program{Version: uplc.DefaultVersion, Term: term}, nil
}
