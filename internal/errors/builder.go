package errors

import (
	"fmt"
	"strings"

	"ulang/internal/ast"
)

// NotYetImplemented builds the structured error returned whenever the
// generator reaches a checked-AST or pattern construct it has no
// lowering rule for. construct should name the construct the way a
// reader of the source language would recognise it ("tuple pattern",
// "record update", "if expression").
func NotYetImplemented(construct string, pos ast.Position) CompilerError {
	return CompilerError{
		Level:    Error,
		Code:     ErrorNotYetImplemented,
		Message:  fmt.Sprintf("%s is not yet supported by the code generator", construct),
		Position: pos,
		Length:   1,
		HelpText: "this construct has no lowering rule yet; rewrite the validator to avoid it",
	}
}

// ImportCycleError builds the structured error for a module dependency
// cycle, naming every module on the witness cycle in traversal order.
func ImportCycleError(modules []string) CompilerError {
	return CompilerError{
		Level:   Error,
		Code:    ErrorImportCycle,
		Message: fmt.Sprintf("import cycle detected: %s", strings.Join(modules, " -> ")),
		Notes:   []string{"modules cannot import each other in a cycle, directly or transitively"},
	}
}

// ProjectExistsError builds the structured error `new` returns when
// its target directory is already occupied.
func ProjectExistsError(name string) CompilerError {
	return CompilerError{
		Level:   Error,
		Code:    ErrorProjectExists,
		Message: fmt.Sprintf("a directory named '%s' already exists", name),
		HelpText: "choose a different project name, or remove the existing directory first",
	}
}
