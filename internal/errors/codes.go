package errors

// Error codes for the code generator.
//
// Error code ranges:
// E0900-E0929: generator-reported, recoverable construct errors
// E0930-E0949: module dependency graph errors
// E0950-E0969: project scaffolding errors
//
// A violated internal invariant (stack underflow, an unreachable
// pattern arm, a malformed scope path) is never reported through this
// range — it is a compiler bug and panics instead of producing a
// CompilerError.

const (
	// E0900: a checked-AST construct the generator has not implemented
	// a lowering rule for yet (see internal/ir's placeholder node kinds).
	ErrorNotYetImplemented = "E0900"

	// E0930: the module dependency graph contains a cycle.
	ErrorImportCycle = "E0930"

	// E0950: `new` was asked to scaffold a project into a directory
	// that already exists.
	ErrorProjectExists = "E0950"
)
