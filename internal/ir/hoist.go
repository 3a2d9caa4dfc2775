package ir

import (
	"fmt"

	"ulang/internal/scope"
	"ulang/internal/types"
)

// funcComponents is the lowered, not-yet-placed form of one hoisted
// function: its own lowered body (already self-hoisted, so any helper
// it calls is resolved within it), whether it calls itself, and its
// parameter names in declaration order.
type funcComponents struct {
	ir        []Node
	args      []string
	recursive bool
}

// Hoist walks stack in reverse, exactly like CodeGenerator::define_ir,
// finding every reference to a user-defined module function, lowering
// its body the first time it is seen, and inserting a DefineFunc node
// (plus, transitively, any functions it depends on) at the lowest
// common ancestor scope of all of that function's call sites.
func (b *Builder) Hoist(stack *[]Node) {
	toBeDefined := map[types.FunctionAccessKey]scope.Path{}
	defined := map[types.FunctionAccessKey]funcComponents{}
	placed := map[types.FunctionAccessKey]struct {
		index int
		scope scope.Path
	}{}
	placedOrder := []types.FunctionAccessKey{}

	s := *stack
	for i := len(s) - 1; i >= 0; i-- {
		node := s[i]

		if v, ok := node.(Var); ok {
			fn, ok := v.Constructor.Variant.(types.ModuleFn)
			if ok && fn.Builtin == nil {
				key := types.FunctionAccessKey{ModuleName: fn.Module, FunctionName: fn.Name}

				if b.inProgress[key] {
					// Self-reference: the enclosing DefineFunc's own
					// fixpoint binding already makes this name resolve
					// correctly, no separate hoisting needed.
					continue
				}

				if prevScope, exists := toBeDefined[key]; exists {
					toBeDefined[key] = scope.CommonAncestor(v.Scope(), prevScope)
				} else if _, alreadyLowered := defined[key]; alreadyLowered {
					toBeDefined[key] = v.Scope()
				} else {
					b.lowerHoistedFunction(key, v.Scope(), defined)
					toBeDefined[key] = v.Scope()
				}
			}
			continue
		}

		nodeScope := node.Scope()
		for key, funcScope := range toBeDefined {
			if !scope.Equal(scope.CommonAncestor(nodeScope, funcScope), nodeScope) {
				continue
			}

			if p, isPlaced := placed[key]; isPlaced {
				if scope.Equal(scope.CommonAncestor(p.scope, funcScope), nodeScope) {
					placed[key] = struct {
						index int
						scope scope.Path
					}{i, nodeScope}
					delete(toBeDefined, key)
				} else {
					toBeDefined[key] = scope.CommonAncestor(p.scope, funcScope)
				}
			} else {
				placed[key] = struct {
					index int
					scope scope.Path
				}{i, nodeScope}
				placedOrder = append(placedOrder, key)
				delete(toBeDefined, key)
			}
		}
	}

	for _, key := range placedOrder {
		p := placed[key]
		components := defined[key]

		// The function's own body was already self-hoisted in
		// lowerHoistedFunction, so any helper it calls is already
		// resolved to its own nested DefineFunc inside components.ir.
		// It is spliced in directly after the marker: reduction
		// processes the stack back-to-front, so this body reduces to
		// a term before the marker does, and the marker pops it
		// first, the untouched continuation after it second.
		inserted := make([]Node, 0, len(components.ir)+1)
		inserted = append(inserted, DefineFunc{
			base:       at(p.scope),
			FuncName:   key.FunctionName,
			ModuleName: key.ModuleName,
			Params:     components.args,
			Recursive:  components.recursive,
		})
		inserted = append(inserted, components.ir...)

		s = append(s[:p.index], append(inserted, s[p.index:]...)...)
	}

	*stack = s
}

func (b *Builder) lowerHoistedFunction(key types.FunctionAccessKey, callScope scope.Path, defined map[types.FunctionAccessKey]funcComponents) {
	fn, ok := b.Functions[key]
	if !ok {
		panic(fmt.Sprintf("ir: hoisting referenced undefined function %s.%s", key.ModuleName, key.FunctionName))
	}

	b.inProgress[key] = true
	defer delete(b.inProgress, key)

	var funcIR []Node
	b.BuildIR(fn.Body, &funcIR, callScope)

	// Self-contained recursive hoist: any helper this function calls
	// gets its own DefineFunc nested inside funcIR, at the helper's
	// LCA scope within this body alone. A helper shared by several
	// unrelated top-level functions ends up lowered and placed once per
	// caller, each in that caller's own private copy of funcIR, rather
	// than hoisted once to a single shared outer definition.
	b.Hoist(&funcIR)

	recursive := false
	for _, node := range funcIR {
		v, ok := node.(Var)
		if !ok {
			continue
		}
		modFn, ok := v.Constructor.Variant.(types.ModuleFn)
		if ok && modFn.Builtin == nil &&
			modFn.Module == key.ModuleName && modFn.Name == key.FunctionName {
			recursive = true
			break
		}
	}

	var args []string
	for _, arg := range fn.Arguments {
		if name, ok := arg.ArgName.VariableName(); ok {
			args = append(args, name)
		}
	}

	defined[key] = funcComponents{ir: funcIR, args: args, recursive: recursive}
}
