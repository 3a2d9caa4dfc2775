package uplc

// fixpoint builds a closed, self-recursive function term using the
// standard untyped-lambda-calculus self-application encoding (a Z
// combinator specialised to a named, curried function): body may
// freely reference Var{name} for recursive calls and Var{p} for each
// p in params.
//
// UPLC has no letrec; every recursive binding this generator produces
// (the CONSTR_GET_FIELD helper, and any recursive hoisted function)
// goes through this construction.
func fixpoint(name string, params []string, body Term) Term {
	inner := body
	for i := len(params) - 1; i >= 0; i-- {
		inner = Lambda{params[i], inner}
	}

	f := Lambda{name, inner}

	// The self-reference bound to name must accept the same curried
	// parameter list body does, not just one argument, so a recursive
	// call forwards every parameter through self-application before
	// the underlying body ever runs.
	var wrapped Term = Apply{Var{"__self"}, Var{"__self"}}
	for _, p := range params {
		wrapped = Apply{wrapped, Var{p}}
	}
	for i := len(params) - 1; i >= 0; i-- {
		wrapped = Lambda{params[i], wrapped}
	}

	selfApply := Lambda{"__self", Apply{f, wrapped}}

	return Apply{selfApply, selfApply}
}
