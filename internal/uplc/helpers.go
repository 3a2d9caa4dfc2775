package uplc

import "ulang/internal/types"

// Names of the small closed UPLC helper bindings installed around the
// program body whenever field access (RecordAccess or a constructor
// FieldsExpose) is used anywhere in it.
const (
	constrFieldsExposerName = "__constr_fields_exposer"
	constrGetFieldName      = "__constr_get_field"
)

// ConstrData builds the term for constructing a zero-argument data
// constructor value with the given tag — the only shape of
// constructor this generator builds directly (constructors that carry
// arguments go through Call + FieldsExpose/RecordAccess on the
// caller's side instead, see internal/ir's placeholder Constr/Fields
// node kinds).
func ConstrData(tag int64, fields []Constant) Term {
	return Apply2(
		Builtin{types.ConstrData},
		ConstantTerm{CInteger{tag}},
		ConstantTerm{CProtoList{ElemType: "data", Elements: fields}},
	)
}

// constrIndexExposer extracts a constructor's tag out of its Data
// encoding: `fstPair (unConstrData subject)`.
func constrIndexExposer(subject Term) Term {
	return Apply{
		BuiltinTerm(types.FstPair),
		Apply{Builtin{types.UnConstrData}, subject},
	}
}

// constrFieldsExposerBody extracts a constructor's field list out of
// its Data encoding: `sndPair (unConstrData subject)`.
func constrFieldsExposerBody(subject Term) Term {
	return Apply{
		BuiltinTerm(types.SndPair),
		Apply{Builtin{types.UnConstrData}, subject},
	}
}

// constrGetFieldBody walks a field list by recursively applying
// TailList, then takes HeadList once the requested index is reached:
// `get_field fields i = if i == 0 then headList fields else get_field (tailList fields) (i-1)`.
// Bound as a small self-recursive helper via fixpoint so RecordAccess can
// reference it by name regardless of how deep the requested field is.
func constrGetFieldBody(fields, index Term) Term {
	return Apply3(
		ForceWrap(Builtin{types.IfThenElse}),
		Apply2(Builtin{types.EqualsInteger}, index, ConstantTerm{CInteger{0}}),
		Delay{Apply{BuiltinTerm(types.HeadList), fields}},
		Delay{Apply{
			Apply{Var{constrGetFieldName}, Apply{BuiltinTerm(types.TailList), fields}},
			Apply2(Builtin{types.SubtractInteger}, index, ConstantTerm{CInteger{1}}),
		}},
	)
}

// InstallFieldAccessHelpers wraps body in let-bindings for the two
// named helpers RecordAccess/FieldsExpose reductions reference,
// exactly mirroring generate's "if needs_field_access" step: the
// fields exposer is bound innermost (closest to body), the recursive
// field getter outside it.
func InstallFieldAccessHelpers(body Term) Term {
	withFieldsExposer := Apply{
		Lambda{constrFieldsExposerName, body},
		Lambda{"__x", constrFieldsExposerBody(Var{"__x"})},
	}

	getField := fixpoint(constrGetFieldName, []string{"__fields", "__index"},
		constrGetFieldBody(Var{"__fields"}, Var{"__index"}))

	return Apply{
		Lambda{constrGetFieldName, withFieldsExposer},
		getField,
	}
}

// FinalWrapper wraps a validator's result so that a non-True boolean
// result fails evaluation: `ifThenElse result () (error ())`, forced,
// which is how validators communicate failure in UPLC (evaluation
// must error, there is no boolean return channel).
func FinalWrapper(body Term) Term {
	return ForceWrap(Apply3(
		ForceWrap(Builtin{types.IfThenElse}),
		body,
		Delay{ConstantTerm{CUnit{}}},
		Delay{ErrorTerm{}},
	))
}
