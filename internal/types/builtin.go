package types

// BuiltinFn is one of the fixed set of UPLC built-in primitives the
// generator knows how to reduce to. It is a plain enum — the term-level
// representation (including the Force wrapping polymorphic builtins
// need) lives in internal/uplc.
type BuiltinFn int

const (
	AddInteger BuiltinFn = iota
	SubtractInteger
	MultiplyInteger
	DivideInteger
	ModInteger
	EqualsInteger
	LessThanInteger
	LessThanEqualsInteger
	EqualsString
	EqualsByteString
	EqualsData
	HeadList
	TailList
	MkCons
	ChooseList
	IfThenElse
	ChooseUnit
	Trace
	ConstrData
	MkPairData
	UnConstrData
	UnIData
	UnBData
	UnListData
	UnMapData
	MapData
	ListData
	FstPair
	SndPair
)

var builtinNames = map[BuiltinFn]string{
	AddInteger:            "AddInteger",
	SubtractInteger:       "SubtractInteger",
	MultiplyInteger:       "MultiplyInteger",
	DivideInteger:         "DivideInteger",
	ModInteger:            "ModInteger",
	EqualsInteger:         "EqualsInteger",
	LessThanInteger:       "LessThanInteger",
	LessThanEqualsInteger: "LessThanEqualsInteger",
	EqualsString:          "EqualsString",
	EqualsByteString:      "EqualsByteString",
	EqualsData:            "EqualsData",
	HeadList:              "HeadList",
	TailList:              "TailList",
	MkCons:                "MkCons",
	ChooseList:            "ChooseList",
	IfThenElse:            "IfThenElse",
	ChooseUnit:            "ChooseUnit",
	Trace:                 "Trace",
	ConstrData:            "ConstrData",
	MkPairData:            "MkPairData",
	UnConstrData:          "UnConstrData",
	UnIData:               "UnIData",
	UnBData:               "UnBData",
	UnListData:            "UnListData",
	UnMapData:             "UnMapData",
	MapData:               "MapData",
	ListData:              "ListData",
	FstPair:               "FstPair",
	SndPair:               "SndPair",
}

func (b BuiltinFn) String() string {
	if name, ok := builtinNames[b]; ok {
		return name
	}
	return "unknown"
}

// polymorphicForceCount is the number of type-parameter Forces each
// polymorphic builtin needs before it can be applied, mirroring
// DefaultFunction::force_count in the reference implementation.
var polymorphicForceCount = map[BuiltinFn]int{
	MkCons:      1,
	HeadList:    1,
	TailList:    1,
	ChooseList:  2,
	IfThenElse:  1,
	ChooseUnit:  1,
	Trace:       1,
	FstPair:     2,
	SndPair:     2,
}

// ForceCount returns how many times a builtin term must be wrapped in
// Force before it can be applied to arguments.
func (b BuiltinFn) ForceCount() int {
	return polymorphicForceCount[b]
}
