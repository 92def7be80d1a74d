package gen

// Position classifies where a region occurs within a field.
type Position uint8

const (
	// PositionRead marks a shared, read-only occurrence.
	PositionRead Position = iota
	// PositionWrite marks an occurrence that can be written through.
	PositionWrite
	// PositionInput marks a function-input (negative) occurrence.
	PositionInput
)

func (p Position) String() string {
	switch p {
	case PositionRead:
		return "read"
	case PositionWrite:
		return "write"
	case PositionInput:
		return "input"
	default:
		return "unknown"
	}
}

// Declaration describes a data type for which an erasure mapping is to be
// generated. It is language-independent: the go/ast front-end in this
// package produces Declarations from Go source, but any front-end will do.
type Declaration struct {
	// Pkg is the package the declaration lives in, used only by emission.
	Pkg string
	// Name is the declared type's name.
	Name string
	// Regions lists the region parameters in declaration order.
	Regions []RegionParam
	// TypeParams lists the fully-owned type parameters.
	TypeParams []TypeParam
	// Fields lists the field shapes the variance derivation inspects.
	Fields []Field
}

// RegionParam is one declared region parameter.
type RegionParam struct {
	Name string
	// Variance is an explicit assertion by the type author. It is trusted
	// input: the generator performs no proof of it.
	Variance string
	// Asserted reports whether Variance was explicitly given.
	Asserted bool
}

// TypeParam is one owned type parameter.
type TypeParam struct {
	Name string
	// Constraint is the declared constraint; empty means unconstrained.
	Constraint string
}

// Field is one field shape. Only fields that mention a region parameter
// influence variance derivation.
type Field struct {
	Name string
	Type string
	// Region names the region parameter this field's extent is bounded by,
	// or is empty for fully-owned fields.
	Region string
	// Pos classifies how the region occurs in the field.
	Pos Position
}
