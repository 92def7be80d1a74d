package transient

import (
	"fmt"
	"reflect"

	"github.com/transientgo/transient/transience"
)

// Tag is the runtime identifier of a wrapper's stored type: the tag of the
// canonical unbounded counterpart Static(T). Tags are stable and comparable
// within one program run and deliberately blind to region instantiation —
// two erasures of the same type at different scopes carry equal tags.
type Tag = reflect.Type

// Transient is the erasure contract. Implementing it declares the
// region-erasure mapping for a type: StaticType names the canonical
// unbounded counterpart used for storage, and Transience declares how each
// region parameter may vary when the value is viewed through the dynamic
// interface.
//
// In Go the widen and narrow conversions are interface boxing and unboxing;
// both are representation-preserving and perform no check of their own. All
// runtime safety lives in the wrappers of package erased.
//
// Most types declare the mapping by embedding one of the zero-size markers
// (Static, Inv, Co, Contra) or by running transientgen over the
// declaration. Types with more than one independent region parameter must
// hand-write both methods, using transience.Compose, and carry the proof
// obligation for each parameter themselves. Implement with value receivers
// so the zero value satisfies the interface.
type Transient interface {
	// StaticType returns the runtime tag of Static(T).
	StaticType() reflect.Type
	// Transience returns the declared variance of each region parameter.
	Transience() transience.Transience
}

// Static marks a type with no region parameter. Its canonical unbounded
// counterpart is the type itself and the mapping is the identity.
type Static[T any] struct{}

func (Static[T]) StaticType() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

func (Static[T]) Transience() transience.Transience { return transience.None() }

// Inv marks a type with one invariant region parameter. The safe default
// when the region's position in the declaration is unproven.
type Inv[T any] struct{}

func (Inv[T]) StaticType() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

func (Inv[T]) Transience() transience.Transience { return transience.Inv() }

// Co marks a type with one covariant region parameter. Sound only when the
// region occurs solely in shared, read-only positions.
type Co[T any] struct{}

func (Co[T]) StaticType() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

func (Co[T]) Transience() transience.Transience { return transience.Co() }

// Contra marks a type with one contravariant region parameter. Sound only
// when the region occurs solely in function-input positions.
type Contra[T any] struct{}

func (Contra[T]) StaticType() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

func (Contra[T]) Transience() transience.Transience { return transience.Contra() }

// TagFor returns the type tag a wrapper holding an erased T would carry.
func TagFor[T Transient]() Tag {
	var zero T
	return zero.StaticType()
}

// TransienceOf returns the transience T declares.
func TransienceOf[T Transient]() transience.Transience {
	var zero T
	return zero.Transience()
}

// Validate should be called once per declared type to verify the erasure
// contract is implemented consistently:
//
//	type Frame struct {
//	    transient.Co[Frame]
//	    Payload []byte
//	}
//
//	var _ = transient.Validate[Frame]()
//
// It identifies mistakes such as parameterizing a marker with the wrong
// type, which would otherwise silently produce wrappers whose tag never
// matches a restore target.
func Validate[T Transient]() struct{} {
	var zero T

	declared := zero.StaticType()
	if declared == nil {
		panic(fmt.Sprintf("transient: %s declares a nil static type", reflect.TypeOf((*T)(nil)).Elem()))
	}

	actual := reflect.TypeOf((*T)(nil)).Elem()
	if declared != actual {
		panic(fmt.Sprintf(
			"transient: %s declares static type %s; the canonical counterpart of a Go type is always the type itself",
			actual, declared,
		))
	}

	return struct{}{}
}
