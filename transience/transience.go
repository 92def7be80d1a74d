// Package transience declares how an erased type's region parameters may
// vary when the value is viewed through the dynamic interface.
//
// A Transience is an ordered list of per-region-parameter variances. It
// governs only the legality of re-advertising regions (the upcast); the
// exact downcast performed by restore never consults it.
package transience

import (
	"strings"

	"github.com/transientgo/transient/errors"
	"github.com/transientgo/transient/scope"
)

// Variance is the declared rule for one region parameter.
type Variance uint8

const (
	// Invariant permits no substitution: the advertised region must match
	// the true region exactly. The default, and the only sound choice for
	// types exposing the region in a read/write position.
	Invariant Variance = iota
	// Covariant permits the advertised region to shorten: any scope the
	// true region outlives may stand in for it. Sound for types holding
	// the region only in shared, read-only positions.
	Covariant
	// Contravariant permits the advertised region to lengthen: any scope
	// that outlives the true region may stand in for it. Sound only for
	// types using the region solely in function-input positions.
	Contravariant
)

func (v Variance) String() string {
	switch v {
	case Invariant:
		return "invariant"
	case Covariant:
		return "covariant"
	case Contravariant:
		return "contravariant"
	default:
		return "unknown"
	}
}

// Transience is the declared variance of each region parameter, in
// declaration order. The zero value has no region parameters.
type Transience struct {
	params []Variance
}

// None declares a type with no region parameter. Its canonical unbounded
// counterpart is the type itself.
func None() Transience {
	return Transience{}
}

// Inv declares one invariant region parameter.
func Inv() Transience {
	return Transience{params: []Variance{Invariant}}
}

// Co declares one covariant region parameter.
func Co() Transience {
	return Transience{params: []Variance{Covariant}}
}

// Contra declares one contravariant region parameter.
func Contra() Transience {
	return Transience{params: []Variance{Contravariant}}
}

// Compose declares a type with several independent region parameters.
// Correctness requires the author to have proven each parameter's position
// in the declaration independently; the assertion is trusted input.
func Compose(params ...Variance) Transience {
	return Transience{params: append([]Variance(nil), params...)}
}

// Arity returns the number of region parameters.
func (t Transience) Arity() int {
	return len(t.params)
}

// Params returns a copy of the per-parameter variances.
func (t Transience) Params() []Variance {
	return append([]Variance(nil), t.params...)
}

// Tighten returns a copy with every parameter invariant. Forbidding all
// substitution is always sound, so tightening needs no per-field proof.
func (t Transience) Tighten() Transience {
	tightened := make([]Variance, len(t.params))
	return Transience{params: tightened}
}

func (t Transience) String() string {
	switch len(t.params) {
	case 0:
		return "none"
	case 1:
		return t.params[0].String()
	}
	names := make([]string, len(t.params))
	for i, v := range t.params {
		names[i] = v.String()
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// CanTranscend reports whether regions advertised as from may legally be
// re-advertised as to under this transience. A nil error means the upcast
// is sound.
func (t Transience) CanTranscend(from, to []*scope.Scope) error {
	if len(from) != len(t.params) || len(to) != len(t.params) {
		got := len(to)
		if len(from) != len(t.params) {
			got = len(from)
		}
		return errors.ArityMismatch(len(t.params), got)
	}

	for i, v := range t.params {
		switch v {
		case Invariant:
			if from[i] != to[i] {
				return errors.VarianceViolation(i, v, "advertised region must match exactly")
			}
		case Covariant:
			if !from[i].Outlives(to[i]) {
				return errors.VarianceViolation(i, v, "advertised region must be outlived by the source region")
			}
		case Contravariant:
			if !to[i].Outlives(from[i]) {
				return errors.VarianceViolation(i, v, "advertised region must outlive the source region")
			}
		}
	}

	return nil
}
