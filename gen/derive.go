package gen

import (
	"github.com/transientgo/transient/errors"
	"github.com/transientgo/transient/transience"
)

// Mapping is the derived region-erasure mapping for one declaration,
// carrying the three related generic-parameter lists the implementation
// needs: the implementation header, the original type reference, and the
// canonical unbounded counterpart reference.
type Mapping struct {
	Decl Declaration
	// Region is the single region parameter's name, or empty.
	Region string
	// Variance is the derived or asserted variance of Region.
	Variance transience.Variance
	// ImplParams is the implementation header parameter list. Every
	// retained type parameter carries the added unbounded-validity
	// constraint.
	ImplParams []string
	// OriginalArgs are the arguments of the original type reference.
	OriginalArgs []string
	// StaticArgs are the arguments of the canonical counterpart
	// reference: the region parameter replaced by the unbounded region.
	StaticArgs []string
}

// Identity reports whether the mapping is the identity: a declaration with
// no region parameter already is its own canonical counterpart.
func (m *Mapping) Identity() bool {
	return m.Region == ""
}

// Derive computes the mapping for a declaration. Declarations with more
// than one region parameter are rejected with an error naming the first
// parameter past the limit.
func Derive(decl Declaration) (*Mapping, error) {
	if decl.Name == "" {
		return nil, errors.New(errors.PhaseDeclare, errors.KindInvalidDecl).
			Detail("declaration has no name").
			Build()
	}
	if len(decl.Regions) > 1 {
		return nil, errors.TooManyRegions(decl.Name, decl.Regions[1].Name)
	}

	m := &Mapping{Decl: decl}

	for _, r := range decl.Regions {
		v, err := deriveVariance(decl, r)
		if err != nil {
			return nil, err
		}
		m.Region = r.Name
		m.Variance = v
		m.ImplParams = append(m.ImplParams, r.Name)
		m.OriginalArgs = append(m.OriginalArgs, r.Name)
		m.StaticArgs = append(m.StaticArgs, "static")
	}

	for _, tp := range decl.TypeParams {
		m.ImplParams = append(m.ImplParams, tp.Name+" "+unboundedConstraint(tp.Constraint))
		m.OriginalArgs = append(m.OriginalArgs, tp.Name)
		m.StaticArgs = append(m.StaticArgs, tp.Name)
	}

	return m, nil
}

// unboundedConstraint adds the "valid for the unbounded region" bound that
// every owned type parameter of a canonical counterpart must satisfy.
func unboundedConstraint(declared string) string {
	if declared == "" || declared == "any" {
		return "static"
	}
	return declared + "+static"
}

// deriveVariance decides the region parameter's variance from the
// positions it occurs in, unless the author asserted one explicitly. An
// assertion is trusted input and always wins.
func deriveVariance(decl Declaration, region RegionParam) (transience.Variance, error) {
	if region.Asserted {
		return parseVariance(decl, region)
	}

	var reads, writes, inputs int
	for _, f := range decl.Fields {
		if f.Region != region.Name {
			continue
		}
		switch f.Pos {
		case PositionRead:
			reads++
		case PositionWrite:
			writes++
		case PositionInput:
			inputs++
		}
	}

	switch {
	case writes > 0, reads > 0 && inputs > 0:
		return transience.Invariant, errors.AmbiguousVariance(decl.Name, region.Name)
	case inputs > 0:
		return transience.Contravariant, nil
	case reads > 0:
		return transience.Covariant, nil
	default:
		// a region no field mentions constrains nothing; forbid
		// substitution rather than guess
		return transience.Invariant, nil
	}
}

func parseVariance(decl Declaration, region RegionParam) (transience.Variance, error) {
	switch region.Variance {
	case "invariant":
		return transience.Invariant, nil
	case "covariant":
		return transience.Covariant, nil
	case "contravariant":
		return transience.Contravariant, nil
	default:
		return transience.Invariant, errors.New(errors.PhaseDeclare, errors.KindInvalidDecl).
			Decl(decl.Name).
			Param(region.Name).
			Detail("unknown variance assertion %q", region.Variance).
			Build()
	}
}
