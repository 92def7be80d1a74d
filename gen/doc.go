// Package gen derives region-erasure mappings from declaration
// descriptors at generation time.
//
// The generator is a pure transformation: a Declaration describing a data
// type's region parameters, type parameters and field shapes goes in, and
// a Mapping comes out carrying the three related generic-parameter lists —
// one for the implementation header, one for the original type reference,
// one for the canonical unbounded counterpart. The transformation is
// independent of any code-generation mechanism; Mapping.Source renders the
// Go implementation, and the transientgen command wires a go/ast front-end
// to it.
//
// Declarations with more than one region parameter are rejected: erasure
// for such types must be hand-written, since variance has to be proven per
// parameter. Variance for a single region parameter is derived from the
// positions the region occurs in — all read-only positions give covariance,
// all input positions give contravariance — and anything mixed or writable
// must carry an explicit assertion, which is honored as trusted input.
package gen
