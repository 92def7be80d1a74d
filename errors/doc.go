// Package errors provides structured error types for the transient library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). Restore mismatches are deliberately absent from this taxonomy:
// a failed downcast is an expected outcome reported as (zero, false), never
// as an error.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDeclare, errors.KindRegionParams).
//		Decl("Frame").
//		Param("s").
//		Detail("at most one region parameter is allowed").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TooManyRegions("Frame", "s")
//	err := errors.ScopeClosed("request")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
