package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDeclare   Phase = "declare"   // declaration descriptor validation
	PhaseGenerate  Phase = "generate"  // mapping generation / source emission
	PhaseScope     Phase = "scope"     // scope lifecycle operations
	PhaseTranscend Phase = "transcend" // dynamic-interface region changes
)

// Kind categorizes the error
type Kind string

const (
	KindRegionParams      Kind = "region_params"      // more than one region parameter
	KindAmbiguousVariance Kind = "ambiguous_variance" // variance cannot be auto-derived
	KindArityMismatch     Kind = "arity_mismatch"     // region count does not match transience
	KindScopeClosed       Kind = "scope_closed"       // operation on a closed scope
	KindOutstandingBorrow Kind = "outstanding_borrow" // scope close with live borrows
	KindVarianceViolation Kind = "variance_violation" // illegal dynamic-interface upcast
	KindInvalidDecl       Kind = "invalid_decl"       // malformed declaration descriptor
	KindUnsupported       Kind = "unsupported"
)

// Error is a structured error with declaration and region-parameter context
type Error struct {
	Cause  error
	Value  any
	Phase  Phase
	Kind   Kind
	Decl   string // declared type name, if known
	Param  string // offending region or type parameter, if any
	Detail string
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Decl != "" {
		b.WriteString(" in ")
		b.WriteString(e.Decl)
	}
	if e.Param != "" {
		b.WriteString(" (parameter ")
		b.WriteString(e.Param)
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Decl sets the declared type name
func (b *Builder) Decl(name string) *Builder {
	b.err.Decl = name
	return b
}

// Param sets the offending parameter name
func (b *Builder) Param(name string) *Builder {
	b.err.Param = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TooManyRegions reports a declaration that carries more than one region
// parameter, naming the first parameter past the limit.
func TooManyRegions(decl, param string) *Error {
	return &Error{
		Phase:  PhaseDeclare,
		Kind:   KindRegionParams,
		Decl:   decl,
		Param:  param,
		Detail: "at most one region parameter is allowed",
	}
}

// AmbiguousVariance reports a declaration whose variance cannot be derived
// from its field positions and carries no explicit assertion.
func AmbiguousVariance(decl, param string) *Error {
	return &Error{
		Phase:  PhaseDeclare,
		Kind:   KindAmbiguousVariance,
		Decl:   decl,
		Param:  param,
		Detail: "region appears in mixed or writable positions; assert variance explicitly",
	}
}

// ArityMismatch reports a region count that disagrees with the declared
// transience.
func ArityMismatch(want, got int) *Error {
	return &Error{
		Phase:  PhaseTranscend,
		Kind:   KindArityMismatch,
		Detail: fmt.Sprintf("declared transience has %d region parameter(s), got %d scope(s)", want, got),
	}
}

// ScopeClosed reports an operation against a scope that has already ended.
func ScopeClosed(name string) *Error {
	return &Error{
		Phase:  PhaseScope,
		Kind:   KindScopeClosed,
		Detail: fmt.Sprintf("scope %q is closed", name),
	}
}

// OutstandingBorrow reports a scope close attempted while views are live.
func OutstandingBorrow(name string, shared int, exclusive bool) *Error {
	detail := fmt.Sprintf("scope %q has %d outstanding shared borrow(s)", name, shared)
	if exclusive {
		detail = fmt.Sprintf("scope %q has an outstanding exclusive borrow", name)
	}
	return &Error{
		Phase:  PhaseScope,
		Kind:   KindOutstandingBorrow,
		Detail: detail,
	}
}

// VarianceViolation reports an illegal region substitution at upcast time.
func VarianceViolation(param int, variance fmt.Stringer, detail string) *Error {
	return &Error{
		Phase:  PhaseTranscend,
		Kind:   KindVarianceViolation,
		Param:  fmt.Sprintf("#%d", param),
		Detail: fmt.Sprintf("%s parameter: %s", variance, detail),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}
