package erased

import (
	"reflect"

	"github.com/transientgo/transient"
	"github.com/transientgo/transient/transience"
)

// note holds only a shared, read-only view of borrowed data: covariant.
type note struct {
	transient.Co[note]
	Text *string
}

// page is shaped exactly like note but declared invariant, which makes it
// a same-size discrimination target.
type page struct {
	transient.Inv[page]
	Text *string
}

// hook uses its region solely in input position: contravariant.
type hook struct {
	transient.Contra[hook]
	Fn func(*string) string
}

// scalar has no region parameter at all.
type scalar struct {
	transient.Static[scalar]
	N int
}

// mixed has two independent region parameters and hand-writes its mapping,
// first contravariant, second covariant.
type mixed struct {
	Fn   func(*string) string
	Text *string
}

func (mixed) StaticType() reflect.Type { return reflect.TypeOf((*mixed)(nil)).Elem() }

func (mixed) Transience() transience.Transience {
	return transience.Compose(transience.Contravariant, transience.Covariant)
}

// closable records payload destruction through scope.Dropper.
type closable struct {
	transient.Static[closable]
	dropped *bool
}

func (c closable) Drop() { *c.dropped = true }

// sink frees its resource through a pointer receiver, the way most real
// Droppers are written.
type sink struct {
	transient.Static[sink]
	freed *bool
}

func (s *sink) Drop() { *s.freed = true }

var (
	_ = transient.Validate[note]()
	_ = transient.Validate[page]()
	_ = transient.Validate[hook]()
	_ = transient.Validate[scalar]()
	_ = transient.Validate[mixed]()
	_ = transient.Validate[closable]()
	_ = transient.Validate[sink]()
)
