package erased

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/transientgo/transient/scope"
)

func TestMutRoundTrip(t *testing.T) {
	owner := "qwer"
	s := scope.Enter("owner")

	original := note{Text: &owner}
	view := EraseMut(&original, s)

	restored, ok := RestoreMut[note](view)
	require.True(t, ok)
	require.Same(t, &original, restored)

	// mutation through the restored pointer reaches the source
	replacement := "mutated"
	restored.Text = &replacement
	require.Same(t, &replacement, original.Text)

	view.Release()
	require.NoError(t, s.Close())
}

func TestMutDiscrimination(t *testing.T) {
	owner := "qwer"
	s := scope.Enter("owner")
	defer func() { require.NoError(t, s.Close()) }()

	original := note{Text: &owner}
	view := EraseMut(&original, s)
	defer view.Release()

	require.True(t, IsMut[note](view))
	require.False(t, IsMut[page](view))

	_, ok := RestoreMut[page](view)
	require.False(t, ok)

	restored, ok := RestoreMut[note](view)
	require.True(t, ok)
	require.Same(t, &original, restored)
}

func TestMutExclusivity(t *testing.T) {
	owner := "alone"
	s := scope.Enter("owner")

	original := note{Text: &owner}
	view := EraseMut(&original, s)

	require.Panics(t, func() { EraseRef(&original, s) }, "no shared view beside an exclusive one")
	require.Panics(t, func() { EraseMut(&original, s) }, "no second exclusive view")

	err := s.Close()
	require.Error(t, err, "the exclusive borrow keeps the scope open")

	view.Release()
	require.NoError(t, s.Close())
}

func TestMutReleaseIdempotent(t *testing.T) {
	owner := "once"
	s := scope.Enter("owner")

	original := note{Text: &owner}
	view := EraseMut(&original, s)

	view.Release()
	view.Release()

	_, exclusive := s.Borrows()
	require.False(t, exclusive)
	require.NoError(t, s.Close())
}

func TestMutUseAfterReleasePanics(t *testing.T) {
	owner := "late"
	s := scope.Enter("owner")
	defer func() { require.NoError(t, s.Close()) }()

	original := note{Text: &owner}
	view := EraseMut(&original, s)
	view.Release()

	require.Panics(t, func() { RestoreMut[note](view) })
	require.Error(t, view.Transcend(s))

	_, ok := view.Inner()
	require.False(t, ok)
	_, ok = view.InnerMut()
	require.False(t, ok)
}

func TestMutTranscend(t *testing.T) {
	long := scope.Enter("long")
	short := long.Enter("short")

	view := EraseMut(&hook{Fn: func(s *string) string { return *s }}, short)

	// contravariant: the advertised region may lengthen
	require.NoError(t, view.Transcend(long))
	require.Error(t, view.Transcend(short))

	view.Release()
	require.NoError(t, short.Close())
	require.NoError(t, long.Close())
}

func TestMutStaticInner(t *testing.T) {
	forever := "forever"
	original := note{Text: &forever}
	view := EraseMut(&original, scope.Static)
	defer view.Release()

	inner, ok := view.InnerMut()
	require.True(t, ok)

	replacement := "changed"
	inner.(*note).Text = &replacement
	require.Same(t, &replacement, original.Text)
}
