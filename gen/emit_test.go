package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSource_Covariant(t *testing.T) {
	m, err := Derive(Declaration{
		Pkg:     "demo",
		Name:    "Frame",
		Regions: []RegionParam{{Name: "r"}},
		Fields: []Field{
			{Name: "Payload", Type: "*[]byte", Region: "r", Pos: PositionRead},
		},
	})
	require.NoError(t, err)

	src, err := m.Source()
	require.NoError(t, err)
	code := string(src)

	require.True(t, strings.HasPrefix(code, "// Code generated by transientgen. DO NOT EDIT."))
	require.Contains(t, code, "package demo")
	require.Contains(t, code, "func (Frame) StaticType() reflect.Type")
	require.Contains(t, code, "reflect.TypeFor[Frame]()")
	require.Contains(t, code, "transience.Co()")
	require.Contains(t, code, "transient.Validate[Frame]()")
}

func TestSource_Identity(t *testing.T) {
	m, err := Derive(Declaration{Pkg: "demo", Name: "Config"})
	require.NoError(t, err)

	src, err := m.Source()
	require.NoError(t, err)
	code := string(src)

	require.Contains(t, code, "transience.None()")
	require.Contains(t, code, "no region")
}

func TestSource_Generic(t *testing.T) {
	m, err := Derive(Declaration{
		Pkg:        "demo",
		Name:       "Cursor",
		Regions:    []RegionParam{{Name: "a"}},
		TypeParams: []TypeParam{{Name: "T", Constraint: "any"}},
		Fields: []Field{
			{Name: "value", Type: "*T", Region: "a", Pos: PositionRead},
		},
	})
	require.NoError(t, err)

	src, err := m.Source()
	require.NoError(t, err)
	code := string(src)

	require.Contains(t, code, "func (Cursor[T]) StaticType() reflect.Type")
	require.Contains(t, code, "reflect.TypeFor[Cursor[T]]()")
	require.NotContains(t, code, "Validate", "generic declarations cannot be validated without instantiation")
	require.NotContains(t, code, `"github.com/transientgo/transient"`+"\n")
}

func TestSource_Contravariant(t *testing.T) {
	m, err := Derive(Declaration{
		Pkg:     "demo",
		Name:    "Sink",
		Regions: []RegionParam{{Name: "s"}},
		Fields: []Field{
			{Name: "fn", Type: "func(*string)", Region: "s", Pos: PositionInput},
		},
	})
	require.NoError(t, err)

	src, err := m.Source()
	require.NoError(t, err)
	require.Contains(t, string(src), "transience.Contra()")
}

func TestSource_NoPackage(t *testing.T) {
	m, err := Derive(Declaration{Name: "Nameless"})
	require.NoError(t, err)

	_, err = m.Source()
	require.Error(t, err)
}
