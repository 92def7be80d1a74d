package gen

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	terrors "github.com/transientgo/transient/errors"
	"github.com/transientgo/transient/transience"
)

const sampleSource = `package demo

// Frame borrows its payload from a decode buffer.
type Frame struct {
	Payload *[]byte ` + "`transient:\"region=buf\"`" + `
	Width   int
}

// Sink pushes values back into its region.
//transient:contravariant
type Sink struct {
	Push func(*string) ` + "`transient:\"region=s,input\"`" + `
}

//transient:erasable
type Config struct {
	Name string
}

// Pair is generic over its element type.
type Pair[T comparable] struct {
	First *T ` + "`transient:\"region=a\"`" + `
	Count int
}

// plain does not opt in and is skipped.
type plain struct {
	N int
}

type notAStruct int
`

func TestParse(t *testing.T) {
	decls, err := Parse("sample.go", []byte(sampleSource))
	require.NoError(t, err)
	require.Len(t, decls, 4)

	byName := map[string]Declaration{}
	for _, d := range decls {
		byName[d.Name] = d
		require.Equal(t, "demo", d.Pkg)
	}

	t.Run("tagged struct", func(t *testing.T) {
		frame, ok := byName["Frame"]
		require.True(t, ok)
		require.Equal(t, []RegionParam{{Name: "buf"}}, frame.Regions)
		require.Len(t, frame.Fields, 2)
		require.Equal(t, "buf", frame.Fields[0].Region)
		require.Equal(t, PositionRead, frame.Fields[0].Pos)
		require.Equal(t, "*[]byte", frame.Fields[0].Type)
		require.Empty(t, frame.Fields[1].Region)
	})

	t.Run("variance assertion", func(t *testing.T) {
		sink, ok := byName["Sink"]
		require.True(t, ok)
		require.Len(t, sink.Regions, 1)
		require.True(t, sink.Regions[0].Asserted)
		require.Equal(t, "contravariant", sink.Regions[0].Variance)
		require.Equal(t, PositionInput, sink.Fields[0].Pos)
	})

	t.Run("erasable marker without regions", func(t *testing.T) {
		config, ok := byName["Config"]
		require.True(t, ok)
		require.Empty(t, config.Regions)
	})

	t.Run("type parameters", func(t *testing.T) {
		pair, ok := byName["Pair"]
		require.True(t, ok)
		require.Equal(t, []TypeParam{{Name: "T", Constraint: "comparable"}}, pair.TypeParams)
		require.Equal(t, []RegionParam{{Name: "a"}}, pair.Regions)
	})

	t.Run("unmarked types are skipped", func(t *testing.T) {
		_, ok := byName["plain"]
		require.False(t, ok)
	})
}

func TestParseDeriveEmit(t *testing.T) {
	decls, err := Parse("sample.go", []byte(sampleSource))
	require.NoError(t, err)

	for _, d := range decls {
		m, err := Derive(d)
		require.NoError(t, err, d.Name)
		src, err := m.Source()
		require.NoError(t, err, d.Name)
		require.NotEmpty(t, src)
	}

	// the asserted contravariance flows through
	for _, d := range decls {
		if d.Name != "Sink" {
			continue
		}
		m, err := Derive(d)
		require.NoError(t, err)
		require.Equal(t, transience.Contravariant, m.Variance)
	}
}

func TestParse_BadTag(t *testing.T) {
	src := "package demo\n\ntype Bad struct {\n\tA *int `transient:\"region=r,sideways\"`\n}\n"
	_, err := Parse("bad.go", []byte(src))
	require.Error(t, err)
	require.True(t, stderrors.Is(err, &terrors.Error{
		Phase: terrors.PhaseDeclare,
		Kind:  terrors.KindInvalidDecl,
	}))
}

func TestParse_TagWithoutRegion(t *testing.T) {
	src := "package demo\n\ntype Bad struct {\n\tA *int `transient:\"input\"`\n}\n"
	_, err := Parse("bad.go", []byte(src))
	require.Error(t, err)
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse("broken.go", []byte("package demo\n\ntype ???"))
	require.Error(t, err)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.go")
	require.NoError(t, os.WriteFile(path, []byte(sampleSource), 0o644))

	decls, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, decls, 4)

	_, err = ParseFile(filepath.Join(dir, "missing.go"))
	require.Error(t, err)
}
