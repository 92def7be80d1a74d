package gen

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"

	terrors "github.com/transientgo/transient/errors"
	"github.com/transientgo/transient/transience"
)

func TestDerive_RegionAndTypeParam(t *testing.T) {
	decl := Declaration{
		Pkg:        "demo",
		Name:       "S",
		Regions:    []RegionParam{{Name: "a"}},
		TypeParams: []TypeParam{{Name: "T", Constraint: "any"}},
		Fields: []Field{
			{Name: "value", Type: "*T", Region: "a", Pos: PositionRead},
		},
	}

	m, err := Derive(decl)
	require.NoError(t, err)

	require.Equal(t, "a", m.Region)
	require.False(t, m.Identity())
	require.Equal(t, transience.Covariant, m.Variance)
	require.Equal(t, []string{"a", "T static"}, m.ImplParams)
	require.Equal(t, []string{"a", "T"}, m.OriginalArgs)
	require.Equal(t, []string{"static", "T"}, m.StaticArgs)
}

func TestDerive_TypeParamOnly(t *testing.T) {
	decl := Declaration{
		Pkg:        "demo",
		Name:       "S",
		TypeParams: []TypeParam{{Name: "T", Constraint: "comparable"}},
		Fields:     []Field{{Name: "value", Type: "T"}},
	}

	m, err := Derive(decl)
	require.NoError(t, err)

	require.True(t, m.Identity())
	require.Equal(t, []string{"T comparable+static"}, m.ImplParams)
	require.Equal(t, []string{"T"}, m.OriginalArgs)
	require.Equal(t, []string{"T"}, m.StaticArgs)
}

func TestDerive_NoParams(t *testing.T) {
	decl := Declaration{
		Pkg:    "demo",
		Name:   "S",
		Fields: []Field{{Name: "value", Type: "string"}},
	}

	m, err := Derive(decl)
	require.NoError(t, err)

	require.True(t, m.Identity())
	require.Empty(t, m.ImplParams)
	require.Empty(t, m.OriginalArgs)
	require.Empty(t, m.StaticArgs)
}

func TestDerive_RejectsTwoRegions(t *testing.T) {
	decl := Declaration{
		Pkg:     "demo",
		Name:    "M",
		Regions: []RegionParam{{Name: "s"}, {Name: "l"}},
	}

	_, err := Derive(decl)
	require.Error(t, err)
	require.True(t, stderrors.Is(err, &terrors.Error{
		Phase: terrors.PhaseDeclare,
		Kind:  terrors.KindRegionParams,
	}))

	var e *terrors.Error
	require.True(t, stderrors.As(err, &e))
	require.Equal(t, "l", e.Param, "the error names the offending parameter")
}

func TestDerive_Variance(t *testing.T) {
	region := []RegionParam{{Name: "r"}}

	t.Run("reads give covariance", func(t *testing.T) {
		m, err := Derive(Declaration{
			Pkg: "demo", Name: "S", Regions: region,
			Fields: []Field{
				{Name: "a", Type: "*string", Region: "r", Pos: PositionRead},
				{Name: "b", Type: "*int", Region: "r", Pos: PositionRead},
			},
		})
		require.NoError(t, err)
		require.Equal(t, transience.Covariant, m.Variance)
	})

	t.Run("inputs give contravariance", func(t *testing.T) {
		m, err := Derive(Declaration{
			Pkg: "demo", Name: "S", Regions: region,
			Fields: []Field{
				{Name: "fn", Type: "func(*string)", Region: "r", Pos: PositionInput},
			},
		})
		require.NoError(t, err)
		require.Equal(t, transience.Contravariant, m.Variance)
	})

	t.Run("unused region is invariant", func(t *testing.T) {
		m, err := Derive(Declaration{
			Pkg: "demo", Name: "S", Regions: region,
			Fields: []Field{{Name: "n", Type: "int"}},
		})
		require.NoError(t, err)
		require.Equal(t, transience.Invariant, m.Variance)
	})

	t.Run("write position refuses", func(t *testing.T) {
		_, err := Derive(Declaration{
			Pkg: "demo", Name: "S", Regions: region,
			Fields: []Field{
				{Name: "buf", Type: "*[]byte", Region: "r", Pos: PositionWrite},
			},
		})
		require.Error(t, err)
		require.True(t, stderrors.Is(err, &terrors.Error{
			Phase: terrors.PhaseDeclare,
			Kind:  terrors.KindAmbiguousVariance,
		}))
	})

	t.Run("mixed positions refuse", func(t *testing.T) {
		_, err := Derive(Declaration{
			Pkg: "demo", Name: "S", Regions: region,
			Fields: []Field{
				{Name: "a", Type: "*string", Region: "r", Pos: PositionRead},
				{Name: "fn", Type: "func(*string)", Region: "r", Pos: PositionInput},
			},
		})
		require.Error(t, err)
	})

	t.Run("assertion is trusted over shape", func(t *testing.T) {
		m, err := Derive(Declaration{
			Pkg: "demo", Name: "S",
			Regions: []RegionParam{{Name: "r", Variance: "covariant", Asserted: true}},
			Fields: []Field{
				{Name: "buf", Type: "*[]byte", Region: "r", Pos: PositionWrite},
			},
		})
		require.NoError(t, err)
		require.Equal(t, transience.Covariant, m.Variance)
	})

	t.Run("unknown assertion refuses", func(t *testing.T) {
		_, err := Derive(Declaration{
			Pkg: "demo", Name: "S",
			Regions: []RegionParam{{Name: "r", Variance: "bivariant", Asserted: true}},
		})
		require.Error(t, err)
	})
}

func TestDerive_Unnamed(t *testing.T) {
	_, err := Derive(Declaration{Pkg: "demo"})
	require.Error(t, err)
}

func TestPositionString(t *testing.T) {
	require.Equal(t, "read", PositionRead.String())
	require.Equal(t, "write", PositionWrite.String())
	require.Equal(t, "input", PositionInput.String())
	require.Equal(t, "unknown", Position(9).String())
}
