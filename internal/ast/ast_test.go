package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenKind(t *testing.T) {
	t.Run("text form round trips for every kind", func(t *testing.T) {
		for i := range tokenNames {
			k := TokenKind(i)
			var got TokenKind
			require.NoError(t, got.UnmarshalText([]byte(k.String())))
			require.Equal(t, k, got)
		}
	})

	t.Run("unknown name is rejected", func(t *testing.T) {
		var k TokenKind
		require.Error(t, k.UnmarshalText([]byte("shift")))
	})

	t.Run("out of range kind prints its number", func(t *testing.T) {
		require.Equal(t, "TokenKind(99)", TokenKind(99).String())
	})
}

func TestType(t *testing.T) {
	t.Run("names parse to tags", func(t *testing.T) {
		cases := map[string]Type{"int": TypeInt, "real": TypeReal, "string": TypeString, "ref": TypeRef, "void": TypeVoid}
		for name, want := range cases {
			var got Type
			require.NoError(t, got.UnmarshalText([]byte(name)))
			require.Equal(t, want, got)
			require.Equal(t, name, want.String())
		}
	})

	t.Run("unknown name is rejected", func(t *testing.T) {
		var typ Type
		require.Error(t, typ.UnmarshalText([]byte("bool")))
	})
}

func TestDefinitions(t *testing.T) {
	d := NewDefinitions(
		[]Function{{Name: "zeta"}, {Name: "alpha", Params: []Var{{Name: "x", Type: TypeInt}}}},
		[]Var{{Name: "count", Type: TypeInt}, {Name: "banner", Type: TypeString}},
	)

	t.Run("names are sorted", func(t *testing.T) {
		require.Equal(t, []string{"alpha", "zeta"}, d.FunctionNames())
		require.Equal(t, []string{"banner", "count"}, d.GlobalNames())
	})

	t.Run("lookup finds declared entries only", func(t *testing.T) {
		f, ok := d.Function("alpha")
		require.True(t, ok)
		require.Len(t, f.Params, 1)
		_, ok = d.Function("missing")
		require.False(t, ok)
		v, ok := d.Global("count")
		require.True(t, ok)
		require.Equal(t, TypeInt, v.Type)
	})
}
