package generator

import (
	"testing"

	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/calumari/picolua/internal/ast"
)

func tok(kind ast.TokenKind) ast.Token { return ast.Token{Kind: kind} }

func TestGenBinaryExp(t *testing.T) {
	g := newTestGenerator(t)

	cases := []struct {
		name string
		typ  ast.Type
		kind ast.TokenKind
		want string
	}{
		{"or uses the eager helper", ast.TypeInt, ast.TokOr, "_or(a, b)"},
		{"and uses the eager helper", ast.TypeInt, ast.TokAnd, "_and(a, b)"},
		{"equal", ast.TypeInt, ast.TokEqual, "a == b"},
		{"not equal uses lua spelling", ast.TypeInt, ast.TokNotEqual, "a ~= b"},
		{"lesser", ast.TypeInt, ast.TokLesser, "a < b"},
		{"lesser or equal", ast.TypeInt, ast.TokLEqual, "a <= b"},
		{"greater", ast.TypeInt, ast.TokGreater, "a > b"},
		{"greater or equal is not greater", ast.TypeInt, ast.TokGEqual, "a >= b"},
		{"plus on numbers adds", ast.TypeReal, ast.TokPlus, "a+b"},
		{"plus on strings concatenates", ast.TypeString, ast.TokPlus, "a .. b"},
		{"minus", ast.TypeInt, ast.TokMinus, "a-b"},
		{"mul", ast.TypeInt, ast.TokMul, "a*b"},
		{"div", ast.TypeReal, ast.TokDiv, "a/b"},
		{"mod", ast.TypeInt, ast.TokMod, "a%b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := g.GenBinaryExp(tc.typ, tok(tc.kind), "a", "b")
			require.NoError(t, err)
			require.Equal(t, tc.want, out)
		})
	}

	t.Run("every operator kind has a rendering", func(t *testing.T) {
		for _, kind := range []ast.TokenKind{
			ast.TokOr, ast.TokAnd, ast.TokEqual, ast.TokNotEqual, ast.TokLesser, ast.TokLEqual,
			ast.TokGreater, ast.TokGEqual, ast.TokPlus, ast.TokMinus, ast.TokMul, ast.TokDiv, ast.TokMod,
		} {
			_, err := g.GenBinaryExp(ast.TypeInt, tok(kind), "a", "b")
			require.NoError(t, err, kind.String())
		}
	})

	t.Run("non operator kinds fail", func(t *testing.T) {
		for _, kind := range []ast.TokenKind{ast.TokIdentifier, ast.TokNot, ast.TokIntLiteral, ast.TokStringLiteral, ast.TokenKind(99)} {
			out, err := g.GenBinaryExp(ast.TypeInt, tok(kind), "a", "b")
			require.ErrorIs(t, err, ErrUnknownToken, kind.String())
			require.Empty(t, out)
		}
	})

	t.Run("result type decides concatenation, not the operands", func(t *testing.T) {
		out, err := g.GenBinaryExp(ast.TypeString, tok(ast.TokPlus), "1", "2")
		require.NoError(t, err)
		require.Equal(t, "1 .. 2", out)
	})

	t.Run("concatenation with numeric literals parses", func(t *testing.T) {
		L := runLua(t, g.Prelude())
		for exp, want := range map[[2]string]string{
			{"1", `"a"`}:   "1a",
			{"1", "2"}:     "12",
			{"1.5", `"a"`}: "1.5a",
			{"0x1F", "2"}:  "312",
		} {
			out, err := g.GenBinaryExp(ast.TypeString, tok(ast.TokPlus), exp[0], exp[1])
			require.NoError(t, err)
			require.Equal(t, lua.LString(want), evalLua(t, L, out), out)
		}
	})

	t.Run("subtracting a negative operand keeps a space", func(t *testing.T) {
		out, err := g.GenBinaryExp(ast.TypeInt, tok(ast.TokMinus), "a", "-1")
		require.NoError(t, err)
		require.Equal(t, "a- -1", out)
	})

	t.Run("short circuit mode uses native operators", func(t *testing.T) {
		sc := newTestGenerator(t, func(c *Config) { c.ShortCircuit = true })
		out, err := sc.GenBinaryExp(ast.TypeInt, tok(ast.TokAnd), "a", "b")
		require.NoError(t, err)
		require.Equal(t, "((_bool(a) and _bool(b)) and 1 or 0)", out)
		out, err = sc.GenBinaryExp(ast.TypeInt, tok(ast.TokOr), "a", "b")
		require.NoError(t, err)
		require.Equal(t, "((_bool(a) or _bool(b)) and 1 or 0)", out)
	})
}

func TestGenUnaryExp(t *testing.T) {
	g := newTestGenerator(t)

	t.Run("not uses the helper", func(t *testing.T) {
		out, err := g.GenUnaryExp(tok(ast.TokNot), "x")
		require.NoError(t, err)
		require.Equal(t, "_not(x)", out)
	})

	t.Run("minus is a bare prefix", func(t *testing.T) {
		out, err := g.GenUnaryExp(tok(ast.TokMinus), "x")
		require.NoError(t, err)
		require.Equal(t, "-x", out)
	})

	t.Run("double negation does not start a comment", func(t *testing.T) {
		out, err := g.GenUnaryExp(tok(ast.TokMinus), "-x")
		require.NoError(t, err)
		require.Equal(t, "- -x", out)
	})

	t.Run("other kinds fail", func(t *testing.T) {
		_, err := g.GenUnaryExp(tok(ast.TokPlus), "x")
		require.ErrorIs(t, err, ErrUnknownToken)
	})
}

func TestGenGroupExp(t *testing.T) {
	g := newTestGenerator(t)
	require.Equal(t, "(a+b)", g.GenGroupExp("a+b"))
	require.Equal(t, "(x)", g.GenGroupExp("x"))
	require.Equal(t, "((x))", g.GenGroupExp(g.GenGroupExp("x")))
}

func TestGenFunctionCall(t *testing.T) {
	g := newTestGenerator(t)

	t.Run("zero argument call", func(t *testing.T) {
		foo := ast.Function{Name: "foo", Type: ast.TypeVoid}
		require.Equal(t, "pico.foo()", g.GenFunctionCall(foo, g.GenArgs(foo, nil)))
	})

	t.Run("arguments are comma joined in order", func(t *testing.T) {
		fn := ast.Function{Name: "f", Type: ast.TypeInt, Params: []ast.Var{{Name: "a"}, {Name: "b"}, {Name: "c"}}}
		args := []ast.Expression{{Type: ast.TypeInt, Code: "1"}, {Type: ast.TypeString, Code: `"s"`}, {Type: ast.TypeInt, Code: "__pico__x"}}
		require.Equal(t, `pico.f(1, "s", __pico__x)`, g.GenFunctionCall(fn, g.GenArgs(fn, args)))
	})
}

func TestGenVar(t *testing.T) {
	g := newTestGenerator(t)
	require.Equal(t, "__pico__total", g.GenVar(ast.Var{Name: "total", Type: ast.TypeReal}))
}

func TestGenLiteral(t *testing.T) {
	g := newTestGenerator(t)

	ok := []struct {
		name string
		tok  ast.Token
		want string
	}{
		{"integer passes through", ast.Token{Kind: ast.TokIntLiteral, Data: "5"}, "5"},
		{"hex integer is not converted", ast.Token{Kind: ast.TokIntLiteral, Data: "0x1F"}, "0x1F"},
		{"real keeps its spelling", ast.Token{Kind: ast.TokRealLiteral, Data: "1.50"}, "1.50"},
		{"string is quoted", ast.Token{Kind: ast.TokStringLiteral, Data: "hi"}, `"hi"`},
		{"string escapes are left alone", ast.Token{Kind: ast.TokStringLiteral, Data: `a\"b\n`}, `"a\"b\n"`},
		{"null is nil", ast.Token{Kind: ast.TokNullLiteral}, "nil"},
	}
	for _, tc := range ok {
		t.Run(tc.name, func(t *testing.T) {
			out, err := g.GenLiteral(tc.tok)
			require.NoError(t, err)
			require.Equal(t, tc.want, out)
		})
	}

	t.Run("non literal kinds fail", func(t *testing.T) {
		for _, kind := range []ast.TokenKind{ast.TokIdentifier, ast.TokPlus, ast.TokNot} {
			out, err := g.GenLiteral(ast.Token{Kind: kind, Data: "x"})
			require.ErrorIs(t, err, ErrUnknownToken)
			require.Empty(t, out)
		}
	})

	t.Run("null fails when references are disabled", func(t *testing.T) {
		noRef := newTestGenerator(t, func(c *Config) { c.NullLiteral = false })
		_, err := noRef.GenLiteral(ast.Token{Kind: ast.TokNullLiteral})
		require.ErrorIs(t, err, ErrUnknownToken)
	})
}
