package generator

import (
	"fmt"
	"strings"

	"github.com/calumari/picolua/internal/ast"
)

var infixOps = map[ast.TokenKind]string{
	ast.TokEqual:    " == ",
	ast.TokNotEqual: " ~= ",
	ast.TokLesser:   " < ",
	ast.TokLEqual:   " <= ",
	ast.TokGreater:  " > ",
	ast.TokGEqual:   " >= ",
	ast.TokMinus:    "-",
	ast.TokMul:      "*",
	ast.TokDiv:      "/",
	ast.TokMod:      "%",
}

// GenBinaryExp joins two rendered operands. expType is the static type of
// the result; it alone decides whether plus adds or concatenates.
func (g *Generator) GenBinaryExp(expType ast.Type, tok ast.Token, left, right string) (string, error) {
	switch tok.Kind {
	case ast.TokOr, ast.TokAnd:
		return g.logical(tok.Kind, left, right), nil
	case ast.TokPlus:
		// spaced so a numeric left operand does not lex as "1.."
		if expType == ast.TypeString {
			return left + " .. " + right, nil
		}
		return left + "+" + right, nil
	}
	op, ok := infixOps[tok.Kind]
	if !ok {
		return "", fmt.Errorf("binary operator: %w %s", ErrUnknownToken, tok.Kind)
	}
	if op == "-" {
		return left + op + spaceNegative(right), nil
	}
	return left + op + right, nil
}

// logical renders and/or as an integer 1 or 0. The default helpers evaluate
// both operands; ShortCircuit leaves the right operand unevaluated when the
// left one decides.
func (g *Generator) logical(kind ast.TokenKind, left, right string) string {
	if g.cfg.ShortCircuit {
		op := " and "
		if kind == ast.TokOr {
			op = " or "
		}
		return "((" + g.truth(left) + op + g.truth(right) + ") and 1 or 0)"
	}
	helper := helperAnd
	if kind == ast.TokOr {
		helper = helperOr
	}
	return helper + "(" + left + ", " + right + ")"
}

func (g *Generator) GenUnaryExp(tok ast.Token, exp string) (string, error) {
	switch tok.Kind {
	case ast.TokNot:
		return helperNot + "(" + exp + ")", nil
	case ast.TokMinus:
		return "-" + spaceNegative(exp), nil
	}
	return "", fmt.Errorf("unary operator: %w %s", ErrUnknownToken, tok.Kind)
}

// spaceNegative keeps a leading minus from fusing with a preceding one:
// Lua reads "--" as the start of a comment.
func spaceNegative(exp string) string {
	if strings.HasPrefix(exp, "-") {
		return " " + exp
	}
	return exp
}

func (g *Generator) GenGroupExp(exp string) string {
	return "(" + exp + ")"
}

// GenFunctionCall renders a call to fn; args comes from GenArgs.
func (g *Generator) GenFunctionCall(fn ast.Function, args string) string {
	return g.FuncID(fn.Name) + args
}

func (g *Generator) GenArgs(_ ast.Function, args []ast.Expression) string {
	codes := make([]string, len(args))
	for i, a := range args {
		codes[i] = a.Code
	}
	return "(" + strings.Join(codes, ", ") + ")"
}

func (g *Generator) GenVar(v ast.Var) string {
	return g.VarID(v.Name)
}

// GenLiteral renders a literal token. Numbers pass through as written.
// String data is quoted but not escaped: the lexer hands it over already
// escaped.
func (g *Generator) GenLiteral(tok ast.Token) (string, error) {
	switch tok.Kind {
	case ast.TokIntLiteral, ast.TokRealLiteral:
		return tok.Data, nil
	case ast.TokStringLiteral:
		return `"` + tok.Data + `"`, nil
	case ast.TokNullLiteral:
		if g.cfg.NullLiteral {
			return "nil", nil
		}
	}
	return "", fmt.Errorf("literal: %w %s", ErrUnknownToken, tok.Kind)
}
