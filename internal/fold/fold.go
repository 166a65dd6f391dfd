// Package fold walks a decoded program post-order and feeds each node's
// rendered children to the generator, producing the final Lua text.
package fold

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/calumari/picolua/internal/ast"
	"github.com/calumari/picolua/internal/generator"
)

var (
	ErrMalformedNode = errors.New("malformed node")
	ErrUndefined     = errors.New("undefined function")
)

// Folder renders whole programs. It keeps no state between calls.
type Folder struct {
	gen    *generator.Generator
	indent bool
	log    *slog.Logger
}

type Option func(*Folder)

// WithIndent indents nested blocks with the generator's indent unit.
func WithIndent() Option {
	return func(f *Folder) { f.indent = true }
}

func WithLogger(l *slog.Logger) Option {
	return func(f *Folder) { f.log = l }
}

func New(gen *generator.Generator, opts ...Option) *Folder {
	f := &Folder{gen: gen, log: slog.New(slog.DiscardHandler)}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Definitions collects the functions and global variables file declares.
func Definitions(file *File) ast.Definitions {
	fns := make([]ast.Function, 0, len(file.Functions))
	for _, d := range file.Functions {
		fns = append(fns, d.function())
	}
	var globals []ast.Var
	for _, s := range file.Main {
		if s.Var != nil && s.Var.Global {
			globals = append(globals, ast.Var{Name: s.Var.Name, Type: s.Var.Type})
		}
	}
	return ast.NewDefinitions(fns, globals)
}

// Program renders file. Functions come first in declaration order, then the
// top-level statements.
func (f *Folder) Program(ctx context.Context, file *File) (string, error) {
	defs := Definitions(file)
	functions := make([]string, 0, len(file.Functions))
	for _, d := range file.Functions {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		w := f.newWalker(defs, d.Type)
		for _, p := range d.Params {
			w.scope[p.Name] = p.Type
		}
		body, err := w.block(d.Body)
		if err != nil {
			return "", fmt.Errorf("function %s: %w", d.Name, err)
		}
		functions = append(functions, f.gen.GenFunctionDef(d.function(), body))
		f.log.Debug("folded function", "name", d.Name, "params", len(d.Params))
	}

	w := f.newWalker(defs, ast.TypeVoid)
	program := make([]string, 0, len(file.Main))
	for i := range file.Main {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := w.stmt(&file.Main[i])
		if err != nil {
			return "", fmt.Errorf("statement %d: %w", i+1, err)
		}
		program = append(program, text)
	}
	f.log.Debug("folded program", "functions", len(functions), "statements", len(program))
	return f.gen.GenProgram(functions, program, defs), nil
}

// walker carries the per-function bookkeeping of one Program call.
type walker struct {
	*Folder
	defs  ast.Definitions
	ret   ast.Type
	scope map[string]ast.Type
}

func (f *Folder) newWalker(defs ast.Definitions, ret ast.Type) *walker {
	w := &walker{Folder: f, defs: defs, ret: ret, scope: map[string]ast.Type{}}
	for name, v := range defs.Globals {
		w.scope[name] = v.Type
	}
	return w
}

func (w *walker) block(stmts []Stmt) (string, error) {
	var b strings.Builder
	for i := range stmts {
		text, err := w.stmt(&stmts[i])
		if err != nil {
			return "", err
		}
		b.WriteString(text)
	}
	if !w.indent {
		return b.String(), nil
	}
	return indentLines(b.String(), w.gen.GenIndent(1)), nil
}

func indentLines(block, unit string) string {
	lines := strings.SplitAfter(block, "\n")
	var b strings.Builder
	for _, l := range lines {
		if l != "" && l != "\n" {
			b.WriteString(unit)
		}
		b.WriteString(l)
	}
	return b.String()
}

func (w *walker) stmt(s *Stmt) (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	g := w.gen
	switch {
	case s.Expr != nil:
		x, err := w.expr(s.Expr)
		if err != nil {
			return "", err
		}
		return g.GenStatement(x.Code), nil
	case s.Var != nil:
		x, err := w.expr(&s.Var.Value)
		if err != nil {
			return "", fmt.Errorf("var %s: %w", s.Var.Name, err)
		}
		v := ast.Var{Name: s.Var.Name, Type: orType(s.Var.Type, x.Type)}
		w.scope[v.Name] = v.Type
		return g.GenStatement(g.GenVarDef(v, x.Type, x.Code, s.Var.Global)), nil
	case s.Assign != nil:
		x, err := w.expr(&s.Assign.Value)
		if err != nil {
			return "", fmt.Errorf("assign %s: %w", s.Assign.Name, err)
		}
		v := ast.Var{Name: s.Assign.Name, Type: w.scope[s.Assign.Name]}
		return g.GenStatement(g.GenAssignment(v, x.Type, x.Code)), nil
	case s.If != nil:
		return w.ifStmt(s.If)
	case s.For != nil:
		return w.forStmt(s.For)
	case s.While != nil:
		cond, err := w.expr(&s.While.Cond)
		if err != nil {
			return "", err
		}
		body, err := w.block(s.While.Body)
		if err != nil {
			return "", err
		}
		return g.GenWhile(cond.Code, body, g.GenEnd()), nil
	default:
		x, err := w.expr(s.Return)
		if err != nil {
			return "", err
		}
		return g.GenReturn(w.ret, x.Code), nil
	}
}

func (w *walker) ifStmt(s *IfStmt) (string, error) {
	g := w.gen
	cond, err := w.expr(&s.Cond)
	if err != nil {
		return "", err
	}
	then, err := w.block(s.Then)
	if err != nil {
		return "", err
	}
	var elseifs string
	for i := range s.ElseIf {
		c, err := w.expr(&s.ElseIf[i].Cond)
		if err != nil {
			return "", err
		}
		b, err := w.block(s.ElseIf[i].Then)
		if err != nil {
			return "", err
		}
		elseifs += g.GenElseIf(c.Code, b)
	}
	var els string
	if s.Else != nil {
		b, err := w.block(s.Else)
		if err != nil {
			return "", err
		}
		els = g.GenElse(b)
	}
	return g.GenIf(cond.Code, then, elseifs, els, g.GenEnd()), nil
}

func (w *walker) forStmt(s *ForStmt) (string, error) {
	g := w.gen
	from, err := w.expr(&s.From)
	if err != nil {
		return "", err
	}
	to, err := w.expr(&s.To)
	if err != nil {
		return "", err
	}
	step := "1"
	if s.Step != nil {
		x, err := w.expr(s.Step)
		if err != nil {
			return "", err
		}
		step = x.Code
	}
	v := ast.Var{Name: s.Var, Type: orType(from.Type, ast.TypeInt)}
	w.scope[v.Name] = v.Type
	body, err := w.block(s.Body)
	if err != nil {
		return "", err
	}
	assignment := g.GenVarDef(v, from.Type, from.Code, false)
	return g.GenFor(v, assignment, to.Code, step, body, g.GenEnd()), nil
}

func (w *walker) expr(e *Expr) (ast.Expression, error) {
	if err := e.check(); err != nil {
		return ast.Expression{}, err
	}
	g := w.gen
	switch {
	case e.Int != nil:
		return w.literal(e, ast.TypeInt, ast.Token{Kind: ast.TokIntLiteral, Data: *e.Int})
	case e.Real != nil:
		return w.literal(e, ast.TypeReal, ast.Token{Kind: ast.TokRealLiteral, Data: *e.Real})
	case e.String != nil:
		return w.literal(e, ast.TypeString, ast.Token{Kind: ast.TokStringLiteral, Data: *e.String})
	case e.Nil:
		return w.literal(e, ast.TypeRef, ast.Token{Kind: ast.TokNullLiteral})
	case e.Var != "":
		v := ast.Var{Name: e.Var, Type: orType(e.Type, w.scope[e.Var])}
		return ast.Expression{Type: v.Type, Code: g.GenVar(v)}, nil
	case e.Unary != nil:
		x, err := w.expr(&e.Unary.X)
		if err != nil {
			return ast.Expression{}, err
		}
		code, err := g.GenUnaryExp(ast.Token{Kind: e.Unary.Op}, x.Code)
		if err != nil {
			return ast.Expression{}, err
		}
		typ := x.Type
		if e.Unary.Op == ast.TokNot {
			typ = ast.TypeInt
		}
		return ast.Expression{Type: orType(e.Type, typ), Code: code}, nil
	case e.Binary != nil:
		return w.binary(e)
	case e.Group != nil:
		x, err := w.expr(e.Group)
		if err != nil {
			return ast.Expression{}, err
		}
		return ast.Expression{Type: orType(e.Type, x.Type), Code: g.GenGroupExp(x.Code)}, nil
	default:
		return w.call(e)
	}
}

func (w *walker) literal(e *Expr, typ ast.Type, tok ast.Token) (ast.Expression, error) {
	code, err := w.gen.GenLiteral(tok)
	if err != nil {
		return ast.Expression{}, err
	}
	return ast.Expression{Type: orType(e.Type, typ), Code: code}, nil
}

func (w *walker) binary(e *Expr) (ast.Expression, error) {
	b := e.Binary
	l, err := w.expr(&b.Left)
	if err != nil {
		return ast.Expression{}, err
	}
	r, err := w.expr(&b.Right)
	if err != nil {
		return ast.Expression{}, err
	}
	typ := e.Type
	if typ == 0 {
		typ = resultType(b.Op, l.Type, r.Type)
	}
	code, err := w.gen.GenBinaryExp(typ, ast.Token{Kind: b.Op}, l.Code, r.Code)
	if err != nil {
		return ast.Expression{}, err
	}
	return ast.Expression{Type: typ, Code: code}, nil
}

// resultType mirrors the checker's rules for unannotated operators:
// comparisons and logic yield int, arithmetic follows its operands.
func resultType(op ast.TokenKind, l, r ast.Type) ast.Type {
	switch op {
	case ast.TokOr, ast.TokAnd, ast.TokEqual, ast.TokNotEqual,
		ast.TokLesser, ast.TokLEqual, ast.TokGreater, ast.TokGEqual:
		return ast.TypeInt
	}
	if l == ast.TypeString || r == ast.TypeString {
		return ast.TypeString
	}
	if l == ast.TypeReal || r == ast.TypeReal {
		return ast.TypeReal
	}
	return orType(l, r)
}

func (w *walker) call(e *Expr) (ast.Expression, error) {
	fn, ok := w.defs.Function(e.Call.Func)
	if !ok {
		return ast.Expression{}, fmt.Errorf("%w %q", ErrUndefined, e.Call.Func)
	}
	args := make([]ast.Expression, 0, len(e.Call.Args))
	for i := range e.Call.Args {
		x, err := w.expr(&e.Call.Args[i])
		if err != nil {
			return ast.Expression{}, fmt.Errorf("call %s: %w", fn.Name, err)
		}
		args = append(args, x)
	}
	code := w.gen.GenFunctionCall(fn, w.gen.GenArgs(fn, args))
	return ast.Expression{Type: orType(e.Type, fn.Type), Code: code}, nil
}

func orType(t, fallback ast.Type) ast.Type {
	if t != 0 {
		return t
	}
	return fallback
}
