package fold

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/calumari/picolua/internal/ast"
)

// File is a whole annotated program. Every node is a tagged variant: exactly
// one of its variant fields is set.
type File struct {
	Functions []FuncDecl `yaml:"functions"`
	Main      []Stmt     `yaml:"main"`
}

type Param struct {
	Name string   `yaml:"name"`
	Type ast.Type `yaml:"type"`
}

type FuncDecl struct {
	Name   string   `yaml:"name"`
	Params []Param  `yaml:"params"`
	Type   ast.Type `yaml:"type"`
	Body   []Stmt   `yaml:"body"`
}

func (d FuncDecl) function() ast.Function {
	fn := ast.Function{Name: d.Name, Type: d.Type}
	for _, p := range d.Params {
		fn.Params = append(fn.Params, ast.Var{Name: p.Name, Type: p.Type})
	}
	return fn
}

type Stmt struct {
	Expr   *Expr       `yaml:"expr"`
	Var    *VarStmt    `yaml:"var"`
	Assign *AssignStmt `yaml:"assign"`
	If     *IfStmt     `yaml:"if"`
	For    *ForStmt    `yaml:"for"`
	While  *WhileStmt  `yaml:"while"`
	Return *Expr       `yaml:"return"`
}

func (s *Stmt) check() error {
	return exactlyOne("statement",
		s.Expr != nil, s.Var != nil, s.Assign != nil, s.If != nil,
		s.For != nil, s.While != nil, s.Return != nil)
}

type VarStmt struct {
	Name   string   `yaml:"name"`
	Type   ast.Type `yaml:"type"`
	Global bool     `yaml:"global"`
	Value  Expr     `yaml:"value"`
}

type AssignStmt struct {
	Name  string `yaml:"name"`
	Value Expr   `yaml:"value"`
}

type IfStmt struct {
	Cond   Expr     `yaml:"cond"`
	Then   []Stmt   `yaml:"then"`
	ElseIf []Branch `yaml:"elseif"`
	Else   []Stmt   `yaml:"else"`
}

type Branch struct {
	Cond Expr   `yaml:"cond"`
	Then []Stmt `yaml:"then"`
}

// ForStmt is a numeric loop. A nil Step means the default step of 1.
type ForStmt struct {
	Var  string `yaml:"var"`
	From Expr   `yaml:"from"`
	To   Expr   `yaml:"to"`
	Step *Expr  `yaml:"step"`
	Body []Stmt `yaml:"body"`
}

type WhileStmt struct {
	Cond Expr   `yaml:"cond"`
	Body []Stmt `yaml:"body"`
}

// Expr is an expression node. Type is the checker's annotation; when it is
// absent the walker derives it from literals, declarations and operands.
type Expr struct {
	Type   ast.Type    `yaml:"type"`
	Int    *string     `yaml:"int"`
	Real   *string     `yaml:"real"`
	String *string     `yaml:"string"`
	Nil    bool        `yaml:"nil"`
	Var    string      `yaml:"var"`
	Unary  *UnaryExpr  `yaml:"unary"`
	Binary *BinaryExpr `yaml:"binary"`
	Group  *Expr       `yaml:"group"`
	Call   *CallExpr   `yaml:"call"`
}

func (e *Expr) check() error {
	return exactlyOne("expression",
		e.Int != nil, e.Real != nil, e.String != nil, e.Nil, e.Var != "",
		e.Unary != nil, e.Binary != nil, e.Group != nil, e.Call != nil)
}

type UnaryExpr struct {
	Op ast.TokenKind `yaml:"op"`
	X  Expr          `yaml:"x"`
}

type BinaryExpr struct {
	Op    ast.TokenKind `yaml:"op"`
	Left  Expr          `yaml:"left"`
	Right Expr          `yaml:"right"`
}

type CallExpr struct {
	Func string `yaml:"func"`
	Args []Expr `yaml:"args"`
}

func exactlyOne(what string, set ...bool) error {
	n := 0
	for _, s := range set {
		if s {
			n++
		}
	}
	if n != 1 {
		return fmt.Errorf("%w: %s has %d variants set", ErrMalformedNode, what, n)
	}
	return nil
}

// Decode reads a YAML program. Unknown keys are rejected.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var file File
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &file, nil
		}
		return nil, fmt.Errorf("decode program: %w", err)
	}
	return &file, nil
}
