// Package ast holds the annotated syntax tree values handed to the generator
// by the upstream parser and checker. Nothing here is mutated after
// construction.
package ast

import (
	"fmt"
	"sort"
)

// Type is the resolved semantic type tag of a value.
type Type int

const (
	TypeInt    Type = -1
	TypeReal   Type = -2
	TypeString Type = -3
	TypeRef    Type = -4
	TypeVoid   Type = -5
)

var typeNames = map[Type]string{
	TypeInt:    "int",
	TypeReal:   "real",
	TypeString: "string",
	TypeRef:    "ref",
	TypeVoid:   "void",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

func (t *Type) UnmarshalText(text []byte) error {
	for k, v := range typeNames {
		if v == string(text) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown type %q", text)
}

// TokenKind classifies a lexical unit.
type TokenKind int

const (
	TokIdentifier TokenKind = iota
	TokOr
	TokAnd
	TokEqual
	TokNotEqual
	TokLesser
	TokLEqual
	TokGreater
	TokGEqual
	TokPlus
	TokMinus
	TokMul
	TokDiv
	TokMod
	TokNot
	TokIntLiteral
	TokRealLiteral
	TokStringLiteral
	TokNullLiteral
)

var tokenNames = [...]string{
	TokIdentifier:    "identifier",
	TokOr:            "or",
	TokAnd:           "and",
	TokEqual:         "equal",
	TokNotEqual:      "notequal",
	TokLesser:        "lesser",
	TokLEqual:        "lequal",
	TokGreater:       "greater",
	TokGEqual:        "gequal",
	TokPlus:          "plus",
	TokMinus:         "minus",
	TokMul:           "mul",
	TokDiv:           "div",
	TokMod:           "mod",
	TokNot:           "not",
	TokIntLiteral:    "intliteral",
	TokRealLiteral:   "realliteral",
	TokStringLiteral: "stringliteral",
	TokNullLiteral:   "nullliteral",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

func (k *TokenKind) UnmarshalText(text []byte) error {
	for i, name := range tokenNames {
		if name == string(text) {
			*k = TokenKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown token kind %q", text)
}

// Token is a classified lexical unit. Data carries the raw text of literals.
type Token struct {
	Kind TokenKind
	Data string
}

// Var is a named storage location.
type Var struct {
	Name string
	Type Type
}

// Function is a named callable. Params are ordered.
type Function struct {
	Name   string
	Params []Var
	Type   Type
}

// Expression is a node already reduced to its type and rendered text.
type Expression struct {
	Type Type
	Code string
}

// Definitions is the whole-program table of functions and globals.
type Definitions struct {
	Functions map[string]Function
	Globals   map[string]Var
}

// NewDefinitions indexes fns and globals by name. Later entries win.
func NewDefinitions(fns []Function, globals []Var) Definitions {
	d := Definitions{
		Functions: make(map[string]Function, len(fns)),
		Globals:   make(map[string]Var, len(globals)),
	}
	for _, f := range fns {
		d.Functions[f.Name] = f
	}
	for _, v := range globals {
		d.Globals[v.Name] = v
	}
	return d
}

func (d Definitions) Function(name string) (Function, bool) {
	f, ok := d.Functions[name]
	return f, ok
}

func (d Definitions) Global(name string) (Var, bool) {
	v, ok := d.Globals[name]
	return v, ok
}

// FunctionNames returns the declared function names in sorted order.
func (d Definitions) FunctionNames() []string {
	names := make([]string, 0, len(d.Functions))
	for n := range d.Functions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// GlobalNames returns the declared global names in sorted order.
func (d Definitions) GlobalNames() []string {
	names := make([]string, 0, len(d.Globals))
	for n := range d.Globals {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
