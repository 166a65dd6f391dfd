package generator

import (
	"strings"

	"github.com/calumari/picolua/internal/ast"
)

// Prelude returns the runtime support code emitted once ahead of user code.
func (g *Generator) Prelude() string {
	return g.prelude
}

// GenProgram concatenates the prelude, the function definitions and the
// top-level statements, in the order supplied. defs is not consulted for
// emission.
func (g *Generator) GenProgram(functions, program []string, _ ast.Definitions) string {
	var b strings.Builder
	b.WriteString(g.prelude)
	for _, fn := range functions {
		b.WriteString(fn)
		b.WriteString("\n")
	}
	for _, stmt := range program {
		b.WriteString(stmt)
	}
	b.WriteString("\n")
	return b.String()
}

// GenFunctionDef renders fn with the already rendered body block.
func (g *Generator) GenFunctionDef(fn ast.Function, block string) string {
	return g.GenFunctionHeader(fn) + block + g.GenEnd()
}

func (g *Generator) GenFunctionHeader(fn ast.Function) string {
	return "function " + g.FuncID(fn.Name) + g.GenParams(fn) + "\n"
}

func (g *Generator) GenParams(fn ast.Function) string {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = g.VarID(p.Name)
	}
	return "(" + strings.Join(params, ", ") + ")"
}
