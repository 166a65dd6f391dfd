package generator

import (
	"strings"

	"github.com/calumari/picolua/internal/ast"
)

// Block-opening constructs take the closing marker from the caller, normally
// GenEnd, so an if-chain is closed exactly once after its last branch.

func (g *Generator) GenStatement(exp string) string {
	return exp + "\n"
}

// GenIf renders an if-chain. elseifs and els are the already rendered
// GenElseIf and GenElse branches, possibly empty.
func (g *Generator) GenIf(exp, block, elseifs, els, end string) string {
	return "if " + g.truth(exp) + " then\n" + block + elseifs + els + end
}

func (g *Generator) GenElseIf(exp, block string) string {
	return "elseif " + g.truth(exp) + " then\n" + block
}

func (g *Generator) GenElse(block string) string {
	return "else\n" + block
}

func (g *Generator) GenEnd() string {
	return "end\n"
}

// GenFor renders a numeric for loop. A "local " prefix on assignment is
// dropped since Lua loop variables are already local. The step clause is
// only written for a non-empty block, so callers pass a step even when the
// source loop uses the default one.
func (g *Generator) GenFor(_ ast.Var, assignment, to, step, block, end string) string {
	assignment = strings.TrimPrefix(assignment, localPrefix)
	header := "for " + assignment + ", " + to
	if block != "" {
		header += ", " + step
	}
	return header + " do\n" + block + end
}

func (g *Generator) GenWhile(exp, block, end string) string {
	return "while " + g.truth(exp) + " do\n" + block + end
}

// GenReturn renders a return. funcType is accepted for callers that know the
// declared result type; exp must already have that type.
func (g *Generator) GenReturn(_ ast.Type, exp string) string {
	return "return " + exp + "\n"
}

const localPrefix = "local "

// GenVarDef declares v. Globals skip the local prefix.
func (g *Generator) GenVarDef(v ast.Var, expType ast.Type, exp string, global bool) string {
	if global {
		return g.GenAssignment(v, expType, exp)
	}
	return localPrefix + g.GenAssignment(v, expType, exp)
}

func (g *Generator) GenAssignment(v ast.Var, _ ast.Type, exp string) string {
	return g.VarID(v.Name) + " = " + exp
}

// truth wraps a condition so Lua tests it with pico's notion of truth.
func (g *Generator) truth(exp string) string {
	return helperBool + "(" + exp + ")"
}
