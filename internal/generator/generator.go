// Package generator renders annotated pico syntax trees as Lua source.
//
// The generator never walks a tree. Callers fold the tree bottom-up and hand
// each method the text already rendered for the node's children; every
// method is a pure function of its arguments and the Config.
package generator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownToken reports a token kind the generator has no rendering for.
// Reaching it means an upstream invariant was broken.
var ErrUnknownToken = errors.New("unknown token kind")

// Generator emits Lua text. It holds only its immutable configuration and
// the prelude rendered from it, so one value may be shared freely.
type Generator struct {
	cfg     Config
	prelude string
}

// New validates cfg and builds a Generator.
func New(cfg Config) (*Generator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	prelude, err := renderPrelude(cfg)
	if err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, prelude: prelude}, nil
}

// Config returns the settings g was built with.
func (g *Generator) Config() Config { return g.cfg }

func (c Config) validate() error {
	if !isIdent(c.HostTable) {
		return fmt.Errorf("host table %q is not a Lua identifier", c.HostTable)
	}
	if luaKeywords[c.HostTable] {
		return fmt.Errorf("host table %q is a Lua keyword", c.HostTable)
	}
	// user functions are stored as fields of the host table, so a library
	// table like math would have floor and ceil replaced under _int.
	if luaGlobals[c.HostTable] {
		return fmt.Errorf("host table %q shadows a Lua standard global", c.HostTable)
	}
	for _, name := range runtimeNames() {
		if c.HostTable == name {
			return fmt.Errorf("host table %q shadows a runtime helper", c.HostTable)
		}
	}
	// "_" plus a source name could spell a runtime helper such as _bool.
	if !strings.HasPrefix(c.VarPrefix, "__") || !isIdent(c.VarPrefix) {
		return fmt.Errorf("variable prefix %q must be an identifier starting with __", c.VarPrefix)
	}
	return nil
}

// VarID mangles a variable name.
func (g *Generator) VarID(name string) string {
	return g.cfg.VarPrefix + name
}

// FuncID namespaces a function name under the host table.
func (g *Generator) FuncID(name string) string {
	return g.cfg.HostTable + "." + name
}

// GenIndent returns the leading whitespace for a nesting level.
func (g *Generator) GenIndent(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat("    ", level)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

var luaKeywords = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true,
	"end": true, "false": true, "for": true, "function": true, "goto": true,
	"if": true, "in": true, "local": true, "nil": true, "not": true,
	"or": true, "repeat": true, "return": true, "then": true, "true": true,
	"until": true, "while": true,
}

var luaGlobals = map[string]bool{
	"_G": true, "_VERSION": true, "_ENV": true, "assert": true, "collectgarbage": true,
	"coroutine": true, "debug": true, "dofile": true, "error": true, "getfenv": true,
	"getmetatable": true, "io": true, "ipairs": true, "load": true, "loadfile": true,
	"loadstring": true, "math": true, "module": true, "next": true, "os": true,
	"package": true, "pairs": true, "pcall": true, "print": true, "rawequal": true,
	"rawget": true, "rawlen": true, "rawset": true, "require": true, "select": true,
	"setfenv": true, "setmetatable": true, "string": true, "table": true, "tonumber": true,
	"tostring": true, "type": true, "unpack": true, "utf8": true, "xpcall": true,
}
