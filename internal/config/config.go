// Package config loads picogen settings from CUE files.
package config

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/calumari/picolua/internal/generator"
)

// Options are the settings the driver passes to the generator and walker.
type Options struct {
	Generator generator.Config
	Indent    bool
}

// Default returns the stock settings.
func Default() Options {
	return Options{Generator: generator.DefaultConfig()}
}

const schemaSrc = `
hostTable?:    string & =~"^[A-Za-z_][A-Za-z0-9_]*$"
varPrefix?:    string & =~"^__[A-Za-z0-9_]*$"
shortCircuit?: bool
nullLiteral?:  bool
indent?:       bool
`

// file mirrors the schema. Absent fields stay nil and leave the base alone.
type file struct {
	HostTable    *string `json:"hostTable"`
	VarPrefix    *string `json:"varPrefix"`
	ShortCircuit *bool   `json:"shortCircuit"`
	NullLiteral  *bool   `json:"nullLiteral"`
	Indent       *bool   `json:"indent"`
}

// Load reads the CUE file at path, validates it against the closed schema
// and overlays the fields it sets onto base.
func Load(path string, base Options) (Options, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return base, err
	}
	return Parse(path, content, base)
}

// Parse is Load for content already in memory. filename is used in errors.
func Parse(filename string, content []byte, base Options) (Options, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString("close({" + schemaSrc + "})")
	if err := schema.Err(); err != nil {
		return base, err
	}
	value := ctx.CompileBytes(content, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return base, fmt.Errorf("config %s: %w", filename, err)
	}
	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return base, fmt.Errorf("config %s: %w", filename, err)
	}
	var f file
	if err := unified.Decode(&f); err != nil {
		return base, fmt.Errorf("config %s: %w", filename, err)
	}

	opts := base
	if f.HostTable != nil {
		opts.Generator.HostTable = *f.HostTable
	}
	if f.VarPrefix != nil {
		opts.Generator.VarPrefix = *f.VarPrefix
	}
	if f.ShortCircuit != nil {
		opts.Generator.ShortCircuit = *f.ShortCircuit
	}
	if f.NullLiteral != nil {
		opts.Generator.NullLiteral = *f.NullLiteral
	}
	if f.Indent != nil {
		opts.Indent = *f.Indent
	}
	return opts, nil
}
