package generator

import (
	"bytes"
	"embed"
	"fmt"
	"sync"
	"text/template"
)

const (
	tmplRoot    = "root"
	tmplPrelude = "prelude"
)

const templatePattern = "templates/*.gtpl"

//go:embed templates/*.gtpl
var templatesFS embed.FS

var (
	rootTmpl     *template.Template
	tmplInitOnce sync.Once
	tmplInitErr  error
)

// validateTemplates ensures all required templates are defined
func validateTemplates() error {
	for _, name := range []string{tmplPrelude} {
		if rootTmpl.Lookup(name) == nil {
			return fmt.Errorf("required template %q not found", name)
		}
	}
	return nil
}

// ensureTemplates parses and validates templates exactly once.
func ensureTemplates() error {
	tmplInitOnce.Do(func() {
		var t *template.Template
		t, tmplInitErr = template.New(tmplRoot).Option("missingkey=error").ParseFS(templatesFS, templatePattern)
		if tmplInitErr != nil {
			return
		}
		rootTmpl = t
		tmplInitErr = validateTemplates()
	})
	return tmplInitErr
}

func renderPrelude(cfg Config) (string, error) {
	if err := ensureTemplates(); err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := rootTmpl.ExecuteTemplate(&out, tmplPrelude, newPreludeModel(cfg)); err != nil {
		return "", fmt.Errorf("render prelude: %w", err)
	}
	return out.String(), nil
}
