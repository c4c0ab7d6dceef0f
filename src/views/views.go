package views

import (
	"embed"
	"html/template"
	"time"

	"github.com/anhimov/library/src/validators"
)

//go:embed templates
var files embed.FS

// Templates parses every view. Each file defines a template named after its
// path without extension, e.g. "books/index". authEnabled toggles the
// session links of the layout.
func Templates(authEnabled bool) (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"authEnabled": func() bool { return authEnabled },
		"fieldErrors": fieldErrors,
		"formatTime":  formatTime,
		"add":         func(a, b int) int { return a + b },
	}).ParseFS(files, "templates/*.html", "templates/*/*.html")
}

func fieldErrors(errs interface{}, field string) []string {
	fe, ok := errs.(validators.FieldErrors)
	if !ok {
		return nil
	}
	return fe.Messages(field)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format("02.01.2006 15:04")
}
