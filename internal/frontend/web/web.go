package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses the embedded page templates. Pages are named by file name.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"fieldErrors": fieldErrors,
	}).ParseFS(files, "templates/*.html")
}

func fieldErrors(errs map[string][]string, field string) []string {
	return errs[field]
}
