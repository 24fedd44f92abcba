package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/heartbeatcoders/recruit/pkg/slogx"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTemplates = template.Must(
	template.New("").Funcs(template.FuncMap{
		"datefmt": datefmt,
	}).ParseFS(templateFS, "templates/*.html"),
)

// datefmt renders timestamps the way listings show them.
func datefmt(t time.Time) string {
	return t.Format("2006-01-02")
}

// render executes a page template into a buffer first, so a template error
// becomes a clean 500 instead of a half-written page.
func render(w http.ResponseWriter, r *http.Request, code int, name string, data any) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		slogx.FromContext(r.Context()).Error("template render failed", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}
