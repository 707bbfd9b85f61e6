package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/aussiebroadwan/clientdesk/pkg/slogx"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type pageView struct {
	SigninAction string
	SignupAction string
}

var defaultPageView = pageView{
	SigninAction: "/v1/clients/signin",
	SignupAction: "/v1/clients/signup",
}

// PageHandler serves one of the static account forms.
func PageHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := templates.ExecuteTemplate(&buf, name, defaultPageView); err != nil {
			slogx.FromContext(r.Context()).Error("failed to render page", "page", name, "err", err)
			http.Error(w, "failed to render page", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}
