package http

import (
	"net/http"

	"github.com/aussiebroadwan/clientdesk/pkg/httpx"
)

// decodeBody fills v from a JSON body, or from form values when the request
// is form encoded. fields maps form field names to the destination strings.
func decodeBody(w http.ResponseWriter, r *http.Request, v any, fields map[string]*string) error {
	if !httpx.IsForm(r) {
		return httpx.DecodeJSON(w, r, v)
	}

	r.Body = http.MaxBytesReader(w, r.Body, httpx.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return httpx.ErrBadBody
	}
	for name, dst := range fields {
		*dst = r.PostFormValue(name)
	}
	return nil
}
