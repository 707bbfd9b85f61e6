package httpx

import (
	"context"

	"github.com/aussiebroadwan/clientdesk/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyClientID ctxKey = "client_id"
	CtxKeyClaims   ctxKey = "claims"
)

// ClientIDFromContext returns the authenticated client ID placed by
// AuthnMiddleware, or "" for anonymous requests.
func ClientIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyClientID).(string); ok {
		return v
	}
	return ""
}

// ClaimsFromContext returns the verified session claims, if any.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}
