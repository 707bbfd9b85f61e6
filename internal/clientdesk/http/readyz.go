package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/store"
	"github.com/aussiebroadwan/clientdesk/pkg/clientsdk"
	"github.com/aussiebroadwan/clientdesk/pkg/httpx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, and the status of the database and, when configured, the shared rate limiter
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	clientsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	clientsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	limiterPing func(ctx context.Context) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &clientsdk.HealthChecks{
			Database: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// Check database connectivity
		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if limiterPing != nil {
			checks.RateLimiter = "ok"
			if err := limiterPing(r.Context()); err != nil {
				checks.RateLimiter = "error: " + err.Error()
				overallStatus = "degraded"
				statusCode = http.StatusServiceUnavailable
			}
		}

		response := clientsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
