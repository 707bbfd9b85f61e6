package clientsdk

import "time"

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	// Error is the error code (e.g. "email_taken", "invalid_credentials")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned with 400 when request fields fail
// validation.
type ValidationErrorResponse struct {
	// Code is always "validation_error"
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details maps field names to the reason they were rejected
	Details map[string]string `json:"details,omitempty"`
}

// SignupRequest is the body of POST /v1/clients/signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninRequest is the body of POST /v1/clients/signin.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ClientResponse is the public view of a client record. The password hash
// is never part of it.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SigninResponse is returned with 200 on successful signin.
type SigninResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`

	// Token is the signed session token (HS256 JWT)
	Token string `json:"token"`
}

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status ("ok" or "degraded")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks is only populated by /readyz
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the store connection status
	Database string `json:"database"`

	// RateLimiter is the shared limiter backend status, omitted when the
	// limiter is in-process
	RateLimiter string `json:"rate_limiter,omitempty"`
}
