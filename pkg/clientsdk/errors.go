package clientsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned in ErrorResponse.Error.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeValidation         = "validation_error"
	ErrorCodeEmailTaken         = "email_taken"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeRateLimited        = "rate_limit_exceeded"
	ErrorCodeServerError        = "server_error"
)

// ErrClientNotFound is returned by Signin when the service answers 204: no
// account is registered for the email.
var ErrClientNotFound = errors.New("clientsdk: no client with that email")

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode  int
	Code        string
	Description string

	// Details is set for validation failures.
	Details map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// IsStatus reports whether err is an *APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// parseErrorResponse turns a non-2xx response into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var valErr ValidationErrorResponse
	if err := json.Unmarshal(body, &valErr); err == nil && valErr.Code != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        valErr.Code,
			Description: valErr.Message,
			Details:     valErr.Details,
		}
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
