package clientsdk

import (
	"context"
	"net/http"
)

// Signin authenticates with email and password. Returns ErrClientNotFound
// when no account matches and an *APIError with status 403 on a wrong
// password.
func (c *SDKClient) Signin(ctx context.Context, email, password string) (*SigninResponse, error) {
	resp, err := c.postJSON(ctx, "/v1/clients/signin", SigninRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNoContent {
		_ = resp.Body.Close()
		return nil, ErrClientNotFound
	}

	var session SigninResponse
	if err := decodeJSON(resp, &session, http.StatusOK); err != nil {
		return nil, err
	}
	return &session, nil
}
