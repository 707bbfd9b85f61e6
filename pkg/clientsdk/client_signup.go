package clientsdk

import (
	"context"
	"net/http"
)

// Signup creates a client account. A duplicate email is an *APIError with
// status 409.
func (c *SDKClient) Signup(ctx context.Context, req SignupRequest) (*ClientResponse, error) {
	resp, err := c.postJSON(ctx, "/v1/clients/signup", req)
	if err != nil {
		return nil, err
	}

	var created ClientResponse
	if err := decodeJSON(resp, &created, http.StatusCreated); err != nil {
		return nil, err
	}
	return &created, nil
}
