package clientsdk

import (
	"context"
	"net/http"
)

// Me returns the client the session token was issued to.
func (c *SDKClient) Me(ctx context.Context, token string) (*ClientResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/clients/me", nil, nil, token)
	if err != nil {
		return nil, err
	}

	var me ClientResponse
	if err := decodeJSON(resp, &me, http.StatusOK); err != nil {
		return nil, err
	}
	return &me, nil
}
