/*
Package clientsdk is a Go client for the clientdesk signup/signin service.

	sdk := clientsdk.NewSDKClient("http://localhost:8080")

	created, err := sdk.Signup(ctx, clientsdk.SignupRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "correct horse battery",
	})

	session, err := sdk.Signin(ctx, "ada@example.com", "correct horse battery")
	switch {
	case errors.Is(err, clientsdk.ErrClientNotFound):
		// no account for that email (HTTP 204)
	case clientsdk.IsStatus(err, http.StatusForbidden):
		// wrong password
	}

	me, err := sdk.Me(ctx, session.Token)

# Errors

Every non-2xx response is returned as *APIError carrying the HTTP status,
the error code and, for validation failures, the per-field details.
Signin answers 204 when no account matches; the SDK maps that to
ErrClientNotFound.

# Validation

SignupRequest.Validate applies the same rules as the server so callers can
reject bad input before a round trip.
*/
package clientsdk
