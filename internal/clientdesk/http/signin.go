package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/service"
	"github.com/aussiebroadwan/clientdesk/pkg/clientsdk"
	"github.com/aussiebroadwan/clientdesk/pkg/httpx"
	"github.com/aussiebroadwan/clientdesk/pkg/slogx"
)

type SigninHandler struct {
	ClientService *service.ClientService
}

// ServeHTTP godoc
//
//	@Summary		Client Signin Endpoint
//	@Description	Authenticate with email and password and receive a session token.
//	@Description	An email with no account answers 204 with an empty body. A wrong password answers 403.
//	@Tags			Clients
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json
//	@Param			request	body		clientsdk.SigninRequest		true	"email, password"
//	@Success		200		{object}	clientsdk.SigninResponse	"id, email, name, token"
//	@Success		204		"no account for this email"
//	@Failure		400		{object}	clientsdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	clientsdk.ErrorResponse	"error, error_description"
//	@Failure		429		{object}	clientsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	clientsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/clients/signin [post].
func (h *SigninHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req clientsdk.SigninRequest
	err := decodeBody(w, r, &req, map[string]*string{
		"email":    &req.Email,
		"password": &req.Password,
	})
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, clientsdk.ErrorCodeInvalidRequest, "Invalid request body")
		return
	}

	sess, err := h.ClientService.Signin(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSignin):
			httpx.WriteError(w, http.StatusBadRequest, clientsdk.ErrorCodeInvalidRequest, "email and password are required")
		case errors.Is(err, service.ErrClientNotFound):
			httpx.NoCache(w)
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, service.ErrWrongPassword):
			httpx.WriteError(w, http.StatusForbidden, clientsdk.ErrorCodeInvalidCredentials, "Incorrect password")
		default:
			log.Error("failed to sign in client", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, clientsdk.ErrorCodeServerError, "Failed to sign in")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, clientsdk.SigninResponse{
		ID:    sess.Client.ID,
		Email: sess.Client.Email,
		Name:  sess.Client.Name,
		Token: sess.Token,
	})
}
