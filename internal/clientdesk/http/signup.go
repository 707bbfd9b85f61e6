package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/domain"
	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/service"
	"github.com/aussiebroadwan/clientdesk/pkg/clientsdk"
	"github.com/aussiebroadwan/clientdesk/pkg/httpx"
	"github.com/aussiebroadwan/clientdesk/pkg/slogx"
)

type SignupHandler struct {
	ClientService *service.ClientService
}

// ServeHTTP godoc
//
//	@Summary		Client Signup Endpoint
//	@Description	Create a client account. The email must not already be registered.
//	@Tags			Clients
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json
//	@Param			request	body		clientsdk.SignupRequest				true	"name, email, password"
//	@Success		201		{object}	clientsdk.ClientResponse			"id, name, email, created_at"
//	@Failure		400		{object}	clientsdk.ValidationErrorResponse	"code, message, details"
//	@Failure		409		{object}	clientsdk.ErrorResponse				"error, error_description"
//	@Failure		429		{object}	clientsdk.ErrorResponse				"error, error_description"
//	@Failure		500		{object}	clientsdk.ErrorResponse				"error, error_description"
//	@Router			/v1/clients/signup [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req clientsdk.SignupRequest
	err := decodeBody(w, r, &req, map[string]*string{
		"name":     &req.Name,
		"email":    &req.Email,
		"password": &req.Password,
	})
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, clientsdk.ErrorCodeInvalidRequest, "Invalid request body")
		return
	}

	client, err := h.ClientService.Signup(ctx, domain.SignupData{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			httpx.WriteJSON(w, http.StatusBadRequest, clientsdk.ValidationErrorResponse{
				Code:    clientsdk.ErrorCodeValidation,
				Message: "validation failed for some fields",
				Details: verr.Fields,
			})
		case errors.Is(err, service.ErrEmailAlreadyExists):
			httpx.WriteError(w, http.StatusConflict, clientsdk.ErrorCodeEmailTaken, "An account with this email already exists")
		default:
			log.Error("failed to sign up client", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, clientsdk.ErrorCodeServerError, "Failed to create account")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toClientResponse(client))
}

func toClientResponse(c domain.Client) clientsdk.ClientResponse {
	return clientsdk.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}
