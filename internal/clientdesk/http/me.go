package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/service"
	"github.com/aussiebroadwan/clientdesk/pkg/clientsdk"
	"github.com/aussiebroadwan/clientdesk/pkg/httpx"
	"github.com/aussiebroadwan/clientdesk/pkg/slogx"
)

type MeHandler struct {
	ClientService *service.ClientService
}

// ServeHTTP godoc
//
//	@Summary		Current Client Endpoint
//	@Description	Returns the client the session token was issued to.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	clientsdk.ClientResponse	"id, name, email, created_at"
//	@Failure		401	{object}	clientsdk.ErrorResponse		"error, error_description"
//	@Failure		404	{object}	clientsdk.ErrorResponse		"error, error_description"
//	@Failure		500	{object}	clientsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/clients/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientID := httpx.ClientIDFromContext(ctx)
	if clientID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, clientsdk.ErrorCodeInvalidToken, "missing client identity")
		return
	}

	client, err := h.ClientService.GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			httpx.WriteError(w, http.StatusNotFound, clientsdk.ErrorCodeNotFound, "Client no longer exists")
			return
		}
		slogx.FromContext(ctx).Error("failed to load client", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, clientsdk.ErrorCodeServerError, "Failed to load client")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toClientResponse(client))
}
