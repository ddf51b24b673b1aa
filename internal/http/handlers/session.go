package handlers

import (
	"fmt"
	"net/http"
	"strings"

	apierrors "github.com/pribylovaa/kueater-client/internal/errors"
	"github.com/pribylovaa/kueater-client/internal/identity"
	"github.com/pribylovaa/kueater-client/internal/models"
	"github.com/pribylovaa/kueater-client/internal/service"
)

func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session())
}

// PutSession — вход: user_id или id_token (ровно одно из двух).
func (h *Handlers) PutSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("decode session: %w", service.ErrInvalidArgument))
		return
	}

	uid := strings.TrimSpace(req.UserID)
	token := strings.TrimSpace(req.IDToken)

	switch {
	case uid != "" && token != "", uid == "" && token == "":
		apierrors.WriteError(w, r, fmt.Errorf("user_id or id_token required: %w", service.ErrInvalidArgument))
		return
	case token != "":
		var err error
		if uid, err = identity.UserIDFromToken(token, h.now()); err != nil {
			apierrors.WriteError(w, r, err)
			return
		}
	}

	h.Identity.Set(uid)
	h.Svc.SyncIdentity(r.Context(), h.Identity)

	writeJSON(w, http.StatusOK, h.session())
}

// DeleteSession — выход: все представления очищаются.
func (h *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	h.Identity.Set("")
	h.Svc.SyncIdentity(r.Context(), h.Identity)

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) session() sessionResponse {
	uid := h.Svc.UserID()
	return sessionResponse{UserID: uid, SignedIn: uid != ""}
}

func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Refresh(r.Context()); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) FoodTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, foodTypesResponse{FoodTypes: models.FoodTypes()})
}
