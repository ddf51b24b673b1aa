package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/pribylovaa/kueater-client/internal/errors"
	"github.com/pribylovaa/kueater-client/internal/service"
)

func (h *Handlers) ListStalls(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.EnsureLoaded(r.Context(), service.ViewStalls); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stallList(h.Svc.Stalls()))
}

func (h *Handlers) SavedStalls(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.EnsureLoaded(r.Context(), service.ViewSavedStalls); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stallList(h.Svc.SavedStalls()))
}

func (h *Handlers) ToggleStallBookmark(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	res, err := h.Svc.ToggleStallBookmark(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp := mutationFromResult(res)
	if st, ok := h.Svc.Stall(id); ok {
		sj := stallFromModel(st)
		resp.Stall = &sj
	}

	writeJSON(w, http.StatusOK, resp)
}
