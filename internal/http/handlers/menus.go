package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/pribylovaa/kueater-client/internal/errors"
	"github.com/pribylovaa/kueater-client/internal/models"
	"github.com/pribylovaa/kueater-client/internal/service"
)

func (h *Handlers) ListMenus(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.EnsureLoaded(r.Context(), service.ViewMenus); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, menuList(h.Svc.Menus()))
}

// NextMenus подгружает следующую страницу. Ошибка страницы видна
// и в статусе ответа, и в state.last_error последующих GET /menus.
func (h *Handlers) NextMenus(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.LoadNextMenus(r.Context()); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, menuList(h.Svc.Menus()))
}

func (h *Handlers) TopMenus(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.EnsureLoaded(r.Context(), service.ViewTopMenus); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, menuList(h.Svc.TopMenus()))
}

func (h *Handlers) SavedMenus(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.EnsureLoaded(r.Context(), service.ViewSavedMenus); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, menuList(h.Svc.SavedMenus()))
}

// RandomMenu — с food_type запрашивает новое случайное блюдо,
// без него отдаёт текущее (item: null, если выбора ещё не было).
func (h *Handlers) RandomMenu(w http.ResponseWriter, r *http.Request) {
	if ft := r.URL.Query().Get("food_type"); ft != "" {
		if _, err := h.Svc.PickRandomMenu(r.Context(), ft); err != nil {
			apierrors.WriteError(w, r, err)
			return
		}
	}

	item, st, ok := h.Svc.RandomMenu()

	resp := randomResponse{State: stateFromModel(st)}
	if ok {
		m := menuFromModel(item)
		resp.Item = &m
	}

	writeJSON(w, http.StatusOK, resp)
}

// ToggleMenuBookmark — откат мутации отдаётся как 200 с outcome=rolled_back.
func (h *Handlers) ToggleMenuBookmark(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	res, err := h.Svc.ToggleMenuBookmark(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.writeMenuMutation(w, id, res)
}

func (h *Handlers) PostMenuFeedback(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req feedbackRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("decode feedback: %w", service.ErrInvalidArgument))
		return
	}

	fb, err := models.ParseFeedback(req.Type)
	if err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("%v: %w", err, service.ErrInvalidArgument))
		return
	}

	res, err := h.Svc.PostMenuFeedback(r.Context(), id, fb)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.writeMenuMutation(w, id, res)
}

func (h *Handlers) writeMenuMutation(w http.ResponseWriter, id string, res service.Result) {
	resp := mutationFromResult(res)
	if m, ok := h.Svc.Menu(id); ok {
		mj := menuFromModel(m)
		resp.Menu = &mj
	}

	writeJSON(w, http.StatusOK, resp)
}
