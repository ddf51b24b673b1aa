// http — сборка локального REST-фасада (chi).
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/kueater-client/internal/http/handlers"
	"github.com/pribylovaa/kueater-client/internal/http/middleware"
	"github.com/pribylovaa/kueater-client/internal/identity"
	"github.com/pribylovaa/kueater-client/internal/service"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, id *identity.Static, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),
		middleware.RequestID(), // до логирования
		middleware.Logging(opts.Logger),
		middleware.AuthBearer(),
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout))
	}

	h := handlers.New(svc, id)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	r.Get("/food-types", h.FoodTypes)

	r.Group(func(r chi.Router) {
		r.Use(h.Session)

		// session
		r.Get("/session", h.GetSession)
		r.Put("/session", h.PutSession)
		r.Delete("/session", h.DeleteSession)
		r.Post("/refresh", h.Refresh)

		// menus
		r.Get("/menus", h.ListMenus)
		r.Post("/menus/next", h.NextMenus)
		r.Get("/menus/top", h.TopMenus)
		r.Get("/menus/random", h.RandomMenu)
		r.Get("/menus/saved", h.SavedMenus)
		r.Post("/menus/{id}/bookmark", h.ToggleMenuBookmark)
		r.Post("/menus/{id}/feedback", h.PostMenuFeedback)

		// stalls
		r.Get("/stalls", h.ListStalls)
		r.Get("/stalls/saved", h.SavedStalls)
		r.Post("/stalls/{id}/bookmark", h.ToggleStallBookmark)
	})
}
