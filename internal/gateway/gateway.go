// gateway — доступ к удалённому API kueater.
//
// Одна операция домена = один HTTP-вызов. Все маршруты обслуживаются одним
// эндпойнтом (exec), операция выбирается query-параметром route.
// Ретраев внутри gateway нет: политика повторов — забота вызывающего.
//
// Ошибки типизированы (см. errors.go):
//   - *NetworkError — ответа нет (транспорт, таймаут, отмена);
//   - *APIError — не-2xx статус или доменный код ошибки в теле;
//   - *DecodeError — тело не соответствует ожидаемой форме.
package gateway

import (
	"context"

	"github.com/pribylovaa/kueater-client/internal/models"
)

// Маршруты удалённого API.
const (
	RouteMenuTable           = "menu_table"
	RouteTopMenus            = "get_top_10_menu"
	RouteRandomMenu          = "get_random_menu"
	RouteStallTable          = "stall_table"
	RouteMenuBookmark        = "menu_bookmark"
	RouteMenuBookmarkByUser  = "menu_bookmark_by_user"
	RouteStallBookmark       = "stall_bookmark"
	RouteStallBookmarkByUser = "stall_bookmark_by_user"
	RouteMenuFeedback        = "menu_feedback"
)

// Gateway описывает удалённое API с точки зрения клиента.
//
//go:generate mockgen -source=gateway.go -destination=../../mocks/gateway.go -package=mocks
type Gateway interface {
	FetchMenuPage(ctx context.Context, userID string, page, pageSize int) ([]models.MenuItem, error)
	FetchTopMenus(ctx context.Context, userID string) ([]models.MenuItem, error)
	FetchRandomMenu(ctx context.Context, userID, foodType string) (models.MenuItem, error)
	FetchAllStalls(ctx context.Context, userID string) ([]models.Stall, error)
	FetchSavedMenus(ctx context.Context, userID string) ([]models.MenuItem, error)
	FetchSavedStalls(ctx context.Context, userID string) ([]models.Stall, error)
	ToggleMenuBookmark(ctx context.Context, userID, menuID string) error
	ToggleStallBookmark(ctx context.Context, userID, stallID string) error
	PostMenuFeedback(ctx context.Context, userID, menuID string, feedback models.Feedback) error
}
