// service — слой синхронизации клиента kueater.
//
// Service владеет сессией (текущим пользователем) и шестью независимыми
// представлениями: страницы меню, топ-10, случайное блюдо, сохранённые блюда,
// все лавки, сохранённые лавки. Мутации (закладки, оценки) применяются
// оптимистично сразу во всех представлениях и откатываются при ошибке сети/API.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/singleflight"

	"github.com/pribylovaa/kueater-client/internal/collection"
	"github.com/pribylovaa/kueater-client/internal/config"
	"github.com/pribylovaa/kueater-client/internal/gateway"
	"github.com/pribylovaa/kueater-client/internal/identity"
	"github.com/pribylovaa/kueater-client/internal/models"
	"github.com/pribylovaa/kueater-client/pkg/log"
	"github.com/pribylovaa/kueater-client/pkg/redact"
)

var (
	// ErrNoUser — нет аутентифицированного пользователя.
	ErrNoUser = errors.New("no user")
	// ErrUnknownEntity — сущности с таким id нет ни в одном представлении.
	ErrUnknownEntity = errors.New("unknown entity")
	// ErrInvalidArgument — неверные входные параметры.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrSessionChanged — пользователь сменился, пока операция готовилась.
	ErrSessionChanged = errors.New("session changed")
)

// Имена представлений.
const (
	ViewMenus       = "menus"
	ViewTopMenus    = "top_menus"
	ViewRandomMenu  = "random_menu"
	ViewSavedMenus  = "saved_menus"
	ViewStalls      = "stalls"
	ViewSavedStalls = "saved_stalls"
)

// loader — общая часть пагинированных представлений.
type loader interface {
	Name() string
	Reset(userID string)
	LoadNext(ctx context.Context) error
	State() collection.State
}

// Service — слой синхронизации.
type Service struct {
	gw      gateway.Gateway
	cfg     config.PagingConfig
	metrics *Metrics

	// mu защищает userID и делает запись мутации во все представления
	// атомарной для читателей проекций.
	mu      sync.RWMutex
	userID  string
	session uint64 // растёт при каждой смене пользователя

	menus       *collection.Collection[models.MenuItem]
	top         *collection.Collection[models.MenuItem]
	random      *collection.Slot[models.MenuItem]
	savedMenus  *collection.Collection[models.MenuItem]
	stalls      *collection.Collection[models.Stall]
	savedStalls *collection.Collection[models.Stall]

	loaders map[string]loader
	loads   singleflight.Group
	keys    *keyLock

	newTicket func() string
}

// New создает новый экземпляр Service без пользователя.
// metrics может быть nil.
func New(gw gateway.Gateway, cfg config.PagingConfig, metrics *Metrics) *Service {
	s := &Service{
		gw:        gw,
		cfg:       cfg,
		metrics:   metrics,
		keys:      newKeyLock(),
		newTicket: func() string { return ulid.Make().String() },
	}

	s.menus = collection.New(ViewMenus, cfg.MenuPageSize, countPages[models.MenuItem](ViewMenus, metrics, gw.FetchMenuPage))
	s.top = collection.New(ViewTopMenus, 0, countPages[models.MenuItem](ViewTopMenus, metrics, collection.Unpaged(gw.FetchTopMenus)))
	s.savedMenus = collection.New(ViewSavedMenus, 0, countPages[models.MenuItem](ViewSavedMenus, metrics, collection.Unpaged(gw.FetchSavedMenus)))
	s.stalls = collection.New(ViewStalls, 0, countPages[models.Stall](ViewStalls, metrics, collection.Unpaged(gw.FetchAllStalls)))
	s.savedStalls = collection.New(ViewSavedStalls, 0, countPages[models.Stall](ViewSavedStalls, metrics, collection.Unpaged(gw.FetchSavedStalls)))
	s.random = collection.NewSlot[models.MenuItem](ViewRandomMenu)

	s.loaders = map[string]loader{
		ViewMenus:       s.menus,
		ViewTopMenus:    s.top,
		ViewSavedMenus:  s.savedMenus,
		ViewStalls:      s.stalls,
		ViewSavedStalls: s.savedStalls,
	}

	return s
}

// countPages оборачивает Fetcher учётом загрузок в метриках.
func countPages[T models.Entity](view string, m *Metrics, f collection.Fetcher[T]) collection.Fetcher[T] {
	return func(ctx context.Context, userID string, page, pageSize int) ([]T, error) {
		items, err := f(ctx, userID, page, pageSize)
		m.observePage(view, err)
		return items, err
	}
}

// UserID возвращает текущего пользователя ("" — нет).
func (s *Service) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.userID
}

// SetUser меняет пользователя сессии. При смене (в том числе на "")
// все представления сбрасываются: items пусты, курсор = 1, exhausted = false.
// Возвращает true, если пользователь изменился.
func (s *Service) SetUser(ctx context.Context, userID string) bool {
	const op = "service/SetUser"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == userID {
		return false
	}

	for _, l := range s.loaders {
		l.Reset(userID)
	}
	s.random.Reset(userID)

	attrs := []any{slog.String("op", op), slog.Bool("signed_in", userID != "")}
	if userID != "" {
		attrs = append(attrs, slog.String("user", redact.UserID(userID)))
	}
	log.From(ctx).Info("identity_changed", attrs...)

	s.userID = userID
	s.session++

	return true
}

// SyncIdentity сверяет сессию с провайдером идентичности.
func (s *Service) SyncIdentity(ctx context.Context, p identity.Provider) bool {
	return s.SetUser(ctx, p.CurrentUserID())
}

func (s *Service) currentUser() (string, error) {
	uid := s.UserID()
	if uid == "" {
		return "", ErrNoUser
	}

	return uid, nil
}
