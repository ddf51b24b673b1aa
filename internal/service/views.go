package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pribylovaa/kueater-client/internal/models"
	"github.com/pribylovaa/kueater-client/pkg/log"
)

// EnsureLoaded гарантирует, что представление view загружено для текущего
// пользователя. Повторный вызов — no-op; одновременные вызовы разделяют
// один запрос. Для ViewRandomMenu загрузка выполняется только PickRandomMenu.
//
// Общая загрузка идёт на контексте без отмены (срок ограничивает таймаут
// вызова в транспорте): отмена одного из ожидающих не рвёт её остальным.
// Каждый вызывающий ждёт не дольше своего ctx.
func (s *Service) EnsureLoaded(ctx context.Context, view string) error {
	const op = "service/views/EnsureLoaded"

	if view == ViewRandomMenu {
		return nil
	}

	l, ok := s.loaders[view]
	if !ok {
		return fmt.Errorf("%s: unknown view %q: %w", op, view, ErrInvalidArgument)
	}

	uid, err := s.currentUser()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	detached := context.WithoutCancel(ctx)
	ch := s.loads.DoChan(view+"/"+uid, func() (any, error) {
		return nil, s.load(detached, l, uid, false)
	})

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return fmt.Errorf("%s: %w", op, res.Err)
		}
		if res.Shared {
			log.From(ctx).Debug("load_shared", slog.String("op", op), slog.String("view", view))
		}
	}

	return nil
}

// Refresh перезагружает все пагинированные представления параллельно
// (каждое с первой страницы). Ошибки представлений объединяются;
// каждое представление хранит свою LastError.
func (s *Service) Refresh(ctx context.Context) error {
	const op = "service/views/Refresh"

	uid, err := s.currentUser()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	names := make([]string, 0, len(s.loaders))
	for name := range s.loaders {
		names = append(names, name)
	}
	sort.Strings(names)

	errs := make([]error, len(names))

	var g errgroup.Group
	for i, name := range names {
		l := s.loaders[name]
		g.Go(func() error {
			errs[i] = s.load(ctx, l, uid, true)
			return nil
		})
	}
	_ = g.Wait()

	if err := errors.Join(errs...); err != nil {
		log.From(ctx).Warn("refresh_partial",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// LoadNextMenus подгружает следующую страницу основного списка меню.
// Если список ещё не загружен, загружает первую страницу.
func (s *Service) LoadNextMenus(ctx context.Context) error {
	const op = "service/views/LoadNextMenus"

	uid, err := s.currentUser()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// Загруженный список bind не трогает: LoadNext возьмёт следующую страницу.
	if _, err := s.bind(s.menus, uid, false); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.menus.LoadNext(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// load готовит представление под uid и загружает страницу.
// reload — начать с первой страницы даже у загруженного представления.
func (s *Service) load(ctx context.Context, l loader, uid string, reload bool) error {
	need, err := s.bind(l, uid, reload)
	if err != nil || !need {
		return err
	}

	return l.LoadNext(ctx)
}

// bind под s.mu проверяет, что uid всё ещё пользователь сессии, и при
// необходимости сбрасывает представление под него. Смена пользователя
// после bind сбросит представление заново, а загрузка, начатая до этого,
// будет отброшена коллекцией по поколению.
//
// Возвращает true, если представлению нужна загрузка.
func (s *Service) bind(l loader, uid string, reload bool) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.userID != uid {
		return false, fmt.Errorf("%s: %w", l.Name(), ErrSessionChanged)
	}

	st := l.State()
	switch {
	case reload, st.UserID != uid, st.Stale:
		l.Reset(uid)
	case st.Loaded:
		return false, nil
	}

	return true, nil
}

// PickRandomMenu запрашивает случайное блюдо заданного типа
// и заменяет им представление ViewRandomMenu.
func (s *Service) PickRandomMenu(ctx context.Context, foodType string) (models.MenuItem, error) {
	const op = "service/views/PickRandomMenu"

	foodType = strings.TrimSpace(foodType)
	if foodType == "" {
		return models.MenuItem{}, fmt.Errorf("%s: empty food type: %w", op, ErrInvalidArgument)
	}

	if _, err := s.currentUser(); err != nil {
		return models.MenuItem{}, fmt.Errorf("%s: %w", op, err)
	}

	err := s.random.Load(ctx, func(ctx context.Context, userID string) (models.MenuItem, error) {
		item, err := s.gw.FetchRandomMenu(ctx, userID, foodType)
		s.metrics.observePage(ViewRandomMenu, err)
		return item, err
	})
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("%s: %w", op, err)
	}

	item, ok := s.random.Value()
	if !ok {
		// пользователь сменился во время запроса
		return models.MenuItem{}, fmt.Errorf("%s: %w", op, ErrNoUser)
	}

	return item, nil
}
