package collection

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pribylovaa/kueater-client/internal/models"
	"github.com/pribylovaa/kueater-client/pkg/log"
)

// Slot — представление из одной сущности, которое целиком заменяется
// каждой загрузкой (например, случайное блюдо).
type Slot[T models.Entity] struct {
	name string

	mu      sync.Mutex
	item    T
	has     bool
	userID  string
	loading bool
	lastErr string
	gen     uint64
	rev     uint64 // растёт при каждой успешной загрузке
}

// NewSlot создаёт пустой слот.
func NewSlot[T models.Entity](name string) *Slot[T] {
	return &Slot[T]{name: name}
}

func (s *Slot[T]) Name() string { return s.name }

// Reset очищает слот и привязывает его к userID.
func (s *Slot[T]) Reset(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	s.item = zero
	s.has = false
	s.userID = userID
	s.loading = false
	s.lastErr = ""
	s.gen++
}

// Load заменяет содержимое результатом fetch.
// При ошибке прежнее содержимое сохраняется, ошибка попадает в LastError.
func (s *Slot[T]) Load(ctx context.Context, fetch func(ctx context.Context, userID string) (T, error)) error {
	const op = "collection/Slot.Load"

	s.mu.Lock()
	if s.userID == "" {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.lastErr = ""
	gen, userID := s.gen, s.userID
	s.mu.Unlock()

	item, err := fetch(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return nil
	}

	s.loading = false

	if err != nil {
		s.lastErr = err.Error()
		log.From(ctx).Warn("slot_failed",
			slog.String("op", op),
			slog.String("view", s.name),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%s: %s: %w", op, s.name, err)
	}

	s.item = item
	s.has = true
	s.rev++

	return nil
}

// Value возвращает текущую сущность, если она есть.
func (s *Slot[T]) Value() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.item, s.has
}

// Get возвращает сущность, если её ключ равен id.
func (s *Slot[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.has && s.item.Key() == id {
		return s.item, true
	}

	var zero T
	return zero, false
}

// Update применяет fn к сущности, если её ключ равен id.
func (s *Slot[T]) Update(id string, fn func(*T)) bool {
	_, ok := s.UpdateRev(id, fn)
	return ok
}

// UpdateRev — Update, возвращающий ревизию содержимого слота.
func (s *Slot[T]) UpdateRev(id string, fn func(*T)) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.has || s.item.Key() != id {
		return 0, false
	}

	fn(&s.item)
	return s.rev, true
}

// UpdateIfRev применяет fn, только если слот с тех пор не перезагружали.
func (s *Slot[T]) UpdateIfRev(id string, rev uint64, fn func(*T)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.has || s.item.Key() != id || s.rev != rev {
		return false
	}

	fn(&s.item)
	return true
}

// State возвращает состояние слота (Page/PageSize не используются).
func (s *Slot[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		UserID:    s.userID,
		Loading:   s.loading,
		Loaded:    s.has,
		Exhausted: true,
		LastError: s.lastErr,
	}
}
