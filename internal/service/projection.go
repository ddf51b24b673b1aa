package service

import (
	"github.com/pribylovaa/kueater-client/internal/collection"
	"github.com/pribylovaa/kueater-client/internal/models"
)

// MenuView — снимок представления блюд.
type MenuView = collection.Snapshot[models.MenuItem]

// StallView — снимок представления лавок.
type StallView = collection.Snapshot[models.Stall]

func (s *Service) Menus() MenuView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.menus.Snapshot()
}

func (s *Service) TopMenus() MenuView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.top.Snapshot()
}

// SavedMenus — сохранённые блюда; снятые с закладки скрываются.
func (s *Service) SavedMenus() MenuView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.savedMenus.Snapshot()
	v.Items = bookmarkedOnly(v.Items, func(m models.MenuItem) bool { return m.Bookmarked })

	return v
}

// RandomMenu — последнее случайное блюдо.
func (s *Service) RandomMenu() (models.MenuItem, collection.State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.random.Value()

	return item, s.random.State(), ok
}

func (s *Service) Stalls() StallView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.stalls.Snapshot()
}

// SavedStalls — сохранённые лавки; снятые с закладки скрываются.
func (s *Service) SavedStalls() StallView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.savedStalls.Snapshot()
	v.Items = bookmarkedOnly(v.Items, func(st models.Stall) bool { return st.Bookmarked })

	return v
}

// Menu возвращает блюдо по id из первого представления, где оно есть.
func (s *Service) Menu(id string) (models.MenuItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lookup(s.menuViews(), id)
}

// Stall возвращает лавку по id из первого представления, где она есть.
func (s *Service) Stall(id string) (models.Stall, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lookup(s.stallViews(), id)
}

// view — представление, в котором мутация ищет и правит сущность.
type view[T models.Entity] interface {
	Name() string
	Get(id string) (T, bool)
	UpdateRev(id string, fn func(*T)) (uint64, bool)
	UpdateIfRev(id string, rev uint64, fn func(*T)) bool
}

// menuViews — представления блюд в каноническом порядке.
func (s *Service) menuViews() []view[models.MenuItem] {
	return []view[models.MenuItem]{s.menus, s.top, s.random, s.savedMenus}
}

func (s *Service) stallViews() []view[models.Stall] {
	return []view[models.Stall]{s.stalls, s.savedStalls}
}

func lookup[T models.Entity](views []view[T], id string) (T, bool) {
	for _, v := range views {
		if e, ok := v.Get(id); ok {
			return e, true
		}
	}

	var zero T
	return zero, false
}

func bookmarkedOnly[T any](in []T, keep func(T) bool) []T {
	out := in[:0]
	for _, it := range in {
		if keep(it) {
			out = append(out, it)
		}
	}

	return out
}
