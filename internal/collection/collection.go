// collection — in-memory коллекции сущностей для представлений клиента.
//
// Collection — упорядоченная, дедуплицированная по идентичности
// последовательность с курсором страниц, признаком исчерпания и последней
// ошибкой загрузки. Загрузка — только вперёд, страницы строго последовательно.
//
// Slot — представление из одной сущности (случайный выбор блюда).
//
// Смена пользователя переводит коллекцию в новое поколение: ответы,
// запрошенные в старом поколении, отбрасываются.
package collection

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pribylovaa/kueater-client/internal/models"
	"github.com/pribylovaa/kueater-client/pkg/log"
)

// Fetcher загружает страницу page (нумерация с 1) размера pageSize.
type Fetcher[T models.Entity] func(ctx context.Context, userID string, page, pageSize int) ([]T, error)

// Unpaged адаптирует загрузку целого списка к Fetcher.
// Используется вместе с pageSize <= 0: первая успешная загрузка исчерпывает коллекцию.
func Unpaged[T models.Entity](fetch func(ctx context.Context, userID string) ([]T, error)) Fetcher[T] {
	return func(ctx context.Context, userID string, _, _ int) ([]T, error) {
		return fetch(ctx, userID)
	}
}

// State — состояние загрузки коллекции.
type State struct {
	UserID    string
	Page      int // следующая страница к загрузке
	PageSize  int
	Exhausted bool
	Loading   bool
	Loaded    bool // хотя бы одна страница загружена для UserID
	Stale     bool
	LastError string
}

// Snapshot — копия содержимого и состояния на момент вызова.
type Snapshot[T models.Entity] struct {
	Items []T
	State
}

// Collection — пагинированная коллекция одного типа сущностей одного пользователя.
// Безопасна для конкурентного использования.
type Collection[T models.Entity] struct {
	name     string
	pageSize int
	fetch    Fetcher[T]

	mu        sync.Mutex
	items     []T
	index     map[string]int
	userID    string
	page      int
	exhausted bool
	loading   bool
	loaded    bool
	stale     bool
	lastErr   string
	gen       uint64

	// revs — ревизия каждой сущности; seq не сбрасывается Reset,
	// поэтому ревизии не повторяются.
	revs map[string]uint64
	seq  uint64
}

// New создаёт пустую коллекцию. pageSize <= 0 — коллекция без пагинации.
func New[T models.Entity](name string, pageSize int, fetch Fetcher[T]) *Collection[T] {
	return &Collection[T]{
		name:     name,
		pageSize: pageSize,
		fetch:    fetch,
		index:    make(map[string]int),
		revs:     make(map[string]uint64),
		page:     1,
	}
}

func (c *Collection[T]) Name() string { return c.name }

// Reset очищает коллекцию и привязывает её к userID:
// items пусты, курсор = 1, exhausted = false, ошибка сброшена.
// Незавершённые загрузки прошлого поколения будут отброшены.
func (c *Collection[T]) Reset(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetLocked(userID)
}

func (c *Collection[T]) resetLocked(userID string) {
	c.items = nil
	c.index = make(map[string]int)
	c.revs = make(map[string]uint64)
	c.userID = userID
	c.page = 1
	c.exhausted = false
	c.loading = false
	c.loaded = false
	c.stale = false
	c.lastErr = ""
	c.gen++
}

// Load сбрасывает коллекцию под userID и загружает первую страницу.
func (c *Collection[T]) Load(ctx context.Context, userID string) error {
	c.Reset(userID)
	return c.LoadNext(ctx)
}

// EnsureLoaded — идемпотентная загрузка: no-op, если для userID уже
// загружена хотя бы одна страница. Другой userID или Invalidate — полный Load.
func (c *Collection[T]) EnsureLoaded(ctx context.Context, userID string) error {
	c.mu.Lock()
	sameUser := c.userID == userID
	loaded := c.loaded
	stale := c.stale
	c.mu.Unlock()

	switch {
	case !sameUser, stale:
		return c.Load(ctx, userID)
	case loaded:
		return nil
	default:
		return c.LoadNext(ctx)
	}
}

// Invalidate помечает содержимое устаревшим: следующий EnsureLoaded
// перезагрузит коллекцию с первой страницы. Текущие items остаются видимыми.
func (c *Collection[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		c.stale = true
	}
}

// LoadNext загружает следующую страницу.
//
// No-op (nil, без сетевого вызова), если загрузка уже идёт, коллекция
// исчерпана или пользователь не задан. При ошибке items и курсор не
// меняются, ошибка сохраняется в LastError, loading сбрасывается —
// повторный LoadNext возможен.
func (c *Collection[T]) LoadNext(ctx context.Context) error {
	const op = "collection/LoadNext"

	c.mu.Lock()
	if c.loading || c.exhausted || c.userID == "" {
		c.mu.Unlock()
		return nil
	}

	c.loading = true
	c.lastErr = ""
	gen, userID, page := c.gen, c.userID, c.page
	c.mu.Unlock()

	lg := log.From(ctx).With(
		slog.String("op", op),
		slog.String("view", c.name),
		slog.Int("page", page),
	)

	items, err := c.fetch(ctx, userID, page, c.pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		lg.Debug("page_dropped")
		return nil
	}

	c.loading = false

	if err != nil {
		c.lastErr = err.Error()
		lg.Warn("page_failed", slog.String("err", err.Error()))
		return fmt.Errorf("%s: %s: %w", op, c.name, err)
	}

	for _, it := range items {
		c.upsertLocked(it)
	}

	c.page++
	c.loaded = true
	if c.pageSize <= 0 || len(items) < c.pageSize {
		c.exhausted = true
	}

	lg.Debug("page_loaded",
		slog.Int("fetched", len(items)),
		slog.Int("total", len(c.items)),
		slog.Bool("exhausted", c.exhausted),
	)

	return nil
}

// upsertLocked заменяет сущность с тем же ключом или добавляет её в конец.
// Любая запись из загрузки даёт сущности новую ревизию.
func (c *Collection[T]) upsertLocked(it T) {
	c.seq++
	c.revs[it.Key()] = c.seq

	if i, ok := c.index[it.Key()]; ok {
		c.items[i] = it
		return
	}

	c.index[it.Key()] = len(c.items)
	c.items = append(c.items, it)
}

// Get возвращает сущность по ключу.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i, ok := c.index[id]; ok {
		return c.items[i], true
	}

	var zero T
	return zero, false
}

// Update применяет fn к сущности с ключом id на месте.
// Возвращает false, если такой сущности в коллекции нет.
// fn не должна менять ключ.
func (c *Collection[T]) Update(id string, fn func(*T)) bool {
	_, ok := c.UpdateRev(id, fn)
	return ok
}

// UpdateRev — Update, возвращающий ревизию сущности.
// Локальные правки ревизию не меняют, меняет только загрузка.
func (c *Collection[T]) UpdateRev(id string, fn func(*T)) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[id]
	if !ok {
		return 0, false
	}

	fn(&c.items[i])
	return c.revs[id], true
}

// UpdateIfRev применяет fn, только если ревизия сущности всё ещё rev,
// то есть её не заменила загрузка и коллекцию не сбрасывали.
func (c *Collection[T]) UpdateIfRev(id string, rev uint64, fn func(*T)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[id]
	if !ok || c.revs[id] != rev {
		return false
	}

	fn(&c.items[i])
	return true
}

// Snapshot возвращает копию элементов и состояния.
func (c *Collection[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot[T]{
		Items: append(make([]T, 0, len(c.items)), c.items...),
		State: c.stateLocked(),
	}
}

// State возвращает состояние загрузки.
func (c *Collection[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stateLocked()
}

func (c *Collection[T]) stateLocked() State {
	return State{
		UserID:    c.userID,
		Page:      c.page,
		PageSize:  c.pageSize,
		Exhausted: c.exhausted,
		Loading:   c.loading,
		Loaded:    c.loaded,
		Stale:     c.stale,
		LastError: c.lastErr,
	}
}
