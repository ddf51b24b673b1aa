package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pribylovaa/kueater-client/internal/gateway"
	"github.com/pribylovaa/kueater-client/internal/models"
	"github.com/pribylovaa/kueater-client/pkg/log"
)

// Kind — вид мутации.
type Kind string

const (
	KindBookmark Kind = "bookmark"
	KindFeedback Kind = "feedback"
)

// Outcome — итог мутации.
type Outcome string

const (
	OutcomeCommitted  Outcome = "committed"
	OutcomeRolledBack Outcome = "rolled_back"
)

// Сообщения пользователю при откате по ответу API.
const (
	msgBookmarkFailed = "failed to toggle bookmark"
	msgFeedbackFailed = "failed to update feedback"
)

// Result — итог оптимистичной мутации.
// Откат не является ошибкой вызова: Reason хранит причину, Message — текст для UI.
type Result struct {
	Ticket  string
	Outcome Outcome
	Reason  error
	Message string
}

func (r Result) Committed() bool { return r.Outcome == OutcomeCommitted }

// mutation описывает изменение одного поля сущности с идентификатором id
// во всех представлениях views.
type mutation[T models.Entity, V comparable] struct {
	kind    Kind
	entity  string
	id      string
	views   []view[T]
	read    func(T) V
	write   func(*T, V)
	next    func(V) V
	send    func(ctx context.Context, userID string) error
	failMsg string
	// onCommit вызывается после подтверждения с записанным значением.
	onCommit func(V)
}

type prior[T models.Entity, V comparable] struct {
	view  view[T]
	value V
	rev   uint64
}

// run выполняет мутацию:
//  1. ждёт завершения предыдущей мутации того же вида над той же сущностью;
//  2. вычисляет новое значение из первого представления, где сущность есть,
//     и одним шагом записывает его во все представления, запоминая прежние;
//  3. отправляет запрос;
//  4. при любой ошибке возвращает прежние значения в те представления,
//     где сущность с тех пор не перезагружалась (ревизия не изменилась).
func run[T models.Entity, V comparable](ctx context.Context, s *Service, m mutation[T, V]) (Result, error) {
	const op = "service/mutation/run"

	unlock, err := s.keys.Lock(ctx, string(m.kind)+"/"+m.entity+"/"+m.id)
	if err != nil {
		return Result{}, err
	}
	defer unlock()

	s.mu.Lock()
	uid, session := s.userID, s.session
	if uid == "" {
		s.mu.Unlock()
		return Result{}, ErrNoUser
	}

	cur, ok := lookup(m.views, m.id)
	if !ok {
		s.mu.Unlock()
		return Result{}, ErrUnknownEntity
	}

	next := m.next(m.read(cur))
	priors := make([]prior[T, V], 0, len(m.views))
	for _, v := range m.views {
		var was V
		rev, ok := v.UpdateRev(m.id, func(e *T) {
			was = m.read(*e)
			m.write(e, next)
		})
		if ok {
			priors = append(priors, prior[T, V]{view: v, value: was, rev: rev})
		}
	}
	s.mu.Unlock()

	ticket := s.newTicket()
	started := time.Now()

	lg := log.From(ctx).With(
		slog.String("op", op),
		slog.String("kind", string(m.kind)),
		slog.String("entity", m.entity),
		slog.String("entity_id", m.id),
		slog.String("ticket", ticket),
	)
	lg.Debug("mutation_applied", slog.Int("views", len(priors)))

	if err := m.send(ctx, uid); err != nil {
		restored := 0

		s.mu.Lock()
		if s.session == session {
			for _, p := range priors {
				if p.view.UpdateIfRev(m.id, p.rev, func(e *T) { m.write(e, p.value) }) {
					restored++
				}
			}
		}
		s.mu.Unlock()

		s.metrics.observeMutation(m.kind, OutcomeRolledBack, time.Since(started))
		lg.Warn("mutation_rolled_back",
			slog.Int("restored", restored),
			slog.String("err", err.Error()),
		)

		return Result{
			Ticket:  ticket,
			Outcome: OutcomeRolledBack,
			Reason:  err,
			Message: rollbackMessage(m.failMsg, err),
		}, nil
	}

	if m.onCommit != nil {
		m.onCommit(next)
	}

	s.metrics.observeMutation(m.kind, OutcomeCommitted, time.Since(started))
	lg.Info("mutation_committed")

	return Result{Ticket: ticket, Outcome: OutcomeCommitted}, nil
}

func rollbackMessage(apiMsg string, err error) string {
	if gateway.IsAPI(err) {
		return apiMsg
	}

	return "error: " + err.Error()
}

// ToggleMenuBookmark переключает закладку блюда.
//
// Ошибки:
//   - ErrInvalidArgument — пустой menuID;
//   - ErrNoUser — нет пользователя;
//   - ErrUnknownEntity — блюда нет ни в одном представлении (запрос не отправляется);
//   - ошибка ctx — не дождались предыдущей мутации этой закладки.
func (s *Service) ToggleMenuBookmark(ctx context.Context, menuID string) (Result, error) {
	const op = "service/mutation/ToggleMenuBookmark"

	menuID = strings.TrimSpace(menuID)
	if menuID == "" {
		return Result{}, fmt.Errorf("%s: empty menu id: %w", op, ErrInvalidArgument)
	}

	res, err := run(ctx, s, mutation[models.MenuItem, bool]{
		kind:   KindBookmark,
		entity: "menu",
		id:     menuID,
		views:  s.menuViews(),
		read:   func(m models.MenuItem) bool { return m.Bookmarked },
		write:  func(m *models.MenuItem, v bool) { m.Bookmarked = v },
		next:   func(v bool) bool { return !v },
		send: func(ctx context.Context, userID string) error {
			return s.gw.ToggleMenuBookmark(ctx, userID, menuID)
		},
		failMsg: msgBookmarkFailed,
		onCommit: func(bookmarked bool) {
			if _, ok := s.savedMenus.Get(menuID); bookmarked && !ok {
				s.savedMenus.Invalidate()
			}
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	return res, nil
}

// ToggleStallBookmark переключает закладку лавки. Ошибки как у ToggleMenuBookmark.
func (s *Service) ToggleStallBookmark(ctx context.Context, stallID string) (Result, error) {
	const op = "service/mutation/ToggleStallBookmark"

	stallID = strings.TrimSpace(stallID)
	if stallID == "" {
		return Result{}, fmt.Errorf("%s: empty stall id: %w", op, ErrInvalidArgument)
	}

	res, err := run(ctx, s, mutation[models.Stall, bool]{
		kind:   KindBookmark,
		entity: "stall",
		id:     stallID,
		views:  s.stallViews(),
		read:   func(st models.Stall) bool { return st.Bookmarked },
		write:  func(st *models.Stall, v bool) { st.Bookmarked = v },
		next:   func(v bool) bool { return !v },
		send: func(ctx context.Context, userID string) error {
			return s.gw.ToggleStallBookmark(ctx, userID, stallID)
		},
		failMsg: msgBookmarkFailed,
		onCommit: func(bookmarked bool) {
			if _, ok := s.savedStalls.Get(stallID); bookmarked && !ok {
				s.savedStalls.Invalidate()
			}
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	return res, nil
}

// PostMenuFeedback применяет реакцию like/dislike к блюду по таблице
// переходов FeedbackState.Apply: повтор той же реакции снимает её.
// Новое состояние вычисляется один раз и одинаково записывается
// во все представления.
func (s *Service) PostMenuFeedback(ctx context.Context, menuID string, feedback models.Feedback) (Result, error) {
	const op = "service/mutation/PostMenuFeedback"

	menuID = strings.TrimSpace(menuID)
	if menuID == "" {
		return Result{}, fmt.Errorf("%s: empty menu id: %w", op, ErrInvalidArgument)
	}

	if feedback != models.FeedbackLike && feedback != models.FeedbackDislike {
		return Result{}, fmt.Errorf("%s: feedback %q: %w", op, feedback, ErrInvalidArgument)
	}

	res, err := run(ctx, s, mutation[models.MenuItem, models.FeedbackState]{
		kind:   KindFeedback,
		entity: "menu",
		id:     menuID,
		views:  s.menuViews(),
		read:   models.MenuItem.FeedbackState,
		write:  (*models.MenuItem).SetFeedbackState,
		next:   func(v models.FeedbackState) models.FeedbackState { return v.Apply(feedback) },
		send: func(ctx context.Context, userID string) error {
			return s.gw.PostMenuFeedback(ctx, userID, menuID, feedback)
		},
		failMsg: msgFeedbackFailed,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	return res, nil
}
