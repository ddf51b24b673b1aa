package models

import (
	"fmt"
	"strings"
)

// Feedback — реакция текущего пользователя на блюдо.
// Пустое значение означает отсутствие реакции.
type Feedback string

const (
	FeedbackNone    Feedback = ""
	FeedbackLike    Feedback = "like"
	FeedbackDislike Feedback = "dislike"
)

// ParseFeedback разбирает запрошенный тип реакции.
// Допустимы только "like" и "dislike" (регистр и пробелы игнорируются).
func ParseFeedback(s string) (Feedback, error) {
	switch f := Feedback(strings.ToLower(strings.TrimSpace(s))); f {
	case FeedbackLike, FeedbackDislike:
		return f, nil
	default:
		return FeedbackNone, fmt.Errorf("unknown feedback type %q", s)
	}
}

// MenuItem — блюдо ларька.
type MenuItem struct {
	ID        string
	StallID   string // Stall Location
	StallName string
	Name      string
	Price     int
	ImageURL  string

	Bookmarked   bool
	LikeCount    int
	DislikeCount int
	UserFeedback Feedback
}

func (m MenuItem) Key() string { return m.ID }

// FeedbackState — поля блюда, которые меняет реакция пользователя.
// Меняются всегда вместе, одной записью.
type FeedbackState struct {
	UserFeedback Feedback
	LikeCount    int
	DislikeCount int
}

// FeedbackState возвращает текущее состояние реакции.
func (m MenuItem) FeedbackState() FeedbackState {
	return FeedbackState{
		UserFeedback: m.UserFeedback,
		LikeCount:    m.LikeCount,
		DislikeCount: m.DislikeCount,
	}
}

// SetFeedbackState записывает состояние реакции.
func (m *MenuItem) SetFeedbackState(s FeedbackState) {
	m.UserFeedback = s.UserFeedback
	m.LikeCount = s.LikeCount
	m.DislikeCount = s.DislikeCount
}

// Apply применяет запрошенную реакцию по таблице переходов:
//
//	none    + like    -> like     (like+1)
//	none    + dislike -> dislike  (dislike+1)
//	like    + like    -> none     (like-1)
//	like    + dislike -> dislike  (like-1, dislike+1)
//	dislike + dislike -> none     (dislike-1)
//	dislike + like    -> like     (like+1, dislike-1)
//
// Повторная реакция того же типа снимает её. Счётчики не уходят ниже нуля.
func (s FeedbackState) Apply(requested Feedback) FeedbackState {
	out := s

	switch s.UserFeedback {
	case FeedbackLike:
		out.LikeCount--
	case FeedbackDislike:
		out.DislikeCount--
	}

	if s.UserFeedback == requested {
		out.UserFeedback = FeedbackNone
	} else {
		out.UserFeedback = requested
		switch requested {
		case FeedbackLike:
			out.LikeCount++
		case FeedbackDislike:
			out.DislikeCount++
		}
	}

	out.LikeCount = max(out.LikeCount, 0)
	out.DislikeCount = max(out.DislikeCount, 0)

	return out
}
