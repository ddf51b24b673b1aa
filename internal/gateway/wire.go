package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pribylovaa/kueater-client/internal/models"
	"github.com/pribylovaa/kueater-client/pkg/log"
)

// Формы тел ответов удалённого API. Ключи полей — в том виде,
// в каком их отдаёт бэкенд (заголовки таблицы).

// envelope — обёртка ответа со списком/объектом в data.
// Code отсутствует в большинстве ответов; если он есть и не 2xx — это ошибка домена.
type envelope[T any] struct {
	Code    *int   `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// bookmarksEnvelope — ответ *_bookmark_by_user.
type bookmarksEnvelope[T any] struct {
	Code      *int   `json:"code"`
	Message   string `json:"message"`
	UserID    string `json:"userId"`
	Bookmarks []T    `json:"bookmarks"`
}

// statusEnvelope — необязательное тело ответа POST-маршрутов.
type statusEnvelope struct {
	Code    *int   `json:"code"`
	Message string `json:"message"`
}

type menuDTO struct {
	ID            flexString `json:"Menu ID"`
	StallLocation flexString `json:"Stall Location"`
	StallName     string     `json:"Stall Name EN"`
	Name          string     `json:"Menu EN"`
	Price         int        `json:"Price (Baht)"`
	ImageURL      string     `json:"Food Picture"`
	IsBookmarked  bool       `json:"isBookmarked"`
	Like          int        `json:"like"`
	Dislike       int        `json:"dislike"`
	UserFeedback  *string    `json:"userFeedback"`
}

type stallDTO struct {
	Location     flexString `json:"Stall Location"`
	NameTH       string     `json:"Stall Name TH"`
	NameEN       string     `json:"Stall Name EN"`
	ProfilePic   string     `json:"CDN profile pic"`
	FoodTypeEN   string     `json:"Stall food type EN"`
	OpenTime     string     `json:"Open time"`
	CloseTime    string     `json:"Close time"`
	IsBookmarked bool       `json:"isBookmarked"`
	LikeCount    int        `json:"likeCount"`
}

type menuBookmarkDTO struct {
	ID          string     `json:"id"`
	MenuID      flexString `json:"menuId"`
	Timestamp   string     `json:"timestamp"`
	UserID      string     `json:"userId"`
	MenuDetails menuDTO    `json:"menuDetails"`
}

type stallBookmarkDTO struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	StallID      flexString `json:"stallId"`
	Timestamp    string     `json:"timestamp"`
	StallDetails stallDTO   `json:"stallDetails"`
}

// Тела POST-запросов.

type menuBookmarkPayload struct {
	UserID string `json:"userId"`
	MenuID string `json:"menuId"`
}

type stallBookmarkPayload struct {
	UserID  string `json:"userId"`
	StallID string `json:"stallId"`
}

type menuFeedbackPayload struct {
	UserID       string `json:"userId"`
	MenuID       string `json:"menuId"`
	FeedbackType string `json:"feedbackType"`
}

// flexString принимает как JSON-строку, так и число:
// идентификаторы из таблицы иногда приходят числами.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("flexString: %w", err)
	}
	*s = flexString(n.String())

	return nil
}

// checkCode проверяет доменный код ответа.
func checkCode(code *int, message string) error {
	if code == nil || (*code >= 200 && *code < 300) {
		return nil
	}

	msg := strings.TrimSpace(message)
	if msg == "" {
		msg = http.StatusText(*code)
	}

	return &APIError{Status: *code, Message: msg}
}

func menuFromDTO(d menuDTO) models.MenuItem {
	fb := models.FeedbackNone
	if d.UserFeedback != nil {
		if f, err := models.ParseFeedback(*d.UserFeedback); err == nil {
			fb = f
		}
	}

	return models.MenuItem{
		ID:           string(d.ID),
		StallID:      string(d.StallLocation),
		StallName:    d.StallName,
		Name:         d.Name,
		Price:        d.Price,
		ImageURL:     d.ImageURL,
		Bookmarked:   d.IsBookmarked,
		LikeCount:    max(d.Like, 0),
		DislikeCount: max(d.Dislike, 0),
		UserFeedback: fb,
	}
}

func menusFromDTO(items []menuDTO) []models.MenuItem {
	out := make([]models.MenuItem, 0, len(items))
	for _, it := range items {
		out = append(out, menuFromDTO(it))
	}

	return out
}

func stallFromDTO(ctx context.Context, d stallDTO) models.Stall {
	return models.Stall{
		ID:              string(d.Location),
		NameEN:          d.NameEN,
		NameTH:          d.NameTH,
		ProfileImageURL: d.ProfilePic,
		FoodType:        d.FoodTypeEN,
		OpenTime:        clockOrEmpty(ctx, d.OpenTime),
		CloseTime:       clockOrEmpty(ctx, d.CloseTime),
		Bookmarked:      d.IsBookmarked,
		LikeCount:       max(d.LikeCount, 0),
	}
}

func stallsFromDTO(ctx context.Context, items []stallDTO) []models.Stall {
	out := make([]models.Stall, 0, len(items))
	for _, it := range items {
		out = append(out, stallFromDTO(ctx, it))
	}

	return out
}

// clockOrEmpty приводит время работы ларька к виду "HH.mm".
// Пустое или неразборчивое значение даёт "".
func clockOrEmpty(ctx context.Context, raw string) string {
	v, err := formatClock(raw)
	if err != nil {
		log.From(ctx).Warn("invalid_time",
			slog.String("value", raw),
			slog.String("err", err.Error()),
		)
		return ""
	}

	return v
}

// formatClock берёт часть после "T" и до "." (ISO-дата из таблицы вида
// 1899-12-30T08:30:00.000Z) и форматирует её как "15.04".
func formatClock(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	if i := strings.Index(raw, "T"); i >= 0 {
		raw = raw[i+1:]
	}
	if i := strings.Index(raw, "."); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.TrimSuffix(raw, "Z")

	var lastErr error
	for _, layout := range []string{"15:04:05", "15:04"} {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.Format("15.04"), nil
		}
		lastErr = err
	}

	return "", lastErr
}
