package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pribylovaa/kueater-client/internal/models"
)

// maxErrorBody — сколько байт тела читаем, чтобы достать сообщение об ошибке.
const maxErrorBody = 4 << 10

// Client реализует Gateway поверх HTTP/JSON.
// Таймауты, заголовки и логирование настраиваются через Transport
// переданного http.Client (см. пакет transport).
type Client struct {
	base   *url.URL
	client *http.Client
}

var _ Gateway = (*Client)(nil)

// New создаёт клиент для базового URL эндпойнта (…/exec).
// Если httpClient == nil — используется клиент с таймаутом 15s.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	const op = "gateway/New"

	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("%s: empty base url", op)
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse base url: %w", op, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%s: unsupported scheme %q", op, u.Scheme)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &Client{base: u, client: httpClient}, nil
}

func (c *Client) FetchMenuPage(ctx context.Context, userID string, page, pageSize int) ([]models.MenuItem, error) {
	const op = "gateway/FetchMenuPage"

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("perPage", strconv.Itoa(pageSize))
	q.Set("userId", userID)

	var env envelope[[]menuDTO]
	if err := c.get(ctx, RouteMenuTable, q, &env); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := checkCode(env.Code, env.Message); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return menusFromDTO(env.Data), nil
}

func (c *Client) FetchTopMenus(ctx context.Context, userID string) ([]models.MenuItem, error) {
	const op = "gateway/FetchTopMenus"

	var env envelope[[]menuDTO]
	if err := c.get(ctx, RouteTopMenus, url.Values{"userId": {userID}}, &env); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := checkCode(env.Code, env.Message); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return menusFromDTO(env.Data), nil
}

func (c *Client) FetchRandomMenu(ctx context.Context, userID, foodType string) (models.MenuItem, error) {
	const op = "gateway/FetchRandomMenu"

	q := url.Values{}
	q.Set("foodType", foodType)
	q.Set("userId", userID)

	var env envelope[*menuDTO]
	if err := c.get(ctx, RouteRandomMenu, q, &env); err != nil {
		return models.MenuItem{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := checkCode(env.Code, env.Message); err != nil {
		return models.MenuItem{}, fmt.Errorf("%s: %w", op, err)
	}

	if env.Data == nil || env.Data.ID == "" {
		return models.MenuItem{}, fmt.Errorf("%s: %w", op, &DecodeError{Err: errors.New("empty menu in data")})
	}

	return menuFromDTO(*env.Data), nil
}

func (c *Client) FetchAllStalls(ctx context.Context, userID string) ([]models.Stall, error) {
	const op = "gateway/FetchAllStalls"

	var env envelope[[]stallDTO]
	if err := c.get(ctx, RouteStallTable, url.Values{"userId": {userID}}, &env); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := checkCode(env.Code, env.Message); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return stallsFromDTO(ctx, env.Data), nil
}

func (c *Client) FetchSavedMenus(ctx context.Context, userID string) ([]models.MenuItem, error) {
	const op = "gateway/FetchSavedMenus"

	var env bookmarksEnvelope[menuBookmarkDTO]
	if err := c.get(ctx, RouteMenuBookmarkByUser, url.Values{"userId": {userID}}, &env); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := checkCode(env.Code, env.Message); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.MenuItem, 0, len(env.Bookmarks))
	for _, b := range env.Bookmarks {
		m := menuFromDTO(b.MenuDetails)
		if m.ID == "" {
			m.ID = string(b.MenuID)
		}
		out = append(out, m)
	}

	return out, nil
}

func (c *Client) FetchSavedStalls(ctx context.Context, userID string) ([]models.Stall, error) {
	const op = "gateway/FetchSavedStalls"

	var env bookmarksEnvelope[stallBookmarkDTO]
	if err := c.get(ctx, RouteStallBookmarkByUser, url.Values{"userId": {userID}}, &env); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := checkCode(env.Code, env.Message); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.Stall, 0, len(env.Bookmarks))
	for _, b := range env.Bookmarks {
		s := stallFromDTO(ctx, b.StallDetails)
		if s.ID == "" {
			s.ID = string(b.StallID)
		}
		// Сервер не проставляет флаг в деталях закладки.
		s.Bookmarked = true
		out = append(out, s)
	}

	return out, nil
}

func (c *Client) ToggleMenuBookmark(ctx context.Context, userID, menuID string) error {
	const op = "gateway/ToggleMenuBookmark"

	if err := c.post(ctx, RouteMenuBookmark, menuBookmarkPayload{UserID: userID, MenuID: menuID}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *Client) ToggleStallBookmark(ctx context.Context, userID, stallID string) error {
	const op = "gateway/ToggleStallBookmark"

	if err := c.post(ctx, RouteStallBookmark, stallBookmarkPayload{UserID: userID, StallID: stallID}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *Client) PostMenuFeedback(ctx context.Context, userID, menuID string, feedback models.Feedback) error {
	const op = "gateway/PostMenuFeedback"

	payload := menuFeedbackPayload{UserID: userID, MenuID: menuID, FeedbackType: string(feedback)}
	if err := c.post(ctx, RouteMenuFeedback, payload); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// endpoint собирает URL с route и дополнительными параметрами.
func (c *Client) endpoint(route string, q url.Values) string {
	u := *c.base
	values := u.Query()
	for k, vs := range q {
		for _, v := range vs {
			values.Add(k, v)
		}
	}
	values.Set("route", route)
	u.RawQuery = values.Encode()

	return u.String()
}

// get выполняет GET и декодирует JSON-тело в out.
func (c *Client) get(ctx context.Context, route string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(route, q), nil)
	if err != nil {
		return fmt.Errorf("new_request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Err: err}
	}

	return nil
}

// post отправляет JSON-тело. Ответ без тела — успех;
// если тело есть и в нём доменный код ошибки — *APIError.
func (c *Client) post(ctx context.Context, route string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(route, nil), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new_request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &NetworkError{Err: err}
	}

	var st statusEnvelope
	if len(bytes.TrimSpace(raw)) == 0 || json.Unmarshal(raw, &st) != nil {
		return nil
	}

	return checkCode(st.Code, st.Message)
}

// do выполняет запрос и классифицирует транспортные ошибки и статусы.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(resp)}
	}

	return resp, nil
}

// errorMessage достаёт сообщение из тела ошибки ({"message": "..."})
// или возвращает текст статуса.
func errorMessage(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var st statusEnvelope
	if json.Unmarshal(raw, &st) == nil && strings.TrimSpace(st.Message) != "" {
		return strings.TrimSpace(st.Message)
	}

	return http.StatusText(resp.StatusCode)
}
