package transport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/kueater-client/pkg/log"
	"github.com/stretchr/testify/require"
)

// capHandler — минимальный slog.Handler для захвата последней записи
// и всех атрибутов. Дополнительно ведёт счётчик сообщений по тексту.
type capHandler struct {
	base    []slog.Attr
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
	count   map[string]int
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	out := make(map[string]any, len(h.base)+8)
	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})
	if h.count == nil {
		h.count = make(map[string]int)
	}
	h.count[r.Message]++
	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out
	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.base = append(h.base, attrs...)
	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

// okResponse — ответ-заглушка для терминального RoundTripper.
func okResponse(r *http.Request) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("{}")),
		Header:     http.Header{},
		Request:    r,
	}
}

func newReq(t *testing.T, ctx context.Context) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.test/exec?route=menu_table&userId=u1", nil)
	require.NoError(t, err)
	return req
}

func TestChain_Order(t *testing.T) {
	t.Parallel()

	var order []string
	mk := func(name string) Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}

	rt := Chain(RoundTripFunc(func(r *http.Request) (*http.Response, error) {
		order = append(order, "base")
		return okResponse(r), nil
	}), mk("m1"), mk("m2"))

	_, err := rt.RoundTrip(newReq(t, context.Background()))
	require.NoError(t, err)
	require.Equal(t, []string{"m1", "m2", "base"}, order)
}

func TestWithMetadata_UsesRequestIDFromContext(t *testing.T) {
	t.Parallel()

	var got *http.Request
	rt := Chain(RoundTripFunc(func(r *http.Request) (*http.Response, error) {
		got = r
		return okResponse(r), nil
	}), WithMetadata("kueater-client"))

	req := newReq(t, WithRequestID(context.Background(), "rid-123"))
	_, err := rt.RoundTrip(req)
	require.NoError(t, err)

	require.Equal(t, "rid-123", got.Header.Get(HeaderRequestID))
	require.Equal(t, "kueater-client", got.Header.Get("User-Agent"))
	// исходный запрос не тронут.
	require.Empty(t, req.Header.Get(HeaderRequestID))
}

func TestWithMetadata_GeneratesUUID_WhenMissing(t *testing.T) {
	t.Parallel()

	var got *http.Request
	rt := Chain(RoundTripFunc(func(r *http.Request) (*http.Response, error) {
		got = r
		return okResponse(r), nil
	}), WithMetadata(""))

	_, err := rt.RoundTrip(newReq(t, context.Background()))
	require.NoError(t, err)

	_, perr := uuid.Parse(got.Header.Get(HeaderRequestID))
	require.NoError(t, perr)
	require.NotEqual(t, "kueater-client", got.Header.Get("User-Agent"))
}

func TestWithTimeout_SetsDeadline_AndSeesDeadlineExceeded(t *testing.T) {
	t.Parallel()

	const d = 40 * time.Millisecond
	rt := Chain(RoundTripFunc(func(r *http.Request) (*http.Response, error) {
		<-r.Context().Done()
		return nil, r.Context().Err()
	}), WithTimeout(d))

	start := time.Now()
	_, err := rt.RoundTrip(newReq(t, context.Background()))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.GreaterOrEqual(t, time.Since(start), d)
}

func TestWithTimeout_KeepsEarlierParentDeadline(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()
	parentDL, _ := parent.Deadline()

	var childDL time.Time
	rt := Chain(RoundTripFunc(func(r *http.Request) (*http.Response, error) {
		var ok bool
		childDL, ok = r.Context().Deadline()
		require.True(t, ok)
		return okResponse(r), nil
	}), WithTimeout(time.Second))

	_, err := rt.RoundTrip(newReq(t, parent))
	require.NoError(t, err)
	require.WithinDuration(t, parentDL, childDL, time.Millisecond)
}

// Дедлайн фасада длиннее таймаута вызова: действует таймаут вызова.
func TestWithTimeout_ShortensLaterParentDeadline(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()

	const d = 50 * time.Millisecond
	var childDL time.Time
	rt := Chain(RoundTripFunc(func(r *http.Request) (*http.Response, error) {
		var ok bool
		childDL, ok = r.Context().Deadline()
		require.True(t, ok)
		return okResponse(r), nil
	}), WithTimeout(d))

	start := time.Now()
	_, err := rt.RoundTrip(newReq(t, parent))
	require.NoError(t, err)
	require.WithinDuration(t, start.Add(d), childDL, 20*time.Millisecond)
}

func TestWithTimeout_ZeroDuration_PassThrough(t *testing.T) {
	t.Parallel()

	var hasDL bool
	rt := Chain(RoundTripFunc(func(r *http.Request) (*http.Response, error) {
		_, hasDL = r.Context().Deadline()
		return okResponse(r), nil
	}), WithTimeout(0))

	_, err := rt.RoundTrip(newReq(t, context.Background()))
	require.NoError(t, err)
	require.False(t, hasDL, "no deadline expected when d <= 0")
}

// Дедлайн действует до закрытия тела: чтение тела после RoundTrip
// не должно упираться в уже отменённый контекст.
func TestWithTimeout_BodyReadableAfterRoundTrip(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	t.Cleanup(srv.Close)

	client := &http.Client{Transport: Chain(http.DefaultTransport, WithTimeout(time.Second))}
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.JSONEq(t, `{"data":[]}`, string(body))
}

func TestWithLogging_LogsAndPutsLoggerIntoContext(t *testing.T) {
	t.Parallel()

	h := &capHandler{}
	base := slog.New(h)

	rt := Chain(RoundTripFunc(func(r *http.Request) (*http.Response, error) {
		log.From(r.Context()).Info("probe")
		return okResponse(r), nil
	}), WithMetadata(""), WithLogging(base))

	_, err := rt.RoundTrip(newReq(t, WithRequestID(context.Background(), "rid-1")))
	require.NoError(t, err)

	require.Equal(t, 1, h.count["probe"])
	require.Equal(t, "http_out", h.lastMsg)
	require.Equal(t, slog.LevelInfo, h.lastLvl)
	require.Equal(t, "rid-1", h.attrs["request_id"])
	require.Equal(t, "menu_table", h.attrs["route"])
	require.EqualValues(t, http.StatusOK, h.attrs["status"])

	if d, ok := h.attrs["dur"].(time.Duration); ok {
		require.GreaterOrEqual(t, d, time.Duration(0))
	} else {
		t.Fatalf("dur attr not found or wrong type: %#v", h.attrs["dur"])
	}
}

func TestWithLogging_TransportError_LogsWarn(t *testing.T) {
	t.Parallel()

	h := &capHandler{}
	rt := Chain(RoundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: refused")
	}), WithLogging(slog.New(h)))

	_, err := rt.RoundTrip(newReq(t, context.Background()))
	require.Error(t, err)
	require.Equal(t, "http_out", h.lastMsg)
	require.Equal(t, slog.LevelWarn, h.lastLvl)
	require.Contains(t, h.attrs["err"], "refused")
}
