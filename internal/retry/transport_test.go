package retry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordSleeps replaces real waiting so tests observe the backoff schedule.
func recordSleeps(t *Transport) *[]time.Duration {
	var waits []time.Duration
	t.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	return &waits
}

func flakyServer(t *testing.T, failures int32, failStatus int) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= failures {
			w.WriteHeader(failStatus)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestNewTransport_Defaults(t *testing.T) {
	tr := NewTransport(nil)

	assert.Equal(t, http.DefaultTransport, tr.base)
	assert.Equal(t, defaultMaxRetries, tr.maxRetries)
	assert.Equal(t, defaultInitialDelay, tr.initialDelay)
	assert.Equal(t, defaultMaxDelay, tr.maxDelay)
	assert.InDelta(t, defaultMultiplier, tr.multiplier, 0)
}

func TestNewTransport_IgnoresInvalidOptions(t *testing.T) {
	tr := NewTransport(nil,
		WithMaxRetries(-1),
		WithInitialDelay(0),
		WithMaxDelay(-time.Second),
		WithMultiplier(0.5),
		WithChecker(nil),
	)

	assert.Equal(t, defaultMaxRetries, tr.maxRetries)
	assert.Equal(t, defaultInitialDelay, tr.initialDelay)
	assert.Equal(t, defaultMaxDelay, tr.maxDelay)
	assert.InDelta(t, defaultMultiplier, tr.multiplier, 0)
	assert.NotNil(t, tr.checker)
}

func TestRoundTrip_RetriesServerErrors(t *testing.T) {
	srv, calls := flakyServer(t, 2, http.StatusBadGateway)

	tr := NewTransport(nil, WithMaxRetries(3), WithInitialDelay(100*time.Millisecond))
	waits := recordSleeps(tr)

	resp, err := (&http.Client{Transport: tr}).Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(calls))
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, *waits)
}

func TestRoundTrip_GivesUpAfterMaxRetries(t *testing.T) {
	srv, calls := flakyServer(t, 10, http.StatusInternalServerError)

	tr := NewTransport(nil, WithMaxRetries(2))
	recordSleeps(tr)

	resp, err := (&http.Client{Transport: tr}).Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, "last response is surfaced")
	assert.Equal(t, int32(3), atomic.LoadInt32(calls))
}

func TestRoundTrip_DoesNotRetryClientErrors(t *testing.T) {
	srv, calls := flakyServer(t, 10, http.StatusNotFound)

	tr := NewTransport(nil)
	waits := recordSleeps(tr)

	resp, err := (&http.Client{Transport: tr}).Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.Empty(t, *waits)
}

func TestRoundTrip_MaxDelayCap(t *testing.T) {
	srv, _ := flakyServer(t, 4, http.StatusServiceUnavailable)

	tr := NewTransport(nil,
		WithMaxRetries(4),
		WithInitialDelay(time.Second),
		WithMaxDelay(3*time.Second),
		WithMultiplier(4),
	)
	waits := recordSleeps(tr)

	resp, err := (&http.Client{Transport: tr}).Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, []time.Duration{
		time.Second, 3 * time.Second, 3 * time.Second, 3 * time.Second,
	}, *waits)
}

func TestRoundTrip_HonoursRetryAfter(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := NewTransport(nil, WithInitialDelay(10*time.Millisecond))
	waits := recordSleeps(tr)

	resp, err := (&http.Client{Transport: tr}).Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, []time.Duration{2 * time.Second}, *waits)
}

func TestRoundTrip_ReplaysBody(t *testing.T) {
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := make([]byte, 16)
		n, _ := r.Body.Read(b)
		bodies = append(bodies, string(b[:n]))
		if len(bodies) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := NewTransport(nil)
	recordSleeps(tr)

	req, err := http.NewRequest(http.MethodPost, srv.URL, strings.NewReader("payload"))
	require.NoError(t, err)
	req.Header.Set("Idempotency-Key", "abc-123")

	resp, err := (&http.Client{Transport: tr}).Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, []string{"payload", "payload"}, bodies)
}

func TestRoundTrip_DoesNotRetryNonIdempotent(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			srv, calls := flakyServer(t, 10, http.StatusBadGateway)

			tr := NewTransport(nil)
			waits := recordSleeps(tr)

			req, err := http.NewRequest(method, srv.URL, strings.NewReader("payload"))
			require.NoError(t, err)

			resp, err := (&http.Client{Transport: tr}).Do(req)
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
			assert.Equal(t, int32(1), atomic.LoadInt32(calls))
			assert.Empty(t, *waits)
		})
	}
}

func TestRoundTrip_RetriesHead(t *testing.T) {
	srv, calls := flakyServer(t, 1, http.StatusServiceUnavailable)

	tr := NewTransport(nil)
	recordSleeps(tr)

	resp, err := (&http.Client{Transport: tr}).Head(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestRoundTrip_ContextCancelledDuringBackoff(t *testing.T) {
	srv, calls := flakyServer(t, 10, http.StatusBadGateway)

	ctx, cancel := context.WithCancel(context.Background())
	tr := NewTransport(nil, WithMaxRetries(5))
	tr.sleep = func(context.Context, time.Duration) error {
		cancel()
		return context.Canceled
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	_, err = (&http.Client{Transport: tr}).Do(req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestDefaultChecker(t *testing.T) {
	assert.True(t, DefaultChecker(errors.New("dial tcp: refused"), nil))
	assert.False(t, DefaultChecker(nil, nil))
	assert.True(t, DefaultChecker(nil, &http.Response{StatusCode: http.StatusTooManyRequests}))
	assert.True(t, DefaultChecker(nil, &http.Response{StatusCode: http.StatusGatewayTimeout}))
	assert.False(t, DefaultChecker(nil, &http.Response{StatusCode: http.StatusForbidden}))
	assert.False(t, DefaultChecker(nil, &http.Response{StatusCode: http.StatusOK}))
}
