package retry

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

// Default retry configuration
const (
	defaultMaxRetries   = 2
	defaultInitialDelay = 500 * time.Millisecond
	defaultMaxDelay     = 5 * time.Second
	defaultMultiplier   = 2.0
)

// Checker decides whether an attempt should be retried
type Checker func(err error, resp *http.Response) bool

// Transport is an http.RoundTripper that retries idempotent requests with
// exponential backoff. GET, HEAD, OPTIONS and TRACE are idempotent, as is any
// request carrying an Idempotency-Key header; its body must be replayable.
// It honours Retry-After on 429 and 503 responses.
type Transport struct {
	base         http.RoundTripper
	maxRetries   int
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
	checker      Checker
	sleep        func(ctx context.Context, d time.Duration) error
}

// Option configures a Transport
type Option func(*Transport)

func WithMaxRetries(n int) Option {
	return func(t *Transport) {
		if n >= 0 {
			t.maxRetries = n
		}
	}
}

func WithInitialDelay(d time.Duration) Option {
	return func(t *Transport) {
		if d > 0 {
			t.initialDelay = d
		}
	}
}

func WithMaxDelay(d time.Duration) Option {
	return func(t *Transport) {
		if d > 0 {
			t.maxDelay = d
		}
	}
}

func WithMultiplier(m float64) Option {
	return func(t *Transport) {
		if m > 1.0 {
			t.multiplier = m
		}
	}
}

func WithChecker(c Checker) Option {
	return func(t *Transport) {
		if c != nil {
			t.checker = c
		}
	}
}

// NewTransport wraps base (http.DefaultTransport when nil) with retries
func NewTransport(base http.RoundTripper, opts ...Option) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	t := &Transport{
		base:         base,
		maxRetries:   defaultMaxRetries,
		initialDelay: defaultInitialDelay,
		maxDelay:     defaultMaxDelay,
		multiplier:   defaultMultiplier,
		checker:      DefaultChecker,
		sleep:        sleepContext,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// DefaultChecker retries transport errors, 5xx and 429 responses
func DefaultChecker(err error, resp *http.Response) bool {
	if err != nil {
		return true
	}
	if resp == nil {
		return false
	}
	return resp.StatusCode >= http.StatusInternalServerError ||
		resp.StatusCode == http.StatusTooManyRequests
}

// RoundTrip implements http.RoundTripper. The final attempt's response or
// error is returned unchanged so callers see the upstream status.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	delay := t.initialDelay

	for attempt := 0; ; attempt++ {
		attemptReq, err := rewind(req, attempt)
		if err != nil {
			return nil, err
		}

		resp, err := t.base.RoundTrip(attemptReq)
		if attempt >= t.maxRetries || !retryable(req) || !t.checker(err, resp) {
			return resp, err
		}

		wait := delay
		if ra := retryAfter(resp, t.maxDelay); ra > 0 {
			wait = ra
		}
		if resp != nil {
			resp.Body.Close()
		}

		if err := t.sleep(ctx, wait); err != nil {
			return nil, err
		}

		delay = time.Duration(float64(delay) * t.multiplier)
		if delay > t.maxDelay {
			delay = t.maxDelay
		}
	}
}

// retryable reports whether req may be sent again
func retryable(req *http.Request) bool {
	return idempotent(req) && replayable(req)
}

func idempotent(req *http.Request) bool {
	switch req.Method {
	case "", http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	_, hasKey := req.Header["Idempotency-Key"]
	return hasKey
}

// replayable reports whether the request body can be sent again
func replayable(req *http.Request) bool {
	return req.Body == nil || req.Body == http.NoBody || req.GetBody != nil
}

func rewind(req *http.Request, attempt int) (*http.Request, error) {
	if attempt == 0 || req.GetBody == nil {
		return req, nil
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	clone := req.Clone(req.Context())
	clone.Body = body
	return clone, nil
}

// retryAfter parses a delay-seconds Retry-After header, capped at limit
func retryAfter(resp *http.Response, limit time.Duration) time.Duration {
	if resp == nil {
		return 0
	}
	if resp.StatusCode != http.StatusTooManyRequests &&
		resp.StatusCode != http.StatusServiceUnavailable {
		return 0
	}
	secs, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	d := time.Duration(secs) * time.Second
	if d > limit {
		return limit
	}
	return d
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
