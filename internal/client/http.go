package client

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/NathanBartolo/echo/internal/retry"

	httpclient "github.com/appleboy/go-httpclient"
)

// RetryConfig controls retries for outbound calls to external APIs
type RetryConfig struct {
	MaxRetries    int
	RetryDelay    time.Duration
	MaxRetryDelay time.Duration
}

// NewTransport returns a pooled transport tuned for a small set of upstream hosts.
func NewTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          50,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
}

// New creates an HTTP client without retries, used for the OAuth exchange.
func New(timeout time.Duration) (*http.Client, error) {
	c, err := httpclient.NewClient(
		httpclient.WithTimeout(timeout),
		httpclient.WithTransport(NewTransport()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http client: %w", err)
	}
	return c, nil
}

// NewRetrying creates an HTTP client whose transport retries transient
// upstream failures. timeout bounds the whole call, retries included.
func NewRetrying(timeout time.Duration, rc RetryConfig) (*http.Client, error) {
	transport := retry.NewTransport(
		NewTransport(),
		retry.WithMaxRetries(rc.MaxRetries),
		retry.WithInitialDelay(rc.RetryDelay),
		retry.WithMaxDelay(rc.MaxRetryDelay),
	)

	c, err := httpclient.NewClient(
		httpclient.WithTimeout(timeout),
		httpclient.WithTransport(transport),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create retrying http client: %w", err)
	}
	return c, nil
}
