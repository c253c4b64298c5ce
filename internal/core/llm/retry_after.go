package llm

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type retryAfterKey struct{}

// retryAfterHolder receives the Retry-After value of a 429 response. The
// OpenAI SDK drops response headers from its errors, so the transport
// below stores it here instead.
type retryAfterHolder struct {
	seconds *int
}

func withRetryAfter(ctx context.Context) (context.Context, *retryAfterHolder) {
	h := &retryAfterHolder{}
	return context.WithValue(ctx, retryAfterKey{}, h), h
}

type retryAfterTransport struct {
	base http.RoundTripper
}

func (t *retryAfterTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusTooManyRequests {
		return resp, err
	}
	if h, ok := req.Context().Value(retryAfterKey{}).(*retryAfterHolder); ok {
		h.seconds = parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
	}
	return resp, nil
}

// parseRetryAfter accepts delta-seconds or an HTTP date.
func parseRetryAfter(v string, now time.Time) *int {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 {
		return &n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
		n := int(math.Ceil(f))
		return &n
	}
	if t, err := http.ParseTime(v); err == nil {
		n := int(math.Ceil(t.Sub(now).Seconds()))
		if n < 0 {
			n = 0
		}
		return &n
	}
	return nil
}

// withRetryAfterTransport returns a copy of c whose transport records
// Retry-After headers.
func withRetryAfterTransport(c *http.Client) *http.Client {
	cp := *c
	cp.Transport = &retryAfterTransport{base: c.Transport}
	return &cp
}
