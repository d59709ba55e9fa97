package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/sweetshop/pkg/middleware"
)

func limited(max int, window time.Duration) http.Handler {
	return middleware.RateLimit(max, window)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func hit(h http.Handler, remoteAddr string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = remoteAddr
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitBlocksPastMax(t *testing.T) {
	h := limited(3, time.Minute)

	for i := 0; i < 3; i++ {
		rec := hit(h, "203.0.113.10:1111", nil)
		require.Equal(t, http.StatusOK, rec.Code, "request %d within the limit", i+1)
	}

	rec := hit(h, "203.0.113.10:1111", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"message":"Too Many Requests"}`, rec.Body.String())
}

func TestRateLimitWindowResets(t *testing.T) {
	h := limited(2, 50*time.Millisecond)

	require.Equal(t, http.StatusOK, hit(h, "203.0.113.20:1111", nil).Code)
	require.Equal(t, http.StatusOK, hit(h, "203.0.113.20:1111", nil).Code)
	require.Equal(t, http.StatusTooManyRequests, hit(h, "203.0.113.20:1111", nil).Code)

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, http.StatusOK, hit(h, "203.0.113.20:1111", nil).Code,
		"a fresh window starts once the previous one expires")
}

func TestRateLimitIsPerClient(t *testing.T) {
	h := limited(1, time.Minute)

	require.Equal(t, http.StatusOK, hit(h, "203.0.113.30:1111", nil).Code)
	require.Equal(t, http.StatusTooManyRequests, hit(h, "203.0.113.30:2222", nil).Code,
		"same host, different source port is the same client")

	assert.Equal(t, http.StatusOK, hit(h, "203.0.113.31:1111", nil).Code,
		"another host keeps its own budget")
}

func TestRateLimitIgnoresForwardedForByDefault(t *testing.T) {
	h := limited(2, time.Minute)

	// Rotating X-Forwarded-For must not buy extra budget when no trusted
	// proxy is configured.
	for i := 0; i < 2; i++ {
		hdr := http.Header{"X-Forwarded-For": {fmt.Sprintf("198.51.100.%d", i)}}
		require.Equal(t, http.StatusOK, hit(h, "203.0.113.40:1111", hdr).Code)
	}

	hdr := http.Header{"X-Forwarded-For": {"198.51.100.99"}}
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "203.0.113.40:1111", hdr).Code)
}
