package network

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter"

	"github.com/mutualnet/mutualpool/lib/common"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// httptest.NewRequest always reports this remote address.
const testRemoteIP = "192.0.2.1"

func TestRateLimitMiddlewareDefaultRate(t *testing.T) {
	rule := common.NewRateLimitRule(limiter.Rate{Period: time.Minute, Limit: 2})
	handler := RateLimitMiddleware(nil, rule)(okHandler())

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	require.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	var problem map[string]interface{}
	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &problem))
	require.Equal(t, float64(http.StatusTooManyRequests), problem["status"])
	require.Contains(t, problem["type"], "error-130")
}

func TestRateLimitMiddlewareByIPAddress(t *testing.T) {
	rule := common.NewRateLimitRule(limiter.Rate{Period: time.Minute, Limit: 100})
	rule.ByIPAddress[testRemoteIP] = limiter.Rate{Period: time.Minute, Limit: 1}
	handler := RateLimitMiddleware(nil, rule)(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimitMiddlewareUnlimited(t *testing.T) {
	rule := common.NewRateLimitRule(limiter.Rate{Period: time.Minute, Limit: 0})
	handler := RateLimitMiddleware(nil, rule)(okHandler())

	for i := 0; i < 200; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}
