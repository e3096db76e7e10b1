package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/bookstore-api/pkg/helpers"
)

func TestRateLimit_DisabledWithoutRedis(t *testing.T) {
	r := newEngine(RateLimit(nil, 1, time.Minute, KeyByIPAndPath(), nil, helpers.NopLogger()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		w, _ := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer func() { _ = rdb.Close() }()

	r := newEngine(RateLimit(rdb, 1, time.Minute, KeyByIPAndPath(), nil, helpers.NopLogger()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w, _ := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestKeyByIPAndPath(t *testing.T) {
	var key string
	r := gin.New()
	r.GET("/api/auth/login", func(c *gin.Context) { key = KeyByIPAndPath()(c) })

	req := httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "rl:path:/api/auth/login:ip:10.1.2.3", key)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := newEngine(m.Handler())
	r.GET("/books/get/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Exposition()))

	serve(r, httptest.NewRequest(http.MethodGet, "/books/get/1", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/books/get/2", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/nope", nil))
	m.RecordRateLimitDrop("/api/auth/login")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/books/get/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimitDroppedTotal.WithLabelValues("/api/auth/login")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_server_requests_total")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	r := newEngine(m.Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w, _ := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	m.RecordRateLimitDrop("/")
}
