package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/quiz-results/internal/handler"
	"github.com/pfrederiksen/quiz-results/internal/logger"
	"github.com/pfrederiksen/quiz-results/internal/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	h := handler.New(handler.Config{},
		handler.WithLogger(logger.New(logger.LevelError, io.Discard)),
		handler.WithMetrics(metrics.NewRecorder(reg)),
	)
	return NewRouter(h, reg), reg
}

func TestRouter_Ping(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Pong!"}`, rec.Body.String())
}

func TestRouter_SubmitRoutesEveryMethod(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		method string
		body   string
		status int
	}{
		{http.MethodOptions, "", http.StatusOK},
		{http.MethodGet, "", http.StatusMethodNotAllowed},
		{http.MethodDelete, "", http.StatusMethodNotAllowed},
		{http.MethodPost, `{"score":1}`, http.StatusBadRequest},
		// no credentials configured
		{http.MethodPost, `{"student":"Alice","score":95}`, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, SubmitPath, strings.NewReader(tt.body)))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRouter_Metrics(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, SubmitPath, nil))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `quiz_results_requests_total{outcome="rejected_method"} 1`)
}

func TestRouter_NoMetricsWithoutGatherer(t *testing.T) {
	router := NewRouter(http.NotFoundHandler(), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ServeAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	router, _ := newTestRouter(t)
	srv := New(ln.Addr().String(), router)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/ping")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_StartBadAddress(t *testing.T) {
	err := New("127.0.0.1:99999", http.NotFoundHandler()).Start(context.Background())
	assert.Error(t, err)
}
