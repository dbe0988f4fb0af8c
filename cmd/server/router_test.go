package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/platform/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   8081,
			LogLevel:               "debug",
			Env:                    "test",
			BasePath:               "/api",
			ServiceName:            "task-api",
			ShutdownTimeoutSeconds: 1,
		},
		Database: config.DatabaseConfig{
			Driver:                config.DriverMemory,
			Name:                  "tasks",
			ConnectTimeoutSeconds: 1,
			QueryTimeoutSeconds:   1,
		},
		CORS: config.CORSConfig{AllowedOrigins: "*"},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *application {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := newApplication(cfg, logger, memory.NewTaskStore(logger), nil)
	require.NoError(t, err)
	return app
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouterServiceInfo(t *testing.T) {
	h := newTestApp(t, testConfig()).setupRouter()

	w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"service":"task-api"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(shared.TraceIDHeader))
}

func TestRouterHealth(t *testing.T) {
	h := newTestApp(t, testConfig()).setupRouter()

	w := serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRouterTasksUnderBasePath(t *testing.T) {
	h := newTestApp(t, testConfig()).setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(`{"title":"  Buy milk "}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(h, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Buy milk", created["title"])
	assert.Equal(t, "to do", created["status"])

	w = serve(h, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, created["id"], list[0]["id"])

	// Tasks are not served outside the base path
	w = serve(h, httptest.NewRequest(http.MethodGet, "/tasks", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterFallbacks(t *testing.T) {
	h := newTestApp(t, testConfig()).setupRouter()

	w := serve(h, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, w.Body.String())

	w = serve(h, httptest.NewRequest(http.MethodPatch, "/api/tasks", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":"Method Not Allowed"}`, w.Body.String())
}

func TestRouterCORS(t *testing.T) {
	t.Run("any origin is reflected", func(t *testing.T) {
		h := newTestApp(t, testConfig()).setupRouter()

		req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := serve(h, req)

		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("configured origins only", func(t *testing.T) {
		cfg := testConfig()
		cfg.CORS.AllowedOrigins = "https://tasks.example.com"
		h := newTestApp(t, cfg).setupRouter()

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Origin", "https://tasks.example.com")
		w := serve(h, req)
		assert.Equal(t, "https://tasks.example.com", w.Header().Get("Access-Control-Allow-Origin"))

		req = httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w = serve(h, req)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestCORSOptions(t *testing.T) {
	t.Parallel()

	opts := corsOptions(config.CORSConfig{AllowedOrigins: "*"})
	require.NotNil(t, opts.AllowOriginFunc)
	assert.Empty(t, opts.AllowedOrigins)
	assert.True(t, opts.AllowCredentials)

	opts = corsOptions(config.CORSConfig{AllowedOrigins: "https://a.example, https://b.example"})
	assert.Nil(t, opts.AllowOriginFunc)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, opts.AllowedOrigins)
}

func TestApplicationCleanupClosesStore(t *testing.T) {
	t.Parallel()

	closed := false
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := newApplication(testConfig(), logger, memory.NewTaskStore(logger), func(context.Context) error {
		closed = true
		return nil
	})
	require.NoError(t, err)

	app.cleanup(context.Background())
	assert.True(t, closed)
}

func TestNewApplicationRequiresStore(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := newApplication(testConfig(), logger, nil, nil)
	assert.Error(t, err)
}

func TestRouterLogsCarryTraceID(t *testing.T) {
	logBuf, log := logger.SetupTestLogger(t)

	app, err := newApplication(testConfig(), log, memory.NewTaskStore(log), nil)
	require.NoError(t, err)
	h := app.setupRouter()

	w := serve(h, httptest.NewRequest(http.MethodGet, "/api/tasks/not-a-uuid", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
	traceID := w.Header().Get(shared.TraceIDHeader)
	require.NotEmpty(t, traceID)

	entries, err := logBuf.GetLogEntries()
	require.NoError(t, err)

	var completed map[string]interface{}
	for _, entry := range entries {
		if entry["msg"] == "request completed" {
			completed = entry
		}
	}
	require.NotNil(t, completed, "request completion should be logged")
	assert.Equal(t, traceID, completed["trace_id"])
	assert.EqualValues(t, http.StatusBadRequest, completed["status"])
}

func TestStartHTTPServerListenFailure(t *testing.T) {
	busy, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer func() { _ = busy.Close() }()

	cfg := testConfig()
	cfg.Server.Port = busy.Addr().(*net.TCPAddr).Port

	closed := false
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := newApplication(cfg, logger, memory.NewTaskStore(logger), func(context.Context) error {
		closed = true
		return nil
	})
	require.NoError(t, err)

	done := make(chan int, 1)
	go func() { done <- app.startHTTPServer(context.Background()) }()

	select {
	case code := <-done:
		assert.Equal(t, 1, code)
		assert.True(t, closed, "task store must be closed after a listen failure")
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after failing to listen")
	}
}
