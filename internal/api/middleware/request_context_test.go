package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// logLine unmarshals the single JSON log record written to buf.
func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	require.NotEmpty(t, line, "expected a log line")
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &record))
	return record
}

func TestRequestContextLogsRequest(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	var downstreamBody []byte
	handler := RequestContext(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		downstreamBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":1,"email":"bob@email.com"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/users?verbose=1",
		strings.NewReader(`{"email":"bob@email.com","password":"bob"}`))
	req.Header.Set("User-Agent", "test-agent")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// Downstream still sees the full body after the middleware buffered it.
	assert.JSONEq(t, `{"email":"bob@email.com","password":"bob"}`, string(downstreamBody))
	assert.Equal(t, http.StatusOK, rec.Code)

	record := logLine(t, &buf)
	assert.Equal(t, "HTTP request", record["msg"])
	assert.Equal(t, "POST", record["method"])
	assert.Equal(t, "/users", record["path"])
	assert.Equal(t, "verbose=1", record["query"])
	assert.Equal(t, float64(http.StatusOK), record["status_code"])
	assert.Equal(t, "test-agent", record["user_agent"])
	assert.NotEmpty(t, record["duration"])
	assert.NotEmpty(t, record["client"])

	reqBody, ok := record["request_body"].(map[string]any)
	require.True(t, ok, "request body should be logged as parsed JSON")
	assert.Equal(t, "bob@email.com", reqBody["email"])

	respBody, ok := record["response_body"].(map[string]any)
	require.True(t, ok, "response body should be logged as parsed JSON")
	assert.Equal(t, float64(1), respBody["id"])
}

func TestRequestContextEmptyAndNonJSONBodies(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := RequestContext(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain text"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items", nil))

	record := logLine(t, &buf)
	assert.Equal(t, "<empty>", record["request_body"])
	assert.Equal(t, "plain text", record["response_body"])
}

func TestRequestContextSkipsConfiguredPaths(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := RequestContext(log, "/health")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, buf.String(), "skipped paths produce no log output")
}

func TestRequestContextRecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := RequestContext(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var envelope map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "API.0000", envelope["error"])
	// The panic message never reaches the client.
	assert.NotContains(t, rec.Body.String(), "boom")

	record := logLine(t, &buf)
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "HTTP request panicked", record["msg"])
	assert.Equal(t, "boom", record["panic"])
	assert.Contains(t, record["stack"], "request_context_test")
}

func TestRequestContextForwardsFlush(t *testing.T) {
	log := slog.New(slog.NewJSONHandler(io.Discard, nil))

	handler := RequestContext(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, ok := w.(http.Flusher)
		require.True(t, ok, "recorder should expose Flusher")
		_, _ = w.Write([]byte("chunk"))
		f.Flush()
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items", nil))

	assert.True(t, rec.Flushed)
	assert.Equal(t, "chunk", rec.Body.String())
}

func TestBodyValue(t *testing.T) {
	tests := []struct {
		name string
		body []byte
		want any
	}{
		{"empty", nil, "<empty>"},
		{"json object", []byte(`{"a":1}`), map[string]any{"a": float64(1)}},
		{"json array", []byte(`[1,2]`), []any{float64(1), float64(2)}},
		{"plain text", []byte("hello"), "hello"},
		{"invalid utf8", []byte{0xff, 0xfe, 0xfd}, "<unreadable>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bodyValue(tt.body))
		})
	}
}
