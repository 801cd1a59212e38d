package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"
	"unicode/utf8"

	"github.com/avolkov/stash-api/internal/api"
	"github.com/avolkov/stash-api/internal/api/shared"
	"github.com/avolkov/stash-api/internal/platform/logger"
)

// Body sentinels used when a payload cannot be rendered as text.
const (
	bodyEmpty      = "<empty>"
	bodyUnreadable = "<unreadable>"
)

// responseRecorder wraps a ResponseWriter to capture the status code and
// a copy of the body while still writing through to the client.
type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
	wrote  bool
}

func (rec *responseRecorder) WriteHeader(status int) {
	if !rec.wrote {
		rec.status = status
		rec.wrote = true
	}
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *responseRecorder) Write(p []byte) (int, error) {
	if !rec.wrote {
		rec.status = http.StatusOK
		rec.wrote = true
	}
	rec.body.Write(p)
	return rec.ResponseWriter.Write(p)
}

// Flush forwards to the underlying writer so streaming handlers keep
// working behind the recorder.
func (rec *responseRecorder) Flush() {
	if f, ok := rec.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// RequestContext returns the request-context logging middleware. Around
// each request it:
//
//  1. Buffers the inbound body (restoring it for downstream handlers) and
//     parses it as JSON on a best-effort basis for the log record.
//  2. Invokes the downstream handler, recording status and response body.
//  3. Emits one structured log line with method, path, query, status,
//     duration, both bodies, client address and user agent.
//  4. On a panic, logs the panic value and stack at ERROR level, then
//     responds with the opaque internal error envelope if nothing has
//     been written yet.
//
// Paths listed in skip bypass the middleware entirely (health and
// documentation endpoints).
func RequestContext(log *slog.Logger, skip ...string) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	skipped := make(map[string]struct{}, len(skip))
	for _, path := range skip {
		skipped[path] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skipped[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()

			var requestBytes []byte
			if r.Body != nil {
				requestBytes, _ = io.ReadAll(r.Body)
				_ = r.Body.Close()
				r.Body = io.NopCloser(bytes.NewReader(requestBytes))
			}

			reqLog := log.With(slog.String("request_id", shared.GetRequestID(r.Context())))
			r = r.WithContext(logger.WithLogger(r.Context(), reqLog))

			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}

			defer func() {
				if rvr := recover(); rvr != nil {
					duration := time.Since(start)
					reqLog.LogAttrs(r.Context(), slog.LevelError, "HTTP request panicked",
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("query", r.URL.RawQuery),
						slog.String("duration", duration.String()),
						slog.Any("request_body", bodyValue(requestBytes)),
						slog.String("client", r.RemoteAddr),
						slog.String("user_agent", r.UserAgent()),
						slog.Any("panic", rvr),
						slog.String("stack", string(debug.Stack())))

					if !rec.wrote {
						internal := api.NewInternalError()
						w.Header().Set("Content-Type", "application/json")
						w.WriteHeader(internal.Status)
						_ = json.NewEncoder(w).Encode(shared.ErrorResponse{
							Error:  internal.Code,
							Detail: internal.Detail,
						})
					}
				}
			}()

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			reqLog.LogAttrs(r.Context(), slog.LevelInfo, "HTTP request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.Int("status_code", rec.status),
				slog.String("duration", duration.String()),
				slog.Any("request_body", bodyValue(requestBytes)),
				slog.Any("response_body", bodyValue(rec.body.Bytes())),
				slog.String("client", r.RemoteAddr),
				slog.String("user_agent", r.UserAgent()))
		})
	}
}

// bodyValue renders a captured body for logging: parsed JSON when the
// payload is valid JSON, the raw text when it is at least valid UTF-8,
// and a sentinel otherwise.
func bodyValue(body []byte) any {
	if len(body) == 0 {
		return bodyEmpty
	}
	if !utf8.Valid(body) {
		return bodyUnreadable
	}
	var parsed any
	if err := json.Unmarshal(body, &parsed); err == nil {
		return parsed
	}
	return string(body)
}
