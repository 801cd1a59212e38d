package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the wire envelope for all error responses:
// a stable machine-readable code plus a human-readable detail.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// RespondWithJSON writes a JSON response with the given status code and
// payload, echoing the request correlation ID as a response header when
// one is present in the context.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if id := GetRequestID(r.Context()); id != "" {
		w.Header().Set(RequestIDHeader, id)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes the standard error envelope with the given
// status, code and detail message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, code, detail string) {
	slog.Debug("sending error response",
		"status_code", status,
		"error_code", code,
		"detail", detail,
		"request_id", GetRequestID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, ErrorResponse{Error: code, Detail: detail})
}

// RespondNoContent writes an empty 204 response, still echoing the
// correlation ID header.
func RespondNoContent(w http.ResponseWriter, r *http.Request) {
	if id := GetRequestID(r.Context()); id != "" {
		w.Header().Set(RequestIDHeader, id)
	}
	w.WriteHeader(http.StatusNoContent)
}
