package shared

import "context"

// ContextKey is the key type for values this package stores in a request
// context.
type ContextKey string

// RequestIDKey is the context key for the request correlation ID.
const RequestIDKey ContextKey = "requestID"

// RequestIDHeader is the header used to propagate the correlation ID,
// both inbound (a caller-supplied ID is honored) and on every response.
const RequestIDHeader = "x-request-id"

// SetRequestID stores the request correlation ID in the context.
func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// GetRequestID retrieves the request correlation ID from the context.
// Returns an empty string if none was set.
func GetRequestID(ctx context.Context) string {
	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return ""
	}
	return id
}
