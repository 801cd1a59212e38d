package api

import (
	"fmt"
	"net/http"
)

// Stable machine-readable error codes carried in the error envelope.
const (
	CodeInternal         = "API.0000"
	CodeInvalidRequest   = "API.0001"
	CodeUserNotFound     = "USER.0001"
	CodeUserAlreadyExist = "USER.0002"
)

// internalErrorDetail is the fixed client-facing message for any
// unexpected failure; internals are never leaked to clients.
const internalErrorDetail = "Internal server error, please try later or contact support team"

// Error is a typed API error: a stable code, an HTTP status, and a
// human-readable detail with the offending identifier interpolated.
type Error struct {
	Code   string
	Status int
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Detail)
}

// NewUserNotFound reports that no user exists with the given ID.
func NewUserNotFound(userID int64) *Error {
	return &Error{
		Code:   CodeUserNotFound,
		Status: http.StatusNotFound,
		Detail: fmt.Sprintf("User with id:%d was not found", userID),
	}
}

// NewUserAlreadyExists reports a registration conflict on the given email.
func NewUserAlreadyExists(email string) *Error {
	return &Error{
		Code:   CodeUserAlreadyExist,
		Status: http.StatusConflict,
		Detail: fmt.Sprintf("User with email:%s was already registered", email),
	}
}

// NewInvalidRequest reports a malformed or invalid payload.
func NewInvalidRequest(detail string) *Error {
	return &Error{
		Code:   CodeInvalidRequest,
		Status: http.StatusBadRequest,
		Detail: detail,
	}
}

// NewInternalError reports an unexpected failure with the fixed opaque
// detail message.
func NewInternalError() *Error {
	return &Error{
		Code:   CodeInternal,
		Status: http.StatusInternalServerError,
		Detail: internalErrorDetail,
	}
}
