// Package apperror defines the error taxonomy returned by the user service.
// Every service operation resolves to exactly one Error; nothing lower-level
// escapes unmapped.
package apperror

import "net/http"

type Kind int

const (
	KindInvalidInput Kind = iota
	KindConflict
	KindNotFound
	KindInvalidCredentials
	KindUnauthorized
	KindMissingAvatar
	KindUploadFailed
	KindInternal
)

type Error struct {
	Kind    Kind
	Message string
	// Err carries the underlying cause for logging. Never serialized.
	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to the HTTP status exposed to clients.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindInvalidInput, KindMissingAvatar:
		return http.StatusBadRequest
	case KindInvalidCredentials, KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func InvalidInput(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func InvalidCredentials(msg string) *Error {
	return &Error{Kind: KindInvalidCredentials, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func MissingAvatar(msg string) *Error {
	return &Error{Kind: KindMissingAvatar, Message: msg}
}

func UploadFailed(msg string) *Error {
	return &Error{Kind: KindUploadFailed, Message: msg}
}

func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: cause}
}
