package core

import (
	"errors"
	"fmt"
)

// Error codes for domain errors.
const (
	ErrCodeValidation  = "validation"
	ErrCodeNotFound    = "not_found"
	ErrCodeInternal    = "internal"
	ErrCodeBadRequest  = "bad_request"
	ErrCodeRateLimited = "rate_limited"
)

// Messages reported to clients. InternalErrorMessage never carries detail.
const (
	MsgContentRequired   = "Message content is required"
	MsgEventIDRequired   = "Event ID is required"
	MsgEventNotFound     = "Event not found"
	InternalErrorMessage = "An error occurred"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrInternal   = errors.New("internal error")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

// Is lets errors.Is match a CoreError against the sentinel for its code.
func (e *CoreError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Code == ErrCodeValidation
	case ErrNotFound:
		return e.Code == ErrCodeNotFound
	case ErrInternal:
		return e.Code == ErrCodeInternal
	}
	return false
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}

// ValidationError reports a missing or empty required field.
func ValidationError(format string, args ...any) *CoreError {
	return coreError(ErrCodeValidation, fmt.Sprintf(format, args...))
}

// NotFoundError reports a reference to a record that does not exist.
func NotFoundError(msg string) *CoreError {
	return coreError(ErrCodeNotFound, msg)
}

// InternalError is the opaque error surfaced for unanticipated failures.
func InternalError() *CoreError {
	return coreError(ErrCodeInternal, InternalErrorMessage)
}

// BadRequestError reports a frame the server could not interpret.
func BadRequestError(msg string) *CoreError {
	return coreError(ErrCodeBadRequest, msg)
}

// RateLimitedError reports an operation rejected by the connection rate limit.
func RateLimitedError() *CoreError {
	return coreError(ErrCodeRateLimited, "rate limit exceeded")
}

// AsCoreError converts err into a client-facing CoreError. Errors that are
// not CoreErrors collapse into InternalError.
func AsCoreError(err error) (*CoreError, bool) {
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce, true
	}
	return InternalError(), false
}
