// Package result defines the envelope returned by every mutating catalog
// operation.
//
// A successful result carries the produced value (when there is one) and no
// error fields. A failed result carries one of the supported codes and a
// human-readable message:
//
//	res := result.Failf[dto.BookDTO](result.CodeNotFound, "Book with ID %d not found.", id)
//	c.JSON(res.HTTPStatus(), ...)
package result

import (
	"fmt"
	"net/http"
)

// Supported failure codes. They match the HTTP status the transport replies with.
const (
	CodeValidation = http.StatusBadRequest
	CodeNotFound   = http.StatusNotFound
	CodeConflict   = http.StatusConflict
	CodeInternal   = http.StatusInternalServerError
)

// Result is the uniform success/error envelope.
type Result[T any] struct {
	Success      bool   `json:"success"`
	Data         *T     `json:"data,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	ErrorCode    int    `json:"errorCode,omitempty"`
}

// OK wraps a produced value.
func OK[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: &data}
}

// Empty is a success without a payload, as returned by Delete.
func Empty[T any]() Result[T] {
	return Result[T]{Success: true}
}

// Fail builds a failure. Codes other than the supported ones become CodeInternal.
func Fail[T any](code int, message string) Result[T] {
	if !IsSupported(code) {
		code = CodeInternal
	}
	return Result[T]{ErrorCode: code, ErrorMessage: message}
}

// Failf is Fail with a formatted message.
func Failf[T any](code int, format string, args ...any) Result[T] {
	return Fail[T](code, fmt.Sprintf(format, args...))
}

// IsSupported reports whether code is one of the failure codes a Result may carry.
func IsSupported(code int) bool {
	switch code {
	case CodeValidation, CodeNotFound, CodeConflict, CodeInternal:
		return true
	}
	return false
}

// HTTPStatus maps the result onto a response status.
func (r Result[T]) HTTPStatus() int {
	if r.Success {
		return http.StatusOK
	}
	if IsSupported(r.ErrorCode) {
		return r.ErrorCode
	}
	return http.StatusInternalServerError
}

// Err returns the failure as an error, or nil on success.
func (r Result[T]) Err() error {
	if r.Success {
		return nil
	}
	return &Error{Code: r.HTTPStatus(), Message: r.ErrorMessage}
}

// Error is a failed Result seen through the error interface.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}
