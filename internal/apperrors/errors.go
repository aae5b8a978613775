package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies business failures for HTTP status mapping.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindForbidden
	KindValidation
)

type appError struct {
	kind Kind
	msg  string
}

func (e *appError) Error() string { return e.msg }

// NotFound means the referenced entity does not exist.
func NotFound(msg string) error { return &appError{kind: KindNotFound, msg: msg} }

// Forbidden means the caller's role/ownership does not allow the operation.
func Forbidden(msg string) error { return &appError{kind: KindForbidden, msg: msg} }

// Validation means malformed input; nothing was persisted.
func Validation(msg string) error { return &appError{kind: KindValidation, msg: msg} }

func IsNotFound(err error) bool   { return kindOf(err) == KindNotFound }
func IsForbidden(err error) bool  { return kindOf(err) == KindForbidden }
func IsValidation(err error) bool { return kindOf(err) == KindValidation }

func kindOf(err error) Kind {
	var ae *appError
	if errors.As(err, &ae) {
		return ae.kind
	}
	return 0
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch kindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Write sends the error to the client with the matching status.
func Write(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), Status(err))
}
