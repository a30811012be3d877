package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnavailable
	KindPermission
	KindAuthentication
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	case KindPermission:
		return "permission"
	case KindAuthentication:
		return "authentication"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a business-rule failure that is reported to the client as is.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindUnavailable:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPermission:
		return http.StatusForbidden
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

func ValidationFields(msg string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

func Unavailable(msg string) *Error { return &Error{Kind: KindUnavailable, Message: msg} }

func Permission(msg string) *Error { return &Error{Kind: KindPermission, Message: msg} }

func Authentication(msg string) *Error { return &Error{Kind: KindAuthentication, Message: msg} }

func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

// From unwraps err into an *Error. gorm.ErrRecordNotFound becomes NotFound,
// anything else is reported as internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Error{Kind: KindNotFound, Message: "not found", Err: err}
	}
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

func Is(err error, kind Kind) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return kind == KindNotFound && errors.Is(err, gorm.ErrRecordNotFound)
}
