// Package apperr holds the failure taxonomy shared by every domain package
// and its mapping onto HTTP status codes.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindBadRequest
	KindConflict
	KindInvalidAssignee
	KindEmptyCart
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	case KindConflict:
		return "conflict"
	case KindInvalidAssignee:
		return "invalid_assignee"
	case KindEmptyCart:
		return "empty_cart"
	default:
		return "internal"
	}
}

// Error is a typed failure. Two Errors match under errors.Is when their
// kinds match, so domain sentinels can carry their own message and still
// be recognised as e.g. ErrNotFound.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	if e.Kind == t.Kind {
		return true
	}
	// InvalidAssignee and EmptyCart are bad requests too.
	return t.Kind == KindBadRequest && (e.Kind == KindInvalidAssignee || e.Kind == KindEmptyCart)
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrUnauthenticated = New(KindUnauthenticated, "authentication credentials were not provided")
	ErrForbidden       = New(KindForbidden, "you don't have the required permissions")
	ErrNotFound        = New(KindNotFound, "not found")
	ErrBadRequest      = New(KindBadRequest, "bad request")
	ErrConflict        = New(KindConflict, "conflict")
	ErrInvalidAssignee = New(KindInvalidAssignee, "assignee is not a delivery crew member")
	ErrEmptyCart       = New(KindEmptyCart, "cart is empty")
)

func Forbidden(message string) *Error  { return New(KindForbidden, message) }
func NotFound(message string) *Error   { return New(KindNotFound, message) }
func BadRequest(message string) *Error { return New(KindBadRequest, message) }
func Conflict(message string) *Error   { return New(KindConflict, message) }

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest, KindInvalidAssignee, KindEmptyCart:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the text safe to return to a client. Internal failures
// never leak their cause.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "internal server error"
}
