package services

import (
	"errors"
	"fmt"

	"github.com/kellyworkos00-droid/fairm/entity"
)

type Kind string

const (
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindLimitExceeded     Kind = "limit_exceeded"
	KindInsufficientStock Kind = "insufficient_stock"
	KindConflict          Kind = "conflict"
	KindInternal          Kind = "internal"
)

// Error is a domain failure that is safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches on kind and message so wrapped sentinels compare equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Validation builds a 400-class error with a formatted message.
func Validation(format string, args ...any) *Error {
	return newError(KindValidation, fmt.Sprintf(format, args...))
}

var (
	ErrInvalidCredentials   = newError(KindUnauthorized, "invalid credentials")
	ErrEmailTaken           = newError(KindValidation, "email already registered")
	ErrInvalidRole          = newError(KindValidation, "role must be FARMER or BUYER")
	ErrEmptyOrder           = newError(KindValidation, "No items in order")
	ErrMixedSellers         = newError(KindValidation, "all items in an order must come from the same farmer")
	ErrInvalidTier          = newError(KindValidation, "Invalid tier")
	ErrLimitExceeded        = newError(KindLimitExceeded, "Product limit reached. Upgrade to list more products.")
	ErrSubscriptionNotFound = newError(KindNotFound, "subscription not found")
	ErrProductNotFound      = newError(KindNotFound, "Product not found")
	ErrOrderNotFound        = newError(KindNotFound, "order not found")
	ErrUserNotFound         = newError(KindNotFound, "user not found")
	ErrNotificationNotFound = newError(KindNotFound, "notification not found")
	ErrNotOwner             = newError(KindForbidden, "product belongs to another farmer")
)

// ProductUnavailable reports a cart line whose product is gone or delisted.
func ProductUnavailable(productID uint) *Error {
	return newError(KindValidation, fmt.Sprintf("Product %d not available", productID))
}

// InsufficientStock reports a cart line asking for more than is listed.
func InsufficientStock(productID uint) *Error {
	return newError(KindInsufficientStock, fmt.Sprintf("Product %d has insufficient stock", productID))
}

// InvalidTransition reports a status change the order lifecycle does not allow.
func InvalidTransition(from, to entity.OrderStatus) *Error {
	return newError(KindConflict, fmt.Sprintf("cannot move order from %s to %s", from, to))
}

// KindOf classifies err; anything that is not a domain error is internal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// IsKind reports whether err is a domain error of kind k.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
