// Package apperr defines the error kinds surfaced by the quest, item,
// achievement and user operations.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindValidation        Kind = "validation_failed"
	KindLimitExceeded     Kind = "limit_exceeded"
	KindAlreadyCompleted  Kind = "already_completed"
	KindAlreadyOwned      Kind = "already_owned"
	KindDeadlineExpired   Kind = "deadline_expired"
	KindInsufficientFunds Kind = "insufficient_funds"
	KindTransient         Kind = "transient_store_failure"
)

// Sentinels for errors.Is checks. Matching is by kind only.
var (
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrValidation        = &Error{Kind: KindValidation}
	ErrLimitExceeded     = &Error{Kind: KindLimitExceeded}
	ErrAlreadyCompleted  = &Error{Kind: KindAlreadyCompleted}
	ErrAlreadyOwned      = &Error{Kind: KindAlreadyOwned}
	ErrDeadlineExpired   = &Error{Kind: KindDeadlineExpired}
	ErrInsufficientFunds = &Error{Kind: KindInsufficientFunds}
	ErrTransient         = &Error{Kind: KindTransient}
)

type Error struct {
	Kind    Kind
	Op      string
	Entity  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Entity == "" || t.Entity == e.Entity)
}

func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

func NotFound(op, entity string, id any) *Error {
	return &Error{
		Kind:    KindNotFound,
		Op:      op,
		Entity:  entity,
		Message: fmt.Sprintf("%s %v not found", entity, id),
	}
}

func Validation(op, message string) *Error {
	return New(KindValidation, op, message)
}

// Transient wraps a store failure. Errors that already carry a kind are
// returned unchanged.
func Transient(op, entity string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindTransient, Op: op, Entity: entity, Message: "store failure", Err: err}
}

// KindOf returns the kind carried by err, or KindTransient for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindTransient
}

// EntityOf returns the entity an error refers to, if any.
func EntityOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Entity
	}
	return ""
}

// Entity names used in NotFound errors.
const (
	EntityUser            = "user"
	EntityQuest           = "quest"
	EntityUserQuest       = "user quest"
	EntityItem            = "item"
	EntityUserItem        = "user item"
	EntityAchievement     = "achievement"
	EntityUserAchievement = "user achievement"
)

// IsNotFoundEntity reports whether err is a NotFound error for entity.
func IsNotFoundEntity(err error, entity string) bool {
	return errors.Is(err, &Error{Kind: KindNotFound, Entity: entity})
}
