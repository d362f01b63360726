package types

import "errors"

type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindAuth       ErrorKind = "auth"
	KindRemote     ErrorKind = "remote"
)

// Error is surfaced to callers as a rejected operation with a human-readable
// message. Nothing is retried.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any error of the same kind when target is one of the sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrAuth       = &Error{Kind: KindAuth}
	ErrRemote     = &Error{Kind: KindRemote}
)

func ValidationError(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFoundError(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func AuthError(message string) error {
	return &Error{Kind: KindAuth, Message: message}
}

// RemoteError wraps a backend failure, keeping the backend's message.
func RemoteError(err error) error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) && typed.Kind == KindRemote {
		return err
	}
	return &Error{Kind: KindRemote, Err: err}
}

func KindOf(err error) ErrorKind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return ""
}
