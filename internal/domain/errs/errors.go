package errs

import "errors"

// Kind classifies a domain failure so callers can choose how to recover.
type Kind string

const (
	KindValidation Kind = "validation"
	KindDuplicate  Kind = "duplicate"
	KindNotFound   Kind = "not_found"
	KindAuth       Kind = "auth"
	KindStorage    Kind = "storage"
)

// Error is a classified domain error. Msg is safe to log; Err carries the cause
// and is never shown to the user.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Msg + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Msg: msg} }
func Duplicate(msg string) *Error  { return &Error{Kind: KindDuplicate, Msg: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Msg: msg} }
func Auth(msg string) *Error       { return &Error{Kind: KindAuth, Msg: msg} }

// Storage wraps a connection or query failure.
func Storage(msg string, err error) *Error {
	return &Error{Kind: KindStorage, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// Common errors
var (
	ErrInvalidCredentials = Auth("invalid credentials")
	ErrAccountDisabled    = Auth("account disabled")
	ErrTokenNotFound      = NotFound("reset token invalid or expired")
	ErrUserNotFound       = NotFound("user not found")
	ErrPhoneTaken         = Duplicate("phone already registered")
)
