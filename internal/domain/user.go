package domain

import (
	"errors"
	"time"
)

// ErrInvalidForm is the single generic validation failure. Which field was
// rejected is deliberately not exposed to the user.
var ErrInvalidForm = errors.New("invalid form data")

// RejectionError is a structured error payload issued by the identity
// backend. Its message is surfaced to the user verbatim (e.g. a duplicate
// email on registration, or wrong credentials on login). Anything else that
// goes wrong talking to the backend is an ordinary error and collapses to a
// generic message at the handler boundary.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string { return e.Message }

// User is the identity the backend resolves from a session cookie. It lives
// for the duration of one request and is never cached across requests.
type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Roles     []string
}

// AuthSession is a successful sign-in: the backend-issued opaque token, the
// instant it expires, and the user it authenticates.
type AuthSession struct {
	Token   string
	Expires time.Time
	User    User
}
