// Package gateway defines the boundary to the external identity backend. All
// user storage, password hashing, token signing, and role decisions live on
// the other side of this interface.
package gateway

import (
	"context"

	"memberportal/internal/domain"
)

// CreateAccountInput carries everything the backend needs to register an
// account. It exists only for the duration of one submission.
type CreateAccountInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// SessionGateway is the only path to the identity backend. Consumers narrow
// it further at their point of use so tests can inject fakes.
type SessionGateway interface {
	// CurrentUser resolves the inbound Cookie header to a user. A missing or
	// invalid session yields (nil, nil): absent is a normal outcome, not an
	// error.
	CurrentUser(ctx context.Context, cookieHeader string) (*domain.User, error)

	// CreateAccount registers a new account. It never establishes a session;
	// a rejection (duplicate email and the like) comes back as a
	// *domain.RejectionError carrying the backend's message.
	CreateAccount(ctx context.Context, input CreateAccountInput) error

	// StartSession exchanges credentials for a session token and its expiry.
	// Invalid credentials come back as a *domain.RejectionError.
	StartSession(ctx context.Context, email, password string) (*domain.AuthSession, error)

	// EndSession asks the backend to invalidate the session carried by the
	// Cookie header. Ending an already-ended session is backend-defined and
	// not special-cased here.
	EndSession(ctx context.Context, cookieHeader string) error

	// ListUsers returns the backend's user directory as seen by the session
	// carried in the Cookie header.
	ListUsers(ctx context.Context, cookieHeader string) ([]domain.User, error)
}
