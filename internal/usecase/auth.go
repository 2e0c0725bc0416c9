package usecase

import (
	"context"
	"errors"
	"fmt"

	"memberportal/internal/domain"
	"memberportal/internal/forms"
	"memberportal/internal/gateway"
	"memberportal/internal/metrics"
)

type AuthUsecase struct {
	gateway gateway.SessionGateway
}

func NewAuthUsecase(gw gateway.SessionGateway) *AuthUsecase {
	return &AuthUsecase{gateway: gw}
}

// SignIn validates the submitted credentials locally, then exchanges them
// for a backend session. The gateway is never called with a form that fails
// validation.
func (u *AuthUsecase) SignIn(ctx context.Context, form *forms.Login) (*domain.AuthSession, error) {
	if err := form.Validate(); err != nil {
		u.count("sign_in", err)
		return nil, err
	}

	session, err := u.gateway.StartSession(ctx, form.Email, form.Password)
	u.count("sign_in", err)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// SignUp registers the account and immediately signs the new user in, so a
// successful registration lands in an authenticated session.
func (u *AuthUsecase) SignUp(ctx context.Context, form *forms.Registration) (*domain.AuthSession, error) {
	if err := form.Validate(); err != nil {
		u.count("sign_up", err)
		return nil, err
	}

	err := u.gateway.CreateAccount(ctx, gateway.CreateAccountInput{
		Email:     form.Email,
		Password:  form.Password,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})
	if err != nil {
		u.count("sign_up", err)
		return nil, err
	}

	// Creating the account opens no session; trade the same credentials for
	// one right away.
	session, err := u.gateway.StartSession(ctx, form.Email, form.Password)
	u.count("sign_up", err)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// SignOut asks the backend to end the session carried by the Cookie header.
// Callers clear the browser cookie whatever the outcome here.
func (u *AuthUsecase) SignOut(ctx context.Context, cookieHeader string) error {
	err := u.gateway.EndSession(ctx, cookieHeader)
	u.count("sign_out", err)
	return err
}

// Directory lists every registered user as seen by the given session.
func (u *AuthUsecase) Directory(ctx context.Context, cookieHeader string) ([]domain.User, error) {
	users, err := u.gateway.ListUsers(ctx, cookieHeader)
	if err != nil {
		return nil, fmt.Errorf("load directory: %w", err)
	}
	return users, nil
}

func (u *AuthUsecase) count(operation string, err error) {
	metrics.AuthAttemptsTotal.WithLabelValues(operation, outcomeLabel(err)).Inc()
}

func outcomeLabel(err error) string {
	var rej *domain.RejectionError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidForm):
		return "invalid_form"
	case errors.As(err, &rej):
		return "rejected"
	default:
		return "error"
	}
}
