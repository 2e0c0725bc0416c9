package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"memberportal/internal/domain"
	"memberportal/internal/forms"
	"memberportal/internal/gateway"
	"memberportal/internal/usecase"
)

// ---- fakes ----

type fakeGateway struct {
	currentUser   func(ctx context.Context, cookieHeader string) (*domain.User, error)
	createAccount func(ctx context.Context, input gateway.CreateAccountInput) error
	startSession  func(ctx context.Context, email, password string) (*domain.AuthSession, error)
	endSession    func(ctx context.Context, cookieHeader string) error
	listUsers     func(ctx context.Context, cookieHeader string) ([]domain.User, error)
}

func (g *fakeGateway) CurrentUser(ctx context.Context, cookieHeader string) (*domain.User, error) {
	return g.currentUser(ctx, cookieHeader)
}

func (g *fakeGateway) CreateAccount(ctx context.Context, input gateway.CreateAccountInput) error {
	return g.createAccount(ctx, input)
}

func (g *fakeGateway) StartSession(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	return g.startSession(ctx, email, password)
}

func (g *fakeGateway) EndSession(ctx context.Context, cookieHeader string) error {
	return g.endSession(ctx, cookieHeader)
}

func (g *fakeGateway) ListUsers(ctx context.Context, cookieHeader string) ([]domain.User, error) {
	return g.listUsers(ctx, cookieHeader)
}

var testSession = &domain.AuthSession{
	Token:   "tok123",
	Expires: time.Now().Add(2 * time.Hour),
	User:    domain.User{ID: "u1", Email: "ada@example.com"},
}

// ---- SignIn ----

func TestSignIn_InvalidFormNeverReachesBackend(t *testing.T) {
	called := false
	gw := &fakeGateway{
		startSession: func(_ context.Context, _, _ string) (*domain.AuthSession, error) {
			called = true
			return testSession, nil
		},
	}

	cases := []struct {
		name string
		form forms.Login
	}{
		{"bad email", forms.Login{Email: "not-an-email", Password: "secret"}},
		{"short password", forms.Login{Email: "ada@example.com", Password: "12345"}},
		{"empty form", forms.Login{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := tc.form
			_, err := usecase.NewAuthUsecase(gw).SignIn(context.Background(), &form)
			if !errors.Is(err, domain.ErrInvalidForm) {
				t.Errorf("want ErrInvalidForm, got %v", err)
			}
			if called {
				t.Error("backend must not be called for an invalid form")
			}
		})
	}
}

func TestSignIn_SendsTrimmedEmail(t *testing.T) {
	var gotEmail string
	gw := &fakeGateway{
		startSession: func(_ context.Context, email, _ string) (*domain.AuthSession, error) {
			gotEmail = email
			return testSession, nil
		},
	}

	form := &forms.Login{Email: "  ada@example.com  ", Password: "secret"}
	session, err := usecase.NewAuthUsecase(gw).SignIn(context.Background(), form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotEmail != "ada@example.com" {
		t.Errorf("email sent to backend = %q, want trimmed", gotEmail)
	}
	if session != testSession {
		t.Error("session not returned")
	}
}

func TestSignIn_RejectionPropagates(t *testing.T) {
	gw := &fakeGateway{
		startSession: func(_ context.Context, _, _ string) (*domain.AuthSession, error) {
			return nil, &domain.RejectionError{Message: "The email or password provided is incorrect."}
		},
	}

	_, err := usecase.NewAuthUsecase(gw).SignIn(context.Background(), &forms.Login{
		Email: "ada@example.com", Password: "secret",
	})

	var rej *domain.RejectionError
	if !errors.As(err, &rej) {
		t.Fatalf("want rejection, got %v", err)
	}
}

// ---- SignUp ----

func TestSignUp_CreatesAccountThenSignsIn(t *testing.T) {
	var calls []string
	var created gateway.CreateAccountInput

	gw := &fakeGateway{
		createAccount: func(_ context.Context, input gateway.CreateAccountInput) error {
			calls = append(calls, "create")
			created = input
			return nil
		},
		startSession: func(_ context.Context, email, password string) (*domain.AuthSession, error) {
			calls = append(calls, "start")
			if email != "ada@example.com" || password != "secret" {
				t.Errorf("sign-in used %q/%q, want the registered credentials", email, password)
			}
			return testSession, nil
		},
	}

	form := &forms.Registration{
		FirstName: " Ada ", LastName: "Lovelace",
		Email: "ada@example.com", Password: "secret",
	}
	session, err := usecase.NewAuthUsecase(gw).SignUp(context.Background(), form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session != testSession {
		t.Error("session not returned")
	}

	if len(calls) != 2 || calls[0] != "create" || calls[1] != "start" {
		t.Fatalf("calls = %v, want [create start]", calls)
	}
	if created.FirstName != "Ada" {
		t.Errorf("first name sent to backend = %q, want trimmed", created.FirstName)
	}
}

func TestSignUp_CreateRejectionSkipsSignIn(t *testing.T) {
	started := false
	gw := &fakeGateway{
		createAccount: func(_ context.Context, _ gateway.CreateAccountInput) error {
			return &domain.RejectionError{Message: "A user with the given email is already registered."}
		},
		startSession: func(_ context.Context, _, _ string) (*domain.AuthSession, error) {
			started = true
			return testSession, nil
		},
	}

	_, err := usecase.NewAuthUsecase(gw).SignUp(context.Background(), &forms.Registration{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "secret",
	})

	var rej *domain.RejectionError
	if !errors.As(err, &rej) {
		t.Fatalf("want rejection, got %v", err)
	}
	if started {
		t.Error("sign-in must not run when account creation is rejected")
	}
}

func TestSignUp_SignInFailureAfterCreatePropagates(t *testing.T) {
	signInErr := errors.New("start_session: connection refused")
	gw := &fakeGateway{
		createAccount: func(_ context.Context, _ gateway.CreateAccountInput) error { return nil },
		startSession: func(_ context.Context, _, _ string) (*domain.AuthSession, error) {
			return nil, signInErr
		},
	}

	_, err := usecase.NewAuthUsecase(gw).SignUp(context.Background(), &forms.Registration{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "secret",
	})
	if !errors.Is(err, signInErr) {
		t.Errorf("want sign-in error surfaced, got %v", err)
	}
}

// ---- SignOut / Directory ----

func TestSignOut_ForwardsCookieHeader(t *testing.T) {
	var gotCookie string
	gw := &fakeGateway{
		endSession: func(_ context.Context, cookieHeader string) error {
			gotCookie = cookieHeader
			return nil
		},
	}

	if err := usecase.NewAuthUsecase(gw).SignOut(context.Background(), "payload-token=abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotCookie != "payload-token=abc" {
		t.Errorf("cookie header = %q, want forwarded verbatim", gotCookie)
	}
}

func TestDirectory_ReturnsUsers(t *testing.T) {
	gw := &fakeGateway{
		listUsers: func(_ context.Context, _ string) ([]domain.User, error) {
			return []domain.User{{ID: "u1"}, {ID: "u2"}}, nil
		},
	}

	users, err := usecase.NewAuthUsecase(gw).Directory(context.Background(), "payload-token=abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestDirectory_WrapsGatewayError(t *testing.T) {
	gwErr := errors.New("list_users: connection refused")
	gw := &fakeGateway{
		listUsers: func(_ context.Context, _ string) ([]domain.User, error) {
			return nil, gwErr
		},
	}

	_, err := usecase.NewAuthUsecase(gw).Directory(context.Background(), "payload-token=abc")
	if !errors.Is(err, gwErr) {
		t.Errorf("want wrapped gateway error, got %v", err)
	}
}
