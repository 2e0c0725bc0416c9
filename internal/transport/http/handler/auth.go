package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"memberportal/internal/domain"
	"memberportal/internal/forms"
	"memberportal/internal/session"
	"memberportal/internal/transport/http/middleware"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	SignIn(ctx context.Context, form *forms.Login) (*domain.AuthSession, error)
	SignUp(ctx context.Context, form *forms.Registration) (*domain.AuthSession, error)
	SignOut(ctx context.Context, cookieHeader string) error
}

type AuthHandler struct {
	auth   authUsecaser
	logger *slog.Logger
}

func NewAuthHandler(auth authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger.With("component", "auth_handler"),
	}
}

// GET /login
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", gin.H{"Email": ""})
}

// POST /login
// Every failure re-renders the form with one inline message; only a backend
// rejection carries its own wording through.
func (h *AuthHandler) Login(c *gin.Context) {
	var form forms.Login
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.tmpl", gin.H{"Error": errInvalidForm, "Email": form.Email})
		return
	}

	s, err := h.auth.SignIn(c.Request.Context(), &form)
	if err != nil {
		var rej *domain.RejectionError
		switch {
		case errors.Is(err, domain.ErrInvalidForm):
			c.HTML(http.StatusBadRequest, "login.tmpl", gin.H{"Error": errInvalidForm, "Email": form.Email})
		case errors.As(err, &rej):
			c.HTML(http.StatusUnauthorized, "login.tmpl", gin.H{"Error": rej.Message, "Email": form.Email})
		default:
			h.logger.ErrorContext(c.Request.Context(), "sign in", "error", err)
			c.HTML(http.StatusInternalServerError, "login.tmpl", gin.H{"Error": errUnknown, "Email": form.Email})
		}
		return
	}

	c.Header("Set-Cookie", session.Encode(s.Token, s.Expires))
	c.Redirect(http.StatusFound, "/")
}

// GET /register
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.tmpl", gin.H{"FirstName": "", "LastName": "", "Email": ""})
}

// POST /register
// A new account lands signed in: the usecase creates it and immediately
// trades the same credentials for a session.
func (h *AuthHandler) Register(c *gin.Context) {
	var form forms.Registration
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "register.tmpl", gin.H{
			"Error":     errInvalidForm,
			"FirstName": form.FirstName,
			"LastName":  form.LastName,
			"Email":     form.Email,
		})
		return
	}

	s, err := h.auth.SignUp(c.Request.Context(), &form)
	if err != nil {
		fields := gin.H{
			"FirstName": form.FirstName,
			"LastName":  form.LastName,
			"Email":     form.Email,
		}
		var rej *domain.RejectionError
		switch {
		case errors.Is(err, domain.ErrInvalidForm):
			fields["Error"] = errInvalidForm
			c.HTML(http.StatusBadRequest, "register.tmpl", fields)
		case errors.As(err, &rej):
			fields["Error"] = rej.Message
			c.HTML(http.StatusBadRequest, "register.tmpl", fields)
		default:
			h.logger.ErrorContext(c.Request.Context(), "sign up", "error", err)
			fields["Error"] = errUnknown
			c.HTML(http.StatusInternalServerError, "register.tmpl", fields)
		}
		return
	}

	c.Header("Set-Cookie", session.Encode(s.Token, s.Expires))
	c.Redirect(http.StatusFound, "/")
}

// POST /
// The browser cookie is cleared whatever the backend answers; a failed
// logout call shows its message on the home page instead of redirecting.
func (h *AuthHandler) Logout(c *gin.Context) {
	err := h.auth.SignOut(c.Request.Context(), session.Raw(c.Request.Header))

	c.Header("Set-Cookie", session.Clear())

	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "sign out", "error", err)
		user, _ := middleware.CurrentUser(c)

		message := errUnknown
		var rej *domain.RejectionError
		if errors.As(err, &rej) {
			message = rej.Message
		}
		c.HTML(http.StatusInternalServerError, "home.tmpl", gin.H{"User": user, "Error": message})
		return
	}

	c.Redirect(http.StatusFound, "/login")
}
