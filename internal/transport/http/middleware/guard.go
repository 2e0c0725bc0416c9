package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"memberportal/internal/domain"
	"memberportal/internal/session"
)

// sessionResolver is the subset of the session gateway the guards need.
// Defined here (point of use) so tests can inject a fake.
type sessionResolver interface {
	CurrentUser(ctx context.Context, cookieHeader string) (*domain.User, error)
}

const userKey = "currentUser"

// RequireUser resolves the session cookie against the backend on every
// request and stores the user in the gin context. Anonymous requests are
// redirected to the login page. The cookie is never trusted by itself; the
// backend decides what it is worth each time.
func RequireUser(sessions sessionResolver, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "route_guard")
	return func(c *gin.Context) {
		user := resolveUser(c, sessions, logger)
		if user == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// RedirectAuthenticated keeps signed-in users away from the login and
// registration pages by sending them home.
func RedirectAuthenticated(sessions sessionResolver, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "route_guard")
	return func(c *gin.Context) {
		if user := resolveUser(c, sessions, logger); user != nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// resolveUser returns the session's user, or nil for anonymous requests.
// Requests without a session cookie skip the backend call. A backend failure
// is logged and treated as anonymous; the guard's only job is to pick which
// page the browser lands on.
func resolveUser(c *gin.Context, sessions sessionResolver, logger *slog.Logger) *domain.User {
	if _, ok := session.Extract(c.Request.Header); !ok {
		return nil
	}

	user, err := sessions.CurrentUser(c.Request.Context(), session.Raw(c.Request.Header))
	if err != nil {
		logger.ErrorContext(c.Request.Context(), "resolve session", "error", err)
		return nil
	}
	return user
}

// CurrentUser returns the user stored by RequireUser.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
