package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"memberportal/internal/domain"
	"memberportal/internal/session"
	"memberportal/internal/transport/http/middleware"
)

// directoryLister is the subset of AuthUsecase the home page needs.
// Defined here (point of use) so tests can inject a fake.
type directoryLister interface {
	Directory(ctx context.Context, cookieHeader string) ([]domain.User, error)
}

type HomeHandler struct {
	directory directoryLister
	logger    *slog.Logger
}

func NewHomeHandler(directory directoryLister, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		directory: directory,
		logger:    logger.With("component", "home_handler"),
	}
}

// GET /
// The guard has already resolved the user. A directory failure degrades to
// an inline message; the page itself still renders.
func (h *HomeHandler) Show(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	data := gin.H{"User": user}

	users, err := h.directory.Directory(c.Request.Context(), session.Raw(c.Request.Header))
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "load directory", "error", err)
		data["DirectoryError"] = errUnknown
	} else {
		data["Users"] = users
	}

	c.HTML(http.StatusOK, "home.tmpl", data)
}
