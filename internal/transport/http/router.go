package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"memberportal/internal/gateway"
	"memberportal/internal/transport/http/handler"
	"memberportal/internal/transport/http/middleware"
	"memberportal/internal/transport/http/view"
)

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, homeHandler *handler.HomeHandler, sessions gateway.SessionGateway) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	r.SetHTMLTemplate(view.Pages())

	// Pages for signed-out visitors; a live session bounces them home.
	anonymous := r.Group("/", middleware.RedirectAuthenticated(sessions, logger))
	anonymous.GET("/login", authHandler.ShowLogin)
	anonymous.POST("/login", authHandler.Login)
	anonymous.GET("/register", authHandler.ShowRegister)
	anonymous.POST("/register", authHandler.Register)

	// Member pages; anonymous requests land on the login form.
	member := r.Group("/", middleware.RequireUser(sessions, logger))
	member.GET("", homeHandler.Show)
	member.POST("", authHandler.Logout)

	return r
}
