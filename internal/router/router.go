package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"hourcount/internal/config"
	"hourcount/internal/handler"
	"hourcount/internal/model"
	"hourcount/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	memberHandler *handler.MemberHandler,
	moderatorHandler *handler.ModeratorHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendOrigin},
		AllowCredentials: true,
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes: the sign-in handshake and session probes
	api.GET("/auth/google", authHandler.GoogleLogin)
	api.GET("/auth/google/callback", authHandler.GoogleCallback)
	api.GET("/auth/status", authHandler.Status)
	api.POST("/auth/logout", authHandler.Logout)

	// Everything below requires a session
	secured := api.Group("", handler.RequireSession(authService))

	member := secured.Group("/member")
	member.POST("/hour-log", memberHandler.CreateHourLog)
	member.GET("/hour-log", memberHandler.MyHourLogs)
	member.GET("/profile", memberHandler.Profile)

	moderator := secured.Group("/moderator", handler.RequireRole(
		model.RoleSecondYearPOR, model.RoleCoordinator, model.RoleTrio))
	moderator.GET("/pending", moderatorHandler.PendingLogs)
	moderator.POST("/log/approve", moderatorHandler.ApproveLog)
	moderator.POST("/log/reject", moderatorHandler.RejectLog)
	moderator.GET("/members", moderatorHandler.ListMembers)
	moderator.GET("/view-logs/:userId", moderatorHandler.ViewUserLogs)
	moderator.POST("/add-user", moderatorHandler.AddUser)
	moderator.DELETE("/remove-user", moderatorHandler.RemoveUser)

	admin := secured.Group("/admin", handler.RequireRole(
		model.RoleCoordinator, model.RoleTrio))
	admin.POST("/promote/excomm", adminHandler.PromoteExcomm)
	admin.POST("/promote/coord", adminHandler.PromoteCoord,
		handler.RequireRole(model.RoleTrio))
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
