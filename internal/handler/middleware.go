package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hourcount/internal/auth"
	"hourcount/internal/errors"
	"hourcount/internal/model"
	"hourcount/internal/service"
)

const principalContextKey = "principal"

// Principal returns the authenticated user attached by RequireSession.
func Principal(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(principalContextKey).(*model.User)
	return user, ok
}

// sessionID extracts the opaque session id from the request cookie.
func sessionID(c echo.Context) string {
	cookie, err := c.Cookie(auth.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// RequireSession resolves the session cookie to a user and attaches it
// to the request context, or fails with 401.
func RequireSession(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := authService.CurrentUser(c.Request().Context(), sessionID(c))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "not authenticated",
					Code:  "NOT_AUTHENTICATED",
				})
			}
			c.Set(principalContextKey, user)
			return next(c)
		}
	}
}

// RequireRole gates a route to the given roles. It must run after
// RequireSession.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := Principal(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "not authenticated",
					Code:  "NOT_AUTHENTICATED",
				})
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "action forbidden for role: " + string(user.Role),
				Code:  "FORBIDDEN",
			})
		}
	}
}
