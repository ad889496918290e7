package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hourcount/internal/authz"
	"hourcount/internal/errors"
	"hourcount/internal/model"
	"hourcount/internal/service"
)

// AdminHandler handles promotion endpoints.
type AdminHandler struct {
	userService service.UserService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(userService service.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

// PromoteRequest identifies a user and the department they land in.
type PromoteRequest struct {
	ID           uint `json:"id" validate:"required,min=1"`
	DepartmentID uint `json:"departmentId" validate:"required,min=1"`
}

// PromoteExcomm godoc
// @Summary Promote a member to second-year POR holder
// @Tags admin
// @Accept json
// @Produce json
// @Param request body PromoteRequest true "Promotion data"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/promote/excomm [post]
func (h *AdminHandler) PromoteExcomm(c echo.Context) error {
	return h.promote(c, model.RoleSecondYearPOR)
}

// PromoteCoord godoc
// @Summary Promote a user to coordinator
// @Tags admin
// @Accept json
// @Produce json
// @Param request body PromoteRequest true "Promotion data"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/promote/coord [post]
func (h *AdminHandler) PromoteCoord(c echo.Context) error {
	return h.promote(c, model.RoleCoordinator)
}

func (h *AdminHandler) promote(c echo.Context, to model.Role) error {
	var req PromoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	user, _ := Principal(c)
	updated, err := h.userService.Promote(c.Request().Context(), authz.PrincipalFromUser(user), req.ID, req.DepartmentID, to)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "Success",
		"updatedUser": updated,
	})
}
