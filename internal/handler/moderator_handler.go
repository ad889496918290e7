package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"hourcount/internal/authz"
	"hourcount/internal/errors"
	"hourcount/internal/service"
)

// ModeratorHandler handles reviewer endpoints: the pending queue,
// approvals, rejections, and scoped member management.
type ModeratorHandler struct {
	hourLogService service.HourLogService
	memberService  service.MemberService
	userService    service.UserService
}

// NewModeratorHandler creates a new moderator handler.
func NewModeratorHandler(hourLogService service.HourLogService, memberService service.MemberService, userService service.UserService) *ModeratorHandler {
	return &ModeratorHandler{
		hourLogService: hourLogService,
		memberService:  memberService,
		userService:    userService,
	}
}

// LogIDRequest identifies a single hour log.
type LogIDRequest struct {
	ID uint `json:"id" validate:"required,min=1"`
}

// UserIDRequest identifies a single user.
type UserIDRequest struct {
	ID uint `json:"id" validate:"required,min=1"`
}

// AddUserRequest represents a new-member request.
type AddUserRequest struct {
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	DepartmentID     uint   `json:"departmentId" validate:"omitempty,min=1"`
	SpecificPosition string `json:"specificPosition" validate:"omitempty,max=50"`
}

// HourCountsResponse carries a user's four counters after an approval.
type HourCountsResponse struct {
	HourCountDept  float64 `json:"hourCountDept"`
	HourCountMeet  float64 `json:"hourCountMeet"`
	HourCountEvent float64 `json:"hourCountEvent"`
	HourCountMisc  float64 `json:"hourCountMisc"`
}

// PendingLogs godoc
// @Summary List pending hour logs visible to the reviewer
// @Tags moderator
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /moderator/pending [get]
func (h *ModeratorHandler) PendingLogs(c echo.Context) error {
	user, _ := Principal(c)
	logs, err := h.hourLogService.PendingLogs(c.Request().Context(), authz.PrincipalFromUser(user))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Success",
		"logs":    logs,
	})
}

// ApproveLog godoc
// @Summary Approve a pending hour log
// @Tags moderator
// @Accept json
// @Produce json
// @Param request body LogIDRequest true "Log id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /moderator/log/approve [post]
func (h *ModeratorHandler) ApproveLog(c echo.Context) error {
	var req LogIDRequest
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
	owner, err := h.hourLogService.Approve(c.Request().Context(), authz.PrincipalFromUser(user), req.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Hour count updated",
		"newHourCounts": HourCountsResponse{
			HourCountDept:  owner.HourCountDept,
			HourCountMeet:  owner.HourCountMeet,
			HourCountEvent: owner.HourCountEvent,
			HourCountMisc:  owner.HourCountMisc,
		},
	})
}

// RejectLog godoc
// @Summary Reject a pending hour log
// @Tags moderator
// @Accept json
// @Produce json
// @Param request body LogIDRequest true "Log id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /moderator/log/reject [post]
func (h *ModeratorHandler) RejectLog(c echo.Context) error {
	var req LogIDRequest
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
	log, err := h.hourLogService.Reject(c.Request().Context(), authz.PrincipalFromUser(user), req.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Log rejected",
		"log":     log,
	})
}

// ListMembers godoc
// @Summary List members visible to the reviewer, paginated
// @Tags moderator
// @Produce json
// @Param page query int false "1-based page"
// @Param amount query int false "page size"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Router /moderator/members [get]
func (h *ModeratorHandler) ListMembers(c echo.Context) error {
	page, amount := pageParams(c)
	user, _ := Principal(c)
	members, pagination, err := h.memberService.ListMembers(c.Request().Context(), authz.PrincipalFromUser(user), page, amount)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "success",
		"members":    members,
		"pagination": pagination,
	})
}

// ViewUserLogs godoc
// @Summary View one member's hour logs, paginated
// @Tags moderator
// @Produce json
// @Param userId path int true "User id"
// @Param page query int false "1-based page"
// @Param amount query int false "page size"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /moderator/view-logs/{userId} [get]
func (h *ModeratorHandler) ViewUserLogs(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil || userID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "user id must be a natural number",
			Code:  "INVALID_USER_ID",
		})
	}

	page, amount := pageParams(c)
	user, _ := Principal(c)
	logs, pagination, err := h.hourLogService.UserLogs(c.Request().Context(), authz.PrincipalFromUser(user), uint(userID), page, amount)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "success",
		"logs":       logs,
		"pagination": pagination,
	})
}

// AddUser godoc
// @Summary Create a new Member account
// @Tags moderator
// @Accept json
// @Produce json
// @Param request body AddUserRequest true "New member data"
// @Success 201 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /moderator/add-user [post]
func (h *ModeratorHandler) AddUser(c echo.Context) error {
	var req AddUserRequest
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
	created, err := h.userService.AddUser(c.Request().Context(), authz.PrincipalFromUser(user), service.AddUserInput{
		Name:             req.Name,
		Email:            req.Email,
		DepartmentID:     req.DepartmentID,
		SpecificPosition: req.SpecificPosition,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"newUser": created,
	})
}

// RemoveUser godoc
// @Summary Delete a user and cascade over their hour logs
// @Tags moderator
// @Accept json
// @Produce json
// @Param request body UserIDRequest true "User id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /moderator/remove-user [delete]
func (h *ModeratorHandler) RemoveUser(c echo.Context) error {
	var req UserIDRequest
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
	summary, err := h.userService.RemoveUser(c.Request().Context(), authz.PrincipalFromUser(user), req.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "User deleted",
		"deletedUser": summary.DeletedUser,
		"deletedLogs": summary.DeletedLogs,
	})
}
