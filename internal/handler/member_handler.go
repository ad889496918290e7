package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"hourcount/internal/authz"
	"hourcount/internal/errors"
	"hourcount/internal/model"
	"hourcount/internal/service"
)

// MemberHandler handles member-facing endpoints.
type MemberHandler struct {
	hourLogService service.HourLogService
	memberService  service.MemberService
}

// NewMemberHandler creates a new member handler.
func NewMemberHandler(hourLogService service.HourLogService, memberService service.MemberService) *MemberHandler {
	return &MemberHandler{
		hourLogService: hourLogService,
		memberService:  memberService,
	}
}

// LogHoursRequest represents an hour log submission. Dates and times
// arrive separately, the way the dashboard form collects them.
type LogHoursRequest struct {
	StartDate     string `json:"startDate" validate:"required"`
	EndDate       string `json:"endDate" validate:"required"`
	StartTime     string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime       string `json:"endTime" validate:"required,datetime=15:04"`
	Task          string `json:"task" validate:"required"`
	Category      string `json:"category" validate:"required,oneof=Dept Meet Event Misc HR"`
	SeniorPresent string `json:"seniorPresent" validate:"omitempty,max=255"`
}

// combineDateTime merges a date string and an HH:MM clock string into
// one instant. Dates may arrive as plain 2006-01-02 or full RFC 3339.
func combineDateTime(dateStr, timeStr string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
	if err != nil {
		date, err = time.Parse(time.RFC3339, strings.TrimSpace(dateStr))
		if err != nil {
			return time.Time{}, err
		}
	}
	clock, err := time.Parse("15:04", strings.TrimSpace(timeStr))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.UTC), nil
}

// CreateHourLog godoc
// @Summary Submit an hour log
// @Tags member
// @Accept json
// @Produce json
// @Param request body LogHoursRequest true "Hour log data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /member/hour-log [post]
func (h *MemberHandler) CreateHourLog(c echo.Context) error {
	var req LogHoursRequest
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

	start, err := combineDateTime(req.StartDate, req.StartTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid start date or time",
			Code:  "INVALID_DATETIME",
		})
	}
	end, err := combineDateTime(req.EndDate, req.EndTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid end date or time",
			Code:  "INVALID_DATETIME",
		})
	}

	user, _ := Principal(c)
	log, err := h.hourLogService.Create(c.Request().Context(), authz.PrincipalFromUser(user), service.CreateHourLogInput{
		Task:          req.Task,
		Category:      model.HourCategory(req.Category),
		Start:         start,
		End:           end,
		SeniorPresent: req.SeniorPresent,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Log created",
		"newLog":  log,
	})
}

// MyHourLogs godoc
// @Summary List the current member's hour logs
// @Tags member
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /member/hour-log [get]
func (h *MemberHandler) MyHourLogs(c echo.Context) error {
	user, _ := Principal(c)
	logs, err := h.hourLogService.MyLogs(c.Request().Context(), authz.PrincipalFromUser(user))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "Success",
		"myHourLogs": logs,
	})
}

// Profile godoc
// @Summary Return the current member's profile with counters and logs
// @Tags member
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /member/profile [get]
func (h *MemberHandler) Profile(c echo.Context) error {
	user, _ := Principal(c)
	profile, err := h.memberService.Profile(c.Request().Context(), authz.PrincipalFromUser(user))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Success",
		"user":    profile,
	})
}

// pageParams reads 1-based page/amount query parameters.
func pageParams(c echo.Context) (page, amount int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	amount, _ = strconv.Atoi(c.QueryParam("amount"))
	return page, amount
}
