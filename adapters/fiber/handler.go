package fiber

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/looplan/looplan/core"
)

type scheduleListResponse struct {
	Schedules []*core.Schedule `json:"schedules"`
}

type colorListResponse struct {
	ScheduleColors []*core.ScheduleColor `json:"schedule_colors"`
}

func (a *Adapter) signup(c fiber.Ctx) error {
	var input core.SignUpInput
	if err := c.Bind().Body(&input); err != nil {
		return badBody(c)
	}

	result, err := a.lp.Auth.SignUp(c.Context(), input)
	if err != nil {
		return a.fail(c, err)
	}

	return c.Status(http.StatusCreated).JSON(result)
}

func (a *Adapter) signin(c fiber.Ctx) error {
	var input core.SignInInput
	if err := c.Bind().Body(&input); err != nil {
		return badBody(c)
	}

	result, err := a.lp.Auth.SignIn(c.Context(), input)
	if err != nil {
		return a.fail(c, err)
	}

	return c.Status(http.StatusAccepted).JSON(result)
}

func (a *Adapter) me(c fiber.Ctx) error {
	session := sessionFromCtx(c)

	user, err := a.lp.Auth.Profile(c.Context(), session.UserID)
	if err != nil {
		return a.fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(user)
}

func (a *Adapter) listSchedules(c fiber.Ctx) error {
	session := sessionFromCtx(c)

	windowStart, err := parseWindowBound(c.Query("start_time"))
	if err != nil {
		return a.fail(c, err)
	}
	windowEnd, err := parseWindowBound(c.Query("end_time"))
	if err != nil {
		return a.fail(c, err)
	}

	schedules, err := a.lp.Schedules.List(c.Context(), session.UserID, windowStart, windowEnd)
	if err != nil {
		return a.fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(scheduleListResponse{Schedules: schedules})
}

func (a *Adapter) createSchedule(c fiber.Ctx) error {
	session := sessionFromCtx(c)

	var input core.CreateScheduleInput
	if err := c.Bind().Body(&input); err != nil {
		return badBody(c)
	}

	schedule, err := a.lp.Schedules.Create(c.Context(), session.UserID, input)
	if err != nil {
		return a.fail(c, err)
	}

	return c.Status(http.StatusAccepted).JSON(schedule)
}

func (a *Adapter) getSchedule(c fiber.Ctx) error {
	session := sessionFromCtx(c)

	schedule, err := a.lp.Schedules.Get(c.Context(), session.UserID, c.Params("schedule_id"))
	if err != nil {
		return a.fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(schedule)
}

func (a *Adapter) updateSchedule(c fiber.Ctx) error {
	session := sessionFromCtx(c)

	var changes core.ScheduleChanges
	if err := c.Bind().Body(&changes); err != nil {
		return badBody(c)
	}

	schedule, err := a.lp.Schedules.Update(c.Context(), session.UserID, c.Params("schedule_id"), changes)
	if err != nil {
		return a.fail(c, err)
	}

	return c.Status(http.StatusAccepted).JSON(schedule)
}

func (a *Adapter) listColors(c fiber.Ctx) error {
	colors, err := a.lp.Colors.List(c.Context())
	if err != nil {
		return a.fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(colorListResponse{ScheduleColors: colors})
}

func (a *Adapter) createColor(c fiber.Ctx) error {
	var input core.CreateColorInput
	if err := c.Bind().Body(&input); err != nil {
		return badBody(c)
	}

	color, err := a.lp.Colors.Create(c.Context(), input)
	if err != nil {
		return a.fail(c, err)
	}

	return c.Status(http.StatusAccepted).JSON(color)
}

// parseWindowBound parses one RFC3339 window bound from the query string.
func parseWindowBound(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, core.ErrInvalidTimeWindow
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, core.ErrInvalidTimestamp
	}
	return t, nil
}

func badBody(c fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(map[string]string{
		"error": "invalid request body",
	})
}

// fail maps service errors to HTTP responses. Store-side failures are the
// only ones worth logging here; everything else is the client's problem.
func (a *Adapter) fail(c fiber.Ctx, err error) error {
	status := mapErrorToStatus(err)
	if status >= http.StatusInternalServerError && a.log != nil {
		a.log.Error(c.Context(), "request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
	}
	return c.Status(status).JSON(map[string]string{
		"error": err.Error(),
	})
}

// mapErrorToStatus maps the core error taxonomy to HTTP status codes
func mapErrorToStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, core.ErrNameRequired),
		errors.Is(err, core.ErrPasswordRequired),
		errors.Is(err, core.ErrColorRequired),
		errors.Is(err, core.ErrInvalidID),
		errors.Is(err, core.ErrInvalidTimestamp),
		errors.Is(err, core.ErrInvalidTimeWindow):
		return http.StatusBadRequest

	case errors.Is(err, core.ErrInvalidCredentials),
		errors.Is(err, core.ErrMissingAuthHeader),
		errors.Is(err, core.ErrInvalidAuthHeader),
		errors.Is(err, core.ErrInvalidToken),
		errors.Is(err, core.ErrSessionNotFound):
		return http.StatusUnauthorized

	case errors.Is(err, core.ErrScheduleNotFound),
		errors.Is(err, core.ErrColorNotFound),
		errors.Is(err, core.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, core.ErrUserExists):
		return http.StatusConflict

	case errors.Is(err, core.ErrStoreUnavailable):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}
