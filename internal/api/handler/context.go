package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/task-management-api/internal/api/middleware"
	"github.com/taskhive/task-management-api/internal/core/domain"
)

// ctxCaller extracts the caller injected by the Auth middleware. Its
// presence proves the middleware ran; a handler reached without it is a
// wiring bug surfaced as 401 rather than a nil dereference.
func ctxCaller(c echo.Context) (*domain.User, error) {
	caller, _ := c.Get(middleware.CallerKey).(*domain.User)
	if caller == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return caller, nil
}
