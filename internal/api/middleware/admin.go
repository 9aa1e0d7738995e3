package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/task-management-api/internal/core/domain"
)

// AdminOnly restricts a route group to admin callers. The IsAdmin flag on
// the resolved caller is the sole authority; no email comparison happens at
// request time.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, _ := c.Get(CallerKey).(*domain.User)
			if caller == nil || !caller.IsAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "admin access required"})
			}
			return next(c)
		}
	}
}
