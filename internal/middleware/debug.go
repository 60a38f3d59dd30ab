package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DebugOnly hides a route behind the debug switch: when disabled the route
// answers 404 as if it did not exist.
func DebugOnly(enabled bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enabled {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
			}
			return next(c)
		}
	}
}
