package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness check used by load balancers and monitoring.  It
// answers as long as the process serves HTTP; degraded dependencies do not
// make it fail.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
