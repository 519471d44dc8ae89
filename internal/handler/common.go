package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// internalError reports an unclassified storage failure as a 500. The
// underlying message is included in the body for diagnostics; this
// service carries no sensitive data, so the message is not scrubbed.
func internalError(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}
