package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Error bodies follow the {"detail": ...} convention used by all
// endpoints of this API.

func notFound(c echo.Context, kind string) error {
	return c.JSON(http.StatusNotFound, map[string]string{
		"detail": fmt.Sprintf("%s not found", kind),
	})
}

func badRequest(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{
		"detail": detail,
	})
}

func internalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, map[string]string{
		"detail": "internal server error",
	})
}
