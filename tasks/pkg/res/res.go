package res

import (
	"github.com/labstack/echo/v4"
)

func Json(c echo.Context, data any, statusCode int) error {
	return c.JSON(statusCode, data)
}

func Error(c echo.Context, msg string, statusCode int) error {
	return Json(c, map[string]any{"error": msg}, statusCode)
}

// Message acknowledges a write with a human-readable message and optional extra fields.
func Message(c echo.Context, msg string, statusCode int, extra map[string]any) error {
	body := map[string]any{"message": msg}
	for k, v := range extra {
		body[k] = v
	}
	return Json(c, body, statusCode)
}
