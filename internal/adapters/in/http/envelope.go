package http

import (
	"github.com/labstack/echo/v4"
)

// payload is merged into the envelope next to success and message.
type payload map[string]any

func ok(c echo.Context, status int, message string, body payload) error {
	envelope := payload{"success": true}
	if message != "" {
		envelope["message"] = message
	}
	for k, v := range body {
		envelope[k] = v
	}
	return c.JSON(status, envelope)
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, payload{"success": false, "message": message})
}
