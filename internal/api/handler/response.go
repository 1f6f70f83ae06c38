package handler

import "github.com/labstack/echo/v4"

// apiResponse is the success envelope shared by every endpoint. Errors use
// the envelope rendered by the central error handler instead.
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, apiResponse{Success: true, Data: data})
}

func respondMessage(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, apiResponse{Success: true, Data: data, Message: message})
}
