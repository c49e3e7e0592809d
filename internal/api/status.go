package api

import (
	"net/http"

	"github.com/fanbridge/fanbridge/internal/engine"
	"github.com/labstack/echo/v4"
)

func registerStatusEndpoints(rest *echo.Echo, e *engine.TranslatorEngine) {
	group := rest.Group("/status")

	group.GET("/", func(c echo.Context) error {
		return getStatus(c, e)
	})
}

// returns the current status snapshot of the engine
func getStatus(c echo.Context, e *engine.TranslatorEngine) error {
	return c.JSONPretty(http.StatusOK, e.Status(), indentationChar)
}
