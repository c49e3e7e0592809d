package api

import (
	"net/http"

	"github.com/fanbridge/fanbridge/internal/engine"
	"github.com/labstack/echo/v4"
)

func registerModeEndpoints(rest *echo.Echo, e *engine.TranslatorEngine) {
	group := rest.Group("/mode")

	group.POST("/auto/", func(c echo.Context) error {
		return setAuto(c, e)
	})
}

// clears a manual override and resumes following the hardware input
func setAuto(c echo.Context, e *engine.TranslatorEngine) error {
	err := e.SetAuto()
	if err != nil {
		return returnError(c, err)
	}

	return c.JSONPretty(http.StatusOK, &Result{
		Name:    "ok",
		Message: "automatic input control resumed",
	}, indentationChar)
}
