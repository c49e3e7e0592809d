package api

import (
	"net/http"

	"github.com/fanbridge/fanbridge/internal/engine"
	"github.com/labstack/echo/v4"
)

func registerTestEndpoints(rest *echo.Echo, e *engine.TranslatorEngine) {
	group := rest.Group("/test")

	group.POST("/", func(c echo.Context) error {
		return startTest(c, e)
	})
}

// starts a sweep through all speed levels
func startTest(c echo.Context, e *engine.TranslatorEngine) error {
	err := e.StartTest()
	if err != nil {
		return returnError(c, err)
	}

	return c.JSONPretty(http.StatusOK, &Result{
		Name:    "ok",
		Message: "speed level self test started",
	}, indentationChar)
}
