package api

import (
	"net/http"

	"github.com/fanbridge/fanbridge/internal/engine"
	"github.com/fanbridge/fanbridge/internal/mapping"
	"github.com/labstack/echo/v4"
)

func registerSpeedEndpoints(rest *echo.Echo, e *engine.TranslatorEngine, mapper *mapping.SpeedMapper) {
	group := rest.Group("/speed")

	group.POST("/:"+urlParamLevel+"/", func(c echo.Context) error {
		return setSpeed(c, e, mapper)
	})
}

// sets a manual speed level, accepts the command vocabulary names
// (off, low, medium, high, max) as well as bare integer levels
func setSpeed(c echo.Context, e *engine.TranslatorEngine, mapper *mapping.SpeedMapper) error {
	param := c.Param(urlParamLevel)
	if len(param) <= 0 {
		return returnBadRequest(c, errMissingLevel)
	}

	level, err := mapper.ParseLevel(param)
	if err != nil {
		return returnBadRequest(c, err)
	}

	err = e.SetSpeed(level)
	if err != nil {
		return returnError(c, err)
	}

	return c.JSONPretty(http.StatusOK, &Result{
		Name:    "ok",
		Message: "speed level set to " + mapper.LevelName(level),
	}, indentationChar)
}
