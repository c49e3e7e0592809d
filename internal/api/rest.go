package api

import (
	"github.com/fanbridge/fanbridge/internal/engine"
	"github.com/fanbridge/fanbridge/internal/mapping"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// CreateRestService builds the REST command and diagnostics surface
// for a running translation engine.
func CreateRestService(e *engine.TranslatorEngine, mapper *mapping.SpeedMapper) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())

	echoRest.Use(middleware.Logger())
	echoRest.Use(middleware.Recover())
	echoRest.Use(echoprometheus.NewMiddleware("fanbridge"))

	echoRest.GET("/alive/", isAlive)

	registerStatusEndpoints(echoRest, e)
	registerSpeedEndpoints(echoRest, e, mapper)
	registerModeEndpoints(echoRest, e)
	registerTestEndpoints(echoRest, e)
	registerConfigEndpoints(echoRest)

	return echoRest
}
