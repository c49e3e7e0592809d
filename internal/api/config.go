package api

import (
	"net/http"

	"github.com/fanbridge/fanbridge/internal/configuration"
	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
)

func registerConfigEndpoints(rest *echo.Echo) {
	group := rest.Group("/config")

	group.GET("/", getConfig)
}

// returns a deep copy of the active configuration
func getConfig(c echo.Context) error {
	var config configuration.Configuration
	err := reprint.FromTo(&configuration.CurrentConfig, &config)
	if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, config, indentationChar)
}
