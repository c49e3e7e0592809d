package cmd

import (
	"github.com/fanbridge/fanbridge/internal/api"
	"github.com/fanbridge/fanbridge/internal/configuration"
	"github.com/fanbridge/fanbridge/internal/ui"
)

// apiClient loads the configuration and returns a client for the REST
// surface of the daemon described by it.
func apiClient() *api.Client {
	configuration.DetectAndReadConfigFile()
	err := configuration.Validate()
	if err != nil {
		ui.FatalWithoutStacktrace("Config Validation Error: %s", err.Error())
	}
	return api.NewClient(configuration.CurrentConfig.Api)
}
