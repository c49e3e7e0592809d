package configuration

type StatusFileConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}
