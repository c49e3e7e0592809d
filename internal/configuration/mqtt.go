package configuration

type MqttConfig struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientId string `json:"clientId"`
	Topic    string `json:"topic"`
}
