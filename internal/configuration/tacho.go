package configuration

import "time"

type TachoConfig struct {
	// Chip is the gpio character device the tachometer line is connected to
	Chip string `json:"chip"`
	// Pin is the line offset of the tachometer signal
	Pin int `json:"pin"`
	// PulsesPerRevolution is a property of the tachometer signal
	PulsesPerRevolution int `json:"pulsesPerRevolution"`
	// Window is the fixed interval between rpm estimate updates
	Window time.Duration `json:"window"`
	// RollingWindowSize is the number of estimates averaged for the smoothed rpm
	RollingWindowSize int `json:"rollingWindowSize"`
}
