package configuration

type PwmConfig struct {
	// Chip is the sysfs pwmchip index
	Chip int `json:"chip"`
	// Channel is the pwm channel on the chip
	Channel int `json:"channel"`
	// Top is the timer compare resolution, duty cycle values are in [0, Top]
	Top int `json:"top"`
	// PeriodNs is the pwm period, chosen to suit the driven motor
	PeriodNs int `json:"periodNs"`
}
