package configuration

const (
	// InputModeWire selects one discrete speed line per level
	InputModeWire = "wire"
	// InputModeAnalog selects a single variable-voltage line bucketed via thresholds
	InputModeAnalog = "analog"
)

type InputConfig struct {
	Mode string `json:"mode"`

	// Chip is the gpio character device the speed lines are connected to
	Chip string `json:"chip"`
	// Pins lists one line offset per speed level, lowest tier first
	Pins []int `json:"pins"`
	// ActiveLow marks the speed lines as asserted-when-low
	ActiveLow bool `json:"activeLow"`

	// AnalogPath is the sysfs path of the raw analog reading (iio)
	AnalogPath string `json:"analogPath"`
	// Thresholds holds ascending raw values; a reading at or above
	// Thresholds[i] selects at least level i+1
	Thresholds []int `json:"thresholds"`
}

// Levels returns the number of selectable speed levels (excluding off)
func (c InputConfig) Levels() int {
	if c.Mode == InputModeAnalog {
		return len(c.Thresholds)
	}
	return len(c.Pins)
}
