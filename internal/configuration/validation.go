package configuration

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	if config.TickRate <= 0 {
		return errors.New("tickRate must be > 0")
	}
	if config.DebounceInterval < 0 {
		return errors.New("debounceInterval must be >= 0")
	}
	if config.TestDwell <= 0 {
		return errors.New("testDwell must be > 0")
	}

	err := validateInput(config)
	if err != nil {
		return err
	}
	err = validateSpeeds(config)
	if err != nil {
		return err
	}
	err = validatePwm(config)
	if err != nil {
		return err
	}
	err = validateTacho(config)
	if err != nil {
		return err
	}
	return validatePorts(config)
}

func validateInput(config *Configuration) error {
	input := config.Input

	supportedModes := []string{InputModeWire, InputModeAnalog}
	if !slices.Contains(supportedModes, input.Mode) {
		return errors.New(fmt.Sprintf("Input: unsupported mode '%s', use one of: wire | analog", input.Mode))
	}

	levels := input.Levels()
	if levels < 3 || levels > 4 {
		return errors.New(fmt.Sprintf("Input: %d speed levels configured, must be 3 or 4", levels))
	}

	switch input.Mode {
	case InputModeWire:
		if len(input.Chip) <= 0 {
			return errors.New("Input: missing gpio chip")
		}
		seen := map[int]bool{}
		for _, pin := range input.Pins {
			if pin < 0 {
				return errors.New(fmt.Sprintf("Input: invalid pin %d", pin))
			}
			if seen[pin] {
				return errors.New(fmt.Sprintf("Input: pin %d used more than once", pin))
			}
			seen[pin] = true
		}
	case InputModeAnalog:
		if len(input.AnalogPath) <= 0 {
			return errors.New("Input: missing analogPath for analog mode")
		}
		if !slices.IsSorted(input.Thresholds) {
			return errors.New("Input: thresholds must be ascending")
		}
		for i := 1; i < len(input.Thresholds); i++ {
			if input.Thresholds[i] == input.Thresholds[i-1] {
				return errors.New("Input: thresholds must not contain duplicates")
			}
		}
	}

	return nil
}

func validateSpeeds(config *Configuration) error {
	speeds := config.Speeds
	levels := config.Input.Levels()

	if len(speeds.Table) != levels+1 {
		return errors.New(fmt.Sprintf("Speeds: table has %d entries, expected %d (one per level including off)", len(speeds.Table), levels+1))
	}
	if speeds.Table[0] != 0 {
		return errors.New("Speeds: table entry for the off level must be 0")
	}
	for i, value := range speeds.Table {
		if value < 0 || value > 1 {
			return errors.New(fmt.Sprintf("Speeds: table entry %d is %f, must be within [0, 1]", i, value))
		}
		if i > 0 && value <= speeds.Table[i-1] {
			return errors.New(fmt.Sprintf("Speeds: table entry %d must be greater than entry %d", i, i-1))
		}
	}

	if speeds.MinDutyFraction < 0 || speeds.MinDutyFraction >= 1 {
		return errors.New(fmt.Sprintf("Speeds: minDutyFraction is %f, must be within [0, 1)", speeds.MinDutyFraction))
	}

	return nil
}

func validatePwm(config *Configuration) error {
	pwm := config.Pwm
	if pwm.Top <= 0 {
		return errors.New(fmt.Sprintf("Pwm: invalid top value %d, must be > 0", pwm.Top))
	}
	if pwm.PeriodNs <= 0 {
		return errors.New(fmt.Sprintf("Pwm: invalid period %d, must be > 0", pwm.PeriodNs))
	}
	if pwm.Chip < 0 || pwm.Channel < 0 {
		return errors.New("Pwm: chip and channel must be >= 0")
	}
	return nil
}

func validateTacho(config *Configuration) error {
	tacho := config.Tacho
	if tacho.PulsesPerRevolution < 1 {
		return errors.New(fmt.Sprintf("Tacho: invalid pulsesPerRevolution %d, must be >= 1", tacho.PulsesPerRevolution))
	}
	if tacho.Window <= 0 {
		return errors.New("Tacho: window must be > 0")
	}
	if tacho.RollingWindowSize < 1 {
		return errors.New(fmt.Sprintf("Tacho: invalid rollingWindowSize %d, must be >= 1", tacho.RollingWindowSize))
	}
	return nil
}

func validatePorts(config *Configuration) error {
	if config.Api.Enabled {
		if config.Api.Port <= 0 || config.Api.Port >= 65535 {
			return errors.New(fmt.Sprintf("Api: invalid port %d", config.Api.Port))
		}
	}
	if config.Statistics.Enabled {
		if config.Statistics.Port <= 0 || config.Statistics.Port >= 65535 {
			return errors.New(fmt.Sprintf("Statistics: invalid port %d", config.Statistics.Port))
		}
	}
	if config.Mqtt.Enabled {
		if len(config.Mqtt.Broker) <= 0 {
			return errors.New("Mqtt: missing broker")
		}
		if len(config.Mqtt.Topic) <= 0 {
			return errors.New("Mqtt: missing topic")
		}
	}
	if config.StatusFile.Enabled && len(config.StatusFile.Path) <= 0 {
		return errors.New("StatusFile: missing path")
	}
	return nil
}
