// Package sampler resolves the raw hardware speed selector into a
// discrete speed level. Two input wirings exist: one discrete line
// per speed tier, or a single variable-voltage line bucketed by
// ascending thresholds.
package sampler

import (
	"fmt"

	"github.com/fanbridge/fanbridge/internal/configuration"
	"github.com/fanbridge/fanbridge/internal/hwio"
)

type Sampler interface {
	// Sample reads the input lines and returns the selected speed level.
	// Level 0 means off, the highest level equals Levels().
	Sample() (int, error)

	// Levels returns the number of selectable speed levels (excluding off).
	Levels() int
}

func NewSampler(config configuration.InputConfig, digital hwio.DigitalReader, analog hwio.AnalogReader) (Sampler, error) {
	switch config.Mode {
	case configuration.InputModeWire:
		if digital == nil {
			return nil, fmt.Errorf("wire input mode requires a digital reader")
		}
		return &WireSampler{
			reader: digital,
			pins:   config.Pins,
		}, nil
	case configuration.InputModeAnalog:
		if analog == nil {
			return nil, fmt.Errorf("analog input mode requires an analog reader")
		}
		return &AnalogSampler{
			reader:     analog,
			thresholds: config.Thresholds,
		}, nil
	}

	return nil, fmt.Errorf("no matching sampler for input mode: %s", config.Mode)
}
