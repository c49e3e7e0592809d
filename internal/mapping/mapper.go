// Package mapping converts discrete speed levels into pwm duty cycle
// values via a fixed normalized-speed lookup table.
package mapping

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fanbridge/fanbridge/internal/configuration"
	"github.com/fanbridge/fanbridge/internal/util"
)

var levelNames = []string{"off", "low", "medium", "high", "max"}

type SpeedMapper struct {
	table           []float64
	minDutyFraction float64
	top             int
}

func NewSpeedMapper(speeds configuration.SpeedsConfig, pwm configuration.PwmConfig) *SpeedMapper {
	return &SpeedMapper{
		table:           speeds.Table,
		minDutyFraction: speeds.MinDutyFraction,
		top:             pwm.Top,
	}
}

// MaxLevel returns the highest valid speed level.
func (m *SpeedMapper) MaxLevel() int {
	return len(m.table) - 1
}

func (m *SpeedMapper) Top() int {
	return m.top
}

// ToNormalized maps a speed level to its normalized speed in [0, 1].
// Levels outside the valid range clamp to the nearest endpoint.
func (m *SpeedMapper) ToNormalized(level int) float64 {
	level = util.Coerce(level, 0, m.MaxLevel())
	return m.table[level]
}

// ToDuty maps a speed level to a timer compare value in [0, top].
// A normalized speed of zero yields exactly zero; any other value is
// floor-shifted into [minDutyFraction*top, top] so the output never
// produces a trickle duty that would stall the motor.
func (m *SpeedMapper) ToDuty(level int) int {
	normalized := m.ToNormalized(level)
	if normalized <= 0 {
		return 0
	}

	top := float64(m.top)
	duty := m.minDutyFraction*top + normalized*(1-m.minDutyFraction)*top
	return util.Coerce(int(math.Round(duty)), 0, m.top)
}

// LevelName returns the command vocabulary name of a level
// (off, low, medium, high, max).
func (m *SpeedMapper) LevelName(level int) string {
	level = util.Coerce(level, 0, m.MaxLevel())
	if m.MaxLevel() == 3 && level == 3 {
		// 4-level variant tops out at "high"
		return levelNames[3]
	}
	if level == m.MaxLevel() {
		return levelNames[len(levelNames)-1]
	}
	return levelNames[level]
}

// ParseLevel resolves a command vocabulary name or a bare integer to a
// speed level. Unknown names are an error, numeric levels clamp.
func (m *SpeedMapper) ParseLevel(input string) (int, error) {
	name := strings.ToLower(strings.TrimSpace(input))

	for level := 0; level <= m.MaxLevel(); level++ {
		if m.LevelName(level) == name {
			return level, nil
		}
	}

	value, err := strconv.Atoi(name)
	if err != nil {
		return 0, fmt.Errorf("unknown speed level: %s", input)
	}
	return util.Coerce(value, 0, m.MaxLevel()), nil
}
