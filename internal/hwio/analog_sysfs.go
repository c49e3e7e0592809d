package hwio

import (
	"github.com/fanbridge/fanbridge/internal/configuration"
	"github.com/fanbridge/fanbridge/internal/util"
)

// SysfsAnalog reads a raw adc value from an iio sysfs attribute,
// e.g. /sys/bus/iio/devices/iio:device0/in_voltage0_raw.
type SysfsAnalog struct {
	path string
}

func NewSysfsAnalog(config configuration.InputConfig) *SysfsAnalog {
	return &SysfsAnalog{
		path: config.AnalogPath,
	}
}

func (a *SysfsAnalog) ReadAnalog() (int, error) {
	return util.ReadIntFromFile(a.path)
}
