package hwio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fanbridge/fanbridge/internal/configuration"
	"github.com/fanbridge/fanbridge/internal/util"
)

// SysfsPwm programs a pwm channel through the Linux sysfs pwm interface.
// Duty cycle values in [0, top] are scaled to nanoseconds of the period.
type SysfsPwm struct {
	basePath string
	top      int
	periodNs int
}

func NewSysfsPwm(config configuration.PwmConfig) (*SysfsPwm, error) {
	chipPath := fmt.Sprintf("/sys/class/pwm/pwmchip%d", config.Chip)
	channelPath := filepath.Join(chipPath, fmt.Sprintf("pwm%d", config.Channel))

	_, err := os.Stat(channelPath)
	if errors.Is(err, os.ErrNotExist) {
		// channel not exported yet
		err = util.WriteIntToFile(config.Channel, filepath.Join(chipPath, "export"))
		if err != nil {
			return nil, fmt.Errorf("export pwm channel %d: %w", config.Channel, err)
		}
	}

	p := &SysfsPwm{
		basePath: channelPath,
		top:      config.Top,
		periodNs: config.PeriodNs,
	}

	err = util.WriteIntToFile(config.PeriodNs, filepath.Join(channelPath, "period"))
	if err != nil {
		return nil, fmt.Errorf("set pwm period: %w", err)
	}
	err = p.SetDutyCycle(0)
	if err != nil {
		return nil, err
	}
	err = util.WriteIntToFile(1, filepath.Join(channelPath, "enable"))
	if err != nil {
		return nil, fmt.Errorf("enable pwm: %w", err)
	}

	return p, nil
}

func (p *SysfsPwm) SetDutyCycle(value int) error {
	value = util.Coerce(value, 0, p.top)
	dutyNs := int(int64(value) * int64(p.periodNs) / int64(p.top))
	return util.WriteIntToFile(dutyNs, filepath.Join(p.basePath, "duty_cycle"))
}

// Close stops the output, leaving the fan off rather than at the last duty.
func (p *SysfsPwm) Close() error {
	_ = p.SetDutyCycle(0)
	return util.WriteIntToFile(0, filepath.Join(p.basePath, "enable"))
}
