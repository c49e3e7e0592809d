//go:build linux

package hwio

import (
	"fmt"

	"github.com/fanbridge/fanbridge/internal/configuration"
	"github.com/warthog618/go-gpiocdev"
)

// GpioInput reads discrete speed lines via the Linux GPIO character device.
type GpioInput struct {
	chip  *gpiocdev.Chip
	lines map[int]*gpiocdev.Line
}

// NewGpioInput requests all configured speed lines as inputs with pull-up.
// With activeLow set, a low electrical level reads as asserted.
func NewGpioInput(config configuration.InputConfig) (*GpioInput, error) {
	chip, err := gpiocdev.NewChip(config.Chip)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", config.Chip, err)
	}

	options := []gpiocdev.LineReqOption{gpiocdev.AsInput, gpiocdev.WithPullUp}
	if config.ActiveLow {
		options = append(options, gpiocdev.AsActiveLow)
	}

	lines := map[int]*gpiocdev.Line{}
	for _, pin := range config.Pins {
		line, err := chip.RequestLine(pin, options...)
		if err != nil {
			for _, requested := range lines {
				_ = requested.Close()
			}
			_ = chip.Close()
			return nil, fmt.Errorf("request input line %d: %w", pin, err)
		}
		lines[pin] = line
	}

	return &GpioInput{
		chip:  chip,
		lines: lines,
	}, nil
}

func (g *GpioInput) ReadLine(id int) (bool, error) {
	line, ok := g.lines[id]
	if !ok {
		return false, fmt.Errorf("line %d was not requested", id)
	}
	value, err := line.Value()
	if err != nil {
		return false, fmt.Errorf("read line %d: %w", id, err)
	}
	return value != 0, nil
}

func (g *GpioInput) Close() error {
	for _, line := range g.lines {
		_ = line.Close()
	}
	return g.chip.Close()
}

// GpioEdgeSource delivers tachometer edge events from a gpio line.
type GpioEdgeSource struct {
	chipName string
	pin      int

	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

func NewGpioEdgeSource(config configuration.TachoConfig) *GpioEdgeSource {
	return &GpioEdgeSource{
		chipName: config.Chip,
		pin:      config.Pin,
	}
}

// Start requests the tachometer line with falling-edge event detection.
// The handler runs on the event goroutine of the gpio library, concurrent
// with the control loop, so it must only touch the atomic pulse counter.
func (g *GpioEdgeSource) Start(handler func()) error {
	chip, err := gpiocdev.NewChip(g.chipName)
	if err != nil {
		return fmt.Errorf("open gpio chip %s: %w", g.chipName, err)
	}

	line, err := chip.RequestLine(g.pin,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			handler()
		}),
	)
	if err != nil {
		_ = chip.Close()
		return fmt.Errorf("request tacho line %d: %w", g.pin, err)
	}

	g.chip = chip
	g.line = line
	return nil
}

func (g *GpioEdgeSource) Close() error {
	if g.line != nil {
		_ = g.line.Close()
	}
	if g.chip != nil {
		return g.chip.Close()
	}
	return nil
}
