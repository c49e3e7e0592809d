//go:build !linux

package hwio

import (
	"errors"

	"github.com/fanbridge/fanbridge/internal/configuration"
)

var errUnsupported = errors.New("gpio character device access requires linux")

type GpioInput struct{}

func NewGpioInput(config configuration.InputConfig) (*GpioInput, error) {
	return nil, errUnsupported
}

func (g *GpioInput) ReadLine(id int) (bool, error) { return false, errUnsupported }

func (g *GpioInput) Close() error { return nil }

type GpioEdgeSource struct{}

func NewGpioEdgeSource(config configuration.TachoConfig) *GpioEdgeSource {
	return &GpioEdgeSource{}
}

func (g *GpioEdgeSource) Start(handler func()) error { return errUnsupported }

func (g *GpioEdgeSource) Close() error { return nil }
