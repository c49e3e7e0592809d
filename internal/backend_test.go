package internal

import (
	"errors"
	"testing"

	"github.com/fanbridge/fanbridge/internal/hwio"
	"github.com/fanbridge/fanbridge/internal/tacho"
	"github.com/stretchr/testify/assert"
)

func TestAttachTachometerWiresPulseCounter(t *testing.T) {
	// GIVEN
	edge := &hwio.FakeEdgeSource{}
	counter := tacho.NewPulseCounter()

	// WHEN
	err := attachTachometer(edge, counter)
	edge.Pulse(5)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, uint64(5), counter.Count())
}

func TestAttachTachometerPropagatesStartFailure(t *testing.T) {
	// GIVEN
	// a missing edge capability must abort startup, not degrade
	edge := &hwio.FakeEdgeSource{
		StartError: errors.New("no such device"),
	}
	counter := tacho.NewPulseCounter()

	// WHEN
	err := attachTachometer(edge, counter)

	// THEN
	assert.Error(t, err)
}
