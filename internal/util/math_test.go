package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceInRange(t *testing.T) {
	// GIVEN
	value := 0.5

	// WHEN
	result := Coerce(value, 0.0, 1.0)

	// THEN
	assert.Equal(t, 0.5, result)
}

func TestCoerceBelowRange(t *testing.T) {
	// GIVEN
	value := -10

	// WHEN
	result := Coerce(value, 0, 320)

	// THEN
	assert.Equal(t, 0, result)
}

func TestCoerceAboveRange(t *testing.T) {
	// GIVEN
	value := 512

	// WHEN
	result := Coerce(value, 0, 320)

	// THEN
	assert.Equal(t, 320, result)
}
