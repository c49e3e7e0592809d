// Package hwio abstracts pin-level electrical access behind small
// capability interfaces so the translation engine can be driven by
// real hardware or by scripted fakes in tests.
package hwio

// DigitalReader reads the logical state of discrete input lines.
// A returned value of true means the line is asserted.
type DigitalReader interface {
	ReadLine(id int) (bool, error)

	Close() error
}

// AnalogReader reads the raw value of a variable-voltage input line.
type AnalogReader interface {
	ReadAnalog() (int, error)
}

// PwmOutput drives the duty cycle register of a pwm channel.
// Values are bounded to [0, top], out-of-range values are coerced.
type PwmOutput interface {
	SetDutyCycle(value int) error

	Close() error
}

// EdgeSource invokes the registered handler on each qualifying
// tachometer transition. The handler must do nothing beyond an
// atomic counter increment to bound worst-case latency.
type EdgeSource interface {
	Start(handler func()) error

	Close() error
}
