package hwio

import "errors"

// FakeDigitalReader is a test double returning scripted line states.
type FakeDigitalReader struct {
	// States holds the asserted state per line id.
	States map[int]bool

	// ReadError, if set, will be returned by ReadLine.
	ReadError error

	Closed bool
}

func NewFakeDigitalReader() *FakeDigitalReader {
	return &FakeDigitalReader{States: map[int]bool{}}
}

func (f *FakeDigitalReader) ReadLine(id int) (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}
	return f.States[id], nil
}

func (f *FakeDigitalReader) Close() error {
	f.Closed = true
	return nil
}

// FakeAnalogReader is a test double returning a scripted raw value.
type FakeAnalogReader struct {
	Value     int
	ReadError error
}

func (f *FakeAnalogReader) ReadAnalog() (int, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	return f.Value, nil
}

// FakePwm records every duty cycle write.
type FakePwm struct {
	Writes   []int
	SetError error
	Closed   bool
}

func (f *FakePwm) SetDutyCycle(value int) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Writes = append(f.Writes, value)
	return nil
}

func (f *FakePwm) Current() int {
	if len(f.Writes) == 0 {
		return 0
	}
	return f.Writes[len(f.Writes)-1]
}

func (f *FakePwm) Close() error {
	f.Closed = true
	return nil
}

// FakeEdgeSource lets tests fire tachometer edges on demand.
type FakeEdgeSource struct {
	handler func()

	// StartError, if set, will be returned by Start.
	StartError error

	Closed bool
}

func (f *FakeEdgeSource) Start(handler func()) error {
	if f.StartError != nil {
		return f.StartError
	}
	if handler == nil {
		return errors.New("no edge handler registered")
	}
	f.handler = handler
	return nil
}

// Pulse fires n edge events through the registered handler.
func (f *FakeEdgeSource) Pulse(n int) {
	for i := 0; i < n; i++ {
		f.handler()
	}
}

func (f *FakeEdgeSource) Close() error {
	f.Closed = true
	return nil
}
