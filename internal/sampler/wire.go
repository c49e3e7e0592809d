package sampler

import "github.com/fanbridge/fanbridge/internal/hwio"

type WireSampler struct {
	reader hwio.DigitalReader
	// pins holds one line per speed level, lowest tier first
	pins []int
}

// Sample resolves the highest-priority asserted line to a level.
// Line activation is expected to be mutually exclusive; if multiple
// lines are asserted at once the higher tier is authoritative.
// No line asserted means off.
func (s *WireSampler) Sample() (int, error) {
	for i := len(s.pins) - 1; i >= 0; i-- {
		asserted, err := s.reader.ReadLine(s.pins[i])
		if err != nil {
			return 0, err
		}
		if asserted {
			return i + 1, nil
		}
	}
	return 0, nil
}

func (s *WireSampler) Levels() int {
	return len(s.pins)
}
