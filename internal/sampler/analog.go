package sampler

import "github.com/fanbridge/fanbridge/internal/hwio"

type AnalogSampler struct {
	reader hwio.AnalogReader
	// thresholds are ascending raw values; a reading at or above
	// thresholds[i] selects at least level i+1
	thresholds []int
}

// Sample buckets the raw reading into the discrete level set.
// Out-of-range readings clamp to the nearest valid bucket, a reading
// below the first threshold means off.
func (s *AnalogSampler) Sample() (int, error) {
	raw, err := s.reader.ReadAnalog()
	if err != nil {
		return 0, err
	}

	level := 0
	for _, threshold := range s.thresholds {
		if raw < threshold {
			break
		}
		level++
	}
	return level, nil
}

func (s *AnalogSampler) Levels() int {
	return len(s.thresholds)
}
