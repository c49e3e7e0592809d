package configuration

type SpeedsConfig struct {
	// Table maps a speed level to a normalized speed in [0, 1].
	// Table[0] must be 0 and entries above it strictly increasing.
	Table []float64 `json:"table"`
	// MinDutyFraction is the lowest duty cycle fraction at which the
	// driven motor reliably starts and sustains rotation
	MinDutyFraction float64 `json:"minDutyFraction"`
}
