package animation

import "time"

// DefaultConfig returns the pulse used for red and done stages.
func DefaultConfig() Config {
	return Config{
		Frame: 40 * time.Millisecond,
		Step:  0.06,
	}
}
