package rank

import (
	"fmt"
	"math"
	"runtime"
)

// Config holds the tunable fusion parameters.
type Config struct {
	// TextWeight and ImageWeight combine the two similarity signals when
	// both are present. They must sum to 1. The defaults prioritize the
	// image signal, which in practice separates look-alike items better
	// than text alone.
	TextWeight  float64
	ImageWeight float64

	// PoolSize is the number of workers scoring items concurrently.
	// Default is runtime.NumCPU(), with a minimum of 1.
	PoolSize int
}

// DefaultConfig returns the default fusion configuration.
func DefaultConfig() Config {
	poolSize := runtime.NumCPU()
	if poolSize < 1 {
		poolSize = 1
	}
	return Config{
		TextWeight:  0.35,
		ImageWeight: 0.65,
		PoolSize:    poolSize,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.TextWeight < 0 || c.ImageWeight < 0 {
		return fmt.Errorf("%w: weights must be non-negative", ErrInvalidWeights)
	}
	if math.Abs(c.TextWeight+c.ImageWeight-1.0) > 1e-6 {
		return fmt.Errorf("%w: got %g + %g", ErrInvalidWeights, c.TextWeight, c.ImageWeight)
	}
	return nil
}
