package physics

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidConfig is wrapped by every configuration error (bad G, radius, time step,
	// step count or reference index). Such values are rejected, never clamped.
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrDuplicateBody = errors.New("body already registered")
	ErrUnknownBody   = errors.New("body not registered")
)

// Config holds the process-wide constants of a simulation. They are fixed when the world is
// created.
type Config struct {
	G        float64 // gravitational constant
	TimeStep float64 // fixed physics time step used by World.Tick
}

// DefaultConfig returns the small-scale constants the demo systems are tuned for.
func DefaultConfig() Config {
	return Config{G: 0.0001, TimeStep: 0.01}
}

// Validate reports whether c can drive a simulation.
func (c Config) Validate() error {
	if err := validateG(c.G); err != nil {
		return err
	}
	return validateTimeStep(c.TimeStep)
}

func validateG(g float64) error {
	if !(g > 0) || math.IsInf(g, 0) {
		return fmt.Errorf("%w: gravitational constant must be positive and finite, got %v", ErrInvalidConfig, g)
	}
	return nil
}

func validateTimeStep(dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: time step must be positive and finite, got %v", ErrInvalidConfig, dt)
	}
	return nil
}
