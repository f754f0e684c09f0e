package physics

import (
	"fmt"
	"time"
)

// Observer receives timing for each step and prediction. Implementations must be cheap; they
// run on the simulation thread.
type Observer interface {
	ObserveStep(bodies int, d time.Duration)
	ObservePrediction(bodies, steps int, d time.Duration)
}

// World is the set of registered bodies plus the constants they are simulated with.
// It is not safe for concurrent use: one goroutine (the main loop) drives it.
type World struct {
	cfg      Config
	bodies   []*Body
	ticks    uint64
	elapsed  float64
	observer Observer
}

// NewWorld returns an empty world. cfg is validated here and cannot change afterwards.
func NewWorld(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &World{cfg: cfg}, nil
}

// Config returns the constants the world was created with.
func (w *World) Config() Config {
	return w.cfg
}

// SetObserver sets the observer notified after each Step and Predict. nil disables it.
func (w *World) SetObserver(o Observer) {
	w.observer = o
}

// Register adds b to the simulation and derives its mass. Names must be non-empty and unique.
func (w *World) Register(b *Body) error {
	if b == nil {
		return fmt.Errorf("%w: nil body", ErrInvalidConfig)
	}
	if b.Name == "" {
		return fmt.Errorf("%w: body has no name", ErrInvalidConfig)
	}
	for _, other := range w.bodies {
		if other == b {
			return fmt.Errorf("%w: %q", ErrDuplicateBody, b.Name)
		}
		if other.Name == b.Name {
			return fmt.Errorf("%w: name %q in use", ErrDuplicateBody, b.Name)
		}
	}
	if err := b.RecalculateMass(w.cfg.G); err != nil {
		return err
	}
	w.bodies = append(w.bodies, b)
	return nil
}

// Deregister removes b. Order of the remaining bodies is preserved.
func (w *World) Deregister(b *Body) error {
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return nil
		}
	}
	return ErrUnknownBody
}

// Bodies returns the registered bodies in registration order. The slice is a copy; the bodies
// are not.
func (w *World) Bodies() []*Body {
	out := make([]*Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// Len returns the number of registered bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Lookup returns the body named name and its index, or ErrUnknownBody.
func (w *World) Lookup(name string) (*Body, int, error) {
	for i, b := range w.bodies {
		if b.Name == name {
			return b, i, nil
		}
	}
	return nil, -1, fmt.Errorf("%w: %q", ErrUnknownBody, name)
}

// RecalculateMass re-derives b's mass with the world's G after a configuration edit.
func (w *World) RecalculateMass(b *Body) error {
	return b.RecalculateMass(w.cfg.G)
}

// Step advances every registered body by dt.
func (w *World) Step(dt float64) error {
	start := time.Now()
	if err := Step(w.bodies, w.cfg.G, dt); err != nil {
		return err
	}
	w.ticks++
	w.elapsed += dt
	if w.observer != nil {
		w.observer.ObserveStep(len(w.bodies), time.Since(start))
	}
	return nil
}

// Tick advances the world by its fixed physics time step.
func (w *World) Tick() error {
	return w.Step(w.cfg.TimeStep)
}

// Ticks returns how many steps have been taken and the simulated time they covered.
func (w *World) Ticks() (uint64, float64) {
	return w.ticks, w.elapsed
}

// Predict forecasts the registered bodies without touching them. See the package-level
// Predict for the reference frame semantics.
func (w *World) Predict(steps int, dt float64, reference int) ([]Trajectory, error) {
	start := time.Now()
	out, err := Predict(w.bodies, steps, dt, w.cfg.G, reference)
	if err != nil {
		return nil, err
	}
	if w.observer != nil {
		w.observer.ObservePrediction(len(w.bodies), steps, time.Since(start))
	}
	return out, nil
}

// State is a value copy of one body's state, safe to hand to other goroutines.
type State struct {
	Name     string     `json:"name"`
	Type     string     `json:"type"`
	Radius   float64    `json:"radius"`
	Mass     float64    `json:"mass"`
	Position [3]float64 `json:"position"`
	Velocity [3]float64 `json:"velocity"`
}

// States returns a copy of every body's state in registration order.
func (w *World) States() []State {
	out := make([]State, len(w.bodies))
	for i, b := range w.bodies {
		out[i] = State{
			Name:     b.Name,
			Type:     b.Type.String(),
			Radius:   b.Radius,
			Mass:     b.mass,
			Position: b.Position,
			Velocity: b.Velocity,
		}
	}
	return out
}
