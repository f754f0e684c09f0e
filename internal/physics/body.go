package physics

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyType classifies a celestial body. It only affects presentation and auto-orbit setup.
type BodyType int

const (
	Planet BodyType = iota
	Moon
	Sun
)

func (t BodyType) String() string {
	switch t {
	case Planet:
		return "planet"
	case Moon:
		return "moon"
	case Sun:
		return "sun"
	}
	return fmt.Sprintf("BodyType(%d)", int(t))
}

// ParseBodyType maps "planet", "moon" or "sun" (any case) to a BodyType. Empty means Planet.
func ParseBodyType(s string) (BodyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "planet":
		return Planet, nil
	case "moon":
		return Moon, nil
	case "sun", "star":
		return Sun, nil
	}
	return Planet, fmt.Errorf("%w: unknown body type %q", ErrInvalidConfig, s)
}

// Body is a simulated celestial body. Position and velocity are owned by the simulation;
// renderers read them and never write back.
// Mass is derived from Radius and SurfaceGravity and only changes through RecalculateMass.
type Body struct {
	Name           string
	Type           BodyType
	Radius         float64
	SurfaceGravity float64
	Position       mgl64.Vec3
	Velocity       mgl64.Vec3

	mass float64
}

// NewBody returns a body with its mass already derived for gravitational constant g.
func NewBody(name string, radius, surfaceGravity float64, position, velocity mgl64.Vec3, g float64) (*Body, error) {
	b := &Body{
		Name:           name,
		Radius:         radius,
		SurfaceGravity: surfaceGravity,
		Position:       position,
		Velocity:       velocity,
	}
	if err := b.RecalculateMass(g); err != nil {
		return nil, err
	}
	return b, nil
}

// Mass returns surfaceGravity * radius² / G as of the last RecalculateMass.
func (b *Body) Mass() float64 {
	return b.mass
}

// RecalculateMass re-derives mass from Radius and SurfaceGravity. Call it after any edit to
// either field and before the next Step or Predict.
func (b *Body) RecalculateMass(g float64) error {
	if err := validateG(g); err != nil {
		return err
	}
	if b.Radius < 0 || math.IsNaN(b.Radius) || math.IsInf(b.Radius, 0) {
		return fmt.Errorf("%w: body %q radius must be a non-negative number, got %v", ErrInvalidConfig, b.Name, b.Radius)
	}
	if math.IsNaN(b.SurfaceGravity) || math.IsInf(b.SurfaceGravity, 0) {
		return fmt.Errorf("%w: body %q surface gravity must be finite, got %v", ErrInvalidConfig, b.Name, b.SurfaceGravity)
	}
	b.mass = b.SurfaceGravity * b.Radius * b.Radius / g
	return nil
}

// Configure applies a radius / surface gravity edit and recalculates mass. On error the body
// is left unchanged.
func (b *Body) Configure(radius, surfaceGravity, g float64) error {
	prevR, prevS := b.Radius, b.SurfaceGravity
	b.Radius, b.SurfaceGravity = radius, surfaceGravity
	if err := b.RecalculateMass(g); err != nil {
		b.Radius, b.SurfaceGravity = prevR, prevS
		return err
	}
	return nil
}

// UpdateVelocity applies an externally computed acceleration for dt seconds.
func (b *Body) UpdateVelocity(acceleration mgl64.Vec3, dt float64) {
	b.Velocity = b.Velocity.Add(acceleration.Mul(dt))
}

// UpdatePosition moves the body along its current velocity for dt seconds.
func (b *Body) UpdatePosition(dt float64) {
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
}
