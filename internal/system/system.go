// Package system loads planetary system definitions (assets/systems/*.yaml) and turns them
// into a registered physics.World.
package system

import (
	"errors"
	"fmt"
	"os"

	"celestial-sim/internal/physics"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the system loaded when engine preferences do not name one.
const DefaultPath = "assets/systems/demo.yaml"

// BodyDef is one body in a system file. Mass is never given; it follows from radius and
// surface gravity.
type BodyDef struct {
	Name            string     `yaml:"name"`
	Type            string     `yaml:"type,omitempty"`
	Radius          float64    `yaml:"radius"`
	SurfaceGravity  float64    `yaml:"surface_gravity"`
	Position        [3]float64 `yaml:"position"`
	InitialVelocity [3]float64 `yaml:"initial_velocity,omitempty"`
	Color           string     `yaml:"color,omitempty"`
}

// Definition is a whole system file.
type Definition struct {
	Name                  string    `yaml:"name"`
	GravitationalConstant float64   `yaml:"gravitational_constant"`
	PhysicsTimeStep       float64   `yaml:"physics_time_step"`
	AutoOrbit             bool      `yaml:"auto_orbit,omitempty"`
	Bodies                []BodyDef `yaml:"bodies"`
}

// Load reads and parses the system file at path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read system %s: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("system %s: %w", path, err)
	}
	return def, nil
}

// constants records which physics constants a file sets, so an explicit zero is told apart
// from an omitted key.
type constants struct {
	G        *float64 `yaml:"gravitational_constant"`
	TimeStep *float64 `yaml:"physics_time_step"`
}

// Parse decodes a system definition. Omitted constants fall back to physics.DefaultConfig;
// constants given explicitly are validated as written.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	var set constants
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	defaults := physics.DefaultConfig()
	if set.G == nil {
		def.GravitationalConstant = defaults.G
	}
	if set.TimeStep == nil {
		def.PhysicsTimeStep = defaults.TimeStep
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Config returns the physics constants of the system.
func (d *Definition) Config() physics.Config {
	return physics.Config{G: d.GravitationalConstant, TimeStep: d.PhysicsTimeStep}
}

// Validate checks constants, names and body parameters without building anything.
func (d *Definition) Validate() error {
	if err := d.Config().Validate(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(d.Bodies))
	var errs []error
	for i, b := range d.Bodies {
		if b.Name == "" {
			errs = append(errs, fmt.Errorf("%w: body %d has no name", physics.ErrInvalidConfig, i))
			continue
		}
		if seen[b.Name] {
			errs = append(errs, fmt.Errorf("%w: body name %q repeated", physics.ErrInvalidConfig, b.Name))
		}
		seen[b.Name] = true
		if b.Radius < 0 {
			errs = append(errs, fmt.Errorf("%w: body %q radius %v is negative", physics.ErrInvalidConfig, b.Name, b.Radius))
		}
		if _, err := physics.ParseBodyType(b.Type); err != nil {
			errs = append(errs, fmt.Errorf("body %q: %w", b.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Build creates a world with the system's constants and registers every body in file order.
// With AutoOrbit, bodies that start at rest are given a circular orbit around the first sun
// (or the first body when there is no sun), in the XZ plane.
func (d *Definition) Build() (*physics.World, error) {
	w, err := physics.NewWorld(d.Config())
	if err != nil {
		return nil, err
	}
	for _, def := range d.Bodies {
		b, err := def.body(d.GravitationalConstant)
		if err != nil {
			return nil, err
		}
		if err := w.Register(b); err != nil {
			return nil, err
		}
	}
	if d.AutoOrbit {
		setOrbitalVelocities(w)
	}
	return w, nil
}

func (def BodyDef) body(g float64) (*physics.Body, error) {
	typ, err := physics.ParseBodyType(def.Type)
	if err != nil {
		return nil, err
	}
	b, err := physics.NewBody(def.Name, def.Radius, def.SurfaceGravity,
		mgl64.Vec3(def.Position), mgl64.Vec3(def.InitialVelocity), g)
	if err != nil {
		return nil, err
	}
	b.Type = typ
	return b, nil
}

var up = mgl64.Vec3{0, 1, 0}

func setOrbitalVelocities(w *physics.World) {
	bodies := w.Bodies()
	if len(bodies) == 0 {
		return
	}
	central := bodies[0]
	for _, b := range bodies {
		if b.Type == physics.Sun {
			central = b
			break
		}
	}
	g := w.Config().G
	for _, b := range bodies {
		if b == central || b.Velocity != (mgl64.Vec3{}) {
			continue
		}
		b.Velocity = physics.CircularOrbitVelocity(central, b, g, up)
	}
}
