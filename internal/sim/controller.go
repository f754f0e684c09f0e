// Package sim drives a physics.World from the main loop: playing steps the world, pausing
// switches to edit mode where predicted orbits are kept up to date.
package sim

import (
	"fmt"

	"celestial-sim/internal/engineconfig"
	"celestial-sim/internal/logger"
	"celestial-sim/internal/physics"
	"celestial-sim/internal/stream"
	"celestial-sim/internal/system"
)

// Publisher receives a frame after every update. *stream.Hub implements it.
type Publisher interface {
	Publish(stream.Frame)
}

// FailureCounter is told about predictions rejected for bad configuration.
type FailureCounter interface {
	PredictionFailed()
}

// Controller owns the play/pause state and the latest predicted orbits. Like World, it is
// driven from a single goroutine.
type Controller struct {
	world  *physics.World
	orbit  engineconfig.OrbitPrefs
	log    *logger.Logger
	pub    Publisher
	failed FailureCounter

	paused       bool
	dirty        bool
	trajectories []physics.Trajectory
	lastErr      error
}

// NewController returns a paused controller, so orbits are shown until the user presses play.
func NewController(w *physics.World, orbit engineconfig.OrbitPrefs, log *logger.Logger) *Controller {
	return &Controller{world: w, orbit: orbit, log: log, paused: true, dirty: true}
}

// SetPublisher sets where frames go after each update. nil disables publishing.
func (c *Controller) SetPublisher(p Publisher) { c.pub = p }

// SetFailureCounter sets who is told about rejected predictions.
func (c *Controller) SetFailureCounter(f FailureCounter) { c.failed = f }

// World returns the driven world.
func (c *Controller) World() *physics.World { return c.world }

// Paused reports whether the simulation is in edit mode.
func (c *Controller) Paused() bool { return c.paused }

// Play resumes stepping; orbits are hidden while playing.
func (c *Controller) Play() {
	c.paused = false
	c.trajectories = nil
}

// Pause stops stepping and schedules a fresh prediction.
func (c *Controller) Pause() {
	c.paused = true
	c.dirty = true
}

// OrbitPrefs returns the current orbit display settings.
func (c *Controller) OrbitPrefs() engineconfig.OrbitPrefs { return c.orbit }

// SetOrbitPrefs replaces the orbit settings after validating them.
func (c *Controller) SetOrbitPrefs(p engineconfig.OrbitPrefs) error {
	prefs := engineconfig.Default()
	prefs.Orbit = p
	if err := prefs.Validate(); err != nil {
		return err
	}
	c.orbit = p
	c.dirty = true
	return nil
}

// Trajectories returns the orbits from the last successful prediction, in world body order.
// It is nil while playing, when orbits are disabled, or after a failed prediction.
func (c *Controller) Trajectories() []physics.Trajectory { return c.trajectories }

// LastError returns the error from the most recent update, if any.
func (c *Controller) LastError() error { return c.lastErr }

// Invalidate marks the predicted orbits stale (e.g. after a scene edit).
func (c *Controller) Invalidate() { c.dirty = true }

// Update runs once per frame: one physics tick while playing, otherwise a prediction if
// anything changed since the last one.
func (c *Controller) Update() error {
	var predicted []physics.Trajectory
	var err error
	switch {
	case !c.paused:
		err = c.world.Tick()
		c.dirty = true
	case c.dirty:
		c.dirty = false
		err = c.predict()
		predicted = c.trajectories
	}
	if err != nil && (c.lastErr == nil || err.Error() != c.lastErr.Error()) {
		c.log.Log(err.Error())
	}
	c.lastErr = err
	if c.pub != nil {
		c.pub.Publish(stream.NewFrame(c.world, predicted))
	}
	return err
}

// Advance takes n physics ticks regardless of play state.
func (c *Controller) Advance(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: step count must be at least 1, got %d", physics.ErrInvalidConfig, n)
	}
	for i := 0; i < n; i++ {
		if err := c.world.Tick(); err != nil {
			return err
		}
	}
	c.dirty = true
	return nil
}

// ReferenceIndex resolves the configured central body to an index, or physics.NoReference.
func (c *Controller) ReferenceIndex() (int, error) {
	if !c.orbit.RelativeToBody {
		return physics.NoReference, nil
	}
	_, idx, err := c.world.Lookup(c.orbit.CentralBody)
	if err != nil {
		return 0, fmt.Errorf("%w: central body: %w", physics.ErrInvalidConfig, err)
	}
	return idx, nil
}

func (c *Controller) predict() error {
	c.trajectories = nil
	if !c.orbit.Enabled {
		return nil
	}
	ref, err := c.ReferenceIndex()
	if err == nil {
		dt := engineconfig.EnginePrefs{Orbit: c.orbit}.OrbitTimeStep(c.world.Config().TimeStep)
		c.trajectories, err = c.world.Predict(c.orbit.NumSteps, dt, ref)
	}
	if err != nil && c.failed != nil {
		c.failed.PredictionFailed()
	}
	return err
}

// Configure edits a body's radius and surface gravity and recalculates its mass.
func (c *Controller) Configure(name string, radius, surfaceGravity float64) error {
	b, _, err := c.world.Lookup(name)
	if err != nil {
		return err
	}
	if err := b.Configure(radius, surfaceGravity, c.world.Config().G); err != nil {
		return err
	}
	c.dirty = true
	c.log.Logf("%s: radius %g, surface gravity %g, mass %g", name, radius, surfaceGravity, b.Mass())
	return nil
}

// Add registers a new body built from def.
func (c *Controller) Add(def system.BodyDef) (*physics.Body, error) {
	typ, err := physics.ParseBodyType(def.Type)
	if err != nil {
		return nil, err
	}
	b := &physics.Body{
		Name:           def.Name,
		Type:           typ,
		Radius:         def.Radius,
		SurfaceGravity: def.SurfaceGravity,
		Position:       def.Position,
		Velocity:       def.InitialVelocity,
	}
	if err := c.world.Register(b); err != nil {
		return nil, err
	}
	c.dirty = true
	c.log.Logf("registered %s (%s, mass %g)", b.Name, b.Type, b.Mass())
	return b, nil
}

// Remove deregisters the named body.
func (c *Controller) Remove(name string) error {
	b, _, err := c.world.Lookup(name)
	if err != nil {
		return err
	}
	if err := c.world.Deregister(b); err != nil {
		return err
	}
	c.dirty = true
	c.log.Logf("deregistered %s", name)
	return nil
}
