package sim

import (
	"errors"
	"strings"
	"testing"

	"celestial-sim/internal/commands"
	"celestial-sim/internal/engineconfig"
	"celestial-sim/internal/logger"
	"celestial-sim/internal/physics"
	"celestial-sim/internal/stream"
	"celestial-sim/internal/system"
)

type recordingPublisher struct {
	frames []stream.Frame
}

func (p *recordingPublisher) Publish(f stream.Frame) { p.frames = append(p.frames, f) }

type failureCount int

func (f *failureCount) PredictionFailed() { *f++ }

const pairYAML = `
gravitational_constant: 1
physics_time_step: 0.5
bodies:
  - name: sun
    type: sun
    radius: 1
    surface_gravity: 100
    position: [0, 0, 0]
  - name: planet
    radius: 1
    surface_gravity: 0.01
    position: [25, 0, 0]
    initial_velocity: [0, 0, 2]
`

func newTestController(t *testing.T) (*Controller, *commands.Registry) {
	t.Helper()
	def, err := system.Parse([]byte(pairYAML))
	if err != nil {
		t.Fatal(err)
	}
	w, err := def.Build()
	if err != nil {
		t.Fatal(err)
	}
	orbit := engineconfig.Default().Orbit
	orbit.NumSteps = 10
	c := NewController(w, orbit, logger.New(""))
	reg := commands.NewRegistry()
	RegisterCommands(reg, c)
	return c, reg
}

func run(t *testing.T, reg *commands.Registry, line string) error {
	t.Helper()
	args, ok := commands.Parse(line)
	if !ok {
		t.Fatalf("not a command: %q", line)
	}
	return reg.Execute(args)
}

func TestController_PausedPredictsOnce(t *testing.T) {
	c, _ := newTestController(t)
	pub := &recordingPublisher{}
	c.SetPublisher(pub)

	if err := c.Update(); err != nil {
		t.Fatal(err)
	}
	tr := c.Trajectories()
	if len(tr) != 2 || len(tr[1]) != 10 {
		t.Fatalf("Trajectories() shape = %d", len(tr))
	}
	if err := c.Update(); err != nil {
		t.Fatal(err)
	}
	if ticks, _ := c.World().Ticks(); ticks != 0 {
		t.Errorf("paused controller stepped %d times", ticks)
	}
	if len(pub.frames) != 2 || pub.frames[0].Trajectories == nil || pub.frames[1].Trajectories != nil {
		t.Errorf("frames should carry trajectories only when freshly predicted")
	}
}

func TestController_PlayStepsAndHidesOrbits(t *testing.T) {
	c, reg := newTestController(t)
	if err := c.Update(); err != nil {
		t.Fatal(err)
	}
	if err := run(t, reg, "cmd play"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		if err := c.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if c.Trajectories() != nil {
		t.Error("orbits shown while playing")
	}
	if ticks, elapsed := c.World().Ticks(); ticks != 4 || elapsed != 2 {
		t.Errorf("Ticks() = %d, %v; want 4, 2", ticks, elapsed)
	}

	if err := run(t, reg, "cmd pause"); err != nil {
		t.Fatal(err)
	}
	if err := c.Update(); err != nil {
		t.Fatal(err)
	}
	if len(c.Trajectories()) != 2 {
		t.Error("orbits not predicted after pause")
	}
}

func TestCommands_StepAdvancesWhilePaused(t *testing.T) {
	c, reg := newTestController(t)
	if err := run(t, reg, "cmd step -n 3"); err != nil {
		t.Fatal(err)
	}
	if ticks, _ := c.World().Ticks(); ticks != 3 {
		t.Errorf("ticks = %d, want 3", ticks)
	}
	if err := run(t, reg, "cmd step"); err != nil {
		t.Fatal(err)
	}
	if ticks, _ := c.World().Ticks(); ticks != 4 {
		t.Errorf("-n leaked into next invocation: ticks = %d, want 4", ticks)
	}
	if err := run(t, reg, "cmd step -n 0"); !errors.Is(err, physics.ErrInvalidConfig) {
		t.Errorf("step -n 0 error = %v", err)
	}
	if err := run(t, reg, "cmd step -n 5 -bogus"); err == nil {
		t.Fatal("step with unknown flag accepted")
	}
	if err := run(t, reg, "cmd step"); err != nil {
		t.Fatal(err)
	}
	if ticks, _ := c.World().Ticks(); ticks != 5 {
		t.Errorf("-n from a failed parse leaked: ticks = %d, want 5", ticks)
	}
}

func TestCommands_OrbitsRelativeToBody(t *testing.T) {
	c, reg := newTestController(t)
	if err := run(t, reg, "cmd orbits -relative planet -steps 5 -dt 0.2"); err != nil {
		t.Fatal(err)
	}
	p := c.OrbitPrefs()
	if !p.RelativeToBody || p.CentralBody != "planet" || p.NumSteps != 5 || p.TimeStep != 0.2 {
		t.Fatalf("OrbitPrefs() = %+v", p)
	}
	if err := c.Update(); err != nil {
		t.Fatal(err)
	}
	planet, idx, _ := c.World().Lookup("planet")
	for s, pos := range c.Trajectories()[idx] {
		if pos != planet.Position {
			t.Fatalf("step %d: reference body at %v, want pinned at %v", s, pos, planet.Position)
		}
	}

	if err := run(t, reg, "cmd orbits -relative none"); err != nil {
		t.Fatal(err)
	}
	if p := c.OrbitPrefs(); p.RelativeToBody || p.NumSteps != 5 {
		t.Errorf("relative none should keep other settings: %+v", p)
	}
	if err := run(t, reg, "cmd orbits -steps -3"); !errors.Is(err, physics.ErrInvalidConfig) {
		t.Errorf("negative steps error = %v", err)
	}
	if err := run(t, reg, "cmd orbits -thick maybe"); err == nil {
		t.Error("bad on/off accepted")
	}
}

func TestController_UnknownCentralBodyFails(t *testing.T) {
	c, reg := newTestController(t)
	var failures failureCount
	c.SetFailureCounter(&failures)
	if err := run(t, reg, "cmd orbits -relative pluto"); err != nil {
		t.Fatal(err)
	}
	err := c.Update()
	if !errors.Is(err, physics.ErrInvalidConfig) || !errors.Is(err, physics.ErrUnknownBody) {
		t.Errorf("Update() error = %v", err)
	}
	if c.Trajectories() != nil || failures != 1 {
		t.Errorf("trajectories = %v, failures = %d", c.Trajectories(), failures)
	}
	if !errors.Is(c.LastError(), physics.ErrUnknownBody) {
		t.Errorf("LastError() = %v", c.LastError())
	}
}

func TestCommands_BodyEditRecalculatesMass(t *testing.T) {
	c, reg := newTestController(t)
	if err := run(t, reg, "cmd body -name planet -radius 2"); err != nil {
		t.Fatal(err)
	}
	planet, _, _ := c.World().Lookup("planet")
	if planet.Radius != 2 || planet.SurfaceGravity != 0.01 || planet.Mass() != 0.04 {
		t.Errorf("planet = radius %v gravity %v mass %v", planet.Radius, planet.SurfaceGravity, planet.Mass())
	}
	if err := run(t, reg, "cmd body -name planet -radius -1"); !errors.Is(err, physics.ErrInvalidConfig) {
		t.Errorf("negative radius error = %v", err)
	}
	if err := run(t, reg, "cmd body -name nobody -gravity 3"); !errors.Is(err, physics.ErrUnknownBody) {
		t.Errorf("unknown body error = %v", err)
	}
}

func TestCommands_AddAndRemove(t *testing.T) {
	c, reg := newTestController(t)
	if err := run(t, reg, "cmd add -name moon -type moon -radius 0.5 -gravity 0.4 -pos 27,0,0 -vel 0,0,2.5"); err != nil {
		t.Fatal(err)
	}
	moon, idx, err := c.World().Lookup("moon")
	if err != nil || idx != 2 {
		t.Fatalf("Lookup(moon) = %d, %v", idx, err)
	}
	if moon.Type != physics.Moon || moon.Position[0] != 27 || moon.Velocity[2] != 2.5 || moon.Mass() != 0.1 {
		t.Errorf("moon = %+v mass %v", moon, moon.Mass())
	}
	if err := run(t, reg, "cmd add -name moon"); !errors.Is(err, physics.ErrDuplicateBody) {
		t.Errorf("duplicate add error = %v", err)
	}
	if err := run(t, reg, "cmd add -name rock -pos 1,2"); err == nil || !strings.Contains(err.Error(), "-pos") {
		t.Errorf("bad -pos error = %v", err)
	}

	if err := run(t, reg, "cmd remove -name moon"); err != nil {
		t.Fatal(err)
	}
	if c.World().Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.World().Len())
	}
	if err := run(t, reg, "cmd remove -name moon"); !errors.Is(err, physics.ErrUnknownBody) {
		t.Errorf("second remove error = %v", err)
	}
}
