package sim

import (
	"fmt"
	"strconv"
	"strings"

	"celestial-sim/internal/commands"
	"celestial-sim/internal/system"
)

// RegisterCommands adds play, pause, step, orbits, body, add and remove to reg.
func RegisterCommands(reg *commands.Registry, c *Controller) {
	reg.Register("play", commands.NewFlagSet("play"), func() error {
		c.Play()
		c.log.Log("playing")
		return nil
	})
	reg.Register("pause", commands.NewFlagSet("pause"), func() error {
		c.Pause()
		c.log.Log("paused")
		return nil
	})

	stepFS := commands.NewFlagSet("step")
	stepN := stepFS.Int("n", 1, "number of physics ticks")
	reg.Register("step", stepFS, func() error {
		return c.Advance(*stepN)
	})

	// Empty string flags leave the current setting unchanged.
	orbitFS := commands.NewFlagSet("orbits")
	orbitSteps := orbitFS.String("steps", "", "prediction steps")
	orbitDT := orbitFS.String("dt", "", "prediction time step")
	orbitPhysics := orbitFS.String("physics", "", "use the physics time step (on|off)")
	orbitRelative := orbitFS.String("relative", "", "central body name, or none")
	orbitWidth := orbitFS.String("width", "", "thick line width")
	orbitThick := orbitFS.String("thick", "", "draw thick lines (on|off)")
	orbitShow := orbitFS.String("show", "", "show orbits (on|off)")
	reg.Register("orbits", orbitFS, func() error {
		p := c.OrbitPrefs()
		var err error
		if *orbitSteps != "" {
			if p.NumSteps, err = strconv.Atoi(*orbitSteps); err != nil {
				return fmt.Errorf("orbits -steps: %w", err)
			}
		}
		if *orbitDT != "" {
			if p.TimeStep, err = strconv.ParseFloat(*orbitDT, 64); err != nil {
				return fmt.Errorf("orbits -dt: %w", err)
			}
		}
		if *orbitWidth != "" {
			if p.Width, err = strconv.ParseFloat(*orbitWidth, 64); err != nil {
				return fmt.Errorf("orbits -width: %w", err)
			}
		}
		if *orbitPhysics != "" {
			if p.UsePhysicsTimeStep, err = commands.ParseOnOff(*orbitPhysics); err != nil {
				return fmt.Errorf("orbits -physics: %w", err)
			}
		}
		if *orbitThick != "" {
			if p.UseThickLines, err = commands.ParseOnOff(*orbitThick); err != nil {
				return fmt.Errorf("orbits -thick: %w", err)
			}
		}
		if *orbitShow != "" {
			if p.Enabled, err = commands.ParseOnOff(*orbitShow); err != nil {
				return fmt.Errorf("orbits -show: %w", err)
			}
		}
		switch {
		case *orbitRelative == "":
		case strings.EqualFold(*orbitRelative, "none"):
			p.RelativeToBody = false
			p.CentralBody = ""
		default:
			p.RelativeToBody = true
			p.CentralBody = *orbitRelative
		}
		if err := c.SetOrbitPrefs(p); err != nil {
			return err
		}
		c.log.Logf("orbits: show=%v steps=%d dt=%g relative=%q", p.Enabled, p.NumSteps, p.TimeStep, p.CentralBody)
		return nil
	})

	bodyFS := commands.NewFlagSet("body")
	bodyName := bodyFS.String("name", "", "body name")
	bodyRadius := bodyFS.String("radius", "", "new radius")
	bodyGravity := bodyFS.String("gravity", "", "new surface gravity")
	reg.Register("body", bodyFS, func() error {
		b, _, err := c.world.Lookup(*bodyName)
		if err != nil {
			return err
		}
		radius, gravity := b.Radius, b.SurfaceGravity
		if *bodyRadius != "" {
			if radius, err = strconv.ParseFloat(*bodyRadius, 64); err != nil {
				return fmt.Errorf("body -radius: %w", err)
			}
		}
		if *bodyGravity != "" {
			if gravity, err = strconv.ParseFloat(*bodyGravity, 64); err != nil {
				return fmt.Errorf("body -gravity: %w", err)
			}
		}
		return c.Configure(*bodyName, radius, gravity)
	})

	addFS := commands.NewFlagSet("add")
	addName := addFS.String("name", "", "body name")
	addType := addFS.String("type", "planet", "planet, moon or sun")
	addRadius := addFS.Float64("radius", 1, "radius")
	addGravity := addFS.Float64("gravity", 1, "surface gravity")
	addPos := addFS.String("pos", "0,0,0", "position x,y,z")
	addVel := addFS.String("vel", "0,0,0", "velocity x,y,z")
	reg.Register("add", addFS, func() error {
		if *addName == "" {
			return fmt.Errorf("add: -name is required")
		}
		pos, err := commands.ParseVec3(*addPos)
		if err != nil {
			return fmt.Errorf("add -pos: %w", err)
		}
		vel, err := commands.ParseVec3(*addVel)
		if err != nil {
			return fmt.Errorf("add -vel: %w", err)
		}
		_, err = c.Add(system.BodyDef{
			Name:            *addName,
			Type:            *addType,
			Radius:          *addRadius,
			SurfaceGravity:  *addGravity,
			Position:        pos,
			InitialVelocity: vel,
		})
		return err
	})

	removeFS := commands.NewFlagSet("remove")
	removeName := removeFS.String("name", "", "body name")
	reg.Register("remove", removeFS, func() error {
		return c.Remove(*removeName)
	})
}
