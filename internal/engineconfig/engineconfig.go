package engineconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"celestial-sim/internal/physics"
)

// EngineConfigPath is the path to the engine config file, relative to the process working directory.
const EngineConfigPath = "config/engine.json"

// OrbitPrefs controls the predicted-orbit overlay drawn while the simulation is paused.
type OrbitPrefs struct {
	Enabled            bool    `json:"enabled"`
	NumSteps           int     `json:"num_steps"`
	TimeStep           float64 `json:"time_step"`
	UsePhysicsTimeStep bool    `json:"use_physics_time_step"`
	RelativeToBody     bool    `json:"relative_to_body"`
	CentralBody        string  `json:"central_body,omitempty"`
	Width              float64 `json:"width"`
	UseThickLines      bool    `json:"use_thick_lines"`
}

// LODPrefs are screen-height thresholds (1 = body fills the viewport vertically).
type LODPrefs struct {
	LOD1Threshold float32 `json:"lod1_threshold"`
	LOD2Threshold float32 `json:"lod2_threshold"`
}

// EnginePrefs holds engine-only preferences (debug overlays, grid, orbit display, etc.). Persisted across runs.
// The simulated system itself lives in the YAML file named by SystemPath.
type EnginePrefs struct {
	ShowFPS      bool       `json:"show_fps"`
	ShowMemAlloc bool       `json:"show_memalloc"`
	GridVisible  bool       `json:"grid_visible"`
	SystemPath   string     `json:"system_path,omitempty"`
	Listen       string     `json:"listen,omitempty"`
	Font         string     `json:"font,omitempty"`
	Orbit        OrbitPrefs `json:"orbit"`
	LOD          LODPrefs   `json:"lod"`
}

// Default returns default engine preferences (debug overlays off, grid on, 1000-step orbits).
func Default() EnginePrefs {
	return EnginePrefs{
		ShowFPS:      false,
		ShowMemAlloc: false,
		GridVisible:  true,
		Orbit: OrbitPrefs{
			Enabled:  true,
			NumSteps: 1000,
			TimeStep: 0.1,
			Width:    100,
		},
		LOD: LODPrefs{LOD1Threshold: 0.5, LOD2Threshold: 0.2},
	}
}

// Validate rejects settings that would make prediction or LOD selection meaningless.
func (p EnginePrefs) Validate() error {
	if p.Orbit.NumSteps < 0 {
		return fmt.Errorf("%w: orbit num_steps %d is negative", physics.ErrInvalidConfig, p.Orbit.NumSteps)
	}
	if !(p.Orbit.TimeStep > 0) {
		return fmt.Errorf("%w: orbit time_step must be positive, got %v", physics.ErrInvalidConfig, p.Orbit.TimeStep)
	}
	if p.Orbit.RelativeToBody && p.Orbit.CentralBody == "" {
		return fmt.Errorf("%w: relative_to_body requires central_body", physics.ErrInvalidConfig)
	}
	if p.LOD.LOD2Threshold < 0 || p.LOD.LOD1Threshold < p.LOD.LOD2Threshold {
		return fmt.Errorf("%w: lod thresholds must satisfy 0 <= lod2 <= lod1, got %v, %v",
			physics.ErrInvalidConfig, p.LOD.LOD1Threshold, p.LOD.LOD2Threshold)
	}
	return nil
}

// OrbitTimeStep returns the step used for prediction: the orbit's own or, when
// UsePhysicsTimeStep is set, the simulation's.
func (p EnginePrefs) OrbitTimeStep(physicsTimeStep float64) float64 {
	if p.Orbit.UsePhysicsTimeStep {
		return physicsTimeStep
	}
	return p.Orbit.TimeStep
}

// Load reads engine preferences from path. If the file is missing, unparsable or invalid,
// returns Default() and does not create a file. The error reports why defaults were used.
func Load(path string) (EnginePrefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), err
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Save writes engine preferences to path, creating the directory if needed.
func Save(path string, p EnginePrefs) error {
	if err := p.Validate(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
