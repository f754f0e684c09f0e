package scene

import (
	"celestial-sim/internal/lod"
	"celestial-sim/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
	// thickLineScale converts the orbit width setting (nominal pixels) to world units.
	thickLineScale = 0.0005
)

// defaultBodyColor is used for bodies without a configured color.
var defaultBodyColor = rl.NewColor(200, 200, 255, 255)

// Scene holds a 3D camera and draws the simulated bodies and their predicted orbits.
// Update runs camera logic (free camera); Draw renders between BeginMode3D and EndMode3D.
// Physics state is only read here; WorldScale maps simulation units to scene units.
type Scene struct {
	Camera      rl.Camera3D
	cursorDone  bool
	GridVisible bool
	WorldScale  float32
	LOD         lod.Thresholds

	colors   map[string]rl.Color
	meshes   map[int]rl.Mesh // sphere mesh per LOD index, created on first Draw
	material rl.Material
	ready    bool
}

// New returns a scene with a perspective camera looking at the origin.
// Camera: position (30,30,30), target (0,0,0), up (0,1,0), fovy 45°. Grid is visible by default.
func New() *Scene {
	s := &Scene{
		GridVisible: true,
		WorldScale:  0.1,
		LOD:         lod.DefaultThresholds(),
		colors:      make(map[string]rl.Color),
		meshes:      make(map[int]rl.Mesh),
	}
	s.Camera.Position = rl.NewVector3(30, 30, 30)
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	return s
}

// SetGridVisible sets whether the editor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// SetColor sets the draw color of the named body.
func (s *Scene) SetColor(name string, c rl.Color) {
	s.colors[name] = c
}

// HasColor reports whether name has a color set.
func (s *Scene) HasColor(name string) bool {
	_, ok := s.colors[name]
	return ok
}

// Update runs once per frame. Uses raylib UpdateCamera with CameraFree so the user can
// move the camera with mouse (zoom, pan) and keyboard. Cursor is disabled so the mouse
// is captured for camera control.
func (s *Scene) Update() {
	if !s.cursorDone {
		rl.DisableCursor()
		s.cursorDone = true
	}
	rl.UpdateCamera(&s.Camera, rl.CameraFree)
}

// ensureMeshes creates one sphere mesh per LOD level. Must run after the window/GL context exists.
func (s *Scene) ensureMeshes() {
	if s.ready {
		return
	}
	for i := 0; i < 3; i++ {
		rings, slices := lod.Rings(i)
		s.meshes[i] = rl.GenMeshSphere(1, rings, slices)
	}
	s.material = rl.LoadMaterialDefault()
	s.ready = true
}

// Draw renders the 3D scene: grid, then every body as a sphere, then the orbit polylines.
// trajectories may be nil (no orbits) and must be in the same order as bodies.
func (s *Scene) Draw(bodies []*physics.Body, trajectories []physics.Trajectory, orbit OrbitStyle) {
	s.ensureMeshes()
	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawEditorGrid()
	}
	for _, b := range bodies {
		s.drawBody(b)
	}
	for i, tr := range trajectories {
		if i >= len(bodies) {
			break
		}
		s.drawPath(tr, s.color(bodies[i].Name), orbit)
	}
	rl.EndMode3D()
}

// OrbitStyle selects thin debug lines or thick tubes of the given width.
type OrbitStyle struct {
	Thick bool
	Width float64
}

func (s *Scene) color(name string) rl.Color {
	if c, ok := s.colors[name]; ok {
		return c
	}
	return defaultBodyColor
}

func (s *Scene) toScene(v [3]float64) rl.Vector3 {
	return rl.NewVector3(float32(v[0])*s.WorldScale, float32(v[1])*s.WorldScale, float32(v[2])*s.WorldScale)
}

func (s *Scene) drawBody(b *physics.Body) {
	center := s.toScene(b.Position)
	radius := float32(b.Radius) * s.WorldScale
	cam := s.Camera.Position
	h := lod.ScreenHeight([3]float32{cam.X, cam.Y, cam.Z}, [3]float32{center.X, center.Y, center.Z}, radius, s.Camera.Fovy)
	mesh := s.meshes[s.LOD.Index(h)]

	if albedo := s.material.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = s.color(b.Name)
	}
	transform := rl.MatrixMultiply(rl.MatrixScale(radius, radius, radius), rl.MatrixTranslate(center.X, center.Y, center.Z))
	rl.DrawMesh(mesh, s.material, transform)
}

func (s *Scene) drawPath(tr physics.Trajectory, c rl.Color, style OrbitStyle) {
	if len(tr) < 2 {
		return
	}
	width := float32(style.Width * thickLineScale)
	prev := s.toScene(tr[0])
	for _, p := range tr[1:] {
		next := s.toScene(p)
		if style.Thick {
			rl.DrawCylinderEx(prev, next, width, width, 4, c)
		} else {
			rl.DrawLine3D(prev, next, c)
		}
		prev = next
	}
}

// drawEditorGrid draws a grid on the XZ plane (the orbital plane of auto-orbit systems) with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Y, start.Z = float32(-gridExtent), 0, 0
	end.X, end.Y, end.Z = float32(gridExtent), 0, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, float32(-gridExtent), 0
	end.X, end.Y, end.Z = 0, float32(gridExtent), 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, 0, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, 0, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}
