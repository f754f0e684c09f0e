package physics

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func threeBodySystem(t *testing.T) []*Body {
	t.Helper()
	return []*Body{
		mustBody(t, "sun", 1000, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 0.5}),
		mustBody(t, "planet", 1, mgl64.Vec3{100, 0, 0}, mgl64.Vec3{0, 0, 3.66}),
		mustBody(t, "moon", 0.01, mgl64.Vec3{105, 0, 0}, mgl64.Vec3{0, 0, 4.1}),
	}
}

func TestNewVirtualBody_CopiesState(t *testing.T) {
	b, err := NewBody("earth", 2, 3, mgl64.Vec3{1, 2, 3}, mgl64.Vec3{4, 5, 6}, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	vb, err := NewVirtualBody(b)
	if err != nil {
		t.Fatalf("NewVirtualBody: %v", err)
	}
	want := VirtualBody{Position: mgl64.Vec3{1, 2, 3}, Velocity: mgl64.Vec3{4, 5, 6}, Mass: 24}
	if vb != want {
		t.Errorf("NewVirtualBody() = %+v, want %+v", vb, want)
	}

	vb.Position[0] = 99
	if b.Position[0] != 1 {
		t.Error("virtual body aliases the real body's position")
	}
}

func TestPredict_DoesNotMutateBodies(t *testing.T) {
	bodies := threeBodySystem(t)
	before := make([]Body, len(bodies))
	for i, b := range bodies {
		before[i] = *b
	}

	if _, err := Predict(bodies, 500, 0.1, 1, NoReference); err != nil {
		t.Fatalf("Predict: %v", err)
	}
	for i, b := range bodies {
		if *b != before[i] {
			t.Errorf("%s changed: %+v -> %+v", b.Name, before[i], *b)
		}
	}
}

func TestPredict_MatchesStep(t *testing.T) {
	predicted := threeBodySystem(t)
	stepped := threeBodySystem(t)
	const steps = 50

	trajectories, err := Predict(predicted, steps, 0.1, 1, NoReference)
	if err != nil {
		t.Fatal(err)
	}
	for s := 0; s < steps; s++ {
		if err := Step(stepped, 1, 0.1); err != nil {
			t.Fatal(err)
		}
		for i, b := range stepped {
			if !vec3AlmostEqual(trajectories[i][s], b.Position, 1e-9) {
				t.Fatalf("step %d %s: predicted %v, stepped %v", s, b.Name, trajectories[i][s], b.Position)
			}
		}
	}
}

func TestPredict_ZeroStepsReturnsEmptyTrajectories(t *testing.T) {
	bodies := threeBodySystem(t)
	out, err := Predict(bodies, 0, 0.1, 1, 1)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if len(out) != len(bodies) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(bodies))
	}
	for i, tr := range out {
		if len(tr) != 0 {
			t.Errorf("trajectory %d has %d points, want 0", i, len(tr))
		}
	}
}

func TestPredict_ReferenceBodyIsPinned(t *testing.T) {
	bodies := threeBodySystem(t)
	const ref = 1
	out, err := Predict(bodies, 200, 0.1, 1, ref)
	if err != nil {
		t.Fatal(err)
	}
	if len(out[ref]) != 200 {
		t.Fatalf("len = %d, want 200", len(out[ref]))
	}
	for s, p := range out[ref] {
		if p != bodies[ref].Position {
			t.Fatalf("step %d: reference at %v, want %v", s, p, bodies[ref].Position)
		}
	}
}

func TestPredict_ReferenceFrameIsCoMoving(t *testing.T) {
	bodies := threeBodySystem(t)
	world, err := Predict(bodies, 100, 0.1, 1, NoReference)
	if err != nil {
		t.Fatal(err)
	}
	framed, err := Predict(bodies, 100, 0.1, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	start := bodies[0].Position
	for s := range world[0] {
		offset := world[0][s].Sub(start)
		for i := 1; i < len(bodies); i++ {
			want := world[i][s].Sub(offset)
			if !vec3AlmostEqual(framed[i][s], want, 1e-9) {
				t.Fatalf("step %d body %d: %v, want %v", s, i, framed[i][s], want)
			}
		}
	}
}

func TestPredict_SingleBodyStraightLine(t *testing.T) {
	b := mustBody(t, "lonely", 5, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 2, 0})
	out, err := Predict([]*Body{b}, 4, 0.5, 1, NoReference)
	if err != nil {
		t.Fatal(err)
	}
	for s, p := range out[0] {
		want := mgl64.Vec3{1, float64(s+1) * 1, 0}
		if !vec3AlmostEqual(p, want, 1e-12) {
			t.Errorf("step %d = %v, want %v", s, p, want)
		}
	}
}

func TestPredict_RejectsInvalidArguments(t *testing.T) {
	bodies := threeBodySystem(t)
	tests := []struct {
		name      string
		steps     int
		dt, g     float64
		reference int
	}{
		{"reference too large", 10, 0.1, 1, 3},
		{"reference negative", 10, 0.1, 1, -2},
		{"negative steps", -1, 0.1, 1, NoReference},
		{"zero dt", 10, 0, 1, NoReference},
		{"zero G", 10, 0.1, 0, NoReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Predict(bodies, tt.steps, tt.dt, tt.g, tt.reference)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Predict() error = %v, want ErrInvalidConfig", err)
			}
			if out != nil {
				t.Errorf("Predict() returned %d trajectories on error", len(out))
			}
		})
	}
}

func TestPredict_CoincidentBodiesStayFinite(t *testing.T) {
	bodies := []*Body{
		mustBody(t, "A", 1, mgl64.Vec3{}, mgl64.Vec3{}),
		mustBody(t, "B", 1, mgl64.Vec3{}, mgl64.Vec3{}),
	}
	out, err := Predict(bodies, 10, 1, 1, NoReference)
	if err != nil {
		t.Fatal(err)
	}
	for i, tr := range out {
		for s, p := range tr {
			if !Finite(p) {
				t.Fatalf("body %d step %d: %v", i, s, p)
			}
		}
	}
}

func TestStepSnapshot_MatchesSnapshot(t *testing.T) {
	bodies := threeBodySystem(t)
	want, err := Snapshot(bodies)
	if err != nil {
		t.Fatal(err)
	}
	got := stepSnapshot(bodies)
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("body %d: stepSnapshot = %+v, Snapshot = %+v", i, got[i], want[i])
		}
	}
}
