package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jinzhu/copier"
)

// NoReference disables the co-moving reference frame in Predict.
const NoReference = -1

// VirtualBody is a detached copy of a body's physical state used for forward prediction.
// It holds no reference to the Body it was taken from.
type VirtualBody struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Mass     float64
}

// NewVirtualBody copies position, velocity and mass out of b.
func NewVirtualBody(b *Body) (VirtualBody, error) {
	var vb VirtualBody
	// Mass is read through Body.Mass().
	if err := copier.Copy(&vb, b); err != nil {
		return VirtualBody{}, fmt.Errorf("snapshot body %q: %w", b.Name, err)
	}
	return vb, nil
}

// Snapshot copies the state of every body, in order.
func Snapshot(bodies []*Body) ([]VirtualBody, error) {
	out := make([]VirtualBody, len(bodies))
	for i, b := range bodies {
		vb, err := NewVirtualBody(b)
		if err != nil {
			return nil, err
		}
		out[i] = vb
	}
	return out, nil
}

// Trajectory is the predicted position of one body at each step.
type Trajectory []mgl64.Vec3

// Predict simulates virtual copies of bodies for steps iterations of dt and returns one
// trajectory per body, in the order of bodies. The bodies themselves are not modified.
//
// If reference is not NoReference, positions are recorded in the frame co-moving with
// bodies[reference]: its displacement since the start is subtracted from every body, and
// its own trajectory is pinned to its starting position.
func Predict(bodies []*Body, steps int, dt, g float64, reference int) ([]Trajectory, error) {
	if steps < 0 {
		return nil, fmt.Errorf("%w: step count must not be negative, got %d", ErrInvalidConfig, steps)
	}
	if err := validateG(g); err != nil {
		return nil, err
	}
	if err := validateTimeStep(dt); err != nil {
		return nil, err
	}
	if reference != NoReference && (reference < 0 || reference >= len(bodies)) {
		return nil, fmt.Errorf("%w: reference body index %d outside [0, %d)", ErrInvalidConfig, reference, len(bodies))
	}

	out := make([]Trajectory, len(bodies))
	for i := range out {
		out[i] = make(Trajectory, 0, steps)
	}
	if steps == 0 {
		return out, nil
	}

	virtual, err := Snapshot(bodies)
	if err != nil {
		return nil, err
	}
	var refStart mgl64.Vec3
	if reference != NoReference {
		refStart = virtual[reference].Position
	}

	acc := make([]mgl64.Vec3, len(virtual))
	for step := 0; step < steps; step++ {
		acc = Accelerations(acc, virtual, g)
		for i := range virtual {
			virtual[i].Velocity = virtual[i].Velocity.Add(acc[i].Mul(dt))
			virtual[i].Position = virtual[i].Position.Add(virtual[i].Velocity.Mul(dt))
		}

		var offset mgl64.Vec3
		if reference != NoReference {
			offset = virtual[reference].Position.Sub(refStart)
		}
		for i := range virtual {
			p := virtual[i].Position.Sub(offset)
			if i == reference {
				p = refStart
			}
			out[i] = append(out[i], p)
		}
	}
	return out, nil
}

// Finite reports whether every component of v is a finite number.
func Finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
