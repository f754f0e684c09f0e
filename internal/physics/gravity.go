package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// MinSqrDistance is the squared separation below which a pair exerts no force on each other.
// Coincident bodies have no defined direction.
const MinSqrDistance = 1e-12

// Acceleration returns the gravitational acceleration on bodies[i] from every other body:
// sum of normalize(p_j - p_i) * g * m_j / |p_j - p_i|².
func Acceleration(i int, bodies []VirtualBody, g float64) mgl64.Vec3 {
	var acc mgl64.Vec3
	pos := bodies[i].Position
	for j := range bodies {
		if j == i {
			continue
		}
		offset := bodies[j].Position.Sub(pos)
		sqrDst := offset.Dot(offset)
		if sqrDst < MinSqrDistance {
			continue
		}
		// normalize(offset) * g*m / d² without a second sqrt
		dst := offset.Len()
		acc = acc.Add(offset.Mul(g * bodies[j].Mass / (sqrDst * dst)))
	}
	return acc
}

// Accelerations fills dst with the acceleration of every body, all computed from the same
// positions. dst is reused when it has the right length.
func Accelerations(dst []mgl64.Vec3, bodies []VirtualBody, g float64) []mgl64.Vec3 {
	if len(dst) != len(bodies) {
		dst = make([]mgl64.Vec3, len(bodies))
	}
	for i := range bodies {
		dst[i] = Acceleration(i, bodies, g)
	}
	return dst
}

// Step advances bodies by dt with semi-implicit Euler. Accelerations come from a snapshot of
// the pre-step positions, so the result does not depend on slice order.
func Step(bodies []*Body, g, dt float64) error {
	if err := validateG(g); err != nil {
		return err
	}
	if err := validateTimeStep(dt); err != nil {
		return err
	}
	acc := Accelerations(nil, stepSnapshot(bodies), g)
	for i, b := range bodies {
		b.UpdateVelocity(acc[i], dt)
		b.UpdatePosition(dt)
	}
	return nil
}

// stepSnapshot copies the state Step needs without reflection; it runs every tick.
func stepSnapshot(bodies []*Body) []VirtualBody {
	out := make([]VirtualBody, len(bodies))
	for i, b := range bodies {
		out[i] = VirtualBody{Position: b.Position, Velocity: b.Velocity, Mass: b.mass}
	}
	return out
}

// CenterOfMass returns the mass-weighted mean position of bodies and their total mass.
// With zero total mass it returns the origin.
func CenterOfMass(bodies []*Body) (mgl64.Vec3, float64) {
	var sum mgl64.Vec3
	var total float64
	for _, b := range bodies {
		sum = sum.Add(b.Position.Mul(b.mass))
		total += b.mass
	}
	if total == 0 {
		return mgl64.Vec3{}, 0
	}
	return sum.Mul(1 / total), total
}

// Momentum returns the total linear momentum of bodies.
func Momentum(bodies []*Body) mgl64.Vec3 {
	var p mgl64.Vec3
	for _, b := range bodies {
		p = p.Add(b.Velocity.Mul(b.mass))
	}
	return p
}
