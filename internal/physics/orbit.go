package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CircularOrbitVelocity returns the velocity that puts body on a circular orbit around
// central: speed sqrt(g*M/r), perpendicular to both the separation and up, plus the central
// body's own velocity. It returns central's velocity when the two coincide or the separation
// is parallel to up.
func CircularOrbitVelocity(central, body *Body, g float64, up mgl64.Vec3) mgl64.Vec3 {
	offset := body.Position.Sub(central.Position)
	r := offset.Len()
	if r*r < MinSqrDistance || central.mass <= 0 {
		return central.Velocity
	}
	dir := up.Cross(offset)
	if dir.Dot(dir) < MinSqrDistance {
		return central.Velocity
	}
	speed := math.Sqrt(g * central.mass / r)
	return central.Velocity.Add(dir.Normalize().Mul(speed))
}
