// Package lod picks a level of detail for a body from how much of the screen it covers.
package lod

import (
	"github.com/chewxy/math32"
)

// Thresholds are screen heights (fraction of the viewport height, 1 = fills it). A body taller
// than LOD1 uses LOD 0, taller than LOD2 uses LOD 1, anything smaller LOD 2.
type Thresholds struct {
	LOD1 float32
	LOD2 float32
}

// DefaultThresholds returns 0.5 / 0.2.
func DefaultThresholds() Thresholds {
	return Thresholds{LOD1: 0.5, LOD2: 0.2}
}

// Index returns 0, 1 or 2 for the given screen height.
func (t Thresholds) Index(screenHeight float32) int {
	if screenHeight > t.LOD1 {
		return 0
	}
	if screenHeight > t.LOD2 {
		return 1
	}
	return 2
}

// ScreenHeight returns the fraction of a perspective viewport's height covered by a sphere of
// the given radius, seen from camera with vertical field of view fovyDeg. A camera inside the
// sphere sees it fill the screen.
func ScreenHeight(camera, center [3]float32, radius, fovyDeg float32) float32 {
	dx := center[0] - camera[0]
	dy := center[1] - camera[1]
	dz := center[2] - camera[2]
	dist := math32.Sqrt(dx*dx + dy*dy + dz*dz)
	if dist <= radius {
		return 1
	}
	halfFov := fovyDeg * math32.Pi / 360
	if halfFov <= 0 {
		return 0
	}
	// Project the sphere's top and bottom as seen when looking straight at its center.
	tanHalf := math32.Tan(halfFov)
	h := (radius / dist) / tanHalf
	return math32.Min(h, 1)
}

// Rings maps an LOD index to a sphere tessellation (rings, slices).
func Rings(index int) (rings, slices int) {
	switch index {
	case 0:
		return 32, 32
	case 1:
		return 16, 16
	}
	return 8, 8
}
