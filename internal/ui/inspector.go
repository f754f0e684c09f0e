package ui

import (
	"fmt"

	"celestial-sim/internal/physics"
)

const inspectorRows = 8

// Inspector is a right-side panel showing the selected body's parameters and state.
// It owns its nodes and updates their text when AppendNodes is called with a selection.
type Inspector struct {
	panel *Node
	rows  [inspectorRows]*Node
}

// NewInspector creates an Inspector styled by the theme's .inspector and .inspector-row-N classes.
func NewInspector() *Inspector {
	in := &Inspector{panel: NewNode("panel", "inspector", "")}
	for i := range in.rows {
		in.rows[i] = NewNode("label", rowClass(i), "")
	}
	return in
}

// Lines formats the inspector rows for b.
func Lines(b *physics.Body) [inspectorRows]string {
	return [inspectorRows]string{
		b.Name,
		"Type: " + b.Type.String(),
		fmt.Sprintf("Radius: %.4g", b.Radius),
		fmt.Sprintf("Surface gravity: %.4g", b.SurfaceGravity),
		fmt.Sprintf("Mass: %.4g", b.Mass()),
		fmt.Sprintf("Position: %.2f, %.2f, %.2f", b.Position[0], b.Position[1], b.Position[2]),
		fmt.Sprintf("Velocity: %.3f, %.3f, %.3f", b.Velocity[0], b.Velocity[1], b.Velocity[2]),
		fmt.Sprintf("Speed: %.3f", b.Velocity.Len()),
	}
}

// AppendNodes appends inspector nodes to dst when sel is non-nil, after updating labels.
// Call every frame so visibility and content stay in sync.
func (in *Inspector) AppendNodes(dst []*Node, sel *physics.Body) []*Node {
	if sel == nil {
		return dst
	}
	dst = append(dst, in.panel)
	for i, text := range Lines(sel) {
		in.rows[i].Text = text
		dst = append(dst, in.rows[i])
	}
	return dst
}
