package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ComputedStyle holds resolved values used for drawing.
// LeftPct/TopPct: 0–100 for percentage positioning; -1 means use Left/Top as pixels.
// Padding is the offset (in pixels) from the node's left/top when drawing text.
type ComputedStyle struct {
	Background rl.Color
	Color      rl.Color
	Border     rl.Color
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	LeftPct    int32 // -1 = not set
	TopPct     int32 // -1 = not set
	Padding    int32
}

// DefaultComputedStyle returns a minimal style (transparent background, white text, no border, zero size).
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Background: rl.NewColor(0, 0, 0, 0),
		Color:      rl.White,
		Border:     rl.Black,
		LeftPct:    -1,
		TopPct:     -1,
		Padding:    4,
	}
}

// Theme maps a node class to its style. Classes without an entry use DefaultComputedStyle.
type Theme map[string]ComputedStyle

const (
	inspectorWidth  = 380
	inspectorTop    = 48
	inspectorRowH   = 26
	inspectorMargin = 8
)

// DefaultTheme styles the inspector panel: a dark box on the right edge with one class per row.
func DefaultTheme() Theme {
	t := Theme{}
	panel := DefaultComputedStyle()
	panel.Background = rl.NewColor(20, 24, 32, 220)
	panel.Border = rl.NewColor(90, 110, 140, 255)
	panel.HasBorder = true
	panel.Width = inspectorWidth
	panel.Height = inspectorRows*inspectorRowH + 2*inspectorMargin
	panel.LeftPct = 100
	panel.Top = inspectorTop
	t["inspector"] = panel

	for i := 0; i < inspectorRows; i++ {
		row := DefaultComputedStyle()
		row.Color = rl.NewColor(220, 220, 220, 255)
		row.Width = inspectorWidth
		row.Height = inspectorRowH
		row.LeftPct = 100
		row.Top = inspectorTop + inspectorMargin + int32(i)*inspectorRowH
		row.Padding = inspectorMargin
		if i == 0 {
			row.Color = rl.NewColor(255, 210, 120, 255)
		}
		t[rowClass(i)] = row
	}
	return t
}

func rowClass(i int) string {
	return fmt.Sprintf("inspector-row-%d", i)
}

// Resolve returns the style for class.
func (t Theme) Resolve(class string) ComputedStyle {
	if s, ok := t[class]; ok {
		return s
	}
	return DefaultComputedStyle()
}
