package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a single UI element: panel or label. Class selects its style from the theme;
// Bounds are filled from that style when drawn.
type Node struct {
	Type   string // "panel" or "label"
	Class  string
	Bounds rl.Rectangle
	Text   string // for label-type nodes
}

// NewNode creates a node with type, class and text.
func NewNode(typ, class, text string) *Node {
	return &Node{Type: typ, Class: class, Text: text}
}
