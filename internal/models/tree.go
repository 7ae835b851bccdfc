package models

import (
	"encoding/json"
	"fmt"
)

// Node is one element of the compositor's layout tree (GET_TREE reply).
// Every field is optional on the wire.
type Node struct {
	ID            int64   `json:"id"`
	Name          *string `json:"name"`
	Type          string  `json:"type"`
	Layout        string  `json:"layout"`
	AppID         *string `json:"app_id,omitempty"`
	Focused       bool    `json:"focused"`
	Rect          *Rect   `json:"rect,omitempty"`
	Nodes         []*Node `json:"nodes,omitempty"`
	FloatingNodes []*Node `json:"floating_nodes,omitempty"`
}

// Rect is a node's geometry in layout coordinates
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ParseTree decodes a GET_TREE payload into its root node
func ParseTree(payload []byte) (*Node, error) {
	var root Node
	if err := json.Unmarshal(payload, &root); err != nil {
		return nil, fmt.Errorf("failed to parse tree: %w", err)
	}
	return &root, nil
}

// FindFocused walks the tree depth-first, pre-order, following only the
// tiling children in array order. The first node with focused=true wins.
func FindFocused(node *Node) *Node {
	if node == nil {
		return nil
	}
	if node.Focused {
		return node
	}
	for _, child := range node.Nodes {
		if found := FindFocused(child); found != nil {
			return found
		}
	}
	return nil
}

// Size returns the node's width and height, 0 for anything missing.
func (n *Node) Size() (width, height uint) {
	if n == nil || n.Rect == nil {
		return 0, 0
	}
	return clampUint(n.Rect.Width), clampUint(n.Rect.Height)
}

// GetName returns the node name or an empty string
func (n *Node) GetName() string {
	if n.Name != nil {
		return *n.Name
	}
	return ""
}

// GetAppID returns the Wayland app_id or an empty string
func (n *Node) GetAppID() string {
	if n.AppID != nil {
		return *n.AppID
	}
	return ""
}

// FormatRect returns "WxH @ (X, Y)" or "-" when the node has no geometry
func (n *Node) FormatRect() string {
	if n.Rect == nil {
		return "-"
	}
	return fmt.Sprintf("%dx%d @ (%d, %d)", n.Rect.Width, n.Rect.Height, n.Rect.X, n.Rect.Y)
}

func clampUint(v int) uint {
	if v < 0 {
		return 0
	}
	return uint(v)
}
