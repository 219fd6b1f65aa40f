package graph

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Port is a named connection point on a node's input or output side.
// A port's on-screen position is never stored; it is derived from the
// owning node's geometry (see Node.InputPortPosition).
type Port struct {
	ID       string `json:"id" yaml:"id"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Multiple bool   `json:"multiple,omitempty" yaml:"multiple,omitempty"`
}

// Node is a positioned, sized graph vertex with input/output ports.
// Position (X, Y) is the top-left corner in canvas space. Nodes are
// owned by the host application; the canvas engine reads them as a
// snapshot and requests mutations via callbacks.
type Node struct {
	ID       string          `json:"id" yaml:"id"`
	Type     string          `json:"type" yaml:"type"`
	X        float64         `json:"x" yaml:"x"`
	Y        float64         `json:"y" yaml:"y"`
	Width    float64         `json:"width" yaml:"width"`
	Height   float64         `json:"height" yaml:"height"`
	Data     json.RawMessage `json:"data,omitempty" yaml:"-"`
	Selected bool            `json:"-" yaml:"-"`
	Dragging bool            `json:"-" yaml:"-"`
	Inputs   []Port          `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs  []Port          `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// Validate checks structural validity of the node.
func (n *Node) Validate() error {
	if n.ID == "" {
		return errors.New("node: empty node ID")
	}
	if n.Type == "" {
		return fmt.Errorf("node %s: empty node type", n.ID)
	}
	if n.Width <= 0 || n.Height <= 0 {
		return fmt.Errorf("node %s: non-positive dimensions %gx%g", n.ID, n.Width, n.Height)
	}
	seen := make(map[string]bool)
	for _, p := range n.Inputs {
		if p.ID == "" {
			return fmt.Errorf("node %s: input port with empty ID", n.ID)
		}
		if seen["in:"+p.ID] {
			return fmt.Errorf("node %s: duplicate input port %s", n.ID, p.ID)
		}
		seen["in:"+p.ID] = true
	}
	for _, p := range n.Outputs {
		if p.ID == "" {
			return fmt.Errorf("node %s: output port with empty ID", n.ID)
		}
		if seen["out:"+p.ID] {
			return fmt.Errorf("node %s: duplicate output port %s", n.ID, p.ID)
		}
		seen["out:"+p.ID] = true
	}
	return nil
}

// portY distributes ports evenly along the node's vertical extent:
// height/(count+1) * (index+1) below the node's top edge.
func (n *Node) portY(index, count int) float64 {
	return n.Y + n.Height/float64(count+1)*float64(index+1)
}

// InputPortPosition returns the canvas-space position of the input port
// at index. Inputs sit on the node's left edge.
func (n *Node) InputPortPosition(index int) (x, y float64) {
	return n.X, n.portY(index, len(n.Inputs))
}

// OutputPortPosition returns the canvas-space position of the output
// port at index. Outputs sit on the node's right edge.
func (n *Node) OutputPortPosition(index int) (x, y float64) {
	return n.X + n.Width, n.portY(index, len(n.Outputs))
}

// PortPosition resolves a port by ID and direction and returns its
// derived canvas position. ok is false if the port does not exist.
func (n *Node) PortPosition(portID string, dir PortDirection) (x, y float64, ok bool) {
	ports := n.Inputs
	if dir == PortOut {
		ports = n.Outputs
	}
	for i, p := range ports {
		if p.ID == portID {
			if dir == PortOut {
				x, y = n.OutputPortPosition(i)
			} else {
				x, y = n.InputPortPosition(i)
			}
			return x, y, true
		}
	}
	return 0, 0, false
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	c := *n
	if n.Data != nil {
		c.Data = append(json.RawMessage(nil), n.Data...)
	}
	c.Inputs = append([]Port(nil), n.Inputs...)
	c.Outputs = append([]Port(nil), n.Outputs...)
	return &c
}
