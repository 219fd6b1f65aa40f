package graph

import (
	"github.com/google/uuid"
)

// PortDirection identifies which side of a node a port sits on.
type PortDirection string

const (
	// PortIn is an input port on the node's left edge
	PortIn PortDirection = "input"
	// PortOut is an output port on the node's right edge
	PortOut PortDirection = "output"
)

// NewNodeID generates a unique node identifier.
// Format: node-<8 hex chars> for readability in documents and logs.
func NewNodeID() string {
	return "node-" + uuid.New().String()[:8]
}

// NewEdgeID generates a unique edge identifier.
func NewEdgeID() string {
	return "edge-" + uuid.New().String()[:8]
}

// NewPortID generates a unique port identifier.
func NewPortID() string {
	return "port-" + uuid.New().String()[:8]
}

// PortRef identifies a port globally: a port ID alone is only unique
// within one side of one node.
type PortRef struct {
	NodeID    string
	PortID    string
	Direction PortDirection
}
