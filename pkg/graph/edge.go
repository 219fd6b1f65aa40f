package graph

import (
	"errors"
	"fmt"
)

// Edge is a directed connection from an output port to an input port.
// SourceHandle/TargetHandle name the ports; when empty the first port
// on the relevant side is assumed.
type Edge struct {
	ID           string `json:"id" yaml:"id"`
	Source       string `json:"source" yaml:"source"`
	SourceHandle string `json:"source_handle,omitempty" yaml:"source_handle,omitempty"`
	Target       string `json:"target" yaml:"target"`
	TargetHandle string `json:"target_handle,omitempty" yaml:"target_handle,omitempty"`
	Type         string `json:"type,omitempty" yaml:"type,omitempty"`
	Animated     bool   `json:"animated,omitempty" yaml:"animated,omitempty"`
	Label        string `json:"label,omitempty" yaml:"label,omitempty"`
	Selected     bool   `json:"-" yaml:"-"`
}

// Validate checks structural validity of the edge.
func (e *Edge) Validate() error {
	if e.ID == "" {
		return errors.New("edge: empty edge ID")
	}
	if e.Source == "" {
		return fmt.Errorf("edge %s: empty source node", e.ID)
	}
	if e.Target == "" {
		return fmt.Errorf("edge %s: empty target node", e.ID)
	}
	if e.Source == e.Target {
		return fmt.Errorf("edge %s: self-loop (node %s to itself)", e.ID, e.Source)
	}
	return nil
}

// Clone returns a copy of the edge.
func (e *Edge) Clone() *Edge {
	c := *e
	return &c
}
