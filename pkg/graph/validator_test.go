package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDocument() *Graph {
	g := New("pipeline")
	g.Nodes = []*Node{
		{ID: "fetch", Type: "http", X: 0, Y: 0, Width: 120, Height: 60,
			Outputs: []Port{{ID: "out"}}},
		{ID: "store", Type: "db", X: 300, Y: 0, Width: 120, Height: 60,
			Inputs: []Port{{ID: "in"}}},
	}
	g.Edges = []*Edge{
		{ID: "e1", Source: "fetch", SourceHandle: "out", Target: "store", TargetHandle: "in"},
	}
	return g
}

func TestValidateDocument(t *testing.T) {
	require.NoError(t, ValidateDocument(validDocument()))
	assert.Error(t, ValidateDocument(nil))
}

func TestValidateDocumentSchemaViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Graph)
	}{
		{"empty graph name", func(g *Graph) { g.Name = "" }},
		{"empty node id", func(g *Graph) { g.Nodes[0].ID = "" }},
		{"empty node type", func(g *Graph) { g.Nodes[0].Type = "" }},
		{"zero width", func(g *Graph) { g.Nodes[0].Width = 0 }},
		{"negative height", func(g *Graph) { g.Nodes[1].Height = -5 }},
		{"empty edge source", func(g *Graph) { g.Edges[0].Source = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := validDocument()
			tt.mutate(g)
			assert.Error(t, ValidateDocument(g))
		})
	}
}

func TestValidateDocumentReferentialChecks(t *testing.T) {
	t.Run("duplicate node id", func(t *testing.T) {
		g := validDocument()
		dup := g.Nodes[0].Clone()
		dup.X = 500
		g.Nodes = append(g.Nodes, dup)
		err := ValidateDocument(g)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate node ID")
	})

	t.Run("unknown source node", func(t *testing.T) {
		g := validDocument()
		g.Edges[0].Source = "ghost"
		err := ValidateDocument(g)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown source node")
	})

	t.Run("unknown target handle", func(t *testing.T) {
		g := validDocument()
		g.Edges[0].TargetHandle = "nope"
		err := ValidateDocument(g)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown input port")
	})

	t.Run("empty handles resolve to first port", func(t *testing.T) {
		g := validDocument()
		g.Edges[0].SourceHandle = ""
		g.Edges[0].TargetHandle = ""
		assert.NoError(t, ValidateDocument(g), "unnamed handles are legal shorthand")
	})

	t.Run("self loop", func(t *testing.T) {
		g := validDocument()
		g.Edges[0].Target = "fetch"
		g.Edges[0].TargetHandle = ""
		assert.Error(t, ValidateDocument(g))
	})
}

func TestValidateEdgeConditions(t *testing.T) {
	t.Run("valid expression compiles", func(t *testing.T) {
		g := validDocument()
		g.Edges[0].Type = "condition"
		g.Edges[0].Label = `status == 200 && len(items) > 0`
		assert.NoError(t, ValidateDocument(g))
	})

	t.Run("broken expression fails at save time", func(t *testing.T) {
		g := validDocument()
		g.Edges[0].Type = "condition"
		g.Edges[0].Label = `status == )(`
		err := ValidateDocument(g)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid condition expression")
	})

	t.Run("non-condition labels are opaque", func(t *testing.T) {
		g := validDocument()
		g.Edges[0].Label = `)( not an expression`
		assert.NoError(t, ValidateDocument(g))
	})

	t.Run("condition without label is fine", func(t *testing.T) {
		g := validDocument()
		g.Edges[0].Type = "condition"
		assert.NoError(t, ValidateDocument(g))
	})
}
