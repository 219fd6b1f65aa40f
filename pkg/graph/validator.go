package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/xeipuuv/gojsonschema"
)

// graphSchema is the JSON schema every graph document must satisfy.
// Embedded so validation works without any on-disk contract file.
const graphSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "FlowCanvas graph document",
  "type": "object",
  "required": ["name", "nodes", "edges"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "nodes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "type", "x", "y", "width", "height"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "type": {"type": "string", "minLength": 1},
          "x": {"type": "number"},
          "y": {"type": "number"},
          "width": {"type": "number", "exclusiveMinimum": 0},
          "height": {"type": "number", "exclusiveMinimum": 0},
          "inputs": {"$ref": "#/definitions/ports"},
          "outputs": {"$ref": "#/definitions/ports"}
        }
      }
    },
    "edges": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "source", "target"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "source": {"type": "string", "minLength": 1},
          "target": {"type": "string", "minLength": 1},
          "source_handle": {"type": "string"},
          "target_handle": {"type": "string"},
          "type": {"type": "string"},
          "animated": {"type": "boolean"},
          "label": {"type": "string"}
        }
      }
    }
  },
  "definitions": {
    "ports": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "label": {"type": "string"},
          "type": {"type": "string"},
          "multiple": {"type": "boolean"}
        }
      }
    }
  }
}`

// ValidateDocument validates a graph against the embedded JSON schema
// plus referential checks the schema cannot express. Port-type
// compatibility between edge endpoints is intentionally not checked;
// that is application policy, not document structure.
func ValidateDocument(g *Graph) error {
	if g == nil {
		return errors.New("graph cannot be nil")
	}

	jsonBytes, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to convert graph to JSON for validation: %w", err)
	}
	var data interface{}
	if err := json.Unmarshal(jsonBytes, &data); err != nil {
		return fmt.Errorf("failed to unmarshal graph JSON: %w", err)
	}

	schemaLoader := gojsonschema.NewStringLoader(graphSchema)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
	}

	seen := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if err := n.Validate(); err != nil {
			return err
		}
		if seen[n.ID] {
			return fmt.Errorf("duplicate node ID: %s", n.ID)
		}
		seen[n.ID] = true
	}

	for _, e := range g.Edges {
		if err := e.Validate(); err != nil {
			return err
		}
		if g.Node(e.Source) == nil {
			return fmt.Errorf("edge %s: unknown source node %s", e.ID, e.Source)
		}
		if g.Node(e.Target) == nil {
			return fmt.Errorf("edge %s: unknown target node %s", e.ID, e.Target)
		}
		if e.SourceHandle != "" {
			if _, _, ok := g.Node(e.Source).PortPosition(e.SourceHandle, PortOut); !ok {
				return fmt.Errorf("edge %s: unknown output port %s on node %s", e.ID, e.SourceHandle, e.Source)
			}
		}
		if e.TargetHandle != "" {
			if _, _, ok := g.Node(e.Target).PortPosition(e.TargetHandle, PortIn); !ok {
				return fmt.Errorf("edge %s: unknown input port %s on node %s", e.ID, e.TargetHandle, e.Target)
			}
		}
		if err := validateEdgeCondition(e); err != nil {
			return err
		}
	}

	return nil
}

// validateEdgeCondition compiles the label of conditional edges so
// authors hear about broken expressions at save time rather than when
// the hosting runtime evaluates them.
func validateEdgeCondition(e *Edge) error {
	if e.Type != "condition" || e.Label == "" {
		return nil
	}
	if _, err := expr.Compile(e.Label, expr.AllowUndefinedVariables()); err != nil {
		return fmt.Errorf("edge %s: invalid condition expression %q: %w", e.ID, e.Label, err)
	}
	return nil
}
