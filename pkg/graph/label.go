package graph

import (
	"github.com/tidwall/gjson"
)

// DisplayLabel extracts a human-readable label from the node's data
// payload. Looks for "label", then "name"; falls back to the node ID
// when the payload carries neither or is not valid JSON.
func (n *Node) DisplayLabel() string {
	if len(n.Data) > 0 && gjson.ValidBytes(n.Data) {
		if v := gjson.GetBytes(n.Data, "label"); v.Exists() && v.String() != "" {
			return v.String()
		}
		if v := gjson.GetBytes(n.Data, "name"); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return n.ID
}

// DataField reads an arbitrary dotted path from the node's data payload.
// Returns "" when the payload is missing, invalid, or lacks the path.
func (n *Node) DataField(path string) string {
	if len(n.Data) == 0 || !gjson.ValidBytes(n.Data) {
		return ""
	}
	return gjson.GetBytes(n.Data, path).String()
}
