package errors

import (
	"fmt"
	"time"
)

// OperationalError wraps an error with the context a host needs to
// report a failed editor or storage operation: which operation ran,
// which graph it touched, and which node (if any) was involved.
type OperationalError struct {
	Operation  string                 // What operation was being performed
	GraphName  string                 // Which graph
	NodeID     string                 // Which node (if applicable)
	Timestamp  time.Time              // When the error occurred
	Attributes map[string]interface{} // Additional context (optional)
	Cause      error                  // Underlying error
}

// NewOperationalError creates an OperationalError wrapping an error.
//
// Returns nil if cause is nil (no error to wrap).
func NewOperationalError(operation, graphName, nodeID string, cause error) *OperationalError {
	if cause == nil {
		return nil
	}

	return &OperationalError{
		Operation: operation,
		GraphName: graphName,
		NodeID:    nodeID,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// NewOperationalErrorWithAttrs creates an OperationalError with
// additional attributes attached, for example the layout name or the
// number of positions involved.
func NewOperationalErrorWithAttrs(operation, graphName, nodeID string, cause error, attrs map[string]interface{}) *OperationalError {
	if cause == nil {
		return nil
	}

	return &OperationalError{
		Operation:  operation,
		GraphName:  graphName,
		NodeID:     nodeID,
		Timestamp:  time.Now(),
		Attributes: attrs,
		Cause:      cause,
	}
}

// Error implements the error interface.
//
// Format: "[timestamp] operation: graph={name} node={id}: {cause}"
// If the node ID is empty, it is omitted from the message.
func (e *OperationalError) Error() string {
	if e == nil {
		return "<nil OperationalError>"
	}

	timestamp := e.Timestamp.Format(time.RFC3339)

	if e.NodeID != "" {
		return fmt.Sprintf("[%s] %s: graph=%s node=%s: %v",
			timestamp, e.Operation, e.GraphName, e.NodeID, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: graph=%s: %v",
		timestamp, e.Operation, e.GraphName, e.Cause)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *OperationalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
