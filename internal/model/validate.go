package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

func (e *ValidationError) add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

// checkLen appends a length error when the value exceeds max runes.
func (e *ValidationError) checkLen(field, value string, max int) {
	if len([]rune(value)) > max {
		e.add(field, fmt.Sprintf("must be %d characters or fewer", max))
	}
}

// checkObject appends an error when raw is present but not a JSON object.
func (e *ValidationError) checkObject(field string, raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}
	trimmed := strings.TrimSpace(string(raw))
	if !json.Valid(raw) || !strings.HasPrefix(trimmed, "{") {
		e.add(field, "must be a JSON object")
	}
}

// checkNumeric appends an error when the optional value does not fit NUMERIC(12,6).
func (e *ValidationError) checkNumeric(field string, f *float64) {
	if _, ok := NumericFromFloat(f); !ok {
		e.add(field, "exceeds numeric precision (12 digits, 6 decimal places)")
	}
}

func (e *ValidationError) errOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

// ValidateGraphCreate checks a GraphCreate input.
func ValidateGraphCreate(in *GraphCreate) error {
	var ve ValidationError
	if strings.TrimSpace(in.Name) == "" {
		ve.add("name", "is required")
	}
	ve.checkLen("name", in.Name, MaxNameLen)
	ve.checkLen("description", in.Description, MaxDescriptionLen)
	ve.checkObject("properties", in.Properties)
	return ve.errOrNil()
}

// ValidateGraphUpdate checks a GraphUpdate input.
func ValidateGraphUpdate(in *GraphUpdate) error {
	var ve ValidationError
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			ve.add("name", "must not be empty")
		}
		ve.checkLen("name", *in.Name, MaxNameLen)
	}
	if in.Description != nil {
		ve.checkLen("description", *in.Description, MaxDescriptionLen)
	}
	ve.checkObject("properties", in.Properties)
	return ve.errOrNil()
}

// ValidateNodeCreate checks a NodeCreate input.
func ValidateNodeCreate(in *NodeCreate) error {
	var ve ValidationError
	if strings.TrimSpace(in.NodeID) == "" {
		ve.add("node_id", "is required")
	}
	ve.checkLen("node_id", in.NodeID, MaxKeyLen)
	ve.checkLen("label", in.Label, MaxLabelLen)
	ve.checkNumeric("x", in.X)
	ve.checkNumeric("y", in.Y)
	ve.checkObject("style", in.Style)
	ve.checkObject("data", in.Data)
	return ve.errOrNil()
}

// ValidateNodeUpdate checks a NodeUpdate input.
func ValidateNodeUpdate(in *NodeUpdate) error {
	var ve ValidationError
	if in.Label != nil {
		ve.checkLen("label", *in.Label, MaxLabelLen)
	}
	ve.checkNumeric("x", in.X)
	ve.checkNumeric("y", in.Y)
	ve.checkObject("style", in.Style)
	ve.checkObject("data", in.Data)
	return ve.errOrNil()
}

// ValidateEdgeCreate checks an EdgeCreate input.
func ValidateEdgeCreate(in *EdgeCreate) error {
	var ve ValidationError
	if in.SourceNodeID == "" {
		ve.add("source_node_id", "is required")
	}
	if in.TargetNodeID == "" {
		ve.add("target_node_id", "is required")
	}
	ve.checkLen("edge_id", in.EdgeID, MaxKeyLen)
	ve.checkLen("label", in.Label, MaxLabelLen)
	ve.checkNumeric("weight", in.Weight)
	ve.checkObject("style", in.Style)
	ve.checkObject("data", in.Data)
	return ve.errOrNil()
}

// ValidateEdgeUpdate checks an EdgeUpdate input.
func ValidateEdgeUpdate(in *EdgeUpdate) error {
	var ve ValidationError
	if in.Label != nil {
		ve.checkLen("label", *in.Label, MaxLabelLen)
	}
	ve.checkNumeric("weight", in.Weight)
	ve.checkObject("style", in.Style)
	ve.checkObject("data", in.Data)
	return ve.errOrNil()
}

// ValidateGraphInput checks a complete graph document: graph-level fields,
// every node and edge record (with indexed field paths), duplicate node
// keys, and edge endpoints that reference node keys absent from the document.
func ValidateGraphInput(in *GraphInput) error {
	var ve ValidationError
	ve.checkLen("name", in.Name, MaxNameLen)
	ve.checkLen("description", in.Description, MaxDescriptionLen)
	ve.checkObject("properties", in.Properties)

	keys := make(map[string]bool, len(in.Nodes))
	for i, n := range in.Nodes {
		path := fmt.Sprintf("nodes[%d]", i)
		if strings.TrimSpace(n.ID) == "" {
			ve.add(path+".id", "is required")
		} else if keys[n.ID] {
			ve.add(path+".id", fmt.Sprintf("duplicate node id %q", n.ID))
		}
		keys[n.ID] = true
		ve.checkLen(path+".id", n.ID, MaxKeyLen)
		ve.checkLen(path+".label", n.Label, MaxLabelLen)
		ve.checkNumeric(path+".x", n.X)
		ve.checkNumeric(path+".y", n.Y)
		ve.checkObject(path+".style", n.Style)
		ve.checkObject(path+".data", n.Data)
	}

	for i, e := range in.Edges {
		path := fmt.Sprintf("edges[%d]", i)
		if e.Source == "" {
			ve.add(path+".source", "is required")
		} else if !keys[e.Source] {
			ve.add(path+".source", fmt.Sprintf("unknown node id %q", e.Source))
		}
		if e.Target == "" {
			ve.add(path+".target", "is required")
		} else if !keys[e.Target] {
			ve.add(path+".target", fmt.Sprintf("unknown node id %q", e.Target))
		}
		ve.checkLen(path+".id", e.ID, MaxKeyLen)
		ve.checkLen(path+".label", e.Label, MaxLabelLen)
		ve.checkNumeric(path+".weight", e.Weight)
		ve.checkObject(path+".style", e.Style)
		ve.checkObject(path+".data", e.Data)
	}

	return ve.errOrNil()
}
