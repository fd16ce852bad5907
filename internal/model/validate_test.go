package model

import (
	"encoding/json"
	"strings"
	"testing"
)

// fieldErrors returns the set of field names present in err, or nil when err is nil.
func fieldErrors(t *testing.T, err error) map[string]bool {
	t.Helper()
	if err == nil {
		return nil
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	fields := make(map[string]bool, len(ve.Errors))
	for _, fe := range ve.Errors {
		fields[fe.Field] = true
	}
	return fields
}

func floatPtr(f float64) *float64 { return &f }

func strPtr(s string) *string { return &s }

func TestValidateGraphCreate(t *testing.T) {
	ok := &GraphCreate{Name: "G1", Description: "test graph"}
	if err := ValidateGraphCreate(ok); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	for _, tc := range []struct {
		name  string
		in    GraphCreate
		field string
	}{
		{"missing name", GraphCreate{}, "name"},
		{"blank name", GraphCreate{Name: "   "}, "name"},
		{"long name", GraphCreate{Name: strings.Repeat("a", MaxNameLen+1)}, "name"},
		{"long description", GraphCreate{Name: "g", Description: strings.Repeat("d", MaxDescriptionLen+1)}, "description"},
		{"non-object properties", GraphCreate{Name: "g", Properties: json.RawMessage(`[1,2]`)}, "properties"},
		{"invalid json properties", GraphCreate{Name: "g", Properties: json.RawMessage(`{oops`)}, "properties"},
	} {
		fields := fieldErrors(t, ValidateGraphCreate(&tc.in))
		if !fields[tc.field] {
			t.Errorf("%s: expected error on %q, got %v", tc.name, tc.field, fields)
		}
	}
}

func TestValidateGraphUpdate(t *testing.T) {
	if err := ValidateGraphUpdate(&GraphUpdate{}); err != nil {
		t.Fatalf("empty update rejected: %v", err)
	}
	if err := ValidateGraphUpdate(&GraphUpdate{Name: strPtr("renamed")}); err != nil {
		t.Fatalf("valid update rejected: %v", err)
	}
	fields := fieldErrors(t, ValidateGraphUpdate(&GraphUpdate{Name: strPtr("")}))
	if !fields["name"] {
		t.Errorf("empty name should be rejected, got %v", fields)
	}
}

func TestValidateNodeCreate(t *testing.T) {
	ok := &NodeCreate{NodeID: "n1", Label: "A", X: floatPtr(1.5), Y: floatPtr(-2.25)}
	if err := ValidateNodeCreate(ok); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	for _, tc := range []struct {
		name  string
		in    NodeCreate
		field string
	}{
		{"missing node_id", NodeCreate{}, "node_id"},
		{"long node_id", NodeCreate{NodeID: strings.Repeat("n", MaxKeyLen+1)}, "node_id"},
		{"long label", NodeCreate{NodeID: "n1", Label: strings.Repeat("l", MaxLabelLen+1)}, "label"},
		{"x overflow", NodeCreate{NodeID: "n1", X: floatPtr(1e7)}, "x"},
		{"y overflow", NodeCreate{NodeID: "n1", Y: floatPtr(-1234567.0)}, "y"},
		{"bad style", NodeCreate{NodeID: "n1", Style: json.RawMessage(`"red"`)}, "style"},
		{"bad data", NodeCreate{NodeID: "n1", Data: json.RawMessage(`42`)}, "data"},
	} {
		fields := fieldErrors(t, ValidateNodeCreate(&tc.in))
		if !fields[tc.field] {
			t.Errorf("%s: expected error on %q, got %v", tc.name, tc.field, fields)
		}
	}
}

func TestValidateEdgeCreate(t *testing.T) {
	ok := &EdgeCreate{SourceNodeID: "nd-a", TargetNodeID: "nd-b", Weight: floatPtr(1.5)}
	if err := ValidateEdgeCreate(ok); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	fields := fieldErrors(t, ValidateEdgeCreate(&EdgeCreate{}))
	if !fields["source_node_id"] || !fields["target_node_id"] {
		t.Errorf("missing endpoints should be rejected, got %v", fields)
	}

	fields = fieldErrors(t, ValidateEdgeCreate(&EdgeCreate{
		SourceNodeID: "nd-a",
		TargetNodeID: "nd-b",
		EdgeID:       strings.Repeat("e", MaxKeyLen+1),
		Weight:       floatPtr(9999999),
	}))
	if !fields["edge_id"] || !fields["weight"] {
		t.Errorf("expected edge_id and weight errors, got %v", fields)
	}
}

func TestValidateGraphInput(t *testing.T) {
	ok := &GraphInput{
		Name: "G1",
		Nodes: []NodeData{
			{ID: "n1", Label: "A"},
			{ID: "n2", Label: "B"},
		},
		Edges: []EdgeData{
			{Source: "n1", Target: "n2", Weight: floatPtr(1.5)},
		},
	}
	if err := ValidateGraphInput(ok); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	fields := fieldErrors(t, ValidateGraphInput(&GraphInput{
		Nodes: []NodeData{{ID: "n1"}, {ID: "n1"}},
		Edges: []EdgeData{{Source: "n1", Target: "missing"}},
	}))
	if !fields["nodes[1].id"] {
		t.Errorf("duplicate node id should be rejected, got %v", fields)
	}
	if !fields["edges[0].target"] {
		t.Errorf("unknown edge target should be rejected, got %v", fields)
	}
}

func TestNumericFromFloat(t *testing.T) {
	if d, ok := NumericFromFloat(nil); d != nil || !ok {
		t.Errorf("nil input: got %v, %v", d, ok)
	}

	d, ok := NumericFromFloat(floatPtr(1.2345678))
	if !ok {
		t.Fatal("in-range value rejected")
	}
	if d.String() != "1.234568" {
		t.Errorf("expected rounding to 6 decimal places, got %s", d)
	}

	if _, ok := NumericFromFloat(floatPtr(1000000)); ok {
		t.Error("10^6 should overflow NUMERIC(12,6)")
	}
	if _, ok := NumericFromFloat(floatPtr(-1000000)); ok {
		t.Error("-10^6 should overflow NUMERIC(12,6)")
	}
	if _, ok := NumericFromFloat(floatPtr(999999.999999)); !ok {
		t.Error("largest representable value rejected")
	}
}

func TestFloatFromNumeric(t *testing.T) {
	if FloatFromNumeric(nil) != nil {
		t.Error("nil decimal should map to nil float")
	}
	d, _ := NumericFromFloat(floatPtr(1.5))
	f := FloatFromNumeric(d)
	if f == nil || *f != 1.5 {
		t.Errorf("round-trip 1.5: got %v", f)
	}
}
