package assertdiff

import (
	"encoding/json"
	"fmt"
)

// Operation defines the operation of a Delta item
type Operation string

const (
	// DTDelete marks a leaf the expected value has and the actual value lacks
	// or holds differently
	DTDelete = Operation("-")
	// DTInsert is the compliment of deleting: a leaf only the actual value has
	DTInsert = Operation("+")
)

// Delta is one flattened leaf of a DiffResult
type Delta struct {
	// the type of change
	Type Operation `json:"type"`
	// Path is a slash-separated list of keys leading to the leaf, "/a/0/b"
	Path string `json:"path"`
	// Value is the leaf as found in the side the delta comes from
	Value interface{} `json:"value"`
}

// Deltas is a list of changes
type Deltas []*Delta

// MarshalJSON implements a custom JSON Marshaller, writing the compact
// [type, path, value] form
func (d *Delta) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{d.Type, d.Path, d.Value})
}

// UnmarshalJSON reads the compact form written by MarshalJSON
func (d *Delta) UnmarshalJSON(data []byte) error {
	var v []interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if len(v) != 3 {
		return fmt.Errorf("delta: expected 3 elements, got %d", len(v))
	}
	typ, ok := v[0].(string)
	if !ok {
		return fmt.Errorf("delta: type must be a string, got %T", v[0])
	}
	path, ok := v[1].(string)
	if !ok {
		return fmt.Errorf("delta: path must be a string, got %T", v[1])
	}
	*d = Delta{Type: Operation(typ), Path: path, Value: v[2]}
	return nil
}

// Deltas flattens a diff into one delta per differing leaf, removals first.
// Whole subtrees are walked down to their leaves, empty mappings are kept as
// leaves
func (d *DiffResult) Deltas() Deltas {
	if d == nil {
		return nil
	}
	var dts Deltas
	if d.Removed != nil {
		walkChildren(d.Removed, func(p string, leaf interface{}) {
			dts = append(dts, &Delta{Type: DTDelete, Path: p, Value: leaf})
		})
	}
	if d.Added != nil {
		walkChildren(d.Added, func(p string, leaf interface{}) {
			dts = append(dts, &Delta{Type: DTInsert, Path: p, Value: leaf})
		})
	}
	return dts
}
