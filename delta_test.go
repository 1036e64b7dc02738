package assertdiff

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDeltaJSON(t *testing.T) {
	patch := `[["-", "/apples/2", false], ["+", "/foo", {"bar": [1]}]]`
	var dts Deltas
	if err := json.Unmarshal([]byte(patch), &dts); err != nil {
		t.Fatal(err)
	}

	expect := Deltas{
		{Type: DTDelete, Path: "/apples/2", Value: false},
		{Type: DTInsert, Path: "/foo", Value: map[string]interface{}{"bar": []interface{}{float64(1)}}},
	}

	if diff := cmp.Diff(expect, dts); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}

	data, err := json.Marshal(dts)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), `[["-","/apples/2",false],["+","/foo",{"bar":[1]}]]`; got != want {
		t.Errorf("marshal mismatch.\nwant: %s\ngot:  %s", want, got)
	}
}

func TestDeltaJSONErrors(t *testing.T) {
	bad := []string{
		`["-", "/a"]`,
		`[1, "/a", 1]`,
		`["-", 2, 1]`,
		`{"type": "-"}`,
	}
	for _, b := range bad {
		d := &Delta{}
		if err := json.Unmarshal([]byte(b), d); err == nil {
			t.Errorf("expected error unmarshaling %s", b)
		}
	}
}

func TestDiffResultDeltas(t *testing.T) {
	d := &DiffResult{
		Removed: MapOf("a", MapOf("b", 1, "c", NewMap()), "d", []interface{}{"x"}),
		Added:   MapOf("e", nil),
	}

	expect := Deltas{
		{Type: DTDelete, Path: "/a/b", Value: 1},
		{Type: DTDelete, Path: "/a/c", Value: NewMap()},
		{Type: DTDelete, Path: "/d/0", Value: "x"},
		{Type: DTInsert, Path: "/e", Value: nil},
	}

	if diff := cmp.Diff(expect, d.Deltas(), mapOpts); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}

	var empty *DiffResult
	if got := empty.Deltas(); got != nil {
		t.Errorf("expected nil deltas from nil result, got %v", got)
	}
}
