package assertdiff

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Map is a string-keyed map that remembers insertion order. Two Maps holding
// the same pairs in a different order are loosely equal (Diff reports nothing)
// but not strictly equal, which is what AssertSameMap checks.
//
// The zero value is an empty map ready to use.
type Map struct {
	keys   []string
	values map[string]interface{}
}

// NewMap returns an empty Map
func NewMap() *Map {
	return &Map{}
}

// MapOf builds a Map from alternating key, value arguments. It panics if a
// key isn't a string or a value is missing, as it's meant for literals in
// tests
func MapOf(kv ...interface{}) *Map {
	if len(kv)%2 != 0 {
		panic("MapOf: odd number of arguments")
	}
	m := NewMap()
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("MapOf: key %d is %T, not string", i/2, kv[i]))
		}
		m.Set(key, kv[i+1])
	}
	return m
}

// Set assigns value to key. New keys are appended, existing keys keep their
// position
func (m *Map) Set(key string, value interface{}) *Map {
	if m.values == nil {
		m.values = map[string]interface{}{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

// Get returns the value stored at key
func (m *Map) Get(key string) (interface{}, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key, if present
func (m *Map) Delete(key string) {
	if m == nil {
		return
	}
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i:i], m.keys[i+1:]...)
			break
		}
	}
	// empty maps hold no slice or map so they match NewMap()
	if len(m.keys) == 0 {
		m.keys, m.values = nil, nil
	}
}

// Keys lists keys in insertion order. The returned slice is a copy
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Len is the number of pairs in the map
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// SortKeys returns a copy of m with keys in ascending order. Only the top level
// is sorted, nested Maps are shared with m
func (m *Map) SortKeys() *Map {
	if m == nil {
		return nil
	}
	if m.Len() == 0 {
		return NewMap()
	}
	keys := m.Keys()
	sort.Strings(keys)
	sorted := &Map{keys: keys, values: make(map[string]interface{}, len(keys))}
	for _, k := range keys {
		sorted.values[k] = m.values[k]
	}
	return sorted
}

// MarshalJSON writes pairs in insertion order
func (m *Map) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keeping key order. Nested objects become
// *Map values, arrays become []interface{}
func (m *Map) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	decoded, err := decodeObject(dec)
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}

// ParseJSON decodes a JSON document, producing *Map for every object
func ParseJSON(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err == nil {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch x := tok.(type) {
	case json.Delim:
		switch x {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", x)
	default:
		return x, nil
	}
}

func decodeObject(dec *json.Decoder) (*Map, error) {
	m := NewMap()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeArray(dec *json.Decoder) ([]interface{}, error) {
	arr := []interface{}{}
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}
