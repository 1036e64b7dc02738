package assertdiff

import (
	"reflect"
	"sort"
	"strconv"
)

// mapping is the read-only view Diff takes of every container it can walk:
// *Map, Go maps keyed by strings, and slices / arrays keyed by index
type mapping interface {
	Keys() []string
	Get(key string) (interface{}, bool)
	Len() int
}

// asMapping reports whether v is a container Diff recurses into. []byte is a
// leaf, it's compared like a string
func asMapping(v interface{}) (mapping, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case *Map:
		return x, true
	case []byte:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		return goMap{rv}, true
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
		return sequence{rv}, true
	}
	return nil, false
}

func isMapping(v interface{}) bool {
	_, ok := asMapping(v)
	return ok
}

// goMap adapts a Go map. Go maps have no order, keys are visited sorted so
// every rendering is stable
type goMap struct {
	v reflect.Value
}

func (m goMap) Len() int { return m.v.Len() }
func (m goMap) Keys() []string {
	keys := make([]string, 0, m.v.Len())
	for _, k := range m.v.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)
	return keys
}
func (m goMap) Get(key string) (interface{}, bool) {
	if m.v.IsNil() {
		return nil, false
	}
	val := m.v.MapIndex(reflect.ValueOf(key).Convert(m.v.Type().Key()))
	if !val.IsValid() {
		return nil, false
	}
	return val.Interface(), true
}

// sequence adapts slices & arrays, naming each element by its index
type sequence struct {
	v reflect.Value
}

func (s sequence) Len() int { return s.v.Len() }
func (s sequence) Keys() []string {
	keys := make([]string, s.v.Len())
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}
	return keys
}
func (s sequence) Get(key string) (interface{}, bool) {
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || i >= s.v.Len() || strconv.Itoa(i) != key {
		return nil, false
	}
	return s.v.Index(i).Interface(), true
}

// joinPath appends name to a slash-separated path
func joinPath(parent, name string) string {
	return parent + "/" + name
}

// walkLeaves calls fn for every leaf below tree in key order. Empty mappings
// count as leaves, otherwise they'd vanish from reports
func walkLeaves(tree interface{}, path string, fn func(path string, leaf interface{})) {
	m, ok := asMapping(tree)
	if !ok || m.Len() == 0 {
		fn(path, tree)
		return
	}
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		walkLeaves(v, joinPath(path, k), fn)
	}
}

// walkChildren visits the leaves below the top level of m
func walkChildren(m mapping, fn func(path string, leaf interface{})) {
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		walkLeaves(v, joinPath("", k), fn)
	}
}

// countLeaves is the number of leaves held by a mapping. Non-mappings count
// as a single leaf
func countLeaves(tree interface{}) int {
	m, ok := asMapping(tree)
	if !ok {
		return 1
	}
	n := 0
	walkChildren(m, func(string, interface{}) { n++ })
	return n
}
