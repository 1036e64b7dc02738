package assertdiff

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// This file is an escape hatch for tests that need to look at state a type
// keeps unexported. Nothing here grants lasting access: every call unlocks one
// field read or one call and keeps nothing around.
//
// Go reflection can read unexported fields but can't call unexported methods,
// so InvokeHidden only reaches those through RegisterHidden. The owning
// package opts in from an export_test.go file:
//
//	func init() {
//		assertdiff.RegisterHidden("helper", (*widget).helper)
//	}

var (
	// ErrMemberNotFound is matched by every *MemberNotFoundError
	ErrMemberNotFound = errors.New("member not found")
	// ErrInvalidArguments is returned when InvokeHidden can't pass args to the
	// member it found
	ErrInvalidArguments = errors.New("invalid arguments")
)

// MemberNotFoundError is returned when a type has no field or method of the
// requested name, including promoted ones
type MemberNotFoundError struct {
	Type   reflect.Type
	Member string
	// Kind is "field" or "method"
	Kind string
}

func (e *MemberNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s %q on %v", ErrMemberNotFound, e.Kind, e.Member, e.Type)
}

// Is makes errors.Is(err, ErrMemberNotFound) hold
func (e *MemberNotFoundError) Is(target error) bool {
	return target == ErrMemberNotFound
}

type hiddenKey struct {
	recv reflect.Type
	name string
}

var (
	hiddenMu      sync.RWMutex
	hiddenMethods = map[hiddenKey]reflect.Value{}
)

// RegisterHidden makes fn callable through InvokeHidden under name. fn must be
// a function whose first parameter is the receiver, which is what a method
// expression like (*widget).helper is. RegisterHidden panics on anything else,
// it's meant to be called from init
func RegisterHidden(name string, fn interface{}) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		panic(fmt.Sprintf("RegisterHidden(%q): %T is not a function", name, fn))
	}
	if fv.Type().NumIn() == 0 {
		panic(fmt.Sprintf("RegisterHidden(%q): %T takes no receiver", name, fn))
	}

	hiddenMu.Lock()
	defer hiddenMu.Unlock()
	hiddenMethods[hiddenKey{recv: fv.Type().In(0), name: name}] = fv
}

func registered(recv reflect.Type, name string) (reflect.Value, bool) {
	hiddenMu.RLock()
	defer hiddenMu.RUnlock()
	fn, ok := hiddenMethods[hiddenKey{recv: recv, name: name}]
	return fn, ok
}

// ReadHidden returns the value of a field of obj, exported or not. obj must
// be a struct or a pointer to one. name can be a dotted path ("conn.state")
// to reach into nested structs, and finds fields promoted from embedded
// structs
func ReadHidden(obj interface{}, name string) (interface{}, error) {
	v, err := hiddenField(reflect.ValueOf(obj), name)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func hiddenField(v reflect.Value, path string) (reflect.Value, error) {
	for _, name := range strings.Split(path, ".") {
		s, err := structValue(v)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("reading %q: %w", path, err)
		}

		sf, ok := s.Type().FieldByName(name)
		if !ok {
			return reflect.Value{}, &MemberNotFoundError{Type: s.Type(), Member: name, Kind: "field"}
		}
		f, err := s.FieldByIndexErr(sf.Index)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("reading %q: %w", path, err)
		}
		v = unlock(f)
	}
	return v, nil
}

// structValue dereferences v down to an addressable struct, copying values
// that aren't addressable so their unexported fields can be unlocked
func structValue(v reflect.Value) (reflect.Value, error) {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("nil %v", v.Type())
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return reflect.Value{}, fmt.Errorf("invalid value")
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%v is not a struct", v.Type())
	}
	if !v.CanAddr() {
		cp := reflect.New(v.Type()).Elem()
		cp.Set(v)
		v = cp
	}
	return v, nil
}

// unlock returns a usable view of an addressable field, even an unexported one
func unlock(f reflect.Value) reflect.Value {
	if f.CanInterface() || !f.CanAddr() {
		return f
	}
	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
}

// InvokeHidden calls the member called name on obj with args, returning nil
// for functions without results, the result itself for one, and a
// []interface{} for several. Members are looked up in order:
//
//  1. methods in obj's method set, including ones promoted from embedded types
//  2. methods registered with RegisterHidden, on obj's type or embedded types
//  3. func-typed fields, exported or not
func InvokeHidden(obj interface{}, name string, args ...interface{}) (interface{}, error) {
	fn, recv, err := findHidden(reflect.ValueOf(obj), name)
	if err != nil {
		return nil, err
	}

	in, err := callArgs(fn.Type(), recv, args)
	if err != nil {
		return nil, fmt.Errorf("calling %q: %w", name, err)
	}

	out := fn.Call(in)
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	}
	results := make([]interface{}, len(out))
	for i, o := range out {
		results[i] = o.Interface()
	}
	return results, nil
}

// findHidden resolves name to a callable. recv is valid when fn is a
// registered method expression that needs the receiver as first argument
func findHidden(v reflect.Value, name string) (fn, recv reflect.Value, err error) {
	if !v.IsValid() {
		return fn, recv, &MemberNotFoundError{Member: name, Kind: "method"}
	}

	if m := v.MethodByName(name); m.IsValid() {
		return m, recv, nil
	}
	if v.Kind() != reflect.Ptr {
		// pointer-receiver methods of a value: call them on a copy
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		if m := ptr.MethodByName(name); m.IsValid() {
			return m, recv, nil
		}
	}

	if fn, recv, ok := findRegistered(v, name); ok {
		return fn, recv, nil
	}

	if s, err := structValue(v); err == nil {
		if sf, ok := s.Type().FieldByName(name); ok && sf.Type.Kind() == reflect.Func {
			if f, err := s.FieldByIndexErr(sf.Index); err == nil && !f.IsNil() {
				return unlock(f), recv, nil
			}
		}
	}

	return fn, recv, &MemberNotFoundError{Type: v.Type(), Member: name, Kind: "method"}
}

// findRegistered looks for a registered method expression matching v, its
// pointer or its element, then searches embedded fields depth first
func findRegistered(v reflect.Value, name string) (fn, recv reflect.Value, ok bool) {
	for _, cand := range receivers(v) {
		if fn, ok := registered(cand.Type(), name); ok {
			return fn, cand, true
		}
	}

	s, err := structValue(v)
	if err != nil {
		return fn, recv, false
	}
	for i := 0; i < s.NumField(); i++ {
		if !s.Type().Field(i).Anonymous {
			continue
		}
		if fn, recv, ok := findRegistered(unlock(s.Field(i)), name); ok {
			return fn, recv, true
		}
	}
	return fn, recv, false
}

// receivers lists the values a method expression could be bound to: v itself,
// and either its element or its address
func receivers(v reflect.Value) []reflect.Value {
	cands := []reflect.Value{v}
	switch {
	case v.Kind() == reflect.Ptr && !v.IsNil():
		cands = append(cands, v.Elem())
	case v.Kind() != reflect.Ptr && v.CanAddr():
		cands = append(cands, v.Addr())
	case v.Kind() != reflect.Ptr:
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		cands = append(cands, ptr)
	}
	return cands
}

// callArgs converts args to the parameter types of ft, prepending recv when
// it's valid
func callArgs(ft reflect.Type, recv reflect.Value, args []interface{}) ([]reflect.Value, error) {
	var in []reflect.Value
	if recv.IsValid() {
		in = append(in, recv)
	}
	for _, a := range args {
		if a == nil {
			in = append(in, reflect.Value{})
			continue
		}
		in = append(in, reflect.ValueOf(a))
	}

	numIn := ft.NumIn()
	if ft.IsVariadic() {
		if len(in) < numIn-1 {
			return nil, fmt.Errorf("%w: want at least %d, got %d", ErrInvalidArguments, numIn-1-offset(recv), len(args))
		}
	} else if len(in) != numIn {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrInvalidArguments, numIn-offset(recv), len(args))
	}

	for i := range in {
		pt := paramType(ft, i)
		switch {
		case !in[i].IsValid():
			in[i] = reflect.Zero(pt)
		case in[i].Type().AssignableTo(pt):
		case in[i].Type().ConvertibleTo(pt) && convertible(in[i], pt):
			in[i] = in[i].Convert(pt)
		default:
			return nil, fmt.Errorf("%w: argument %d is %v, want %v", ErrInvalidArguments, i-offset(recv), in[i].Type(), pt)
		}
	}
	return in, nil
}

// paramType is the type of the i'th argument, unrolling a variadic tail
func paramType(ft reflect.Type, i int) reflect.Type {
	if ft.IsVariadic() && i >= ft.NumIn()-1 {
		return ft.In(ft.NumIn() - 1).Elem()
	}
	return ft.In(i)
}

// convertible limits implicit conversion to numbers among themselves and
// strings among themselves, so 3 can be passed as an int64 but never as a
// string. Numbers only convert when the value survives unchanged: 3.9 isn't
// an int and 300 isn't a uint8
func convertible(v reflect.Value, to reflect.Type) bool {
	from := kindClass(v.Kind())
	if from == classOther || from != kindClass(to.Kind()) {
		return false
	}
	if from == classString {
		return true
	}

	dst := reflect.New(to).Elem()
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := exactInt(v)
		return ok && !dst.OverflowInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, ok := exactUint(v)
		return ok && !dst.OverflowUint(n)
	}

	// float destinations
	limit := uint64(1) << 53
	if to.Kind() == reflect.Float32 {
		limit = 1 << 24
	}
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return !dst.OverflowFloat(v.Float())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := v.Int()
		return n >= -int64(limit) && n <= int64(limit)
	}
	return v.Uint() <= limit
}

const (
	classOther = iota
	classNumber
	classString
)

func kindClass(k reflect.Kind) int {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return classNumber
	case reflect.String:
		return classString
	}
	return classOther
}

// exactInt reads a number as an int64 when it holds a whole value in range
func exactInt(v reflect.Value) (int64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	}
	u := v.Uint()
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}

// exactUint reads a number as a uint64 when it holds a whole, non-negative
// value in range
func exactUint(v reflect.Value) (uint64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := v.Int()
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
			return 0, false
		}
		return uint64(f), true
	}
	return v.Uint(), true
}

func offset(recv reflect.Value) int {
	if recv.IsValid() {
		return 1
	}
	return 0
}

// MustReadHidden is ReadHidden for tests, failing t on error
func MustReadHidden(t require.TestingT, obj interface{}, name string) interface{} {
	if th, ok := t.(tHelper); ok {
		th.Helper()
	}
	v, err := ReadHidden(obj, name)
	require.NoError(t, err)
	return v
}

// MustInvokeHidden is InvokeHidden for tests, failing t on error
func MustInvokeHidden(t require.TestingT, obj interface{}, name string, args ...interface{}) interface{} {
	if th, ok := t.(tHelper); ok {
		th.Helper()
	}
	v, err := InvokeHidden(obj, name, args...)
	require.NoError(t, err)
	return v
}
