package assertdiff

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/stretchr/testify/assert"
)

// LooseEqual compares two leaves with type coercion: numeric strings equal
// the numbers they spell ("1" == 1), bools compare by truthiness and nil
// equals any falsy value except a non-empty string. Leaves that aren't
// scalars fall back to assert.ObjectsAreEqualValues.
//
// This is what Diff uses unless OptionStrictLeaves is set.
func LooseEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}

	// bools win over every other type
	if ab, ok := a.(bool); ok {
		return ab == truthy(b)
	}
	if bb, ok := b.(bool); ok {
		return bb == truthy(a)
	}

	as, aStr := stringish(a)
	bs, bStr := stringish(b)

	if a == nil || b == nil {
		// nil against a string compares as "", anything else by truthiness
		if aStr || bStr {
			return as == bs
		}
		return !truthy(a) && !truthy(b)
	}

	an, aNum := number(a)
	bn, bNum := number(b)

	switch {
	case aNum && bNum:
		if eq, ok := integersEqual(a, b); ok {
			return eq
		}
		return an == bn
	case aNum && bStr:
		return numberEqualsString(an, a, bs)
	case aStr && bNum:
		return numberEqualsString(bn, b, as)
	case aStr && bStr:
		if af, ok := numericString(as); ok {
			if bf, ok := numericString(bs); ok {
				return af == bf
			}
		}
		return as == bs
	}

	if isMapping(a) || isMapping(b) {
		return false
	}
	return assert.ObjectsAreEqualValues(a, b)
}

// strictEqual is the leaf comparison used with OptionStrictLeaves
func strictEqual(a, b interface{}) bool {
	return assert.ObjectsAreEqual(a, b)
}

func numberEqualsString(n float64, raw interface{}, s string) bool {
	if f, ok := numericString(s); ok {
		return n == f
	}
	return formatNumber(raw) == s
}

// truthy mirrors boolean conversion of scalars: zero numbers, "", "0", nil
// and empty mappings are false
func truthy(v interface{}) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	if s, ok := stringish(v); ok {
		return s != "" && s != "0"
	}
	if n, ok := number(v); ok {
		return n != 0
	}
	if m, ok := asMapping(v); ok {
		return m.Len() > 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// stringish unwraps strings, []byte and named string types
func stringish(v interface{}) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case []byte:
		return string(x), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// number unwraps every int, uint & float kind into a float64
func number(v interface{}) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// integersEqual compares two integer kinds exactly, float64 can't tell
// integers above 2^53 apart. ok is false unless both are integers
func integersEqual(a, b interface{}) (eq, ok bool) {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	aSigned, aInt := integerKind(av.Kind())
	bSigned, bInt := integerKind(bv.Kind())
	if !aInt || !bInt {
		return false, false
	}
	switch {
	case aSigned && bSigned:
		return av.Int() == bv.Int(), true
	case !aSigned && !bSigned:
		return av.Uint() == bv.Uint(), true
	case aSigned:
		return av.Int() >= 0 && uint64(av.Int()) == bv.Uint(), true
	}
	return bv.Int() >= 0 && uint64(bv.Int()) == av.Uint(), true
}

func integerKind(k reflect.Kind) (signed, ok bool) {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return false, true
	}
	return false, false
}

// numericString parses s as a decimal number, allowing surrounding
// whitespace. ParseFloat alone is too lenient: it takes "inf", "nan" and hex
func numericString(s string) (float64, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.IndexFunc(trimmed, notDecimal) >= 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func notDecimal(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return false
	case r == '.', r == 'e', r == 'E', r == '+', r == '-':
		return false
	}
	return true
}

// formatNumber renders a number the way it reads in source: integers without
// a decimal point, floats in their shortest form
func formatNumber(v interface{}) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	default:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	}
}
