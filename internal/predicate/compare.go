package predicate

import (
	"cmp"
	"encoding/json"
	"reflect"
	"strings"
	"time"
)

// Equal reports whether a record value equals a condition value.
//
// Numbers compare by value across types, time.Time compares by instant
// (against RFC 3339 text too), and everything else falls back to
// reflect.DeepEqual. nil equals only nil.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if n, ok := compareNumbers(a, b); ok {
		return n == 0
	}
	if isTime(a) || isTime(b) {
		ta, okA := timeOf(a)
		tb, okB := timeOf(b)
		return okA && okB && ta.Equal(tb)
	}
	if sa, ok := a.(string); ok {
		sb, ok := b.(string)
		return ok && sa == sb
	}
	return reflect.DeepEqual(a, b)
}

// Compare orders a against b. It returns false when the two values have no
// common ordering.
func Compare(a, b any) (int, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	if n, ok := compareNumbers(a, b); ok {
		return n, true
	}
	if isTime(a) || isTime(b) {
		ta, okA := timeOf(a)
		tb, okB := timeOf(b)
		if !okA || !okB {
			return 0, false
		}
		return ta.Compare(tb), true
	}
	sa, okA := a.(string)
	sb, okB := b.(string)
	if okA && okB {
		return strings.Compare(sa, sb), true
	}
	return 0, false
}

func compareNumbers(a, b any) (int, bool) {
	ia, okA := asInt(a)
	ib, okB := asInt(b)
	if okA && okB {
		return cmp.Compare(ia, ib), true
	}
	fa, okA := asFloat(a)
	fb, okB := asFloat(b)
	if okA && okB {
		return cmp.Compare(fa, fb), true
	}
	return 0, false
}

func asInt(v any) (int64, bool) {
	if n, ok := v.(json.Number); ok {
		i, err := n.Int64()
		return i, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > 1<<63-1 {
			return 0, false
		}
		return int64(u), true
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

func isTime(v any) bool {
	switch v.(type) {
	case time.Time, *time.Time:
		return true
	default:
		return false
	}
}

// timeLayouts are the text forms accepted opposite a time.Time.
var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func timeOf(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}
