package predicate

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/tidwall/gjson"
)

// Lookup resolves a dotted property path against record.
//
// Records may be maps with string keys, structs (matched by json tag, then
// field name), pointers to either, or raw JSON documents ([]byte,
// json.RawMessage, gjson.Result). JSON values are returned as gjson decodes
// them: numbers are float64, objects map[string]any.
func Lookup(record any, path string) (any, bool) {
	segments := strings.Split(path, ".")
	cur := record

	for i, seg := range segments {
		switch v := cur.(type) {
		case nil:
			return nil, false
		case map[string]any:
			next, ok := v[seg]
			if !ok {
				return nil, false
			}
			cur = next
			continue
		case gjson.Result:
			return fromJSON(v.Get(strings.Join(segments[i:], ".")))
		case json.RawMessage:
			return fromJSON(gjson.GetBytes(v, strings.Join(segments[i:], ".")))
		case []byte:
			return fromJSON(gjson.GetBytes(v, strings.Join(segments[i:], ".")))
		}

		next, ok := lookupReflect(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}

	if r, ok := cur.(gjson.Result); ok {
		return fromJSON(r)
	}
	return cur, true
}

func fromJSON(r gjson.Result) (any, bool) {
	if !r.Exists() {
		return nil, false
	}
	return r.Value(), true
}

func lookupReflect(v any, name string) (any, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		f, ok := structField(rv, name)
		if !ok {
			return nil, false
		}
		return f.Interface(), true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	default:
		return nil, false
	}
}

func structField(rv reflect.Value, name string) (reflect.Value, bool) {
	t := rv.Type()
	fallback := -1
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if tag == "-" {
			continue
		}
		if tag == name || (tag == "" && sf.Name == name) {
			return rv.Field(i), true
		}
		if fallback < 0 && tag == "" && strings.EqualFold(sf.Name, name) {
			fallback = i
		}
	}
	if fallback >= 0 {
		return rv.Field(fallback), true
	}
	return reflect.Value{}, false
}
