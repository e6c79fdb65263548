package query

import (
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// fieldIndexCache maps a struct type to its lookup table of segment name -> field index
var fieldIndexCache sync.Map // map[reflect.Type]map[string][]int

// GetPath walks record along a dotted path such as "owner.name" or
// "addresses.0.address.city" and returns the value found at the end.
//
// Struct fields are matched by their JSON name, falling back to the Go field
// name (case-insensitive). Numeric segments index into slices and arrays.
// The second return value is false as soon as any step is nil, missing or out
// of range; GetPath never panics.
func GetPath(record any, path string) (any, bool) {
	v := reflect.ValueOf(record)
	if path == "" {
		return unwrap(v)
	}

	for _, segment := range strings.Split(path, ".") {
		var ok bool
		v, ok = indirect(v)
		if !ok {
			return nil, false
		}

		switch v.Kind() {
		case reflect.Struct:
			index, found := structFieldIndex(v.Type(), segment)
			if !found {
				return nil, false
			}
			v, ok = fieldByIndex(v, index)
			if !ok {
				return nil, false
			}
		case reflect.Map:
			if v.Type().Key().Kind() != reflect.String {
				return nil, false
			}
			v = v.MapIndex(reflect.ValueOf(segment).Convert(v.Type().Key()))
			if !v.IsValid() {
				return nil, false
			}
		case reflect.Slice, reflect.Array:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= v.Len() {
				return nil, false
			}
			v = v.Index(i)
		default:
			return nil, false
		}
	}

	return unwrap(v)
}

// indirect dereferences pointers and interfaces, reporting false on nil
func indirect(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

func unwrap(v reflect.Value) (any, bool) {
	v, ok := indirect(v)
	if !ok || !v.CanInterface() {
		return nil, false
	}
	return v.Interface(), true
}

// fieldByIndex is reflect.Value.FieldByIndex without the panic on nil embedded pointers
func fieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 {
			var ok bool
			v, ok = indirect(v)
			if !ok || v.Kind() != reflect.Struct {
				return reflect.Value{}, false
			}
		}
		v = v.Field(x)
	}
	return v, true
}

func structFieldIndex(t reflect.Type, name string) ([]int, bool) {
	var table map[string][]int
	if cached, ok := fieldIndexCache.Load(t); ok {
		table = cached.(map[string][]int)
	} else {
		table = buildFieldIndex(t)
		fieldIndexCache.Store(t, table)
	}

	if index, ok := table[name]; ok {
		return index, true
	}
	index, ok := table[strings.ToLower(name)]
	return index, ok
}

func buildFieldIndex(t reflect.Type) map[string][]int {
	table := make(map[string][]int)
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}

		jsonName := strings.Split(f.Tag.Get("json"), ",")[0]
		if jsonName != "" && jsonName != "-" {
			if _, exists := table[jsonName]; !exists {
				table[jsonName] = f.Index
			}
		}

		lower := strings.ToLower(f.Name)
		if _, exists := table[lower]; !exists {
			table[lower] = f.Index
		}
	}
	return table
}
