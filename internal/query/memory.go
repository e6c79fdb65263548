package query

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/textnorm"
)

// SearchText builds the normalized concatenation of every searchable value of record.
// Absent values are omitted.
func SearchText(mapping *Mapping, record any) string {
	parts := make([]string, 0, len(mapping.search))
	for _, f := range mapping.search {
		v, ok := GetPath(record, f.Path)
		if !ok {
			continue
		}
		s := textnorm.Normalize(stringValue(v))
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Search keeps the records whose search text contains the normalized term.
// An empty term keeps every record.
func Search[T any](records []T, term string, mapping *Mapping) []T {
	needle := textnorm.Normalize(term)
	if needle == "" {
		return records
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		if strings.Contains(SearchText(mapping, r), needle) {
			out = append(out, r)
		}
	}
	return out
}

// Sort orders records in place by keys, stably. Text values compare with
// Brazilian Portuguese collation after normalization; numeric and date values
// compare numerically. Records missing a value sort after those that have one,
// whatever the direction.
func Sort[T any](records []T, keys []SortKey) {
	if len(keys) == 0 || len(records) < 2 {
		return
	}

	collator := textnorm.NewCollator()
	sort.SliceStable(records, func(i, j int) bool {
		for _, key := range keys {
			va, okA := GetPath(records[i], key.Field.Path)
			vb, okB := GetPath(records[j], key.Field.Path)
			if okA != okB {
				// Present values first in both directions
				return okA
			}
			if !okA {
				continue
			}
			c := compareValues(collator, key.Field, va, vb)
			if c == 0 {
				continue
			}
			if key.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// Paginate returns records[skip:skip+take]. Out-of-range windows yield an empty slice.
func Paginate[T any](records []T, skip, take int) []T {
	if skip < 0 {
		skip = 0
	}
	if take <= 0 || skip >= len(records) {
		return []T{}
	}
	end := min(skip+take, len(records))
	return records[skip:end]
}

// Apply runs search, sort and pagination over a materialized collection and returns
// the requested page with the number of records matching the search.
// When params carry no usable sort key, records are ordered newest first.
func Apply[T any](records []T, mapping *Mapping, params Params) ([]T, int) {
	params = params.Normalize()

	// Copy so sorting never reorders the caller's slice
	matched := append([]T(nil), Search(records, params.Search, mapping)...)

	// Newest first, then the requested keys; the stable sort keeps creation order among ties
	Sort(matched, DefaultSort(mapping))
	if keys := params.SortKeys(mapping); len(keys) > 0 {
		Sort(matched, keys)
	}

	return Paginate(matched, params.Skip(), params.Limit), len(matched)
}

// compareValues compares two values of field
func compareValues(collator *textnorm.Collator, field Field, va, vb any) int {
	if field.Kind == KindDirect && (field.Type == TypeNumber || field.Type == TypeDate || field.Type == TypeBool) {
		na, okA := numericValue(va)
		nb, okB := numericValue(vb)
		if okA && okB {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			}
			return 0
		}
	}

	return collator.Compare(stringValue(va), stringValue(vb))
}

// numericValue converts numbers, booleans, times and driver.Valuer wrappers (e.g. datatypes.Date) to float64
func numericValue(v any) (float64, bool) {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return 0, false
		}
		return float64(x.UnixNano()), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case driver.Valuer:
		inner, err := x.Value()
		if err != nil || inner == nil {
			return 0, false
		}
		return numericValue(inner)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func stringValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return fmt.Sprint(v)
}
