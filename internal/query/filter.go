package query

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// FilterValue is the raw, unvalidated filter input for one field.
// Value carries "<field>=<value>"; From and To carry "<field>[from]" and "<field>[to]".
type FilterValue struct {
	Value string
	From  string
	To    string
}

// IsRange reports whether the value was given as a {from,to} pair
func (v FilterValue) IsRange() bool {
	return v.From != "" || v.To != ""
}

// Condition is a validated filter predicate. The set of implementations is closed:
// TextContains, NumberEquals, BooleanEquals, DateRange, EnumEquals and RelationTextContains.
type Condition interface {
	// Target returns the field the condition applies to
	Target() Field
	isCondition()
}

// TextContains matches a direct text column containing Value, case-insensitively
type TextContains struct {
	Field Field
	Value string
}

// NumberEquals matches a direct numeric column equal to Value
type NumberEquals struct {
	Field Field
	Value float64
}

// BooleanEquals matches a direct boolean column equal to Value
type BooleanEquals struct {
	Field Field
	Value bool
}

// DateRange matches a direct date column inside [From, To]. A zero bound is open.
type DateRange struct {
	Field Field
	From  time.Time
	To    time.Time
}

// EnumEquals matches a direct enum column equal to Value
type EnumEquals struct {
	Field Field
	Value string
}

// RelationTextContains matches root rows whose related text column contains Value.
// The related row is reached through Field.Scope.
type RelationTextContains struct {
	Field Field
	Value string
}

func (c TextContains) Target() Field         { return c.Field }
func (c NumberEquals) Target() Field         { return c.Field }
func (c BooleanEquals) Target() Field        { return c.Field }
func (c DateRange) Target() Field            { return c.Field }
func (c EnumEquals) Target() Field           { return c.Field }
func (c RelationTextContains) Target() Field { return c.Field }

func (TextContains) isCondition()         {}
func (NumberEquals) isCondition()         {}
func (BooleanEquals) isCondition()        {}
func (DateRange) isCondition()            {}
func (EnumEquals) isCondition()           {}
func (RelationTextContains) isCondition() {}

const dateLayout = "2006-01-02"

// TryParseFilter coerces a raw filter value into a typed condition for field.
//
// Malformed values are not errors: the second return value is false and the
// caller drops the filter. Numbers accept integer and decimal notation, booleans
// accept "true"/"false", text becomes a case-insensitive substring match, dates
// accept a single day (YYYY-MM-DD or RFC3339, expanded to the whole day) or a
// from/to pair with the upper bound expanded to the end of its day.
func TryParseFilter(field Field, raw FilterValue) (Condition, bool) {
	value := strings.TrimSpace(raw.Value)

	if !field.IsDirect() {
		if field.Type != TypeText || value == "" {
			return nil, false
		}
		return RelationTextContains{Field: field, Value: value}, true
	}

	switch field.Type {
	case TypeText:
		if value == "" {
			return nil, false
		}
		return TextContains{Field: field, Value: value}, true

	case TypeNumber:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, false
		}
		return NumberEquals{Field: field, Value: n}, true

	case TypeBool:
		switch strings.ToLower(value) {
		case "true":
			return BooleanEquals{Field: field, Value: true}, true
		case "false":
			return BooleanEquals{Field: field, Value: false}, true
		}
		return nil, false

	case TypeEnum:
		if value == "" {
			return nil, false
		}
		return EnumEquals{Field: field, Value: strings.ToUpper(value)}, true

	case TypeDate:
		return parseDateRange(field, raw)
	}

	return nil, false
}

func parseDateRange(field Field, raw FilterValue) (Condition, bool) {
	if raw.IsRange() {
		cond := DateRange{Field: field}
		if from := strings.TrimSpace(raw.From); from != "" {
			day, ok := parseDay(from)
			if !ok {
				return nil, false
			}
			cond.From = startOfDay(day)
		}
		if to := strings.TrimSpace(raw.To); to != "" {
			day, ok := parseDay(to)
			if !ok {
				return nil, false
			}
			cond.To = endOfDay(day)
		}
		if !cond.From.IsZero() && !cond.To.IsZero() && cond.To.Before(cond.From) {
			return nil, false
		}
		return cond, true
	}

	day, ok := parseDay(strings.TrimSpace(raw.Value))
	if !ok {
		return nil, false
	}
	return DateRange{Field: field, From: startOfDay(day), To: endOfDay(day)}, true
}

func parseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// ParseFilters validates raw filters against mapping in a single pass.
// Unknown fields and malformed values are dropped. The result is ordered by field name.
func ParseFilters(mapping *Mapping, raw map[string]FilterValue) []Condition {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	conditions := make([]Condition, 0, len(names))
	for _, name := range names {
		field, ok := mapping.Lookup(name)
		if !ok {
			continue
		}
		if cond, ok := TryParseFilter(field, raw[name]); ok {
			conditions = append(conditions, cond)
		}
	}
	return conditions
}
