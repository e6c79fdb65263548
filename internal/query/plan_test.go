package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/domain"
)

func TestParams_Normalize(t *testing.T) {
	tests := []struct {
		name  string
		in    Params
		limit int
		page  int
		skip  int
	}{
		{name: "defaults", in: Params{}, limit: 10, page: 1, skip: 0},
		{name: "limit capped", in: Params{Limit: 500, Page: 2}, limit: 100, page: 2, skip: 100},
		{name: "negative page", in: Params{Limit: 20, Page: -3}, limit: 20, page: 1, skip: 0},
		{name: "third page", in: Params{Limit: 25, Page: 3}, limit: 25, page: 3, skip: 50},
		{name: "huge page saturates", in: Params{Limit: 100, Page: 1 << 62}, limit: 100, page: 1 << 62, skip: math.MaxInt},
		{name: "max page saturates", in: Params{Limit: 10, Page: math.MaxInt}, limit: 10, page: math.MaxInt, skip: math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in.Normalize()
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.skip, p.Skip())
		})
	}

	assert.Equal(t, "casa", Params{Search: "  casa "}.Normalize().Search)
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		mapping  *Mapping
		params   Params
		expected Plan
	}{
		{name: "no search no sort", mapping: PropertyFields, params: Params{}, expected: PlanPushdown},
		{
			name:     "direct sort",
			mapping:  PropertyFields,
			params:   Params{Sort: []SortOption{{Field: "title", Direction: domain.SortAsc}}},
			expected: PlanPushdown,
		},
		{name: "search term", mapping: PropertyFields, params: Params{Search: "casa"}, expected: PlanInMemory},
		{name: "blank search term", mapping: PropertyFields, params: Params{Search: "   "}, expected: PlanPushdown},
		{
			name:     "relation sort",
			mapping:  PropertyFields,
			params:   Params{Sort: []SortOption{{Field: "owner_name", Direction: domain.SortAsc}}},
			expected: PlanInMemory,
		},
		{
			name:     "address sort",
			mapping:  TenantFields,
			params:   Params{Sort: []SortOption{{Field: "city", Direction: domain.SortDesc}}},
			expected: PlanInMemory,
		},
		{
			name:    "only the first sort field decides",
			mapping: PropertyFields,
			params: Params{Sort: []SortOption{
				{Field: "title", Direction: domain.SortAsc},
				{Field: "owner_name", Direction: domain.SortAsc},
			}},
			expected: PlanPushdown,
		},
		{
			name:    "unknown sort field is dropped before deciding",
			mapping: PropertyFields,
			params: Params{Sort: []SortOption{
				{Field: "nonexistent", Direction: domain.SortAsc},
				{Field: "agency_name", Direction: domain.SortAsc},
			}},
			expected: PlanInMemory,
		},
		{
			name:     "relation filters stay pushed down",
			mapping:  PropertyFields,
			params:   Params{Filters: map[string]FilterValue{"owner_name": {Value: "Ana"}}},
			expected: PlanPushdown,
		},
		{
			name:     "user mapping is direct only",
			mapping:  UserFields,
			params:   Params{Sort: []SortOption{{Field: "owner_name", Direction: domain.SortAsc}}},
			expected: PlanPushdown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decide(tt.mapping, tt.params))
		})
	}
}

func TestParams_SortKeys(t *testing.T) {
	params := Params{Sort: []SortOption{
		{Field: "bedrooms", Direction: domain.SortDesc},
		{Field: "bogus", Direction: domain.SortAsc},
		{Field: "title", Direction: domain.SortAsc},
		{Field: "bedrooms", Direction: domain.SortAsc},
	}}

	keys := params.SortKeys(PropertyFields)
	require.Len(t, keys, 2)
	assert.Equal(t, "bedrooms", keys[0].Field.Name)
	assert.True(t, keys[0].Desc)
	assert.Equal(t, "title", keys[1].Field.Name)
	assert.False(t, keys[1].Desc)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestMapping(t *testing.T) {
	t.Run("lookup and fields are read-only copies", func(t *testing.T) {
		fields := PropertyFields.Fields()
		fields[0].Name = "mutated"

		f, ok := PropertyFields.Lookup("title")
		require.True(t, ok)
		assert.Equal(t, "properties.title", f.Column)
		assert.Equal(t, "title", f.Path)
		assert.Equal(t, "title", PropertyFields.Fields()[0].Name)
	})

	t.Run("search fields are grouped by kind", func(t *testing.T) {
		var kinds []Kind
		for _, f := range TenantFields.SearchFields() {
			assert.Equal(t, TypeText, f.Type)
			kinds = append(kinds, f.Kind)
		}
		require.NotEmpty(t, kinds)
		for i := 1; i < len(kinds); i++ {
			assert.LessOrEqual(t, kinds[i-1], kinds[i])
		}
		assert.Equal(t, KindContact, kinds[len(kinds)-1])
	})

	t.Run("address fields index the first address", func(t *testing.T) {
		f, ok := OwnerFields.Lookup("city")
		require.True(t, ok)
		assert.Equal(t, KindAddress, f.Kind)
		assert.Equal(t, "addresses.0.address.city", f.Path)
		assert.Contains(t, f.Scope, "owner_addresses")
	})

	t.Run("duplicate field panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewMapping("broken",
				direct("t", "created_at", TypeDate),
				direct("t", "created_at", TypeDate),
			)
		})
	})

	t.Run("missing created_at panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewMapping("broken", direct("t", "name", TypeText))
		})
	})
}
