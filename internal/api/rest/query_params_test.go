package rest

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/api/shared/types"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/domain"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/query"
)

func TestParseListQuery(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected query.Params
	}{
		{
			name:     "empty",
			raw:      "",
			expected: query.Params{Filters: map[string]query.FilterValue{}},
		},
		{
			name: "pagination and search",
			raw:  "limit=20&page=3&search=s%C3%A3o+paulo&includeInactive=true",
			expected: query.Params{
				Limit:           20,
				Page:            3,
				Search:          "são paulo",
				IncludeInactive: true,
				Filters:         map[string]query.FilterValue{},
			},
		},
		{
			name: "sort keeps request order",
			raw:  "sort_owner_name=asc&sort%5Btitle%5D=DESC&sort_bedrooms=asc",
			expected: query.Params{
				Filters: map[string]query.FilterValue{},
				Sort: []query.SortOption{
					{Field: "owner_name", Direction: domain.SortAsc},
					{Field: "title", Direction: domain.SortDesc},
					{Field: "bedrooms", Direction: domain.SortAsc},
				},
			},
		},
		{
			name: "unknown sort direction dropped",
			raw:  "sort_title=up&sort_=asc",
			expected: query.Params{
				Filters: map[string]query.FilterValue{},
			},
		},
		{
			name: "filters and ranges",
			raw:  "city=Santos&created_at%5Bfrom%5D=2024-01-01&created_at%5Bto%5D=2024-01-31&furnished=true",
			expected: query.Params{
				Filters: map[string]query.FilterValue{
					"city":       {Value: "Santos"},
					"created_at": {From: "2024-01-01", To: "2024-01-31"},
					"furnished":  {Value: "true"},
				},
			},
		},
		{
			name: "malformed escape skipped",
			raw:  "title=%zz&city=Santos",
			expected: query.Params{
				Filters: map[string]query.FilterValue{
					"city": {Value: "Santos"},
				},
			},
		},
		{
			name: "invalid includeInactive is false",
			raw:  "includeInactive=maybe",
			expected: query.Params{
				Filters: map[string]query.FilterValue{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseListQuery(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseListQuery_InvalidPagination(t *testing.T) {
	_, err := ParseListQuery("limit=ten")
	assert.Error(t, err)

	_, err = ParseListQuery("page=first")
	assert.Error(t, err)
}

func newQueryContext(rawQuery string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/dashboard?"+rawQuery, nil)
	return c
}

func TestParseDashboardQuery(t *testing.T) {
	params, err := ParseDashboardQuery(newQueryContext("startDate=2024-03-01&endDate=2024-03-31"))
	require.NoError(t, err)
	assert.Equal(t, types.MetricAll, params.Metric)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), params.Start)
	assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 999e6, time.UTC), params.End)

	params, err = ParseDashboardQuery(newQueryContext("startDate=2024-03-01T10:00:00-03:00&endDate=2024-03-01T15:00:00Z&metric=financial"))
	require.NoError(t, err)
	assert.Equal(t, types.MetricFinancial, params.Metric)
	assert.Equal(t, time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC), params.Start)
	assert.Equal(t, time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC), params.End)
}

func TestParseDashboardQuery_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing start", "endDate=2024-03-31"},
		{"missing end", "startDate=2024-03-01"},
		{"bad start", "startDate=01/03/2024&endDate=2024-03-31"},
		{"bad end", "startDate=2024-03-01&endDate=tomorrow"},
		{"end before start", "startDate=2024-03-31&endDate=2024-03-01"},
		{"unknown metric", "startDate=2024-03-01&endDate=2024-03-31&metric=weather"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDashboardQuery(newQueryContext(tt.raw))
			assert.Error(t, err)
		})
	}
}
