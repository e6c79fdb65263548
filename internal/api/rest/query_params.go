package rest

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Nairim-holding/api-nairim-v2-sub000/internal/api/shared/errors"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/api/shared/types"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/domain"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/query"
)

const (
	dateLayout    = "2006-01-02"
	sortPrefix    = "sort_"
	sortBracket   = "sort["
	rangeFromMark = "[from]"
	rangeToMark   = "[to]"
)

// ParseListQuery parses the list contract from a raw query string:
//
//	limit, page, search, includeInactive
//	<field>=<value>, <field>[from]=<day>, <field>[to]=<day>
//	sort_<field>=asc|desc, sort[<field>]=asc|desc
//
// The raw string is walked in order so sort keys keep the order they were given in.
// Sort entries with an unknown direction and undecodable pairs are dropped; filters
// are validated later against the entity mapping.
func ParseListQuery(rawQuery string) (query.Params, error) {
	params := query.Params{Filters: make(map[string]query.FilterValue)}

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}

		switch {
		case key == "limit":
			if params.Limit, err = strconv.Atoi(value); err != nil {
				return query.Params{}, apierrors.NewValidationError("limit must be an integer")
			}
		case key == "page":
			if params.Page, err = strconv.Atoi(value); err != nil {
				return query.Params{}, apierrors.NewValidationError("page must be an integer")
			}
		case key == "search":
			params.Search = value
		case key == "includeInactive":
			params.IncludeInactive, _ = strconv.ParseBool(value)
		case strings.HasPrefix(key, sortPrefix):
			params.Sort = appendSort(params.Sort, strings.TrimPrefix(key, sortPrefix), value)
		case strings.HasPrefix(key, sortBracket) && strings.HasSuffix(key, "]"):
			params.Sort = appendSort(params.Sort, key[len(sortBracket):len(key)-1], value)
		case strings.HasSuffix(key, rangeFromMark):
			field := strings.TrimSuffix(key, rangeFromMark)
			fv := params.Filters[field]
			fv.From = value
			params.Filters[field] = fv
		case strings.HasSuffix(key, rangeToMark):
			field := strings.TrimSuffix(key, rangeToMark)
			fv := params.Filters[field]
			fv.To = value
			params.Filters[field] = fv
		default:
			fv := params.Filters[key]
			fv.Value = value
			params.Filters[key] = fv
		}
	}

	return params, nil
}

func appendSort(opts []query.SortOption, field, direction string) []query.SortOption {
	dir, ok := domain.ParseSortDirection(direction)
	if field == "" || !ok {
		return opts
	}
	return append(opts, query.SortOption{Field: field, Direction: dir})
}

// DashboardQueryParams holds query parameters for GET /dashboard
type DashboardQueryParams struct {
	StartDate string       `form:"startDate" binding:"required"`
	EndDate   string       `form:"endDate" binding:"required"`
	Metric    types.Metric `form:"metric,default=all"`

	// Parsed window
	Start time.Time `form:"-"`
	End   time.Time `form:"-"`
}

// ParseDashboardQuery parses query parameters for GET /dashboard.
// Calendar days cover the whole day: startDate from its first millisecond,
// endDate up to its last.
func ParseDashboardQuery(c *gin.Context) (*DashboardQueryParams, error) {
	var params DashboardQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, apierrors.NewValidationError("startDate and endDate are required")
	}

	if !params.Metric.Valid() {
		return nil, apierrors.NewValidationError(fmt.Sprintf("unknown metric: %q", params.Metric))
	}

	var err error
	if params.Start, err = parseWindowBound(params.StartDate, false); err != nil {
		return nil, apierrors.NewValidationError("invalid startDate", err.Error())
	}
	if params.End, err = parseWindowBound(params.EndDate, true); err != nil {
		return nil, apierrors.NewValidationError("invalid endDate", err.Error())
	}
	if params.End.Before(params.Start) {
		return nil, apierrors.NewValidationError(domain.ErrInvalidPeriod.Error())
	}

	return &params, nil
}

func parseWindowBound(s string, endOfDay bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	day, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD or RFC3339, got %q", s)
	}
	if endOfDay {
		return day.Add(24*time.Hour - time.Millisecond), nil
	}
	return day, nil
}
