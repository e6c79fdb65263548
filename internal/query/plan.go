package query

import (
	"math"
	"strings"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/domain"
)

// SortOption is one requested sort key in the order it was given
type SortOption struct {
	Field     string
	Direction domain.SortDirection
}

// SortKey is a sort option resolved against a mapping
type SortKey struct {
	Field Field
	Desc  bool
}

// Params holds the list request of one entity
type Params struct {
	Limit           int
	Page            int
	Search          string
	Filters         map[string]FilterValue
	Sort            []SortOption
	IncludeInactive bool
}

// Normalize clamps pagination into its allowed range and trims the search term
func (p Params) Normalize() Params {
	if p.Limit <= 0 {
		p.Limit = domain.DEFAULT_PAGE_LIMIT
	}
	if p.Limit > domain.MAX_PAGE_LIMIT {
		p.Limit = domain.MAX_PAGE_LIMIT
	}
	if p.Page < 1 {
		p.Page = domain.DEFAULT_PAGE
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}

// Skip returns the number of records before the requested page.
// Pages too far out to address saturate at math.MaxInt, which is past any collection.
func (p Params) Skip() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// SortKeys resolves the sort options against mapping, dropping unknown fields
// and repeated fields while keeping the request order.
func (p Params) SortKeys(mapping *Mapping) []SortKey {
	keys := make([]SortKey, 0, len(p.Sort))
	seen := make(map[string]bool, len(p.Sort))
	for _, opt := range p.Sort {
		field, ok := mapping.Lookup(opt.Field)
		if !ok || seen[opt.Field] {
			continue
		}
		seen[opt.Field] = true
		keys = append(keys, SortKey{Field: field, Desc: opt.Direction.Desc()})
	}
	return keys
}

// Plan is the execution strategy of a list request
type Plan int

const (
	// PlanPushdown runs filtering, ordering and pagination in the store
	PlanPushdown Plan = iota
	// PlanInMemory fetches the filtered collection and searches, sorts and paginates in memory
	PlanInMemory
)

func (p Plan) String() string {
	if p == PlanInMemory {
		return "in_memory"
	}
	return "pushdown"
}

// Decide selects the plan for params: in-memory when a search term is present
// or when the first usable sort field is not a direct column, pushdown otherwise.
func Decide(mapping *Mapping, params Params) Plan {
	if strings.TrimSpace(params.Search) != "" {
		return PlanInMemory
	}
	keys := params.SortKeys(mapping)
	if len(keys) > 0 && !keys[0].Field.IsDirect() {
		return PlanInMemory
	}
	return PlanPushdown
}

// DefaultSort is the ordering applied when no usable sort key was requested: newest first
func DefaultSort(mapping *Mapping) []SortKey {
	return []SortKey{{Field: mapping.CreatedAt(), Desc: true}}
}

// TotalPages returns the page count for count records split into pages of limit
func TotalPages(count int64, limit int) int {
	if limit <= 0 || count <= 0 {
		return 0
	}
	return int((count + int64(limit) - 1) / int64(limit))
}
