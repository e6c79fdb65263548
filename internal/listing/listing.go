// Package listing serves the paginated list endpoints. Every entity goes through the
// same planner: requests without a search term whose primary sort is a direct column
// are pushed down to the store, everything else is fetched whole and searched, sorted
// and paginated in memory.
package listing

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/logger"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/query"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/store"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/store/schema"
)

// Page is one page of a list response
type Page[T any] struct {
	Data        []T   `json:"data"`
	Count       int64 `json:"count"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
}

// PageFunc loads one pushed-down page plus the unpaginated count
type PageFunc[T any] func(ctx context.Context, q store.ListQuery) ([]T, int64, error)

// FetchAllFunc loads the whole filtered collection with relations
type FetchAllFunc[T any] func(ctx context.Context, q store.ListQuery) ([]T, error)

// Lister lists one entity
type Lister[T any] struct {
	mapping  *query.Mapping
	page     PageFunc[T]
	fetchAll FetchAllFunc[T]
}

// NewLister creates a lister over the given store reads
func NewLister[T any](mapping *query.Mapping, page PageFunc[T], fetchAll FetchAllFunc[T]) *Lister[T] {
	return &Lister[T]{mapping: mapping, page: page, fetchAll: fetchAll}
}

// Mapping returns the field table the lister resolves filters and sort keys against
func (l *Lister[T]) Mapping() *query.Mapping {
	return l.mapping
}

// List returns the requested page. Malformed filters and unknown sort fields are
// dropped; only store failures produce an error.
func (l *Lister[T]) List(ctx context.Context, params query.Params) (*Page[T], error) {
	params = params.Normalize()
	plan := query.Decide(l.mapping, params)

	q := store.ListQuery{
		Conditions:      query.ParseFilters(l.mapping, params.Filters),
		IncludeInactive: params.IncludeInactive,
	}

	logger.DebugCtx(ctx, "Listing entity",
		zap.String("entity", l.mapping.Entity()),
		zap.Stringer("plan", plan),
		zap.Int("conditions", len(q.Conditions)),
		zap.Int("page", params.Page),
		zap.Int("limit", params.Limit))

	var (
		data  []T
		count int64
	)
	switch plan {
	case query.PlanInMemory:
		all, err := l.fetchAll(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", l.mapping.Entity(), err)
		}
		var matched int
		data, matched = query.Apply(all, l.mapping, params)
		count = int64(matched)

	default:
		q.Sort = params.SortKeys(l.mapping)
		q.Limit = params.Limit
		q.Offset = params.Skip()

		var err error
		data, count, err = l.page(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", l.mapping.Entity(), err)
		}
	}

	if data == nil {
		data = []T{}
	}

	return &Page[T]{
		Data:        data,
		Count:       count,
		TotalPages:  query.TotalPages(count, params.Limit),
		CurrentPage: params.Page,
	}, nil
}

// Listers groups the lister of every listable entity
type Listers struct {
	Properties    *Lister[schema.Property]
	Tenants       *Lister[schema.Tenant]
	Owners        *Lister[schema.Owner]
	Agencies      *Lister[schema.Agency]
	Leases        *Lister[schema.Lease]
	Users         *Lister[schema.User]
	PropertyTypes *Lister[schema.PropertyType]
}

// New creates the listers of every entity over s
func New(s store.Store) *Listers {
	return &Listers{
		Properties:    NewLister(query.PropertyFields, s.ListProperties, s.FindAllProperties),
		Tenants:       NewLister(query.TenantFields, s.ListTenants, s.FindAllTenants),
		Owners:        NewLister(query.OwnerFields, s.ListOwners, s.FindAllOwners),
		Agencies:      NewLister(query.AgencyFields, s.ListAgencies, s.FindAllAgencies),
		Leases:        NewLister(query.LeaseFields, s.ListLeases, s.FindAllLeases),
		Users:         NewLister(query.UserFields, s.ListUsers, s.FindAllUsers),
		PropertyTypes: NewLister(query.PropertyTypeFields, s.ListPropertyTypes, s.FindAllPropertyTypes),
	}
}
