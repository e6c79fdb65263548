package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/api/shared/dto"
	apierrors "github.com/Nairim-holding/api-nairim-v2-sub000/internal/api/shared/errors"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/api/shared/types"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/dashboard"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/listing"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/query"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/store"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/store/schema"
)

// Executor is the interface for the API executor.
// Requests reaching the executor have already been validated.
type Executor interface {
	// Ping checks the dependencies of the API
	Ping(ctx context.Context) error

	// Listing
	ListProperties(ctx context.Context, params query.Params) (*listing.Page[schema.Property], error)
	ListOwners(ctx context.Context, params query.Params) (*listing.Page[schema.Owner], error)
	ListTenants(ctx context.Context, params query.Params) (*listing.Page[schema.Tenant], error)
	ListAgencies(ctx context.Context, params query.Params) (*listing.Page[schema.Agency], error)
	ListLeases(ctx context.Context, params query.Params) (*listing.Page[schema.Lease], error)
	ListUsers(ctx context.Context, params query.Params) (*listing.Page[schema.User], error)
	ListPropertyTypes(ctx context.Context, params query.Params) (*listing.Page[schema.PropertyType], error)

	// Single entities
	GetProperty(ctx context.Context, id uint64) (*schema.Property, error)
	GetOwner(ctx context.Context, id uint64) (*schema.Owner, error)
	GetTenant(ctx context.Context, id uint64) (*schema.Tenant, error)
	GetAgency(ctx context.Context, id uint64) (*schema.Agency, error)
	GetLease(ctx context.Context, id uint64) (*schema.Lease, error)
	GetUser(ctx context.Context, id uint64) (*schema.User, error)
	GetPropertyType(ctx context.Context, id uint64) (*schema.PropertyType, error)

	// Writes
	CreateProperty(ctx context.Context, req *dto.CreatePropertyRequest) (*schema.Property, error)
	UpdateProperty(ctx context.Context, id uint64, req *dto.UpdatePropertyRequest) (*schema.Property, error)
	AddPropertyValue(ctx context.Context, id uint64, req *dto.PropertyValueRequest) (*schema.PropertyValue, error)
	CreateOwner(ctx context.Context, req *dto.CreatePartyRequest) (*schema.Owner, error)
	CreateTenant(ctx context.Context, req *dto.CreatePartyRequest) (*schema.Tenant, error)
	CreateAgency(ctx context.Context, req *dto.CreateAgencyRequest) (*schema.Agency, error)
	CreateLease(ctx context.Context, req *dto.CreateLeaseRequest) (*schema.Lease, error)
	CreatePropertyType(ctx context.Context, req *dto.CreatePropertyTypeRequest) (*schema.PropertyType, error)

	// Delete soft-deletes an entity with its declared dependents
	Delete(ctx context.Context, entity store.Entity, id uint64) error
	// Restore reverses Delete
	Restore(ctx context.Context, entity store.Entity, id uint64) error

	// GetDashboard computes one metric bundle, or all of them, for [start, end]
	GetDashboard(ctx context.Context, metric types.Metric, start, end time.Time) (any, error)
}

type executor struct {
	store   store.Store
	listers *listing.Listers
	engine  *dashboard.Engine
}

func NewExecutor(store store.Store, listers *listing.Listers, engine *dashboard.Engine) Executor {
	return &executor{store: store, listers: listers, engine: engine}
}

func (e *executor) Ping(ctx context.Context) error {
	return e.store.Ping(ctx)
}

func (e *executor) ListProperties(ctx context.Context, params query.Params) (*listing.Page[schema.Property], error) {
	return e.listers.Properties.List(ctx, params)
}

func (e *executor) ListOwners(ctx context.Context, params query.Params) (*listing.Page[schema.Owner], error) {
	return e.listers.Owners.List(ctx, params)
}

func (e *executor) ListTenants(ctx context.Context, params query.Params) (*listing.Page[schema.Tenant], error) {
	return e.listers.Tenants.List(ctx, params)
}

func (e *executor) ListAgencies(ctx context.Context, params query.Params) (*listing.Page[schema.Agency], error) {
	return e.listers.Agencies.List(ctx, params)
}

func (e *executor) ListLeases(ctx context.Context, params query.Params) (*listing.Page[schema.Lease], error) {
	return e.listers.Leases.List(ctx, params)
}

func (e *executor) ListUsers(ctx context.Context, params query.Params) (*listing.Page[schema.User], error) {
	return e.listers.Users.List(ctx, params)
}

func (e *executor) ListPropertyTypes(ctx context.Context, params query.Params) (*listing.Page[schema.PropertyType], error) {
	return e.listers.PropertyTypes.List(ctx, params)
}

func (e *executor) GetProperty(ctx context.Context, id uint64) (*schema.Property, error) {
	return e.store.GetProperty(ctx, id)
}

func (e *executor) GetOwner(ctx context.Context, id uint64) (*schema.Owner, error) {
	return e.store.GetOwner(ctx, id)
}

func (e *executor) GetTenant(ctx context.Context, id uint64) (*schema.Tenant, error) {
	return e.store.GetTenant(ctx, id)
}

func (e *executor) GetAgency(ctx context.Context, id uint64) (*schema.Agency, error) {
	return e.store.GetAgency(ctx, id)
}

func (e *executor) GetLease(ctx context.Context, id uint64) (*schema.Lease, error) {
	return e.store.GetLease(ctx, id)
}

func (e *executor) GetUser(ctx context.Context, id uint64) (*schema.User, error) {
	return e.store.GetUser(ctx, id)
}

func (e *executor) GetPropertyType(ctx context.Context, id uint64) (*schema.PropertyType, error) {
	return e.store.GetPropertyType(ctx, id)
}

func (e *executor) CreateProperty(ctx context.Context, req *dto.CreatePropertyRequest) (*schema.Property, error) {
	return e.store.CreateProperty(ctx, req.ToInput())
}

func (e *executor) UpdateProperty(ctx context.Context, id uint64, req *dto.UpdatePropertyRequest) (*schema.Property, error) {
	return e.store.UpdateProperty(ctx, id, req.ToInput())
}

func (e *executor) AddPropertyValue(ctx context.Context, id uint64, req *dto.PropertyValueRequest) (*schema.PropertyValue, error) {
	return e.store.AddPropertyValue(ctx, id, req.ToInput())
}

func (e *executor) CreateOwner(ctx context.Context, req *dto.CreatePartyRequest) (*schema.Owner, error) {
	return e.store.CreateOwner(ctx, req.ToInput())
}

func (e *executor) CreateTenant(ctx context.Context, req *dto.CreatePartyRequest) (*schema.Tenant, error) {
	return e.store.CreateTenant(ctx, req.ToInput())
}

func (e *executor) CreateAgency(ctx context.Context, req *dto.CreateAgencyRequest) (*schema.Agency, error) {
	return e.store.CreateAgency(ctx, req.ToInput())
}

func (e *executor) CreateLease(ctx context.Context, req *dto.CreateLeaseRequest) (*schema.Lease, error) {
	return e.store.CreateLease(ctx, req.ToInput())
}

func (e *executor) CreatePropertyType(ctx context.Context, req *dto.CreatePropertyTypeRequest) (*schema.PropertyType, error) {
	return e.store.CreatePropertyType(ctx, strings.TrimSpace(req.Description))
}

func (e *executor) Delete(ctx context.Context, entity store.Entity, id uint64) error {
	return e.store.SoftDelete(ctx, entity, id)
}

func (e *executor) Restore(ctx context.Context, entity store.Entity, id uint64) error {
	return e.store.Restore(ctx, entity, id)
}

func (e *executor) GetDashboard(ctx context.Context, metric types.Metric, start, end time.Time) (any, error) {
	switch metric {
	case types.MetricFinancial:
		return e.engine.Financial(ctx, start, end)
	case types.MetricPortfolio:
		return e.engine.Portfolio(ctx, start, end)
	case types.MetricClients:
		return e.engine.Clients(ctx, start, end)
	case types.MetricMap:
		return e.engine.Geolocation(ctx, start, end)
	case types.MetricAll:
		return e.engine.All(ctx, start, end)
	default:
		return nil, apierrors.NewValidationError(fmt.Sprintf("unknown metric: %q", metric))
	}
}
