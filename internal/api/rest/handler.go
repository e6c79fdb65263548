package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/api/shared/dto"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/api/shared/executor"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/listing"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/query"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/store"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// List endpoints share one contract, see ParseListQuery
	// GET /api/v1/<entity>?limit=&page=&search=&includeInactive=&<field>=&<field>[from]=&<field>[to]=&sort_<field>=
	ListProperties(c *gin.Context)
	ListOwners(c *gin.Context)
	ListTenants(c *gin.Context)
	ListAgencies(c *gin.Context)
	ListLeases(c *gin.Context)
	ListUsers(c *gin.Context)
	ListPropertyTypes(c *gin.Context)

	// GET /api/v1/<entity>/:id
	GetProperty(c *gin.Context)
	GetOwner(c *gin.Context)
	GetTenant(c *gin.Context)
	GetAgency(c *gin.Context)
	GetLease(c *gin.Context)
	GetUser(c *gin.Context)
	GetPropertyType(c *gin.Context)

	// CreateProperty creates a property with its address and first value snapshot
	// POST /api/v1/properties
	CreateProperty(c *gin.Context)

	// UpdateProperty updates the scalar fields of a property
	// PATCH /api/v1/properties/:id
	UpdateProperty(c *gin.Context)

	// AddPropertyValue appends a value snapshot to a property
	// POST /api/v1/properties/:id/values
	AddPropertyValue(c *gin.Context)

	// POST /api/v1/<entity>
	CreateOwner(c *gin.Context)
	CreateTenant(c *gin.Context)
	CreateAgency(c *gin.Context)
	CreateLease(c *gin.Context)
	CreatePropertyType(c *gin.Context)

	// Delete returns the soft-delete handler of entity
	// DELETE /api/v1/<entity>/:id
	Delete(entity store.Entity) gin.HandlerFunc

	// Restore returns the restore handler of entity
	// PATCH /api/v1/<entity>/:id/restore
	Restore(entity store.Entity) gin.HandlerFunc

	// GetDashboard computes dashboard metrics for a window
	// GET /api/v1/dashboard?startDate=<day>&endDate=<day>&metric=financial|portfolio|clients|map|all
	GetDashboard(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{
		executor: exec,
	}
}

// =============================================================================
// Helpers
// =============================================================================

// validatable is a request body that checks itself after binding
type validatable interface {
	Validate() error
}

// bindRequest binds and validates the JSON body, responding on failure
func bindRequest(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid request body")
		return false
	}
	return true
}

// parseID reads the :id path parameter, responding on failure
func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondBadRequest(c, "Invalid id", c.Param("id"))
		return 0, false
	}
	return id, true
}

func listEntities[T any](c *gin.Context, name string, list func(context.Context, query.Params) (*listing.Page[T], error)) {
	params, err := ParseListQuery(c.Request.URL.RawQuery)
	if err != nil {
		respondError(c, err, "Invalid query")
		return
	}

	page, err := list(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, fmt.Sprintf("Failed to list %s", name), zap.String("query", c.Request.URL.RawQuery))
		return
	}

	c.JSON(http.StatusOK, page)
}

func getEntity[T any](c *gin.Context, name string, get func(context.Context, uint64) (*T, error)) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	entity, err := get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, fmt.Sprintf("Failed to get %s", name), zap.Uint64("id", id))
		return
	}

	c.JSON(http.StatusOK, entity)
}

func createEntity[R validatable, T any](c *gin.Context, name string, req R, create func(context.Context, R) (*T, error)) {
	if !bindRequest(c, req) {
		return
	}

	entity, err := create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, fmt.Sprintf("Failed to create %s", name))
		return
	}

	c.JSON(http.StatusCreated, entity)
}

// =============================================================================
// Listing
// =============================================================================

func (h *handler) ListProperties(c *gin.Context) {
	listEntities(c, "properties", h.executor.ListProperties)
}

func (h *handler) ListOwners(c *gin.Context) {
	listEntities(c, "owners", h.executor.ListOwners)
}

func (h *handler) ListTenants(c *gin.Context) {
	listEntities(c, "tenants", h.executor.ListTenants)
}

func (h *handler) ListAgencies(c *gin.Context) {
	listEntities(c, "agencies", h.executor.ListAgencies)
}

func (h *handler) ListLeases(c *gin.Context) {
	listEntities(c, "leases", h.executor.ListLeases)
}

func (h *handler) ListUsers(c *gin.Context) {
	listEntities(c, "users", h.executor.ListUsers)
}

func (h *handler) ListPropertyTypes(c *gin.Context) {
	listEntities(c, "property types", h.executor.ListPropertyTypes)
}

// =============================================================================
// Single entities
// =============================================================================

func (h *handler) GetProperty(c *gin.Context) {
	getEntity(c, "property", h.executor.GetProperty)
}

func (h *handler) GetOwner(c *gin.Context) {
	getEntity(c, "owner", h.executor.GetOwner)
}

func (h *handler) GetTenant(c *gin.Context) {
	getEntity(c, "tenant", h.executor.GetTenant)
}

func (h *handler) GetAgency(c *gin.Context) {
	getEntity(c, "agency", h.executor.GetAgency)
}

func (h *handler) GetLease(c *gin.Context) {
	getEntity(c, "lease", h.executor.GetLease)
}

func (h *handler) GetUser(c *gin.Context) {
	getEntity(c, "user", h.executor.GetUser)
}

func (h *handler) GetPropertyType(c *gin.Context) {
	getEntity(c, "property type", h.executor.GetPropertyType)
}

// =============================================================================
// Writes
// =============================================================================

func (h *handler) CreateProperty(c *gin.Context) {
	createEntity(c, "property", &dto.CreatePropertyRequest{}, h.executor.CreateProperty)
}

func (h *handler) UpdateProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdatePropertyRequest
	if !bindRequest(c, &req) {
		return
	}

	property, err := h.executor.UpdateProperty(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update property", zap.Uint64("id", id))
		return
	}

	c.JSON(http.StatusOK, property)
}

func (h *handler) AddPropertyValue(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.PropertyValueRequest
	if !bindRequest(c, &req) {
		return
	}

	value, err := h.executor.AddPropertyValue(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to add property value", zap.Uint64("id", id))
		return
	}

	c.JSON(http.StatusCreated, value)
}

func (h *handler) CreateOwner(c *gin.Context) {
	createEntity(c, "owner", &dto.CreatePartyRequest{}, h.executor.CreateOwner)
}

func (h *handler) CreateTenant(c *gin.Context) {
	createEntity(c, "tenant", &dto.CreatePartyRequest{}, h.executor.CreateTenant)
}

func (h *handler) CreateAgency(c *gin.Context) {
	createEntity(c, "agency", &dto.CreateAgencyRequest{}, h.executor.CreateAgency)
}

func (h *handler) CreateLease(c *gin.Context) {
	createEntity(c, "lease", &dto.CreateLeaseRequest{}, h.executor.CreateLease)
}

func (h *handler) CreatePropertyType(c *gin.Context) {
	createEntity(c, "property type", &dto.CreatePropertyTypeRequest{}, h.executor.CreatePropertyType)
}

func (h *handler) Delete(entity store.Entity) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		if err := h.executor.Delete(c.Request.Context(), entity, id); err != nil {
			respondError(c, err, fmt.Sprintf("Failed to delete %s", entity), zap.Uint64("id", id))
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func (h *handler) Restore(entity store.Entity) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		if err := h.executor.Restore(c.Request.Context(), entity, id); err != nil {
			respondError(c, err, fmt.Sprintf("Failed to restore %s", entity), zap.Uint64("id", id))
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// =============================================================================
// Dashboard
// =============================================================================

func (h *handler) GetDashboard(c *gin.Context) {
	params, err := ParseDashboardQuery(c)
	if err != nil {
		respondError(c, err, "Invalid query")
		return
	}

	metrics, err := h.executor.GetDashboard(c.Request.Context(), params.Metric, params.Start, params.End)
	if err != nil {
		respondError(c, err, "Failed to compute dashboard metrics",
			zap.String("metric", string(params.Metric)),
			zap.Time("start", params.Start),
			zap.Time("end", params.End))
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	if err := h.executor.Ping(c.Request.Context()); err != nil {
		respondError(c, err, "Database unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "nairim-api",
	})
}
