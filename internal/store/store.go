package store

import (
	"context"
	"time"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/domain"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/query"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/store/schema"
)

// Entity names a primary entity for generic operations (soft delete, restore)
type Entity string

const (
	EntityProperty     Entity = "property"
	EntityOwner        Entity = "owner"
	EntityTenant       Entity = "tenant"
	EntityAgency       Entity = "agency"
	EntityLease        Entity = "lease"
	EntityUser         Entity = "user"
	EntityPropertyType Entity = "property_type"
)

// ListQuery is a validated list request handed to the store.
// For pushed-down listing every field is honored; for fetch-all only Conditions
// and IncludeInactive apply.
type ListQuery struct {
	Conditions      []query.Condition
	Sort            []query.SortKey
	IncludeInactive bool
	Limit           int
	Offset          int
}

// AddressInput holds the fields of a new address
type AddressInput struct {
	ZipCode    string
	Street     string
	Number     string
	Complement *string
	District   string
	City       string
	State      string
	Country    string
}

// ContactInput holds the fields of a new contact
type ContactInput struct {
	Contact   string
	Phone     *string
	Cellphone *string
	Email     *string
	Whatsapp  bool
}

// PropertyValueInput holds a financial snapshot of a property
type PropertyValueInput struct {
	PurchaseValue float64
	RentalValue   float64
	CondoFee      float64
	PropertyTax   float64
	Status        domain.PropertyStatus
	ReferenceDate time.Time
	Notes         *string
}

// CreatePropertyInput holds the data to create a property together with its
// address and initial value snapshot
type CreatePropertyInput struct {
	Title           string
	Bedrooms        int
	Bathrooms       int
	HalfBathrooms   int
	GarageSpaces    int
	AreaTotal       float64
	AreaBuilt       float64
	FrontageWidth   float64
	Furnished       bool
	FloorNumber     int
	TaxRegistration *string
	Notes           *string
	OwnerID         uint64
	TypeID          uint64
	AgencyID        *uint64
	Address         AddressInput
	Value           PropertyValueInput
}

// UpdatePropertyInput holds the scalar fields of a property that may change.
// Nil fields are left untouched.
type UpdatePropertyInput struct {
	Title           *string
	Bedrooms        *int
	Bathrooms       *int
	HalfBathrooms   *int
	GarageSpaces    *int
	AreaTotal       *float64
	AreaBuilt       *float64
	FrontageWidth   *float64
	Furnished       *bool
	FloorNumber     *int
	TaxRegistration *string
	Notes           *string
	AgencyID        *uint64
}

// CreatePartyInput holds the data to create an owner or a tenant
type CreatePartyInput struct {
	Name                  string
	InternalCode          *string
	Occupation            *string
	MaritalStatus         domain.MaritalStatus
	CPF                   *string
	CNPJ                  *string
	StateRegistration     *string
	MunicipalRegistration *string
	Addresses             []AddressInput
	Contacts              []ContactInput
}

// CreateAgencyInput holds the data to create an agency
type CreateAgencyInput struct {
	TradeName             string
	LegalName             string
	CNPJ                  string
	StateRegistration     *string
	MunicipalRegistration *string
	LicenseNumber         *string
	Addresses             []AddressInput
	Contacts              []ContactInput
}

// CreateLeaseInput holds the data to create a lease
type CreateLeaseInput struct {
	ContractNumber   string
	StartDate        time.Time
	EndDate          time.Time
	RentAmount       float64
	CondoFee         float64
	PropertyTax      float64
	ExtraCharges     float64
	CommissionAmount float64
	RentDueDay       int
	TaxDueDay        int
	CondoDueDay      int
	PropertyID       uint64
	OwnerID          uint64
	TenantID         uint64
	TypeID           uint64
}

// CreateUserInput holds the data to create a user. Password must already be hashed.
type CreateUserInput struct {
	Name      string
	Email     string
	Password  string
	Gender    domain.Gender
	Role      domain.Role
	BirthDate *time.Time
}

// ClientCounts holds the number of client-side records created in a window
type ClientCounts struct {
	Owners     int64
	Tenants    int64
	Agencies   int64
	Properties int64
}

// GroupCount is a labelled count produced by a grouped query
type GroupCount struct {
	Name  string
	Count int64
}

// Store defines the interface for database operations
type Store interface {
	// Ping checks that the database is reachable
	Ping(ctx context.Context) error

	// =============================================================================
	// Listing
	// List* run a pushed-down query and return one page plus the unpaginated count.
	// FindAll* return the whole filtered collection with relations loaded, unsorted.
	// =============================================================================

	ListProperties(ctx context.Context, q ListQuery) ([]schema.Property, int64, error)
	FindAllProperties(ctx context.Context, q ListQuery) ([]schema.Property, error)
	ListOwners(ctx context.Context, q ListQuery) ([]schema.Owner, int64, error)
	FindAllOwners(ctx context.Context, q ListQuery) ([]schema.Owner, error)
	ListTenants(ctx context.Context, q ListQuery) ([]schema.Tenant, int64, error)
	FindAllTenants(ctx context.Context, q ListQuery) ([]schema.Tenant, error)
	ListAgencies(ctx context.Context, q ListQuery) ([]schema.Agency, int64, error)
	FindAllAgencies(ctx context.Context, q ListQuery) ([]schema.Agency, error)
	ListLeases(ctx context.Context, q ListQuery) ([]schema.Lease, int64, error)
	FindAllLeases(ctx context.Context, q ListQuery) ([]schema.Lease, error)
	ListUsers(ctx context.Context, q ListQuery) ([]schema.User, int64, error)
	FindAllUsers(ctx context.Context, q ListQuery) ([]schema.User, error)
	ListPropertyTypes(ctx context.Context, q ListQuery) ([]schema.PropertyType, int64, error)
	FindAllPropertyTypes(ctx context.Context, q ListQuery) ([]schema.PropertyType, error)

	// =============================================================================
	// Entities
	// Get* return domain.ErrNotFound when no live row matches the id.
	// Create* return domain.ErrConflict on business-key uniqueness violations.
	// =============================================================================

	GetProperty(ctx context.Context, id uint64) (*schema.Property, error)
	GetOwner(ctx context.Context, id uint64) (*schema.Owner, error)
	GetTenant(ctx context.Context, id uint64) (*schema.Tenant, error)
	GetAgency(ctx context.Context, id uint64) (*schema.Agency, error)
	GetLease(ctx context.Context, id uint64) (*schema.Lease, error)
	GetUser(ctx context.Context, id uint64) (*schema.User, error)
	GetPropertyType(ctx context.Context, id uint64) (*schema.PropertyType, error)

	// CreateProperty creates a property, its address link and its first value snapshot atomically
	CreateProperty(ctx context.Context, input CreatePropertyInput) (*schema.Property, error)
	// UpdateProperty updates the scalar fields of a live property
	UpdateProperty(ctx context.Context, id uint64, input UpdatePropertyInput) (*schema.Property, error)
	// AddPropertyValue appends a value snapshot to a live property
	AddPropertyValue(ctx context.Context, propertyID uint64, input PropertyValueInput) (*schema.PropertyValue, error)
	CreateOwner(ctx context.Context, input CreatePartyInput) (*schema.Owner, error)
	CreateTenant(ctx context.Context, input CreatePartyInput) (*schema.Tenant, error)
	CreateAgency(ctx context.Context, input CreateAgencyInput) (*schema.Agency, error)
	CreateLease(ctx context.Context, input CreateLeaseInput) (*schema.Lease, error)
	CreatePropertyType(ctx context.Context, description string) (*schema.PropertyType, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*schema.User, error)

	// SoftDelete marks a live entity and its declared dependents as deleted
	SoftDelete(ctx context.Context, entity Entity, id uint64) error
	// Restore clears the deletion of an entity and of the dependents deleted with it
	Restore(ctx context.Context, entity Entity, id uint64) error

	// =============================================================================
	// Dashboard
	// =============================================================================

	// GetPropertiesCreatedBetween returns live properties created in [start, end]
	// with type, agency, owner, values, documents and addresses loaded
	GetPropertiesCreatedBetween(ctx context.Context, start, end time.Time) ([]schema.Property, error)
	// CountClientsCreatedBetween counts live owners, tenants, agencies and properties created in [start, end]
	CountClientsCreatedBetween(ctx context.Context, start, end time.Time) (*ClientCounts, error)
	// CountPropertiesByAgency counts live properties created in [start, end] per agency trade name
	CountPropertiesByAgency(ctx context.Context, start, end time.Time) ([]GroupCount, error)
}
