package schema

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/domain"
)

// PropertyType represents the property_types table
type PropertyType struct {
	ID          uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Description string         `gorm:"column:description;not null;uniqueIndex" json:"description"`
	CreatedAt   time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

// TableName specifies the table name for the PropertyType model
func (PropertyType) TableName() string {
	return "property_types"
}

// Property represents the properties table
type Property struct {
	ID              uint64            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title           string            `gorm:"column:title;not null" json:"title"`
	Bedrooms        int               `gorm:"column:bedrooms;not null;default:0" json:"bedrooms"`
	Bathrooms       int               `gorm:"column:bathrooms;not null;default:0" json:"bathrooms"`
	HalfBathrooms   int               `gorm:"column:half_bathrooms;not null;default:0" json:"half_bathrooms"`
	GarageSpaces    int               `gorm:"column:garage_spaces;not null;default:0" json:"garage_spaces"`
	AreaTotal       float64           `gorm:"column:area_total;not null;default:0" json:"area_total"`
	AreaBuilt       float64           `gorm:"column:area_built;not null;default:0" json:"area_built"`
	FrontageWidth   float64           `gorm:"column:frontage_width;not null;default:0" json:"frontage_width"`
	Furnished       bool              `gorm:"column:furnished;not null;default:false" json:"furnished"`
	FloorNumber     int               `gorm:"column:floor_number;not null;default:0" json:"floor_number"`
	TaxRegistration *string           `gorm:"column:tax_registration" json:"tax_registration,omitempty"`
	Notes           *string           `gorm:"column:notes" json:"notes,omitempty"`
	OwnerID         uint64            `gorm:"column:owner_id;not null;index" json:"owner_id"`
	TypeID          uint64            `gorm:"column:type_id;not null;index" json:"type_id"`
	AgencyID        *uint64           `gorm:"column:agency_id;index" json:"agency_id,omitempty"`
	Owner           *Owner            `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Type            *PropertyType     `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	Agency          *Agency           `gorm:"foreignKey:AgencyID" json:"agency,omitempty"`
	Addresses       []PropertyAddress `gorm:"foreignKey:PropertyID" json:"addresses,omitempty"`
	Documents       []Document        `gorm:"foreignKey:PropertyID" json:"documents,omitempty"`
	Values          []PropertyValue   `gorm:"foreignKey:PropertyID" json:"values,omitempty"`
	Favorites       []Favorite        `gorm:"foreignKey:PropertyID" json:"-"`
	CreatedAt       time.Time         `gorm:"column:created_at;not null;index" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;not null" json:"updated_at"`
	DeletedAt       gorm.DeletedAt    `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

// TableName specifies the table name for the Property model
func (Property) TableName() string {
	return "properties"
}

// LatestValue returns the most recent value snapshot, or nil when the property has none.
// Values are compared by reference date with creation time as tie-breaker, so the
// result does not depend on the order the snapshots were loaded in.
func (p *Property) LatestValue() *PropertyValue {
	var latest *PropertyValue
	for i := range p.Values {
		v := &p.Values[i]
		if latest == nil || v.isMoreRecentThan(latest) {
			latest = v
		}
	}
	return latest
}

// PropertyValue represents the property_values table - point-in-time financial snapshots
type PropertyValue struct {
	ID            uint64                `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PropertyID    uint64                `gorm:"column:property_id;not null;index" json:"property_id"`
	PurchaseValue float64               `gorm:"column:purchase_value;not null;default:0" json:"purchase_value"`
	RentalValue   float64               `gorm:"column:rental_value;not null;default:0" json:"rental_value"`
	CondoFee      float64               `gorm:"column:condo_fee;not null;default:0" json:"condo_fee"`
	PropertyTax   float64               `gorm:"column:property_tax;not null;default:0" json:"property_tax"`
	Status        domain.PropertyStatus `gorm:"column:status;type:varchar(16);not null" json:"status"`
	ReferenceDate time.Time             `gorm:"column:reference_date;not null;index" json:"reference_date"`
	Notes         *string               `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt     time.Time             `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;not null" json:"updated_at"`
	DeletedAt     gorm.DeletedAt        `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

// TableName specifies the table name for the PropertyValue model
func (PropertyValue) TableName() string {
	return "property_values"
}

func (v *PropertyValue) isMoreRecentThan(other *PropertyValue) bool {
	if !v.ReferenceDate.Equal(other.ReferenceDate) {
		return v.ReferenceDate.After(other.ReferenceDate)
	}
	if !v.CreatedAt.Equal(other.CreatedAt) {
		return v.CreatedAt.After(other.CreatedAt)
	}
	return v.ID > other.ID
}

// Document represents the documents table - file metadata attached to a property
type Document struct {
	ID           uint64              `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PropertyID   uint64              `gorm:"column:property_id;not null;index" json:"property_id"`
	FilePath     string              `gorm:"column:file_path;not null" json:"file_path"`
	FileType     string              `gorm:"column:file_type;not null" json:"file_type"`
	DocumentType domain.DocumentType `gorm:"column:document_type;type:varchar(32);not null" json:"document_type"`
	Description  *string             `gorm:"column:description" json:"description,omitempty"`
	// Metadata holds storage-specific attributes (size, checksum, uploader) as reported by the upload service
	Metadata  datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

// TableName specifies the table name for the Document model
func (Document) TableName() string {
	return "documents"
}

// Lease represents the leases table - rental contracts
type Lease struct {
	ID               uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ContractNumber   string         `gorm:"column:contract_number;not null;uniqueIndex" json:"contract_number"`
	StartDate        datatypes.Date `gorm:"column:start_date;not null" json:"start_date"`
	EndDate          datatypes.Date `gorm:"column:end_date;not null" json:"end_date"`
	RentAmount       float64        `gorm:"column:rent_amount;not null;default:0" json:"rent_amount"`
	CondoFee         float64        `gorm:"column:condo_fee;not null;default:0" json:"condo_fee"`
	PropertyTax      float64        `gorm:"column:property_tax;not null;default:0" json:"property_tax"`
	ExtraCharges     float64        `gorm:"column:extra_charges;not null;default:0" json:"extra_charges"`
	CommissionAmount float64        `gorm:"column:commission_amount;not null;default:0" json:"commission_amount"`
	RentDueDay       int            `gorm:"column:rent_due_day;not null" json:"rent_due_day"`
	TaxDueDay        int            `gorm:"column:tax_due_day" json:"tax_due_day"`
	CondoDueDay      int            `gorm:"column:condo_due_day" json:"condo_due_day"`
	PropertyID       uint64         `gorm:"column:property_id;not null;index" json:"property_id"`
	OwnerID          uint64         `gorm:"column:owner_id;not null;index" json:"owner_id"`
	TenantID         uint64         `gorm:"column:tenant_id;not null;index" json:"tenant_id"`
	TypeID           uint64         `gorm:"column:type_id;not null;index" json:"type_id"`
	Property         *Property      `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Owner            *Owner         `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Tenant           *Tenant        `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Type             *PropertyType  `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	CreatedAt        time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

// TableName specifies the table name for the Lease model
func (Lease) TableName() string {
	return "leases"
}

// All returns every model in dependency order, for AutoMigrate
func All() []any {
	return []any{
		&User{},
		&PropertyType{},
		&Address{},
		&Contact{},
		&Owner{},
		&Tenant{},
		&Agency{},
		&Property{},
		&PropertyValue{},
		&Document{},
		&Lease{},
		&Favorite{},
		&PropertyAddress{},
		&OwnerAddress{},
		&TenantAddress{},
		&AgencyAddress{},
		&OwnerContact{},
		&TenantContact{},
		&AgencyContact{},
	}
}
