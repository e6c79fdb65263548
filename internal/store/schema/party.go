package schema

import (
	"time"

	"gorm.io/gorm"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/domain"
)

// Owner represents the owners table - people or organizations owning properties
type Owner struct {
	ID                    uint64               `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name                  string               `gorm:"column:name;not null" json:"name"`
	InternalCode          *string              `gorm:"column:internal_code" json:"internal_code,omitempty"`
	Occupation            *string              `gorm:"column:occupation" json:"occupation,omitempty"`
	MaritalStatus         domain.MaritalStatus `gorm:"column:marital_status;type:varchar(16)" json:"marital_status,omitempty"`
	CPF                   *string              `gorm:"column:cpf;uniqueIndex" json:"cpf,omitempty"`
	CNPJ                  *string              `gorm:"column:cnpj;uniqueIndex" json:"cnpj,omitempty"`
	StateRegistration     *string              `gorm:"column:state_registration" json:"state_registration,omitempty"`
	MunicipalRegistration *string              `gorm:"column:municipal_registration" json:"municipal_registration,omitempty"`
	Addresses             []OwnerAddress       `gorm:"foreignKey:OwnerID" json:"addresses,omitempty"`
	Contacts              []OwnerContact       `gorm:"foreignKey:OwnerID" json:"contacts,omitempty"`
	CreatedAt             time.Time            `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt             time.Time            `gorm:"column:updated_at;not null" json:"updated_at"`
	DeletedAt             gorm.DeletedAt       `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

// TableName specifies the table name for the Owner model
func (Owner) TableName() string {
	return "owners"
}

// Tenant represents the tenants table - people or organizations renting properties
type Tenant struct {
	ID                    uint64               `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name                  string               `gorm:"column:name;not null" json:"name"`
	InternalCode          *string              `gorm:"column:internal_code" json:"internal_code,omitempty"`
	Occupation            *string              `gorm:"column:occupation" json:"occupation,omitempty"`
	MaritalStatus         domain.MaritalStatus `gorm:"column:marital_status;type:varchar(16)" json:"marital_status,omitempty"`
	CPF                   *string              `gorm:"column:cpf;uniqueIndex" json:"cpf,omitempty"`
	CNPJ                  *string              `gorm:"column:cnpj;uniqueIndex" json:"cnpj,omitempty"`
	StateRegistration     *string              `gorm:"column:state_registration" json:"state_registration,omitempty"`
	MunicipalRegistration *string              `gorm:"column:municipal_registration" json:"municipal_registration,omitempty"`
	Addresses             []TenantAddress      `gorm:"foreignKey:TenantID" json:"addresses,omitempty"`
	Contacts              []TenantContact      `gorm:"foreignKey:TenantID" json:"contacts,omitempty"`
	CreatedAt             time.Time            `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt             time.Time            `gorm:"column:updated_at;not null" json:"updated_at"`
	DeletedAt             gorm.DeletedAt       `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

// TableName specifies the table name for the Tenant model
func (Tenant) TableName() string {
	return "tenants"
}

// Agency represents the agencies table - real-estate agencies managing properties
type Agency struct {
	ID                    uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TradeName             string          `gorm:"column:trade_name;not null" json:"trade_name"`
	LegalName             string          `gorm:"column:legal_name;not null" json:"legal_name"`
	CNPJ                  string          `gorm:"column:cnpj;not null;uniqueIndex" json:"cnpj"`
	StateRegistration     *string         `gorm:"column:state_registration" json:"state_registration,omitempty"`
	MunicipalRegistration *string         `gorm:"column:municipal_registration" json:"municipal_registration,omitempty"`
	LicenseNumber         *string         `gorm:"column:license_number" json:"license_number,omitempty"`
	Addresses             []AgencyAddress `gorm:"foreignKey:AgencyID" json:"addresses,omitempty"`
	Contacts              []AgencyContact `gorm:"foreignKey:AgencyID" json:"contacts,omitempty"`
	CreatedAt             time.Time       `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"column:updated_at;not null" json:"updated_at"`
	DeletedAt             gorm.DeletedAt  `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

// TableName specifies the table name for the Agency model
func (Agency) TableName() string {
	return "agencies"
}
