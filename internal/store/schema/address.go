package schema

import (
	"time"

	"gorm.io/gorm"
)

// Address represents the addresses table - shared by properties, owners, tenants and agencies
type Address struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ZipCode    string    `gorm:"column:zip_code" json:"zip_code"`
	Street     string    `gorm:"column:street" json:"street"`
	Number     string    `gorm:"column:number" json:"number"`
	Complement *string   `gorm:"column:complement" json:"complement,omitempty"`
	District   string    `gorm:"column:district" json:"district"`
	City       string    `gorm:"column:city" json:"city"`
	State      string    `gorm:"column:state" json:"state"`
	Country    string    `gorm:"column:country" json:"country"`
	CreatedAt  time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for the Address model
func (Address) TableName() string {
	return "addresses"
}

// Contact represents the contacts table - shared by owners, tenants and agencies
type Contact struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Contact   string    `gorm:"column:contact" json:"contact"`
	Phone     *string   `gorm:"column:phone" json:"phone,omitempty"`
	Cellphone *string   `gorm:"column:cellphone" json:"cellphone,omitempty"`
	Email     *string   `gorm:"column:email" json:"email,omitempty"`
	Whatsapp  bool      `gorm:"column:whatsapp;not null;default:false" json:"whatsapp"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for the Contact model
func (Contact) TableName() string {
	return "contacts"
}

// Join tables. Each row is soft-deletable independently of its parent and of the
// referenced address or contact.

// PropertyAddress links a property to an address
type PropertyAddress struct {
	ID         uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PropertyID uint64         `gorm:"column:property_id;not null;index" json:"property_id"`
	AddressID  uint64         `gorm:"column:address_id;not null;index" json:"address_id"`
	Address    *Address       `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	CreatedAt  time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

// TableName specifies the table name for the PropertyAddress model
func (PropertyAddress) TableName() string {
	return "property_addresses"
}

// OwnerAddress links an owner to an address
type OwnerAddress struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OwnerID   uint64         `gorm:"column:owner_id;not null;index" json:"owner_id"`
	AddressID uint64         `gorm:"column:address_id;not null;index" json:"address_id"`
	Address   *Address       `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

// TableName specifies the table name for the OwnerAddress model
func (OwnerAddress) TableName() string {
	return "owner_addresses"
}

// TenantAddress links a tenant to an address
type TenantAddress struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TenantID  uint64         `gorm:"column:tenant_id;not null;index" json:"tenant_id"`
	AddressID uint64         `gorm:"column:address_id;not null;index" json:"address_id"`
	Address   *Address       `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

// TableName specifies the table name for the TenantAddress model
func (TenantAddress) TableName() string {
	return "tenant_addresses"
}

// AgencyAddress links an agency to an address
type AgencyAddress struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AgencyID  uint64         `gorm:"column:agency_id;not null;index" json:"agency_id"`
	AddressID uint64         `gorm:"column:address_id;not null;index" json:"address_id"`
	Address   *Address       `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

// TableName specifies the table name for the AgencyAddress model
func (AgencyAddress) TableName() string {
	return "agency_addresses"
}

// OwnerContact links an owner to a contact
type OwnerContact struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OwnerID   uint64         `gorm:"column:owner_id;not null;index" json:"owner_id"`
	ContactID uint64         `gorm:"column:contact_id;not null;index" json:"contact_id"`
	Contact   *Contact       `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

// TableName specifies the table name for the OwnerContact model
func (OwnerContact) TableName() string {
	return "owner_contacts"
}

// TenantContact links a tenant to a contact
type TenantContact struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TenantID  uint64         `gorm:"column:tenant_id;not null;index" json:"tenant_id"`
	ContactID uint64         `gorm:"column:contact_id;not null;index" json:"contact_id"`
	Contact   *Contact       `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

// TableName specifies the table name for the TenantContact model
func (TenantContact) TableName() string {
	return "tenant_contacts"
}

// AgencyContact links an agency to a contact
type AgencyContact struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AgencyID  uint64         `gorm:"column:agency_id;not null;index" json:"agency_id"`
	ContactID uint64         `gorm:"column:contact_id;not null;index" json:"contact_id"`
	Contact   *Contact       `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

// TableName specifies the table name for the AgencyContact model
func (AgencyContact) TableName() string {
	return "agency_contacts"
}
