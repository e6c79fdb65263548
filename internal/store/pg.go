package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/domain"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/store/schema"
	"gorm.io/datatypes"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new store backed by a gorm connection.
// The connection is usually PostgreSQL; any dialector with an error translator works.
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// AutoMigrate creates or updates every table of the schema.
// Intended for tests and local development only.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(schema.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 20
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// Ping checks that the database is reachable
func (s *pgStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// translateError maps driver errors to domain errors. It must receive the raw
// error returned by gorm, before any wrapping.
func (s *pgStore) translateError(err error) error {
	if err == nil {
		return nil
	}
	if translator, ok := s.db.Dialector.(gorm.ErrorTranslator); ok {
		err = translator.Translate(err)
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	}
	return err
}

// getByID loads one live row of T by primary key with the given relations
func getByID[T any](ctx context.Context, db *gorm.DB, id uint64, relations func(*gorm.DB) *gorm.DB) (*T, error) {
	var out T
	tx := db.WithContext(ctx)
	if relations != nil {
		tx = tx.Scopes(relations)
	}
	if err := tx.First(&out, id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProperty retrieves a live property with its relations
func (s *pgStore) GetProperty(ctx context.Context, id uint64) (*schema.Property, error) {
	p, err := getByID[schema.Property](ctx, s.db, id, propertyDetailRelations)
	if err != nil {
		return nil, fmt.Errorf("failed to get property %d: %w", id, s.translateError(err))
	}
	return p, nil
}

// GetOwner retrieves a live owner with addresses and contacts
func (s *pgStore) GetOwner(ctx context.Context, id uint64) (*schema.Owner, error) {
	o, err := getByID[schema.Owner](ctx, s.db, id, ownerRelations)
	if err != nil {
		return nil, fmt.Errorf("failed to get owner %d: %w", id, s.translateError(err))
	}
	return o, nil
}

// GetTenant retrieves a live tenant with addresses and contacts
func (s *pgStore) GetTenant(ctx context.Context, id uint64) (*schema.Tenant, error) {
	t, err := getByID[schema.Tenant](ctx, s.db, id, tenantRelations)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant %d: %w", id, s.translateError(err))
	}
	return t, nil
}

// GetAgency retrieves a live agency with addresses and contacts
func (s *pgStore) GetAgency(ctx context.Context, id uint64) (*schema.Agency, error) {
	a, err := getByID[schema.Agency](ctx, s.db, id, agencyRelations)
	if err != nil {
		return nil, fmt.Errorf("failed to get agency %d: %w", id, s.translateError(err))
	}
	return a, nil
}

// GetLease retrieves a live lease with its parties
func (s *pgStore) GetLease(ctx context.Context, id uint64) (*schema.Lease, error) {
	l, err := getByID[schema.Lease](ctx, s.db, id, leaseRelations)
	if err != nil {
		return nil, fmt.Errorf("failed to get lease %d: %w", id, s.translateError(err))
	}
	return l, nil
}

// GetUser retrieves a live user
func (s *pgStore) GetUser(ctx context.Context, id uint64) (*schema.User, error) {
	u, err := getByID[schema.User](ctx, s.db, id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, s.translateError(err))
	}
	return u, nil
}

// GetPropertyType retrieves a live property type
func (s *pgStore) GetPropertyType(ctx context.Context, id uint64) (*schema.PropertyType, error) {
	pt, err := getByID[schema.PropertyType](ctx, s.db, id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get property type %d: %w", id, s.translateError(err))
	}
	return pt, nil
}

func newAddress(in AddressInput) *schema.Address {
	return &schema.Address{
		ZipCode:    in.ZipCode,
		Street:     in.Street,
		Number:     in.Number,
		Complement: in.Complement,
		District:   in.District,
		City:       in.City,
		State:      in.State,
		Country:    in.Country,
	}
}

func newContact(in ContactInput) *schema.Contact {
	return &schema.Contact{
		Contact:   in.Contact,
		Phone:     in.Phone,
		Cellphone: in.Cellphone,
		Email:     in.Email,
		Whatsapp:  in.Whatsapp,
	}
}

func newPropertyValue(propertyID uint64, in PropertyValueInput) *schema.PropertyValue {
	referenceDate := in.ReferenceDate
	if referenceDate.IsZero() {
		referenceDate = time.Now().UTC()
	}
	return &schema.PropertyValue{
		PropertyID:    propertyID,
		PurchaseValue: in.PurchaseValue,
		RentalValue:   in.RentalValue,
		CondoFee:      in.CondoFee,
		PropertyTax:   in.PropertyTax,
		Status:        in.Status,
		ReferenceDate: referenceDate,
		Notes:         in.Notes,
	}
}

// CreateProperty creates a property with its address and initial value in a single transaction
func (s *pgStore) CreateProperty(ctx context.Context, input CreatePropertyInput) (*schema.Property, error) {
	if !domain.IsValidPropertyStatus(input.Value.Status) {
		return nil, fmt.Errorf("invalid property status %q", input.Value.Status)
	}

	property := &schema.Property{
		Title:           input.Title,
		Bedrooms:        input.Bedrooms,
		Bathrooms:       input.Bathrooms,
		HalfBathrooms:   input.HalfBathrooms,
		GarageSpaces:    input.GarageSpaces,
		AreaTotal:       input.AreaTotal,
		AreaBuilt:       input.AreaBuilt,
		FrontageWidth:   input.FrontageWidth,
		Furnished:       input.Furnished,
		FloorNumber:     input.FloorNumber,
		TaxRegistration: input.TaxRegistration,
		Notes:           input.Notes,
		OwnerID:         input.OwnerID,
		TypeID:          input.TypeID,
		AgencyID:        input.AgencyID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(property).Error; err != nil {
			return err
		}

		address := newAddress(input.Address)
		if err := tx.Create(address).Error; err != nil {
			return err
		}

		link := &schema.PropertyAddress{PropertyID: property.ID, AddressID: address.ID}
		if err := tx.Create(link).Error; err != nil {
			return err
		}

		value := newPropertyValue(property.ID, input.Value)
		return tx.Create(value).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create property: %w", s.translateError(err))
	}

	return s.GetProperty(ctx, property.ID)
}

// UpdateProperty updates the scalar fields of a live property
func (s *pgStore) UpdateProperty(ctx context.Context, id uint64, input UpdatePropertyInput) (*schema.Property, error) {
	updates := map[string]interface{}{}
	setIfPresent := func(column string, present bool, value interface{}) {
		if present {
			updates[column] = value
		}
	}
	setIfPresent("title", input.Title != nil, deref(input.Title))
	setIfPresent("bedrooms", input.Bedrooms != nil, deref(input.Bedrooms))
	setIfPresent("bathrooms", input.Bathrooms != nil, deref(input.Bathrooms))
	setIfPresent("half_bathrooms", input.HalfBathrooms != nil, deref(input.HalfBathrooms))
	setIfPresent("garage_spaces", input.GarageSpaces != nil, deref(input.GarageSpaces))
	setIfPresent("area_total", input.AreaTotal != nil, deref(input.AreaTotal))
	setIfPresent("area_built", input.AreaBuilt != nil, deref(input.AreaBuilt))
	setIfPresent("frontage_width", input.FrontageWidth != nil, deref(input.FrontageWidth))
	setIfPresent("furnished", input.Furnished != nil, deref(input.Furnished))
	setIfPresent("floor_number", input.FloorNumber != nil, deref(input.FloorNumber))
	setIfPresent("tax_registration", input.TaxRegistration != nil, input.TaxRegistration)
	setIfPresent("notes", input.Notes != nil, input.Notes)
	setIfPresent("agency_id", input.AgencyID != nil, input.AgencyID)

	if len(updates) > 0 {
		result := s.db.WithContext(ctx).
			Model(&schema.Property{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update property %d: %w", id, s.translateError(result.Error))
		}
		if result.RowsAffected == 0 {
			return nil, fmt.Errorf("failed to update property %d: %w", id, domain.ErrNotFound)
		}
	}

	return s.GetProperty(ctx, id)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// AddPropertyValue appends a value snapshot to a live property
func (s *pgStore) AddPropertyValue(ctx context.Context, propertyID uint64, input PropertyValueInput) (*schema.PropertyValue, error) {
	if !domain.IsValidPropertyStatus(input.Status) {
		return nil, fmt.Errorf("invalid property status %q", input.Status)
	}

	value := newPropertyValue(propertyID, input)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&schema.Property{}).Where("id = ?", propertyID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(value).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add value to property %d: %w", propertyID, s.translateError(err))
	}

	return value, nil
}

// createAddresses creates addresses and returns their ids in input order
func createAddresses(tx *gorm.DB, inputs []AddressInput) ([]uint64, error) {
	ids := make([]uint64, 0, len(inputs))
	for _, in := range inputs {
		address := newAddress(in)
		if err := tx.Create(address).Error; err != nil {
			return nil, err
		}
		ids = append(ids, address.ID)
	}
	return ids, nil
}

// createContacts creates contacts and returns their ids in input order
func createContacts(tx *gorm.DB, inputs []ContactInput) ([]uint64, error) {
	ids := make([]uint64, 0, len(inputs))
	for _, in := range inputs {
		contact := newContact(in)
		if err := tx.Create(contact).Error; err != nil {
			return nil, err
		}
		ids = append(ids, contact.ID)
	}
	return ids, nil
}

// CreateOwner creates an owner with its addresses and contacts in a single transaction
func (s *pgStore) CreateOwner(ctx context.Context, input CreatePartyInput) (*schema.Owner, error) {
	owner := &schema.Owner{
		Name:                  input.Name,
		InternalCode:          input.InternalCode,
		Occupation:            input.Occupation,
		MaritalStatus:         input.MaritalStatus,
		CPF:                   input.CPF,
		CNPJ:                  input.CNPJ,
		StateRegistration:     input.StateRegistration,
		MunicipalRegistration: input.MunicipalRegistration,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(owner).Error; err != nil {
			return err
		}

		addressIDs, err := createAddresses(tx, input.Addresses)
		if err != nil {
			return err
		}
		for _, addressID := range addressIDs {
			if err := tx.Create(&schema.OwnerAddress{OwnerID: owner.ID, AddressID: addressID}).Error; err != nil {
				return err
			}
		}

		contactIDs, err := createContacts(tx, input.Contacts)
		if err != nil {
			return err
		}
		for _, contactID := range contactIDs {
			if err := tx.Create(&schema.OwnerContact{OwnerID: owner.ID, ContactID: contactID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create owner: %w", s.translateError(err))
	}

	return s.GetOwner(ctx, owner.ID)
}

// CreateTenant creates a tenant with its addresses and contacts in a single transaction
func (s *pgStore) CreateTenant(ctx context.Context, input CreatePartyInput) (*schema.Tenant, error) {
	tenant := &schema.Tenant{
		Name:                  input.Name,
		InternalCode:          input.InternalCode,
		Occupation:            input.Occupation,
		MaritalStatus:         input.MaritalStatus,
		CPF:                   input.CPF,
		CNPJ:                  input.CNPJ,
		StateRegistration:     input.StateRegistration,
		MunicipalRegistration: input.MunicipalRegistration,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tenant).Error; err != nil {
			return err
		}

		addressIDs, err := createAddresses(tx, input.Addresses)
		if err != nil {
			return err
		}
		for _, addressID := range addressIDs {
			if err := tx.Create(&schema.TenantAddress{TenantID: tenant.ID, AddressID: addressID}).Error; err != nil {
				return err
			}
		}

		contactIDs, err := createContacts(tx, input.Contacts)
		if err != nil {
			return err
		}
		for _, contactID := range contactIDs {
			if err := tx.Create(&schema.TenantContact{TenantID: tenant.ID, ContactID: contactID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", s.translateError(err))
	}

	return s.GetTenant(ctx, tenant.ID)
}

// CreateAgency creates an agency with its addresses and contacts in a single transaction
func (s *pgStore) CreateAgency(ctx context.Context, input CreateAgencyInput) (*schema.Agency, error) {
	agency := &schema.Agency{
		TradeName:             input.TradeName,
		LegalName:             input.LegalName,
		CNPJ:                  input.CNPJ,
		StateRegistration:     input.StateRegistration,
		MunicipalRegistration: input.MunicipalRegistration,
		LicenseNumber:         input.LicenseNumber,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(agency).Error; err != nil {
			return err
		}

		addressIDs, err := createAddresses(tx, input.Addresses)
		if err != nil {
			return err
		}
		for _, addressID := range addressIDs {
			if err := tx.Create(&schema.AgencyAddress{AgencyID: agency.ID, AddressID: addressID}).Error; err != nil {
				return err
			}
		}

		contactIDs, err := createContacts(tx, input.Contacts)
		if err != nil {
			return err
		}
		for _, contactID := range contactIDs {
			if err := tx.Create(&schema.AgencyContact{AgencyID: agency.ID, ContactID: contactID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agency: %w", s.translateError(err))
	}

	return s.GetAgency(ctx, agency.ID)
}

// CreateLease creates a lease. Duplicate contract numbers are reported as domain.ErrConflict.
func (s *pgStore) CreateLease(ctx context.Context, input CreateLeaseInput) (*schema.Lease, error) {
	lease := &schema.Lease{
		ContractNumber:   input.ContractNumber,
		StartDate:        datatypes.Date(input.StartDate),
		EndDate:          datatypes.Date(input.EndDate),
		RentAmount:       input.RentAmount,
		CondoFee:         input.CondoFee,
		PropertyTax:      input.PropertyTax,
		ExtraCharges:     input.ExtraCharges,
		CommissionAmount: input.CommissionAmount,
		RentDueDay:       input.RentDueDay,
		TaxDueDay:        input.TaxDueDay,
		CondoDueDay:      input.CondoDueDay,
		PropertyID:       input.PropertyID,
		OwnerID:          input.OwnerID,
		TenantID:         input.TenantID,
		TypeID:           input.TypeID,
	}

	if err := s.db.WithContext(ctx).Create(lease).Error; err != nil {
		return nil, fmt.Errorf("failed to create lease: %w", s.translateError(err))
	}

	return s.GetLease(ctx, lease.ID)
}

// CreatePropertyType creates a property type. Duplicate descriptions are reported as domain.ErrConflict.
func (s *pgStore) CreatePropertyType(ctx context.Context, description string) (*schema.PropertyType, error) {
	pt := &schema.PropertyType{Description: description}
	if err := s.db.WithContext(ctx).Create(pt).Error; err != nil {
		return nil, fmt.Errorf("failed to create property type: %w", s.translateError(err))
	}
	return pt, nil
}

// CreateUser creates a user. Duplicate emails are reported as domain.ErrConflict.
func (s *pgStore) CreateUser(ctx context.Context, input CreateUserInput) (*schema.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleDefault
	}

	user := &schema.User{
		Name:      input.Name,
		Email:     input.Email,
		Password:  input.Password,
		Gender:    input.Gender,
		Role:      role,
		BirthDate: input.BirthDate,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", s.translateError(err))
	}
	return user, nil
}
