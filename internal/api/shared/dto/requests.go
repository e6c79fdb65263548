package dto

import (
	"fmt"
	"strings"
	"time"

	apierrors "github.com/Nairim-holding/api-nairim-v2-sub000/internal/api/shared/errors"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/domain"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/store"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/types"
)

const dateLayout = "2006-01-02"

// AddressRequest represents an address in a request body
type AddressRequest struct {
	ZipCode    string  `json:"zip_code"`
	Street     string  `json:"street"`
	Number     string  `json:"number"`
	Complement *string `json:"complement"`
	District   string  `json:"district"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	Country    string  `json:"country"`
}

// Validate validates the address
func (r *AddressRequest) Validate() error {
	if strings.TrimSpace(r.Street) == "" {
		return apierrors.NewValidationError("address.street is required")
	}
	if strings.TrimSpace(r.City) == "" {
		return apierrors.NewValidationError("address.city is required")
	}
	return nil
}

func (r *AddressRequest) toInput() store.AddressInput {
	return store.AddressInput{
		ZipCode:    r.ZipCode,
		Street:     r.Street,
		Number:     r.Number,
		Complement: types.NilIfBlank(r.Complement),
		District:   r.District,
		City:       r.City,
		State:      r.State,
		Country:    r.Country,
	}
}

// ContactRequest represents a contact in a request body
type ContactRequest struct {
	Contact   string  `json:"contact"`
	Phone     *string `json:"phone"`
	Cellphone *string `json:"cellphone"`
	Email     *string `json:"email"`
	Whatsapp  bool    `json:"whatsapp"`
}

func (r *ContactRequest) toInput() store.ContactInput {
	return store.ContactInput{
		Contact:   r.Contact,
		Phone:     types.NilIfBlank(r.Phone),
		Cellphone: types.NilIfBlank(r.Cellphone),
		Email:     types.NilIfBlank(r.Email),
		Whatsapp:  r.Whatsapp,
	}
}

// PropertyValueRequest represents a financial snapshot of a property
type PropertyValueRequest struct {
	PurchaseValue float64               `json:"purchase_value"`
	RentalValue   float64               `json:"rental_value"`
	CondoFee      float64               `json:"condo_fee"`
	PropertyTax   float64               `json:"property_tax"`
	Status        domain.PropertyStatus `json:"status"`
	ReferenceDate *time.Time            `json:"reference_date"`
	Notes         *string               `json:"notes"`
}

// Validate validates the snapshot
func (r *PropertyValueRequest) Validate() error {
	if !domain.IsValidPropertyStatus(r.Status) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid status: %q", r.Status))
	}
	if r.PurchaseValue < 0 || r.RentalValue < 0 || r.CondoFee < 0 || r.PropertyTax < 0 {
		return apierrors.NewValidationError("values must not be negative")
	}
	return nil
}

// ToInput converts the request to a store input
func (r *PropertyValueRequest) ToInput() store.PropertyValueInput {
	in := store.PropertyValueInput{
		PurchaseValue: r.PurchaseValue,
		RentalValue:   r.RentalValue,
		CondoFee:      r.CondoFee,
		PropertyTax:   r.PropertyTax,
		Status:        r.Status,
		Notes:         r.Notes,
	}
	if r.ReferenceDate != nil {
		in.ReferenceDate = r.ReferenceDate.UTC()
	}
	return in
}

// CreatePropertyRequest represents the request body for creating a property
type CreatePropertyRequest struct {
	Title           string               `json:"title"`
	Bedrooms        int                  `json:"bedrooms"`
	Bathrooms       int                  `json:"bathrooms"`
	HalfBathrooms   int                  `json:"half_bathrooms"`
	GarageSpaces    int                  `json:"garage_spaces"`
	AreaTotal       float64              `json:"area_total"`
	AreaBuilt       float64              `json:"area_built"`
	FrontageWidth   float64              `json:"frontage_width"`
	Furnished       bool                 `json:"furnished"`
	FloorNumber     int                  `json:"floor_number"`
	TaxRegistration *string              `json:"tax_registration"`
	Notes           *string              `json:"notes"`
	OwnerID         uint64               `json:"owner_id"`
	TypeID          uint64               `json:"type_id"`
	AgencyID        *uint64              `json:"agency_id"`
	Address         AddressRequest       `json:"address"`
	Value           PropertyValueRequest `json:"value"`
}

// Validate validates the request body
func (r *CreatePropertyRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return apierrors.NewValidationError("title is required")
	}
	if r.OwnerID == 0 {
		return apierrors.NewValidationError("owner_id is required")
	}
	if r.TypeID == 0 {
		return apierrors.NewValidationError("type_id is required")
	}
	if r.Bedrooms < 0 || r.Bathrooms < 0 || r.HalfBathrooms < 0 || r.GarageSpaces < 0 {
		return apierrors.NewValidationError("room counts must not be negative")
	}
	if err := r.Address.Validate(); err != nil {
		return err
	}
	return r.Value.Validate()
}

// ToInput converts the request to a store input
func (r *CreatePropertyRequest) ToInput() store.CreatePropertyInput {
	return store.CreatePropertyInput{
		Title:           strings.TrimSpace(r.Title),
		Bedrooms:        r.Bedrooms,
		Bathrooms:       r.Bathrooms,
		HalfBathrooms:   r.HalfBathrooms,
		GarageSpaces:    r.GarageSpaces,
		AreaTotal:       r.AreaTotal,
		AreaBuilt:       r.AreaBuilt,
		FrontageWidth:   r.FrontageWidth,
		Furnished:       r.Furnished,
		FloorNumber:     r.FloorNumber,
		TaxRegistration: types.NilIfBlank(r.TaxRegistration),
		Notes:           r.Notes,
		OwnerID:         r.OwnerID,
		TypeID:          r.TypeID,
		AgencyID:        r.AgencyID,
		Address:         r.Address.toInput(),
		Value:           r.Value.ToInput(),
	}
}

// UpdatePropertyRequest represents the request body for updating a property.
// Omitted fields are left untouched.
type UpdatePropertyRequest struct {
	Title           *string  `json:"title"`
	Bedrooms        *int     `json:"bedrooms"`
	Bathrooms       *int     `json:"bathrooms"`
	HalfBathrooms   *int     `json:"half_bathrooms"`
	GarageSpaces    *int     `json:"garage_spaces"`
	AreaTotal       *float64 `json:"area_total"`
	AreaBuilt       *float64 `json:"area_built"`
	FrontageWidth   *float64 `json:"frontage_width"`
	Furnished       *bool    `json:"furnished"`
	FloorNumber     *int     `json:"floor_number"`
	TaxRegistration *string  `json:"tax_registration"`
	Notes           *string  `json:"notes"`
	AgencyID        *uint64  `json:"agency_id"`
}

// Validate validates the request body
func (r *UpdatePropertyRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return apierrors.NewValidationError("title must not be empty")
	}
	for _, n := range []*int{r.Bedrooms, r.Bathrooms, r.HalfBathrooms, r.GarageSpaces} {
		if n != nil && *n < 0 {
			return apierrors.NewValidationError("room counts must not be negative")
		}
	}
	return nil
}

// ToInput converts the request to a store input
func (r *UpdatePropertyRequest) ToInput() store.UpdatePropertyInput {
	return store.UpdatePropertyInput{
		Title:           r.Title,
		Bedrooms:        r.Bedrooms,
		Bathrooms:       r.Bathrooms,
		HalfBathrooms:   r.HalfBathrooms,
		GarageSpaces:    r.GarageSpaces,
		AreaTotal:       r.AreaTotal,
		AreaBuilt:       r.AreaBuilt,
		FrontageWidth:   r.FrontageWidth,
		Furnished:       r.Furnished,
		FloorNumber:     r.FloorNumber,
		TaxRegistration: r.TaxRegistration,
		Notes:           r.Notes,
		AgencyID:        r.AgencyID,
	}
}

// CreatePartyRequest represents the request body for creating an owner or a tenant
type CreatePartyRequest struct {
	Name                  string               `json:"name"`
	InternalCode          *string              `json:"internal_code"`
	Occupation            *string              `json:"occupation"`
	MaritalStatus         domain.MaritalStatus `json:"marital_status"`
	CPF                   *string              `json:"cpf"`
	CNPJ                  *string              `json:"cnpj"`
	StateRegistration     *string              `json:"state_registration"`
	MunicipalRegistration *string              `json:"municipal_registration"`
	Addresses             []AddressRequest     `json:"addresses"`
	Contacts              []ContactRequest     `json:"contacts"`
}

// Validate validates the request body
func (r *CreatePartyRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apierrors.NewValidationError("name is required")
	}
	for i := range r.Addresses {
		if err := r.Addresses[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ToInput converts the request to a store input
func (r *CreatePartyRequest) ToInput() store.CreatePartyInput {
	in := store.CreatePartyInput{
		Name:                  strings.TrimSpace(r.Name),
		InternalCode:          types.NilIfBlank(r.InternalCode),
		Occupation:            types.NilIfBlank(r.Occupation),
		MaritalStatus:         r.MaritalStatus,
		CPF:                   types.NilIfBlank(r.CPF),
		CNPJ:                  types.NilIfBlank(r.CNPJ),
		StateRegistration:     types.NilIfBlank(r.StateRegistration),
		MunicipalRegistration: types.NilIfBlank(r.MunicipalRegistration),
	}
	for i := range r.Addresses {
		in.Addresses = append(in.Addresses, r.Addresses[i].toInput())
	}
	for i := range r.Contacts {
		in.Contacts = append(in.Contacts, r.Contacts[i].toInput())
	}
	return in
}

// CreateAgencyRequest represents the request body for creating an agency
type CreateAgencyRequest struct {
	TradeName             string           `json:"trade_name"`
	LegalName             string           `json:"legal_name"`
	CNPJ                  string           `json:"cnpj"`
	StateRegistration     *string          `json:"state_registration"`
	MunicipalRegistration *string          `json:"municipal_registration"`
	LicenseNumber         *string          `json:"license_number"`
	Addresses             []AddressRequest `json:"addresses"`
	Contacts              []ContactRequest `json:"contacts"`
}

// Validate validates the request body
func (r *CreateAgencyRequest) Validate() error {
	if strings.TrimSpace(r.TradeName) == "" {
		return apierrors.NewValidationError("trade_name is required")
	}
	if strings.TrimSpace(r.LegalName) == "" {
		return apierrors.NewValidationError("legal_name is required")
	}
	if strings.TrimSpace(r.CNPJ) == "" {
		return apierrors.NewValidationError("cnpj is required")
	}
	for i := range r.Addresses {
		if err := r.Addresses[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ToInput converts the request to a store input
func (r *CreateAgencyRequest) ToInput() store.CreateAgencyInput {
	in := store.CreateAgencyInput{
		TradeName:             strings.TrimSpace(r.TradeName),
		LegalName:             strings.TrimSpace(r.LegalName),
		CNPJ:                  strings.TrimSpace(r.CNPJ),
		StateRegistration:     types.NilIfBlank(r.StateRegistration),
		MunicipalRegistration: types.NilIfBlank(r.MunicipalRegistration),
		LicenseNumber:         types.NilIfBlank(r.LicenseNumber),
	}
	for i := range r.Addresses {
		in.Addresses = append(in.Addresses, r.Addresses[i].toInput())
	}
	for i := range r.Contacts {
		in.Contacts = append(in.Contacts, r.Contacts[i].toInput())
	}
	return in
}

// CreateLeaseRequest represents the request body for creating a lease.
// Dates are calendar days (YYYY-MM-DD).
type CreateLeaseRequest struct {
	ContractNumber   string  `json:"contract_number"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	RentAmount       float64 `json:"rent_amount"`
	CondoFee         float64 `json:"condo_fee"`
	PropertyTax      float64 `json:"property_tax"`
	ExtraCharges     float64 `json:"extra_charges"`
	CommissionAmount float64 `json:"commission_amount"`
	RentDueDay       int     `json:"rent_due_day"`
	TaxDueDay        int     `json:"tax_due_day"`
	CondoDueDay      int     `json:"condo_due_day"`
	PropertyID       uint64  `json:"property_id"`
	OwnerID          uint64  `json:"owner_id"`
	TenantID         uint64  `json:"tenant_id"`
	TypeID           uint64  `json:"type_id"`
}

// Validate validates the request body
func (r *CreateLeaseRequest) Validate() error {
	if strings.TrimSpace(r.ContractNumber) == "" {
		return apierrors.NewValidationError("contract_number is required")
	}
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return apierrors.NewValidationError("start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return apierrors.NewValidationError("end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return apierrors.NewValidationError("end_date must not be before start_date")
	}
	if r.RentDueDay < 1 || r.RentDueDay > 31 {
		return apierrors.NewValidationError("rent_due_day must be between 1 and 31")
	}
	if r.PropertyID == 0 || r.OwnerID == 0 || r.TenantID == 0 || r.TypeID == 0 {
		return apierrors.NewValidationError("property_id, owner_id, tenant_id and type_id are required")
	}
	return nil
}

// ToInput converts a validated request to a store input
func (r *CreateLeaseRequest) ToInput() store.CreateLeaseInput {
	start, _ := time.Parse(dateLayout, r.StartDate)
	end, _ := time.Parse(dateLayout, r.EndDate)
	return store.CreateLeaseInput{
		ContractNumber:   strings.TrimSpace(r.ContractNumber),
		StartDate:        start,
		EndDate:          end,
		RentAmount:       r.RentAmount,
		CondoFee:         r.CondoFee,
		PropertyTax:      r.PropertyTax,
		ExtraCharges:     r.ExtraCharges,
		CommissionAmount: r.CommissionAmount,
		RentDueDay:       r.RentDueDay,
		TaxDueDay:        r.TaxDueDay,
		CondoDueDay:      r.CondoDueDay,
		PropertyID:       r.PropertyID,
		OwnerID:          r.OwnerID,
		TenantID:         r.TenantID,
		TypeID:           r.TypeID,
	}
}

// CreatePropertyTypeRequest represents the request body for creating a property type
type CreatePropertyTypeRequest struct {
	Description string `json:"description"`
}

// Validate validates the request body
func (r *CreatePropertyTypeRequest) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return apierrors.NewValidationError("description is required")
	}
	return nil
}
