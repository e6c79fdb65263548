package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/domain"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/query"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/store/schema"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/types"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// seedPropertyType creates a property type with the given description
func seedPropertyType(t *testing.T, s Store, description string) *schema.PropertyType {
	pt, err := s.CreatePropertyType(context.Background(), description)
	require.NoError(t, err)
	return pt
}

// seedOwner creates an owner with one address and one contact
func seedOwner(t *testing.T, s Store, name, city string) *schema.Owner {
	owner, err := s.CreateOwner(context.Background(), CreatePartyInput{
		Name:          name,
		MaritalStatus: domain.MaritalStatusSingle,
		Addresses:     []AddressInput{buildTestAddress("Rua Um", city, "SP")},
		Contacts:      []ContactInput{{Contact: name, Email: types.StringPtr("contato@example.com")}},
	})
	require.NoError(t, err)
	return owner
}

// seedAgency creates an agency with no addresses
func seedAgency(t *testing.T, s Store, tradeName, cnpj string) *schema.Agency {
	agency, err := s.CreateAgency(context.Background(), CreateAgencyInput{
		TradeName: tradeName,
		LegalName: tradeName + " LTDA",
		CNPJ:      cnpj,
	})
	require.NoError(t, err)
	return agency
}

func buildTestAddress(street, city, state string) AddressInput {
	return AddressInput{
		ZipCode:  "01000-000",
		Street:   street,
		Number:   "100",
		District: "Centro",
		City:     city,
		State:    state,
		Country:  "Brasil",
	}
}

// buildTestProperty creates a property input with an initial value snapshot
func buildTestProperty(title string, ownerID, typeID uint64, bedrooms int, city string, status domain.PropertyStatus, rent float64) CreatePropertyInput {
	return CreatePropertyInput{
		Title:     title,
		Bedrooms:  bedrooms,
		Bathrooms: 1,
		AreaTotal: 120,
		OwnerID:   ownerID,
		TypeID:    typeID,
		Address:   buildTestAddress("Rua das Flores", city, "SP"),
		Value: PropertyValueInput{
			PurchaseValue: 500000,
			RentalValue:   rent,
			CondoFee:      300,
			PropertyTax:   100,
			Status:        status,
			ReferenceDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

// seedProperties creates a small portfolio: three owners, three properties
func seedProperties(t *testing.T, s Store) []*schema.Property {
	ctx := context.Background()
	house := seedPropertyType(t, s, "Casa")
	flat := seedPropertyType(t, s, "Apartamento")

	ana := seedOwner(t, s, "Ana Souza", "São Paulo")
	mario := seedOwner(t, s, "Mário Lima", "Santos")
	zeca := seedOwner(t, s, "Zeca Alves", "Campinas")

	inputs := []CreatePropertyInput{
		buildTestProperty("Casa Verde", ana.ID, house.ID, 3, "São Paulo", domain.PropertyStatusAvailable, 2000),
		buildTestProperty("Apto Centro 50% off", mario.ID, flat.ID, 1, "Santos", domain.PropertyStatusOccupied, 1500),
		buildTestProperty("Casa Azul", zeca.ID, house.ID, 4, "Campinas", domain.PropertyStatusOccupied, 3000),
	}

	properties := make([]*schema.Property, 0, len(inputs))
	for _, in := range inputs {
		p, err := s.CreateProperty(ctx, in)
		require.NoError(t, err)
		properties = append(properties, p)
	}
	return properties
}

func conditions(t *testing.T, mapping *query.Mapping, raw map[string]query.FilterValue) []query.Condition {
	conds := query.ParseFilters(mapping, raw)
	require.Len(t, conds, len(raw), "every filter should be valid")
	return conds
}

func sortKeys(mapping *query.Mapping, opts ...query.SortOption) []query.SortKey {
	return query.Params{Sort: opts}.SortKeys(mapping)
}

func propertyTitles(properties []schema.Property) []string {
	titles := make([]string, 0, len(properties))
	for _, p := range properties {
		titles = append(titles, p.Title)
	}
	return titles
}

// =============================================================================
// Entities
// =============================================================================

func testCreateAndGetProperty(t *testing.T, s Store) {
	ctx := context.Background()
	seeded := seedProperties(t, s)

	p, err := s.GetProperty(ctx, seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Casa Verde", p.Title)
	assert.Equal(t, 3, p.Bedrooms)

	require.NotNil(t, p.Owner)
	assert.Equal(t, "Ana Souza", p.Owner.Name)
	require.NotNil(t, p.Type)
	assert.Equal(t, "Casa", p.Type.Description)
	assert.Nil(t, p.Agency)

	require.Len(t, p.Addresses, 1)
	require.NotNil(t, p.Addresses[0].Address)
	assert.Equal(t, "São Paulo", p.Addresses[0].Address.City)

	require.Len(t, p.Values, 1)
	latest := p.LatestValue()
	require.NotNil(t, latest)
	assert.Equal(t, domain.PropertyStatusAvailable, latest.Status)
	assert.InDelta(t, 2000, latest.RentalValue, 0.001)
}

func testCreatePropertyRejectsInvalidStatus(t *testing.T, s Store) {
	ctx := context.Background()
	pt := seedPropertyType(t, s, "Casa")
	owner := seedOwner(t, s, "Ana", "Santos")

	_, err := s.CreateProperty(ctx, buildTestProperty("X", owner.ID, pt.ID, 1, "Santos", "RENTED", 100))
	require.Error(t, err)

	total, err := s.FindAllProperties(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, total)
}

func testGetNotFound(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.GetProperty(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.GetOwner(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.GetTenant(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.GetAgency(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.GetLease(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.GetUser(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.GetPropertyType(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testUniqueConflicts(t *testing.T, s Store) {
	ctx := context.Background()

	seedPropertyType(t, s, "Casa")
	_, err := s.CreatePropertyType(ctx, "Casa")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = s.CreateUser(ctx, CreateUserInput{Name: "Ana", Email: "ana@example.com", Password: "hash"})
	require.NoError(t, err)
	_, err = s.CreateUser(ctx, CreateUserInput{Name: "Ana 2", Email: "ana@example.com", Password: "hash"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	seedAgency(t, s, "Imob", "11.111.111/0001-11")
	_, err = s.CreateAgency(ctx, CreateAgencyInput{TradeName: "Other", LegalName: "Other", CNPJ: "11.111.111/0001-11"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func testCreateUserDefaults(t *testing.T, s Store) {
	ctx := context.Background()

	user, err := s.CreateUser(ctx, CreateUserInput{Name: "Ana", Email: "ana@example.com", Password: "hash"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDefault, user.Role)

	got, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.Email)
}

func testCreateLease(t *testing.T, s Store) {
	ctx := context.Background()
	seeded := seedProperties(t, s)

	tenant, err := s.CreateTenant(ctx, CreatePartyInput{Name: "Bruno Dias", CPF: types.StringPtr("123.456.789-00")})
	require.NoError(t, err)

	input := CreateLeaseInput{
		ContractNumber: "CT-001",
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		RentAmount:     1500,
		RentDueDay:     5,
		PropertyID:     seeded[1].ID,
		OwnerID:        seeded[1].OwnerID,
		TenantID:       tenant.ID,
		TypeID:         seeded[1].TypeID,
	}
	lease, err := s.CreateLease(ctx, input)
	require.NoError(t, err)
	require.NotNil(t, lease.Tenant)
	assert.Equal(t, "Bruno Dias", lease.Tenant.Name)
	require.NotNil(t, lease.Property)
	assert.Equal(t, seeded[1].Title, lease.Property.Title)

	_, err = s.CreateLease(ctx, input)
	assert.ErrorIs(t, err, domain.ErrConflict)

	leases, count, err := s.ListLeases(ctx, ListQuery{
		Conditions: conditions(t, query.LeaseFields, map[string]query.FilterValue{
			"tenant_name": {Value: "bruno"},
		}),
		Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, leases, 1)
	assert.Equal(t, "CT-001", leases[0].ContractNumber)
}

func testUpdateProperty(t *testing.T, s Store) {
	ctx := context.Background()
	seeded := seedProperties(t, s)

	updated, err := s.UpdateProperty(ctx, seeded[0].ID, UpdatePropertyInput{
		Title:     types.StringPtr("Casa Verde Reformada"),
		Furnished: func() *bool { b := true; return &b }(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Casa Verde Reformada", updated.Title)
	assert.True(t, updated.Furnished)
	assert.Equal(t, 3, updated.Bedrooms)

	_, err = s.UpdateProperty(ctx, 999, UpdatePropertyInput{Title: types.StringPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testAddPropertyValue(t *testing.T, s Store) {
	ctx := context.Background()
	seeded := seedProperties(t, s)

	_, err := s.AddPropertyValue(ctx, seeded[0].ID, PropertyValueInput{
		RentalValue:   2500,
		Status:        domain.PropertyStatusOccupied,
		ReferenceDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	p, err := s.GetProperty(ctx, seeded[0].ID)
	require.NoError(t, err)
	require.Len(t, p.Values, 2)
	// values are loaded newest first
	assert.Equal(t, domain.PropertyStatusOccupied, p.Values[0].Status)
	assert.InDelta(t, 2500, p.LatestValue().RentalValue, 0.001)

	_, err = s.AddPropertyValue(ctx, 999, PropertyValueInput{Status: domain.PropertyStatusAvailable})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// =============================================================================
// Listing
// =============================================================================

func testListPropertiesDefaultOrder(t *testing.T, s Store) {
	ctx := context.Background()
	seedProperties(t, s)

	page, count, err := s.ListProperties(ctx, ListQuery{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	// newest first, with id as the tie-breaker
	assert.Equal(t, []string{"Casa Azul", "Apto Centro 50% off"}, propertyTitles(page))

	page, count, err = s.ListProperties(ctx, ListQuery{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, []string{"Casa Verde"}, propertyTitles(page))
}

func testListPropertiesSortAndFilter(t *testing.T, s Store) {
	ctx := context.Background()
	seedProperties(t, s)

	tests := []struct {
		name   string
		filter map[string]query.FilterValue
		sort   []query.SortOption
		want   []string
	}{
		{
			name: "sort by bedrooms ascending",
			sort: []query.SortOption{{Field: "bedrooms", Direction: domain.SortAsc}},
			want: []string{"Apto Centro 50% off", "Casa Verde", "Casa Azul"},
		},
		{
			name: "sort by title descending",
			sort: []query.SortOption{{Field: "title", Direction: domain.SortDesc}},
			want: []string{"Casa Verde", "Casa Azul", "Apto Centro 50% off"},
		},
		{
			name:   "direct text filter is case insensitive",
			filter: map[string]query.FilterValue{"title": {Value: "CASA"}},
			sort:   []query.SortOption{{Field: "title", Direction: domain.SortAsc}},
			want:   []string{"Casa Azul", "Casa Verde"},
		},
		{
			name:   "wildcards in text filters match literally",
			filter: map[string]query.FilterValue{"title": {Value: "50%"}},
			want:   []string{"Apto Centro 50% off"},
		},
		{
			name:   "number filter",
			filter: map[string]query.FilterValue{"bedrooms": {Value: "4"}},
			want:   []string{"Casa Azul"},
		},
		{
			name:   "relation filter through owner",
			filter: map[string]query.FilterValue{"owner_name": {Value: "lima"}},
			want:   []string{"Apto Centro 50% off"},
		},
		{
			name:   "relation filter through type",
			filter: map[string]query.FilterValue{"type_description": {Value: "casa"}},
			sort:   []query.SortOption{{Field: "bedrooms", Direction: domain.SortDesc}},
			want:   []string{"Casa Azul", "Casa Verde"},
		},
		{
			name:   "address filter",
			filter: map[string]query.FilterValue{"city": {Value: "campinas"}},
			want:   []string{"Casa Azul"},
		},
		{
			name:   "combined filters",
			filter: map[string]query.FilterValue{"type_description": {Value: "casa"}, "bedrooms": {Value: "3"}},
			want:   []string{"Casa Verde"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ListQuery{
				Sort:  sortKeys(query.PropertyFields, tt.sort...),
				Limit: 10,
			}
			if tt.filter != nil {
				q.Conditions = conditions(t, query.PropertyFields, tt.filter)
			}

			page, count, err := s.ListProperties(ctx, q)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), count)
			assert.Equal(t, tt.want, propertyTitles(page))
		})
	}
}

func testListPropertiesDateRange(t *testing.T, s Store) {
	ctx := context.Background()
	seedProperties(t, s)

	today := time.Now().UTC()
	inWindow := conditions(t, query.PropertyFields, map[string]query.FilterValue{
		"created_at": {From: today.AddDate(0, 0, -1).Format("2006-01-02"), To: today.Format("2006-01-02")},
	})
	_, count, err := s.ListProperties(ctx, ListQuery{Conditions: inWindow, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	openEnded := conditions(t, query.PropertyFields, map[string]query.FilterValue{
		"created_at": {From: today.AddDate(0, 0, 2).Format("2006-01-02")},
	})
	_, count, err = s.ListProperties(ctx, ListQuery{Conditions: openEnded, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func testListOwnersByContact(t *testing.T, s Store) {
	ctx := context.Background()
	seedOwner(t, s, "Ana Souza", "São Paulo")
	seedOwner(t, s, "Bruno Dias", "Santos")

	owners, count, err := s.ListOwners(ctx, ListQuery{
		Conditions: conditions(t, query.OwnerFields, map[string]query.FilterValue{
			"contact": {Value: "bruno"},
		}),
		Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, owners, 1)
	assert.Equal(t, "Bruno Dias", owners[0].Name)
	require.Len(t, owners[0].Contacts, 1)
	require.NotNil(t, owners[0].Contacts[0].Contact)
	require.Len(t, owners[0].Addresses, 1)
	assert.Equal(t, "Santos", owners[0].Addresses[0].Address.City)
}

func testFindAllIncludesInactiveOnRequest(t *testing.T, s Store) {
	ctx := context.Background()
	seeded := seedProperties(t, s)
	require.NoError(t, s.SoftDelete(ctx, EntityProperty, seeded[0].ID))

	live, err := s.FindAllProperties(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Len(t, live, 2)

	all, err := s.FindAllProperties(ctx, ListQuery{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, count, err := s.ListProperties(ctx, ListQuery{IncludeInactive: true, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func testListUsersAndPropertyTypes(t *testing.T, s Store) {
	ctx := context.Background()
	seedPropertyType(t, s, "Casa")
	seedPropertyType(t, s, "Apartamento")
	seedPropertyType(t, s, "Sala Comercial")

	types, count, err := s.ListPropertyTypes(ctx, ListQuery{
		Sort:  sortKeys(query.PropertyTypeFields, query.SortOption{Field: "description", Direction: domain.SortAsc}),
		Limit: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	require.Len(t, types, 2)
	assert.Equal(t, "Apartamento", types[0].Description)
	assert.Equal(t, "Casa", types[1].Description)

	_, err = s.CreateUser(ctx, CreateUserInput{Name: "Ana", Email: "ana@example.com", Password: "h", Role: domain.RoleAdmin})
	require.NoError(t, err)
	_, err = s.CreateUser(ctx, CreateUserInput{Name: "Bia", Email: "bia@example.com", Password: "h"})
	require.NoError(t, err)

	users, count, err := s.ListUsers(ctx, ListQuery{
		Conditions: conditions(t, query.UserFields, map[string]query.FilterValue{"role": {Value: "admin"}}),
		Limit:      10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, users, 1)
	assert.Equal(t, "Ana", users[0].Name)
}

// =============================================================================
// Soft delete
// =============================================================================

func testSoftDeleteCascades(t *testing.T, s Store) {
	ctx := context.Background()
	seeded := seedProperties(t, s)
	id := seeded[0].ID

	require.NoError(t, s.SoftDelete(ctx, EntityProperty, id))

	_, err := s.GetProperty(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	db := s.(*pgStore).db
	var liveLinks int64
	require.NoError(t, db.Model(&schema.PropertyAddress{}).Where("property_id = ?", id).Count(&liveLinks).Error)
	assert.Equal(t, int64(0), liveLinks)

	// deleting twice reports the entity as missing
	err = s.SoftDelete(ctx, EntityProperty, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// other properties are untouched
	_, err = s.GetProperty(ctx, seeded[1].ID)
	assert.NoError(t, err)
}

func testRestoreRevivesCascadedDependents(t *testing.T, s Store) {
	ctx := context.Background()
	db := s.(*pgStore).db

	owner, err := s.CreateOwner(ctx, CreatePartyInput{
		Name: "Ana Souza",
		Addresses: []AddressInput{
			buildTestAddress("Rua Um", "Santos", "SP"),
			buildTestAddress("Rua Dois", "Santos", "SP"),
		},
	})
	require.NoError(t, err)
	require.Len(t, owner.Addresses, 2)

	// the second link is removed on its own before the owner is deleted
	detached := owner.Addresses[1].ID
	require.NoError(t, db.Delete(&schema.OwnerAddress{}, detached).Error)

	require.NoError(t, s.SoftDelete(ctx, EntityOwner, owner.ID))
	_, err = s.GetOwner(ctx, owner.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Restore(ctx, EntityOwner, owner.ID))

	restored, err := s.GetOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, restored.Addresses, 1)
	assert.Equal(t, "Rua Um", restored.Addresses[0].Address.Street)

	// restoring a live entity is a no-op
	require.NoError(t, s.Restore(ctx, EntityOwner, owner.ID))

	err = s.Restore(ctx, EntityOwner, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testSoftDeleteUnknownEntity(t *testing.T, s Store) {
	err := s.SoftDelete(context.Background(), Entity("building"), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

// =============================================================================
// Dashboard
// =============================================================================

func testDashboardReads(t *testing.T, s Store) {
	ctx := context.Background()
	seeded := seedProperties(t, s)

	agency := seedAgency(t, s, "Imobiliária Central", "22.222.222/0001-22")
	_, err := s.UpdateProperty(ctx, seeded[0].ID, UpdatePropertyInput{AgencyID: &agency.ID})
	require.NoError(t, err)
	_, err = s.UpdateProperty(ctx, seeded[2].ID, UpdatePropertyInput{AgencyID: &agency.ID})
	require.NoError(t, err)

	now := time.Now().UTC()
	start, end := now.Add(-time.Hour), now.Add(time.Hour)

	properties, err := s.GetPropertiesCreatedBetween(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, properties, 3)
	assert.NotNil(t, properties[0].Type)
	assert.NotEmpty(t, properties[0].Values)
	assert.NotEmpty(t, properties[0].Addresses)

	counts, err := s.CountClientsCreatedBetween(ctx, start, end)
	require.NoError(t, err)
	assert.Equal(t, &ClientCounts{Owners: 3, Tenants: 0, Agencies: 1, Properties: 3}, counts)

	groups, err := s.CountPropertiesByAgency(ctx, start, end)
	require.NoError(t, err)
	assert.Equal(t, []GroupCount{{Name: "Imobiliária Central", Count: 2}}, groups)

	past := now.AddDate(-1, 0, 0)
	properties, err = s.GetPropertiesCreatedBetween(ctx, past.Add(-time.Hour), past)
	require.NoError(t, err)
	assert.Empty(t, properties)

	groups, err = s.CountPropertiesByAgency(ctx, past.Add(-time.Hour), past)
	require.NoError(t, err)
	assert.Equal(t, []GroupCount{}, groups)

	require.NoError(t, s.SoftDelete(ctx, EntityProperty, seeded[0].ID))
	counts, err = s.CountClientsCreatedBetween(ctx, start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Properties)
}

func testDashboardAgenciesSharingTradeName(t *testing.T, s Store) {
	ctx := context.Background()
	seeded := seedProperties(t, s)

	first := seedAgency(t, s, "Imobiliária Central", "33.333.333/0001-33")
	second := seedAgency(t, s, "Imobiliária Central", "44.444.444/0001-44")
	for i, agencyID := range []uint64{first.ID, first.ID, second.ID} {
		id := agencyID
		_, err := s.UpdateProperty(ctx, seeded[i].ID, UpdatePropertyInput{AgencyID: &id})
		require.NoError(t, err)
	}

	now := time.Now().UTC()
	groups, err := s.CountPropertiesByAgency(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []GroupCount{
		{Name: "Imobiliária Central", Count: 2},
		{Name: "Imobiliária Central", Count: 1},
	}, groups)
}

func testPing(t *testing.T, s Store) {
	assert.NoError(t, s.Ping(context.Background()))
}

// RunStoreTests runs all store tests against a given implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"Ping", testPing},
		{"CreateAndGetProperty", testCreateAndGetProperty},
		{"CreatePropertyRejectsInvalidStatus", testCreatePropertyRejectsInvalidStatus},
		{"GetNotFound", testGetNotFound},
		{"UniqueConflicts", testUniqueConflicts},
		{"CreateUserDefaults", testCreateUserDefaults},
		{"CreateLease", testCreateLease},
		{"UpdateProperty", testUpdateProperty},
		{"AddPropertyValue", testAddPropertyValue},
		{"ListPropertiesDefaultOrder", testListPropertiesDefaultOrder},
		{"ListPropertiesSortAndFilter", testListPropertiesSortAndFilter},
		{"ListPropertiesDateRange", testListPropertiesDateRange},
		{"ListOwnersByContact", testListOwnersByContact},
		{"FindAllIncludesInactiveOnRequest", testFindAllIncludesInactiveOnRequest},
		{"ListUsersAndPropertyTypes", testListUsersAndPropertyTypes},
		{"SoftDeleteCascades", testSoftDeleteCascades},
		{"RestoreRevivesCascadedDependents", testRestoreRevivesCascadedDependents},
		{"SoftDeleteUnknownEntity", testSoftDeleteUnknownEntity},
		{"DashboardReads", testDashboardReads},
		{"DashboardAgenciesSharingTradeName", testDashboardAgenciesSharingTradeName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}

// =============================================================================
// Connection pool
// =============================================================================

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	tests := []struct {
		name                     string
		open, idle               int
		lifetime, idleTime       time.Duration
		wantOpen, wantIdle       int
		wantLifetime, wantIdleTo time.Duration
	}{
		{"defaults", 0, 0, 0, 0, 20, 5, 5 * time.Minute, 10 * time.Minute},
		{"explicit", 50, 10, time.Hour, time.Minute, 50, 10, time.Hour, time.Minute},
		{"idle clamped to open", 4, 8, time.Minute, time.Minute, 4, 4, time.Minute, time.Minute},
		{"negative values use defaults", -1, -1, -time.Second, -time.Second, 20, 5, 5 * time.Minute, 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open, idle, lifetime, idleTime := NormalizeConnectionPoolSettings(tt.open, tt.idle, tt.lifetime, tt.idleTime)
			assert.Equal(t, tt.wantOpen, open)
			assert.Equal(t, tt.wantIdle, idle)
			assert.Equal(t, tt.wantLifetime, lifetime)
			assert.Equal(t, tt.wantIdleTo, idleTime)
		})
	}
}
