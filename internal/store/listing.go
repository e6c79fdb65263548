package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/query"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/store/schema"
)

// likeEscaper escapes LIKE wildcards so user input matches literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
}

// applyConditions adds one WHERE clause per validated condition.
// Relation, address and contact conditions are expressed as subqueries through the field scope.
func applyConditions(tx *gorm.DB, conditions []query.Condition) *gorm.DB {
	for _, c := range conditions {
		switch cond := c.(type) {
		case query.TextContains:
			tx = tx.Where(fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, cond.Field.Column), containsPattern(cond.Value))
		case query.RelationTextContains:
			predicate := fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, cond.Field.Column)
			tx = tx.Where(fmt.Sprintf(cond.Field.Scope, predicate), containsPattern(cond.Value))
		case query.NumberEquals:
			tx = tx.Where(fmt.Sprintf("%s = ?", cond.Field.Column), cond.Value)
		case query.BooleanEquals:
			tx = tx.Where(fmt.Sprintf("%s = ?", cond.Field.Column), cond.Value)
		case query.EnumEquals:
			tx = tx.Where(fmt.Sprintf("%s = ?", cond.Field.Column), cond.Value)
		case query.DateRange:
			if !cond.From.IsZero() {
				tx = tx.Where(fmt.Sprintf("%s >= ?", cond.Field.Column), cond.From)
			}
			if !cond.To.IsZero() {
				tx = tx.Where(fmt.Sprintf("%s <= ?", cond.Field.Column), cond.To)
			}
		}
	}
	return tx
}

// applyOrder orders by the direct sort keys, falling back to newest first.
// The primary key is always the last tie-breaker so pages are stable.
func applyOrder(tx *gorm.DB, keys []query.SortKey, createdAt query.Field) *gorm.DB {
	columns := make([]clause.OrderByColumn, 0, len(keys)+1)
	for _, k := range keys {
		if !k.Field.IsDirect() {
			continue
		}
		columns = append(columns, clause.OrderByColumn{Column: clause.Column{Name: k.Field.Column}, Desc: k.Desc})
	}
	if len(columns) == 0 {
		columns = append(columns, clause.OrderByColumn{Column: clause.Column{Name: createdAt.Column}, Desc: true})
	}
	columns = append(columns, clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}, Desc: true})
	return tx.Clauses(clause.OrderBy{Columns: columns})
}

// baseQuery scopes a query to T with conditions and soft-delete visibility applied
func baseQuery[T any](ctx context.Context, db *gorm.DB, q ListQuery) *gorm.DB {
	var model T
	tx := db.WithContext(ctx).Model(&model)
	if q.IncludeInactive {
		tx = tx.Unscoped()
	}
	return applyConditions(tx, q.Conditions).Session(&gorm.Session{})
}

// listPage counts the filtered rows, then loads one ordered page with relations
func listPage[T any](ctx context.Context, db *gorm.DB, q ListQuery, mapping *query.Mapping, relations func(*gorm.DB) *gorm.DB) ([]T, int64, error) {
	tx := baseQuery[T](ctx, db, q)

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count %s rows: %w", mapping.Entity(), err)
	}

	var rows []T
	find := applyOrder(tx, q.Sort, mapping.CreatedAt())
	if relations != nil {
		find = find.Scopes(relations)
	}
	if q.Limit > 0 {
		find = find.Limit(q.Limit)
	}
	if q.Offset > 0 {
		find = find.Offset(q.Offset)
	}
	if err := find.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list %s rows: %w", mapping.Entity(), err)
	}

	return rows, count, nil
}

// findAll loads every filtered row with relations, in primary key order
func findAll[T any](ctx context.Context, db *gorm.DB, q ListQuery, mapping *query.Mapping, relations func(*gorm.DB) *gorm.DB) ([]T, error) {
	tx := baseQuery[T](ctx, db, q)
	if relations != nil {
		tx = tx.Scopes(relations)
	}

	var rows []T
	if err := tx.Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}}).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load %s rows: %w", mapping.Entity(), err)
	}
	return rows, nil
}

// =============================================================================
// Relation scopes
// =============================================================================

func orderedAddresses(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func orderedValues(db *gorm.DB) *gorm.DB {
	return db.Order("reference_date DESC").Order("created_at DESC")
}

func propertyRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Owner").
		Preload("Type").
		Preload("Agency").
		Preload("Addresses", orderedAddresses).
		Preload("Addresses.Address").
		Preload("Values", orderedValues)
}

func propertyDetailRelations(db *gorm.DB) *gorm.DB {
	return propertyRelations(db).Preload("Documents")
}

func ownerRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Addresses", orderedAddresses).
		Preload("Addresses.Address").
		Preload("Contacts", orderedAddresses).
		Preload("Contacts.Contact")
}

// tenants and agencies share the owner layout
var (
	tenantRelations = ownerRelations
	agencyRelations = ownerRelations
)

func leaseRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Property").
		Preload("Owner").
		Preload("Tenant").
		Preload("Type")
}

// =============================================================================
// Listing methods
// =============================================================================

// ListProperties returns one page of properties with owner, type, agency, addresses and values
func (s *pgStore) ListProperties(ctx context.Context, q ListQuery) ([]schema.Property, int64, error) {
	return listPage[schema.Property](ctx, s.db, q, query.PropertyFields, propertyRelations)
}

// FindAllProperties returns every matching property with relations loaded
func (s *pgStore) FindAllProperties(ctx context.Context, q ListQuery) ([]schema.Property, error) {
	return findAll[schema.Property](ctx, s.db, q, query.PropertyFields, propertyRelations)
}

func (s *pgStore) ListOwners(ctx context.Context, q ListQuery) ([]schema.Owner, int64, error) {
	return listPage[schema.Owner](ctx, s.db, q, query.OwnerFields, ownerRelations)
}

func (s *pgStore) FindAllOwners(ctx context.Context, q ListQuery) ([]schema.Owner, error) {
	return findAll[schema.Owner](ctx, s.db, q, query.OwnerFields, ownerRelations)
}

func (s *pgStore) ListTenants(ctx context.Context, q ListQuery) ([]schema.Tenant, int64, error) {
	return listPage[schema.Tenant](ctx, s.db, q, query.TenantFields, tenantRelations)
}

func (s *pgStore) FindAllTenants(ctx context.Context, q ListQuery) ([]schema.Tenant, error) {
	return findAll[schema.Tenant](ctx, s.db, q, query.TenantFields, tenantRelations)
}

func (s *pgStore) ListAgencies(ctx context.Context, q ListQuery) ([]schema.Agency, int64, error) {
	return listPage[schema.Agency](ctx, s.db, q, query.AgencyFields, agencyRelations)
}

func (s *pgStore) FindAllAgencies(ctx context.Context, q ListQuery) ([]schema.Agency, error) {
	return findAll[schema.Agency](ctx, s.db, q, query.AgencyFields, agencyRelations)
}

func (s *pgStore) ListLeases(ctx context.Context, q ListQuery) ([]schema.Lease, int64, error) {
	return listPage[schema.Lease](ctx, s.db, q, query.LeaseFields, leaseRelations)
}

func (s *pgStore) FindAllLeases(ctx context.Context, q ListQuery) ([]schema.Lease, error) {
	return findAll[schema.Lease](ctx, s.db, q, query.LeaseFields, leaseRelations)
}

// ListUsers returns one page of users. Users have no preloaded relations.
func (s *pgStore) ListUsers(ctx context.Context, q ListQuery) ([]schema.User, int64, error) {
	return listPage[schema.User](ctx, s.db, q, query.UserFields, nil)
}

func (s *pgStore) FindAllUsers(ctx context.Context, q ListQuery) ([]schema.User, error) {
	return findAll[schema.User](ctx, s.db, q, query.UserFields, nil)
}

func (s *pgStore) ListPropertyTypes(ctx context.Context, q ListQuery) ([]schema.PropertyType, int64, error) {
	return listPage[schema.PropertyType](ctx, s.db, q, query.PropertyTypeFields, nil)
}

func (s *pgStore) FindAllPropertyTypes(ctx context.Context, q ListQuery) ([]schema.PropertyType, error) {
	return findAll[schema.PropertyType](ctx, s.db, q, query.PropertyTypeFields, nil)
}
