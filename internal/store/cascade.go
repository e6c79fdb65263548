package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/domain"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/logger"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/store/schema"
)

// Dependent is a table whose rows follow the lifecycle of a root entity
type Dependent struct {
	Table      string
	ForeignKey string
}

// CascadeRule declares the root table of an entity and the dependents deleted with it
type CascadeRule struct {
	Model      any
	Dependents []Dependent
}

// CascadeRules lists, per entity, the dependents soft-deleted and restored with it.
// Addresses and contacts themselves are shared rows and are never cascaded; only the
// join rows linking them to the root are.
var CascadeRules = map[Entity]CascadeRule{
	EntityProperty: {
		Model: &schema.Property{},
		Dependents: []Dependent{
			{Table: "property_addresses", ForeignKey: "property_id"},
			{Table: "documents", ForeignKey: "property_id"},
			{Table: "favorites", ForeignKey: "property_id"},
		},
	},
	EntityOwner: {
		Model: &schema.Owner{},
		Dependents: []Dependent{
			{Table: "owner_addresses", ForeignKey: "owner_id"},
			{Table: "owner_contacts", ForeignKey: "owner_id"},
		},
	},
	EntityTenant: {
		Model: &schema.Tenant{},
		Dependents: []Dependent{
			{Table: "tenant_addresses", ForeignKey: "tenant_id"},
			{Table: "tenant_contacts", ForeignKey: "tenant_id"},
		},
	},
	EntityAgency: {
		Model: &schema.Agency{},
		Dependents: []Dependent{
			{Table: "agency_addresses", ForeignKey: "agency_id"},
			{Table: "agency_contacts", ForeignKey: "agency_id"},
		},
	},
	EntityLease:        {Model: &schema.Lease{}},
	EntityUser:         {Model: &schema.User{}},
	EntityPropertyType: {Model: &schema.PropertyType{}},
}

func cascadeRule(entity Entity) (CascadeRule, error) {
	rule, ok := CascadeRules[entity]
	if !ok {
		return CascadeRule{}, fmt.Errorf("unknown entity %q", entity)
	}
	return rule, nil
}

// SoftDelete marks a live entity and its live dependents as deleted with one shared timestamp
func (s *pgStore) SoftDelete(ctx context.Context, entity Entity, id uint64) error {
	rule, err := cascadeRule(entity)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	var cascaded int64

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Unscoped().
			Model(rule.Model).
			Where("id = ? AND deleted_at IS NULL", id).
			Update("deleted_at", now)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		for _, dep := range rule.Dependents {
			result := tx.Table(dep.Table).
				Where(fmt.Sprintf("%s = ? AND deleted_at IS NULL", dep.ForeignKey), id).
				Update("deleted_at", now)
			if result.Error != nil {
				return fmt.Errorf("failed to cascade to %s: %w", dep.Table, result.Error)
			}
			cascaded += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", entity, id, s.translateError(err))
	}

	logger.InfoCtx(ctx, "Soft deleted entity",
		zap.String("entity", string(entity)),
		zap.Uint64("id", id),
		zap.Int64("cascaded", cascaded))
	return nil
}

// Restore clears the deletion of an entity and of the dependents that were deleted
// together with it. Dependents deleted on their own keep their deletion.
// Restoring a live entity is a no-op.
func (s *pgStore) Restore(ctx context.Context, entity Entity, id uint64) error {
	rule, err := cascadeRule(entity)
	if err != nil {
		return err
	}

	var restored int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row struct {
			DeletedAt *time.Time
		}
		result := tx.Unscoped().
			Model(rule.Model).
			Select("deleted_at").
			Where("id = ?", id).
			Limit(1).
			Scan(&row)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if row.DeletedAt == nil {
			return nil
		}
		deletedAt := *row.DeletedAt

		if err := tx.Unscoped().
			Model(rule.Model).
			Where("id = ?", id).
			Update("deleted_at", nil).Error; err != nil {
			return err
		}

		for _, dep := range rule.Dependents {
			result := tx.Table(dep.Table).
				Where(fmt.Sprintf("%s = ? AND deleted_at = ?", dep.ForeignKey), id, deletedAt).
				Update("deleted_at", nil)
			if result.Error != nil {
				return fmt.Errorf("failed to restore %s: %w", dep.Table, result.Error)
			}
			restored += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to restore %s %d: %w", entity, id, domain.ErrNotFound)
		}
		return fmt.Errorf("failed to restore %s %d: %w", entity, id, s.translateError(err))
	}

	logger.InfoCtx(ctx, "Restored entity",
		zap.String("entity", string(entity)),
		zap.Uint64("id", id),
		zap.Int64("dependents", restored))
	return nil
}
