package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/store/schema"
)

// GetPropertiesCreatedBetween returns live properties created in [start, end]
func (s *pgStore) GetPropertiesCreatedBetween(ctx context.Context, start, end time.Time) ([]schema.Property, error) {
	var properties []schema.Property
	err := s.db.WithContext(ctx).
		Scopes(propertyDetailRelations, withinWindow("properties.created_at", start, end)).
		Order("properties.id ASC").
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get properties created between %s and %s: %w",
			start.Format(time.RFC3339), end.Format(time.RFC3339), err)
	}
	return properties, nil
}

// CountClientsCreatedBetween counts live owners, tenants, agencies and properties created in [start, end]
func (s *pgStore) CountClientsCreatedBetween(ctx context.Context, start, end time.Time) (*ClientCounts, error) {
	counts := &ClientCounts{}
	targets := []struct {
		model any
		dest  *int64
	}{
		{&schema.Owner{}, &counts.Owners},
		{&schema.Tenant{}, &counts.Tenants},
		{&schema.Agency{}, &counts.Agencies},
		{&schema.Property{}, &counts.Properties},
	}

	for _, target := range targets {
		err := s.db.WithContext(ctx).
			Model(target.model).
			Scopes(withinWindow("created_at", start, end)).
			Count(target.dest).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count clients: %w", err)
		}
	}

	return counts, nil
}

// CountPropertiesByAgency counts live properties created in [start, end] per live agency,
// largest first. Properties without an agency are not counted.
func (s *pgStore) CountPropertiesByAgency(ctx context.Context, start, end time.Time) ([]GroupCount, error) {
	var groups []GroupCount
	err := s.db.WithContext(ctx).
		Model(&schema.Property{}).
		Select("agencies.trade_name AS name, COUNT(properties.id) AS count").
		Joins("JOIN agencies ON agencies.id = properties.agency_id AND agencies.deleted_at IS NULL").
		Scopes(withinWindow("properties.created_at", start, end)).
		Group("agencies.id, agencies.trade_name").
		Order("count DESC").
		Order("name ASC").
		Order("agencies.id ASC").
		Scan(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count properties by agency: %w", err)
	}
	if groups == nil {
		groups = []GroupCount{}
	}
	return groups, nil
}

// withinWindow restricts a query to rows whose column falls in [start, end]
func withinWindow(column string, start, end time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" BETWEEN ? AND ?", start, end)
	}
}
