package domain

import "strings"

// PropertyStatus represents the occupancy status recorded on a property value snapshot
type PropertyStatus string

const (
	PropertyStatusAvailable   PropertyStatus = "AVAILABLE"
	PropertyStatusOccupied    PropertyStatus = "OCCUPIED"
	PropertyStatusSold        PropertyStatus = "SOLD"
	PropertyStatusUnavailable PropertyStatus = "UNAVAILABLE"
)

// IsValidPropertyStatus checks if a status is one of the known values
func IsValidPropertyStatus(status PropertyStatus) bool {
	switch status {
	case PropertyStatusAvailable, PropertyStatusOccupied, PropertyStatusSold, PropertyStatusUnavailable:
		return true
	}
	return false
}

// DocumentType represents the kind of file attached to a property
type DocumentType string

const (
	DocumentTypeTitleDeed      DocumentType = "TITLE_DEED"
	DocumentTypeRegistration   DocumentType = "REGISTRATION"
	DocumentTypePropertyRecord DocumentType = "PROPERTY_RECORD"
	DocumentTypeImage          DocumentType = "IMAGE"
	DocumentTypeOther          DocumentType = "OTHER"
)

// Gender represents the user gender enum
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Role represents the user role enum
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleDefault Role = "DEFAULT"
)

// MaritalStatus represents the marital status of an owner or tenant
type MaritalStatus string

const (
	MaritalStatusSingle   MaritalStatus = "SINGLE"
	MaritalStatusMarried  MaritalStatus = "MARRIED"
	MaritalStatusDivorced MaritalStatus = "DIVORCED"
	MaritalStatusWidowed  MaritalStatus = "WIDOWED"
)

// SortDirection is the direction of a sort option
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection parses a sort direction, returning false for anything other than asc/desc
func ParseSortDirection(s string) (SortDirection, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return SortAsc, true
	case "desc":
		return SortDesc, true
	}
	return "", false
}

// Desc reports whether the direction is descending
func (d SortDirection) Desc() bool {
	return d == SortDesc
}
