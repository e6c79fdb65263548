package domain

import "errors"

var (
	// ErrNotFound is returned when the requested entity has no live (non-deleted) row
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned when a write violates a business-key uniqueness rule
	// (email, CPF/CNPJ, contract number, property type description)
	ErrConflict = errors.New("entity already exists")

	// ErrInvalidPeriod is returned when a dashboard window ends before it starts
	ErrInvalidPeriod = errors.New("end date must not be before start date")

	// ErrGeocodingTransport is returned when the geocoding request could not be delivered
	ErrGeocodingTransport = errors.New("geocoding transport failure")

	// ErrGeocodingNoResult is returned when the geocoding service answered without a usable result
	ErrGeocodingNoResult = errors.New("geocoding returned no result")
)
