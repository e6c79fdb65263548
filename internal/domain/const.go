package domain

const (
	// Listing constants
	DEFAULT_PAGE_LIMIT = 10
	MAX_PAGE_LIMIT     = 100
	DEFAULT_PAGE       = 1

	// Dashboard constants
	MAX_VARIATION_PERCENT       = 60.0
	MIN_DOCUMENTS_PER_PROPERTY  = 3
	DEFAULT_GEOCODE_CONCURRENCY = 3

	// Geocoding constants
	DEFAULT_NOMINATIM_URL      = "https://nominatim.openstreetmap.org/search"
	DEFAULT_GEOCODE_USER_AGENT = "nairim-property-api/1.0"
	DEFAULT_GEOCODE_LANGUAGE   = "pt-BR"
	DEFAULT_GEOCODE_COUNTRY    = "Brasil"
)
