package geocoding

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/adapter"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/domain"
)

// Coordinates is a resolved geographic point
type Coordinates struct {
	Lat float64
	Lng float64
}

// Geocoder resolves a free-form address into coordinates.
// Errors wrapping domain.ErrGeocodingTransport mean the request never got an answer and
// may be retried; every other error is final for that address.
//
//go:generate mockgen -source=nominatim.go -destination=../mocks/geocoder.go -package=mocks -mock_names=Geocoder=MockGeocoder
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*Coordinates, error)
}

// ClientConfig holds the Nominatim endpoint settings
type ClientConfig struct {
	BaseURL        string
	UserAgent      string
	AcceptLanguage string
}

// nominatimResult is one element of the Nominatim search response
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NominatimClient implements Geocoder against the OpenStreetMap Nominatim search API
type NominatimClient struct {
	httpClient adapter.HTTPClient
	json       adapter.JSON
	config     ClientConfig
}

// NewNominatimClient creates a new Nominatim geocoder
func NewNominatimClient(httpClient adapter.HTTPClient, json adapter.JSON, cfg ClientConfig) Geocoder {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DEFAULT_NOMINATIM_URL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = domain.DEFAULT_GEOCODE_USER_AGENT
	}
	if cfg.AcceptLanguage == "" {
		cfg.AcceptLanguage = domain.DEFAULT_GEOCODE_LANGUAGE
	}
	return &NominatimClient{
		httpClient: httpClient,
		json:       json,
		config:     cfg,
	}
}

// Geocode resolves query to the coordinates of the first search result
func (c *NominatimClient) Geocode(ctx context.Context, query string) (*Coordinates, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("q", query)
	requestURL := c.config.BaseURL + "?" + params.Encode()

	headers := map[string]string{
		"User-Agent":      c.config.UserAgent,
		"Accept-Language": c.config.AcceptLanguage,
		"Accept":          "application/json",
	}

	resp, err := c.httpClient.GetWithHeaders(ctx, requestURL, headers)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGeocodingTransport, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("geocoding service returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := c.json.Unmarshal(resp.Body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	if len(results) == 0 {
		return nil, domain.ErrGeocodingNoResult
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", results[0].Lon, err)
	}

	return &Coordinates{Lat: lat, Lng: lng}, nil
}
