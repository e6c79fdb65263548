package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/adapter"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/api/middleware"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/api/rest"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/api/shared/executor"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/dashboard"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/domain"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/geocoding"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/listing"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/logger"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/store"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/store/schema"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/store/storetest"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)

	code := m.Run()
	os.Exit(code)
}

type nullResolver struct{}

func (nullResolver) ResolveAll(context.Context, []geocoding.Address) []geocoding.Location {
	return []geocoding.Location{}
}

type testAPI struct {
	router *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	s := store.NewPGStore(storetest.NewSQLiteDB(t))
	engine := dashboard.NewEngine(s, nullResolver{}, adapter.NewClock(), dashboard.Config{})
	exec := executor.NewExecutor(s, listing.New(s), engine)

	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(exec), middleware.AuthConfig{})
	return &testAPI{router: router}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	assert.Equal(t, status, w.Code, w.Body.String())
	assert.Equal(t, code, decode[errorBody](t, w).Error.Code)
}

// seed creates a property type and an owner and returns their ids
func (a *testAPI) seed(t *testing.T) (typeID, ownerID uint64) {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/property-types", map[string]any{"description": "Casa"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	typeID = decode[schema.PropertyType](t, w).ID

	w = a.do(t, http.MethodPost, "/api/v1/owners", map[string]any{
		"name":      "João Silva",
		"addresses": []map[string]any{{"street": "Rua A", "city": "Santos", "state": "SP"}},
		"contacts":  []map[string]any{{"contact": "João", "email": "joao@example.com"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ownerID = decode[schema.Owner](t, w).ID
	return typeID, ownerID
}

func propertyBody(title string, ownerID, typeID uint64, city string, status domain.PropertyStatus, rent float64) map[string]any {
	return map[string]any{
		"title":    title,
		"bedrooms": 2,
		"owner_id": ownerID,
		"type_id":  typeID,
		"address": map[string]any{
			"street": "Rua das Flores",
			"number": "10",
			"city":   city,
			"state":  "SP",
		},
		"value": map[string]any{
			"rental_value": rent,
			"status":       status,
		},
	}
}

func (a *testAPI) createProperty(t *testing.T, body map[string]any) schema.Property {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/properties", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[schema.Property](t, w)
}

// =============================================================================
// Tests
// =============================================================================

func TestHealthCheck(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
}

func TestCreateAndGetProperty(t *testing.T) {
	api := newTestAPI(t)
	typeID, ownerID := api.seed(t)

	created := api.createProperty(t, propertyBody("Casa Azul", ownerID, typeID, "Santos", domain.PropertyStatusAvailable, 1000))
	assert.NotZero(t, created.ID)

	w := api.do(t, http.MethodGet, fmt.Sprintf("/api/v1/properties/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[schema.Property](t, w)
	assert.Equal(t, "Casa Azul", got.Title)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "João Silva", got.Owner.Name)
	require.Len(t, got.Addresses, 1)
	assert.Equal(t, "Santos", got.Addresses[0].Address.City)
	require.Len(t, got.Values, 1)
	assert.Equal(t, domain.PropertyStatusAvailable, got.Values[0].Status)
}

func TestCreateProperty_Validation(t *testing.T) {
	api := newTestAPI(t)
	typeID, ownerID := api.seed(t)

	tests := []struct {
		name   string
		mutate func(body map[string]any)
	}{
		{"missing title", func(b map[string]any) { b["title"] = " " }},
		{"missing owner", func(b map[string]any) { delete(b, "owner_id") }},
		{"negative bedrooms", func(b map[string]any) { b["bedrooms"] = -1 }},
		{"missing city", func(b map[string]any) { b["address"].(map[string]any)["city"] = "" }},
		{"invalid status", func(b map[string]any) { b["value"].(map[string]any)["status"] = "RENTED" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := propertyBody("Casa", ownerID, typeID, "Santos", domain.PropertyStatusAvailable, 1000)
			tt.mutate(body)
			w := api.do(t, http.MethodPost, "/api/v1/properties", body)
			assertError(t, w, http.StatusBadRequest, "validation_failed")
		})
	}

	w := api.do(t, http.MethodPost, "/api/v1/properties", "not an object")
	assertError(t, w, http.StatusBadRequest, "validation_failed")
}

func TestGetProperty_Errors(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/properties/999", nil)
	assertError(t, w, http.StatusNotFound, "not_found")

	w = api.do(t, http.MethodGet, "/api/v1/properties/abc", nil)
	assertError(t, w, http.StatusBadRequest, "bad_request")
}

func TestCreate_Conflict(t *testing.T) {
	api := newTestAPI(t)
	api.seed(t)

	w := api.do(t, http.MethodPost, "/api/v1/property-types", map[string]any{"description": "Casa"})
	assertError(t, w, http.StatusConflict, "conflict")

	body := map[string]any{"trade_name": "Alfa", "legal_name": "Alfa LTDA", "cnpj": "123"}
	w = api.do(t, http.MethodPost, "/api/v1/agencies", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = api.do(t, http.MethodPost, "/api/v1/agencies", body)
	assertError(t, w, http.StatusConflict, "conflict")
}

func TestUpdatePropertyAndAddValue(t *testing.T) {
	api := newTestAPI(t)
	typeID, ownerID := api.seed(t)
	created := api.createProperty(t, propertyBody("Casa", ownerID, typeID, "Santos", domain.PropertyStatusAvailable, 1000))
	path := fmt.Sprintf("/api/v1/properties/%d", created.ID)

	w := api.do(t, http.MethodPatch, path, map[string]any{"title": "Casa Reformada", "bedrooms": 4})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[schema.Property](t, w)
	assert.Equal(t, "Casa Reformada", updated.Title)
	assert.Equal(t, 4, updated.Bedrooms)

	w = api.do(t, http.MethodPost, path+"/values", map[string]any{
		"rental_value":   1800,
		"status":         domain.PropertyStatusOccupied,
		"reference_date": "2030-01-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(t, http.MethodGet, path, nil)
	got := decode[schema.Property](t, w)
	latest := got.LatestValue()
	require.NotNil(t, latest)
	assert.Equal(t, 1800.0, latest.RentalValue)

	w = api.do(t, http.MethodPost, "/api/v1/properties/999/values", map[string]any{"status": domain.PropertyStatusAvailable})
	assertError(t, w, http.StatusNotFound, "not_found")

	w = api.do(t, http.MethodPatch, "/api/v1/properties/999", map[string]any{"title": "X"})
	assertError(t, w, http.StatusNotFound, "not_found")
}

type propertyPage struct {
	Data        []schema.Property `json:"data"`
	Count       int64             `json:"count"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
}

func titles(page propertyPage) []string {
	out := make([]string, 0, len(page.Data))
	for _, p := range page.Data {
		out = append(out, p.Title)
	}
	return out
}

func TestListProperties(t *testing.T) {
	api := newTestAPI(t)
	typeID, ownerID := api.seed(t)
	api.createProperty(t, propertyBody("Casa Azul", ownerID, typeID, "Santos", domain.PropertyStatusAvailable, 1000))
	api.createProperty(t, propertyBody("Apto Centro", ownerID, typeID, "São Paulo", domain.PropertyStatusOccupied, 2000))
	api.createProperty(t, propertyBody("Chácara", ownerID, typeID, "Campinas", domain.PropertyStatusOccupied, 3000))

	tests := []struct {
		name     string
		query    string
		expected []string
		count    int64
	}{
		{"default newest first", "", []string{"Chácara", "Apto Centro", "Casa Azul"}, 3},
		{"direct sort", "?sort_title=asc", []string{"Apto Centro", "Casa Azul", "Chácara"}, 3},
		{"bracket sort", "?sort%5Btitle%5D=desc", []string{"Chácara", "Casa Azul", "Apto Centro"}, 3},
		{"search across relation", "?search=joao+silva&sort_title=asc", []string{"Apto Centro", "Casa Azul", "Chácara"}, 3},
		{"accent-insensitive search", "?search=sao+paulo", []string{"Apto Centro"}, 1},
		{"address filter", "?city=campinas", []string{"Chácara"}, 1},
		{"malformed filter ignored", "?bedrooms=many&sort_title=asc", []string{"Apto Centro", "Casa Azul", "Chácara"}, 3},
		{"pagination", "?sort_title=asc&limit=2&page=2", []string{"Chácara"}, 3},
		{"page out of range", "?limit=2&page=9", []string{}, 3},
		{"unaddressable page", "?limit=100&page=92233720368547759", []string{}, 3},
		{"unaddressable page in memory", "?search=azul&page=4611686018427387904", []string{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodGet, "/api/v1/properties"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			page := decode[propertyPage](t, w)
			assert.Equal(t, tt.expected, titles(page))
			assert.Equal(t, tt.count, page.Count)
		})
	}

	w := api.do(t, http.MethodGet, "/api/v1/properties?limit=abc", nil)
	assertError(t, w, http.StatusBadRequest, "validation_failed")
}

func TestDeleteAndRestore(t *testing.T) {
	api := newTestAPI(t)
	typeID, ownerID := api.seed(t)
	created := api.createProperty(t, propertyBody("Casa", ownerID, typeID, "Santos", domain.PropertyStatusAvailable, 1000))
	path := fmt.Sprintf("/api/v1/properties/%d", created.ID)

	w := api.do(t, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = api.do(t, http.MethodGet, path, nil)
	assertError(t, w, http.StatusNotFound, "not_found")

	w = api.do(t, http.MethodDelete, path, nil)
	assertError(t, w, http.StatusNotFound, "not_found")

	page := decode[propertyPage](t, api.do(t, http.MethodGet, "/api/v1/properties", nil))
	assert.Empty(t, page.Data)
	page = decode[propertyPage](t, api.do(t, http.MethodGet, "/api/v1/properties?includeInactive=true", nil))
	assert.Len(t, page.Data, 1)

	w = api.do(t, http.MethodPatch, path+"/restore", nil)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = api.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[schema.Property](t, w).Addresses, 1)

	w = api.do(t, http.MethodPatch, "/api/v1/owners/999/restore", nil)
	assertError(t, w, http.StatusNotFound, "not_found")
}

func TestCreateLease_Validation(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/leases", map[string]any{
		"contract_number": "C-1",
		"start_date":      "01/01/2024",
		"end_date":        "2024-12-31",
		"rent_due_day":    5,
	})
	assertError(t, w, http.StatusBadRequest, "validation_failed")
}

func TestGetDashboard(t *testing.T) {
	api := newTestAPI(t)
	typeID, ownerID := api.seed(t)
	api.createProperty(t, propertyBody("Livre", ownerID, typeID, "Santos", domain.PropertyStatusAvailable, 1000))
	api.createProperty(t, propertyBody("Alugada", ownerID, typeID, "Santos", domain.PropertyStatusOccupied, 2000))

	w := api.do(t, http.MethodGet, "/api/v1/dashboard?startDate=2000-01-01&endDate=2100-12-31&metric=financial", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var financial struct {
		TotalRentalActive struct {
			Result     float64 `json:"result"`
			Variation  float64 `json:"variation"`
			IsPositive bool    `json:"isPositive"`
			Data       []any   `json:"data"`
		} `json:"totalRentalActive"`
		FinancialVacancyRate struct {
			Result float64 `json:"result"`
		} `json:"financialVacancyRate"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &financial))
	assert.Equal(t, 2000.0, financial.TotalRentalActive.Result)
	assert.True(t, financial.TotalRentalActive.IsPositive)
	assert.Len(t, financial.TotalRentalActive.Data, 1)
	assert.Equal(t, 50.0, financial.FinancialVacancyRate.Result)

	w = api.do(t, http.MethodGet, "/api/v1/dashboard?startDate=2000-01-01&endDate=2100-12-31", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	all := decode[map[string]json.RawMessage](t, w)
	for _, key := range []string{"financial", "portfolio", "clients", "map"} {
		assert.Contains(t, all, key)
	}

	w = api.do(t, http.MethodGet, "/api/v1/dashboard?startDate=2000-01-01&endDate=2100-12-31&metric=revenue", nil)
	assertError(t, w, http.StatusBadRequest, "validation_failed")

	w = api.do(t, http.MethodGet, "/api/v1/dashboard?startDate=2000-01-01", nil)
	assertError(t, w, http.StatusBadRequest, "validation_failed")

	w = api.do(t, http.MethodGet, "/api/v1/dashboard?startDate=2024-02-01&endDate=2024-01-01", nil)
	assertError(t, w, http.StatusBadRequest, "validation_failed")
}
