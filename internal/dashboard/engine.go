// Package dashboard computes the back-office dashboard metrics. Every metric compares
// the requested window with the window of equal length immediately before it.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/adapter"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/domain"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/geocoding"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/logger"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/store"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/store/schema"
)

const daysPerMonth = 30

// Reader is the subset of the store the dashboard reads from
type Reader interface {
	GetPropertiesCreatedBetween(ctx context.Context, start, end time.Time) ([]schema.Property, error)
	CountClientsCreatedBetween(ctx context.Context, start, end time.Time) (*store.ClientCounts, error)
	CountPropertiesByAgency(ctx context.Context, start, end time.Time) ([]store.GroupCount, error)
}

// Resolver places addresses on the map
type Resolver interface {
	ResolveAll(ctx context.Context, addresses []geocoding.Address) []geocoding.Location
}

// Config holds metric tuning
type Config struct {
	// MinDocumentsPerProperty is the document count below which a property is flagged
	MinDocumentsPerProperty int
}

// PropertySummary is the drill-down row of a property behind a metric
type PropertySummary struct {
	ID            uint64                `json:"id"`
	Title         string                `json:"title"`
	Type          string                `json:"type,omitempty"`
	Agency        string                `json:"agency,omitempty"`
	Owner         string                `json:"owner,omitempty"`
	Status        domain.PropertyStatus `json:"status,omitempty"`
	RentalValue   float64               `json:"rental_value"`
	PurchaseValue float64               `json:"purchase_value"`
	DocumentCount int                   `json:"document_count"`
}

// FinancialMetrics is the financial bundle
type FinancialMetrics struct {
	AverageRentalTicket          MetricResult[PropertySummary] `json:"averageRentalTicket"`
	TotalRentalActive            MetricResult[PropertySummary] `json:"totalRentalActive"`
	TotalPotentialRentUnoccupied MetricResult[PropertySummary] `json:"totalPotentialRentUnoccupied"`
	TotalAcquisitionValue        MetricResult[PropertySummary] `json:"totalAcquisitionValue"`
	TotalPropertyTaxAndCondoFee  MetricResult[PropertySummary] `json:"totalPropertyTaxAndCondoFee"`
	FinancialVacancyRate         MetricResult[PropertySummary] `json:"financialVacancyRate"`
	VacancyInMonths              MetricResult[PropertySummary] `json:"vacancyInMonths"`
}

// PortfolioMetrics is the portfolio bundle
type PortfolioMetrics struct {
	TotalProperties            MetricResult[PropertySummary] `json:"totalProperties"`
	PropertiesWithFewDocuments MetricResult[PropertySummary] `json:"propertiesWithFewDocuments"`
	AvailablePropertiesByType  []ChartData                   `json:"availablePropertiesByType"`
	VacancyRate                MetricResult[PropertySummary] `json:"vacancyRate"`
	PhysicalVacancyInMonths    MetricResult[PropertySummary] `json:"physicalVacancyInMonths"`
}

// ClientsMetrics is the clients bundle
type ClientsMetrics struct {
	TotalOwners        MetricResult[ChartData] `json:"totalOwners"`
	TotalTenants       MetricResult[ChartData] `json:"totalTenants"`
	PropertiesPerOwner MetricResult[ChartData] `json:"propertiesPerOwner"`
	TotalAgencies      MetricResult[ChartData] `json:"totalAgencies"`
	PropertiesByAgency []ChartData             `json:"propertiesByAgency"`
}

// AllMetrics combines every bundle
type AllMetrics struct {
	Financial *FinancialMetrics    `json:"financial"`
	Portfolio *PortfolioMetrics    `json:"portfolio"`
	Clients   *ClientsMetrics      `json:"clients"`
	Map       []geocoding.Location `json:"map"`
}

// Engine computes dashboard metrics
type Engine struct {
	reader   Reader
	resolver Resolver
	clock    adapter.Clock
	config   Config
}

// NewEngine creates a new dashboard engine
func NewEngine(reader Reader, resolver Resolver, clock adapter.Clock, cfg Config) *Engine {
	if cfg.MinDocumentsPerProperty <= 0 {
		cfg.MinDocumentsPerProperty = domain.MIN_DOCUMENTS_PER_PROPERTY
	}
	return &Engine{
		reader:   reader,
		resolver: resolver,
		clock:    clock,
		config:   cfg,
	}
}

func validatePeriod(start, end time.Time) error {
	if end.Before(start) {
		return domain.ErrInvalidPeriod
	}
	return nil
}

// fetchWindows runs fetch for the current and the previous window concurrently
func fetchWindows[T any](ctx context.Context, p Periods, fetch func(ctx context.Context, start, end time.Time) (T, error)) (current, previous T, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = fetch(gctx, p.CurrentStart, p.CurrentEnd)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = fetch(gctx, p.PreviousStart, p.PreviousEnd)
		return err
	})
	err = g.Wait()
	return current, previous, err
}

// =============================================================================
// Financial
// =============================================================================

type financialTotals struct {
	averageRent     float64
	activeRent      float64
	unoccupiedRent  float64
	acquisition     float64
	taxAndCondo     float64
	vacancyRate     float64
	vacancyInMonths float64
	valued          []PropertySummary
	occupied        []PropertySummary
	available       []PropertySummary
}

// financialTotalsOf reduces the latest value snapshot of every property.
// Properties without any snapshot contribute nothing.
func financialTotalsOf(properties []schema.Property) financialTotals {
	var t financialTotals
	var rentSum float64

	for i := range properties {
		latest := properties[i].LatestValue()
		if latest == nil {
			continue
		}
		summary := summarize(&properties[i])

		rentSum += latest.RentalValue
		t.acquisition += latest.PurchaseValue
		t.taxAndCondo += latest.PropertyTax + latest.CondoFee
		t.valued = append(t.valued, summary)

		switch latest.Status {
		case domain.PropertyStatusOccupied:
			t.activeRent += latest.RentalValue
			t.occupied = append(t.occupied, summary)
		case domain.PropertyStatusAvailable:
			t.unoccupiedRent += latest.RentalValue
			t.available = append(t.available, summary)
		}
	}

	t.averageRent = ratio(rentSum, float64(len(t.valued)))
	t.vacancyRate = ratio(t.unoccupiedRent, t.activeRent) * 100
	t.vacancyInMonths = ratio(t.unoccupiedRent, t.averageRent)
	return t
}

// Financial computes rent, acquisition and vacancy figures of the properties created in the window
func (e *Engine) Financial(ctx context.Context, start, end time.Time) (*FinancialMetrics, error) {
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}

	current, previous, err := fetchWindows(ctx, PeriodDates(start, end), e.reader.GetPropertiesCreatedBetween)
	if err != nil {
		return nil, fmt.Errorf("failed to load properties for financial metrics: %w", err)
	}

	cur := financialTotalsOf(current)
	prev := financialTotalsOf(previous)

	return &FinancialMetrics{
		AverageRentalTicket:          CalcVariation(cur.averageRent, prev.averageRent, cur.valued),
		TotalRentalActive:            CalcVariation(cur.activeRent, prev.activeRent, cur.occupied),
		TotalPotentialRentUnoccupied: CalcVariation(cur.unoccupiedRent, prev.unoccupiedRent, cur.available),
		TotalAcquisitionValue:        CalcVariation(cur.acquisition, prev.acquisition, cur.valued),
		TotalPropertyTaxAndCondoFee:  CalcVariation(cur.taxAndCondo, prev.taxAndCondo, cur.valued),
		FinancialVacancyRate:         CalcVariation(cur.vacancyRate, prev.vacancyRate, cur.available),
		VacancyInMonths:              CalcVariation(cur.vacancyInMonths, prev.vacancyInMonths, cur.available),
	}, nil
}

// =============================================================================
// Portfolio
// =============================================================================

type portfolioTotals struct {
	total           []PropertySummary
	fewDocuments    []PropertySummary
	available       []PropertySummary
	availableByType map[string]int
	vacancyRate     float64
	physicalVacancy float64
}

// portfolioTotalsOf reduces the properties of one window ending at windowEnd
func portfolioTotalsOf(properties []schema.Property, windowEnd time.Time, minDocuments int) portfolioTotals {
	t := portfolioTotals{availableByType: make(map[string]int)}
	var idleMonths float64

	for i := range properties {
		p := &properties[i]
		summary := summarize(p)
		t.total = append(t.total, summary)

		if len(p.Documents) < minDocuments {
			t.fewDocuments = append(t.fewDocuments, summary)
		}

		latest := p.LatestValue()
		if latest == nil || latest.Status != domain.PropertyStatusAvailable {
			continue
		}
		t.available = append(t.available, summary)
		t.availableByType[summary.Type]++

		if idle := windowEnd.Sub(latest.ReferenceDate); idle > 0 {
			idleMonths += idle.Hours() / 24 / daysPerMonth
		}
	}

	t.vacancyRate = ratio(float64(len(t.available)), float64(len(t.total))) * 100
	t.physicalVacancy = ratio(idleMonths, float64(len(t.available)))
	return t
}

// Portfolio computes size, documentation and vacancy figures of the properties created in the window
func (e *Engine) Portfolio(ctx context.Context, start, end time.Time) (*PortfolioMetrics, error) {
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}

	periods := PeriodDates(start, end)
	current, previous, err := fetchWindows(ctx, periods, e.reader.GetPropertiesCreatedBetween)
	if err != nil {
		return nil, fmt.Errorf("failed to load properties for portfolio metrics: %w", err)
	}

	minDocuments := e.config.MinDocumentsPerProperty
	cur := portfolioTotalsOf(current, periods.CurrentEnd, minDocuments)
	prev := portfolioTotalsOf(previous, periods.PreviousEnd, minDocuments)

	return &PortfolioMetrics{
		TotalProperties:            CalcVariation(float64(len(cur.total)), float64(len(prev.total)), cur.total),
		PropertiesWithFewDocuments: CalcVariation(float64(len(cur.fewDocuments)), float64(len(prev.fewDocuments)), cur.fewDocuments),
		AvailablePropertiesByType:  chartFromCounts(cur.availableByType),
		VacancyRate:                CalcVariation(cur.vacancyRate, prev.vacancyRate, cur.available),
		PhysicalVacancyInMonths:    CalcVariation(cur.physicalVacancy, prev.physicalVacancy, cur.available),
	}, nil
}

// =============================================================================
// Clients
// =============================================================================

// Clients computes owner, tenant and agency figures for the window
func (e *Engine) Clients(ctx context.Context, start, end time.Time) (*ClientsMetrics, error) {
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}

	periods := PeriodDates(start, end)
	var (
		current, previous *store.ClientCounts
		byAgency          []store.GroupCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, previous, err = fetchWindows(gctx, periods, e.reader.CountClientsCreatedBetween)
		return err
	})
	g.Go(func() error {
		var err error
		byAgency, err = e.reader.CountPropertiesByAgency(gctx, periods.CurrentStart, periods.CurrentEnd)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load counts for clients metrics: %w", err)
	}

	chart := make([]ChartData, 0, len(byAgency))
	for _, group := range byAgency {
		chart = append(chart, ChartData{Name: group.Name, Value: float64(group.Count)})
	}

	return &ClientsMetrics{
		TotalOwners:  CalcVariation[ChartData](float64(current.Owners), float64(previous.Owners), nil),
		TotalTenants: CalcVariation[ChartData](float64(current.Tenants), float64(previous.Tenants), nil),
		PropertiesPerOwner: CalcVariation[ChartData](
			ratio(float64(current.Properties), float64(current.Owners)),
			ratio(float64(previous.Properties), float64(previous.Owners)),
			nil),
		TotalAgencies:      CalcVariation[ChartData](float64(current.Agencies), float64(previous.Agencies), nil),
		PropertiesByAgency: chart,
	}, nil
}

// =============================================================================
// Geolocation
// =============================================================================

// AddressesOf flattens properties into one map address per property-address pair
func AddressesOf(properties []schema.Property) []geocoding.Address {
	var addresses []geocoding.Address
	for i := range properties {
		p := &properties[i]
		for _, link := range p.Addresses {
			if link.Address == nil {
				continue
			}
			addresses = append(addresses, geocoding.Address{
				Title:    p.Title,
				Street:   link.Address.Street,
				Number:   link.Address.Number,
				District: link.Address.District,
				City:     link.Address.City,
				State:    link.Address.State,
				ZipCode:  link.Address.ZipCode,
			})
		}
	}
	return addresses
}

// Geolocation places the addresses of the properties created in the window on the map.
// Addresses that cannot be resolved are left out.
func (e *Engine) Geolocation(ctx context.Context, start, end time.Time) ([]geocoding.Location, error) {
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}

	properties, err := e.reader.GetPropertiesCreatedBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load properties for geolocation: %w", err)
	}

	addresses := AddressesOf(properties)
	begin := e.clock.Now()
	locations := e.resolver.ResolveAll(ctx, addresses)

	logger.InfoCtx(ctx, "Resolved property locations",
		zap.Int("properties", len(properties)),
		zap.Int("addresses", len(addresses)),
		zap.Int("locations", len(locations)),
		zap.Duration("duration", e.clock.Since(begin)))

	return locations, nil
}

// All computes every bundle concurrently
func (e *Engine) All(ctx context.Context, start, end time.Time) (*AllMetrics, error) {
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}

	var out AllMetrics
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.Financial, err = e.Financial(gctx, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		out.Portfolio, err = e.Portfolio(gctx, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		out.Clients, err = e.Clients(gctx, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		out.Map, err = e.Geolocation(gctx, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// Helpers
// =============================================================================

func summarize(p *schema.Property) PropertySummary {
	s := PropertySummary{
		ID:            p.ID,
		Title:         p.Title,
		DocumentCount: len(p.Documents),
	}
	if p.Type != nil {
		s.Type = p.Type.Description
	}
	if p.Agency != nil {
		s.Agency = p.Agency.TradeName
	}
	if p.Owner != nil {
		s.Owner = p.Owner.Name
	}
	if latest := p.LatestValue(); latest != nil {
		s.Status = latest.Status
		s.RentalValue = latest.RentalValue
		s.PurchaseValue = latest.PurchaseValue
	}
	return s
}

// chartFromCounts orders a count map by value descending, then by name
func chartFromCounts(counts map[string]int) []ChartData {
	chart := make([]ChartData, 0, len(counts))
	for name, count := range counts {
		chart = append(chart, ChartData{Name: name, Value: float64(count)})
	}
	sort.Slice(chart, func(i, j int) bool {
		if chart[i].Value != chart[j].Value {
			return chart[i].Value > chart[j].Value
		}
		return chart[i].Name < chart[j].Name
	})
	return chart
}
