package types

// Metric enumeration for dashboard bundles
type Metric string

const (
	MetricFinancial Metric = "financial"
	MetricPortfolio Metric = "portfolio"
	MetricClients   Metric = "clients"
	MetricMap       Metric = "map"
	MetricAll       Metric = "all"
)

// Valid checks if a metric is valid
func (m Metric) Valid() bool {
	return m == MetricFinancial ||
		m == MetricPortfolio ||
		m == MetricClients ||
		m == MetricMap ||
		m == MetricAll
}
