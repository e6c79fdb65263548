package dashboard

import (
	"math"
	"time"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/domain"
)

// MetricResult is a metric of the current window compared with the previous one.
// Data carries the records behind the metric for drill-down and is never nil.
type MetricResult[T any] struct {
	Result     float64 `json:"result"`
	Variation  float64 `json:"variation"`
	IsPositive bool    `json:"isPositive"`
	Data       []T     `json:"data"`
}

// ChartData is one point of a chart series
type ChartData struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// CalcVariation wraps current with its percentage change from previous.
// The variation is clamped to ±MAX_VARIATION_PERCENT; a zero or non-finite previous
// value yields no variation.
func CalcVariation[T any](current, previous float64, data []T) MetricResult[T] {
	if data == nil {
		data = []T{}
	}
	current = finite(current)

	if previous == 0 || math.IsNaN(previous) || math.IsInf(previous, 0) {
		return MetricResult[T]{
			Result:     round2(current),
			Variation:  0,
			IsPositive: current >= 0,
			Data:       data,
		}
	}

	variation := (current - previous) / previous * 100
	variation = math.Max(-domain.MAX_VARIATION_PERCENT, math.Min(domain.MAX_VARIATION_PERCENT, variation))
	variation = round2(variation)

	return MetricResult[T]{
		Result:     round2(current),
		Variation:  variation,
		IsPositive: variation >= 0,
		Data:       data,
	}
}

// Periods holds the requested window and the window immediately before it
type Periods struct {
	CurrentStart  time.Time
	CurrentEnd    time.Time
	PreviousStart time.Time
	PreviousEnd   time.Time
}

// PeriodDates derives the previous window: it ends 1ms before start and lasts as long
// as the requested window. The length is carried in seconds plus nanoseconds because
// time.Duration saturates for windows longer than about 292 years.
func PeriodDates(start, end time.Time) Periods {
	previousEnd := start.Add(-time.Millisecond)
	seconds := end.Unix() - start.Unix()
	nanos := int64(end.Nanosecond() - start.Nanosecond())
	previousStart := time.Unix(previousEnd.Unix()-seconds, int64(previousEnd.Nanosecond())-nanos).
		In(start.Location())
	return Periods{
		CurrentStart:  start,
		CurrentEnd:    end,
		PreviousStart: previousStart,
		PreviousEnd:   previousEnd,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ratio returns num/den, or 0 when den is zero
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
