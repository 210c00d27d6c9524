package stats

import (
	"math"
	"sort"
)

// Sample is one (group, value) observation.
type Sample struct {
	Group string
	Value float64
}

// Summary is the numeric profile of one group.
type Summary struct {
	Group  string  `json:"group"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// GroupSummaries profiles samples per group. Groups come back in
// first-encounter order; every figure is rounded to the given number
// of decimals.
func GroupSummaries(samples []Sample, decimals int) []Summary {
	var order []string
	grouped := make(map[string][]float64)
	for _, s := range samples {
		if _, seen := grouped[s.Group]; !seen {
			order = append(order, s.Group)
		}
		grouped[s.Group] = append(grouped[s.Group], s.Value)
	}

	summaries := make([]Summary, 0, len(order))
	for _, group := range order {
		values := grouped[group]
		summaries = append(summaries, Summary{
			Group:  group,
			Count:  len(values),
			Mean:   Round(mean(values), decimals),
			Median: Round(median(values), decimals),
			Std:    Round(std(values), decimals),
			Min:    Round(minOf(values), decimals),
			Max:    Round(maxOf(values), decimals),
		})
	}
	return summaries
}

// Describe profiles a single unnamed series with the same figures as
// GroupSummaries.
func Describe(values []float64, decimals int) Summary {
	return Summary{
		Count:  len(values),
		Mean:   Round(mean(values), decimals),
		Median: Round(median(values), decimals),
		Std:    Round(std(values), decimals),
		Min:    Round(minOf(values), decimals),
		Max:    Round(maxOf(values), decimals),
	}
}

// Quantile returns the linearly interpolated q-quantile (0 <= q <= 1)
// of values. An empty input yields 0.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Round rounds to the given number of decimal places.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// std is the sample standard deviation; fewer than two values yield 0.
func std(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

func minOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
