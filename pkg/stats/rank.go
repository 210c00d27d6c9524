package stats

import "sort"

// Count pairs a categorical value with its frequency.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// TopN ranks values by frequency, descending. Ties keep first-encounter
// order; the result is truncated to n when n is positive.
func TopN(values []string, n int) []Count {
	var order []string
	counts := make(map[string]int)
	for _, v := range values {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	ranked := make([]Count, 0, len(order))
	for _, v := range order {
		ranked = append(ranked, Count{Value: v, Count: counts[v]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Peak is the position of a group's maximum sample.
type Peak struct {
	Group string
	Index int
	Value float64
}

// PeaksByGroup finds each group's maximum sample. The first occurrence
// wins ties; groups come back in first-encounter order. Index points
// into the input slice so callers can recover the full row.
func PeaksByGroup(samples []Sample) []Peak {
	var order []string
	best := make(map[string]Peak)
	for i, s := range samples {
		current, seen := best[s.Group]
		if !seen {
			order = append(order, s.Group)
			best[s.Group] = Peak{Group: s.Group, Index: i, Value: s.Value}
			continue
		}
		if s.Value > current.Value {
			best[s.Group] = Peak{Group: s.Group, Index: i, Value: s.Value}
		}
	}

	peaks := make([]Peak, 0, len(order))
	for _, g := range order {
		peaks = append(peaks, best[g])
	}
	return peaks
}
