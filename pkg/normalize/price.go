package normalize

import (
	"strconv"
	"strings"
)

// ParsePrice coerces a wire price string to whole currency units. The
// second return is false for blank or non-numeric values; such rows
// stay in their table but drop out of price statistics.
func ParsePrice(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// Band is one price interval. The first band covers [Lower, Upper],
// every later band (Lower, Upper].
type Band struct {
	Label string `json:"label"`
	Lower int64  `json:"lower"`
	Upper int64  `json:"upper"`
}

// Bands is an ordered partition of [0, max observed price].
type Bands []Band

var priceLadders = []struct {
	limit  int64
	edges  []int64
	labels []string
}{
	{
		limit:  50000,
		edges:  []int64{0, 10000, 20000, 30000, 40000, 50000},
		labels: []string{"~1만", "1~2만", "2~3만", "3~4만", "4~5만", "5만~"},
	},
	{
		limit:  100000,
		edges:  []int64{0, 20000, 40000, 60000, 80000, 100000},
		labels: []string{"~2만", "2~4만", "4~6만", "6~8만", "8~10만", "10만~"},
	},
	{
		limit:  0, // no upper limit
		edges:  []int64{0, 50000, 100000, 200000, 500000},
		labels: []string{"~5만", "5~10만", "10~20만", "20~50만", "50만~"},
	},
}

// PriceBands picks the breakpoint ladder for the maximum observed
// price and clips it there: edges at or above the max are replaced by
// the max itself, so the returned bands partition [0, maxPrice].
func PriceBands(maxPrice int64) Bands {
	if maxPrice <= 0 {
		return nil
	}

	ladder := priceLadders[len(priceLadders)-1]
	for _, candidate := range priceLadders {
		if candidate.limit > 0 && maxPrice <= candidate.limit {
			ladder = candidate
			break
		}
	}

	edges := []int64{0}
	for _, edge := range ladder.edges[1:] {
		if edge < maxPrice {
			edges = append(edges, edge)
		}
	}
	edges = append(edges, maxPrice)

	bands := make(Bands, 0, len(edges)-1)
	for i := 0; i < len(edges)-1; i++ {
		bands = append(bands, Band{
			Label: ladder.labels[i],
			Lower: edges[i],
			Upper: edges[i+1],
		})
	}
	return bands
}

// Assign returns the index of the band containing price, or -1 when
// the price falls outside the partition.
func (bs Bands) Assign(price int64) int {
	for i, b := range bs {
		if i == 0 {
			if price >= b.Lower && price <= b.Upper {
				return i
			}
			continue
		}
		if price > b.Lower && price <= b.Upper {
			return i
		}
	}
	return -1
}
