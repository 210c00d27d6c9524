package normalize

import "testing"

func TestParsePrice(t *testing.T) {
	cases := []struct {
		input    string
		expected int64
		ok       bool
	}{
		{"15900", 15900, true},
		{" 15,900 ", 15900, true},
		{"0", 0, true},
		{"", 0, false},
		{"가격문의", 0, false},
		{"15900.5", 0, false},
		{"-100", 0, false},
	}

	for _, tc := range cases {
		got, ok := ParsePrice(tc.input)
		if ok != tc.ok || got != tc.expected {
			t.Errorf("ParsePrice(%q): expected (%d, %v), got (%d, %v)", tc.input, tc.expected, tc.ok, got, ok)
		}
	}
}

func TestPriceBands_LadderSelection(t *testing.T) {
	cases := []struct {
		name      string
		maxPrice  int64
		labels    []string
		lastUpper int64
	}{
		{"ladder A clipped", 45000, []string{"~1만", "1~2만", "2~3만", "3~4만", "4~5만"}, 45000},
		{"ladder A full", 50000, []string{"~1만", "1~2만", "2~3만", "3~4만", "4~5만"}, 50000},
		{"ladder A low max", 8000, []string{"~1만"}, 8000},
		{"ladder B", 80000, []string{"~2만", "2~4만", "4~6만", "6~8만"}, 80000},
		{"ladder C clipped", 300000, []string{"~5만", "5~10만", "10~20만", "20~50만"}, 300000},
		{"ladder C full", 700000, []string{"~5만", "5~10만", "10~20만", "20~50만", "50만~"}, 700000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bands := PriceBands(tc.maxPrice)
			if len(bands) != len(tc.labels) {
				t.Fatalf("Expected %d bands, got %d", len(tc.labels), len(bands))
			}
			for i, label := range tc.labels {
				if bands[i].Label != label {
					t.Errorf("Band %d: expected label %s, got %s", i, label, bands[i].Label)
				}
			}
			if bands[0].Lower != 0 {
				t.Errorf("Expected first band to start at 0, got %d", bands[0].Lower)
			}
			if bands[len(bands)-1].Upper != tc.lastUpper {
				t.Errorf("Expected last band to end at %d, got %d", tc.lastUpper, bands[len(bands)-1].Upper)
			}
		})
	}
}

func TestPriceBands_PartitionEveryPrice(t *testing.T) {
	bands := PriceBands(45000)
	prices := []int64{0, 1, 9999, 10000, 10001, 25000, 39999, 40000, 40001, 45000}

	for _, price := range prices {
		idx := bands.Assign(price)
		if idx < 0 {
			t.Errorf("Price %d fell outside every band", price)
			continue
		}
		b := bands[idx]
		if price < b.Lower || price > b.Upper {
			t.Errorf("Price %d assigned to band [%d, %d]", price, b.Lower, b.Upper)
		}
	}

	// Edge values land in the lower band: intervals are (lower, upper].
	if idx := bands.Assign(10000); idx != 0 {
		t.Errorf("Expected 10000 in first band, got band %d", idx)
	}
	if idx := bands.Assign(10001); idx != 1 {
		t.Errorf("Expected 10001 in second band, got band %d", idx)
	}
	if idx := bands.Assign(45001); idx != -1 {
		t.Errorf("Expected price above max outside partition, got band %d", idx)
	}
}

func TestPriceBands_NoPrices(t *testing.T) {
	if bands := PriceBands(0); bands != nil {
		t.Errorf("Expected no bands without a positive max, got %v", bands)
	}
}
