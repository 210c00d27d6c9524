package stats

import (
	"fmt"
	"testing"
)

func TestWordFrequency(t *testing.T) {
	titles := []string{
		"오메가3 고함량 캡슐",
		"고함량 오메가3 세트",
		"프리미엄 캡슐",
	}

	ranked := WordFrequency(titles, []string{"오메가3"}, 2)
	if len(ranked) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(ranked))
	}
	if ranked[0].Value != "고함량" || ranked[0].Count != 2 {
		t.Errorf("Expected 고함량 x2 first, got %+v", ranked[0])
	}
	if ranked[1].Value != "캡슐" || ranked[1].Count != 2 {
		t.Errorf("Expected 캡슐 x2 second, got %+v", ranked[1])
	}
}

func TestWordFrequency_DropsShortTokens(t *testing.T) {
	titles := []string{"물 좋은 유산균", "좋은 물"}

	ranked := WordFrequency(titles, nil, 10)
	for _, c := range ranked {
		if c.Value == "물" {
			t.Error("Expected single-character tokens to be dropped")
		}
	}
	if ranked[0].Value != "좋은" || ranked[0].Count != 2 {
		t.Errorf("Expected 좋은 x2, got %+v", ranked[0])
	}
}

func TestWordFrequency_DropsActiveKeywords(t *testing.T) {
	titles := []string{"비타민D 세트", "비타민D 단품"}

	ranked := WordFrequency(titles, []string{"비타민D", "유산균"}, 10)
	for _, c := range ranked {
		if c.Value == "비타민D" {
			t.Error("Expected active keywords to be dropped")
		}
	}
	if len(ranked) != 2 {
		t.Errorf("Expected 2 remaining tokens, got %d", len(ranked))
	}
}

// BenchmarkWordFrequency benchmarks related-word counting over a
// full-size result page worth of titles.
func BenchmarkWordFrequency(b *testing.B) {
	titles := make([]string, 100)
	for i := range titles {
		titles[i] = fmt.Sprintf("오메가3 고함량 %d 프리미엄 캡슐 세트", i)
	}
	keywords := []string{"오메가3", "비타민D", "유산균"}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		WordFrequency(titles, keywords, 15)
	}
}
