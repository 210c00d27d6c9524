package insight

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corazzon/st-naversearch/pkg/naver"
)

// fakeAPI satisfies naver.API with per-test behavior.
type fakeAPI struct {
	trend    func(req naver.TrendRequest) ([]naver.TrendPoint, error)
	shopping func(keyword string) ([]naver.ShopItem, error)
	blog     func(keyword string) ([]naver.BlogItem, error)
	cafe     func(keyword string) ([]naver.CafeItem, error)
	news     func(keyword string) ([]naver.NewsItem, error)
	insight  func(req naver.InsightRequest) ([]naver.TrendPoint, error)
}

func (f *fakeAPI) Trend(_ context.Context, req naver.TrendRequest) ([]naver.TrendPoint, error) {
	return f.trend(req)
}

func (f *fakeAPI) SearchShopping(_ context.Context, keyword string) ([]naver.ShopItem, error) {
	return f.shopping(keyword)
}

func (f *fakeAPI) SearchBlog(_ context.Context, keyword string) ([]naver.BlogItem, error) {
	return f.blog(keyword)
}

func (f *fakeAPI) SearchCafe(_ context.Context, keyword string) ([]naver.CafeItem, error) {
	return f.cafe(keyword)
}

func (f *fakeAPI) SearchNews(_ context.Context, keyword string) ([]naver.NewsItem, error) {
	return f.news(keyword)
}

func (f *fakeAPI) ShoppingInsight(_ context.Context, req naver.InsightRequest) ([]naver.TrendPoint, error) {
	return f.insight(req)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestService_Trend_DerivesFigures(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	var got naver.TrendRequest
	api := &fakeAPI{
		trend: func(req naver.TrendRequest) ([]naver.TrendPoint, error) {
			got = req
			return []naver.TrendPoint{
				{Keyword: "캠핑", Period: "2024-03-01", Ratio: 10},
				{Keyword: "캠핑", Period: "2024-03-02", Ratio: 20},
				{Keyword: "등산", Period: "2024-03-01", Ratio: 5},
				{Keyword: "등산", Period: "2024-03-02", Ratio: 45},
			}, nil
		},
	}
	svc := New(api, 1).WithClock(fixedClock(now))

	report, err := svc.Trend(context.Background(), TrendQuery{Keywords: []string{" 캠핑 ", "등산", ""}})
	if err != nil {
		t.Fatalf("Trend failed: %v", err)
	}

	wantStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !got.StartDate.Equal(wantStart) {
		t.Errorf("Expected default start %v, got %v", wantStart, got.StartDate)
	}
	if !got.EndDate.Equal(now) {
		t.Errorf("Expected default end at the clock time, got %v", got.EndDate)
	}
	if len(got.Keywords) != 2 || got.Keywords[0] != "캠핑" || got.Keywords[1] != "등산" {
		t.Errorf("Expected cleaned keywords, got %v", got.Keywords)
	}

	if report.Meta.Source != "trend" {
		t.Errorf("Expected source trend, got %s", report.Meta.Source)
	}
	if report.Meta.RowCount != 4 {
		t.Errorf("Expected 4 rows, got %d", report.Meta.RowCount)
	}
	if !report.Meta.FetchedAt.Equal(now) {
		t.Errorf("Expected FetchedAt from the clock, got %v", report.Meta.FetchedAt)
	}

	if len(report.Summary) != 2 || report.Summary[0].Group != "캠핑" || report.Summary[0].Mean != 15 {
		t.Errorf("Unexpected summary: %+v", report.Summary)
	}
	if len(report.Shares) != 2 || report.Shares[0].Keyword != "등산" || report.Shares[0].Mean != 25 {
		t.Errorf("Expected shares ranked by mean ratio, got %+v", report.Shares)
	}
	if len(report.Peaks) != 2 {
		t.Fatalf("Expected 2 peaks, got %d", len(report.Peaks))
	}
	if report.Peaks[0].Period != "2024-03-02" || report.Peaks[0].Ratio != 20 {
		t.Errorf("Unexpected first peak: %+v", report.Peaks[0])
	}
	if report.Peaks[1].Keyword != "등산" || report.Peaks[1].Ratio != 45 {
		t.Errorf("Unexpected second peak: %+v", report.Peaks[1])
	}
	if len(report.Changes) != 0 {
		t.Errorf("Expected no change figures for a short series, got %+v", report.Changes)
	}
}

func TestService_Trend_WeekOverWeek(t *testing.T) {
	points := make([]naver.TrendPoint, 0, 14)
	for i := 0; i < 14; i++ {
		ratio := 10.0
		if i >= 7 {
			ratio = 5.0
		}
		points = append(points, naver.TrendPoint{
			Keyword: "캠핑",
			Period:  time.Date(2024, 3, 1+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			Ratio:   ratio,
		})
	}
	api := &fakeAPI{
		trend: func(naver.TrendRequest) ([]naver.TrendPoint, error) { return points, nil },
	}

	report, err := New(api, 1).Trend(context.Background(), TrendQuery{Keywords: []string{"캠핑"}})
	if err != nil {
		t.Fatalf("Trend failed: %v", err)
	}
	if len(report.Changes) != 1 {
		t.Fatalf("Expected 1 change figure, got %d", len(report.Changes))
	}
	if report.Changes[0].Keyword != "캠핑" || report.Changes[0].ChangePct != -50 {
		t.Errorf("Expected -50%% week over week, got %+v", report.Changes[0])
	}
}

func TestService_Trend_NoKeywords(t *testing.T) {
	calls := 0
	api := &fakeAPI{
		trend: func(naver.TrendRequest) ([]naver.TrendPoint, error) {
			calls++
			return nil, nil
		},
	}

	_, err := New(api, 1).Trend(context.Background(), TrendQuery{Keywords: []string{"", "  "}})
	if err == nil {
		t.Fatal("Expected an error for blank keywords")
	}
	if calls != 0 {
		t.Errorf("Expected no API call, got %d", calls)
	}
}

func TestService_Trend_PropagatesError(t *testing.T) {
	wantErr := &naver.StatusError{Endpoint: "trend", Status: 500}
	api := &fakeAPI{
		trend: func(naver.TrendRequest) ([]naver.TrendPoint, error) { return nil, wantErr },
	}

	report, err := New(api, 1).Trend(context.Background(), TrendQuery{Keywords: []string{"캠핑"}})
	if err == nil {
		t.Fatal("Expected the datalab error to propagate")
	}
	var statusErr *naver.StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != 500 {
		t.Errorf("Expected the status error, got %v", err)
	}
	if report != nil {
		t.Errorf("Expected no report on error, got %+v", report)
	}
}

func TestService_Trend_NormalizesDemographics(t *testing.T) {
	var got naver.TrendRequest
	api := &fakeAPI{
		trend: func(req naver.TrendRequest) ([]naver.TrendPoint, error) {
			got = req
			return nil, nil
		},
	}

	_, err := New(api, 1).Trend(context.Background(), TrendQuery{
		Keywords: []string{"캠핑"},
		Gender:   "Female",
		Ages:     []string{" 3", "", "4"},
	})
	if err != nil {
		t.Fatalf("Trend failed: %v", err)
	}
	if got.Gender != "f" {
		t.Errorf("Expected gender f, got %q", got.Gender)
	}
	if len(got.Ages) != 2 || got.Ages[0] != "3" || got.Ages[1] != "4" {
		t.Errorf("Expected cleaned age codes, got %v", got.Ages)
	}
}

func TestService_Insight_EmptyResult(t *testing.T) {
	var got naver.InsightRequest
	api := &fakeAPI{
		insight: func(req naver.InsightRequest) ([]naver.TrendPoint, error) {
			got = req
			return nil, nil
		},
	}

	report, err := New(api, 1).Insight(context.Background(), InsightQuery{Keywords: []string{"오메가3"}})
	if err != nil {
		t.Fatalf("Insight failed: %v", err)
	}
	if got.Category != DefaultInsightCategory {
		t.Errorf("Expected the default category, got %q", got.Category)
	}
	if !report.Empty {
		t.Error("Expected the report to be marked empty")
	}
	if report.Category != DefaultInsightCategory {
		t.Errorf("Expected the default category in the report, got %q", report.Category)
	}
	if report.Summary != nil || report.Peaks != nil {
		t.Errorf("Expected no figures for an empty result, got %+v", report)
	}
}

func TestService_Insight_DerivesFigures(t *testing.T) {
	api := &fakeAPI{
		insight: func(req naver.InsightRequest) ([]naver.TrendPoint, error) {
			return []naver.TrendPoint{
				{Keyword: "오메가3", Period: "2024-03-01", Ratio: 40},
				{Keyword: "오메가3", Period: "2024-03-02", Ratio: 60},
			}, nil
		},
	}

	report, err := New(api, 1).Insight(context.Background(), InsightQuery{
		Category: "50000002",
		Keywords: []string{"오메가3"},
	})
	if err != nil {
		t.Fatalf("Insight failed: %v", err)
	}
	if report.Empty {
		t.Error("Expected a non-empty report")
	}
	if report.Category != "50000002" {
		t.Errorf("Expected the requested category, got %q", report.Category)
	}
	if len(report.Summary) != 1 || report.Summary[0].Mean != 50 {
		t.Errorf("Unexpected summary: %+v", report.Summary)
	}
	if len(report.Peaks) != 1 || report.Peaks[0].Period != "2024-03-02" {
		t.Errorf("Unexpected peaks: %+v", report.Peaks)
	}
}
