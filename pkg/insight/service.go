package insight

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/corazzon/st-naversearch/pkg/fetch"
	"github.com/corazzon/st-naversearch/pkg/logger"
	"github.com/corazzon/st-naversearch/pkg/naver"
	"github.com/corazzon/st-naversearch/pkg/stats"
)

// Service builds analysis reports over the remote client. It is safe
// for concurrent use; all mutable state lives in the client's cache.
type Service struct {
	api     naver.API
	workers int
	now     func() time.Time
	log     *logger.Logger
}

var _ ReportService = (*Service)(nil)

// New creates a service. workers bounds the per-keyword fan-out for
// the search sources; one means strictly sequential calls.
func New(api naver.API, workers int) *Service {
	if workers <= 0 {
		workers = 1
	}
	return &Service{
		api:     api,
		workers: workers,
		now:     time.Now,
		log:     logger.GetLogger().WithField("component", "insight"),
	}
}

// WithClock replaces the service's time source, which seeds default
// date ranges and report timestamps. Call before first use.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Trend fetches the interest series for all keywords in one call and
// derives the per-keyword figures.
func (s *Service) Trend(ctx context.Context, q TrendQuery) (*TrendReport, error) {
	keywords := cleanStrings(q.Keywords)
	if len(keywords) == 0 {
		return nil, fmt.Errorf("no keywords to query")
	}
	dates := q.Range.Normalize(s.now())

	points, err := s.api.Trend(ctx, naver.TrendRequest{
		Keywords:  keywords,
		StartDate: dates.Start,
		EndDate:   dates.End,
		Gender:    normalizeGender(q.Gender),
		Ages:      cleanStrings(q.Ages),
	})
	if err != nil {
		return nil, err
	}

	report := &TrendReport{
		Meta:   s.meta(naver.EndpointTrend, keywords, len(points), nil),
		Points: points,
	}
	if len(points) == 0 {
		return report, nil
	}

	samples := ratioSamples(points)
	report.Summary = stats.GroupSummaries(samples, 2)
	report.Shares = sharesFromSummary(report.Summary)
	report.Peaks = peaksFromPoints(points, samples)

	for _, kw := range keywords {
		series := make([]float64, 0, len(points))
		for _, p := range points {
			if p.Keyword == kw {
				series = append(series, p.Ratio)
			}
		}
		if change, ok := stats.WeekOverWeekChange(series); ok {
			report.Changes = append(report.Changes, KeywordChange{
				Keyword:   kw,
				ChangePct: stats.Round(change, 1),
			})
		}
	}
	return report, nil
}

// Insight fetches the category-scoped keyword trend. An empty result
// is a valid report with Empty set, not an error.
func (s *Service) Insight(ctx context.Context, q InsightQuery) (*InsightReport, error) {
	keywords := cleanStrings(q.Keywords)
	if len(keywords) == 0 {
		return nil, fmt.Errorf("no keywords to query")
	}
	category := strings.TrimSpace(q.Category)
	if category == "" {
		category = DefaultInsightCategory
	}
	dates := q.Range.Normalize(s.now())

	points, err := s.api.ShoppingInsight(ctx, naver.InsightRequest{
		Category:  category,
		Keywords:  keywords,
		StartDate: dates.Start,
		EndDate:   dates.End,
	})
	if err != nil {
		return nil, err
	}

	report := &InsightReport{
		Meta:     s.meta(naver.EndpointInsight, keywords, len(points), nil),
		Category: category,
		Points:   points,
		Empty:    len(points) == 0,
	}
	if report.Empty {
		return report, nil
	}

	samples := ratioSamples(points)
	report.Summary = stats.GroupSummaries(samples, 2)
	report.Peaks = peaksFromPoints(points, samples)
	return report, nil
}

func (s *Service) meta(source string, keywords []string, rows int, failures []fetch.KeywordError) ReportMeta {
	return ReportMeta{
		Source:    source,
		Keywords:  keywords,
		RowCount:  rows,
		Failures:  failures,
		FetchedAt: s.now(),
	}
}

func ratioSamples(points []naver.TrendPoint) []stats.Sample {
	samples := make([]stats.Sample, 0, len(points))
	for _, p := range points {
		samples = append(samples, stats.Sample{Group: p.Keyword, Value: p.Ratio})
	}
	return samples
}

func sharesFromSummary(summary []stats.Summary) []KeywordShare {
	shares := make([]KeywordShare, 0, len(summary))
	for _, s := range summary {
		shares = append(shares, KeywordShare{Keyword: s.Group, Mean: s.Mean})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Mean > shares[j].Mean
	})
	return shares
}

func peaksFromPoints(points []naver.TrendPoint, samples []stats.Sample) []TrendPeak {
	raw := stats.PeaksByGroup(samples)
	peaks := make([]TrendPeak, 0, len(raw))
	for _, p := range raw {
		point := points[p.Index]
		peaks = append(peaks, TrendPeak{
			Keyword: p.Group,
			Period:  point.Period,
			Ratio:   point.Ratio,
		})
	}
	return peaks
}

// cleanStrings trims each entry and drops empties, preserving order.
func cleanStrings(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return cleaned
}

func normalizeGender(gender string) string {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "m", "male":
		return "m"
	case "f", "female":
		return "f"
	default:
		return ""
	}
}
