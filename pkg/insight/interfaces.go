package insight

import "context"

// ReportService builds one analyzed report per source. Aggregated
// sources tolerate per-keyword failures and report them in the meta;
// the single-call datalab sources fail whole.
type ReportService interface {
	Trend(ctx context.Context, q TrendQuery) (*TrendReport, error)
	Shopping(ctx context.Context, q SearchQuery) (*ShoppingReport, error)
	Blog(ctx context.Context, q SearchQuery) (*BlogReport, error)
	Cafe(ctx context.Context, q SearchQuery) (*CafeReport, error)
	News(ctx context.Context, q SearchQuery) (*NewsReport, error)
	Insight(ctx context.Context, q InsightQuery) (*InsightReport, error)
}
