package naver

import "context"

// API is the set of remote operations the pipeline consumes. Search
// operations take one keyword per call; the datalab operations batch
// all keywords into a single request.
type API interface {
	Trend(ctx context.Context, req TrendRequest) ([]TrendPoint, error)
	SearchShopping(ctx context.Context, keyword string) ([]ShopItem, error)
	SearchBlog(ctx context.Context, keyword string) ([]BlogItem, error)
	SearchCafe(ctx context.Context, keyword string) ([]CafeItem, error)
	SearchNews(ctx context.Context, keyword string) ([]NewsItem, error)
	ShoppingInsight(ctx context.Context, req InsightRequest) ([]TrendPoint, error)
}
