package insight

import (
	"context"
	"fmt"
	"sort"

	"github.com/corazzon/st-naversearch/pkg/fetch"
	"github.com/corazzon/st-naversearch/pkg/naver"
	"github.com/corazzon/st-naversearch/pkg/normalize"
	"github.com/corazzon/st-naversearch/pkg/stats"
)

const (
	topMallCount        = 15
	mallPriceMinCount   = 5
	mallPriceTop        = 10
	brandMinCount       = 3
	topBrandCount       = 15
	topCategoryCount    = 5
	cheapestPerCategory = 10
)

// Shopping aggregates product rows across keywords and derives the
// price, mall, brand and category views.
func (s *Service) Shopping(ctx context.Context, q SearchQuery) (*ShoppingReport, error) {
	keywords := cleanStrings(q.Keywords)
	if len(keywords) == 0 {
		return nil, fmt.Errorf("no keywords to query")
	}

	var products []Product
	failures := fetch.Collect(ctx, keywords, s.workers,
		func(ctx context.Context, kw string) (interface{}, error) {
			return s.api.SearchShopping(ctx, kw)
		},
		func(kw string, batch interface{}) {
			for _, item := range batch.([]naver.ShopItem) {
				products = append(products, newProduct(item, kw))
			}
		})

	products, relaxed := filterByCategory(products, cleanStrings(q.Categories))

	report := &ShoppingReport{
		Meta:          s.meta(naver.EndpointShopping, keywords, len(products), failures),
		Products:      products,
		FilterRelaxed: relaxed,
	}
	if len(products) == 0 {
		return report, nil
	}

	s.analyzeShopping(report, keywords)
	return report, nil
}

func newProduct(item naver.ShopItem, keyword string) Product {
	title := normalize.CleanHTML(item.Title)
	p := Product{
		Title:     title,
		Link:      item.Link,
		Mall:      item.MallName,
		Brand:     normalize.BrandToken(title),
		Maker:     item.Maker,
		Category1: item.Category1,
		Category2: item.Category2,
		Category3: item.Category3,
		Category4: item.Category4,
		Keyword:   keyword,
	}
	if price, ok := normalize.ParsePrice(item.LPrice); ok {
		p.Price = &price
	}
	return p
}

// filterByCategory keeps rows whose top-level category is selected. A
// filter that would empty a non-empty table is relaxed back to the
// full set so an over-narrow selection never blanks the view.
func filterByCategory(products []Product, categories []string) ([]Product, bool) {
	if len(categories) == 0 {
		return products, false
	}

	allowed := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		allowed[c] = struct{}{}
	}

	kept := make([]Product, 0, len(products))
	for _, p := range products {
		if _, ok := allowed[p.Category1]; ok {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 && len(products) > 0 {
		return products, true
	}
	return kept, false
}

func (s *Service) analyzeShopping(report *ShoppingReport, keywords []string) {
	var (
		prices          []float64
		priced          []int64
		maxPrice        int64
		malls           []string
		mallSamples     []stats.Sample
		brandSamples    []stats.Sample
		categorySamples []stats.Sample
	)
	for _, p := range report.Products {
		if p.Mall != "" {
			malls = append(malls, p.Mall)
		}
		if p.Price == nil {
			continue
		}
		v := *p.Price
		priced = append(priced, v)
		prices = append(prices, float64(v))
		if v > maxPrice {
			maxPrice = v
		}
		if p.Mall != "" {
			mallSamples = append(mallSamples, stats.Sample{Group: p.Mall, Value: float64(v)})
		}
		brandSamples = append(brandSamples, stats.Sample{Group: p.Brand, Value: float64(v)})
		if p.Category1 != "" {
			categorySamples = append(categorySamples, stats.Sample{Group: p.Category1, Value: float64(v)})
		}
	}

	report.TopMalls = stats.TopN(malls, topMallCount)
	report.KeywordCounts = keywordCounts(report.Products, keywords)

	if len(prices) == 0 {
		return
	}

	profile := stats.Describe(prices, 0)
	report.PriceStats = &PriceStats{
		Count:  profile.Count,
		Mean:   profile.Mean,
		Median: profile.Median,
		Std:    profile.Std,
		Min:    profile.Min,
		Max:    profile.Max,
		Q1:     stats.Round(stats.Quantile(prices, 0.25), 0),
		Q3:     stats.Round(stats.Quantile(prices, 0.75), 0),
		Range:  profile.Max - profile.Min,
	}

	bands := normalize.PriceBands(maxPrice)
	counts := make([]int, len(bands))
	for _, v := range priced {
		if i := bands.Assign(v); i >= 0 {
			counts[i]++
		}
	}
	report.PriceBands = make([]BandCount, 0, len(bands))
	for i, b := range bands {
		report.PriceBands = append(report.PriceBands, BandCount{Band: b, Count: counts[i]})
	}

	report.MallPrices = mallPrices(mallSamples)
	report.Brands = topSummaries(stats.GroupSummaries(brandSamples, 0), brandMinCount, topBrandCount)
	report.Categories = sortByCount(stats.GroupSummaries(categorySamples, 0))
	report.CategoryTops = categoryTops(report.Products, report.Categories)
}

// keywordCounts reports surviving rows per requested keyword, zeros
// included, in keyword-list order.
func keywordCounts(products []Product, keywords []string) []stats.Count {
	counts := make(map[string]int, len(keywords))
	for _, p := range products {
		counts[p.Keyword]++
	}
	out := make([]stats.Count, 0, len(keywords))
	for _, kw := range keywords {
		out = append(out, stats.Count{Value: kw, Count: counts[kw]})
	}
	return out
}

// mallPrices ranks malls carrying enough listings by mean price.
func mallPrices(samples []stats.Sample) []MallPrice {
	var out []MallPrice
	for _, m := range stats.GroupSummaries(samples, 0) {
		if m.Count < mallPriceMinCount {
			continue
		}
		out = append(out, MallPrice{Mall: m.Group, Count: m.Count, Mean: m.Mean})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Mean > out[j].Mean
	})
	if len(out) > mallPriceTop {
		out = out[:mallPriceTop]
	}
	return out
}

// topSummaries keeps groups meeting the minimum size, ranked by count.
func topSummaries(summaries []stats.Summary, minCount, top int) []stats.Summary {
	var kept []stats.Summary
	for _, s := range summaries {
		if s.Count >= minCount {
			kept = append(kept, s)
		}
	}
	kept = sortByCount(kept)
	if len(kept) > top {
		kept = kept[:top]
	}
	return kept
}

func sortByCount(summaries []stats.Summary) []stats.Summary {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Count > summaries[j].Count
	})
	return summaries
}

// categoryTops lists the cheapest priced listings of the largest
// categories.
func categoryTops(products []Product, categories []stats.Summary) []CategoryTop {
	limit := topCategoryCount
	if len(categories) < limit {
		limit = len(categories)
	}

	tops := make([]CategoryTop, 0, limit)
	for _, c := range categories[:limit] {
		var priced []Product
		for _, p := range products {
			if p.Category1 == c.Group && p.Price != nil {
				priced = append(priced, p)
			}
		}
		sort.SliceStable(priced, func(i, j int) bool {
			return *priced[i].Price < *priced[j].Price
		})
		if len(priced) > cheapestPerCategory {
			priced = priced[:cheapestPerCategory]
		}
		tops = append(tops, CategoryTop{Category: c.Group, Products: priced})
	}
	return tops
}
