package insight

import (
	"time"

	"github.com/corazzon/st-naversearch/pkg/fetch"
	"github.com/corazzon/st-naversearch/pkg/naver"
	"github.com/corazzon/st-naversearch/pkg/normalize"
	"github.com/corazzon/st-naversearch/pkg/stats"
)

// DefaultKeywords seeds a run when no keywords are supplied.
var DefaultKeywords = []string{"오메가3", "비타민D", "유산균"}

// DefaultInsightCategory is the food category of the shopping datalab.
const DefaultInsightCategory = "50000008"

// DefaultCategories is the fixed top-level shopping category list the
// category filter offers.
var DefaultCategories = []string{
	"식품", "건강/의료용품", "화장품/미용", "생활/건강",
	"패션의류", "패션잡화", "스포츠/레저", "생활/가전",
	"가구/인테리어", "디지털/가전", "출산/육아", "반려동물용품",
	"도서/음반/DVD", "완구/취미", "문구/오피스", "차량/오토바이",
}

// DateRange is a start/end day pair for the datalab endpoints.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// DefaultDateRange spans January 1st of the current year through now.
func DefaultDateRange(now time.Time) DateRange {
	return DateRange{
		Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()),
		End:   now,
	}
}

// Normalize falls back to the default range when the pair is missing
// or inverted.
func (r DateRange) Normalize(now time.Time) DateRange {
	if r.Start.IsZero() || r.End.IsZero() || r.End.Before(r.Start) {
		return DefaultDateRange(now)
	}
	return r
}

// TrendQuery drives the datalab search comparison.
type TrendQuery struct {
	Keywords []string
	Range    DateRange
	Gender   string   // unspecified, male/m or female/f
	Ages     []string // datalab age bracket codes
}

// SearchQuery drives the per-keyword search endpoints. Categories only
// applies to the shopping source.
type SearchQuery struct {
	Keywords   []string
	Categories []string
}

// InsightQuery drives the shopping category keyword trend.
type InsightQuery struct {
	Category string
	Keywords []string
	Range    DateRange
}

// ReportMeta carries the assembly facts every source shares: the
// keywords asked for, how many rows survived, and which keywords
// failed. An empty report with failures reads differently from an
// empty report without them.
type ReportMeta struct {
	Source    string               `json:"source"`
	Keywords  []string             `json:"keywords"`
	RowCount  int                  `json:"row_count"`
	Failures  []fetch.KeywordError `json:"failures,omitempty"`
	FetchedAt time.Time            `json:"fetched_at"`
}

// KeywordShare ranks one keyword by its mean interest ratio.
type KeywordShare struct {
	Keyword string  `json:"keyword"`
	Mean    float64 `json:"mean_ratio"`
}

// TrendPeak is the day a keyword's interest topped out.
type TrendPeak struct {
	Keyword string  `json:"keyword"`
	Period  string  `json:"period"`
	Ratio   float64 `json:"ratio"`
}

// KeywordChange is a week-over-week interest move, in percent.
type KeywordChange struct {
	Keyword   string  `json:"keyword"`
	ChangePct float64 `json:"change_pct"`
}

// TrendReport is the analyzed output of the trend source.
type TrendReport struct {
	Meta    ReportMeta         `json:"meta"`
	Points  []naver.TrendPoint `json:"points"`
	Summary []stats.Summary    `json:"summary,omitempty"`
	Shares  []KeywordShare     `json:"average_share,omitempty"`
	Peaks   []TrendPeak        `json:"peaks,omitempty"`
	Changes []KeywordChange    `json:"week_over_week,omitempty"`
}

// Product is a normalized shopping row. Price is nil when the wire
// value did not parse; such rows stay listed but sit out of the price
// statistics.
type Product struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Price     *int64 `json:"price"`
	Mall      string `json:"mall"`
	Brand     string `json:"brand"`
	Maker     string `json:"maker,omitempty"`
	Category1 string `json:"category1"`
	Category2 string `json:"category2,omitempty"`
	Category3 string `json:"category3,omitempty"`
	Category4 string `json:"category4,omitempty"`
	Keyword   string `json:"keyword"`
}

// PriceStats profiles the priced subset of a shopping result.
type PriceStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
	Range  float64 `json:"range"`
}

// BandCount is one price-band histogram bar.
type BandCount struct {
	normalize.Band
	Count int `json:"count"`
}

// MallPrice is a mall's product count and mean price.
type MallPrice struct {
	Mall  string  `json:"mall"`
	Count int     `json:"count"`
	Mean  float64 `json:"mean_price"`
}

// CategoryTop lists a category's cheapest listings.
type CategoryTop struct {
	Category string    `json:"category"`
	Products []Product `json:"products"`
}

// ShoppingReport is the analyzed output of the shopping source.
type ShoppingReport struct {
	Meta          ReportMeta      `json:"meta"`
	Products      []Product       `json:"products"`
	FilterRelaxed bool            `json:"filter_relaxed,omitempty"`
	PriceStats    *PriceStats     `json:"price_stats,omitempty"`
	PriceBands    []BandCount     `json:"price_bands,omitempty"`
	TopMalls      []stats.Count   `json:"top_malls,omitempty"`
	MallPrices    []MallPrice     `json:"mall_avg_prices,omitempty"`
	Brands        []stats.Summary `json:"brands,omitempty"`
	Categories    []stats.Summary `json:"categories,omitempty"`
	CategoryTops  []CategoryTop   `json:"category_cheapest,omitempty"`
	KeywordCounts []stats.Count   `json:"keyword_counts,omitempty"`
}

// Post is a normalized blog row. Date is nil when the wire post date
// did not parse; undated rows are excluded from date-ordered views.
type Post struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Blogger     string     `json:"blogger"`
	Link        string     `json:"link"`
	Date        *time.Time `json:"date,omitempty"`
	Keyword     string     `json:"keyword"`
}

// DateCount is one day's row count.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// BlogReport is the analyzed output of the blog source.
type BlogReport struct {
	Meta        ReportMeta    `json:"meta"`
	Posts       []Post        `json:"posts"`
	Daily       []DateCount   `json:"daily_counts,omitempty"`
	TopBloggers []stats.Count `json:"top_bloggers,omitempty"`
	Latest      []Post        `json:"latest,omitempty"`
	TitleWords  []stats.Count `json:"related_words,omitempty"`
}

// CafePost is a normalized cafe article row. The endpoint carries no
// usable date field.
type CafePost struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Cafe        string `json:"cafe"`
	CafeURL     string `json:"cafe_url,omitempty"`
	Link        string `json:"link"`
	Keyword     string `json:"keyword"`
}

// CafeReport is the analyzed output of the cafe source.
type CafeReport struct {
	Meta     ReportMeta    `json:"meta"`
	Posts    []CafePost    `json:"posts"`
	TopCafes []stats.Count `json:"top_cafes,omitempty"`
	Preview  []CafePost    `json:"preview,omitempty"`
}

// Article is a normalized news row.
type Article struct {
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Link         string     `json:"link"`
	OriginalLink string     `json:"original_link,omitempty"`
	Published    *time.Time `json:"published,omitempty"`
	Keyword      string     `json:"keyword"`
}

// NewsReport is the analyzed output of the news source.
type NewsReport struct {
	Meta       ReportMeta    `json:"meta"`
	Articles   []Article     `json:"articles"`
	Daily      []DateCount   `json:"daily_counts,omitempty"`
	Latest     []Article     `json:"latest,omitempty"`
	TitleWords []stats.Count `json:"related_words,omitempty"`
}

// InsightReport is the analyzed output of the shopping-insight source.
// Empty separates "the call succeeded and matched nothing" from a
// failed call, which surfaces as an error instead.
type InsightReport struct {
	Meta     ReportMeta         `json:"meta"`
	Category string             `json:"category"`
	Points   []naver.TrendPoint `json:"points"`
	Summary  []stats.Summary    `json:"summary,omitempty"`
	Peaks    []TrendPeak        `json:"peaks,omitempty"`
	Empty    bool               `json:"empty"`
}
