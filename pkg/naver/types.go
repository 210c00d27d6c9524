package naver

import "time"

// TrendRequest describes one datalab search comparison call. All keywords
// travel in a single request; the endpoint accepts one group per keyword.
type TrendRequest struct {
	Keywords  []string
	StartDate time.Time
	EndDate   time.Time
	Gender    string   // "", "m" or "f"
	Ages      []string // datalab age bracket codes ("1".."11")
}

// InsightRequest describes one shopping category keyword-trend call.
type InsightRequest struct {
	Category  string
	Keywords  []string
	StartDate time.Time
	EndDate   time.Time
}

// TrendPoint is one (keyword, period) observation returned by the
// datalab endpoints. Periods arrive as ISO dates in ascending order.
type TrendPoint struct {
	Keyword string  `json:"keyword"`
	Period  string  `json:"period"`
	Ratio   float64 `json:"ratio"`
}

// ShopItem is one product row from the shopping search endpoint.
// Price fields are decimal strings on the wire.
type ShopItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Image       string `json:"image"`
	LPrice      string `json:"lprice"`
	HPrice      string `json:"hprice"`
	MallName    string `json:"mallName"`
	ProductID   string `json:"productId"`
	ProductType string `json:"productType"`
	Brand       string `json:"brand"`
	Maker       string `json:"maker"`
	Category1   string `json:"category1"`
	Category2   string `json:"category2"`
	Category3   string `json:"category3"`
	Category4   string `json:"category4"`
}

// BlogItem is one post row from the blog search endpoint.
type BlogItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	BloggerName string `json:"bloggername"`
	BloggerLink string `json:"bloggerlink"`
	PostDate    string `json:"postdate"`
}

// CafeItem is one post row from the cafe article search endpoint.
type CafeItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	CafeName    string `json:"cafename"`
	CafeURL     string `json:"cafeurl"`
}

// NewsItem is one article row from the news search endpoint.
type NewsItem struct {
	Title        string `json:"title"`
	OriginalLink string `json:"originallink"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	PubDate      string `json:"pubDate"`
}
