package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/corazzon/st-naversearch/pkg/cache"
	"github.com/corazzon/st-naversearch/pkg/logger"
)

const (
	DefaultBaseURL = "https://openapi.naver.com"
	DefaultDisplay = 100

	dateLayout = "2006-01-02"

	pathTrend    = "/v1/datalab/search"
	pathShopping = "/v1/search/shop.json"
	pathBlog     = "/v1/search/blog.json"
	pathCafe     = "/v1/search/cafearticle.json"
	pathNews     = "/v1/search/news.json"
	pathInsight  = "/v1/datalab/shopping/category/keywords"
)

// Endpoint names used in errors and cache keys.
const (
	EndpointTrend    = "trend"
	EndpointShopping = "shopping"
	EndpointBlog     = "blog"
	EndpointCafe     = "cafe"
	EndpointNews     = "news"
	EndpointInsight  = "shopping-insight"
)

// ClientConfig carries the resolved credentials and transport knobs.
// Credentials are threaded in once at construction; an unconfigured
// pair disables every operation without touching the network.
type ClientConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	Display      int
}

// Client talks to the Naver Open API over fasthttp. When a result
// cache is attached, every operation is memoized by its full parameter
// identity for the cache's window, failed outcomes included.
type Client struct {
	cfg     ClientConfig
	http    *fasthttp.Client
	results *cache.Cache
	log     *logger.Logger
}

var _ API = (*Client)(nil)

// New creates a client. A nil results cache disables memoization.
func New(cfg ClientConfig, results *cache.Cache) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Display <= 0 {
		cfg.Display = DefaultDisplay
	}

	return &Client{
		cfg: cfg,
		http: &fasthttp.Client{
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
		},
		results: results,
		log:     logger.GetLogger().WithField("component", "naver_api"),
	}
}

// Configured reports whether both credential values are present.
func (c *Client) Configured() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientSecret != ""
}

// Trend runs one datalab comparison call covering all keywords.
func (c *Client) Trend(ctx context.Context, req TrendRequest) ([]TrendPoint, error) {
	if len(req.Keywords) == 0 {
		return nil, fmt.Errorf("no keywords provided")
	}

	key := strings.Join([]string{
		EndpointTrend,
		req.StartDate.Format(dateLayout),
		req.EndDate.Format(dateLayout),
		req.Gender,
		strings.Join(req.Ages, ","),
		strings.Join(req.Keywords, ","),
	}, "|")

	v, err := c.memo(key, func() (interface{}, error) {
		return c.fetchTrend(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return v.([]TrendPoint), nil
}

// SearchShopping fetches product rows for a single keyword.
func (c *Client) SearchShopping(ctx context.Context, keyword string) ([]ShopItem, error) {
	key := searchKey(EndpointShopping, keyword, c.cfg.Display)
	v, err := c.memo(key, func() (interface{}, error) {
		var payload struct {
			Items []ShopItem `json:"items"`
		}
		if err := c.search(ctx, EndpointShopping, pathShopping, keyword, &payload); err != nil {
			return nil, err
		}
		return payload.Items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]ShopItem), nil
}

// SearchBlog fetches blog post rows for a single keyword.
func (c *Client) SearchBlog(ctx context.Context, keyword string) ([]BlogItem, error) {
	key := searchKey(EndpointBlog, keyword, c.cfg.Display)
	v, err := c.memo(key, func() (interface{}, error) {
		var payload struct {
			Items []BlogItem `json:"items"`
		}
		if err := c.search(ctx, EndpointBlog, pathBlog, keyword, &payload); err != nil {
			return nil, err
		}
		return payload.Items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]BlogItem), nil
}

// SearchCafe fetches cafe article rows for a single keyword.
func (c *Client) SearchCafe(ctx context.Context, keyword string) ([]CafeItem, error) {
	key := searchKey(EndpointCafe, keyword, c.cfg.Display)
	v, err := c.memo(key, func() (interface{}, error) {
		var payload struct {
			Items []CafeItem `json:"items"`
		}
		if err := c.search(ctx, EndpointCafe, pathCafe, keyword, &payload); err != nil {
			return nil, err
		}
		return payload.Items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]CafeItem), nil
}

// SearchNews fetches news article rows for a single keyword.
func (c *Client) SearchNews(ctx context.Context, keyword string) ([]NewsItem, error) {
	key := searchKey(EndpointNews, keyword, c.cfg.Display)
	v, err := c.memo(key, func() (interface{}, error) {
		var payload struct {
			Items []NewsItem `json:"items"`
		}
		if err := c.search(ctx, EndpointNews, pathNews, keyword, &payload); err != nil {
			return nil, err
		}
		return payload.Items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]NewsItem), nil
}

// ShoppingInsight runs one category keyword-trend call covering all
// keywords. An empty point slice with a nil error is a valid outcome:
// the call succeeded and nothing matched.
func (c *Client) ShoppingInsight(ctx context.Context, req InsightRequest) ([]TrendPoint, error) {
	if len(req.Keywords) == 0 {
		return nil, fmt.Errorf("no keywords provided")
	}

	key := strings.Join([]string{
		EndpointInsight,
		req.Category,
		req.StartDate.Format(dateLayout),
		req.EndDate.Format(dateLayout),
		strings.Join(req.Keywords, ","),
	}, "|")

	v, err := c.memo(key, func() (interface{}, error) {
		return c.fetchInsight(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return v.([]TrendPoint), nil
}

func (c *Client) fetchTrend(ctx context.Context, req TrendRequest) ([]TrendPoint, error) {
	groups := make([]keywordGroup, 0, len(req.Keywords))
	for _, kw := range req.Keywords {
		groups = append(groups, keywordGroup{GroupName: kw, Keywords: []string{kw}})
	}

	body := trendRequestBody{
		StartDate:     req.StartDate.Format(dateLayout),
		EndDate:       req.EndDate.Format(dateLayout),
		TimeUnit:      "date",
		KeywordGroups: groups,
		Gender:        req.Gender,
		Ages:          req.Ages,
	}

	raw, err := c.post(ctx, EndpointTrend, pathTrend, body)
	if err != nil {
		return nil, err
	}
	return decodeDatalab(EndpointTrend, raw)
}

func (c *Client) fetchInsight(ctx context.Context, req InsightRequest) ([]TrendPoint, error) {
	keywords := make([]insightKeyword, 0, len(req.Keywords))
	for _, kw := range req.Keywords {
		keywords = append(keywords, insightKeyword{Name: kw, Param: []string{kw}})
	}

	body := insightRequestBody{
		StartDate: req.StartDate.Format(dateLayout),
		EndDate:   req.EndDate.Format(dateLayout),
		TimeUnit:  "date",
		Category:  req.Category,
		Keyword:   keywords,
	}

	raw, err := c.post(ctx, EndpointInsight, pathInsight, body)
	if err != nil {
		return nil, err
	}
	return decodeDatalab(EndpointInsight, raw)
}

// search issues one GET query call and decodes the items payload.
func (c *Client) search(ctx context.Context, endpoint, path, keyword string, out interface{}) error {
	args := url.Values{}
	args.Set("query", keyword)
	args.Set("display", strconv.Itoa(c.cfg.Display))

	raw, err := c.do(ctx, fasthttp.MethodGet, endpoint, c.cfg.BaseURL+path+"?"+args.Encode(), nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err, Body: raw}
	}
	return nil
}

func (c *Client) post(ctx context.Context, endpoint, path string, body interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", endpoint, err)
	}
	return c.do(ctx, fasthttp.MethodPost, endpoint, c.cfg.BaseURL+path, payload)
}

func (c *Client) do(ctx context.Context, method, endpoint, uri string, payload []byte) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNoCredentials
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(method)
	req.Header.Set("X-Naver-Client-Id", c.cfg.ClientID)
	req.Header.Set("X-Naver-Client-Secret", c.cfg.ClientSecret)
	if payload != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	start := time.Now()
	if err := c.http.DoTimeout(req, resp, c.cfg.Timeout); err != nil {
		return nil, fmt.Errorf("%s request failed: %w", endpoint, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		body := make([]byte, len(resp.Body()))
		copy(body, resp.Body())
		c.log.WithFields(map[string]interface{}{
			"endpoint": endpoint,
			"status":   resp.StatusCode(),
		}).Warn("API call failed")
		return nil, &StatusError{Endpoint: endpoint, Status: resp.StatusCode(), Body: body}
	}

	c.log.WithFields(map[string]interface{}{
		"endpoint":    endpoint,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("API call completed")

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}

func (c *Client) memo(key string, fetch func() (interface{}, error)) (interface{}, error) {
	if c.results == nil {
		return fetch()
	}
	return c.results.Do(key, fetch)
}

func searchKey(endpoint, keyword string, display int) string {
	return fmt.Sprintf("%s|%s|%d", endpoint, keyword, display)
}

// decodeDatalab flattens a datalab response into per-keyword rows,
// keeping the endpoint's result and period order.
func decodeDatalab(endpoint string, raw []byte) ([]TrendPoint, error) {
	var decoded struct {
		Results []struct {
			Title string `json:"title"`
			Data  []struct {
				Period string  `json:"period"`
				Ratio  float64 `json:"ratio"`
			} `json:"data"`
		} `json:"results"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err, Body: raw}
	}

	points := make([]TrendPoint, 0, len(decoded.Results))
	for _, result := range decoded.Results {
		for _, d := range result.Data {
			points = append(points, TrendPoint{
				Keyword: result.Title,
				Period:  d.Period,
				Ratio:   d.Ratio,
			})
		}
	}
	return points, nil
}

type trendRequestBody struct {
	StartDate     string         `json:"startDate"`
	EndDate       string         `json:"endDate"`
	TimeUnit      string         `json:"timeUnit"`
	KeywordGroups []keywordGroup `json:"keywordGroups"`
	Gender        string         `json:"gender,omitempty"`
	Ages          []string       `json:"ages,omitempty"`
}

type keywordGroup struct {
	GroupName string   `json:"groupName"`
	Keywords  []string `json:"keywords"`
}

type insightRequestBody struct {
	StartDate string           `json:"startDate"`
	EndDate   string           `json:"endDate"`
	TimeUnit  string           `json:"timeUnit"`
	Category  string           `json:"category"`
	Keyword   []insightKeyword `json:"keyword"`
}

type insightKeyword struct {
	Name  string   `json:"name"`
	Param []string `json:"param"`
}
