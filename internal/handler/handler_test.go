package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/corazzon/st-naversearch/internal/config"
	"github.com/corazzon/st-naversearch/pkg/cache"
	"github.com/corazzon/st-naversearch/pkg/insight"
	"github.com/corazzon/st-naversearch/pkg/naver"
)

// fakeReports satisfies insight.ReportService with per-test behavior.
type fakeReports struct {
	trend    func(q insight.TrendQuery) (*insight.TrendReport, error)
	shopping func(q insight.SearchQuery) (*insight.ShoppingReport, error)
	blog     func(q insight.SearchQuery) (*insight.BlogReport, error)
	cafe     func(q insight.SearchQuery) (*insight.CafeReport, error)
	news     func(q insight.SearchQuery) (*insight.NewsReport, error)
	insight  func(q insight.InsightQuery) (*insight.InsightReport, error)
}

func (f *fakeReports) Trend(_ context.Context, q insight.TrendQuery) (*insight.TrendReport, error) {
	return f.trend(q)
}

func (f *fakeReports) Shopping(_ context.Context, q insight.SearchQuery) (*insight.ShoppingReport, error) {
	return f.shopping(q)
}

func (f *fakeReports) Blog(_ context.Context, q insight.SearchQuery) (*insight.BlogReport, error) {
	return f.blog(q)
}

func (f *fakeReports) Cafe(_ context.Context, q insight.SearchQuery) (*insight.CafeReport, error) {
	return f.cafe(q)
}

func (f *fakeReports) News(_ context.Context, q insight.SearchQuery) (*insight.NewsReport, error) {
	return f.news(q)
}

func (f *fakeReports) Insight(_ context.Context, q insight.InsightQuery) (*insight.InsightReport, error) {
	return f.insight(q)
}

func testApp(reports insight.ReportService, configured bool) *fiber.App {
	app := fiber.New()
	h := New(reports, cache.New(time.Minute), func() config.Credentials {
		if configured {
			return config.Credentials{ClientID: "id", ClientSecret: "secret"}
		}
		return config.Credentials{}
	})
	h.Register(app)
	return app
}

func decodeBody(t *testing.T, body io.Reader, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func TestHandler_Trend(t *testing.T) {
	var got insight.TrendQuery
	reports := &fakeReports{
		trend: func(q insight.TrendQuery) (*insight.TrendReport, error) {
			got = q
			return &insight.TrendReport{Meta: insight.ReportMeta{Source: "trend", RowCount: 2}}, nil
		},
	}
	app := testApp(reports, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/trend?keywords=캠핑,등산&gender=f&ages=3,4", nil), -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	if len(got.Keywords) != 2 || got.Keywords[0] != "캠핑" {
		t.Errorf("Unexpected keywords: %v", got.Keywords)
	}
	if got.Gender != "f" || len(got.Ages) != 2 {
		t.Errorf("Unexpected demographics: %q %v", got.Gender, got.Ages)
	}

	var body struct {
		Meta struct {
			Source   string `json:"source"`
			RowCount int    `json:"row_count"`
		} `json:"meta"`
	}
	decodeBody(t, resp.Body, &body)
	if body.Meta.Source != "trend" || body.Meta.RowCount != 2 {
		t.Errorf("Unexpected response meta: %+v", body.Meta)
	}
}

func TestHandler_DefaultKeywords(t *testing.T) {
	var got insight.TrendQuery
	reports := &fakeReports{
		trend: func(q insight.TrendQuery) (*insight.TrendReport, error) {
			got = q
			return &insight.TrendReport{}, nil
		},
	}
	app := testApp(reports, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/trend", nil), -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if len(got.Keywords) != len(insight.DefaultKeywords) || got.Keywords[0] != insight.DefaultKeywords[0] {
		t.Errorf("Expected the default keywords, got %v", got.Keywords)
	}
}

func TestHandler_BlankKeywords(t *testing.T) {
	app := testApp(&fakeReports{}, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/trend?keywords=%20,%20", nil), -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected 400 for blank keywords, got %d", resp.StatusCode)
	}
}

func TestHandler_BadDateRange(t *testing.T) {
	app := testApp(&fakeReports{}, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/trend?keywords=캠핑&start=2024-13-99", nil), -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected 400 for a malformed date, got %d", resp.StatusCode)
	}
}

func TestHandler_MissingCredentials(t *testing.T) {
	reports := &fakeReports{
		blog: func(insight.SearchQuery) (*insight.BlogReport, error) {
			return nil, naver.ErrNoCredentials
		},
	}
	app := testApp(reports, false)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/blog?keywords=캠핑", nil), -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Fatalf("Expected 503, got %d", resp.StatusCode)
	}

	var body struct {
		Error string `json:"error"`
		Hint  string `json:"hint"`
	}
	decodeBody(t, resp.Body, &body)
	if body.Hint == "" {
		t.Error("Expected a setup hint in the response")
	}
}

func TestHandler_UpstreamError(t *testing.T) {
	reports := &fakeReports{
		trend: func(insight.TrendQuery) (*insight.TrendReport, error) {
			return nil, &naver.StatusError{Endpoint: "trend", Status: 401}
		},
	}
	app := testApp(reports, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/trend?keywords=캠핑", nil), -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Errorf("Expected 502 for an upstream failure, got %d", resp.StatusCode)
	}
}

func TestHandler_Health(t *testing.T) {
	app := testApp(&fakeReports{}, false)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Status       string `json:"status"`
		Uptime       string `json:"uptime"`
		CacheEntries int    `json:"cache_entries"`
		Credentials  bool   `json:"credentials"`
	}
	decodeBody(t, resp.Body, &body)
	if body.Status != "ok" || body.Credentials {
		t.Errorf("Unexpected health body: %+v", body)
	}
	if body.Uptime == "" {
		t.Error("Expected an uptime value")
	}
	if body.CacheEntries != 0 {
		t.Errorf("Expected an empty cache, got %d entries", body.CacheEntries)
	}
}

func TestHandler_ExportCSV(t *testing.T) {
	price := int64(10000)
	reports := &fakeReports{
		shopping: func(q insight.SearchQuery) (*insight.ShoppingReport, error) {
			return &insight.ShoppingReport{
				Meta: insight.ReportMeta{Source: "shopping"},
				Products: []insight.Product{
					{Title: "알파 오메가3", Price: &price, Mall: "몰A", Keyword: "오메가3"},
				},
			}, nil
		},
	}
	app := testApp(reports, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/export/shopping.csv?keywords=오메가3", nil), -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Expected a CSV content type, got %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "shopping_") {
		t.Errorf("Expected the source in the attachment name, got %q", cd)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	if len(raw) < 3 || raw[0] != 0xEF || raw[1] != 0xBB || raw[2] != 0xBF {
		t.Error("Expected a UTF-8 byte-order mark")
	}
	if !strings.Contains(string(raw), "알파 오메가3") {
		t.Error("Expected the product row in the CSV body")
	}
}

func TestHandler_ExportUnknownSource(t *testing.T) {
	app := testApp(&fakeReports{}, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/export/podcast.csv", nil), -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("Expected 404 for an unknown source, got %d", resp.StatusCode)
	}
}
