package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/corazzon/st-naversearch/internal/config"
	"github.com/corazzon/st-naversearch/pkg/cache"
	"github.com/corazzon/st-naversearch/pkg/insight"
	"github.com/corazzon/st-naversearch/pkg/naver"
)

// Manual smoke check against the live API: hits every source once with
// a single keyword and prints row counts. Needs real credentials in the
// environment or a .env file.
func main() {
	fmt.Println("=== Probing Naver Endpoints ===")
	fmt.Println()

	creds := config.Resolve()
	if !creds.Configured() {
		fmt.Println("credentials missing; set NAVER_CLIENT_ID and NAVER_CLIENT_SECRET")
		os.Exit(1)
	}

	client := naver.New(naver.ClientConfig{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Timeout:      15 * time.Second,
		Display:      10,
	}, cache.New(cache.DefaultTTL))
	reports := insight.New(client, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	keyword := []string{"오메가3"}
	search := insight.SearchQuery{Keywords: keyword}

	probes := []struct {
		name string
		run  func() (int, error)
	}{
		{naver.EndpointTrend, func() (int, error) {
			r, err := reports.Trend(ctx, insight.TrendQuery{Keywords: keyword})
			if err != nil {
				return 0, err
			}
			return r.Meta.RowCount, nil
		}},
		{naver.EndpointShopping, func() (int, error) {
			r, err := reports.Shopping(ctx, search)
			if err != nil {
				return 0, err
			}
			return r.Meta.RowCount, nil
		}},
		{naver.EndpointBlog, func() (int, error) {
			r, err := reports.Blog(ctx, search)
			if err != nil {
				return 0, err
			}
			return r.Meta.RowCount, nil
		}},
		{naver.EndpointCafe, func() (int, error) {
			r, err := reports.Cafe(ctx, search)
			if err != nil {
				return 0, err
			}
			return r.Meta.RowCount, nil
		}},
		{naver.EndpointNews, func() (int, error) {
			r, err := reports.News(ctx, search)
			if err != nil {
				return 0, err
			}
			return r.Meta.RowCount, nil
		}},
		{naver.EndpointInsight, func() (int, error) {
			r, err := reports.Insight(ctx, insight.InsightQuery{Keywords: keyword})
			if err != nil {
				return 0, err
			}
			return r.Meta.RowCount, nil
		}},
	}

	failed := 0
	for _, p := range probes {
		started := time.Now()
		rows, err := p.run()
		if err != nil {
			fmt.Printf("❌ %-17s %v\n", p.name, err)
			failed++
			continue
		}
		fmt.Printf("✅ %-17s %d rows (%.2fs)\n", p.name, rows, time.Since(started).Seconds())
	}

	fmt.Printf("\n%d/%d endpoints reachable\n", len(probes)-failed, len(probes))
	if failed > 0 {
		os.Exit(1)
	}
}
