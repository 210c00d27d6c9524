package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/corazzon/st-naversearch/internal/config"
	"github.com/corazzon/st-naversearch/pkg/cache"
	"github.com/corazzon/st-naversearch/pkg/export"
	"github.com/corazzon/st-naversearch/pkg/insight"
	"github.com/corazzon/st-naversearch/pkg/logger"
	"github.com/corazzon/st-naversearch/pkg/naver"
)

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

var allSources = []string{
	naver.EndpointTrend,
	naver.EndpointShopping,
	naver.EndpointBlog,
	naver.EndpointCafe,
	naver.EndpointNews,
	naver.EndpointInsight,
}

func main() {
	// Environment variable defaults (CI friendly)
	defaultKeywords := getEnvOrDefault("NAVERSEARCH_KEYWORDS", "")
	defaultSources := getEnvOrDefault("NAVERSEARCH_SOURCES", "all")
	defaultWorkers := getEnvIntOrDefault("NAVERSEARCH_WORKERS", 3)
	defaultOutput := getEnvOrDefault("NAVERSEARCH_OUTPUT_DIR", "exports")
	defaultDebug := getEnvBoolOrDefault("DEBUG", false)

	var (
		keywordsFlag = flag.String("keywords", defaultKeywords, "Comma-separated search keywords (env: NAVERSEARCH_KEYWORDS)")
		sourcesFlag  = flag.String("sources", defaultSources, "Comma-separated sources, or \"all\" (env: NAVERSEARCH_SOURCES)")
		categories   = flag.String("categories", "", "Comma-separated top-level shopping categories to keep")
		category     = flag.String("category", "", "Shopping insight category code (default: food)")
		startFlag    = flag.String("start", "", "Trend range start, YYYY-MM-DD (default: January 1st)")
		endFlag      = flag.String("end", "", "Trend range end, YYYY-MM-DD (default: today)")
		gender       = flag.String("gender", "", "Trend gender filter: m or f")
		ages         = flag.String("ages", "", "Comma-separated trend age bracket codes (1-11)")
		workers      = flag.Int("workers", defaultWorkers, "Concurrent keyword fetches per source (env: NAVERSEARCH_WORKERS)")
		display      = flag.Int("display", 100, "Rows per keyword per search endpoint (max 100)")
		timeout      = flag.Int("timeout", 10, "Per-request timeout in seconds")
		baseURL      = flag.String("base-url", naver.DefaultBaseURL, "Naver Open API base URL")
		envFile      = flag.String("env-file", ".env", "Path to the credentials .env file")
		output       = flag.String("output", defaultOutput, "Directory for exported CSV files (env: NAVERSEARCH_OUTPUT_DIR)")
		xlsx         = flag.Bool("xlsx", false, "Also write all sources into one XLSX workbook")
		debug        = flag.Bool("debug", defaultDebug, "Enable debug logging (env: DEBUG)")
		help         = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	if *help {
		printUsage()
		return
	}

	if *debug {
		os.Setenv("LOG_LEVEL", "debug")
	}
	log := logger.GetLogger().WithField("component", "main")

	creds := config.ResolveFrom(*envFile)
	if !creds.Configured() {
		fmt.Println("ERROR: Naver Open API credentials are required.")
		fmt.Println("Set NAVER_CLIENT_ID and NAVER_CLIENT_SECRET in the environment")
		fmt.Printf("or in %s, then run again.\n", *envFile)
		fmt.Println("")
		printUsage()
		os.Exit(1)
	}

	keywords := splitCSV(*keywordsFlag)
	if len(keywords) == 0 {
		keywords = insight.DefaultKeywords
	}

	sources, err := resolveSources(*sourcesFlag)
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}

	dates, err := parseRange(*startFlag, *endFlag)
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"keywords":  len(keywords),
		"sources":   len(sources),
		"workers":   *workers,
		"client_id": logger.MaskSecret(creds.ClientID),
	}).Info("Configuration loaded")

	results := cache.New(cache.DefaultTTL)
	client := naver.New(naver.ClientConfig{
		BaseURL:      *baseURL,
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Timeout:      time.Duration(*timeout) * time.Second,
		Display:      *display,
	}, results)
	reports := insight.New(client, *workers)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	startTime := time.Now()

	log.Info("Starting keyword collection")

	var (
		tables    []export.Table
		succeeded int
		totalRows int
	)
	outcomes := make([]string, 0, len(sources))

	for _, source := range sources {
		table, meta, err := runSource(ctx, reports, source, sourceOptions{
			keywords:   keywords,
			categories: splitCSV(*categories),
			category:   *category,
			dates:      dates,
			gender:     *gender,
			ages:       splitCSV(*ages),
		})
		if err != nil {
			log.WithError(err).WithField("source", source).Error("Source collection failed")
			outcomes = append(outcomes, fmt.Sprintf("❌ %s - Error: %v", source, err))
			continue
		}

		succeeded++
		totalRows += meta.RowCount
		line := fmt.Sprintf("✅ %s - Rows: %d", source, meta.RowCount)
		if len(meta.Failures) > 0 {
			failed := make([]string, 0, len(meta.Failures))
			for _, f := range meta.Failures {
				failed = append(failed, f.Keyword)
			}
			line += fmt.Sprintf(" (failed keywords: %s)", strings.Join(failed, ", "))
		}
		outcomes = append(outcomes, line)
		tables = append(tables, table)
	}

	duration := time.Since(startTime)

	log.WithFields(map[string]interface{}{
		"sources":   len(sources),
		"succeeded": succeeded,
		"failed":    len(sources) - succeeded,
		"rows":      totalRows,
		"duration":  duration.String(),
	}).Info("Collection completed")

	fmt.Printf("\n=== Collection Results ===\n")
	fmt.Printf("Keywords: %s\n", strings.Join(keywords, ", "))
	fmt.Printf("Sources: %d\n", len(sources))
	fmt.Printf("Successful: %d\n", succeeded)
	fmt.Printf("Failed: %d\n", len(sources)-succeeded)
	fmt.Printf("Total Rows: %d\n", totalRows)
	fmt.Printf("Duration: %s\n", duration.String())

	fmt.Printf("\n=== Individual Results ===\n")
	for _, line := range outcomes {
		fmt.Println(line)
	}

	if succeeded == 0 {
		fmt.Println("\nNo source produced data.")
		os.Exit(1)
	}

	if err := writeExports(*output, tables, *xlsx); err != nil {
		log.WithError(err).Error("Export failed")
		fmt.Printf("\nERROR: export failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nExports saved to %s\n", *output)
}

type sourceOptions struct {
	keywords   []string
	categories []string
	category   string
	dates      insight.DateRange
	gender     string
	ages       []string
}

func runSource(ctx context.Context, reports insight.ReportService, source string, opts sourceOptions) (export.Table, insight.ReportMeta, error) {
	switch source {
	case naver.EndpointTrend:
		report, err := reports.Trend(ctx, insight.TrendQuery{
			Keywords: opts.keywords,
			Range:    opts.dates,
			Gender:   opts.gender,
			Ages:     opts.ages,
		})
		if err != nil {
			return export.Table{}, insight.ReportMeta{}, err
		}
		return report.Table(), report.Meta, nil
	case naver.EndpointShopping:
		report, err := reports.Shopping(ctx, insight.SearchQuery{
			Keywords:   opts.keywords,
			Categories: opts.categories,
		})
		if err != nil {
			return export.Table{}, insight.ReportMeta{}, err
		}
		return report.Table(), report.Meta, nil
	case naver.EndpointBlog:
		report, err := reports.Blog(ctx, insight.SearchQuery{Keywords: opts.keywords})
		if err != nil {
			return export.Table{}, insight.ReportMeta{}, err
		}
		return report.Table(), report.Meta, nil
	case naver.EndpointCafe:
		report, err := reports.Cafe(ctx, insight.SearchQuery{Keywords: opts.keywords})
		if err != nil {
			return export.Table{}, insight.ReportMeta{}, err
		}
		return report.Table(), report.Meta, nil
	case naver.EndpointNews:
		report, err := reports.News(ctx, insight.SearchQuery{Keywords: opts.keywords})
		if err != nil {
			return export.Table{}, insight.ReportMeta{}, err
		}
		return report.Table(), report.Meta, nil
	case naver.EndpointInsight:
		report, err := reports.Insight(ctx, insight.InsightQuery{
			Category: opts.category,
			Keywords: opts.keywords,
			Range:    opts.dates,
		})
		if err != nil {
			return export.Table{}, insight.ReportMeta{}, err
		}
		return report.Table(), report.Meta, nil
	}
	return export.Table{}, insight.ReportMeta{}, fmt.Errorf("unknown source: %s", source)
}

func writeExports(dir string, tables []export.Table, workbook bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	suffix := time.Now().Format("2006-01-02")

	for _, table := range tables {
		path := filepath.Join(dir, export.FileName(table.Name, suffix))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := export.WriteCSV(f, table); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("Saved: %s (%d rows)\n", path, len(table.Rows))
	}

	if workbook {
		path := filepath.Join(dir, fmt.Sprintf("naversearch_%s.xlsx", suffix))
		if err := export.WriteWorkbook(path, tables); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		fmt.Printf("Saved: %s (%d sheets)\n", path, len(tables))
	}
	return nil
}

func resolveSources(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "all" {
		return allSources, nil
	}

	known := make(map[string]struct{}, len(allSources))
	for _, s := range allSources {
		known[s] = struct{}{}
	}

	sources := splitCSV(raw)
	for _, s := range sources {
		if _, ok := known[s]; !ok {
			return nil, fmt.Errorf("unknown source %q (valid: %s)", s, strings.Join(allSources, ", "))
		}
	}
	return sources, nil
}

func parseRange(start, end string) (insight.DateRange, error) {
	var r insight.DateRange
	if start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			return r, fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", start)
		}
		r.Start = t
	}
	if end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			return r, fmt.Errorf("invalid end date %q, expected YYYY-MM-DD", end)
		}
		r.End = t
	}
	return r, nil
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}

func printUsage() {
	fmt.Println("Naver Search Insight Collector")
	fmt.Println("")
	fmt.Println("USAGE:")
	fmt.Println("    ./st-naversearch [OPTIONS]")
	fmt.Println("")
	fmt.Println("CREDENTIALS (required):")
	fmt.Println("    NAVER_CLIENT_ID        Naver Open API client id")
	fmt.Println("    NAVER_CLIENT_SECRET    Naver Open API client secret")
	fmt.Println("    Both may live in a .env file (see -env-file).")
	fmt.Println("")
	fmt.Println("BASIC OPTIONS:")
	fmt.Println("    -keywords string       Comma-separated keywords (default: 오메가3,비타민D,유산균)")
	fmt.Println("    -sources string        Sources to collect, or \"all\" (default: all)")
	fmt.Println("                           Valid: trend, shopping, blog, cafe, news, shopping-insight")
	fmt.Println("    -output string         Export directory (default: exports)")
	fmt.Println("    -xlsx                  Also write one XLSX workbook with all sources")
	fmt.Println("    -workers int           Concurrent keyword fetches per source (default: 3)")
	fmt.Println("    -debug                 Enable debug logging (env: DEBUG)")
	fmt.Println("")
	fmt.Println("TREND OPTIONS:")
	fmt.Println("    -start string          Range start, YYYY-MM-DD (default: January 1st)")
	fmt.Println("    -end string            Range end, YYYY-MM-DD (default: today)")
	fmt.Println("    -gender string         Gender filter: m or f")
	fmt.Println("    -ages string           Comma-separated age bracket codes (1-11)")
	fmt.Println("")
	fmt.Println("SHOPPING OPTIONS:")
	fmt.Println("    -categories string     Keep only these top-level categories")
	fmt.Println("    -category string       Insight category code (default: 50000008, food)")
	fmt.Println("    -display int           Rows per keyword (default: 100, max: 100)")
	fmt.Println("")
	fmt.Println("TOP-LEVEL CATEGORIES (for -categories):")
	for i := 0; i < len(insight.DefaultCategories); i += 4 {
		end := i + 4
		if end > len(insight.DefaultCategories) {
			end = len(insight.DefaultCategories)
		}
		fmt.Printf("    %s\n", strings.Join(insight.DefaultCategories[i:end], ", "))
	}
	fmt.Println("")
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("    NAVERSEARCH_KEYWORDS   Comma-separated keywords")
	fmt.Println("    NAVERSEARCH_SOURCES    Sources to collect")
	fmt.Println("    NAVERSEARCH_WORKERS    Concurrent fetches per source (3)")
	fmt.Println("    NAVERSEARCH_OUTPUT_DIR Export directory (exports)")
	fmt.Println("    DEBUG                  Enable debug logging (false)")
	fmt.Println("")
	fmt.Println("EXAMPLES:")
	fmt.Println("    ./st-naversearch -keywords \"오메가3,루테인\"")
	fmt.Println("    ./st-naversearch -sources shopping,blog -categories 식품")
	fmt.Println("    ./st-naversearch -sources trend -start 2024-01-01 -end 2024-03-31 -gender f")
	fmt.Println("    ./st-naversearch -xlsx -output ./out")
}
