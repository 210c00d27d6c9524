package handler

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/corazzon/st-naversearch/pkg/export"
	"github.com/corazzon/st-naversearch/pkg/insight"
	"github.com/corazzon/st-naversearch/pkg/naver"
)

// ExportCSV streams one source's row table as a CSV download. The
// route parameter is "<source>.csv".
func (h *Handler) ExportCSV(c *fiber.Ctx) error {
	source := strings.TrimSuffix(c.Params("source"), ".csv")

	keywords, err := keywordsParam(c)
	if err != nil {
		return badRequest(c, err)
	}
	dates, err := rangeParam(c)
	if err != nil {
		return badRequest(c, err)
	}

	table, err := h.sourceTable(c, source, keywords, dates)
	if err != nil {
		if err == errUnknownSource {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": fmt.Sprintf("unknown export source: %s", source),
			})
		}
		return h.respondError(c, err)
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, table); err != nil {
		return h.respondError(c, err)
	}

	name := export.FileName(source, time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(buf.Bytes())
}

var errUnknownSource = fmt.Errorf("unknown export source")

func (h *Handler) sourceTable(c *fiber.Ctx, source string, keywords []string, dates insight.DateRange) (export.Table, error) {
	ctx := c.UserContext()

	switch source {
	case naver.EndpointTrend:
		report, err := h.reports.Trend(ctx, insight.TrendQuery{Keywords: keywords, Range: dates})
		if err != nil {
			return export.Table{}, err
		}
		return report.Table(), nil
	case naver.EndpointShopping:
		report, err := h.reports.Shopping(ctx, insight.SearchQuery{
			Keywords:   keywords,
			Categories: splitParam(c.Query("categories")),
		})
		if err != nil {
			return export.Table{}, err
		}
		return report.Table(), nil
	case naver.EndpointBlog:
		report, err := h.reports.Blog(ctx, insight.SearchQuery{Keywords: keywords})
		if err != nil {
			return export.Table{}, err
		}
		return report.Table(), nil
	case naver.EndpointCafe:
		report, err := h.reports.Cafe(ctx, insight.SearchQuery{Keywords: keywords})
		if err != nil {
			return export.Table{}, err
		}
		return report.Table(), nil
	case naver.EndpointNews:
		report, err := h.reports.News(ctx, insight.SearchQuery{Keywords: keywords})
		if err != nil {
			return export.Table{}, err
		}
		return report.Table(), nil
	case naver.EndpointInsight:
		report, err := h.reports.Insight(ctx, insight.InsightQuery{
			Category: c.Query("category"),
			Keywords: keywords,
			Range:    dates,
		})
		if err != nil {
			return export.Table{}, err
		}
		return report.Table(), nil
	}
	return export.Table{}, errUnknownSource
}
