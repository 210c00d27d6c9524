package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/corazzon/st-naversearch/pkg/insight"
)

func (h *Handler) Trend(c *fiber.Ctx) error {
	keywords, err := keywordsParam(c)
	if err != nil {
		return badRequest(c, err)
	}
	dates, err := rangeParam(c)
	if err != nil {
		return badRequest(c, err)
	}

	report, err := h.reports.Trend(c.UserContext(), insight.TrendQuery{
		Keywords: keywords,
		Range:    dates,
		Gender:   c.Query("gender"),
		Ages:     splitParam(c.Query("ages")),
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(report)
}

func (h *Handler) Shopping(c *fiber.Ctx) error {
	keywords, err := keywordsParam(c)
	if err != nil {
		return badRequest(c, err)
	}

	report, err := h.reports.Shopping(c.UserContext(), insight.SearchQuery{
		Keywords:   keywords,
		Categories: splitParam(c.Query("categories")),
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(report)
}

func (h *Handler) Blog(c *fiber.Ctx) error {
	keywords, err := keywordsParam(c)
	if err != nil {
		return badRequest(c, err)
	}

	report, err := h.reports.Blog(c.UserContext(), insight.SearchQuery{Keywords: keywords})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(report)
}

func (h *Handler) Cafe(c *fiber.Ctx) error {
	keywords, err := keywordsParam(c)
	if err != nil {
		return badRequest(c, err)
	}

	report, err := h.reports.Cafe(c.UserContext(), insight.SearchQuery{Keywords: keywords})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(report)
}

func (h *Handler) News(c *fiber.Ctx) error {
	keywords, err := keywordsParam(c)
	if err != nil {
		return badRequest(c, err)
	}

	report, err := h.reports.News(c.UserContext(), insight.SearchQuery{Keywords: keywords})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(report)
}

func (h *Handler) Insight(c *fiber.Ctx) error {
	keywords, err := keywordsParam(c)
	if err != nil {
		return badRequest(c, err)
	}
	dates, err := rangeParam(c)
	if err != nil {
		return badRequest(c, err)
	}

	report, err := h.reports.Insight(c.UserContext(), insight.InsightQuery{
		Category: c.Query("category"),
		Keywords: keywords,
		Range:    dates,
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(report)
}

// keywordsParam reads the comma-separated keywords query. An absent
// parameter falls back to the default keyword set; a present but
// blank one is rejected.
func keywordsParam(c *fiber.Ctx) ([]string, error) {
	raw := c.Query("keywords")
	if raw == "" {
		return insight.DefaultKeywords, nil
	}
	keywords := splitParam(raw)
	if len(keywords) == 0 {
		return nil, fmt.Errorf("keywords must not be blank")
	}
	return keywords, nil
}

func rangeParam(c *fiber.Ctx) (insight.DateRange, error) {
	var r insight.DateRange
	if raw := c.Query("start"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return r, fmt.Errorf("invalid start date: %q", raw)
		}
		r.Start = t
	}
	if raw := c.Query("end"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return r, fmt.Errorf("invalid end date: %q", raw)
		}
		r.End = t
	}
	return r, nil
}

// splitParam splits a comma-separated query value, trimming entries
// and dropping empties.
func splitParam(raw string) []string {
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
