package insight

import (
	"strconv"

	"github.com/corazzon/st-naversearch/pkg/export"
)

const publishedLayout = "2006-01-02 15:04"

// Table flattens the trend points into an exportable row set.
func (r *TrendReport) Table() export.Table {
	rows := make([][]string, 0, len(r.Points))
	for _, p := range r.Points {
		rows = append(rows, []string{p.Period, formatRatio(p.Ratio), p.Keyword})
	}
	return export.Table{
		Name:    r.Meta.Source,
		Columns: []string{"period", "ratio", "keyword"},
		Rows:    rows,
	}
}

// Table flattens the product rows into an exportable row set. Rows
// without a parsed price export an empty price cell.
func (r *ShoppingReport) Table() export.Table {
	rows := make([][]string, 0, len(r.Products))
	for _, p := range r.Products {
		price := ""
		if p.Price != nil {
			price = strconv.FormatInt(*p.Price, 10)
		}
		rows = append(rows, []string{
			p.Title, price, p.Mall, p.Brand,
			p.Category1, p.Category2, p.Category3, p.Category4,
			p.Maker, p.Link, p.Keyword,
		})
	}
	return export.Table{
		Name: r.Meta.Source,
		Columns: []string{
			"title", "price", "mall", "brand",
			"category1", "category2", "category3", "category4",
			"maker", "link", "keyword",
		},
		Rows: rows,
	}
}

// Table flattens the blog posts into an exportable row set.
func (r *BlogReport) Table() export.Table {
	rows := make([][]string, 0, len(r.Posts))
	for _, p := range r.Posts {
		date := ""
		if p.Date != nil {
			date = p.Date.Format(dayLayout)
		}
		rows = append(rows, []string{p.Title, p.Description, p.Blogger, date, p.Link, p.Keyword})
	}
	return export.Table{
		Name:    r.Meta.Source,
		Columns: []string{"title", "description", "blogger", "date", "link", "keyword"},
		Rows:    rows,
	}
}

// Table flattens the cafe posts into an exportable row set.
func (r *CafeReport) Table() export.Table {
	rows := make([][]string, 0, len(r.Posts))
	for _, p := range r.Posts {
		rows = append(rows, []string{p.Title, p.Description, p.Cafe, p.CafeURL, p.Link, p.Keyword})
	}
	return export.Table{
		Name:    r.Meta.Source,
		Columns: []string{"title", "description", "cafe", "cafe_url", "link", "keyword"},
		Rows:    rows,
	}
}

// Table flattens the news articles into an exportable row set.
func (r *NewsReport) Table() export.Table {
	rows := make([][]string, 0, len(r.Articles))
	for _, a := range r.Articles {
		published := ""
		if a.Published != nil {
			published = a.Published.Format(publishedLayout)
		}
		rows = append(rows, []string{a.Title, a.Description, published, a.Link, a.OriginalLink, a.Keyword})
	}
	return export.Table{
		Name:    r.Meta.Source,
		Columns: []string{"title", "description", "published", "link", "original_link", "keyword"},
		Rows:    rows,
	}
}

// Table flattens the insight points into an exportable row set.
func (r *InsightReport) Table() export.Table {
	rows := make([][]string, 0, len(r.Points))
	for _, p := range r.Points {
		rows = append(rows, []string{p.Period, formatRatio(p.Ratio), p.Keyword})
	}
	return export.Table{
		Name:    r.Meta.Source,
		Columns: []string{"period", "ratio", "keyword"},
		Rows:    rows,
	}
}

func formatRatio(ratio float64) string {
	return strconv.FormatFloat(ratio, 'f', -1, 64)
}
