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
	topContributorCount = 10
	previewCount        = 50
	relatedWordCount    = 15
	dayLayout           = "2006-01-02"
)

// Blog aggregates blog posts across keywords and derives the posting
// cadence, contributor and title-word views.
func (s *Service) Blog(ctx context.Context, q SearchQuery) (*BlogReport, error) {
	keywords := cleanStrings(q.Keywords)
	if len(keywords) == 0 {
		return nil, fmt.Errorf("no keywords to query")
	}

	var posts []Post
	failures := fetch.Collect(ctx, keywords, s.workers,
		func(ctx context.Context, kw string) (interface{}, error) {
			return s.api.SearchBlog(ctx, kw)
		},
		func(kw string, batch interface{}) {
			for _, item := range batch.([]naver.BlogItem) {
				posts = append(posts, newBlogPost(item, kw))
			}
		})

	report := &BlogReport{
		Meta:  s.meta(naver.EndpointBlog, keywords, len(posts), failures),
		Posts: posts,
	}
	if len(posts) == 0 {
		return report, nil
	}

	var (
		titles   []string
		bloggers []string
		days     []string
	)
	dated := make([]Post, 0, len(posts))
	for _, p := range posts {
		titles = append(titles, p.Title)
		if p.Blogger != "" {
			bloggers = append(bloggers, p.Blogger)
		}
		if p.Date != nil {
			dated = append(dated, p)
			days = append(days, p.Date.Format(dayLayout))
		}
	}

	report.Daily = dailyCounts(days)
	report.TopBloggers = stats.TopN(bloggers, topContributorCount)
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].Date.After(*dated[j].Date)
	})
	if len(dated) > previewCount {
		dated = dated[:previewCount]
	}
	report.Latest = dated
	report.TitleWords = stats.WordFrequency(titles, keywords, relatedWordCount)
	return report, nil
}

// Cafe aggregates cafe posts across keywords and ranks the cafes they
// came from. Cafe rows carry no dates, so there is no cadence view.
func (s *Service) Cafe(ctx context.Context, q SearchQuery) (*CafeReport, error) {
	keywords := cleanStrings(q.Keywords)
	if len(keywords) == 0 {
		return nil, fmt.Errorf("no keywords to query")
	}

	var posts []CafePost
	failures := fetch.Collect(ctx, keywords, s.workers,
		func(ctx context.Context, kw string) (interface{}, error) {
			return s.api.SearchCafe(ctx, kw)
		},
		func(kw string, batch interface{}) {
			for _, item := range batch.([]naver.CafeItem) {
				posts = append(posts, newCafePost(item, kw))
			}
		})

	report := &CafeReport{
		Meta:  s.meta(naver.EndpointCafe, keywords, len(posts), failures),
		Posts: posts,
	}
	if len(posts) == 0 {
		return report, nil
	}

	var cafes []string
	for _, p := range posts {
		if p.Cafe != "" {
			cafes = append(cafes, p.Cafe)
		}
	}
	report.TopCafes = stats.TopN(cafes, topContributorCount)

	preview := posts
	if len(preview) > previewCount {
		preview = preview[:previewCount]
	}
	report.Preview = preview
	return report, nil
}

// News aggregates news articles across keywords and derives the
// publication cadence and title-word views.
func (s *Service) News(ctx context.Context, q SearchQuery) (*NewsReport, error) {
	keywords := cleanStrings(q.Keywords)
	if len(keywords) == 0 {
		return nil, fmt.Errorf("no keywords to query")
	}

	var articles []Article
	failures := fetch.Collect(ctx, keywords, s.workers,
		func(ctx context.Context, kw string) (interface{}, error) {
			return s.api.SearchNews(ctx, kw)
		},
		func(kw string, batch interface{}) {
			for _, item := range batch.([]naver.NewsItem) {
				articles = append(articles, newArticle(item, kw))
			}
		})

	report := &NewsReport{
		Meta:     s.meta(naver.EndpointNews, keywords, len(articles), failures),
		Articles: articles,
	}
	if len(articles) == 0 {
		return report, nil
	}

	var (
		titles []string
		days   []string
	)
	dated := make([]Article, 0, len(articles))
	for _, a := range articles {
		titles = append(titles, a.Title)
		if a.Published != nil {
			dated = append(dated, a)
			days = append(days, a.Published.Format(dayLayout))
		}
	}

	report.Daily = dailyCounts(days)
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].Published.After(*dated[j].Published)
	})
	if len(dated) > previewCount {
		dated = dated[:previewCount]
	}
	report.Latest = dated
	report.TitleWords = stats.WordFrequency(titles, keywords, relatedWordCount)
	return report, nil
}

func newBlogPost(item naver.BlogItem, keyword string) Post {
	p := Post{
		Title:       normalize.CleanHTML(item.Title),
		Description: normalize.CleanHTML(item.Description),
		Blogger:     item.BloggerName,
		Link:        item.Link,
		Keyword:     keyword,
	}
	if d, ok := normalize.ParseCompactDate(item.PostDate); ok {
		p.Date = &d
	}
	return p
}

func newCafePost(item naver.CafeItem, keyword string) CafePost {
	return CafePost{
		Title:       normalize.CleanHTML(item.Title),
		Description: normalize.CleanHTML(item.Description),
		Cafe:        item.CafeName,
		CafeURL:     item.CafeURL,
		Link:        item.Link,
		Keyword:     keyword,
	}
}

func newArticle(item naver.NewsItem, keyword string) Article {
	a := Article{
		Title:        normalize.CleanHTML(item.Title),
		Description:  normalize.CleanHTML(item.Description),
		Link:         item.Link,
		OriginalLink: item.OriginalLink,
		Keyword:      keyword,
	}
	if d, ok := normalize.ParseNewsDate(item.PubDate); ok {
		a.Published = &d
	}
	return a
}

// dailyCounts tallies rows per day, ascending by date.
func dailyCounts(days []string) []DateCount {
	if len(days) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, d := range days {
		counts[d]++
	}
	out := make([]DateCount, 0, len(counts))
	for d, c := range counts {
		out = append(out, DateCount{Date: d, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}
