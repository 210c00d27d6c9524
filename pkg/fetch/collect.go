package fetch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/corazzon/st-naversearch/pkg/logger"
)

// KeywordError records one keyword whose fetch failed. The aggregate
// proceeds without that keyword's rows.
type KeywordError struct {
	Keyword string `json:"keyword"`
	Reason  string `json:"reason"`
	Err     error  `json:"-"`
}

// Collect runs fetch once per keyword and merges each successful batch
// in keyword-list order, whatever the worker count, so assembly order
// is reproducible. A failing keyword is skipped and reported; it never
// aborts the batch. With workers above one, calls run concurrently
// under that limit; merge always runs on the calling goroutine after
// the join.
func Collect(
	ctx context.Context,
	keywords []string,
	workers int,
	fetch func(ctx context.Context, keyword string) (interface{}, error),
	merge func(keyword string, batch interface{}),
) []KeywordError {
	if len(keywords) == 0 {
		return nil
	}

	log := logger.GetLogger().WithField("component", "aggregator")

	if workers <= 1 {
		var failures []KeywordError
		for _, kw := range keywords {
			batch, err := fetch(ctx, kw)
			if err != nil {
				log.WithError(err).WithField("keyword", kw).Warn("Keyword fetch failed, continuing with the rest")
				failures = append(failures, KeywordError{Keyword: kw, Reason: err.Error(), Err: err})
				continue
			}
			merge(kw, batch)
		}
		return failures
	}

	batches := make([]interface{}, len(keywords))
	errs := make([]error, len(keywords))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, kw := range keywords {
		g.Go(func() error {
			batch, err := fetch(gctx, kw)
			if err != nil {
				errs[i] = err
				return nil // one keyword's failure must not cancel the rest
			}
			batches[i] = batch
			return nil
		})
	}
	g.Wait()

	var failures []KeywordError
	for i, kw := range keywords {
		if errs[i] != nil {
			log.WithError(errs[i]).WithField("keyword", kw).Warn("Keyword fetch failed, continuing with the rest")
			failures = append(failures, KeywordError{Keyword: kw, Reason: errs[i].Error(), Err: errs[i]})
			continue
		}
		merge(kw, batches[i])
	}
	return failures
}
