// Package search fans one query out to every configured source adapter
// in parallel and returns the union of whatever completed in time.
package search

import (
	"context"
	"log"
	"time"

	"github.com/trustify-ai/trustify/internal/model"
	"github.com/trustify-ai/trustify/internal/source"
	"github.com/trustify-ai/trustify/internal/worker"
)

// Coordinator runs the parallel source fan-out. One slow or failing
// provider never blocks the rest: each task has its own deadline, the
// whole fan-out has an overall one, and anything that misses either is
// dropped from the result set.
type Coordinator struct {
	adapters []source.Adapter
	limiter  *worker.Limiter

	overallTimeout time.Duration
	perTaskTimeout time.Duration
	workers        int
}

// NewCoordinator creates a coordinator over the given adapters.
func NewCoordinator(adapters []source.Adapter, cfg model.SearchConfig) *Coordinator {
	limiter := worker.NewLimiter(cfg.RatePerSecond, cfg.RateBurst)

	return &Coordinator{
		adapters:       adapters,
		limiter:        limiter,
		overallTimeout: cfg.OverallTimeout,
		perTaskTimeout: cfg.PerTaskTimeout,
		workers:        cfg.Workers,
	}
}

// searchJob is one adapter lookup running inside the pool.
type searchJob struct {
	adapter source.Adapter
	limiter *worker.Limiter
	query   string
}

// searchResult carries one adapter's articles back to the collector.
type searchResult struct {
	provider string
	articles []model.Article
	err      error
}

func (r *searchResult) GetError() error { return r.err }

func (j *searchJob) Execute(ctx context.Context) worker.Result {
	if err := j.limiter.Wait(ctx, j.adapter.Name()); err != nil {
		return &searchResult{provider: j.adapter.Name(), err: err}
	}

	articles, err := j.adapter.Search(ctx, j.query)
	return &searchResult{provider: j.adapter.Name(), articles: articles, err: err}
}

// Search queries every adapter concurrently and returns the union of
// the results that arrived before the overall deadline. Adapter errors
// are logged and treated as empty contributions; Search itself only
// fails if the parent context is already dead.
func (c *Coordinator) Search(ctx context.Context, query string) ([]model.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(c.adapters) == 0 {
		return nil, nil
	}

	deadline, cancel := context.WithTimeout(ctx, c.overallTimeout)
	defer cancel()

	pool := worker.NewPool(c.workers, c.perTaskTimeout)
	pool.Start()

	go func() {
		for _, adapter := range c.adapters {
			pool.Submit(&searchJob{adapter: adapter, limiter: c.limiter, query: query})
		}
		pool.Close()
	}()

	var articles []model.Article
	collected := 0

collect:
	for collected < len(c.adapters) {
		select {
		case <-deadline.Done():
			log.Printf("search: deadline reached with %d/%d providers answered", collected, len(c.adapters))
			break collect
		case result, ok := <-pool.Results():
			if !ok {
				break collect
			}
			collected++

			sr := result.(*searchResult)
			if sr.err != nil {
				log.Printf("search: provider %s failed: %v", sr.provider, sr.err)
				continue
			}
			articles = append(articles, sr.articles...)
		}
	}

	// Late results are discarded; the providers finish on their own time
	go pool.Shutdown()

	return articles, nil
}
