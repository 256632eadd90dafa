package source

import (
	"github.com/trustify-ai/trustify/internal/cache"
	"github.com/trustify-ai/trustify/internal/model"
	"github.com/trustify-ai/trustify/internal/util"
)

// FromConfig builds the set of usable adapters. Providers missing a
// credential are skipped entirely; a missing key is configuration, not
// an error.
func FromConfig(cfg *model.Config, feedCache cache.Cache) []Adapter {
	client := util.NewHTTPClient(cfg.HTTP)
	ua := cfg.HTTP.UserAgent

	var adapters []Adapter

	if cfg.Providers.NewsAPIKey != "" {
		adapters = append(adapters, NewNewsAPI(cfg.Providers.NewsAPIKey, client, ua))
	}
	if cfg.Providers.NewsDataKey != "" {
		adapters = append(adapters, NewNewsData(cfg.Providers.NewsDataKey, client, ua))
	}
	if cfg.Providers.MediaStackKey != "" {
		adapters = append(adapters, NewMediaStack(cfg.Providers.MediaStackKey, client, ua))
	}
	if cfg.Providers.TheNewsAPIKey != "" {
		adapters = append(adapters, NewTheNewsAPI(cfg.Providers.TheNewsAPIKey, client, ua))
	}
	if cfg.Providers.WorldNewsKey != "" {
		adapters = append(adapters, NewWorldNews(cfg.Providers.WorldNewsKey, client, ua))
	}
	if cfg.Providers.GNewsKey != "" {
		adapters = append(adapters, NewGNews(cfg.Providers.GNewsKey, client, ua))
	}
	if cfg.Providers.CurrentsKey != "" {
		adapters = append(adapters, NewCurrents(cfg.Providers.CurrentsKey, client, ua))
	}

	// RSS feeds need no credential; cap the count to keep fan-out fast
	feeds := cfg.Feeds
	if cfg.Search.MaxFeeds > 0 && len(feeds) > cfg.Search.MaxFeeds {
		feeds = feeds[:cfg.Search.MaxFeeds]
	}
	for _, feed := range feeds {
		adapters = append(adapters, NewRSSFeed(feed, client, ua, feedCache, cfg.Cache.MemoryTTL, cfg.HTTP.MaxBodyBytes))
	}

	return adapters
}
