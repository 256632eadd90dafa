package model

import "time"

// Config is the full engine configuration. One engine is parameterized
// by one Config; there are no per-credential pipeline variants.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http" json:"http"`
	Providers ProvidersConfig `yaml:"providers" json:"providers"`
	Feeds     []FeedConfig    `yaml:"feeds" json:"feeds"`
	Search    SearchConfig    `yaml:"search" json:"search"`
	Scoring   ScoringConfig   `yaml:"scoring" json:"scoring"`
	Trust     TrustConfig     `yaml:"trust" json:"trust"`
	Knowledge KnowledgeConfig `yaml:"knowledge" json:"knowledge"`
	LLM       LLMConfig       `yaml:"llm" json:"llm"`
	Cache     CacheConfig     `yaml:"cache" json:"cache"`
}

// HTTPConfig controls outbound HTTP behavior shared by all adapters.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
	NoProxy      string        `yaml:"no_proxy,omitempty" json:"no_proxy,omitempty"`
}

// ProvidersConfig holds one credential per news-search API. An empty
// key disables that provider; it is never an error.
type ProvidersConfig struct {
	NewsAPIKey    string `yaml:"newsapi_key" json:"-"`
	NewsDataKey   string `yaml:"newsdata_key" json:"-"`
	MediaStackKey string `yaml:"mediastack_key" json:"-"`
	TheNewsAPIKey string `yaml:"thenewsapi_key" json:"-"`
	WorldNewsKey  string `yaml:"worldnews_key" json:"-"`
	GNewsKey      string `yaml:"gnews_key" json:"-"`
	CurrentsKey   string `yaml:"currents_key" json:"-"`
}

// FeedConfig describes one RSS/Atom feed with its manually assigned
// credibility constant.
type FeedConfig struct {
	Name        string  `yaml:"name" json:"name"`
	URL         string  `yaml:"url" json:"url"`
	Credibility float64 `yaml:"credibility" json:"credibility"`
}

// SearchConfig controls the fan-out coordinator.
type SearchConfig struct {
	OverallTimeout time.Duration `yaml:"overall_timeout" json:"overall_timeout"` // Deadline for the whole fan-out
	PerTaskTimeout time.Duration `yaml:"per_task_timeout" json:"per_task_timeout"`
	Workers        int           `yaml:"workers" json:"workers"` // Bounded pool size
	MaxFeeds       int           `yaml:"max_feeds" json:"max_feeds"`
	MaxResults     int           `yaml:"max_results" json:"max_results"`
	RatePerSecond  float64       `yaml:"rate_per_second" json:"rate_per_second"` // Per-domain outbound rate
	RateBurst      int           `yaml:"rate_burst" json:"rate_burst"`
}

// ScoringConfig holds the decision-policy tunables. The source system
// carried slightly different constants per engine variant; these are
// independent knobs, not one reconciled "true" value.
type ScoringConfig struct {
	CredibilityWeight float64 `yaml:"credibility_weight" json:"credibility_weight"` // Combined-score blend
	RelevanceWeight   float64 `yaml:"relevance_weight" json:"relevance_weight"`
	BaseNoArticles    float64 `yaml:"base_no_articles" json:"base_no_articles"`
	BasePerArticle    float64 `yaml:"base_per_article" json:"base_per_article"`
	BaseCap           float64 `yaml:"base_cap" json:"base_cap"`
	PatternWeight     float64 `yaml:"pattern_weight" json:"pattern_weight"`
	ContentWeight     float64 `yaml:"content_weight" json:"content_weight"`
	VerifiedThreshold float64 `yaml:"verified_threshold" json:"verified_threshold"`
	PartialThreshold  float64 `yaml:"partial_threshold" json:"partial_threshold"`
	MinTitleLength    int     `yaml:"min_title_length" json:"min_title_length"`
}

// TrustConfig classifies publishers into quality tiers and holds the
// trusted-outlet allow-list used by URL mode.
type TrustConfig struct {
	TrustedDomains   []string `yaml:"trusted_domains" json:"trusted_domains"`
	TopTierSources   []string `yaml:"top_tier_sources" json:"top_tier_sources"`
	KnownTierSources []string `yaml:"known_tier_sources" json:"known_tier_sources"`
}

// KnowledgeConfig controls the learning store.
type KnowledgeConfig struct {
	Enabled       bool    `yaml:"enabled" json:"enabled"`
	Path          string  `yaml:"path" json:"path"`
	SaveThreshold float64 `yaml:"save_threshold" json:"save_threshold"` // verified & score >= this -> remember
	LowThreshold  float64 `yaml:"low_threshold" json:"low_threshold"`   // unverified & score <= this -> remember
	MatchCutoff   int     `yaml:"match_cutoff" json:"match_cutoff"`     // Fuzzy ratio (0-100) for lookup hits
}

// LLMConfig configures the optional adjudication provider.
type LLMConfig struct {
	Provider  string `yaml:"provider" json:"provider"` // openai, gemini, "" (disabled)
	Model     string `yaml:"model" json:"model"`
	APIKey    string `yaml:"-" json:"-"`
	BaseURL   string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout" json:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
}

// CacheConfig controls feed/page fetch caching.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      12 * time.Second,
			UserAgent:    "Trustify/1.0 (News Verification Service)",
			MaxBodyBytes: 2_000_000,
		},
		Feeds: DefaultFeeds(),
		Search: SearchConfig{
			OverallTimeout: 30 * time.Second,
			PerTaskTimeout: 10 * time.Second,
			Workers:        8,
			MaxFeeds:       8,
			MaxResults:     20,
			RatePerSecond:  2,
			RateBurst:      4,
		},
		Scoring: ScoringConfig{
			CredibilityWeight: 0.7,
			RelevanceWeight:   0.3,
			BaseNoArticles:    3.0,
			BasePerArticle:    0.3,
			BaseCap:           8.0,
			PatternWeight:     2.0,
			ContentWeight:     2.0,
			VerifiedThreshold: 7.0,
			PartialThreshold:  5.0,
			MinTitleLength:    10,
		},
		Trust: TrustConfig{
			TrustedDomains: []string{
				"bbc.com", "bbc.co.uk", "reuters.com", "apnews.com", "cnn.com",
				"theguardian.com", "nytimes.com", "washingtonpost.com",
			},
			TopTierSources:   []string{"bbc", "reuters", "ap", "cnn", "guardian"},
			KnownTierSources: []string{"times", "post", "news"},
		},
		Knowledge: KnowledgeConfig{
			Enabled:       true,
			Path:          "data/knowledge_base.json",
			SaveThreshold: 7.0,
			LowThreshold:  3.0,
			MatchCutoff:   80,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   10,
			MaxTokens: 300,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".trustify-cache",
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   1 * time.Hour,
		},
	}
}

// DefaultFeeds is the working RSS feed table with per-feed credibility
// constants.
func DefaultFeeds() []FeedConfig {
	return []FeedConfig{
		{Name: "BBC News", URL: "https://feeds.bbci.co.uk/news/rss.xml", Credibility: 9.2},
		{Name: "CNN", URL: "http://rss.cnn.com/rss/edition.rss", Credibility: 8.5},
		{Name: "Al Jazeera", URL: "https://www.aljazeera.com/xml/rss/all.xml", Credibility: 8.7},
		{Name: "NPR", URL: "https://feeds.npr.org/1001/rss.xml", Credibility: 8.8},
		{Name: "Deutsche Welle", URL: "https://rss.dw.com/xml/rss-en-all", Credibility: 8.8},
		{Name: "France 24", URL: "https://www.france24.com/en/rss", Credibility: 8.6},
		{Name: "CBS News", URL: "https://www.cbsnews.com/latest/rss/main", Credibility: 8.6},
		{Name: "The Guardian", URL: "https://www.theguardian.com/world/rss", Credibility: 8.9},
		{Name: "NHK World", URL: "https://www3.nhk.or.jp/rss/news/cat0.xml", Credibility: 8.6},
		{Name: "Sky News", URL: "http://feeds.skynews.com/feeds/rss/home.xml", Credibility: 8.4},
		{Name: "ABC News", URL: "https://abcnews.go.com/abcnews/topstories", Credibility: 8.5},
	}
}
