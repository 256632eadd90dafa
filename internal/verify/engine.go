// Package verify orchestrates a claim through the full decision chain:
// rule tables, knowledge base, optional LLM adjudication, the news
// fan-out and the tiered scoring policy.
package verify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/trustify-ai/trustify/internal/cache"
	"github.com/trustify-ai/trustify/internal/kb"
	"github.com/trustify-ai/trustify/internal/llm"
	"github.com/trustify-ai/trustify/internal/model"
	"github.com/trustify-ai/trustify/internal/page"
	"github.com/trustify-ai/trustify/internal/rank"
	"github.com/trustify-ai/trustify/internal/rules"
	"github.com/trustify-ai/trustify/internal/search"
	"github.com/trustify-ai/trustify/internal/source"
	"github.com/trustify-ai/trustify/internal/util"
	"github.com/trustify-ai/trustify/internal/worker"
)

// maxOfficialSources caps how many article references a result carries.
const maxOfficialSources = 5

// urlScoreCap keeps URL-mode scores below a perfect 10; a single page
// is never absolute proof.
const urlScoreCap = 9.5

// Engine is the verification pipeline. One engine is built from one
// Config and is safe for concurrent Verify calls.
type Engine struct {
	cfg *model.Config

	matcher     *rules.Matcher
	adjudicator llm.Provider
	store       kb.Store
	coordinator *search.Coordinator
	ranker      *rank.Ranker
	trust       *rank.TrustClassifier
	extractor   *page.Extractor
}

// New wires an engine from configuration. Providers without credentials
// are simply absent; a missing LLM key disables adjudication rather
// than failing construction.
func New(cfg *model.Config) (*Engine, error) {
	var feedCache cache.Cache
	if cfg.Cache.Enabled {
		feedCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	adapters := source.FromConfig(cfg, feedCache)
	coordinator := search.NewCoordinator(adapters, cfg.Search)

	var store kb.Store = kb.Noop{}
	if cfg.Knowledge.Enabled {
		fileStore, err := kb.NewFileStore(cfg.Knowledge.Path, cfg.Knowledge.MatchCutoff)
		if err != nil {
			return nil, fmt.Errorf("open knowledge base: %w", err)
		}
		store = fileStore
	}

	adjudicator, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("configure LLM provider: %w", err)
	}

	pageClient := util.NewHTTPClient(cfg.HTTP)
	robots := util.NewRobotsChecker(util.NormalizeUserAgent(cfg.HTTP.UserAgent), cfg.HTTP.Timeout)
	limiter := worker.NewLimiter(cfg.Search.RatePerSecond, cfg.Search.RateBurst)
	extractor := page.NewExtractor(pageClient, robots, limiter, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes)

	return &Engine{
		cfg:         cfg,
		matcher:     rules.NewMatcher(),
		adjudicator: adjudicator,
		store:       store,
		coordinator: coordinator,
		ranker:      rank.NewRanker(cfg.Scoring, cfg.Search.MaxResults),
		trust:       rank.NewTrustClassifier(cfg.Trust),
		extractor:   extractor,
	}, nil
}

// Knowledge exposes the engine's knowledge base for status reporting.
func (e *Engine) Knowledge() kb.Store { return e.store }

// Verify runs the full decision chain for one query. It always returns
// a result: internal failures become a result with the error status,
// never a panic escaping to the caller.
func (e *Engine) Verify(ctx context.Context, query string) (result *model.VerificationResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("verify: recovered from panic: %v", r)
			result = e.errorResult(query, start)
		}
	}()

	if page.IsURL(query) {
		return e.verifyURL(ctx, query, start)
	}

	// Optional LLM first look: only a confident negative ends the
	// verification here, everything else continues to the evidence.
	if e.adjudicator != nil {
		if verdict, err := e.adjudicator.Adjudicate(ctx, query); err != nil {
			log.Printf("verify: LLM adjudication failed: %v", err)
		} else if verdict.Confident() && verdict.Status == model.StatusUnverified {
			return e.finish(&model.VerificationResult{
				Query:            query,
				Status:           verdict.Status,
				CredibilityScore: verdict.CredibilityScore,
				Confidence:       verdict.Confidence,
				Explanation:      verdict.Explanation,
				Method:           verdict.Method,
			}, start)
		}
	}

	if verdict := e.matcher.Check(query); verdict != nil {
		return e.finish(e.ruleResult(query, verdict), start)
	}

	if hit, ok := e.store.Lookup(query); ok {
		return e.finish(e.knowledgeResult(query, hit), start)
	}

	return e.finish(e.searchAndScore(ctx, query), start)
}

// ruleResult converts a rule-table verdict into a terminal result.
func (e *Engine) ruleResult(query string, verdict *rules.Verdict) *model.VerificationResult {
	score := 1.0
	explanation := verdict.Explanation
	if verdict.NeedsContext {
		score = 2.0
	}

	return &model.VerificationResult{
		Query:            query,
		Status:           model.StatusUnverified,
		CredibilityScore: score,
		Confidence:       confidenceFor(score),
		Explanation:      explanation,
		Method:           verdict.Method,
	}
}

// knowledgeResult answers from a stored verdict without a new fan-out.
func (e *Engine) knowledgeResult(query string, hit *kb.Hit) *model.VerificationResult {
	status := model.StatusUnverified
	if hit.Verified {
		status = model.StatusVerified
	}

	return &model.VerificationResult{
		Query:            query,
		Status:           status,
		CredibilityScore: hit.Entry.Score,
		Confidence:       confidenceFor(hit.Entry.Score),
		Explanation:      hit.Entry.Explanation,
		Summary:          hit.Entry.Summary,
		OfficialSources:  hit.Entry.Sources,
		SourcesFound:     len(hit.Entry.Sources),
		Method:           "knowledge_base",
	}
}

// searchAndScore is the evidence path: fan out, rank, apply the tiered
// decision policy and learn confident outcomes.
func (e *Engine) searchAndScore(ctx context.Context, query string) *model.VerificationResult {
	union, err := e.coordinator.Search(ctx, query)
	if err != nil {
		log.Printf("verify: search failed: %v", err)
		return &model.VerificationResult{
			Query:            query,
			Status:           model.StatusError,
			CredibilityScore: 0,
			Confidence:       model.ConfidenceLow,
			Explanation:      "Verification could not be completed.",
			Method:           "search",
		}
	}

	articles := e.ranker.Rank(query, union)

	if len(articles) == 0 {
		result := &model.VerificationResult{
			Query:            query,
			Status:           model.StatusUnverified,
			CredibilityScore: 2.0,
			Confidence:       confidenceFor(2.0),
			Explanation:      "No news coverage found for this claim in any configured source.",
			Method:           "search",
		}
		e.learn(query, result)
		return result
	}

	score := e.compositeScore(query, articles)

	result := &model.VerificationResult{
		Query:            query,
		Status:           e.statusFor(score),
		CredibilityScore: score,
		Confidence:       confidenceFor(score),
		Explanation:      explanationFor(score, len(articles)),
		Summary:          buildSummary(query, articles),
		OfficialSources:  refsOf(articles),
		SourcesFound:     len(articles),
		Method:           "search",
	}

	e.learn(query, result)
	return result
}

// compositeScore applies the decision policy: an article-count base,
// nudged by claim-text patterns and publisher quality, clamped to 0-10.
func (e *Engine) compositeScore(query string, articles []model.Article) float64 {
	s := e.cfg.Scoring

	base := s.BaseNoArticles
	if len(articles) > 0 {
		base = 5.0 + s.BasePerArticle*float64(len(articles))
		if base > s.BaseCap {
			base = s.BaseCap
		}
	}

	score := base +
		e.matcher.PatternScore(query)*s.PatternWeight +
		e.contentScore(articles)*s.ContentWeight

	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

// contentScore rates how good the best evidence is on a 0-1 scale:
// each of the top articles contributes its relevance weighted by the
// provider's credibility.
func (e *Engine) contentScore(articles []model.Article) float64 {
	n := len(articles)
	if n == 0 {
		return 0
	}
	if n > maxOfficialSources {
		n = maxOfficialSources
	}

	var total float64
	for _, a := range articles[:n] {
		total += (a.Relevance / 10) * (a.Credibility / 10)
	}

	return total / float64(n)
}

func (e *Engine) statusFor(score float64) model.Status {
	switch {
	case score >= e.cfg.Scoring.VerifiedThreshold:
		return model.StatusVerified
	case score >= e.cfg.Scoring.PartialThreshold:
		return model.StatusPartiallyVerified
	default:
		return model.StatusUnverified
	}
}

// confidenceFor labels extreme scores as high confidence; the middle of
// the scale is where the engine is least sure.
func confidenceFor(score float64) model.Confidence {
	if score > 7 || score < 3 {
		return model.ConfidenceHigh
	}
	return model.ConfidenceMedium
}

func explanationFor(score float64, count int) string {
	switch {
	case score >= 7:
		return fmt.Sprintf("Confirmed by %d credible news sources.", count)
	case score >= 5:
		return fmt.Sprintf("Partially supported: %d sources mention related coverage, but confirmation is incomplete.", count)
	default:
		return fmt.Sprintf("Insufficient support: only %d weakly matching sources found.", count)
	}
}

// learn stores confidently decided claims for instant repeat answers.
func (e *Engine) learn(query string, result *model.VerificationResult) {
	k := e.cfg.Knowledge

	var verified bool
	switch {
	case result.Status == model.StatusVerified && result.CredibilityScore >= k.SaveThreshold:
		verified = true
	case result.Status == model.StatusUnverified && result.CredibilityScore <= k.LowThreshold:
		verified = false
	default:
		return
	}

	entry := kb.Entry{
		Score:       result.CredibilityScore,
		Explanation: result.Explanation,
		Summary:     result.Summary,
		Sources:     result.OfficialSources,
	}
	if err := e.store.Remember(query, verified, entry); err != nil {
		log.Printf("verify: knowledge base write failed: %v", err)
	}
}

// verifyURL is the direct-URL path: extract the page, score the outlet
// and look for corroborating coverage of the extracted headline.
func (e *Engine) verifyURL(ctx context.Context, rawURL string, start time.Time) *model.VerificationResult {
	content, err := e.extractor.Extract(ctx, rawURL)
	if err != nil {
		log.Printf("verify: page extraction failed: %v", err)
		return e.finish(&model.VerificationResult{
			Query:            rawURL,
			Status:           model.StatusUnverified,
			CredibilityScore: 2.0,
			Confidence:       confidenceFor(2.0),
			Explanation:      "The article page could not be fetched or read.",
			Method:           "url_verification",
		}, start)
	}

	base := 6.0
	switch {
	case e.trust.TrustedDomain(rawURL):
		base = 8.0
	case e.trust.Tier(content.Source) >= 0.9:
		// Recognized outlet name on an unlisted domain
		base = 7.0
	}

	var corroborating []model.Article
	if content.Title != "" {
		if union, err := e.coordinator.Search(ctx, content.Title); err == nil {
			corroborating = e.ranker.Rank(content.Title, union)
		}
	}

	bonus := 0.3 * float64(len(corroborating))
	if bonus > 2.0 {
		bonus = 2.0
	}
	score := base + bonus
	if score > urlScoreCap {
		score = urlScoreCap
	}

	// The page itself is the first source; corroboration follows
	sources := append([]model.SourceRef{{
		Title:  content.Title,
		URL:    rawURL,
		Source: content.Source,
	}}, refsOf(corroborating)...)

	return e.finish(&model.VerificationResult{
		Query:            rawURL,
		Status:           e.statusFor(score),
		CredibilityScore: score,
		Confidence:       confidenceFor(score),
		Explanation:      urlExplanation(content.Source, e.trust.TrustedDomain(rawURL), len(corroborating)),
		Summary:          buildSummary(content.Title, corroborating),
		OfficialSources:  sources,
		SourcesFound:     len(sources),
		Method:           "url_verification",
		ExtractedTitle:   content.Title,
	}, start)
}

func urlExplanation(sourceName string, trusted bool, corroborating int) string {
	if trusted {
		return fmt.Sprintf("Published by %s, a recognized news outlet; %d independent sources corroborate the story.", sourceName, corroborating)
	}
	return fmt.Sprintf("Published by %s; %d independent sources corroborate the story.", sourceName, corroborating)
}

func (e *Engine) errorResult(query string, start time.Time) *model.VerificationResult {
	return e.finish(&model.VerificationResult{
		Query:            query,
		Status:           model.StatusError,
		CredibilityScore: 0,
		Confidence:       model.ConfidenceLow,
		Explanation:      "Verification could not be completed.",
	}, start)
}

// finish stamps the bookkeeping fields shared by every path.
func (e *Engine) finish(result *model.VerificationResult, start time.Time) *model.VerificationResult {
	result.ProcessingTimeMS = time.Since(start).Milliseconds()
	result.Timestamp = time.Now().UTC()
	return result
}

func refsOf(articles []model.Article) []model.SourceRef {
	n := len(articles)
	if n > maxOfficialSources {
		n = maxOfficialSources
	}

	refs := make([]model.SourceRef, 0, n)
	for _, a := range articles[:n] {
		refs = append(refs, a.Ref())
	}
	return refs
}
