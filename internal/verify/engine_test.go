package verify

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/trustify-ai/trustify/internal/kb"
	"github.com/trustify-ai/trustify/internal/llm"
	"github.com/trustify-ai/trustify/internal/model"
	"github.com/trustify-ai/trustify/internal/rank"
	"github.com/trustify-ai/trustify/internal/rules"
	"github.com/trustify-ai/trustify/internal/search"
	"github.com/trustify-ai/trustify/internal/source"
)

// stubAdapter feeds canned articles into the fan-out.
type stubAdapter struct {
	name     string
	articles []model.Article
	err      error
}

func (s *stubAdapter) Name() string         { return s.name }
func (s *stubAdapter) Credibility() float64 { return 8.0 }

func (s *stubAdapter) Search(ctx context.Context, query string) ([]model.Article, error) {
	return s.articles, s.err
}

// stubAdjudicator returns a fixed verdict.
type stubAdjudicator struct {
	verdict *llm.Verdict
	err     error
	calls   int
}

func (s *stubAdjudicator) Name() string { return "stub" }

func (s *stubAdjudicator) Adjudicate(ctx context.Context, claim string) (*llm.Verdict, error) {
	s.calls++
	return s.verdict, s.err
}

func newTestEngine(t *testing.T, adapters []source.Adapter) *Engine {
	t.Helper()

	cfg := model.DefaultConfig()
	cfg.Search.OverallTimeout = 2 * time.Second
	cfg.Search.PerTaskTimeout = time.Second
	cfg.Search.RatePerSecond = 100
	cfg.Knowledge.Path = filepath.Join(t.TempDir(), "kb.json")

	store, err := kb.NewFileStore(cfg.Knowledge.Path, cfg.Knowledge.MatchCutoff)
	if err != nil {
		t.Fatalf("create knowledge base: %v", err)
	}

	return &Engine{
		cfg:         cfg,
		matcher:     rules.NewMatcher(),
		store:       store,
		coordinator: search.NewCoordinator(adapters, cfg.Search),
		ranker:      rank.NewRanker(cfg.Scoring, cfg.Search.MaxResults),
		trust:       rank.NewTrustClassifier(cfg.Trust),
	}
}

func coveredClaim() (string, []source.Adapter) {
	query := "ceasefire agreement signed in the region"

	var articles []model.Article
	for i := 0; i < 8; i++ {
		articles = append(articles, model.Article{
			Title:       fmt.Sprintf("Ceasefire agreement signed in the region, update %d", i),
			Description: "Negotiators confirmed the ceasefire agreement on Friday.",
			URL:         fmt.Sprintf("https://news.example/%d", i),
			Source:      "BBC News",
			Credibility: 9.2,
		})
	}

	return query, []source.Adapter{&stubAdapter{name: "stub", articles: articles}}
}

func TestEngine_KnownFalseClaim(t *testing.T) {
	e := newTestEngine(t, nil)

	result := e.Verify(context.Background(), "Somalia is located in Asia")

	if result.Status != model.StatusUnverified {
		t.Errorf("expected unverified status, got %q", result.Status)
	}
	if result.CredibilityScore > 2.0 {
		t.Errorf("expected a floor score, got %.1f", result.CredibilityScore)
	}
	if result.Confidence != model.ConfidenceHigh {
		t.Errorf("expected high confidence, got %q", result.Confidence)
	}
	if result.Method != "rule" {
		t.Errorf("expected rule method, got %q", result.Method)
	}
	if result.Explanation == "" {
		t.Error("expected a correction text")
	}
}

func TestEngine_VagueCasualtyClaim(t *testing.T) {
	e := newTestEngine(t, nil)

	result := e.Verify(context.Background(), "100 people killed in Mumbai")

	if result.Status != model.StatusUnverified {
		t.Errorf("expected unverified status, got %q", result.Status)
	}
	if result.Method != "vague_claim" {
		t.Errorf("expected vague_claim method, got %q", result.Method)
	}
	if result.CredibilityScore != 2.0 {
		t.Errorf("expected score 2.0, got %.1f", result.CredibilityScore)
	}
}

func TestEngine_WellCoveredClaim(t *testing.T) {
	query, adapters := coveredClaim()
	e := newTestEngine(t, adapters)

	result := e.Verify(context.Background(), query)

	if result.Status != model.StatusVerified {
		t.Errorf("expected verified status, got %q (score %.1f)", result.Status, result.CredibilityScore)
	}
	if result.CredibilityScore < 7.0 {
		t.Errorf("expected score >= 7 for broad credible coverage, got %.1f", result.CredibilityScore)
	}
	if result.SourcesFound == 0 {
		t.Error("expected sources in the result")
	}
	if len(result.OfficialSources) == 0 || len(result.OfficialSources) > 5 {
		t.Errorf("expected 1-5 official sources, got %d", len(result.OfficialSources))
	}
	if result.Summary == "" {
		t.Error("expected a summary")
	}
	if result.Method != "search" {
		t.Errorf("expected search method, got %q", result.Method)
	}
}

func TestEngine_NoCoverage(t *testing.T) {
	e := newTestEngine(t, []source.Adapter{&stubAdapter{name: "empty"}})

	result := e.Verify(context.Background(), "obscure claim with no coverage anywhere")

	if result.Status != model.StatusUnverified {
		t.Errorf("expected unverified status, got %q", result.Status)
	}
	if result.CredibilityScore != 2.0 {
		t.Errorf("expected score 2.0, got %.1f", result.CredibilityScore)
	}
	if result.SourcesFound != 0 {
		t.Errorf("expected zero sources, got %d", result.SourcesFound)
	}
}

func TestEngine_LearnsAndReuses(t *testing.T) {
	query, adapters := coveredClaim()
	e := newTestEngine(t, adapters)

	first := e.Verify(context.Background(), query)
	if first.Status != model.StatusVerified {
		t.Fatalf("setup: expected verified, got %q", first.Status)
	}

	second := e.Verify(context.Background(), query)
	if second.Method != "knowledge_base" {
		t.Errorf("expected the repeat query to answer from the knowledge base, got %q", second.Method)
	}
	if second.Status != model.StatusVerified {
		t.Errorf("expected verified status from the stored entry, got %q", second.Status)
	}
	if second.CredibilityScore != first.CredibilityScore {
		t.Errorf("stored score changed: %.2f vs %.2f", second.CredibilityScore, first.CredibilityScore)
	}
}

func TestEngine_ConfidentNegativeAdjudicationShortCircuits(t *testing.T) {
	query, adapters := coveredClaim()
	e := newTestEngine(t, adapters)

	stub := &stubAdjudicator{verdict: &llm.Verdict{
		Status:           model.StatusUnverified,
		Confidence:       model.ConfidenceHigh,
		CredibilityScore: 1.0,
		Explanation:      "Known misinformation.",
		Method:           "llm_stub",
	}}
	e.adjudicator = stub

	result := e.Verify(context.Background(), query)

	if stub.calls != 1 {
		t.Fatalf("expected one adjudication call, got %d", stub.calls)
	}
	if result.Status != model.StatusUnverified {
		t.Errorf("expected the LLM verdict to decide, got %q", result.Status)
	}
	if result.Method != "llm_stub" {
		t.Errorf("expected llm method, got %q", result.Method)
	}
	if result.SourcesFound != 0 {
		t.Error("a short-circuited verification must not report search sources")
	}
}

func TestEngine_WeakAdjudicationFallsThrough(t *testing.T) {
	query, adapters := coveredClaim()
	e := newTestEngine(t, adapters)

	e.adjudicator = &stubAdjudicator{verdict: &llm.Verdict{
		Status:     model.StatusUnverified,
		Confidence: model.ConfidenceLow,
	}}

	result := e.Verify(context.Background(), query)

	if result.Method != "search" {
		t.Errorf("a weak LLM verdict must not decide; expected search method, got %q", result.Method)
	}
	if result.Status != model.StatusVerified {
		t.Errorf("expected the evidence to decide, got %q", result.Status)
	}
}

func TestEngine_URLModeWithoutExtractorIsErrorResult(t *testing.T) {
	e := newTestEngine(t, nil)

	// No extractor wired; the panic guard must convert this to an
	// error result instead of crashing the caller.
	result := e.Verify(context.Background(), "https://example.com/article")

	if result.Status != model.StatusError {
		t.Errorf("expected error status, got %q", result.Status)
	}
}

func TestEngine_ResultBookkeeping(t *testing.T) {
	e := newTestEngine(t, nil)

	result := e.Verify(context.Background(), "the earth is flat")

	if result.Timestamp.IsZero() {
		t.Error("expected a timestamp")
	}
	if result.ProcessingTimeMS < 0 {
		t.Errorf("negative processing time: %d", result.ProcessingTimeMS)
	}
	if result.Query != "the earth is flat" {
		t.Errorf("query not echoed: %q", result.Query)
	}
}
