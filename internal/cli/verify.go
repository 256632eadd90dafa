package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/trustify-ai/trustify/internal/model"
	"github.com/trustify-ai/trustify/internal/verify"
)

var (
	outJSON     bool
	timeout     time.Duration
	userAgent   string
	noCache     bool
	noKnowledge bool
	llmProvider string
	llmModel    string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <claim or URL>",
	Short: "Verify a news claim or an article URL",
	Long: `Verify checks one claim against live news coverage:
- Known-false patterns and geography errors answer instantly
- Previously decided claims answer from the local knowledge base
- Everything else fans out to the configured news APIs and RSS feeds
- An article URL is checked by outlet reputation plus corroboration

Provider API keys are read from the environment (NEWSAPI_KEY,
NEWSDATA_IO_KEY, MEDIASTACK_KEY, THENEWSAPI_KEY, WORLDNEWS_API_KEY,
GNEWS_API_KEY, CURRENTS_API_KEY). Missing keys disable that provider;
the RSS feeds always work.

Example:
  trustify verify "ceasefire agreement signed in gaza"
  trustify verify https://www.bbc.com/news/article-123 --json
  trustify verify "earth is flat" --llm gemini`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	// Output flags
	verifyCmd.Flags().BoolVar(&outJSON, "json", false, "print the full result as JSON")

	// HTTP flags
	verifyCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall verification timeout")
	verifyCmd.Flags().StringVar(&userAgent, "ua", "Trustify/1.0 (News Verification Service)", "HTTP User-Agent")
	verifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable feed caching (force fresh fetches)")
	verifyCmd.Flags().BoolVar(&noKnowledge, "no-kb", false, "disable the knowledge base for this run")

	// LLM flags
	verifyCmd.Flags().StringVar(&llmProvider, "llm", "", "LLM adjudication provider (openai, gemini)")
	verifyCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	engine, err := verify.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Verifying: %s\n", query)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n\n", timeout)
	}

	result := engine.Verify(ctx, query)

	if outJSON {
		return printJSON(result)
	}

	printResult(result)
	return nil
}

// buildConfig assembles the engine configuration from defaults, flags
// and environment credentials.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.UserAgent = userAgent
	cfg.Search.OverallTimeout = timeout
	cfg.Cache.Enabled = !noCache
	cfg.Knowledge.Enabled = !noKnowledge

	cfg.Providers = model.ProvidersConfig{
		NewsAPIKey:    os.Getenv("NEWSAPI_KEY"),
		NewsDataKey:   os.Getenv("NEWSDATA_IO_KEY"),
		MediaStackKey: os.Getenv("MEDIASTACK_KEY"),
		TheNewsAPIKey: os.Getenv("THENEWSAPI_KEY"),
		WorldNewsKey:  os.Getenv("WORLDNEWS_API_KEY"),
		GNewsKey:      os.Getenv("GNEWS_API_KEY"),
		CurrentsKey:   os.Getenv("CURRENTS_API_KEY"),
	}

	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "gemini":
			cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
			}
		}
	}

	return cfg, nil
}

func printJSON(result *model.VerificationResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func printResult(result *model.VerificationResult) {
	fmt.Printf("Status:      %s\n", result.Status)
	fmt.Printf("Score:       %.1f/10\n", result.CredibilityScore)
	fmt.Printf("Confidence:  %s\n", result.Confidence)
	if result.Method != "" {
		fmt.Printf("Method:      %s\n", result.Method)
	}
	if result.ExtractedTitle != "" {
		fmt.Printf("Headline:    %s\n", result.ExtractedTitle)
	}
	fmt.Printf("\n%s\n", result.Explanation)
	if result.Summary != "" {
		fmt.Printf("\n%s\n", result.Summary)
	}

	if len(result.OfficialSources) > 0 {
		fmt.Println("\nSources:")
		for _, ref := range result.OfficialSources {
			fmt.Printf("  - %s: %s\n", ref.Source, ref.URL)
		}
	}

	fmt.Printf("\nChecked %d sources in %dms\n", result.SourcesFound, result.ProcessingTimeMS)
}
