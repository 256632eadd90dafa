package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/trustify-ai/trustify/internal/model"
	"github.com/trustify-ai/trustify/internal/verify"
	"github.com/trustify-ai/trustify/internal/worker"
)

var (
	concurrency  int
	outputFile   string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple claims from a file in parallel",
	Long: `Batch verifies many claims concurrently:
- Read claims from the input file (one per line, # comments skipped)
- Verify claims in parallel with a configurable worker count
- Print one line per verdict; write full JSON results with --out

Example:
  trustify batch claims.txt
  trustify batch claims.txt --concurrency 4 --out results.json
  trustify batch claims.txt --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent verifications")
	batchCmd.Flags().StringVar(&outputFile, "out", "", "write full JSON results to this file")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for the batch")

	// Shared engine flags
	batchCmd.Flags().DurationVar(&timeout, "verify-timeout", 30*time.Second, "timeout for individual verifications")
	batchCmd.Flags().StringVar(&userAgent, "ua", "Trustify/1.0 (News Verification Service)", "HTTP User-Agent")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable feed caching")
	batchCmd.Flags().BoolVar(&noKnowledge, "no-kb", false, "disable the knowledge base")
	batchCmd.Flags().StringVar(&llmProvider, "llm", "", "LLM adjudication provider (openai, gemini)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

// verifyJob runs one claim through a shared engine.
type verifyJob struct {
	engine *verify.Engine
	claim  string
}

// verifyJobResult wraps the engine result for the pool.
type verifyJobResult struct {
	result *model.VerificationResult
}

func (r *verifyJobResult) GetError() error { return nil }

func (j *verifyJob) Execute(ctx context.Context) worker.Result {
	return &verifyJobResult{result: j.engine.Verify(ctx, j.claim)}
}

func runBatch(cmd *cobra.Command, args []string) error {
	claims, err := readClaims(args[0])
	if err != nil {
		return err
	}
	if len(claims) == 0 {
		return fmt.Errorf("no claims found in %s", args[0])
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	engine, err := verify.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Verifying %d claims with %d workers\n\n", len(claims), concurrency)

	pool := worker.NewPool(concurrency, timeout)
	pool.Start()

	go func() {
		for _, claim := range claims {
			pool.Submit(&verifyJob{engine: engine, claim: claim})
		}
		pool.Close()
	}()

	var results []*model.VerificationResult

collect:
	for range claims {
		select {
		case <-ctx.Done():
			fmt.Fprintf(os.Stderr, "batch timeout reached with %d/%d claims done\n", len(results), len(claims))
			break collect
		case res, ok := <-pool.Results():
			if !ok {
				break collect
			}
			r := res.(*verifyJobResult).result
			results = append(results, r)
			fmt.Printf("[%-18s] %.1f  %s\n", r.Status, r.CredibilityScore, r.Query)
		}
	}
	go pool.Shutdown()

	if outputFile != "" {
		if err := writeResults(outputFile, results); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "\nWrote %d results to %s\n", len(results), outputFile)
	}

	return nil
}

// readClaims loads one claim per line, skipping blanks and comments.
func readClaims(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open claims file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var claims []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		claims = append(claims, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read claims file: %w", err)
	}

	return claims, nil
}

func writeResults(path string, results []*model.VerificationResult) error {
	raw, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
