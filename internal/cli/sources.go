package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trustify-ai/trustify/internal/kb"
	"github.com/trustify-ai/trustify/internal/model"
)

// sourcesCmd represents the sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Show configured providers, feeds and knowledge base status",
	Long: `Sources lists every news provider and RSS feed the engine can use,
which providers are enabled by a credential in the environment, and the
current size of the local knowledge base.`,
	RunE: runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()

	providers := []struct {
		name   string
		envVar string
	}{
		{"NewsAPI", "NEWSAPI_KEY"},
		{"NewsData", "NEWSDATA_IO_KEY"},
		{"MediaStack", "MEDIASTACK_KEY"},
		{"TheNewsAPI", "THENEWSAPI_KEY"},
		{"World News API", "WORLDNEWS_API_KEY"},
		{"GNews", "GNEWS_API_KEY"},
		{"Currents", "CURRENTS_API_KEY"},
	}

	fmt.Println("News API providers:")
	enabled := 0
	for _, p := range providers {
		status := "disabled (no key)"
		if os.Getenv(p.envVar) != "" {
			status = "enabled"
			enabled++
		}
		fmt.Printf("  %-16s %-20s %s\n", p.name, "("+p.envVar+")", status)
	}
	fmt.Printf("  %d of %d providers enabled\n\n", enabled, len(providers))

	fmt.Println("RSS feeds (no credential required):")
	for _, feed := range cfg.Feeds {
		fmt.Printf("  %-16s credibility %.1f  %s\n", feed.Name, feed.Credibility, feed.URL)
	}
	fmt.Println()

	store, err := kb.NewFileStore(cfg.Knowledge.Path, cfg.Knowledge.MatchCutoff)
	if err != nil {
		fmt.Printf("Knowledge base: unavailable (%v)\n", err)
		return nil
	}
	verified, fake := store.Snapshot()
	fmt.Printf("Knowledge base: %s\n", cfg.Knowledge.Path)
	fmt.Printf("  %d verified topics, %d known-fake topics\n", verified, fake)

	return nil
}
