package rank

import (
	"net/url"
	"strings"

	"github.com/trustify-ai/trustify/internal/model"
)

// Publisher quality tiers. The exact weights matter less than the
// ordering: a BBC byline outranks a generic local outlet.
const (
	tierTop     = 0.9
	tierKnown   = 0.7
	tierUnknown = 0.5
)

// TrustClassifier rates publishers by name and recognizes the
// trusted-outlet domains used for direct URL verification.
type TrustClassifier struct {
	topTier        []string
	knownTier      []string
	trustedDomains []string
}

// NewTrustClassifier creates a classifier from the trust settings.
func NewTrustClassifier(cfg model.TrustConfig) *TrustClassifier {
	return &TrustClassifier{
		topTier:        lowerAll(cfg.TopTierSources),
		knownTier:      lowerAll(cfg.KnownTierSources),
		trustedDomains: lowerAll(cfg.TrustedDomains),
	}
}

// Tier returns the quality weight for a publisher name.
func (t *TrustClassifier) Tier(source string) float64 {
	name := strings.ToLower(source)

	for _, top := range t.topTier {
		if strings.Contains(name, top) {
			return tierTop
		}
	}
	for _, known := range t.knownTier {
		if strings.Contains(name, known) {
			return tierKnown
		}
	}

	return tierUnknown
}

// TrustedDomain reports whether the URL belongs to one of the outlets
// on the trusted-domain allow-list. Subdomains count.
func (t *TrustClassifier) TrustedDomain(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	host := strings.ToLower(parsed.Hostname())
	for _, domain := range t.trustedDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}

	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
