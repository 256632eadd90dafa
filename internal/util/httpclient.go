package util

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/trustify-ai/trustify/internal/model"
)

// NewHTTPClient builds the outbound client shared by the provider
// adapters, the feed fetcher and the page extractor. Proxy settings
// from configuration win over the process environment.
func NewHTTPClient(cfg model.HTTPConfig) *http.Client {
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy: proxyFunc(cfg),
		},
	}
}

func proxyFunc(cfg model.HTTPConfig) func(*http.Request) (*url.URL, error) {
	if cfg.HTTPProxy == "" && cfg.HTTPSProxy == "" {
		return http.ProxyFromEnvironment
	}

	var skip []string
	for _, host := range strings.Split(cfg.NoProxy, ",") {
		if host = strings.TrimSpace(host); host != "" {
			skip = append(skip, strings.ToLower(host))
		}
	}

	return func(req *http.Request) (*url.URL, error) {
		if bypassProxy(req.URL.Hostname(), skip) {
			return nil, nil
		}
		if req.URL.Scheme == "https" && cfg.HTTPSProxy != "" {
			return url.Parse(cfg.HTTPSProxy)
		}
		if cfg.HTTPProxy != "" {
			return url.Parse(cfg.HTTPProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

// bypassProxy reports whether host matches an entry in the no_proxy
// list, either exactly or as a subdomain.
func bypassProxy(host string, skip []string) bool {
	host = strings.ToLower(host)
	for _, s := range skip {
		if host == s || strings.HasSuffix(host, "."+s) {
			return true
		}
	}
	return false
}
