package search

import (
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/painpoint-cli/internal/config"
	"github.com/sells-group/painpoint-cli/pkg/jina"
	"github.com/sells-group/painpoint-cli/pkg/tavily"
)

// HTTPClient returns the pooled client shared by the provider SDKs and the
// homepage reader, bounded by search.timeout_secs (30s when unset).
func HTTPClient(cfg *config.Config) *http.Client {
	timeout := time.Duration(cfg.Search.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 20,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// New builds the configured Searcher. A missing API key returns an error
// wrapping config.ErrMissingKey before any query is issued.
func New(cfg *config.Config) (Searcher, error) {
	key, err := cfg.SearchKey()
	if err != nil {
		return nil, err
	}

	hc := HTTPClient(cfg)

	switch cfg.Search.Provider {
	case "tavily", "":
		opts := []tavily.Option{tavily.WithHTTPClient(hc)}
		if cfg.Tavily.BaseURL != "" {
			opts = append(opts, tavily.WithBaseURL(cfg.Tavily.BaseURL))
		}
		return Instrument(NewTavily(tavily.NewClient(key, opts...))), nil
	case "jina":
		opts := []jina.Option{jina.WithHTTPClient(hc)}
		if cfg.Jina.SearchBaseURL != "" {
			opts = append(opts, jina.WithSearchBaseURL(cfg.Jina.SearchBaseURL))
		}
		return Instrument(NewJina(jina.NewClient(key, opts...))), nil
	default:
		return nil, eris.Errorf("search: unknown provider %q", cfg.Search.Provider)
	}
}
