package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrMissingKey is returned when the selected search provider has no API key.
var ErrMissingKey = eris.New("config: missing api key")

// Config holds the full application configuration.
type Config struct {
	Search     SearchConfig     `yaml:"search" mapstructure:"search"`
	Tavily     TavilyConfig     `yaml:"tavily" mapstructure:"tavily"`
	Jina       JinaConfig       `yaml:"jina" mapstructure:"jina"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Research   ResearchConfig   `yaml:"research" mapstructure:"research"`
	Scoring    ScoringConfig    `yaml:"scoring" mapstructure:"scoring"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Notion     NotionConfig     `yaml:"notion" mapstructure:"notion"`
	Salesforce SalesforceConfig `yaml:"salesforce" mapstructure:"salesforce"`
	Batch      BatchConfig      `yaml:"batch" mapstructure:"batch"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Monitoring MonitoringConfig `yaml:"monitoring" mapstructure:"monitoring"`
	Pricing    PricingConfig    `yaml:"pricing" mapstructure:"pricing"`
}

// SearchConfig selects and tunes the web search collaborator.
type SearchConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"`
	Depth       string  `yaml:"depth" mapstructure:"depth"`
	MaxResults  int     `yaml:"max_results" mapstructure:"max_results"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// TavilyConfig holds Tavily search API settings.
type TavilyConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// JinaConfig holds Jina AI search settings.
type JinaConfig struct {
	Key           string `yaml:"key" mapstructure:"key"`
	SearchBaseURL string `yaml:"search_base_url" mapstructure:"search_base_url"`
}

// AnthropicConfig holds Anthropic API settings for the LLM analyst.
type AnthropicConfig struct {
	Key         string  `yaml:"key" mapstructure:"key"`
	Model       string  `yaml:"model" mapstructure:"model"`
	MaxTokens   int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
}

// ResearchConfig configures how a research request is assessed.
type ResearchConfig struct {
	// Mode is "keyword" (default) or "llm".
	Mode         string `yaml:"mode" mapstructure:"mode"`
	CatalogPath  string `yaml:"catalog_path" mapstructure:"catalog_path"`
	ProviderName string `yaml:"provider_name" mapstructure:"provider_name"`
	// Templates and RecentTemplates replace the built-in query templates when set.
	Templates       []string `yaml:"templates" mapstructure:"templates"`
	RecentTemplates []string `yaml:"recent_templates" mapstructure:"recent_templates"`
	// ReadHomepage adds the company URL, fetched through the Jina reader, as
	// an extra record when a Jina key is configured.
	ReadHomepage bool `yaml:"read_homepage" mapstructure:"read_homepage"`
}

// ScoringConfig configures the keyword fit scorer.
type ScoringConfig struct {
	// Formula is "capped_linear" or "linear".
	Formula string `yaml:"formula" mapstructure:"formula"`

	StrongThreshold   int `yaml:"strong_threshold" mapstructure:"strong_threshold"`
	ModerateThreshold int `yaml:"moderate_threshold" mapstructure:"moderate_threshold"`
	WeakThreshold     int `yaml:"weak_threshold" mapstructure:"weak_threshold"`

	// MaxServices caps the recommended services; 0 means no cap.
	MaxServices int `yaml:"max_services" mapstructure:"max_services"`
	// FallbackServices is how many leading catalog entries form the floor recommendation.
	FallbackServices int `yaml:"fallback_services" mapstructure:"fallback_services"`
}

// StoreConfig configures the run archive.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// NotionConfig holds Notion API credentials and the leads database ID.
type NotionConfig struct {
	Token  string `yaml:"token" mapstructure:"token"`
	LeadDB string `yaml:"lead_db" mapstructure:"lead_db"`
}

// SalesforceConfig holds Salesforce JWT auth settings for lead publishing.
type SalesforceConfig struct {
	ClientID   string  `yaml:"client_id" mapstructure:"client_id"`
	Username   string  `yaml:"username" mapstructure:"username"`
	KeyPath    string  `yaml:"key_path" mapstructure:"key_path"`
	LoginURL   string  `yaml:"login_url" mapstructure:"login_url"`
	RatePerSec float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// Enabled reports whether enough is set to attempt a Salesforce login.
func (s SalesforceConfig) Enabled() bool {
	return s.ClientID != "" && s.Username != "" && s.KeyPath != ""
}

// BatchConfig configures batch research.
type BatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// MonitoringConfig configures run-health alerts.
type MonitoringConfig struct {
	WebhookURL           string  `yaml:"webhook_url" mapstructure:"webhook_url"`
	FailureRateThreshold float64 `yaml:"failure_rate_threshold" mapstructure:"failure_rate_threshold"`
	CostThresholdUSD     float64 `yaml:"cost_threshold_usd" mapstructure:"cost_threshold_usd"`
	LookbackWindowHours  int     `yaml:"lookback_window_hours" mapstructure:"lookback_window_hours"`
	CheckIntervalSecs    int     `yaml:"check_interval_secs" mapstructure:"check_interval_secs"`
}

// PricingConfig holds per-provider pricing rates.
type PricingConfig struct {
	Tavily    TavilyPricing           `yaml:"tavily" mapstructure:"tavily"`
	Jina      JinaPricing             `yaml:"jina" mapstructure:"jina"`
	Anthropic map[string]ModelPricing `yaml:"anthropic" mapstructure:"anthropic"`
}

// TavilyPricing holds Tavily credit pricing.
type TavilyPricing struct {
	PerCredit float64 `yaml:"per_credit" mapstructure:"per_credit"`
}

// JinaPricing holds Jina search pricing.
type JinaPricing struct {
	PerQuery float64 `yaml:"per_query" mapstructure:"per_query"`
}

// ModelPricing holds per-model token pricing (USD per million tokens).
type ModelPricing struct {
	Input  float64 `yaml:"input" mapstructure:"input"`
	Output float64 `yaml:"output" mapstructure:"output"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PAINPOINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults are invisible to Unmarshal unless bound.
	for _, key := range []string{
		"tavily.key",
		"jina.key",
		"anthropic.key",
		"research.catalog_path",
		"notion.token",
		"notion.lead_db",
		"salesforce.client_id",
		"salesforce.username",
		"salesforce.key_path",
		"monitoring.webhook_url",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, eris.Wrapf(err, "config: bind env %s", key)
		}
	}

	// Defaults
	v.SetDefault("search.provider", "tavily")
	v.SetDefault("search.depth", "advanced")
	v.SetDefault("search.max_results", 5)
	v.SetDefault("search.rate_per_sec", 1.0)
	v.SetDefault("search.timeout_secs", 30)
	v.SetDefault("tavily.base_url", "https://api.tavily.com")
	v.SetDefault("jina.search_base_url", "https://s.jina.ai")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 2048)
	v.SetDefault("anthropic.temperature", 0.2)
	v.SetDefault("research.mode", "keyword")
	v.SetDefault("research.provider_name", "iNube Solutions")
	v.SetDefault("research.read_homepage", true)
	v.SetDefault("scoring.formula", "capped_linear")
	v.SetDefault("scoring.strong_threshold", 70)
	v.SetDefault("scoring.moderate_threshold", 50)
	v.SetDefault("scoring.weak_threshold", 30)
	v.SetDefault("scoring.max_services", 0)
	v.SetDefault("scoring.fallback_services", 4)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "painpoint.db")
	v.SetDefault("salesforce.login_url", "https://login.salesforce.com")
	v.SetDefault("salesforce.rate_per_sec", 5.0)
	v.SetDefault("batch.max_concurrent", 3)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("monitoring.failure_rate_threshold", 0.25)
	v.SetDefault("monitoring.cost_threshold_usd", 25.0)
	v.SetDefault("monitoring.lookback_window_hours", 24)
	v.SetDefault("monitoring.check_interval_secs", 300)
	v.SetDefault("pricing.tavily.per_credit", 0.008)
	v.SetDefault("pricing.jina.per_query", 0.001)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// SearchKey returns the API key for the configured search provider, or
// ErrMissingKey when it is unset.
func (c *Config) SearchKey() (string, error) {
	var key string
	switch c.Search.Provider {
	case "tavily", "":
		key = c.Tavily.Key
	case "jina":
		key = c.Jina.Key
	default:
		return "", eris.Errorf("config: unknown search provider %q", c.Search.Provider)
	}
	if strings.TrimSpace(key) == "" {
		return "", eris.Wrapf(ErrMissingKey, "search provider %s (set PAINPOINT_%s_KEY)",
			c.providerOrDefault(), strings.ToUpper(c.providerOrDefault()))
	}
	return key, nil
}

func (c *Config) providerOrDefault() string {
	if c.Search.Provider == "" {
		return "tavily"
	}
	return c.Search.Provider
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
