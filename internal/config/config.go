// Package config loads application configuration from file and environment
// and initialises the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Search SearchConfig `yaml:"search" mapstructure:"search"`
	Scrape ScrapeConfig `yaml:"scrape" mapstructure:"scrape"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// SearchConfig configures the SerpAPI search phase.
type SearchConfig struct {
	SerpAPIKey  string `yaml:"serpapi_key" mapstructure:"serpapi_key"`
	MaxResults  int    `yaml:"max_results" mapstructure:"max_results"`
	ResultCount int    `yaml:"result_count" mapstructure:"result_count"`
}

// ScrapeConfig configures the two-tier page fetcher.
type ScrapeConfig struct {
	DelayMs        int `yaml:"delay_ms" mapstructure:"delay_ms"`
	TimeoutSecs    int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	BrowserTimeout int `yaml:"browser_timeout_secs" mapstructure:"browser_timeout_secs"`
}

// OutputConfig configures where run artifacts are written.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment. Every key can be set
// via RESEARCH_* environment variables, e.g. RESEARCH_SEARCH_SERPAPI_KEY.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("RESEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Every key needs one: AutomaticEnv only surfaces env values
	// through Unmarshal for keys viper already knows about.
	v.SetDefault("search.serpapi_key", "")
	v.SetDefault("search.max_results", 50)
	v.SetDefault("search.result_count", 20)
	v.SetDefault("scrape.delay_ms", 2000)
	v.SetDefault("scrape.timeout_secs", 15)
	v.SetDefault("scrape.browser_timeout_secs", 45)
	v.SetDefault("output.dir", "./output")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

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
