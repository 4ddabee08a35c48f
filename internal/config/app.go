package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultFeedURL = "https://www.cbr-xml-daily.ru/daily_json.js"

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

func (c HTTPClient) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type Feed struct {
	URL             string `mapstructure:"url"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds"`
	CacheMaxItems   int64  `mapstructure:"cache_max_items"`
}

type Logging struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
	// Quiet keeps records out of stdout and only appends them to File.
	Quiet bool `mapstructure:"quiet"`
}

type Scheduler struct {
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec"`
}

type App struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	AuthorName  string `mapstructure:"author_name"`
	AuthorGroup string `mapstructure:"author_group"`
}

type AppConfig struct {
	App        App        `mapstructure:"app"`
	HTTPServer HTTPServer `mapstructure:"http_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Feed       Feed       `mapstructure:"feed"`
	Logging    Logging    `mapstructure:"logging"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
}

// Init reads configPath (YAML) and .env when they exist, then applies env overrides.
// Missing files are not an error: defaults plus environment are a complete config.
func Init(configPath string) (*AppConfig, error) {
	var cfg AppConfig

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetDefault("app.name", "Currency Tracker")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.author_name", "Currency Tracker Team")
	v.SetDefault("app.author_group", "P3122")
	v.SetDefault("http_server.port", "8000")
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("feed.url", DefaultFeedURL)
	v.SetDefault("feed.cache_ttl_seconds", 0)
	v.SetDefault("feed.cache_max_items", 128)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "app.log")
	v.SetDefault("logging.quiet", false)
	v.SetDefault("scheduler.refresh_interval_sec", 300)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// http env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// feed env vars
	_ = v.BindEnv("feed.url", "FEED_URL")
	_ = v.BindEnv("feed.cache_ttl_seconds", "FEED_CACHE_TTL_SECONDS")
	_ = v.BindEnv("feed.cache_max_items", "FEED_CACHE_MAX_ITEMS")

	// logging env vars
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("logging.file", "LOG_FILE")
	_ = v.BindEnv("logging.quiet", "LOG_QUIET")

	_ = v.BindEnv("scheduler.refresh_interval_sec", "REFRESH_INTERVAL_SEC")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
