package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix prefixes every environment override, e.g. BOLIGA_APP_PORT.
// Unprefixed variables such as PATH or PORT are never read.
const EnvPrefix = "BOLIGA"

type Config struct {
	App      AppConfig      `yaml:"app"`
	Logging  LoggingConfig  `yaml:"logging"`
	Data     DataConfig     `yaml:"data"`
	Scraping ScrapingConfig `yaml:"scraping"`
}

type AppConfig struct {
	Name  string `yaml:"name"`
	Env   string `yaml:"env"`
	Debug bool   `yaml:"debug"`
	Port  int    `yaml:"port" validate:"min=1,max=65535"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=json text"`
}

// DataConfig points at the sale table used by the API and as the CLI default.
type DataConfig struct {
	Path string `yaml:"path" validate:"required"`
}

type ScrapingConfig struct {
	Boliga BoligaConfig `yaml:"boliga"`
}

type BoligaConfig struct {
	BaseURL   string          `yaml:"base_url" split_words:"true" validate:"required,url"`
	UserAgent string          `yaml:"user_agent" split_words:"true"`
	Timeout   time.Duration   `yaml:"timeout" validate:"gt=0"`
	RateLimit RateLimitConfig `yaml:"rate_limit" split_words:"true"`
}

type RateLimitConfig struct {
	Parallelism int           `yaml:"parallelism" validate:"min=1"`
	Delay       time.Duration `yaml:"delay" validate:"min=0"`
	RandomDelay time.Duration `yaml:"random_delay" split_words:"true" validate:"min=0"`
}

// Default returns the configuration used when no file or variable says otherwise.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name: "boliga-prices",
			Env:  "development",
			Port: 8080,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Data: DataConfig{
			Path: filepath.Join("data", "sales.csv"),
		},
		Scraping: ScrapingConfig{
			Boliga: BoligaConfig{
				BaseURL:   "https://www.boliga.dk",
				UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/104.0.5112.102 Safari/537.36",
				Timeout:   30 * time.Second,
				RateLimit: RateLimitConfig{
					Parallelism: 1,
					Delay:       time.Second,
					RandomDelay: 2 * time.Second,
				},
			},
		},
	}
}

// LoadConfig builds the configuration in layers: defaults, then
// <dir>/app.yaml and <dir>/scraping.yaml, then a .env file in the working
// directory and finally BOLIGA_* environment variables. Missing files are
// skipped.
func LoadConfig(dir string) (*Config, error) {
	cfg := Default()

	if err := loadYAML(filepath.Join(dir, "app.yaml"), cfg); err != nil {
		return nil, err
	}
	if err := loadYAML(filepath.Join(dir, "scraping.yaml"), &cfg.Scraping); err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func loadYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
