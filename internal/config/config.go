package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	domainErrors "github.com/thomas-vilte/commitcost/internal/errors"
	"golang.org/x/text/language"
)

const (
	ProviderGitHub = "github"
	ProviderGitLab = "gitlab"

	defaultDirName  = ".commitcost"
	defaultFileName = "config.toml"
)

// Config is read from an optional TOML file and then overridden by the environment.
// The access token is only ever read from the environment.
type Config struct {
	Provider       string `toml:"provider" env:"COMMITCOST_PROVIDER" env-default:"github"`
	BaseURL        string `toml:"base_url" env:"COMMITCOST_BASE_URL"`
	Token          string `toml:"-" env:"REPO_TOKEN"`
	ModelPath      string `toml:"model_path" env:"COMMITCOST_MODEL" env-default:"data/model.json"`
	ReportDir      string `toml:"report_dir" env:"COMMITCOST_REPORT_DIR" env-default:"data"`
	Language       string `toml:"language" env:"COMMITCOST_LANGUAGE" env-default:"en"`
	NumberLocale   string `toml:"number_locale" env:"COMMITCOST_NUMBER_LOCALE" env-default:"en"`
	Currency       string `toml:"currency" env:"COMMITCOST_CURRENCY" env-default:"$"`
	Concurrency    int    `toml:"concurrency" env:"COMMITCOST_CONCURRENCY" env-default:"1"`
	DateTimeLayout string `toml:"datetime_layout" env:"COMMITCOST_DATETIME_LAYOUT" env-default:"02.01.2006 15:04:05"`

	PathFile string `toml:"-"`
}

// DefaultPath returns ~/.commitcost/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}
	if home == "" {
		return "", fmt.Errorf("home directory is not set")
	}
	return filepath.Join(home, defaultDirName, defaultFileName), nil
}

// LoadDotEnv loads KEY=value pairs from files (default .env) into the process
// environment. Variables already set win, and missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return domainErrors.ErrLoadConfig.
				WithError(err).
				WithContext("path", f).
				WithSuggestion("Check the .env file uses KEY=value lines")
		}
	}
	return nil
}

// LoadConfig reads the configuration. An empty path means DefaultPath, which may be
// absent. An explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, domainErrors.ErrLoadConfig.WithError(err)
		}
	}

	cfg := &Config{}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, domainErrors.ErrLoadConfig.
				WithError(err).
				WithContext("path", path)
		}
	case os.IsNotExist(statErr) && !explicit:
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, domainErrors.ErrLoadConfig.WithError(err)
		}
	default:
		return nil, domainErrors.ErrLoadConfig.
			WithError(statErr).
			WithContext("path", path)
	}

	cfg.PathFile = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig writes the file backed settings of cfg to cfg.PathFile as TOML.
func SaveConfig(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.PathFile == "" {
		return domainErrors.ErrInvalidConfig.
			WithError(fmt.Errorf("configuration file path is not defined"))
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return domainErrors.ErrInvalidConfig.WithError(err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.PathFile), 0755); err != nil {
		return domainErrors.ErrLoadConfig.
			WithError(err).
			WithContext("path", cfg.PathFile)
	}

	if err := os.WriteFile(cfg.PathFile, buf.Bytes(), 0644); err != nil {
		return domainErrors.ErrLoadConfig.
			WithError(err).
			WithContext("path", cfg.PathFile)
	}

	return nil
}

// Default returns the configuration used when neither a file nor the environment set anything.
// Keep in sync with the env-default tags.
func Default() *Config {
	return &Config{
		Provider:       ProviderGitHub,
		ModelPath:      "data/model.json",
		ReportDir:      "data",
		Language:       LangEN,
		NumberLocale:   "en",
		Currency:       "$",
		Concurrency:    1,
		DateTimeLayout: "02.01.2006 15:04:05",
	}
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGitHub, ProviderGitLab:
	default:
		return domainErrors.ErrProviderNotSupported.
			WithContext("provider", c.Provider)
	}

	if c.Concurrency < 1 {
		return invalid("concurrency", c.Concurrency, "concurrency must be at least 1")
	}

	if c.Currency == "" {
		return invalid("currency", c.Currency, "currency must not be empty")
	}

	if _, err := language.Parse(c.NumberLocale); err != nil {
		return invalid("number_locale", c.NumberLocale, "number_locale must be a BCP 47 tag such as en or de-DE")
	}

	if !IsSupportedLanguage(c.Language) {
		return invalid("language", c.Language, fmt.Sprintf("language must be one of %v", SupportedLanguages))
	}

	if c.ModelPath == "" {
		return invalid("model_path", c.ModelPath, "model_path must not be empty")
	}

	if c.ReportDir == "" {
		return invalid("report_dir", c.ReportDir, "report_dir must not be empty")
	}

	return nil
}

func invalid(key string, value interface{}, reason string) *domainErrors.AppError {
	return domainErrors.ErrInvalidConfig.
		WithError(fmt.Errorf("%s", reason)).
		WithContext("key", key).
		WithContext("value", value)
}
