package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"
)

// Config holds all runtime settings of the backend.
type Config struct {
	Port      string
	APIURL    *url.URL
	GinMode   string
	LogFormat string

	// Database. If DatabaseURL is set, PostgreSQL is used, SQLitePath otherwise.
	DatabaseURL string
	SQLitePath  string

	CORSAllowOrigins []string
	EnablePprof      bool

	Auth   AuthConfig
	Advice AdviceConfig

	// Cross-instance view invalidation. Disabled when AMQPURL is empty.
	AMQPURL      string
	AMQPExchange string

	ViewCacheTTL time.Duration
}

// AuthConfig configures verification of identity provider tokens.
type AuthConfig struct {
	JWTSecret    string // HS256 shared secret
	JWTPublicKey string // PEM encoded RSA public key for RS256
	JWTIssuer    string // Expected "iss" claim, not checked when empty
}

// AdviceConfig configures the financial advice collaborator.
type AdviceConfig struct {
	APIKey           string
	BaseURL          string
	Model            string
	Currency         currency.Unit
	MaxDocumentBytes int64
	Timeout          time.Duration
}

var defaults = map[string]any{
	"port":                      "8080",
	"api_url":                   "http://localhost:8080",
	"gin_mode":                  "release",
	"log_format":                "",
	"database_url":              "",
	"sqlite_path":               "data/finova.db",
	"cors_allow_origins":        "",
	"enable_pprof":              false,
	"auth_jwt_secret":           "",
	"auth_jwt_public_key":       "",
	"auth_jwt_issuer":           "",
	"openai_api_key":            "",
	"openai_base_url":           "",
	"advice_model":              "gpt-4o-mini",
	"advice_currency":           "USD",
	"advice_max_document_bytes": 10 << 20,
	"advice_timeout":            "60s",
	"amqp_url":                  "",
	"amqp_exchange":             "finova.views",
	"view_cache_ttl":            "5m",
}

// Load reads the configuration.
//
// Values are taken from the environment, which is populated from envFile
// first if it exists. An optional finova.yaml in the working directory can
// provide values that are not set in the environment.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("finova")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading configuration file: %w", err)
		}
	}

	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	var problems []string

	apiURL, err := url.Parse(v.GetString("api_url"))
	if err != nil || apiURL.Scheme == "" || apiURL.Host == "" {
		problems = append(problems, fmt.Sprintf("API_URL '%s' must be an absolute URL", v.GetString("api_url")))
	}

	unit, err := currency.ParseISO(v.GetString("advice_currency"))
	if err != nil {
		problems = append(problems, fmt.Sprintf("ADVICE_CURRENCY '%s' is not an ISO 4217 currency code", v.GetString("advice_currency")))
	}

	adviceTimeout, err := time.ParseDuration(v.GetString("advice_timeout"))
	if err != nil {
		problems = append(problems, fmt.Sprintf("ADVICE_TIMEOUT '%s' is not a duration", v.GetString("advice_timeout")))
	}

	cacheTTL, err := time.ParseDuration(v.GetString("view_cache_ttl"))
	if err != nil {
		problems = append(problems, fmt.Sprintf("VIEW_CACHE_TTL '%s' is not a duration", v.GetString("view_cache_ttl")))
	}

	cfg := Config{
		Port:             v.GetString("port"),
		APIURL:           apiURL,
		GinMode:          v.GetString("gin_mode"),
		LogFormat:        v.GetString("log_format"),
		DatabaseURL:      v.GetString("database_url"),
		SQLitePath:       v.GetString("sqlite_path"),
		CORSAllowOrigins: strings.Fields(v.GetString("cors_allow_origins")),
		EnablePprof:      v.GetBool("enable_pprof"),
		Auth: AuthConfig{
			JWTSecret:    v.GetString("auth_jwt_secret"),
			JWTPublicKey: v.GetString("auth_jwt_public_key"),
			JWTIssuer:    v.GetString("auth_jwt_issuer"),
		},
		Advice: AdviceConfig{
			APIKey:           v.GetString("openai_api_key"),
			BaseURL:          v.GetString("openai_base_url"),
			Model:            v.GetString("advice_model"),
			Currency:         unit,
			MaxDocumentBytes: v.GetInt64("advice_max_document_bytes"),
			Timeout:          adviceTimeout,
		},
		AMQPURL:      v.GetString("amqp_url"),
		AMQPExchange: v.GetString("amqp_exchange"),
		ViewCacheTTL: cacheTTL,
	}

	if len(problems) > 0 {
		return cfg, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	return cfg, cfg.Validate()
}

// Validate checks the values that do not need parsing.
func (c Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("PORT '%s' must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT %d must be between 1 and 65535", port))
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		problems = append(problems, fmt.Sprintf("GIN_MODE '%s' must be one of debug, release, test", c.GinMode))
	}

	switch c.LogFormat {
	case "", "human", "json":
	default:
		problems = append(problems, fmt.Sprintf("LOG_FORMAT '%s' must be human or json", c.LogFormat))
	}

	if c.DatabaseURL == "" && c.SQLitePath == "" {
		problems = append(problems, "one of DATABASE_URL or SQLITE_PATH must be set")
	}

	if c.Auth.JWTSecret == "" && c.Auth.JWTPublicKey == "" {
		problems = append(problems, "one of AUTH_JWT_SECRET or AUTH_JWT_PUBLIC_KEY must be set")
	}

	if c.Advice.MaxDocumentBytes <= 0 {
		problems = append(problems, "ADVICE_MAX_DOCUMENT_BYTES must be positive")
	}

	if c.ViewCacheTTL < 0 {
		problems = append(problems, "VIEW_CACHE_TTL must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	return nil
}

// UsePostgres reports whether the PostgreSQL driver should be used.
func (c Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}
