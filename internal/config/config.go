// Package config loads server settings from the environment, an optional .env
// file and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/hubspot-mcp/hubspot-mcp/internal/hubspot"
)

// ErrMissingCredentials is returned when neither an API key nor an access
// token is configured.
var ErrMissingCredentials = errors.New("missing HubSpot credentials: set HUBSPOT_API_KEY or HUBSPOT_ACCESS_TOKEN")

// Config holds all server configuration
type Config struct {
	HubSpot  HubSpotConfig
	HTTP     HTTPConfig
	Email    EmailConfig
	LogLevel string
}

// HubSpotConfig holds the CRM connection settings.
type HubSpotConfig struct {
	APIKey      string
	AccessToken string
	// ClientID and ClientSecret are accepted for OAuth setups but not used yet.
	ClientID     string
	ClientSecret string
	BaseURL      string
	// Timeout of zero leaves outbound calls unbounded.
	Timeout time.Duration
}

type HTTPConfig struct {
	Port        int
	Token       string
	TLSCertFile string
	TLSKeyFile  string
}

type EmailConfig struct {
	ResendAPIKey string
	From         string
}

// Credentials returns the configured HubSpot credentials. The client prefers
// the API key when both are set.
func (c *Config) Credentials() hubspot.Credentials {
	return hubspot.Credentials{APIKey: c.HubSpot.APIKey, AccessToken: c.HubSpot.AccessToken}
}

// Level parses LogLevel, falling back to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

var envMappings = map[string]string{
	"HubSpot.APIKey":       "HUBSPOT_API_KEY",
	"HubSpot.AccessToken":  "HUBSPOT_ACCESS_TOKEN",
	"HubSpot.ClientID":     "HUBSPOT_CLIENT_ID",
	"HubSpot.ClientSecret": "HUBSPOT_CLIENT_SECRET",
	"HubSpot.BaseURL":      "HUBSPOT_BASE_URL",
	"HubSpot.Timeout":      "HUBSPOT_TIMEOUT",
	"HTTP.Port":            "PORT",
	"HTTP.Token":           "MCP_TOKEN",
	"HTTP.TLSCertFile":     "TLS_CERT_FILE",
	"HTTP.TLSKeyFile":      "TLS_KEY_FILE",
	"Email.ResendAPIKey":   "RESEND_API_KEY",
	"Email.From":           "EMAIL_FROM",
	"LogLevel":             "LOG_LEVEL",
}

// Load reads configuration. When configFile is empty the default search
// paths are tried and a missing file is not an error.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, env := range envMappings {
		if err := v.BindEnv(key, env); err != nil {
			log.Warn().Err(err).Msgf("Failed to bind environment variable %s for %s", env, key)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("hubspot_mcp")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.hubspot-mcp")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug().Msg("Config file not found, using environment variables and defaults")
	} else {
		log.Info().Msgf("Using config file: %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	log.Debug().
		Str("base_url", cfg.HubSpot.BaseURL).
		Bool("api_key", cfg.HubSpot.APIKey != "").
		Bool("access_token", cfg.HubSpot.AccessToken != "").
		Bool("resend", cfg.Email.ResendAPIKey != "").
		Msg("Config loaded")

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HubSpot.BaseURL", hubspot.DefaultBaseURL)
	v.SetDefault("HubSpot.Timeout", time.Duration(0))
	v.SetDefault("HTTP.Port", 3000)
	v.SetDefault("LogLevel", "info")
}

func validate(cfg *Config) error {
	if cfg.HubSpot.APIKey == "" && cfg.HubSpot.AccessToken == "" {
		return ErrMissingCredentials
	}
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", cfg.HTTP.Port)
	}
	return nil
}
