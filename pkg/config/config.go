package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Backendless BackendlessConfig
	CORS        CORSConfig
	Log         LogConfig
}

// BackendlessConfig holds the remote store credentials and tuning knobs.
// AppID and APIKey are mandatory: every outbound call is routed through
// {BaseURL}/{AppID}/{APIKey}.
type BackendlessConfig struct {
	BaseURL     string
	AppID       string
	APIKey      string
	Timeout     time.Duration
	MaxPageSize int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// With an explicit config file, a missing .env surfaces as a path
		// error rather than viper's not-found type. Either way the file is
		// optional; environment variables alone are a valid deployment.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Backendless = BackendlessConfig{
		BaseURL:     strings.TrimRight(v.GetString("BACKENDLESS_BASE_URL"), "/"),
		AppID:       v.GetString("BACKENDLESS_APP_ID"),
		APIKey:      v.GetString("BACKENDLESS_REST_API_KEY"),
		Timeout:     parseDuration(v.GetString("BACKENDLESS_TIMEOUT"), 30*time.Second),
		MaxPageSize: v.GetInt("BACKENDLESS_MAX_PAGE_SIZE"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.Backendless.AppID == "" {
		missing = append(missing, "BACKENDLESS_APP_ID")
	}
	if c.Backendless.APIKey == "" {
		missing = append(missing, "BACKENDLESS_REST_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// BasePath joins the base URL with the application credentials, the prefix
// shared by every Backendless REST call.
func (b BackendlessConfig) BasePath() string {
	return fmt.Sprintf("%s/%s/%s", b.BaseURL, b.AppID, b.APIKey)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8000)
	v.SetDefault("API_PREFIX", "")

	v.SetDefault("BACKENDLESS_BASE_URL", "https://api.backendless.com")
	v.SetDefault("BACKENDLESS_TIMEOUT", "30s")
	v.SetDefault("BACKENDLESS_MAX_PAGE_SIZE", 100)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
