package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Engineering Sync specifics
	Upstream  UpstreamConfig
	Cache     CacheConfig
	LLM       LLMConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Broadcast BroadcastConfig
	Admin     AdminConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// UpstreamConfig points at the case-management API.
type UpstreamConfig struct {
	BaseURL string
	APIKey  string
}

type CacheConfig struct {
	TTL time.Duration
}

// LLMConfig configures the narrative model. An empty APIKey is valid and
// switches every narrative stage to its deterministic fallback.
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type DatabaseConfig struct {
	DSN string
}

type SMTPConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	SenderEmail string
}

// BroadcastConfig carries delivery-cycle settings.
type BroadcastConfig struct {
	BaseURL     string
	Recipients  string
	TokenSecret string
}

type AdminConfig struct {
	User     string
	Password string
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Upstream case-management API
	cfg.Upstream.BaseURL = viper.GetString("upstream.base_url")
	cfg.Upstream.APIKey = viper.GetString("upstream.api_key")
	if u := viper.GetString("base_api_url"); u != "" {
		cfg.Upstream.BaseURL = u
	}
	if k := viper.GetString("hrms_api_key"); k != "" {
		cfg.Upstream.APIKey = k
	}

	// Cache
	cfg.Cache.TTL = viper.GetDuration("cache.ttl")

	// Narrative model
	cfg.LLM.APIKey = viper.GetString("llm.api_key")
	cfg.LLM.BaseURL = viper.GetString("llm.base_url")
	cfg.LLM.Model = viper.GetString("llm.model")
	cfg.LLM.Timeout = viper.GetDuration("llm.timeout")
	if k := viper.GetString("openai_api_key"); k != "" {
		cfg.LLM.APIKey = k
	}

	// Subscription store
	cfg.Database.DSN = viper.GetString("database.dsn")
	if dsn := viper.GetString("database_url"); dsn != "" {
		cfg.Database.DSN = dsn
	}

	// Delivery
	cfg.SMTP.Host = viper.GetString("smtp.host")
	cfg.SMTP.Port = viper.GetInt("smtp.port")
	cfg.SMTP.User = viper.GetString("smtp.user")
	cfg.SMTP.Password = viper.GetString("smtp.password")
	cfg.SMTP.SenderEmail = viper.GetString("smtp.sender_email")
	if u := viper.GetString("smtp_user"); u != "" {
		cfg.SMTP.User = u
	}
	if p := viper.GetString("smtp_pass"); p != "" {
		cfg.SMTP.Password = p
	}
	if s := viper.GetString("sender_email"); s != "" {
		cfg.SMTP.SenderEmail = s
	}
	if cfg.SMTP.SenderEmail == "" {
		cfg.SMTP.SenderEmail = cfg.SMTP.User
	}

	// Broadcast
	cfg.Broadcast.BaseURL = viper.GetString("broadcast.base_url")
	cfg.Broadcast.Recipients = viper.GetString("broadcast.recipients")
	cfg.Broadcast.TokenSecret = viper.GetString("broadcast.token_secret")
	if r := viper.GetString("recipient_email"); r != "" {
		cfg.Broadcast.Recipients = r
	}
	if s := viper.GetString("token_secret"); s != "" {
		cfg.Broadcast.TokenSecret = s
	}
	if cfg.Broadcast.BaseURL == "" {
		cfg.Broadcast.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.HTTPServer.Port)
	}

	// Admin gate
	cfg.Admin.User = viper.GetString("admin.user")
	cfg.Admin.Password = viper.GetString("admin.password")

	if cfg.Broadcast.TokenSecret == "" {
		return nil, fmt.Errorf("broadcast.token_secret is required - set TOKEN_SECRET or add it to config.yaml")
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("upstream.base_url", "https://hrms.scribeemr.com/api/HrmsWebApi")
	viper.SetDefault("cache.ttl", "900s")

	// LLM defaults
	viper.SetDefault("llm.model", "gpt-4o")
	viper.SetDefault("llm.timeout", "60s")

	viper.SetDefault("smtp.host", "smtp.gmail.com")
	viper.SetDefault("smtp.port", 587)
}
