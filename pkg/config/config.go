package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var GlobalConfig *Config

// Config global configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Logger     LoggerConfig     `yaml:"logger"`
	Redis      RedisConfig      `yaml:"redis"`
	Credential CredentialConfig `yaml:"credential"`
	Roster     RosterConfig     `yaml:"roster"`
	Search     SearchConfig     `yaml:"search"`
	MySQL      MySQLConfig      `yaml:"mysql"`
	Rosterd    RosterdConfig    `yaml:"rosterd"`
}

// ServerConfig dashboard API server configuration
type ServerConfig struct {
	Port           int      `yaml:"port"`
	Mode           string   `yaml:"mode"`            // debug, release
	AllowedOrigins []string `yaml:"allowed_origins"` // CORS origins of the dashboard front-end
}

// LoggerConfig logger configuration
type LoggerConfig struct {
	Level  string           `yaml:"level"`  // debug, info, warn, error
	Output string           `yaml:"output"` // console, file, both
	File   LoggerFileConfig `yaml:"file"`
}

// LoggerFileConfig logger file configuration
type LoggerFileConfig struct {
	Path string `yaml:"path"`
}

// RedisConfig Redis configuration (durable key-value storage holding the credential)
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"` // false keeps credentials in process memory
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"` // key namespace, e.g. "tailorshop:"
}

// CredentialConfig describes where the bearer token may be stored
type CredentialConfig struct {
	TokenKey      string   `yaml:"token_key"`      // key holding a bare token string
	SessionKey    string   `yaml:"session_key"`    // key holding a serialized session object
	SessionFields []string `yaml:"session_fields"` // token field names inside the session object, in priority order
	SeedToken     string   `yaml:"seed_token"`     // written under TokenKey at startup when using in-memory storage
}

// RosterConfig remote roster service configuration
type RosterConfig struct {
	BaseURL              string `yaml:"base_url"`
	ListPath             string `yaml:"list_path"`
	CreatePath           string `yaml:"create_path"`
	SearchPath           string `yaml:"search_path"`
	TimeoutSeconds       int    `yaml:"timeout_seconds"`
	RetryIntervalSeconds int    `yaml:"retry_interval_seconds"` // background reload while in error state; negative disables
}

// Timeout returns the HTTP client timeout
func (c RosterConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RetryInterval returns the background reload interval; zero means disabled
func (c RosterConfig) RetryInterval() time.Duration {
	if c.RetryIntervalSeconds < 0 {
		return 0
	}
	return time.Duration(c.RetryIntervalSeconds) * time.Second
}

// SearchConfig debounced search configuration
type SearchConfig struct {
	DebounceMs int `yaml:"debounce_ms"` // quiet period after the last keystroke
}

// Debounce returns the quiet period
func (c SearchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// MySQLConfig MySQL configuration (rosterd only)
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// RosterdConfig development roster service configuration
type RosterdConfig struct {
	Port      int    `yaml:"port"`
	APIKey    string `yaml:"api_key"`    // static bearer token accepted as-is
	JWTSecret string `yaml:"jwt_secret"` // HS256 secret; tokens signed with it are accepted
}

const (
	DefaultServerPort     = 8080
	DefaultRosterdPort    = 8090
	DefaultTokenKey       = "token"
	DefaultSessionKey     = "user"
	DefaultListPath       = "/api/workers"
	DefaultCreatePath     = "/api/workers"
	DefaultSearchPath     = "/api/workers/search"
	DefaultTimeoutSeconds = 30
	DefaultRetrySeconds   = 30
	DefaultDebounceMs     = 500
)

// DefaultSessionFields are the token field names recognized inside a stored session object
var DefaultSessionFields = []string{"token", "accessToken"}

// Init initializes configuration
func Init() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		return err
	}

	GlobalConfig = cfg
	return nil
}

// Load reads and parses a configuration file, filling unset values with defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses YAML configuration bytes
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults replaces zero or invalid values with defaults
func applyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Rosterd.Port <= 0 {
		cfg.Rosterd.Port = DefaultRosterdPort
	}
	if cfg.Credential.TokenKey == "" {
		cfg.Credential.TokenKey = DefaultTokenKey
	}
	if cfg.Credential.SessionKey == "" {
		cfg.Credential.SessionKey = DefaultSessionKey
	}
	if len(cfg.Credential.SessionFields) == 0 {
		cfg.Credential.SessionFields = append([]string(nil), DefaultSessionFields...)
	}
	if cfg.Roster.ListPath == "" {
		cfg.Roster.ListPath = DefaultListPath
	}
	if cfg.Roster.CreatePath == "" {
		cfg.Roster.CreatePath = DefaultCreatePath
	}
	if cfg.Roster.SearchPath == "" {
		cfg.Roster.SearchPath = DefaultSearchPath
	}
	if cfg.Roster.TimeoutSeconds <= 0 {
		cfg.Roster.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if cfg.Roster.RetryIntervalSeconds == 0 {
		cfg.Roster.RetryIntervalSeconds = DefaultRetrySeconds
	}
	if cfg.Search.DebounceMs <= 0 {
		cfg.Search.DebounceMs = DefaultDebounceMs
	}
}
