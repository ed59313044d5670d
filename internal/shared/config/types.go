package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// RateLimitConfig bounds how often a single client may trigger scans.
// It is only enforced when Redis is enabled.
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	RequestsPerHour   int  `mapstructure:"requests_per_hour"`
}

// ScanConfig holds the defaults applied when a scan request omits the
// corresponding field. The hard clamp bounds are not configurable.
type ScanConfig struct {
	DefaultTimeoutMS   int `mapstructure:"default_timeout_ms"`
	DefaultConcurrency int `mapstructure:"default_concurrency"`
	MaxResults         int `mapstructure:"max_results"`
}

// FetchConfig controls how subscription URLs are retrieved.
type FetchConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
	MaxBodyBytes   int64  `mapstructure:"max_body_bytes"`
	MaxConcurrent  int    `mapstructure:"max_concurrent"`
	MaxRetries     int    `mapstructure:"max_retries"`
	// AllowPrivate permits subscription URLs that resolve to loopback or
	// private ranges. Off outside of local development.
	AllowPrivate bool `mapstructure:"allow_private"`
}
