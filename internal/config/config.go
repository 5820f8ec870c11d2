// Package config loads process configuration from OASDOCS_* environment
// variables and assembles the build pipeline from it.
package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/erraggy/oasdocs"
	"github.com/erraggy/oasdocs/builder"
	"github.com/erraggy/oasdocs/internal/httputil"
	"github.com/erraggy/oasdocs/loader"
	"github.com/erraggy/oasdocs/oaserrors"
	"github.com/erraggy/oasdocs/resolver"
	"github.com/erraggy/oasdocs/validator"
)

// Config holds all configurable defaults.
// Loaded once at startup from environment variables via Load().
type Config struct {
	// HTTP server.
	Addr     string
	MaxConns int

	// Logging.
	LogLevel  slog.Level
	LogFormat string

	// Reference resolution.
	ResolveHTTP     bool
	HTTPTimeout     time.Duration
	AllowPrivateIPs bool
	BaseDir         string
	MaxFileSize     int64

	// Parsing.
	YAMLBackend   string
	HuJSON        bool
	MaxInlineSize int64

	// Validation.
	Strict     bool
	NoWarnings bool
}

// Load reads configuration from OASDOCS_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func Load() *Config {
	return &Config{
		Addr:            envString("OASDOCS_ADDR", ":8080"),
		MaxConns:        int(envInt64("OASDOCS_MAX_CONNS", 256)),
		LogLevel:        envLevel("OASDOCS_LOG_LEVEL", slog.LevelInfo),
		LogFormat:       envChoice("OASDOCS_LOG_FORMAT", "text", "text", "json"),
		ResolveHTTP:     envBool("OASDOCS_RESOLVE_HTTP", false),
		HTTPTimeout:     envDuration("OASDOCS_HTTP_TIMEOUT", 30*time.Second),
		AllowPrivateIPs: envBool("OASDOCS_ALLOW_PRIVATE_IPS", false),
		BaseDir:         envString("OASDOCS_BASE_DIR", ""),
		MaxFileSize:     envInt64("OASDOCS_MAX_FILE_SIZE", httputil.DefaultMaxBodySize),
		YAMLBackend:     envChoice("OASDOCS_YAML_BACKEND", loader.BackendYAML, loader.BackendYAML, loader.BackendGoccy),
		HuJSON:          envBool("OASDOCS_HUJSON", false),
		MaxInlineSize:   envInt64("OASDOCS_MAX_INLINE_SIZE", 10*1024*1024),
		Strict:          envBool("OASDOCS_STRICT", false),
		NoWarnings:      envBool("OASDOCS_NO_WARNINGS", false),
	}
}

// NewLogger returns a slog logger writing to w in the configured format and level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Fetcher returns the fetcher used for remote documents. Its client refuses
// private and loopback addresses unless AllowPrivateIPs is set.
func (c *Config) Fetcher() *httputil.Fetcher {
	client := httputil.NewSafeClient(c.HTTPTimeout)
	if c.AllowPrivateIPs {
		client = httputil.NewClient(c.HTTPTimeout)
	}
	return &httputil.Fetcher{Client: client, UserAgent: oasdocs.UserAgent(), MaxBodySize: c.MaxFileSize}
}

// NewBuilder assembles a Builder from the configuration. The builder gets its
// own loader cache, which lives as long as the builder.
func (c *Config) NewBuilder(logger loader.Logger) (*builder.Builder, error) {
	if logger == nil {
		logger = loader.NopLogger{}
	}
	parse, err := loader.ParseFuncFor(c.YAMLBackend)
	if err != nil {
		return nil, err
	}
	if c.BaseDir != "" {
		info, err := os.Stat(c.BaseDir)
		if err != nil || !info.IsDir() {
			return nil, &oaserrors.ConfigError{Option: "base-dir", Value: c.BaseDir, Message: "not a directory", Cause: err}
		}
	}

	cache := loader.New(
		loader.WithParseFunc(parse),
		loader.WithHuJSON(c.HuJSON),
		loader.WithLogger(logger.With("component", "loader")),
	)

	resolverOpts := []resolver.Option{
		resolver.WithLogger(logger.With("component", "resolver")),
		resolver.WithMaxFileSize(c.MaxFileSize),
	}
	if c.BaseDir != "" {
		resolverOpts = append(resolverOpts, resolver.WithBaseDir(c.BaseDir))
	}
	if c.ResolveHTTP {
		resolverOpts = append(resolverOpts, resolver.WithHTTPClient(c.Fetcher().Client))
	}

	return builder.New(
		builder.WithLoader(cache),
		builder.WithResolver(resolver.New(resolverOpts...)),
		builder.WithValidator(validator.New(
			validator.WithStrictMode(c.Strict),
			validator.WithIncludeWarnings(!c.NoWarnings),
		)),
		builder.WithLogger(logger),
	), nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}

func envLevel(key string, fallback slog.Level) slog.Level {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		slog.Warn("invalid log level env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return level
}

// envChoice returns the env value when it is one of allowed (case-insensitive).
func envChoice(key, fallback string, allowed ...string) string {
	v := strings.ToLower(os.Getenv(key))
	if v == "" {
		return fallback
	}
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	slog.Warn("invalid env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
	return fallback
}
