// Package config builds the runtime configuration of each forum subcommand
// from command line flags, falling back to FORUM_* environment variables.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Config holds the settings shared by the serve, browse and db commands.
// Each command only registers the flags it uses.
type Config struct {
	Addr           string
	DBPath         string
	AllowedOrigins []string

	BaseURL  string
	PageSize int
	Timeout  time.Duration
	Author   string
	Memcache string
	CacheTTL time.Duration

	LogFile  string
	LogLevel string

	// Args are the positional arguments left after flag parsing.
	Args []string
}

func getenv(key, orElse string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return orElse
}

func getenvInt(key string, orElse int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return orElse
}

func getenvDuration(key string, orElse time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return orElse
}

// Defaults returns the configuration before any flag is applied.
func Defaults() *Config {
	return &Config{
		Addr:           getenv("FORUM_ADDR", ":8080"),
		DBPath:         getenv("FORUM_DB_PATH", "data/badger"),
		AllowedOrigins: splitList(getenv("FORUM_ALLOWED_ORIGINS", "*")),
		BaseURL:        getenv("FORUM_BASE_URL", "http://localhost:8080"),
		PageSize:       getenvInt("FORUM_PAGE_SIZE", DefaultPageSize),
		Timeout:        getenvDuration("FORUM_TIMEOUT", 10*time.Second),
		Author:         getenv("FORUM_AUTHOR", defaultAuthor()),
		Memcache:       getenv("FORUM_MEMCACHE", ""),
		CacheTTL:       getenvDuration("FORUM_CACHE_TTL", 30*time.Second),
		LogFile:        getenv("FORUM_LOG_FILE", "forum.log"),
		LogLevel:       getenv("FORUM_LOG_LEVEL", "info"),
	}
}

func defaultAuthor() string {
	if user := os.Getenv("USER"); len(user) >= 2 {
		return user
	}
	return "anonymous"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Parse parses the flags of the named command. Unknown command names get
// only the logging flags.
func Parse(command string, args []string, output io.Writer) (*Config, error) {
	cfg := Defaults()
	origins := strings.Join(cfg.AllowedOrigins, ",")

	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warning, error)")

	switch command {
	case "serve":
		fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
		fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "badger database directory")
		fs.StringVar(&origins, "allowed-origins", origins, "comma separated CORS origins")
	case "browse":
		fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "forum API base URL")
		fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "comments per page")
		fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout")
		fs.StringVar(&cfg.Author, "author", cfg.Author, "author name for new comments")
		fs.StringVar(&cfg.Memcache, "memcache", cfg.Memcache, "memcache host:port for the comment cache")
		fs.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "comment cache TTL, 0 disables caching")
		fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file")
	case "db":
		fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "badger database directory")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.AllowedOrigins = splitList(origins)
	cfg.Args = fs.Args()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values no flag type can enforce.
func (c *Config) Validate() error {
	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		return fmt.Errorf("page size must be between 1 and %d, got %d", MaxPageSize, c.PageSize)
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.CacheTTL < 0 {
		return errors.New("cache TTL cannot be negative")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base URL %q", c.BaseURL)
	}
	if n := utf8.RuneCountInString(c.Author); n < 2 || n > 50 {
		return fmt.Errorf("author must be 2 to 50 characters, got %q", c.Author)
	}
	return nil
}
