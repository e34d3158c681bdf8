package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Exact path, or a prefix when it ends with "/"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window; zero or less means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
	MaxBuckets      int // Upper bound on tracked client/endpoint pairs
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultMaxBuckets bounds memory when many distinct clients are seen.
const DefaultMaxBuckets = 10000

// DefaultConfig returns the configuration used when nothing is set in the environment.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		MaxBuckets:      DefaultMaxBuckets,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// LoadConfig loads rate limiting configuration from RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	env := envReader(os.Getenv)

	cfg.Enabled = env.boolean("RATE_LIMIT_ENABLED", cfg.Enabled)
	if !cfg.Enabled {
		return &Config{Enabled: false}
	}

	cfg.DefaultLimit = env.integer("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = env.duration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = env.duration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.MaxBuckets = env.integer("RATE_LIMIT_MAX_BUCKETS", cfg.MaxBuckets)
	cfg.Whitelist = parseIPList(os.Getenv("RATE_LIMIT_WHITELIST"))
	cfg.Blacklist = parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST"))
	return cfg
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
// Loader endpoints fan out into one outbound fetch per file.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/health", Method: "GET", Limit: 0},
		{Path: "/api/loader", Method: "GET", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/loader/stream", Method: "GET", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/artifact", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/api/project-type", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
	}
}

// MatchEndpoint returns the configuration for path and method, or nil.
// Exact paths win over prefix entries (paths ending in "/").
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	var prefix *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if prefix == nil && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			prefix = c
		}
	}
	return prefix
}

// envReader reads typed values, falling back to a default when unset or malformed.
type envReader func(string) string

func (get envReader) integer(key string, def int) int {
	if v, err := strconv.Atoi(get(key)); err == nil {
		return v
	}
	return def
}

func (get envReader) boolean(key string, def bool) bool {
	if v, err := strconv.ParseBool(get(key)); err == nil {
		return v
	}
	return def
}

func (get envReader) duration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(get(key)); err == nil {
		return v
	}
	return def
}

// parseIPList parses a comma-separated list of client addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
