package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/jonwraymond/sitehealth/observe"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Cache backends.
//
// CacheMemory keeps reports in process memory, so a report is only reused
// within one process. Each sitehealth CLI invocation starts empty; use
// CacheRedis to reuse reports across invocations.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Database drivers registered by the CLI.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the complete configuration.
type Config struct {
	Site     SiteConfig                `yaml:"site"`
	Module   ModuleConfig              `yaml:"module"`
	Runner   RunnerConfig              `yaml:"runner"`
	Cache    CacheConfig               `yaml:"cache"`
	Database DatabaseConfig            `yaml:"database"`
	Checks   ChecksConfig              `yaml:"checks"`
	Secrets  map[string]map[string]any `yaml:"secrets"`
	Observe  observe.Config            `yaml:"observe"`
}

// SiteConfig identifies the site being checked. Name scopes the cache key.
type SiteConfig struct {
	Name     string `yaml:"name"`
	Language string `yaml:"language"`
}

// ModuleConfig carries the health-check module settings.
type ModuleConfig struct {
	ShowCritical bool `yaml:"showCritical"`
	ShowWarning  bool `yaml:"showWarning"`
	ShowGood     bool `yaml:"showGood"`
	EnableCache  bool `yaml:"enableCache"`

	// CacheDuration is the report TTL in seconds.
	CacheDuration int `yaml:"cacheDuration"`
}

// RunnerConfig controls check execution.
type RunnerConfig struct {
	Parallel      bool          `yaml:"parallel"`
	MaxConcurrent int           `yaml:"maxConcurrent"`
	CheckTimeout  time.Duration `yaml:"checkTimeout"`
	PassTimeout   time.Duration `yaml:"passTimeout"`
}

// CacheConfig selects the report cache backend.
type CacheConfig struct {
	Backend string      `yaml:"backend"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	URL        string   `yaml:"url"`
	Addrs      []string `yaml:"addrs"`
	MasterName string   `yaml:"masterName"`
	Username   string   `yaml:"username"`
	Password   string   `yaml:"password"`
	DB         int      `yaml:"db"`
	KeyPrefix  string   `yaml:"keyPrefix"`
}

// Configured reports whether a Redis address is known.
func (r RedisConfig) Configured() bool {
	return r.URL != "" || len(r.Addrs) > 0
}

// DatabaseConfig configures the site database. An empty Driver means the
// site has no database and database checks report a missing collaborator.
type DatabaseConfig struct {
	Driver           string        `yaml:"driver"`
	DSN              string        `yaml:"dsn"`
	LatencyThreshold time.Duration `yaml:"latencyThreshold"`
}

// ChecksConfig holds the inputs of the built-in checks.
type ChecksConfig struct {
	MonitoringDir  string        `yaml:"monitoringDir"`
	ConfigFile     string        `yaml:"configFile"`
	TempDir        string        `yaml:"tempDir"`
	Endpoints      []string      `yaml:"endpoints"`
	DialTimeout    time.Duration `yaml:"dialTimeout"`
	MemoryWarning  float64       `yaml:"memoryWarning"`
	MemoryCritical float64       `yaml:"memoryCritical"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Site: SiteConfig{Name: "default", Language: "en"},
		Module: ModuleConfig{
			ShowCritical:  true,
			ShowWarning:   true,
			ShowGood:      true,
			EnableCache:   true,
			CacheDuration: 900,
		},
		Runner: RunnerConfig{
			MaxConcurrent: 4,
			CheckTimeout:  10 * time.Second,
			PassTimeout:   60 * time.Second,
		},
		Cache:    CacheConfig{Backend: CacheMemory, Redis: RedisConfig{KeyPrefix: "sitehealth:"}},
		Database: DatabaseConfig{LatencyThreshold: 250 * time.Millisecond},
		Checks: ChecksConfig{
			MonitoringDir:  "monitoring",
			DialTimeout:    3 * time.Second,
			MemoryWarning:  0.80,
			MemoryCritical: 0.95,
		},
		Observe: observe.Config{
			ServiceName: "sitehealth",
			Logging:     observe.LoggingConfig{Enabled: true, Level: "warn"},
		},
	}
}

// hydrateDefaults fills zero values the file may have cleared.
func hydrateDefaults(cfg Config) Config {
	def := Default()
	if cfg.Site.Name == "" {
		cfg.Site.Name = def.Site.Name
	}
	if cfg.Site.Language == "" {
		cfg.Site.Language = def.Site.Language
	}
	if cfg.Module.CacheDuration == 0 {
		cfg.Module.CacheDuration = def.Module.CacheDuration
	}
	if cfg.Runner.MaxConcurrent == 0 {
		cfg.Runner.MaxConcurrent = def.Runner.MaxConcurrent
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = def.Cache.Backend
	}
	if cfg.Cache.Redis.KeyPrefix == "" {
		cfg.Cache.Redis.KeyPrefix = def.Cache.Redis.KeyPrefix
	}
	if cfg.Database.LatencyThreshold == 0 {
		cfg.Database.LatencyThreshold = def.Database.LatencyThreshold
	}
	if cfg.Checks.DialTimeout == 0 {
		cfg.Checks.DialTimeout = def.Checks.DialTimeout
	}
	if cfg.Checks.MemoryWarning == 0 {
		cfg.Checks.MemoryWarning = def.Checks.MemoryWarning
	}
	if cfg.Checks.MemoryCritical == 0 {
		cfg.Checks.MemoryCritical = def.Checks.MemoryCritical
	}
	if cfg.Observe.ServiceName == "" {
		cfg.Observe.ServiceName = def.Observe.ServiceName
	}
	return cfg
}

// Validate reports the first invalid setting, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	switch {
	case c.Module.CacheDuration < 0:
		return invalid("module.cacheDuration must not be negative")
	case c.Runner.MaxConcurrent < 0:
		return invalid("runner.maxConcurrent must not be negative")
	case c.Runner.CheckTimeout < 0 || c.Runner.PassTimeout < 0:
		return invalid("runner timeouts must not be negative")
	case !slices.Contains([]string{CacheMemory, CacheRedis, CacheNone}, c.Cache.Backend):
		return invalid("cache.backend %q is not one of memory, redis, none", c.Cache.Backend)
	case c.Cache.Backend == CacheRedis && !c.Cache.Redis.Configured():
		return invalid("cache.redis.url or cache.redis.addrs is required for the redis backend")
	case c.Database.Driver != "" && !slices.Contains([]string{DriverPostgres, DriverSQLite}, c.Database.Driver):
		return invalid("database.driver %q is not one of postgres, sqlite", c.Database.Driver)
	case c.Database.Driver != "" && c.Database.DSN == "":
		return invalid("database.dsn is required when database.driver is set")
	case c.Checks.MemoryWarning <= 0 || c.Checks.MemoryCritical > 1 || c.Checks.MemoryWarning >= c.Checks.MemoryCritical:
		return invalid("checks.memoryWarning must be positive and below checks.memoryCritical (at most 1)")
	}

	if err := c.Observe.Validate(); err != nil {
		return fmt.Errorf("%w: observe: %w", ErrInvalid, err)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}
