package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/sitehealth/secret"
)

// EnvPath overrides the default configuration path.
const EnvPath = "SITEHEALTH_CONFIG"

// DefaultPath is used when neither an explicit path nor EnvPath is set.
const DefaultPath = "sitehealth.yaml"

// ResolvePath picks the configuration file: explicit, then $SITEHEALTH_CONFIG,
// then DefaultPath. A leading ~/ expands to the home directory.
func ResolvePath(explicit string) string {
	path := explicit
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		path = DefaultPath
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return filepath.Clean(path)
}

// Load reads the file at ResolvePath(path). A missing file yields Default.
// The returned Config has secrets resolved and has passed Validate.
func Load(ctx context.Context, path string) (Config, error) {
	path = ResolvePath(path)

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
		if cfg.Checks.ConfigFile == "" {
			cfg.Checks.ConfigFile = path
		}
	}
	cfg = hydrateDefaults(cfg)

	if err := cfg.resolveSecrets(ctx); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Resolver builds the secret resolver from the secrets section. With no
// section the env and file providers are enabled with default options.
func (c *Config) Resolver() (*secret.Resolver, error) {
	reg := secret.NewDefaultRegistry()

	sections := c.Secrets
	if len(sections) == 0 {
		sections = map[string]map[string]any{"env": nil, "file": nil}
	}

	providers := make([]secret.Provider, 0, len(sections))
	for name, opts := range sections {
		p, err := reg.Create(name, opts)
		if err != nil {
			return nil, fmt.Errorf("config: secrets.%s: %w", name, err)
		}
		providers = append(providers, p)
	}
	return secret.NewResolver(true, providers...), nil
}

func (c *Config) resolveSecrets(ctx context.Context) error {
	r, err := c.Resolver()
	if err != nil {
		return err
	}

	fields := []struct {
		name  string
		value *string
	}{
		{"database.dsn", &c.Database.DSN},
		{"cache.redis.url", &c.Cache.Redis.URL},
		{"cache.redis.username", &c.Cache.Redis.Username},
		{"cache.redis.password", &c.Cache.Redis.Password},
	}
	for _, f := range fields {
		if *f.value == "" {
			continue
		}
		resolved, err := r.Resolve(ctx, *f.value)
		if err != nil {
			return fmt.Errorf("config: %s: %w", f.name, err)
		}
		*f.value = resolved
	}

	addrs, err := r.ResolveAll(ctx, c.Cache.Redis.Addrs)
	if err != nil {
		return fmt.Errorf("config: cache.redis.addrs: %w", err)
	}
	c.Cache.Redis.Addrs = addrs
	return nil
}
