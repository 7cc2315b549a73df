package checks

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jonwraymond/sitehealth/discovery"
	"github.com/jonwraymond/sitehealth/health"
)

// ProviderSlug is the provider of every check in this package.
const ProviderSlug = "core"

// Version is reported in the core provider metadata.
const Version = "1.0.0"

// Pinger is the part of a Redis client the cache check needs.
// goredis.UniversalClient satisfies it.
type Pinger interface {
	Ping(ctx context.Context) *goredis.StatusCmd
}

// Deps are the collaborators and settings of the core checks. Absent
// collaborators are health.None.
type Deps struct {
	Database health.Optional[health.Database]
	Cache    health.Optional[Pinger]

	LatencyThreshold time.Duration
	MonitoringDir    string
	TempDir          string
	ConfigFile       string
	Endpoints        []string
	DialTimeout      time.Duration
	MemoryWarning    float64
	MemoryCritical   float64
}

// CorePlugin contributes the core provider and its checks.
type CorePlugin struct {
	checks []health.Check
}

// NewCorePlugin builds the core checks from deps.
func NewCorePlugin(deps Deps) *CorePlugin {
	return &CorePlugin{checks: []health.Check{
		NewDatabaseConnection(deps.Database),
		NewDatabaseLatency(deps.Database, deps.LatencyThreshold),
		NewMonitoringConnected(deps.MonitoringDir),
		NewMemoryUsage(MemoryThresholds{Warning: deps.MemoryWarning, Critical: deps.MemoryCritical}),
		NewTempWritable(deps.TempDir),
		NewConfigPermissions(deps.ConfigFile),
		NewCacheBackend(deps.Cache),
		NewNetworkReachable(deps.Endpoints, deps.DialTimeout),
	}}
}

// Name returns the plugin name.
func (p *CorePlugin) Name() string { return ProviderSlug }

// Checks returns the checks the plugin contributes.
func (p *CorePlugin) Checks() []health.Check {
	return append([]health.Check(nil), p.checks...)
}

// Metadata describes the core provider.
func Metadata() health.ProviderMetadata {
	return health.ProviderMetadata{
		Slug:        ProviderSlug,
		Name:        "Core",
		Description: "Built-in checks for the site runtime, database and environment.",
		Icon:        "heart-pulse",
		Version:     Version,
	}
}

// CollectProviders adds the core provider.
func (p *CorePlugin) CollectProviders(_ context.Context, e *discovery.CollectProvidersEvent) error {
	e.Add(Metadata())
	return nil
}

// CollectChecks adds the core checks.
func (p *CorePlugin) CollectChecks(_ context.Context, e *discovery.CollectChecksEvent) error {
	e.Add(p.checks...)
	return nil
}

var (
	_ discovery.ProviderContributor = (*CorePlugin)(nil)
	_ discovery.CheckContributor    = (*CorePlugin)(nil)
)
