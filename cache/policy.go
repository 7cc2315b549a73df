package cache

import "time"

// DefaultReportTTL is how long a report stays cached when no duration is
// configured.
const DefaultReportTTL = 900 * time.Second

// Policy configures caching behavior.
type Policy struct {
	// DefaultTTL is the TTL to use when none is specified.
	// If zero, caching is disabled.
	DefaultTTL time.Duration

	// MaxTTL is the maximum allowed TTL. Override TTLs are clamped to this.
	// If zero, no maximum is enforced.
	MaxTTL time.Duration
}

// DefaultPolicy returns the default report caching policy.
// DefaultTTL: 15 minutes, MaxTTL: 24 hours
func DefaultPolicy() Policy {
	return Policy{
		DefaultTTL: DefaultReportTTL,
		MaxTTL:     24 * time.Hour,
	}
}

// NoCachePolicy returns a policy that disables caching entirely.
func NoCachePolicy() Policy {
	return Policy{}
}

// PolicyFromSettings builds a policy from the module's enableCache and
// cacheDuration (seconds) settings. A non-positive duration falls back to
// DefaultReportTTL. The configured duration is used as is, without MaxTTL.
func PolicyFromSettings(enabled bool, durationSeconds int) Policy {
	if !enabled {
		return NoCachePolicy()
	}
	p := Policy{DefaultTTL: DefaultReportTTL}
	if durationSeconds > 0 {
		p.DefaultTTL = time.Duration(durationSeconds) * time.Second
	}
	return p
}

// ShouldCache returns true if caching is enabled by this policy.
func (p Policy) ShouldCache() bool {
	return p.DefaultTTL > 0
}

// EffectiveTTL returns the TTL to use, applying defaults and clamping.
func (p Policy) EffectiveTTL(override time.Duration) time.Duration {
	ttl := override
	if ttl <= 0 {
		ttl = p.DefaultTTL
	}

	if p.MaxTTL > 0 && ttl > p.MaxTTL {
		ttl = p.MaxTTL
	}

	return ttl
}
