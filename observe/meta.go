package observe

import "github.com/jonwraymond/sitehealth/health"

// SpanPrefix starts every check span name.
const SpanPrefix = "healthcheck.run."

// CheckMeta identifies a health check in telemetry.
type CheckMeta struct {
	Slug     string
	Provider string
	Category string
	Title    string
}

// MetaOf extracts telemetry metadata from a check. A nil check yields the
// zero value; fields whose accessor panics stay empty.
func MetaOf(check health.Check) CheckMeta {
	id, _ := health.Identify(check)
	return CheckMeta{
		Slug:     id.Slug,
		Provider: id.Provider,
		Category: id.Category,
		Title:    id.Title,
	}
}

// SpanName returns "healthcheck.run.<slug>".
func (m CheckMeta) SpanName() string {
	if m.Slug == "" {
		return SpanPrefix + "unknown"
	}
	return SpanPrefix + m.Slug
}
