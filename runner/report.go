package runner

import (
	"slices"
	"time"

	"github.com/jonwraymond/sitehealth/health"
)

// UnknownCategorySortOrder places results whose category was never
// registered after every registered category.
const UnknownCategorySortOrder = 1000

// UnknownCategoryIcon is the icon of synthesized categories.
const UnknownCategoryIcon = "circle-question"

// UnknownCategoryLabel labels results that name no category at all.
const UnknownCategoryLabel = "Other"

// Report is the aggregate outcome of one evaluation pass.
type Report struct {
	ID          string                    `json:"id"`
	GeneratedAt time.Time                 `json:"generatedAt"`
	Status      health.Status             `json:"status"`
	Counts      Counts                    `json:"counts"`
	Groups      []Group                   `json:"groups"`
	Providers   []health.ProviderMetadata `json:"providers"`

	// Cached reports whether the report was read from the cache.
	Cached bool `json:"-"`
}

// Counts tallies results per status.
type Counts struct {
	Good     int `json:"good"`
	Warning  int `json:"warning"`
	Critical int `json:"critical"`
}

// Total returns the number of results counted.
func (c Counts) Total() int {
	return c.Good + c.Warning + c.Critical
}

func (c *Counts) add(s health.Status) {
	switch s {
	case health.StatusGood:
		c.Good++
	case health.StatusWarning:
		c.Warning++
	case health.StatusCritical:
		c.Critical++
	}
}

// Group holds the results of one category in collection order.
type Group struct {
	Category health.Category `json:"category"`
	Status   health.Status   `json:"status"`
	Results  []health.Result `json:"results"`
}

// ShowOptions selects which statuses a filtered report displays.
type ShowOptions struct {
	Critical bool
	Warning  bool
	Good     bool
}

// ShowAll displays every status.
func ShowAll() ShowOptions {
	return ShowOptions{Critical: true, Warning: true, Good: true}
}

// Shows reports whether results with status s are displayed.
func (o ShowOptions) Shows(s health.Status) bool {
	switch s {
	case health.StatusCritical:
		return o.Critical
	case health.StatusWarning:
		return o.Warning
	case health.StatusGood:
		return o.Good
	}
	return false
}

// buildReport folds results into groups ordered by the category registry.
// Categories without results are omitted. Results naming an unregistered
// category get a synthesized one.
func buildReport(id string, at time.Time, results []health.Result, categories *health.CategoryRegistry, providers *health.ProviderRegistry) *Report {
	bySlug := make(map[string][]health.Result)
	for _, r := range results {
		if _, ok := categories.Get(r.Category); !ok {
			label := health.HumanizeSlug(r.Category)
			if label == "" {
				label = UnknownCategoryLabel
			}
			categories.Register(health.NewCategory(r.Category, label, UnknownCategoryIcon,
				health.WithSortOrder(UnknownCategorySortOrder)))
		}
		bySlug[r.Category] = append(bySlug[r.Category], r)
	}

	rep := &Report{
		ID:          id,
		GeneratedAt: at.UTC(),
		Status:      health.StatusGood,
		Groups:      []Group{},
		Providers:   providers.All(),
	}

	for _, c := range categories.All() {
		grouped := bySlug[c.Slug]
		if len(grouped) == 0 {
			continue
		}

		g := Group{Category: c, Status: health.StatusGood, Results: grouped}
		for _, r := range grouped {
			g.Status = health.Worst(g.Status, r.Status)
			rep.Counts.add(r.Status)
		}
		rep.Status = health.Worst(rep.Status, g.Status)
		rep.Groups = append(rep.Groups, g)
	}
	return rep
}

// Results returns every result in display order.
func (r *Report) Results() []health.Result {
	var out []health.Result
	for _, g := range r.Groups {
		out = append(out, g.Results...)
	}
	return out
}

// Result looks up a result by check slug.
func (r *Report) Result(slug string) (health.Result, bool) {
	for _, g := range r.Groups {
		for _, res := range g.Results {
			if res.Slug == slug {
				return res, true
			}
		}
	}
	return health.Result{}, false
}

// Filter returns a copy that only displays results whose status show
// selects. Groups left empty are dropped. Status and Counts still describe
// the full report.
func (r *Report) Filter(show ShowOptions) *Report {
	out := *r
	out.Groups = make([]Group, 0, len(r.Groups))
	for _, g := range r.Groups {
		kept := make([]health.Result, 0, len(g.Results))
		for _, res := range g.Results {
			if show.Shows(res.Status) {
				kept = append(kept, res)
			}
		}
		if len(kept) == 0 {
			continue
		}
		g.Results = kept
		out.Groups = append(out.Groups, g)
	}
	out.Providers = slices.Clone(r.Providers)
	return &out
}

// ToMap returns the display mapping with category labels resolved by tr.
func (r *Report) ToMap(tr health.Translator) map[string]any {
	groups := make([]map[string]any, 0, len(r.Groups))
	for _, g := range r.Groups {
		results := make([]map[string]any, 0, len(g.Results))
		for _, res := range g.Results {
			results = append(results, res.ToMap())
		}
		groups = append(groups, map[string]any{
			"category": g.Category.ToMap(tr),
			"status":   g.Status.String(),
			"results":  results,
		})
	}

	providers := make([]map[string]any, 0, len(r.Providers))
	for _, p := range r.Providers {
		providers = append(providers, p.ToMap())
	}

	return map[string]any{
		"id":          r.ID,
		"generatedAt": r.GeneratedAt.Format(time.RFC3339),
		"status":      r.Status.String(),
		"counts": map[string]int{
			"good":     r.Counts.Good,
			"warning":  r.Counts.Warning,
			"critical": r.Counts.Critical,
		},
		"groups":    groups,
		"providers": providers,
	}
}
