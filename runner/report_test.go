package runner

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonwraymond/sitehealth/health"
)

func sampleReport() *Report {
	categories := health.NewCategoryRegistry()
	providers := health.NewProviderRegistry()
	providers.Register(health.ProviderMetadata{Slug: "core", Name: "Core"})

	results := []health.Result{
		{Slug: "core.a", Title: "A", Status: health.StatusGood, Category: health.CategorySystem, Provider: "core"},
		{Slug: "core.b", Title: "B", Status: health.StatusWarning, Category: health.CategorySystem, Provider: "core"},
		{Slug: "core.c", Title: "C", Status: health.StatusCritical, Category: health.CategoryDatabase, Provider: "core"},
	}
	return buildReport("r1", fixedClock(), results, categories, providers)
}

func TestBuildReport_OmitsEmptyCategories(t *testing.T) {
	rep := sampleReport()
	if len(rep.Groups) != 2 {
		t.Fatalf("Groups = %d, want 2", len(rep.Groups))
	}
	if rep.Groups[0].Category.Slug != health.CategorySystem || rep.Groups[1].Category.Slug != health.CategoryDatabase {
		t.Errorf("groups = [%s %s], want [system database]", rep.Groups[0].Category.Slug, rep.Groups[1].Category.Slug)
	}
	if rep.Groups[0].Status != health.StatusWarning {
		t.Errorf("system group status = %v, want warning", rep.Groups[0].Status)
	}
	want := Counts{Good: 1, Warning: 1, Critical: 1}
	if rep.Counts != want {
		t.Errorf("Counts = %+v, want %+v", rep.Counts, want)
	}
}

func TestReport_Filter(t *testing.T) {
	rep := sampleReport()

	tests := []struct {
		name   string
		show   ShowOptions
		slugs  []string
		groups int
	}{
		{name: "all", show: ShowAll(), slugs: []string{"core.a", "core.b", "core.c"}, groups: 2},
		{name: "problems only", show: ShowOptions{Critical: true, Warning: true}, slugs: []string{"core.b", "core.c"}, groups: 2},
		{name: "good only", show: ShowOptions{Good: true}, slugs: []string{"core.a"}, groups: 1},
		{name: "nothing", show: ShowOptions{}, groups: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rep.Filter(tt.show)
			if len(got.Groups) != tt.groups {
				t.Errorf("Groups = %d, want %d", len(got.Groups), tt.groups)
			}
			results := got.Results()
			if len(results) != len(tt.slugs) {
				t.Fatalf("results = %d, want %d", len(results), len(tt.slugs))
			}
			for i, slug := range tt.slugs {
				if results[i].Slug != slug {
					t.Errorf("results[%d] = %s, want %s", i, results[i].Slug, slug)
				}
			}
			if got.Status != health.StatusCritical || got.Counts.Total() != 3 {
				t.Errorf("filtered summary = %v/%d, want critical/3", got.Status, got.Counts.Total())
			}
		})
	}

	if len(rep.Results()) != 3 {
		t.Error("Filter() modified the original report")
	}
}

func TestReport_ToMap(t *testing.T) {
	rep := sampleReport()
	tr := health.TranslatorFunc(func(key string) string {
		if key == "HEALTH_CATEGORY_SYSTEM" {
			return "System"
		}
		return key
	})

	m := rep.ToMap(tr)
	if m["status"] != "critical" {
		t.Errorf("status = %v, want critical", m["status"])
	}
	if m["generatedAt"] != "2026-03-01T12:00:00Z" {
		t.Errorf("generatedAt = %v, want 2026-03-01T12:00:00Z", m["generatedAt"])
	}

	groups := m["groups"].([]map[string]any)
	category := groups[0]["category"].(map[string]any)
	if category["label"] != "System" {
		t.Errorf("category label = %v, want System", category["label"])
	}
	results := groups[0]["results"].([]map[string]any)
	if results[1]["status"] != "warning" {
		t.Errorf("results[1].status = %v, want warning", results[1]["status"])
	}
	counts := m["counts"].(map[string]int)
	if counts["critical"] != 1 {
		t.Errorf("counts.critical = %d, want 1", counts["critical"])
	}
}

func TestReport_JSONRoundTrip(t *testing.T) {
	rep := sampleReport()
	rep.Cached = true

	data, err := json.Marshal(rep)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.Cached {
		t.Error("Cached survived encoding")
	}
	if got.Status != rep.Status || !got.GeneratedAt.Equal(rep.GeneratedAt.Truncate(time.Second)) {
		t.Errorf("decoded = %v at %v, want %v at %v", got.Status, got.GeneratedAt, rep.Status, rep.GeneratedAt)
	}
	if r, ok := got.Result("core.c"); !ok || r.Status != health.StatusCritical {
		t.Errorf("Result(core.c) = %+v, %v", r, ok)
	}
}
