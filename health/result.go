package health

// Result is the outcome of one health check execution.
//
// Results are values: a check builds one per run and nothing modifies it
// afterwards. Slug has the form "{provider}.{check}" and is unique across all
// checks; Category and Provider reference entries in the category and provider
// registries.
type Result struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	Category    string `json:"category"`
	Provider    string `json:"provider"`
}

// ToMap returns the flat mapping handed to display layers.
func (r Result) ToMap() map[string]any {
	return map[string]any{
		"slug":        r.Slug,
		"title":       r.Title,
		"description": r.Description,
		"status":      r.Status.String(),
		"category":    r.Category,
		"provider":    r.Provider,
	}
}

// IsGood reports whether the result status is Good.
func (r Result) IsGood() bool { return r.Status == StatusGood }

// IsWarning reports whether the result status is Warning.
func (r Result) IsWarning() bool { return r.Status == StatusWarning }

// IsCritical reports whether the result status is Critical.
func (r Result) IsCritical() bool { return r.Status == StatusCritical }
