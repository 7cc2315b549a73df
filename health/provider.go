package health

// ProviderMetadata identifies a component that contributes checks.
type ProviderMetadata struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	Icon        string `json:"icon,omitempty"`
	LogoURL     string `json:"logoUrl,omitempty"`
	Version     string `json:"version,omitempty"`
}

// ToMap returns the display mapping.
func (p ProviderMetadata) ToMap() map[string]any {
	return map[string]any{
		"slug":        p.Slug,
		"name":        p.Name,
		"description": p.Description,
		"url":         p.URL,
		"icon":        p.Icon,
		"logoUrl":     p.LogoURL,
		"version":     p.Version,
	}
}
