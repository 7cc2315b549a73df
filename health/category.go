package health

// DefaultSortOrder is the sort order given to categories that do not set one.
const DefaultSortOrder = 50

// Built-in category slugs.
const (
	CategorySystem      = "system"
	CategoryDatabase    = "database"
	CategorySecurity    = "security"
	CategoryUsers       = "users"
	CategoryExtensions  = "extensions"
	CategoryPerformance = "performance"
	CategorySEO         = "seo"
	CategoryContent     = "content"
)

// Category is a display grouping for related checks.
//
// Label is either plain text or a translation key; ToMap resolves keys
// through a Translator. Lower SortOrder values sort first.
type Category struct {
	Slug      string `json:"slug"`
	Label     string `json:"label"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sortOrder"`
	LogoURL   string `json:"logoUrl,omitempty"`
}

// CategoryOption configures a Category built by NewCategory.
type CategoryOption func(*Category)

// WithSortOrder sets the sort order.
func WithSortOrder(order int) CategoryOption {
	return func(c *Category) {
		c.SortOrder = order
	}
}

// WithLogoURL sets the logo URL.
func WithLogoURL(url string) CategoryOption {
	return func(c *Category) {
		c.LogoURL = url
	}
}

// NewCategory creates a category with DefaultSortOrder unless overridden.
func NewCategory(slug, label, icon string, opts ...CategoryOption) Category {
	c := Category{
		Slug:      slug,
		Label:     label,
		Icon:      icon,
		SortOrder: DefaultSortOrder,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ToMap returns the display mapping with the label resolved by tr.
// A nil tr leaves the label unchanged.
func (c Category) ToMap(tr Translator) map[string]any {
	label := c.Label
	if tr != nil {
		label = tr.Translate(label)
	}
	return map[string]any{
		"slug":      c.Slug,
		"label":     label,
		"icon":      c.Icon,
		"sortOrder": c.SortOrder,
		"logoUrl":   c.LogoURL,
	}
}

// BuiltinCategories returns the categories every registry starts with.
func BuiltinCategories() []Category {
	return []Category{
		NewCategory(CategorySystem, "HEALTH_CATEGORY_SYSTEM", "server", WithSortOrder(10)),
		NewCategory(CategoryDatabase, "HEALTH_CATEGORY_DATABASE", "database", WithSortOrder(20)),
		NewCategory(CategorySecurity, "HEALTH_CATEGORY_SECURITY", "shield", WithSortOrder(30)),
		NewCategory(CategoryUsers, "HEALTH_CATEGORY_USERS", "users", WithSortOrder(40)),
		NewCategory(CategoryExtensions, "HEALTH_CATEGORY_EXTENSIONS", "puzzle-piece", WithSortOrder(50)),
		NewCategory(CategoryPerformance, "HEALTH_CATEGORY_PERFORMANCE", "gauge", WithSortOrder(60)),
		NewCategory(CategorySEO, "HEALTH_CATEGORY_SEO", "search", WithSortOrder(70)),
		NewCategory(CategoryContent, "HEALTH_CATEGORY_CONTENT", "file-lines", WithSortOrder(80)),
	}
}
