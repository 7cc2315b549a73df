package health

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Translator resolves translation keys to display text.
//
// Translate must return its input unchanged when it is not a known key, so
// plain-text labels pass through.
type Translator interface {
	Translate(key string) string
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(key string) string

// Translate calls f(key).
func (f TranslatorFunc) Translate(key string) string {
	return f(key)
}

// DefaultMessages holds the English text for the built-in translation keys.
var DefaultMessages = map[string]string{
	"HEALTH_CATEGORY_SYSTEM":      "System & Hosting",
	"HEALTH_CATEGORY_DATABASE":    "Database",
	"HEALTH_CATEGORY_SECURITY":    "Security",
	"HEALTH_CATEGORY_USERS":       "Users",
	"HEALTH_CATEGORY_EXTENSIONS":  "Extensions",
	"HEALTH_CATEGORY_PERFORMANCE": "Performance",
	"HEALTH_CATEGORY_SEO":         "SEO",
	"HEALTH_CATEGORY_CONTENT":     "Content Quality",
}

var translationKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*(_[A-Z0-9]+)+$`)

// CatalogTranslator resolves keys through an x/text message catalog.
type CatalogTranslator struct {
	printer *message.Printer
	known   map[string]bool
}

// NewCatalogTranslator builds a translator for tag from DefaultMessages
// overlaid with messages. Entries in messages win over the defaults.
func NewCatalogTranslator(tag language.Tag, messages map[string]string) (*CatalogTranslator, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	known := make(map[string]bool, len(DefaultMessages)+len(messages))

	// Defaults are registered under tag as well so untranslated keys still
	// resolve to English text.
	for key, msg := range DefaultMessages {
		for _, t := range []language.Tag{language.English, tag} {
			if err := b.SetString(t, key, msg); err != nil {
				return nil, fmt.Errorf("health: catalog entry %q: %w", key, err)
			}
		}
		known[key] = true
	}
	for key, msg := range messages {
		if err := b.SetString(tag, key, msg); err != nil {
			return nil, fmt.Errorf("health: catalog entry %q: %w", key, err)
		}
		known[key] = true
	}

	return &CatalogTranslator{
		printer: message.NewPrinter(tag, message.Catalog(b)),
		known:   known,
	}, nil
}

// Translate resolves key. Text that is not a known key is returned as is.
func (t *CatalogTranslator) Translate(key string) string {
	if !t.known[key] || !translationKeyPattern.MatchString(key) {
		return key
	}
	return t.printer.Sprintf(key)
}

var defaultTranslator = func() Translator {
	tr, err := NewCatalogTranslator(language.English, nil)
	if err != nil {
		panic(err)
	}
	return tr
}()

// DefaultTranslator returns the English translator for the built-in keys.
func DefaultTranslator() Translator {
	return defaultTranslator
}

// HumanizeSlug turns a slug such as "search_engines" into "Search Engines".
func HumanizeSlug(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	// Casers are stateful; build one per call.
	return cases.Title(language.English).String(strings.Join(words, " "))
}
