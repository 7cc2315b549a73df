package health

import (
	"context"
	"strings"
)

// Check is the interface every health check implements.
//
// Contract:
//   - Identity: Slug, Category, Provider and Title are constant for the
//     lifetime of the check.
//   - Errors: Perform returns an error for faults it cannot express as a
//     result (missing collaborator, failed I/O it does not classify). Run
//     converts such faults into Warning results.
//   - State: repeated Perform calls with unchanged collaborators return equal
//     results.
type Check interface {
	// Slug returns the globally unique "{provider}.{check}" identifier.
	Slug() string

	// Category returns the slug of the category the check belongs to.
	Category() string

	// Provider returns the slug of the provider that contributed the check.
	Provider() string

	// Title returns the display title.
	Title() string

	// Perform runs the check. Callers should use Run instead.
	Perform(ctx context.Context) (Result, error)
}

// Base carries the identity of a check and builds results stamped with it.
// Embed it in concrete checks.
type Base struct {
	slug     string
	category string
	provider string
	title    string
}

// NewBase creates a Base for the check named name contributed by provider.
// The slug is "{provider}.{name}".
func NewBase(provider, name, category, title string) Base {
	return Base{
		slug:     provider + "." + name,
		category: category,
		provider: provider,
		title:    title,
	}
}

// Slug returns the check slug.
func (b Base) Slug() string { return b.slug }

// Category returns the category slug.
func (b Base) Category() string { return b.category }

// Provider returns the provider slug.
func (b Base) Provider() string { return b.provider }

// Title returns the display title.
func (b Base) Title() string { return b.title }

// Name returns the check name, the part of the slug after the provider.
func (b Base) Name() string {
	if _, name, ok := strings.Cut(b.slug, "."); ok {
		return name
	}
	return b.slug
}

// Good returns a Good result for this check.
func (b Base) Good(description string) Result {
	return b.result(StatusGood, description)
}

// Warning returns a Warning result for this check.
func (b Base) Warning(description string) Result {
	return b.result(StatusWarning, description)
}

// Critical returns a Critical result for this check.
func (b Base) Critical(description string) Result {
	return b.result(StatusCritical, description)
}

func (b Base) result(status Status, description string) Result {
	return Result{
		Slug:        b.slug,
		Title:       b.title,
		Description: description,
		Status:      status,
		Category:    b.category,
		Provider:    b.provider,
	}
}
