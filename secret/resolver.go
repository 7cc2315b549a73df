package secret

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// RefPrefix marks a secret reference.
const RefPrefix = "secretref:"

var inlineRefPattern = regexp.MustCompile(`secretref:([A-Za-z0-9_-]+):([^\s@/]+)`)

// Resolver expands environment references and resolves secret references.
// A nil *Resolver only expands the environment.
type Resolver struct {
	providers map[string]Provider
	strict    bool
}

// NewResolver creates a resolver. With strict set, a provider returning an
// empty value is an error.
func NewResolver(strict bool, providers ...Provider) *Resolver {
	r := &Resolver{providers: make(map[string]Provider), strict: strict}
	for _, p := range providers {
		if p != nil {
			r.providers[p.Name()] = p
		}
	}
	return r
}

// ParseRef splits a whole-value reference "secretref:<provider>:<ref>".
func ParseRef(value string) (provider, ref string, ok bool) {
	rest, found := strings.CutPrefix(value, RefPrefix)
	if !found {
		return "", "", false
	}
	provider, ref, found = strings.Cut(rest, ":")
	if !found || provider == "" || ref == "" {
		return "", "", false
	}
	return provider, ref, true
}

// Resolve expands ${VAR} references, then resolves a whole-value secret
// reference or every inline one.
func (r *Resolver) Resolve(ctx context.Context, value string) (string, error) {
	expanded, err := ExpandEnvStrict(value)
	if err != nil {
		return "", err
	}
	if r == nil {
		return expanded, nil
	}

	if provider, ref, ok := ParseRef(expanded); ok {
		return r.lookup(ctx, provider, ref)
	}

	matches := inlineRefPattern.FindAllStringSubmatchIndex(expanded, -1)
	if len(matches) == 0 {
		return expanded, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		secret, err := r.lookup(ctx, expanded[m[2]:m[3]], expanded[m[4]:m[5]])
		if err != nil {
			return "", err
		}
		b.WriteString(expanded[last:m[0]])
		b.WriteString(secret)
		last = m[1]
	}
	b.WriteString(expanded[last:])
	return b.String(), nil
}

// ResolveAll resolves each value, stopping at the first error.
func (r *Resolver) ResolveAll(ctx context.Context, values []string) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		resolved, err := r.Resolve(ctx, v)
		if err != nil {
			return nil, err
		}
		out[i] = resolved
	}
	return out, nil
}

func (r *Resolver) lookup(ctx context.Context, providerName, ref string) (string, error) {
	p, ok := r.providers[providerName]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, providerName)
	}
	v, err := p.Resolve(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("secret: resolve %s:%s: %w", providerName, ref, err)
	}
	if r.strict && v == "" {
		return "", fmt.Errorf("%w: %s:%s", ErrEmptyValue, providerName, ref)
	}
	return v, nil
}
