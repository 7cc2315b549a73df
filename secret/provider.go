package secret

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Provider resolves secrets by reference.
//
// Implementations must be safe for concurrent use and must not log secret
// values.
type Provider interface {
	Name() string
	Resolve(ctx context.Context, ref string) (string, error)
}

// EnvProvider resolves a reference as an environment variable name,
// optionally prefixed.
type EnvProvider struct {
	Prefix string
}

// Name returns "env".
func (p EnvProvider) Name() string { return "env" }

// Resolve looks up Prefix+ref.
func (p EnvProvider) Resolve(_ context.Context, ref string) (string, error) {
	v, ok := os.LookupEnv(p.Prefix + ref)
	if !ok {
		return "", fmt.Errorf("%w: env %s", ErrNotFound, p.Prefix+ref)
	}
	return v, nil
}

// FileProvider resolves a reference as a file path relative to Dir and
// returns the file content without trailing newlines.
type FileProvider struct {
	Dir string
}

// Name returns "file".
func (p FileProvider) Name() string { return "file" }

// Resolve reads the referenced file. References may not escape Dir.
func (p FileProvider) Resolve(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := ref
	if p.Dir != "" {
		if !filepath.IsLocal(ref) {
			return "", fmt.Errorf("secret: file reference %q escapes %s", ref, p.Dir)
		}
		path = filepath.Join(p.Dir, ref)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: file %s", ErrNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("secret: read %s: %w", path, err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

var (
	_ Provider = EnvProvider{}
	_ Provider = FileProvider{}
)
