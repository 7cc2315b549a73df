package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// KeyPrefix starts every key produced by DefaultKeyer.
const KeyPrefix = "sitehealth"

// Keyer derives cache keys from a namespace and the scope a value was
// computed for (site, language, enabled providers).
//
// Contract:
//   - Determinism: equal scopes produce equal keys regardless of map order.
//   - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	Key(namespace string, scope any) (string, error)
}

// DefaultKeyer generates SHA-256 based cache keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a new default keyer.
func NewDefaultKeyer() *DefaultKeyer {
	return &DefaultKeyer{}
}

// Key returns "sitehealth:<namespace>:<hash>" where hash is the first 16 hex
// characters of SHA-256 over the canonical JSON form of scope.
func (k *DefaultKeyer) Key(namespace string, scope any) (string, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, scope); err != nil {
		return "", fmt.Errorf("cache: failed to canonicalize scope: %w", err)
	}

	sum := sha256.Sum256(buf.Bytes())
	key := fmt.Sprintf("%s:%s:%s", KeyPrefix, namespace, hex.EncodeToString(sum[:8]))
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// writeCanonical writes v as JSON with object keys sorted at every level.
func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			name, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(name)
			buf.WriteByte(':')
			if err := writeCanonical(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		// encoding/json already sorts map[string]T keys for concrete types.
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	}
}

var _ Keyer = (*DefaultKeyer)(nil)
