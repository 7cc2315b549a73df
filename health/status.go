package health

import "fmt"

// Status represents the outcome severity of a health check.
//
// Values are ordered by severity so that the worst of a set can be found by
// comparison: StatusGood < StatusWarning < StatusCritical.
type Status int

const (
	// StatusGood indicates the checked aspect needs no attention.
	StatusGood Status = iota
	// StatusWarning indicates something should be reviewed.
	StatusWarning
	// StatusCritical indicates something needs immediate attention.
	StatusCritical
)

// Statuses lists every status from least to most severe.
var Statuses = []Status{StatusGood, StatusWarning, StatusCritical}

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusGood:
		return "good"
	case StatusWarning:
		return "warning"
	case StatusCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	return s >= StatusGood && s <= StatusCritical
}

// ParseStatus parses the string form produced by String.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "good":
		return StatusGood, nil
	case "warning":
		return StatusWarning, nil
	case "critical":
		return StatusCritical, nil
	default:
		return StatusGood, fmt.Errorf("health: unknown status %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("health: cannot marshal status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Worst returns the most severe of the given statuses.
// An empty argument list is Good.
func Worst(statuses ...Status) Status {
	worst := StatusGood
	for _, s := range statuses {
		if s > worst {
			worst = s
		}
	}
	return worst
}
