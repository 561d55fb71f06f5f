package report

import (
	"fmt"
)

// Severity classifies a finding. Ordered: critical > high > medium >
// low > suggestion. The numeric values ascend with importance so >=
// comparisons read naturally.
type Severity uint8

const (
	SevSuggestion Severity = iota
	SevLow
	SevMedium
	SevHigh
	SevCritical
)

func (s Severity) String() string {
	switch s {
	case SevSuggestion:
		return "suggestion"
	case SevLow:
		return "low"
	case SevMedium:
		return "medium"
	case SevHigh:
		return "high"
	case SevCritical:
		return "critical"
	}
	return "severity(?)"
}

// ParseSeverity converts a flag/config spelling into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "suggestion":
		return SevSuggestion, nil
	case "low":
		return SevLow, nil
	case "medium":
		return SevMedium, nil
	case "high":
		return SevHigh, nil
	case "critical":
		return SevCritical, nil
	}
	return SevSuggestion, fmt.Errorf("unknown severity %q (want critical|high|medium|low|suggestion)", s)
}

// MarshalText implements encoding.TextMarshaler for stable JSON output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	sev, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = sev
	return nil
}
