package normalize

import "strings"

// Confidence band labels.
const (
	ConfidenceHigh    = "High"
	ConfidenceMedium  = "Medium"
	ConfidenceLow     = "Low"
	ConfidenceUnknown = "Unknown"
)

// Confidence bands a raw confidence value. Numbers map onto the fixed bands,
// non-blank strings pass through trimmed, everything else is Unknown.
func Confidence(value any) string {
	switch v := value.(type) {
	case float64:
		return bandNumeric(v)
	case int:
		return bandNumeric(float64(v))
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ConfidenceUnknown
}

func bandNumeric(v float64) string {
	switch {
	case v >= 0.75:
		return ConfidenceHigh
	case v >= 0.5:
		return ConfidenceMedium
	case v > 0:
		return ConfidenceLow
	}
	return ConfidenceUnknown
}
