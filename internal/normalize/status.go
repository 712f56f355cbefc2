package normalize

import (
	"strings"

	"regmap/internal/model"
)

// statusVocab maps every raw status word upstream is known to emit onto the
// canonical 3-value severity.
var statusVocab = map[string]model.StatusColor{
	"green":    model.StatusGreen,
	"good":     model.StatusGreen,
	"stable":   model.StatusGreen,
	"low":      model.StatusGreen,
	"yellow":   model.StatusYellow,
	"watch":    model.StatusYellow,
	"medium":   model.StatusYellow,
	"caution":  model.StatusYellow,
	"red":      model.StatusRed,
	"high":     model.StatusRed,
	"critical": model.StatusRed,
}

// Status canonicalizes a raw status value. Unrecognized or missing values
// default to green, matching the upstream dashboard's historical behavior.
func Status(value any) model.StatusColor {
	if s, ok := value.(string); ok {
		if color, ok := statusVocab[strings.ToLower(s)]; ok {
			return color
		}
	}
	return model.StatusGreen
}
