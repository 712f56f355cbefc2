// Package normalize turns loosely-typed upstream records into domain
// objects. Every function is pure: bad input degrades to defaults or an
// empty list, never an error.
package normalize

import (
	"fmt"
	"strings"

	"regmap/internal/model"
	"regmap/internal/states"
)

// Ordered fallback chains per logical field. First non-nil key wins.
var (
	stateCodeKeys  = []string{"code", "state", "abbreviation"}
	stateFIPSKeys  = []string{"fips", "state_fips", "stateFips"}
	stateLinkKeys  = []string{"link", "url"}
	reasonKeys     = []string{"reason_short", "reason", "summary"}
	updatedKeys    = []string{"updated_at", "updatedAt", "last_updated"}
	confidenceKeys = []string{"confidence", "confidence_label", "certainty"}

	newsStateKeys     = []string{"state", "region"}
	newsTitleKeys     = []string{"title", "headline"}
	newsURLKeys       = []string{"url", "link"}
	newsSourceKeys    = []string{"source", "publisher"}
	newsPublishedKeys = []string{"published_at", "publishedAt", "date"}
	newsImprovedKeys  = []string{"old_to_new", "oldToNew"}

	statesWrapperKeys = []string{"states", "data"}
	newsWrapperKeys   = []string{"news", "items", "data"}
)

// States normalizes a states payload in any accepted envelope shape into
// validated StateStatus values.
func States(payload any) []model.StateStatus {
	rawList := unwrapList(payload, statesWrapperKeys)

	out := make([]model.StateStatus, 0, len(rawList))
	for index, raw := range rawList {
		record, _ := raw.(map[string]any)
		out = append(out, stateFromRecord(record, index))
	}
	return out
}

func stateFromRecord(record map[string]any, index int) model.StateStatus {
	rawCode := strings.ToUpper(stringValue(first(record, stateCodeKeys)))
	fips := padFIPS(stringValue(first(record, stateFIPSKeys)))

	resolvedCode := rawCode
	if meta, ok := states.ByCode[rawCode]; ok {
		resolvedCode = meta.Code
	} else if meta, ok := states.ByFIPS[fips]; ok {
		resolvedCode = meta.Code
	}
	if resolvedCode == "" {
		resolvedCode = fmt.Sprintf("UNK-%d", index)
	}

	name := stringValue(record["name"])
	if name == "" {
		if meta, ok := states.ByCode[resolvedCode]; ok {
			name = meta.Name
		} else if rawCode != "" {
			name = rawCode
		} else {
			name = resolvedCode
		}
	}

	status := record["status"]
	if status == nil {
		status = record["color"]
	}

	return model.StateStatus{
		Code:        resolvedCode,
		Name:        name,
		Status:      Status(status),
		ReasonShort: stringValue(first(record, reasonKeys)),
		UpdatedAt:   stringValue(first(record, updatedKeys)),
		Confidence:  Confidence(first(record, confidenceKeys)),
		Link:        linkFromValue(first(record, stateLinkKeys)),
		Tags:        stringList(record["tags"]),
	}
}

// News normalizes a news payload in any accepted envelope shape.
func News(payload any) []model.NewsItem {
	rawList := unwrapList(payload, newsWrapperKeys)

	out := make([]model.NewsItem, 0, len(rawList))
	for index, raw := range rawList {
		record, _ := raw.(map[string]any)
		out = append(out, newsFromRecord(record, index))
	}
	return out
}

func newsFromRecord(record map[string]any, index int) model.NewsItem {
	state := strings.ToUpper(stringValue(first(record, newsStateKeys)))

	id := stringValue(record["id"])
	if id == "" {
		id = fmt.Sprintf("%s-%d", state, index)
	}

	url := "#"
	if s, ok := first(record, newsURLKeys).(string); ok && s != "" {
		url = s
	}

	improved := false
	if v := first(record, newsImprovedKeys); v != nil {
		improved = boolValue(v)
	} else if seq, ok := record["sequence"].(string); ok {
		improved = seq == "old_to_new"
	}

	return model.NewsItem{
		ID:          id,
		State:       state,
		Title:       stringOr(first(record, newsTitleKeys), "Untitled"),
		URL:         url,
		Source:      stringOr(first(record, newsSourceKeys), "Unknown"),
		PublishedAt: stringValue(first(record, newsPublishedKeys)),
		Tags:        stringList(record["tags"]),
		Summary:     stringValue(record["summary"]),
		OldToNew:    improved,
	}
}

// first walks a fallback chain and returns the first non-nil value.
func first(record map[string]any, keys []string) any {
	for _, key := range keys {
		if v, ok := record[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return trimFloat(v)
	case bool:
		return fmt.Sprintf("%t", v)
	}
	return fmt.Sprintf("%v", value)
}

// stringOr renders value as a string, substituting fallback for nil or blank.
func stringOr(value any, fallback string) string {
	s := stringValue(value)
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func boolValue(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

func stringList(value any) []string {
	raw, ok := value.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		if s := stringValue(entry); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func linkFromValue(value any) *model.StateLink {
	switch v := value.(type) {
	case string:
		if v == "" {
			return nil
		}
		return &model.StateLink{URL: v}
	case map[string]any:
		url := stringValue(first(v, []string{"url", "href"}))
		if url == "" {
			return nil
		}
		label := stringValue(first(v, []string{"label", "title", "text"}))
		return &model.StateLink{URL: url, Label: label}
	}
	return nil
}

// padFIPS zero-pads numeric FIPS identifiers to the canonical 2 digits.
func padFIPS(s string) string {
	if s == "" {
		return ""
	}
	for len(s) < 2 {
		s = "0" + s
	}
	return s
}

// trimFloat renders JSON numbers without a trailing ".0" so a numeric FIPS
// of 6 comes out as "6", not "6.000000".
func trimFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
