// Package index builds the derived per-state view over raw Airtable
// records: the code<->record-id table, aggregated topic tags, normalized
// state statuses, and recency-sorted news lists. All builders produce
// fresh values; nothing is mutated after it is returned.
package index

import (
	"sort"
	"strings"
	"time"

	"regmap/internal/model"
	"regmap/internal/normalize"
	"regmap/internal/states"
	"regmap/pkg/airtable"
)

// IDTable is the bidirectional state-code <-> record-id mapping built once
// per fetch cycle. News records reference states by record id only.
type IDTable struct {
	codeToRecord map[string]string
	recordToCode map[string]string
}

func BuildIDTable(stateRecords []airtable.Record) *IDTable {
	t := &IDTable{
		codeToRecord: make(map[string]string, len(stateRecords)),
		recordToCode: make(map[string]string, len(stateRecords)),
	}
	for _, record := range stateRecords {
		code := strings.ToUpper(fieldString(record, "code"))
		if code == "" {
			continue
		}
		t.codeToRecord[code] = record.ID
		t.recordToCode[record.ID] = code
	}
	return t
}

func (t *IDTable) Code(recordID string) (string, bool) {
	code, ok := t.recordToCode[recordID]
	return code, ok
}

func (t *IDTable) RecordID(code string) (string, bool) {
	id, ok := t.codeToRecord[code]
	return id, ok
}

// CollectTags aggregates topic tags per state code across every news record
// that resolves to that state. Unresolvable references are dropped.
func CollectTags(newsRecords []airtable.Record, table *IDTable) map[string][]string {
	sets := make(map[string]map[string]struct{})

	for _, record := range newsRecords {
		stateIDs := fieldStrings(record, "state")
		tags := fieldStrings(record, "topic_tags")
		if len(stateIDs) == 0 || len(tags) == 0 {
			continue
		}

		for _, stateID := range stateIDs {
			code, ok := table.Code(stateID)
			if !ok {
				continue
			}
			set, ok := sets[code]
			if !ok {
				set = make(map[string]struct{})
				sets[code] = set
			}
			for _, tag := range tags {
				set[tag] = struct{}{}
			}
		}
	}

	out := make(map[string][]string, len(sets))
	for code, set := range sets {
		tags := make([]string, 0, len(set))
		for tag := range set {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		out[code] = tags
	}
	return out
}

// BuildStates turns raw state records into StateStatus values, attaching
// the aggregated tags. Records without a code are skipped. The result is
// sorted by code.
func BuildStates(stateRecords []airtable.Record, tagsByState map[string][]string) []model.StateStatus {
	out := make([]model.StateStatus, 0, len(stateRecords))

	for _, record := range stateRecords {
		code := strings.ToUpper(fieldString(record, "code"))
		if code == "" {
			continue
		}

		name := strings.TrimSpace(fieldString(record, "name"))
		if name == "" {
			if meta, ok := states.ByCode[code]; ok {
				name = meta.Name
			} else {
				name = code
			}
		}

		var link *model.StateLink
		if url := strings.TrimSpace(fieldString(record, "latest_link")); url != "" {
			link = &model.StateLink{
				URL:   url,
				Label: strings.TrimSpace(fieldString(record, "latest_title")),
			}
		}

		tags := tagsByState[code]
		if tags == nil {
			tags = []string{}
		}

		out = append(out, model.StateStatus{
			Code:        code,
			Name:        name,
			Status:      normalize.Status(record.Fields["status"]),
			ReasonShort: fieldString(record, "reason_short"),
			UpdatedAt:   fieldString(record, "last_updated"),
			Confidence:  normalize.Confidence(record.Fields["confidence"]),
			Link:        link,
			Tags:        tags,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// BuildNewsByState fans each news record out to every state it references
// and sorts every per-state list by descending publish time. Items with
// missing or unparseable timestamps sort as oldest.
func BuildNewsByState(newsRecords []airtable.Record, table *IDTable) map[string][]model.NewsItem {
	byState := make(map[string][]model.NewsItem)

	for _, record := range newsRecords {
		stateIDs := fieldStrings(record, "state")
		if len(stateIDs) == 0 {
			continue
		}

		tags := newsTags(record)

		from, hasFrom := statusField(record, "status_change_from")
		to, hasTo := statusField(record, "status_change_to")
		changed := hasFrom && hasTo && from != to
		improved := hasFrom && hasTo && to.Rank() < from.Rank()

		title := strings.TrimSpace(fieldString(record, "title"))
		if title == "" {
			title = "Untitled"
		}
		url := strings.TrimSpace(fieldString(record, "url"))
		if url == "" {
			url = "#"
		}
		source := strings.TrimSpace(fieldString(record, "source"))
		if source == "" {
			source = "Unknown"
		}

		for _, stateID := range stateIDs {
			code, ok := table.Code(stateID)
			if !ok {
				continue
			}

			byState[code] = append(byState[code], model.NewsItem{
				ID:          record.ID + "-" + code,
				State:       code,
				Title:       title,
				URL:         url,
				Source:      source,
				PublishedAt: fieldString(record, "published_at"),
				Tags:        tags,
				Summary:     strings.TrimSpace(fieldString(record, "summary")),
				OldToNew:    changed && improved,
			})
		}
	}

	for _, items := range byState {
		sort.SliceStable(items, func(i, j int) bool {
			return parseWhen(items[i].PublishedAt).After(parseWhen(items[j].PublishedAt))
		})
	}

	return byState
}

// newsTags merges the record's topic tags with the synthetic impact and
// confidence tags.
func newsTags(record airtable.Record) []string {
	set := make(map[string]struct{})
	ordered := make([]string, 0, 4)

	add := func(tag string) {
		if _, dup := set[tag]; dup {
			return
		}
		set[tag] = struct{}{}
		ordered = append(ordered, tag)
	}

	for _, tag := range fieldStrings(record, "topic_tags") {
		add(tag)
	}

	if impact := strings.TrimSpace(fieldString(record, "impact")); impact != "" {
		add("impact:" + impact)
	}

	if band := normalize.Confidence(record.Fields["confidence"]); band != normalize.ConfidenceUnknown {
		add("confidence:" + strings.ToLower(band))
	}

	return ordered
}

func statusField(record airtable.Record, key string) (model.StatusColor, bool) {
	raw, ok := record.Fields[key].(string)
	if !ok {
		return "", false
	}
	return normalize.Status(raw), true
}

func fieldString(record airtable.Record, key string) string {
	s, _ := record.Fields[key].(string)
	return s
}

func fieldStrings(record airtable.Record, key string) []string {
	raw, ok := record.Fields[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		if s, ok := entry.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parseWhen parses an upstream timestamp, accepting RFC 3339 and a plain
// date. Anything else is the zero time.
func parseWhen(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
