package index

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"regmap/pkg/airtable"
)

func stateRecord(id, code string) airtable.Record {
	return airtable.Record{ID: id, Fields: map[string]any{"code": code}}
}

func TestBuildIDTable(t *testing.T) {
	table := BuildIDTable([]airtable.Record{
		stateRecord("rec123", "ca"),
		stateRecord("rec456", "NJ"),
		{ID: "rec789", Fields: map[string]any{"name": "no code"}},
	})

	code, ok := table.Code("rec123")
	assert.Equal(t, true, ok)
	assert.Equal(t, "CA", code)

	id, ok := table.RecordID("NJ")
	assert.Equal(t, true, ok)
	assert.Equal(t, "rec456", id)

	_, ok = table.Code("rec789")
	assert.Equal(t, false, ok)
}

func TestCollectTags(t *testing.T) {
	table := BuildIDTable([]airtable.Record{
		stateRecord("rec123", "CA"),
		stateRecord("rec456", "NJ"),
	})

	tags := CollectTags([]airtable.Record{
		{ID: "n1", Fields: map[string]any{
			"state":      []any{"rec123", "rec456"},
			"topic_tags": []any{"policy", "monitor"},
		}},
		{ID: "n2", Fields: map[string]any{
			"state":      []any{"rec123", "recMissing"},
			"topic_tags": []any{"policy", "litigation"},
		}},
		{ID: "n3", Fields: map[string]any{
			"state": []any{"rec456"},
			// no tags: contributes nothing
		}},
	}, table)

	assert.Equal(t, []string{"litigation", "monitor", "policy"}, tags["CA"])
	assert.Equal(t, []string{"monitor", "policy"}, tags["NJ"])

	_, ok := tags["recMissing"]
	assert.Equal(t, false, ok)
}

func TestBuildStates(t *testing.T) {
	records := []airtable.Record{
		{ID: "rec2", Fields: map[string]any{
			"code":         "nj",
			"status":       "good",
			"reason_short": "clear guidance",
			"last_updated": "2024-10-09T00:00:00Z",
			"confidence":   0.8,
			"latest_link":  "https://example.com/nj",
			"latest_title": "NJ brief",
		}},
		{ID: "rec1", Fields: map[string]any{"code": "CA", "status": "critical"}},
		{ID: "rec3", Fields: map[string]any{"name": "skipped, no code"}},
	}

	states := BuildStates(records, map[string][]string{"NJ": {"friendly", "regulation"}})

	assert.Equal(t, 2, len(states))

	// Sorted by code.
	assert.Equal(t, "CA", states[0].Code)
	assert.Equal(t, "red", string(states[0].Status))
	assert.Equal(t, "California", states[0].Name)
	assert.Equal(t, "Unknown", states[0].Confidence)
	assert.Equal(t, []string{}, states[0].Tags)

	nj := states[1]
	assert.Equal(t, "NJ", nj.Code)
	assert.Equal(t, "New Jersey", nj.Name)
	assert.Equal(t, "green", string(nj.Status))
	assert.Equal(t, "clear guidance", nj.ReasonShort)
	assert.Equal(t, "High", nj.Confidence)
	assert.Equal(t, "https://example.com/nj", nj.Link.URL)
	assert.Equal(t, "NJ brief", nj.Link.Label)
	assert.Equal(t, []string{"friendly", "regulation"}, nj.Tags)
}

func TestBuildNewsByStateFanOutAndTags(t *testing.T) {
	table := BuildIDTable([]airtable.Record{
		stateRecord("rec123", "CA"),
		stateRecord("rec456", "NJ"),
	})

	byState := BuildNewsByState([]airtable.Record{
		{ID: "recNews", Fields: map[string]any{
			"state":      []any{"rec123", "rec456", "recMissing"},
			"title":      "Multi-state ruling",
			"topic_tags": []any{"policy"},
			"impact":     "high",
			"confidence": 0.9,
		}},
	}, table)

	assert.Equal(t, 1, len(byState["CA"]))
	assert.Equal(t, 1, len(byState["NJ"]))

	ca := byState["CA"][0]
	assert.Equal(t, "recNews-CA", ca.ID)
	assert.Equal(t, "CA", ca.State)
	assert.Equal(t, "Multi-state ruling", ca.Title)
	assert.Equal(t, []string{"policy", "impact:high", "confidence:high"}, ca.Tags)

	nj := byState["NJ"][0]
	assert.Equal(t, "recNews-NJ", nj.ID)
	assert.Equal(t, ca.Title, nj.Title)
}

func TestNewsTagsSynthesis(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		want   []string
	}{
		{
			"impact trimmed",
			map[string]any{"topic_tags": []any{"policy"}, "impact": "  high  "},
			[]string{"policy", "impact:high"},
		},
		{
			"blank impact skipped",
			map[string]any{"topic_tags": []any{"policy"}, "impact": "   "},
			[]string{"policy"},
		},
		{
			"unknown confidence skipped",
			map[string]any{"topic_tags": []any{"policy"}, "confidence": 0.0},
			[]string{"policy"},
		},
		{
			"string confidence lowercased",
			map[string]any{"confidence": "Verified"},
			[]string{"confidence:verified"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newsTags(airtable.Record{ID: "n", Fields: tt.fields})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransitionDetection(t *testing.T) {
	table := BuildIDTable([]airtable.Record{stateRecord("rec1", "CA")})

	tests := []struct {
		name string
		from any
		to   any
		want bool
	}{
		{"improvement", "red", "green", true},
		{"improvement one step", "critical", "watch", true},
		{"worsening", "green", "red", false},
		{"no change", "yellow", "caution", false},
		{"missing from", nil, "green", false},
		{"missing to", "red", nil, false},
		{"both missing", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := map[string]any{"state": []any{"rec1"}}
			if tt.from != nil {
				fields["status_change_from"] = tt.from
			}
			if tt.to != nil {
				fields["status_change_to"] = tt.to
			}

			byState := BuildNewsByState([]airtable.Record{{ID: "n", Fields: fields}}, table)
			assert.Equal(t, tt.want, byState["CA"][0].OldToNew)
		})
	}
}

func TestNewsSortedByRecency(t *testing.T) {
	table := BuildIDTable([]airtable.Record{stateRecord("rec1", "CA")})

	byState := BuildNewsByState([]airtable.Record{
		{ID: "old", Fields: map[string]any{"state": []any{"rec1"}, "published_at": "2024-09-01T00:00:00Z"}},
		{ID: "unparseable", Fields: map[string]any{"state": []any{"rec1"}, "published_at": "last Tuesday"}},
		{ID: "new", Fields: map[string]any{"state": []any{"rec1"}, "published_at": "2024-10-05T00:00:00Z"}},
		{ID: "undated", Fields: map[string]any{"state": []any{"rec1"}}},
	}, table)

	items := byState["CA"]
	assert.Equal(t, 4, len(items))
	assert.Equal(t, "new-CA", items[0].ID)
	assert.Equal(t, "old-CA", items[1].ID)

	// Unparseable and missing timestamps sort as oldest, original order kept.
	assert.Equal(t, "unparseable-CA", items[2].ID)
	assert.Equal(t, "undated-CA", items[3].ID)
}

func TestEndToEndNewsRecord(t *testing.T) {
	table := BuildIDTable([]airtable.Record{stateRecord("rec123", "CA")})

	byState := BuildNewsByState([]airtable.Record{
		{ID: "recN", Fields: map[string]any{
			"state":      []any{"rec123"},
			"topic_tags": []any{"policy"},
			"impact":     "high",
			"confidence": 0.9,
		}},
	}, table)

	items := byState["CA"]
	assert.Equal(t, 1, len(items))
	assert.Equal(t, "CA", items[0].State)

	has := func(tag string) bool {
		for _, t := range items[0].Tags {
			if t == tag {
				return true
			}
		}
		return false
	}
	assert.Equal(t, true, has("policy"))
	assert.Equal(t, true, has("impact:high"))
	assert.Equal(t, true, has("confidence:high"))
}
