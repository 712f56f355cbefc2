// Package demo holds the bundled fallback dataset the dashboard shows when
// live data is unavailable or empty.
package demo

import (
	"strings"
	"time"

	"regmap/internal/model"
	"regmap/internal/states"
)

var redStates = []string{"WA", "MT", "SD", "SC", "CT", "DE", "LA", "AR", "TN"}

var greenStates = []string{
	"IL", "NJ", "PA", "NY", "OH", "MA", "MI", "VA", "NC", "GA", "AL", "MS",
	"MO", "MN", "WI", "IA", "KS", "OK", "NM", "CO", "UT", "NV", "ID", "OR",
	"MD", "DC", "KY", "WV", "VT", "NH", "RI", "TX", "NE", "WY", "ND",
}

var yellowStates = []string{"IN", "ME", "AZ", "FL", "CA"}

var reasonByStatus = map[model.StatusColor]string{
	model.StatusGreen:  "Friendly outlook with clear regulatory guidance for skill cash games.",
	model.StatusYellow: "Mixed regulatory signals; monitor compliance requirements closely.",
	model.StatusRed:    "High friction for skill cash operations; current environment is restrictive.",
}

var confidenceByStatus = map[model.StatusColor]string{
	model.StatusGreen:  "High",
	model.StatusYellow: "Medium",
	model.StatusRed:    "Low",
}

var tagsByStatus = map[model.StatusColor][]string{
	model.StatusGreen:  {"regulation", "friendly"},
	model.StatusYellow: {"monitor", "compliance"},
	model.StatusRed:    {"restriction", "legal"},
}

var baseTimestamp = time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC)

func makeState(code string, status model.StatusColor, offsetIndex int) model.StateStatus {
	name := code
	if meta, ok := states.ByCode[code]; ok {
		name = meta.Name
	}

	updatedAt := baseTimestamp.Add(time.Duration(offsetIndex) * 36 * time.Hour)

	return model.StateStatus{
		Code:        code,
		Name:        name,
		Status:      status,
		ReasonShort: reasonByStatus[status],
		UpdatedAt:   updatedAt.Format(time.RFC3339),
		Confidence:  confidenceByStatus[status],
		Link: &model.StateLink{
			URL:   "https://example.com/insights/" + strings.ToLower(code),
			Label: code + " policy brief",
		},
		Tags: tagsByStatus[status],
	}
}

// States returns the full demo state set, deterministic across calls.
func States() []model.StateStatus {
	out := make([]model.StateStatus, 0, len(redStates)+len(greenStates)+len(yellowStates))
	offset := 0
	for _, group := range []struct {
		codes  []string
		status model.StatusColor
	}{
		{redStates, model.StatusRed},
		{greenStates, model.StatusGreen},
		{yellowStates, model.StatusYellow},
	} {
		for _, code := range group.codes {
			out = append(out, makeState(code, group.status, offset))
			offset++
		}
	}
	return out
}

var newsItems = []model.NewsItem{
	{
		ID:          "WA-20241005",
		State:       "WA",
		Title:       "Washington regulators uphold strict stance on skill gaming payouts",
		URL:         "https://example.com/news/wa-2024-skill-gaming",
		Source:      "Reg Review Daily",
		PublishedAt: "2024-10-05T13:00:00Z",
		Tags:        []string{"restriction", "litigation"},
		Summary:     "The Washington Gambling Commission reaffirmed enforcement actions that limit real-money skill contests pending legislative review.",
		OldToNew:    true,
	},
	{
		ID:          "TN-20240928",
		State:       "TN",
		Title:       "Tennessee considers pilot program for cash tournaments",
		URL:         "https://example.com/news/tn-cash-tournament-pilot",
		Source:      "Volunteer Ledger",
		PublishedAt: "2024-09-28T08:30:00Z",
		Tags:        []string{"restriction", "pilot"},
		Summary:     "Lawmakers floated a one-year pilot for skill-based cash tournaments, but key committees remain skeptical.",
	},
	{
		ID:          "NJ-20241009",
		State:       "NJ",
		Title:       "New Jersey expands licensing for skill gaming operators",
		URL:         "https://example.com/news/nj-licensing-update",
		Source:      "Garden State Times",
		PublishedAt: "2024-10-09T16:15:00Z",
		Tags:        []string{"regulation", "friendly"},
		Summary:     "Updated Division of Gaming Enforcement rules clarify onboarding requirements for skill-based contests with cash stakes.",
	},
	{
		ID:          "AZ-20240922",
		State:       "AZ",
		Title:       "Arizona issues compliance memo on cash contest disclosures",
		URL:         "https://example.com/news/az-compliance-memo",
		Source:      "Sonoran Business Journal",
		PublishedAt: "2024-09-22T11:05:00Z",
		Tags:        []string{"monitor", "compliance"},
		Summary:     "Operators must file quarterly disclosures to maintain conditional approval for skill-based tournaments statewide.",
	},
	{
		ID:          "CA-20241003",
		State:       "CA",
		Title:       "California AG signals review of peer-to-peer skill contests",
		URL:         "https://example.com/news/ca-ag-review",
		Source:      "Golden State Insider",
		PublishedAt: "2024-10-03T19:45:00Z",
		Tags:        []string{"monitor", "policy"},
		Summary:     "A working group will examine player protections and payout structures before recommending changes to state law.",
	},
	{
		ID:          "TX-20241001",
		State:       "TX",
		Title:       "Texas lawmakers praise self-regulatory framework for skill games",
		URL:         "https://example.com/news/tx-self-regulation",
		Source:      "Lone Star Ledger",
		PublishedAt: "2024-10-01T14:20:00Z",
		Tags:        []string{"friendly", "legislation"},
		Summary:     "Industry-led standards are credited with maintaining consumer protections while enabling statewide expansion.",
	},
}

// News returns the full demo news set.
func News() []model.NewsItem {
	out := make([]model.NewsItem, len(newsItems))
	copy(out, newsItems)
	return out
}

// NewsForState returns the demo items for one state, or the first three
// items when the state has none.
func NewsForState(code string) []model.NewsItem {
	normalized := strings.ToUpper(code)

	var matches []model.NewsItem
	for _, item := range newsItems {
		if item.State == normalized {
			matches = append(matches, item)
		}
	}
	if len(matches) > 0 {
		return matches
	}

	out := make([]model.NewsItem, 3)
	copy(out, newsItems[:3])
	return out
}
