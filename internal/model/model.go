package model

// StatusColor is the canonical 3-value severity every layer reasons about.
type StatusColor string

const (
	StatusGreen  StatusColor = "green"
	StatusYellow StatusColor = "yellow"
	StatusRed    StatusColor = "red"
)

// Rank orders severities: green=1, yellow=2, red=3. Zero for anything else.
func (s StatusColor) Rank() int {
	switch s {
	case StatusGreen:
		return 1
	case StatusYellow:
		return 2
	case StatusRed:
		return 3
	}
	return 0
}

type StateLink struct {
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

// StateStatus is one jurisdiction's current regulatory status.
type StateStatus struct {
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	Status      StatusColor `json:"status"`
	ReasonShort string      `json:"reason_short"`
	UpdatedAt   string      `json:"updated_at"`
	Confidence  string      `json:"confidence"`
	Link        *StateLink  `json:"link,omitempty"`
	Tags        []string    `json:"tags"`
}

// NewsItem is one article attributed to a single jurisdiction.
type NewsItem struct {
	ID          string   `json:"id"`
	State       string   `json:"state"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Source      string   `json:"source"`
	PublishedAt string   `json:"published_at"`
	Tags        []string `json:"tags"`
	Summary     string   `json:"summary,omitempty"`
	OldToNew    bool     `json:"old_to_new"`
}
