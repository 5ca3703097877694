package workspace

// UrgentItem is one action item the report calls out.
type UrgentItem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Action string `json:"action"`
}

// ReportStats counts what the day contained.
type ReportStats struct {
	Emails      int `json:"emails"`
	Assignments int `json:"assignments"`
	Meetings    int `json:"meetings"`
}

// Report is the generated end-of-day summary. Content is markdown-subset
// text the front-end renders but never interprets.
type Report struct {
	Date        string       `json:"date"`
	Content     string       `json:"content"`
	Highlights  []string     `json:"highlights"`
	UrgentItems []UrgentItem `json:"urgent_items"`
	Stats       ReportStats  `json:"stats"`
}

// Available reports whether the backend had a report to serve; the backend
// answers a bare informational message before the first generation runs.
func (r Report) Available() bool {
	return r.Content != ""
}

// Health is the backend liveness answer, shown in the header only.
type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
