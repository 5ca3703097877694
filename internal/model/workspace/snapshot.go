// Package workspace holds the read-only views the assistant backend serves
// about the day: the activity snapshot and the end-of-day report.
package workspace

// EmailSummary is one unread email as the snapshot reports it.
type EmailSummary struct {
	Sender   string `json:"sender"`
	Subject  string `json:"subject"`
	Snippet  string `json:"snippet"`
	Received string `json:"received"`
	Urgency  string `json:"urgency"` // low, normal, high, critical
}

// AssignmentSummary is one open assignment from the snapshot.
type AssignmentSummary struct {
	Course       string `json:"course"`
	Title        string `json:"title"`
	DueDate      string `json:"due_date"`
	DaysUntilDue int    `json:"days_until_due"`
	Points       int    `json:"points"`
	Urgency      string `json:"urgency"`
}

// MeetingSummary is one calendar entry from the snapshot.
type MeetingSummary struct {
	Title           string `json:"title"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
	AttendeesCount  int    `json:"attendees_count"`
}

// Snapshot is the backend's point-in-time summary of today's activity.
// The front-end reads it once per session to seed suggestions and render
// the dashboard stat cards.
type Snapshot struct {
	Date           string              `json:"date"`
	Emails         []EmailSummary      `json:"emails"`
	Assignments    []AssignmentSummary `json:"assignments"`
	Meetings       []MeetingSummary    `json:"meetings"`
	Summary        string              `json:"summary"`
	UrgentCount    int                 `json:"urgent_count"`
	ImportantCount int                 `json:"important_count"`
}
