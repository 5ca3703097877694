package stub

import (
	"time"

	"github.com/bilalkalyar/workspace-agent-cli/internal/model/workspace"
)

// SeedSnapshot returns a plausible activity snapshot for local development.
func SeedSnapshot() workspace.Snapshot {
	today := time.Now().UTC().Format("2006-01-02")
	return workspace.Snapshot{
		Date: today,
		Emails: []workspace.EmailSummary{
			{
				Sender:   "prof.martinez@university.edu",
				Subject:  "Project milestone feedback",
				Snippet:  "I reviewed your milestone submission and have a few notes before Friday...",
				Received: time.Now().UTC().Add(-2 * time.Hour).Format(time.RFC3339),
				Urgency:  "high",
			},
			{
				Sender:   "library@university.edu",
				Subject:  "Book due reminder",
				Snippet:  "The title you borrowed is due back in three days.",
				Received: time.Now().UTC().Add(-5 * time.Hour).Format(time.RFC3339),
				Urgency:  "low",
			},
		},
		Assignments: []workspace.AssignmentSummary{
			{
				Course:       "Distributed Systems",
				Title:        "Lab 4: Replicated log",
				DueDate:      time.Now().UTC().Add(72 * time.Hour).Format("2006-01-02"),
				DaysUntilDue: 3,
				Points:       100,
				Urgency:      "high",
			},
		},
		Meetings: []workspace.MeetingSummary{
			{
				Title:           "Capstone sync",
				StartTime:       time.Now().UTC().Add(3 * time.Hour).Format(time.RFC3339),
				DurationMinutes: 30,
				AttendeesCount:  4,
			},
		},
		Summary:        "2 unread emails, 1 assignment due soon, 1 meeting today.",
		UrgentCount:    1,
		ImportantCount: 2,
	}
}

// SeedReport returns a canned end-of-day report.
func SeedReport() workspace.Report {
	return workspace.Report{
		Date: time.Now().UTC().Format("2006-01-02"),
		Content: "## End of Day Report\n\n" +
			"A steady day. **2 emails** arrived, one flagged high urgency from " +
			"prof.martinez@university.edu about milestone feedback.\n\n" +
			"## Assignments\n\n" +
			"**Lab 4: Replicated log** for Distributed Systems is due in 3 days.\n\n" +
			"## Meetings\n\n" +
			"The **Capstone sync** ran 30 minutes with 4 attendees.",
		Highlights: []string{
			"Milestone feedback received",
			"Lab 4 due in 3 days",
		},
		UrgentItems: []workspace.UrgentItem{
			{Type: "email", Title: "Project milestone feedback", Action: "Reply before Friday"},
			{Type: "assignment", Title: "Lab 4: Replicated log", Action: "Start the replication exercise"},
		},
		Stats: workspace.ReportStats{Emails: 2, Assignments: 1, Meetings: 1},
	}
}
