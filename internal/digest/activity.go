package digest

import (
	"time"

	"github.com/akarpov/jobtrack/internal/catalog"
	"github.com/akarpov/jobtrack/internal/tracker"
)

const recentActivityLimit = 5

// Activity is one recent status change resolved against the catalog for
// display next to the digest.
type Activity struct {
	JobTitle string
	Company  string
	Status   tracker.Status
	Date     time.Time
}

// RecentActivity joins the newest status changes with job details. History
// entries whose job id is no longer in the catalog render with an
// "Unknown" title rather than being dropped or failing.
func RecentActivity(c *catalog.Catalog, history []tracker.HistoryEntry) []Activity {
	limit := recentActivityLimit
	if len(history) < limit {
		limit = len(history)
	}

	out := make([]Activity, 0, limit)
	for _, entry := range history[:limit] {
		activity := Activity{JobTitle: "Unknown", Status: entry.Status, Date: entry.Date}
		if job := c.FindByID(entry.JobID); job != nil {
			activity.JobTitle = job.Title
			activity.Company = job.Company
		}
		out = append(out, activity)
	}
	return out
}
