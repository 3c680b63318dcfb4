package filtering

import (
	"strings"

	"github.com/akarpov/jobtrack/internal/catalog"
	"github.com/akarpov/jobtrack/internal/tracker"
)

type keywordFilter struct {
	query string
}

// NewKeyword creates a filter matching the query against title or company,
// case-insensitively. An empty query passes everything through.
func NewKeyword(query string) Filter {
	return &keywordFilter{query: strings.ToLower(strings.TrimSpace(query))}
}

func (f *keywordFilter) Name() string { return "keyword" }

func (f *keywordFilter) Apply(jobs []*catalog.Job) []*catalog.Job {
	if f.query == "" {
		return jobs
	}
	return keep(jobs, func(j *catalog.Job) bool {
		return strings.Contains(strings.ToLower(j.Title), f.query) ||
			strings.Contains(strings.ToLower(j.Company), f.query)
	})
}

// fieldFilter handles the exact-match dropdown facets.
type fieldFilter struct {
	name  string
	want  string
	field func(*catalog.Job) string
}

func NewLocation(location string) Filter {
	return &fieldFilter{name: "location", want: location, field: func(j *catalog.Job) string { return j.Location }}
}

func NewMode(mode string) Filter {
	return &fieldFilter{name: "mode", want: mode, field: func(j *catalog.Job) string { return j.Mode }}
}

func NewExperience(experience string) Filter {
	return &fieldFilter{name: "experience", want: experience, field: func(j *catalog.Job) string { return j.Experience }}
}

func NewSource(source string) Filter {
	return &fieldFilter{name: "source", want: source, field: func(j *catalog.Job) string { return j.Source }}
}

func (f *fieldFilter) Name() string { return f.name }

func (f *fieldFilter) Apply(jobs []*catalog.Job) []*catalog.Job {
	if f.want == "" {
		return jobs
	}
	return keep(jobs, func(j *catalog.Job) bool { return f.field(j) == f.want })
}

type statusFilter struct {
	want     tracker.Status
	statuses map[string]tracker.Status
}

// NewStatus keeps jobs whose recorded status equals want. The snapshot is
// taken once by the caller; jobs absent from it are Not Applied.
func NewStatus(want tracker.Status, statuses map[string]tracker.Status) Filter {
	return &statusFilter{want: want, statuses: statuses}
}

func (f *statusFilter) Name() string { return "status" }

func (f *statusFilter) Apply(jobs []*catalog.Job) []*catalog.Job {
	return keep(jobs, func(j *catalog.Job) bool {
		status, ok := f.statuses[j.ID]
		if !ok {
			status = tracker.StatusNotApplied
		}
		return status == f.want
	})
}

type savedFilter struct {
	saved map[string]bool
}

// NewSavedOnly keeps only bookmarked jobs.
func NewSavedOnly(ids []string) Filter {
	saved := make(map[string]bool, len(ids))
	for _, id := range ids {
		saved[id] = true
	}
	return &savedFilter{saved: saved}
}

func (f *savedFilter) Name() string { return "saved" }

func (f *savedFilter) Apply(jobs []*catalog.Job) []*catalog.Job {
	return keep(jobs, func(j *catalog.Job) bool { return f.saved[j.ID] })
}

type minScoreFilter struct {
	scores    map[string]int
	threshold int
}

// NewMinScore keeps jobs whose match score reaches the profile threshold.
func NewMinScore(scores map[string]int, threshold int) Filter {
	return &minScoreFilter{scores: scores, threshold: threshold}
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) Apply(jobs []*catalog.Job) []*catalog.Job {
	return keep(jobs, func(j *catalog.Job) bool { return f.scores[j.ID] >= f.threshold })
}
