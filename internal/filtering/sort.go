package filtering

import (
	"sort"

	"github.com/akarpov/jobtrack/internal/catalog"
)

// Sort orders for listing views.
const (
	SortLatest = "latest"
	SortMatch  = "match"
	SortSalary = "salary"
)

// Sort orders jobs in place. All orderings are stable so equal jobs keep
// catalog order. Unknown names leave the slice untouched.
func Sort(jobs []*catalog.Job, order string, scores map[string]int) {
	switch order {
	case SortLatest:
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].PostedDaysAgo < jobs[j].PostedDaysAgo
		})
	case SortMatch:
		sort.SliceStable(jobs, func(i, j int) bool {
			return scores[jobs[i].ID] > scores[jobs[j].ID]
		})
	case SortSalary:
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].SalaryFloor() > jobs[j].SalaryFloor()
		})
	}
}
