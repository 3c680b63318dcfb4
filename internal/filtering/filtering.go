// Package filtering narrows the job catalog for listing views. Filters
// are small, composable steps run in sequence over the job slice, each
// reporting how many postings it dropped.
package filtering

import (
	"go.uber.org/zap"

	"github.com/akarpov/jobtrack/internal/catalog"
)

// Filter represents a single filtering step applied to jobs.
type Filter interface {
	Name() string
	Apply(jobs []*catalog.Job) []*catalog.Job
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Pipeline runs filters in order and logs the per-step outcome.
type Pipeline struct {
	steps  []Filter
	logger *zap.Logger
}

func New(steps []Filter, logger *zap.Logger) *Pipeline {
	return &Pipeline{steps: steps, logger: logger}
}

// Run executes the supplied filters sequentially and returns the jobs
// that survive every step. The input slice is not modified.
func (p *Pipeline) Run(jobs []*catalog.Job) []*catalog.Job {
	out := make([]*catalog.Job, len(jobs))
	copy(out, jobs)

	for _, step := range p.steps {
		initial := len(out)
		out = step.Apply(out)

		info := Step{Initial: initial, Dropped: initial - len(out), Left: len(out)}
		if p.logger != nil && info.Dropped > 0 {
			p.logger.Debug("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}
	}

	return out
}

// keep retains the jobs matching pred, preserving order.
func keep(jobs []*catalog.Job, pred func(*catalog.Job) bool) []*catalog.Job {
	out := jobs[:0:0]
	for _, job := range jobs {
		if pred(job) {
			out = append(out, job)
		}
	}
	return out
}
