// Package catalog holds the static job dataset. The catalog is loaded
// once at startup, either from the embedded default set or from a JSON
// file, and is never mutated afterwards.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// Work mode values form a closed enumeration.
const (
	ModeRemote = "Remote"
	ModeHybrid = "Hybrid"
	ModeOnsite = "Onsite"
)

// Experience levels.
const (
	ExperienceFresher = "Fresher"
	ExperienceJunior  = "Junior"
	ExperienceMid     = "Mid"
	ExperienceSenior  = "Senior"
)

// Posting sources. SourceLinkedIn carries scoring weight.
const (
	SourceLinkedIn  = "LinkedIn"
	SourceNaukri    = "Naukri"
	SourceIndeed    = "Indeed"
	SourceAngelList = "AngelList"
)

// Job is a single posting as supplied by the dataset. Jobs are immutable;
// all per-job mutable state (status, bookmarks) lives in the tracker store
// keyed by ID.
type Job struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Location      string   `json:"location"`
	Mode          string   `json:"mode"`
	Experience    string   `json:"experience"`
	SalaryRange   string   `json:"salaryRange"`
	Source        string   `json:"source"`
	PostedDaysAgo int      `json:"postedDaysAgo"`
	Skills        []string `json:"skills"`
	Description   string   `json:"description"`
	ApplyURL      string   `json:"applyUrl"`
}

var salaryNum = regexp.MustCompile(`\d+`)

// SalaryFloor extracts the leading number from the free-text salary range,
// used for salary sorting. Returns 0 when the range carries no number.
func (j *Job) SalaryFloor() int {
	match := salaryNum.FindString(j.SalaryRange)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return n
}

// Catalog is an ordered, immutable collection of jobs.
type Catalog struct {
	Jobs []*Job
}

//go:embed jobs.json
var defaultJobs []byte

// Default returns the catalog built from the embedded dataset.
func Default() (*Catalog, error) {
	return decode(defaultJobs)
}

// LoadFile reads a catalog from a JSON file holding an array of jobs.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file %q: %w", path, err)
	}
	c, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog file %q: %w", path, err)
	}
	return c, nil
}

func decode(raw []byte) (*Catalog, error) {
	var jobs []*Job
	if err := json.Unmarshal(raw, &jobs); err != nil {
		return nil, err
	}
	return &Catalog{Jobs: jobs}, nil
}

func (c *Catalog) Len() int {
	return len(c.Jobs)
}

// FindByID returns the job with the given id, or nil. Lookups may
// legitimately miss: stored state can reference ids that are no longer in
// the dataset, and callers substitute a placeholder.
func (c *Catalog) FindByID(id string) *Job {
	for _, job := range c.Jobs {
		if job.ID == id {
			return job
		}
	}
	return nil
}
