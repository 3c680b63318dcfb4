// Package digest produces the frozen daily top-10 ranking. A digest is
// generated at most once per local calendar date; repeated reads within
// the day return the persisted record unchanged.
package digest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/akarpov/jobtrack/internal/catalog"
	"github.com/akarpov/jobtrack/internal/matching"
	"github.com/akarpov/jobtrack/internal/prefs"
	"github.com/akarpov/jobtrack/internal/store"
)

// Size is the maximum number of entries in a digest.
const Size = 10

const (
	header = "Top 10 Jobs For You — 9AM Digest"
	footer = "This digest was generated based on your preferences."
)

// Entry is the frozen projection of a ranked job. Internal ranking fields
// (postedDaysAgo) are dropped before persisting. JSON field names are part
// of the stored-state contract.
type Entry struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Company    string `json:"company"`
	Location   string `json:"location"`
	Experience string `json:"experience"`
	MatchScore int    `json:"matchScore"`
	ApplyURL   string `json:"applyUrl"`
}

// Generator builds and persists daily digests.
type Generator struct {
	catalog *catalog.Catalog
	kv      store.KV
	now     func() time.Time
}

func NewGenerator(c *catalog.Catalog, kv store.KV) *Generator {
	return &Generator{catalog: c, kv: kv, now: time.Now}
}

// DateKey returns today's digest date in the user's local time zone.
func (g *Generator) DateKey() string {
	return g.now().Format("2006-01-02")
}

// Load returns the persisted digest for the date key, or false when none
// was generated (or the stored payload is corrupt).
func (g *Generator) Load(dateKey string) ([]Entry, bool) {
	var entries []Entry
	if !store.LoadJSON(g.kv, store.DigestKeyPrefix+dateKey, &entries) {
		return nil, false
	}
	return entries, true
}

// Generate returns today's digest, producing and persisting it on first
// call. Once a record exists for the date key it is returned as stored:
// generation is at-most-once per day regardless of how often the command
// runs or how the profile changes within the day.
func (g *Generator) Generate(p *prefs.Preferences) ([]Entry, error) {
	dateKey := g.DateKey()
	if existing, ok := g.Load(dateKey); ok {
		return existing, nil
	}

	type ranked struct {
		entry         Entry
		postedDaysAgo int
	}

	scored := make([]ranked, 0, g.catalog.Len())
	for _, job := range g.catalog.Jobs {
		scored = append(scored, ranked{
			entry: Entry{
				ID:         job.ID,
				Title:      job.Title,
				Company:    job.Company,
				Location:   job.Location,
				Experience: job.Experience,
				MatchScore: matching.Score(job, p),
				ApplyURL:   job.ApplyURL,
			},
			postedDaysAgo: job.PostedDaysAgo,
		})
	}

	// Score descending, then freshest first; the stable sort preserves
	// catalog order on full ties, keeping generation deterministic.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].entry.MatchScore != scored[j].entry.MatchScore {
			return scored[i].entry.MatchScore > scored[j].entry.MatchScore
		}
		return scored[i].postedDaysAgo < scored[j].postedDaysAgo
	})

	size := Size
	if len(scored) < size {
		size = len(scored)
	}
	entries := make([]Entry, size)
	for i := range entries {
		entries[i] = scored[i].entry
	}

	if err := store.SaveJSON(g.kv, store.DigestKeyPrefix+dateKey, entries); err != nil {
		return nil, fmt.Errorf("persisting digest for %s: %w", dateKey, err)
	}
	return entries, nil
}

// Render formats the ranked entries as the ordinal list users copy out.
// The field order and separators are a stable external contract.
func Render(entries []Entry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%d. %s at %s — %s — %s — Match: %d%%",
			i+1, e.Title, e.Company, e.Location, e.Experience, e.MatchScore)
	}
	return strings.Join(lines, "\n")
}

// RenderMessage wraps Render with the header, date, and footer used for
// the copy/email export text.
func RenderMessage(dateKey string, entries []Entry) string {
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", header, dateKey, Render(entries), footer)
}
