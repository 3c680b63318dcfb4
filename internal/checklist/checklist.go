// Package checklist tracks the manual QA checklist and submission proof
// links. It is bookkeeping around shipping the tool, not part of the
// matching engine; it only shares the same KV store.
package checklist

import (
	"fmt"
	"net/url"

	"github.com/akarpov/jobtrack/internal/store"
)

// Item is one manual verification step.
type Item struct {
	ID    string
	Label string
	Hint  string
}

// Items is the fixed QA checklist, in display order.
var Items = []Item{
	{"t1", "Preferences persist across runs", "Save preferences, rerun the tool, check they are still there."},
	{"t2", "Match score calculates correctly", "Set preferences with specific keywords and verify scores change."},
	{"t3", "Matches-only listing works", "Run jobs --matches-only and verify low-score jobs are hidden."},
	{"t4", "Saved job persists across runs", "Save a job, rerun, check the saved listing."},
	{"t5", "Apply URL is printed for each job", "List jobs and check every entry carries its apply link."},
	{"t6", "Status update persists across runs", "Change a job status, rerun, verify it is unchanged."},
	{"t7", "Status filter works correctly", "Set some statuses, then list jobs filtered by them."},
	{"t8", "Digest picks the top 10 by score", "Generate the digest, verify the highest scores are ranked first."},
	{"t9", "Digest is frozen for the day", "Generate the digest, run it again, confirm the record is unchanged."},
	{"t10", "No errors on the main commands", "Run jobs, prefs, status, saved, and digest and check for errors."},
}

// Links are the submission proof artifacts.
type Links struct {
	ProjectURL string `json:"projectUrl"`
	RepoURL    string `json:"githubUrl"`
	DeployURL  string `json:"deployUrl"`
}

// Ship status derived from checklist and link completeness.
const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusShipped    = "Shipped"
)

// Store persists checklist state and proof links.
type Store struct {
	kv store.KV
}

func NewStore(kv store.KV) *Store {
	return &Store{kv: kv}
}

// Checks returns the per-item pass state. Absent or corrupt data yields
// an all-unchecked map.
func (s *Store) Checks() map[string]bool {
	checks := make(map[string]bool)
	store.LoadJSON(s.kv, store.KeyChecklist, &checks)
	return checks
}

// Toggle flips the pass state of the item and returns the updated map.
// Unknown ids are rejected.
func (s *Store) Toggle(id string) (map[string]bool, error) {
	if !knownItem(id) {
		return nil, fmt.Errorf("unknown checklist item %q", id)
	}

	checks := s.Checks()
	checks[id] = !checks[id]
	if err := store.SaveJSON(s.kv, store.KeyChecklist, checks); err != nil {
		return nil, fmt.Errorf("writing checklist: %w", err)
	}
	return checks, nil
}

// Reset clears every item back to unchecked.
func (s *Store) Reset() error {
	return store.SaveJSON(s.kv, store.KeyChecklist, map[string]bool{})
}

// Passed counts the checked items.
func (s *Store) Passed() int {
	checks := s.Checks()
	passed := 0
	for _, item := range Items {
		if checks[item.ID] {
			passed++
		}
	}
	return passed
}

// Links returns the stored proof links, zero-valued when never set.
func (s *Store) Links() Links {
	var links Links
	store.LoadJSON(s.kv, store.KeyProofArtifacts, &links)
	return links
}

// SaveLinks persists the proof links wholesale.
func (s *Store) SaveLinks(links Links) error {
	return store.SaveJSON(s.kv, store.KeyProofArtifacts, links)
}

// ShipStatus summarizes readiness: every test passed and every link valid
// means Shipped; any progress at all means In Progress.
func (s *Store) ShipStatus() string {
	passed := s.Passed()
	links := s.Links()

	if passed == len(Items) && validURL(links.ProjectURL) && validURL(links.RepoURL) && validURL(links.DeployURL) {
		return StatusShipped
	}
	if passed > 0 || links.ProjectURL != "" {
		return StatusInProgress
	}
	return StatusNotStarted
}

// SubmissionText builds the copy-out submission block.
func (s *Store) SubmissionText() string {
	links := s.Links()
	return fmt.Sprintf(`Job Notification Tracker — Final Submission

Project: %s
Repository: %s
Live Deployment: %s

Core Features:
- Intelligent match scoring
- Daily digest simulation
- Status tracking
- Test checklist enforced`, links.ProjectURL, links.RepoURL, links.DeployURL)
}

func knownItem(id string) bool {
	for _, item := range Items {
		if item.ID == id {
			return true
		}
	}
	return false
}

func validURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
