// Package matching computes the heuristic relevance score of a job
// against the user's preference profile.
package matching

import (
	"strings"

	"github.com/akarpov/jobtrack/internal/catalog"
	"github.com/akarpov/jobtrack/internal/prefs"
)

// MaxScore caps the accumulated bonuses. The bonus table sums to exactly
// 100, so the clamp is defensive rather than load-bearing.
const MaxScore = 100

const freshnessWindowDays = 2

// Bonus weights. Each fires at most once, independent of the others.
const (
	bonusKeywordInTitle       = 25
	bonusKeywordInDescription = 15
	bonusLocation             = 15
	bonusMode                 = 10
	bonusExperience           = 10
	bonusSkillOverlap         = 15
	bonusFreshPosting         = 5
	bonusLinkedIn             = 5
)

// Score maps a job and a profile to an integer in [0, MaxScore]. An empty
// profile always scores 0: matching is disabled until the user expresses
// at least one preference. Pure and deterministic; safe to call per job
// per render.
func Score(job *catalog.Job, p *prefs.Preferences) int {
	if p.IsEmpty() {
		return 0
	}

	keywords := p.KeywordList()
	skills := p.SkillList()

	score := 0

	title := strings.ToLower(job.Title)
	if anySubstring(title, keywords) {
		score += bonusKeywordInTitle
	}

	description := strings.ToLower(job.Description)
	if anySubstring(description, keywords) {
		score += bonusKeywordInDescription
	}

	for _, location := range p.PreferredLocations {
		if strings.EqualFold(location, job.Location) {
			score += bonusLocation
			break
		}
	}

	// Modes are a closed enumeration, so the comparison is exact.
	for _, mode := range p.PreferredMode {
		if mode == job.Mode {
			score += bonusMode
			break
		}
	}

	if p.ExperienceLevel != "" && p.ExperienceLevel == job.Experience {
		score += bonusExperience
	}

	if skillOverlap(job.Skills, skills) {
		score += bonusSkillOverlap
	}

	if job.PostedDaysAgo <= freshnessWindowDays {
		score += bonusFreshPosting
	}

	if job.Source == catalog.SourceLinkedIn {
		score += bonusLinkedIn
	}

	if score > MaxScore {
		score = MaxScore
	}
	return score
}

// ScoreAll scores every job in the catalog, keyed by job id.
func ScoreAll(c *catalog.Catalog, p *prefs.Preferences) map[string]int {
	scores := make(map[string]int, c.Len())
	for _, job := range c.Jobs {
		scores[job.ID] = Score(job, p)
	}
	return scores
}

// anySubstring reports whether any needle occurs in haystack. Needles are
// already trimmed and lowercased; an empty needle list never matches, so
// a blank keyword field cannot match every job.
func anySubstring(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

func skillOverlap(jobSkills, userSkills []string) bool {
	for _, user := range userSkills {
		for _, skill := range jobSkills {
			if strings.Contains(strings.ToLower(skill), user) {
				return true
			}
		}
	}
	return false
}
