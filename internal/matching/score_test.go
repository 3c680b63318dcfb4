package matching

import (
	"testing"

	"github.com/akarpov/jobtrack/internal/catalog"
	"github.com/akarpov/jobtrack/internal/prefs"
)

func sampleJob() *catalog.Job {
	return &catalog.Job{
		ID:            "job-1",
		Title:         "Senior React Engineer",
		Company:       "Brightflow",
		Location:      "Remote",
		Mode:          catalog.ModeRemote,
		Experience:    catalog.ExperienceSenior,
		Source:        catalog.SourceLinkedIn,
		PostedDaysAgo: 1,
		Skills:        []string{"React", "TypeScript"},
		Description:   "Own the frontend platform for our analytics suite.",
	}
}

func TestScoreEmptyProfileIsZero(t *testing.T) {
	t.Parallel()

	for _, p := range []*prefs.Preferences{
		{},
		prefs.Default(),
		{MinMatchScore: 90}, // threshold alone is not a preference
	} {
		if got := Score(sampleJob(), p); got != 0 {
			t.Fatalf("Score with empty profile = %d, want 0", got)
		}
	}
}

func TestScoreWorkedExample(t *testing.T) {
	t.Parallel()

	// title +25, location +15, fresh +5, LinkedIn +5
	p := &prefs.Preferences{
		RoleKeywords:       "react",
		PreferredLocations: []string{"Remote"},
		MinMatchScore:      40,
	}

	if got := Score(sampleJob(), p); got != 50 {
		t.Fatalf("Score = %d, want 50", got)
	}
}

func TestScoreBonuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		job   catalog.Job
		prefs prefs.Preferences
		want  int
	}{
		{
			name:  "keyword in title only",
			job:   catalog.Job{Title: "React Developer", PostedDaysAgo: 9},
			prefs: prefs.Preferences{RoleKeywords: "react"},
			want:  25,
		},
		{
			name:  "keyword in description only",
			job:   catalog.Job{Title: "Engineer", Description: "We ship React apps", PostedDaysAgo: 9},
			prefs: prefs.Preferences{RoleKeywords: "react"},
			want:  15,
		},
		{
			name:  "keyword matching is case-insensitive",
			job:   catalog.Job{Title: "REACT DEVELOPER", PostedDaysAgo: 9},
			prefs: prefs.Preferences{RoleKeywords: "React"},
			want:  25,
		},
		{
			name:  "location equality ignores case",
			job:   catalog.Job{Location: "remote", PostedDaysAgo: 9},
			prefs: prefs.Preferences{PreferredLocations: []string{"Remote"}},
			want:  15,
		},
		{
			name:  "location is literal equality, not substring",
			job:   catalog.Job{Location: "Remote (India)", PostedDaysAgo: 9},
			prefs: prefs.Preferences{PreferredLocations: []string{"Remote"}},
			want:  0,
		},
		{
			name:  "mode match is exact",
			job:   catalog.Job{Mode: catalog.ModeHybrid, PostedDaysAgo: 9},
			prefs: prefs.Preferences{PreferredMode: []string{catalog.ModeHybrid}},
			want:  10,
		},
		{
			name:  "experience match",
			job:   catalog.Job{Experience: catalog.ExperienceSenior, PostedDaysAgo: 9},
			prefs: prefs.Preferences{ExperienceLevel: catalog.ExperienceSenior},
			want:  10,
		},
		{
			name:  "skill substring of job skill",
			job:   catalog.Job{Skills: []string{"TypeScript"}, PostedDaysAgo: 9},
			prefs: prefs.Preferences{Skills: "script"},
			want:  15,
		},
		{
			name:  "fresh posting boundary",
			job:   catalog.Job{PostedDaysAgo: 2, Mode: catalog.ModeOnsite},
			prefs: prefs.Preferences{PreferredMode: []string{catalog.ModeOnsite}},
			want:  15,
		},
		{
			name:  "stale posting gets no freshness bonus",
			job:   catalog.Job{PostedDaysAgo: 3, Mode: catalog.ModeOnsite},
			prefs: prefs.Preferences{PreferredMode: []string{catalog.ModeOnsite}},
			want:  10,
		},
		{
			name:  "linkedin source bonus",
			job:   catalog.Job{Source: catalog.SourceLinkedIn, PostedDaysAgo: 9},
			prefs: prefs.Preferences{ExperienceLevel: catalog.ExperienceMid},
			want:  5,
		},
		{
			name:  "blank keyword entries match nothing",
			job:   catalog.Job{Title: "Anything", Description: "Anything", PostedDaysAgo: 9},
			prefs: prefs.Preferences{RoleKeywords: " , ,"},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(&tt.job, &tt.prefs); got != tt.want {
				t.Fatalf("Score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreKeywordOrderIndependent(t *testing.T) {
	t.Parallel()

	job := sampleJob()
	a := &prefs.Preferences{RoleKeywords: "react, backend, sde"}
	b := &prefs.Preferences{RoleKeywords: "sde ,react,backend"}

	if Score(job, a) != Score(job, b) {
		t.Fatalf("score depends on keyword order: %d vs %d", Score(job, a), Score(job, b))
	}
}

func TestScoreEachBonusFiresOnce(t *testing.T) {
	t.Parallel()

	// Two keywords both hit the title; the bonus still applies once.
	job := sampleJob()
	p := &prefs.Preferences{RoleKeywords: "react, engineer"}

	// title +25 (once, despite two hits), fresh +5, LinkedIn +5
	if got := Score(job, p); got != 35 {
		t.Fatalf("Score = %d, want 35", got)
	}
}

func TestScoreRangeAndCeiling(t *testing.T) {
	t.Parallel()

	// Profile that trips every bonus against sampleJob ("react" hits the
	// title, "frontend" hits the description).
	p := &prefs.Preferences{
		RoleKeywords:       "react, frontend",
		PreferredLocations: []string{"Remote"},
		PreferredMode:      []string{catalog.ModeRemote},
		ExperienceLevel:    catalog.ExperienceSenior,
		Skills:             "typescript",
	}

	got := Score(sampleJob(), p)
	if got != MaxScore {
		t.Fatalf("full-match score = %d, want %d", got, MaxScore)
	}

	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	for _, job := range c.Jobs {
		s := Score(job, p)
		if s < 0 || s > MaxScore {
			t.Fatalf("score out of range for %s: %d", job.ID, s)
		}
	}
}
