package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/akarpov/jobtrack/internal/catalog"
	"github.com/akarpov/jobtrack/internal/prefs"
	"github.com/akarpov/jobtrack/internal/store"
	"github.com/akarpov/jobtrack/internal/tracker"
)

func fixedGenerator(c *catalog.Catalog, kv store.KV) *Generator {
	g := NewGenerator(c, kv)
	g.now = func() time.Time {
		return time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)
	}
	return g
}

func rankingCatalog() *catalog.Catalog {
	// Against the "go" keyword profile, A, B, and D tie on score (title
	// match, all past the freshness window) while C trails with a
	// description match plus freshness bonus.
	return &catalog.Catalog{Jobs: []*catalog.Job{
		{ID: "A", Title: "Go Engineer", PostedDaysAgo: 5},
		{ID: "B", Title: "Go Engineer", PostedDaysAgo: 3},
		{ID: "C", Title: "Analyst", Description: "Some go tooling", PostedDaysAgo: 0},
		{ID: "D", Title: "Go Engineer", PostedDaysAgo: 3},
	}}
}

func TestGenerateRankingTieBreaks(t *testing.T) {
	t.Parallel()

	g := fixedGenerator(rankingCatalog(), store.NewMemory())
	p := &prefs.Preferences{RoleKeywords: "go"}

	entries, err := g.Generate(p)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// A, B, D share the top score; the tie breaks on freshness, then on
	// catalog order (B before D). C trails on score despite being newest.
	want := []string{"B", "D", "A", "C"}
	if len(entries) != len(want) {
		t.Fatalf("entries = %d, want %d", len(entries), len(want))
	}
	for i, id := range want {
		if entries[i].ID != id {
			t.Fatalf("rank %d = %s, want %s (full order %+v)", i+1, entries[i].ID, id, entries)
		}
	}
}

func TestGenerateIsAtMostOncePerDay(t *testing.T) {
	t.Parallel()

	kv := store.NewMemory()
	g := fixedGenerator(rankingCatalog(), kv)

	first, err := g.Generate(&prefs.Preferences{RoleKeywords: "go"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// A different profile on the same day must not alter the record.
	second, err := g.Generate(&prefs.Preferences{RoleKeywords: "analyst"})
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("digest changed size: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("digest changed at rank %d: %+v vs %+v", i+1, first[i], second[i])
		}
	}

	loaded, ok := g.Load(g.DateKey())
	if !ok || len(loaded) != len(first) {
		t.Fatalf("expected persisted digest, got ok=%v len=%d", ok, len(loaded))
	}
}

func TestGenerateCapsAtTen(t *testing.T) {
	t.Parallel()

	jobs := make([]*catalog.Job, 0, 15)
	for i := 0; i < 15; i++ {
		jobs = append(jobs, &catalog.Job{
			ID:            string(rune('a' + i)),
			Title:         "Go Engineer",
			PostedDaysAgo: i,
		})
	}
	g := fixedGenerator(&catalog.Catalog{Jobs: jobs}, store.NewMemory())

	entries, err := g.Generate(&prefs.Preferences{RoleKeywords: "go"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(entries) != Size {
		t.Fatalf("digest size = %d, want %d", len(entries), Size)
	}
}

func TestLoadCorruptDigestIsAbsent(t *testing.T) {
	t.Parallel()

	kv := store.NewMemory()
	g := fixedGenerator(rankingCatalog(), kv)

	if err := kv.Set(store.DigestKeyPrefix+g.DateKey(), []byte("not json")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := g.Load(g.DateKey()); ok {
		t.Fatal("corrupt digest must read as absent")
	}
}

func TestRenderContract(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{Title: "Senior React Engineer", Company: "Brightflow", Location: "Remote", Experience: "Senior", MatchScore: 85},
		{Title: "Backend Engineer", Company: "Ledgerly", Location: "Bangalore", Experience: "Mid", MatchScore: 60},
	}

	got := Render(entries)
	want := "1. Senior React Engineer at Brightflow — Remote — Senior — Match: 85%\n" +
		"2. Backend Engineer at Ledgerly — Bangalore — Mid — Match: 60%"
	if got != want {
		t.Fatalf("Render mismatch:\n got: %q\nwant: %q", got, want)
	}

	message := RenderMessage("2026-08-28", entries)
	if !strings.HasPrefix(message, "Top 10 Jobs For You — 9AM Digest\n2026-08-28\n\n") {
		t.Fatalf("unexpected message header: %q", message)
	}
	if !strings.HasSuffix(message, "This digest was generated based on your preferences.") {
		t.Fatalf("unexpected message footer: %q", message)
	}
}

func TestRecentActivityToleratesMissingJobs(t *testing.T) {
	t.Parallel()

	c := &catalog.Catalog{Jobs: []*catalog.Job{{ID: "a", Title: "Go Engineer", Company: "Ledgerly"}}}
	history := []tracker.HistoryEntry{
		{JobID: "a", Status: tracker.StatusApplied},
		{JobID: "gone", Status: tracker.StatusRejected},
	}

	activity := RecentActivity(c, history)
	if len(activity) != 2 {
		t.Fatalf("activity length = %d, want 2", len(activity))
	}
	if activity[0].JobTitle != "Go Engineer" || activity[0].Company != "Ledgerly" {
		t.Fatalf("unexpected first entry: %+v", activity[0])
	}
	if activity[1].JobTitle != "Unknown" {
		t.Fatalf("missing job must render as Unknown, got %+v", activity[1])
	}
}

func TestRecentActivityLimit(t *testing.T) {
	t.Parallel()

	history := make([]tracker.HistoryEntry, 8)
	for i := range history {
		history[i] = tracker.HistoryEntry{JobID: "x", Status: tracker.StatusApplied}
	}

	got := RecentActivity(&catalog.Catalog{}, history)
	if len(got) != recentActivityLimit {
		t.Fatalf("activity length = %d, want %d", len(got), recentActivityLimit)
	}
}
