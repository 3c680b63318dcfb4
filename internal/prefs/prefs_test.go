package prefs

import (
	"testing"

	"github.com/akarpov/jobtrack/internal/store"
)

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		prefs Preferences
		want  bool
	}{
		{"zero value", Preferences{}, true},
		{"default", *Default(), true},
		{"whitespace only", Preferences{RoleKeywords: "  ", Skills: "   "}, true},
		{"keywords", Preferences{RoleKeywords: "react"}, false},
		{"locations", Preferences{PreferredLocations: []string{"Remote"}}, false},
		{"mode", Preferences{PreferredMode: []string{"Hybrid"}}, false},
		{"experience", Preferences{ExperienceLevel: "Senior"}, false},
		{"skills", Preferences{Skills: "go"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.prefs.IsEmpty(); got != tt.want {
				t.Fatalf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeywordList(t *testing.T) {
	t.Parallel()

	p := Preferences{RoleKeywords: " React, Frontend ,,  SDE , "}
	got := p.KeywordList()
	want := []string{"react", "frontend", "sde"}

	if len(got) != len(want) {
		t.Fatalf("KeywordList() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("KeywordList()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewStore(store.NewMemory())

	if _, ok := s.Load(); ok {
		t.Fatal("expected absent profile before save")
	}

	saved := &Preferences{
		RoleKeywords:       "react",
		PreferredLocations: []string{"Remote"},
		PreferredMode:      []string{"Remote"},
		MinMatchScore:      55,
	}
	if err := s.Save(saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, ok := s.Load()
	if !ok {
		t.Fatal("expected profile after save")
	}
	if loaded.RoleKeywords != "react" || loaded.MinMatchScore != 55 {
		t.Fatalf("unexpected profile: %+v", loaded)
	}
}

func TestStoreCorruptPayloadIsAbsent(t *testing.T) {
	t.Parallel()

	kv := store.NewMemory()
	if err := kv.Set(store.KeyPreferences, []byte("{broken")); err != nil {
		t.Fatalf("set: %v", err)
	}

	if _, ok := NewStore(kv).Load(); ok {
		t.Fatal("corrupt payload must read as absent")
	}
}
