package ai

import (
	"strings"
	"testing"
)

func TestParseSuggestions(t *testing.T) {
	t.Run("extracts array surrounded by prose", func(t *testing.T) {
		text := "Here you go:\n```json\n[{\"name\":\" Evening Walk \",\"description\":\"Walk 20 minutes\",\"category\":\"Health\",\"frequency\":\"Daily\",\"reason\":\"Fresh air\"}]\n```"
		got, err := ParseSuggestions(text, 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 suggestion, got %d", len(got))
		}
		if got[0].Name != "Evening Walk" || got[0].Frequency != "daily" {
			t.Errorf("unexpected suggestion %+v", got[0])
		}
	})

	t.Run("drops incomplete entries and caps the count", func(t *testing.T) {
		text := `[
			{"name":"A","description":"a","category":"Health","frequency":"daily"},
			{"name":"","description":"b","category":"Health","frequency":"daily"},
			{"name":"C","description":"c","category":"Health","frequency":"monthly"},
			{"name":"D","description":"d","category":"Learning","frequency":"weekly"},
			{"name":"E","description":"e","category":"Learning","frequency":"weekly"}
		]`
		got, err := ParseSuggestions(text, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[0].Name != "A" || got[1].Name != "D" {
			t.Errorf("unexpected suggestions %+v", got)
		}
	})

	t.Run("errors without JSON", func(t *testing.T) {
		if _, err := ParseSuggestions("I cannot help with that", 5); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("errors when nothing is valid", func(t *testing.T) {
		if _, err := ParseSuggestions(`[{"name":"X"}]`, 5); err == nil {
			t.Error("expected error")
		}
	})
}

func TestParseAnalysis(t *testing.T) {
	t.Run("numeric string score", func(t *testing.T) {
		text := `{"performance_score":"8","strengths":["Daily reading"],"improvements":["Sleep"],"recommendations":["Plan ahead"]}`
		got, err := ParseAnalysis(text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.PerformanceScore != 8 {
			t.Errorf("expected 8, got %d", got.PerformanceScore)
		}
	})

	t.Run("score is clamped", func(t *testing.T) {
		got, err := ParseAnalysis(`{"performance_score": 14.2, "strengths": ["x"]}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.PerformanceScore != 10 {
			t.Errorf("expected 10, got %d", got.PerformanceScore)
		}
	})

	t.Run("rejects missing score", func(t *testing.T) {
		if _, err := ParseAnalysis(`{"strengths":["x"]}`); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("rejects empty insights", func(t *testing.T) {
		if _, err := ParseAnalysis(`{"performance_score":5}`); err == nil {
			t.Error("expected error")
		}
	})
}

func TestParseCategories(t *testing.T) {
	text := "health\nPersonal Growth\n1. Fitness\nmindfulness\nHEALTH\n\n" + strings.Repeat("a", 60)
	got := ParseCategories(text)

	want := []string{"Health", "Mindfulness"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPadCategories(t *testing.T) {
	got := padCategories([]string{"Health", "Sleep"}, MaxCategories)
	if len(got) != MaxCategories {
		t.Fatalf("expected %d categories, got %d", MaxCategories, len(got))
	}
	if got[0] != "Health" || got[1] != "Sleep" || got[2] != "Personal" {
		t.Errorf("unexpected order %v", got)
	}
}

func TestBuildSuggestionPrompt(t *testing.T) {
	habits := []HabitSummary{
		{Name: "Read", Frequency: "daily", Category: "Learning"},
		{Name: "Run", Frequency: "weekly", Category: "Fitness"},
	}
	prompt := BuildSuggestionPrompt(habits, "", 3)

	for _, want := range []string{"- Read (daily, Learning)", "Categories: Fitness: 1, Learning: 1", "General personal improvement", "suggest 3 new habits"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	empty := BuildSuggestionPrompt(nil, "sleep better", 1)
	if !strings.Contains(empty, "User has no existing habits yet.") || !strings.Contains(empty, "suggest 1 new habit ") {
		t.Errorf("unexpected prompt for empty habits:\n%s", empty)
	}
}

func TestBuildAnalysisPrompt(t *testing.T) {
	prompt := BuildAnalysisPrompt([]HabitSummary{
		{Name: "Read", Frequency: "daily", Category: "Learning", SuccessRate: 80, CurrentStreak: 4, TotalCheckins: 10},
		{Name: "Run", Frequency: "weekly", Category: "Fitness", SuccessRate: 50, CurrentStreak: 0, TotalCheckins: 4},
	})
	for _, want := range []string{"User has 2 habits across 2 categories.", "current streak 4", "Average success rate: 65.0%"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSuggestionCacheKey(t *testing.T) {
	a := []HabitSummary{{Name: "Read", Frequency: "daily", Category: "Learning"}, {Name: "Run", Frequency: "weekly", Category: "Fitness"}}
	b := []HabitSummary{a[1], a[0]}

	if SuggestionCacheKey(a, "focus", 3) != SuggestionCacheKey(b, "focus", 3) {
		t.Error("habit order should not change the key")
	}
	if SuggestionCacheKey(a, "focus", 3) == SuggestionCacheKey(a, "sleep", 3) {
		t.Error("goals should change the key")
	}
	if SuggestionCacheKey(a, "focus", 3) == SuggestionCacheKey(a, "focus", 4) {
		t.Error("limit should change the key")
	}
}
