package ai

// Source tells where an answer came from.
type Source string

const (
	SourceProvider Source = "provider"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)

// Suggestion is a proposed new habit.
type Suggestion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Frequency   string `json:"frequency"`
	Reason      string `json:"reason"`
}

// Analysis is an assessment of the user's habits.
type Analysis struct {
	PerformanceScore int      `json:"performance_score"`
	Strengths        []string `json:"strengths"`
	Improvements     []string `json:"improvements"`
	Recommendations  []string `json:"recommendations"`
}

// HabitSummary describes one existing habit in a prompt.
type HabitSummary struct {
	Name          string
	Frequency     string
	Category      string
	SuccessRate   float64
	CurrentStreak int
	TotalCheckins int
}

// Health reports whether the AI integration is usable.
type Health struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	APIConfigured bool   `json:"api_configured"`
	Provider      string `json:"provider,omitempty"`
	Model         string `json:"model,omitempty"`
	CacheEnabled  bool   `json:"cache_enabled"`
}
