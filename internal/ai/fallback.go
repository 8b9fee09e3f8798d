package ai

// MaxCategories is the length of the category list returned to clients.
const MaxCategories = 10

// StandardCategories pad short category answers from the model.
var StandardCategories = []string{
	"Health", "Personal", "Productivity", "Learning",
	"Relationships", "Finance", "Spiritual", "Creative",
}

// FallbackCategories is served when the model cannot be reached.
var FallbackCategories = []string{
	"Health", "Personal", "Productivity", "Learning",
	"Relationships", "Finance", "Spiritual", "Creative",
	"Fitness", "Mindfulness",
}

// FallbackSuggestions is served when no model suggestion is available.
func FallbackSuggestions() []Suggestion {
	return []Suggestion{
		{
			Name:        "Morning Meditation",
			Description: "Spend 10 minutes meditating or practicing mindfulness each morning",
			Category:    "Personal",
			Frequency:   "daily",
			Reason:      "Helps reduce stress and improve focus throughout the day",
		},
	}
}

// FallbackAnalysis is served when no model analysis is available.
func FallbackAnalysis() *Analysis {
	return &Analysis{
		PerformanceScore: 7,
		Strengths: []string{
			"Consistent habit tracking",
			"Diverse habit categories",
			"Good habit variety",
		},
		Improvements: []string{
			"Increase completion rates",
			"Add more specific goals",
			"Improve habit timing",
		},
		Recommendations: []string{
			"Set specific, measurable goals for each habit",
			"Try habit stacking - link new habits to existing ones",
			"Focus on consistency over perfection",
		},
	}
}

// padCategories appends fallback categories until limit is reached.
func padCategories(categories []string, limit int) []string {
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		seen[c] = true
	}
	for _, c := range FallbackCategories {
		if len(categories) >= limit {
			break
		}
		if !seen[c] {
			categories = append(categories, c)
			seen[c] = true
		}
	}
	if len(categories) > limit {
		categories = categories[:limit]
	}
	return categories
}
