package ai

import (
	"fmt"
	"sort"
	"strings"
)

const suggestionSystem = "You are a habit formation expert and personal development coach."

const analysisSystem = "You are a habit analyst."

const categoriesPrompt = `List 10 common habit categories that people typically track for personal development and wellness.
Return only the category names, one per line, without numbers or bullets.`

// habitsContext describes existing habits and their category spread.
func habitsContext(habits []HabitSummary) string {
	if len(habits) == 0 {
		return "User has no existing habits yet."
	}

	var b strings.Builder
	b.WriteString("Existing habits:\n")
	counts := make(map[string]int)
	for _, h := range habits {
		fmt.Fprintf(&b, "- %s (%s, %s)\n", h.Name, h.Frequency, h.Category)
		counts[h.Category]++
	}

	b.WriteString("\nCategories: ")
	b.WriteString(formatCounts(counts))
	return b.String()
}

// BuildSuggestionPrompt asks for count new habits complementing habits.
func BuildSuggestionPrompt(habits []HabitSummary, goals string, count int) string {
	if strings.TrimSpace(goals) == "" {
		goals = "General personal improvement"
	}
	noun := "habit"
	if count != 1 {
		noun = "habits"
	}

	return fmt.Sprintf(`Based on the user's existing habits, suggest %[1]d new %[2]s that would complement their current routine and help them build a more balanced lifestyle.

%[3]s

User Goals: %[4]s

Please suggest %[1]d new %[2]s that:
1. Complement their existing habits (don't duplicate)
2. Fill gaps in their routine (e.g., if they only have health habits, suggest personal development)
3. Are realistic and achievable
4. Cover an important life area (health, personal, productivity, relationships, learning)

For each suggestion, provide:
- A catchy, motivating name
- A clear, actionable description
- An appropriate category (Health, Personal, Productivity, Learning, Relationships, Finance, etc.)
- Frequency (daily or weekly)

Format your response as a JSON array with this exact structure:
[
  {
    "name": "Habit Name",
    "description": "Clear description of what to do",
    "category": "Category Name",
    "frequency": "daily or weekly",
    "reason": "Why this habit would be beneficial for them"
  }
]

Make the suggestions specific, actionable, and personalized to their current habit profile.`,
		count, noun, habitsContext(habits), goals)
}

// BuildAnalysisPrompt asks for an assessment of habits. Success rates and
// streaks come from the analytics engine.
func BuildAnalysisPrompt(habits []HabitSummary) string {
	counts := make(map[string]int)
	for _, h := range habits {
		counts[h.Category]++
	}

	var b strings.Builder
	fmt.Fprintf(&b, "User has %d habits across %d categories.\n", len(habits), len(counts))
	if len(counts) > 0 {
		fmt.Fprintf(&b, "Categories: %s\n", formatCounts(counts))
	}

	var sum float64
	var rated int
	for _, h := range habits {
		fmt.Fprintf(&b, "- %s (%s, %s): success rate %.1f%%, current streak %d, %d check-ins\n",
			h.Name, h.Frequency, h.Category, h.SuccessRate, h.CurrentStreak, h.TotalCheckins)
		if h.TotalCheckins > 0 {
			sum += h.SuccessRate
			rated++
		}
	}
	if rated > 0 {
		fmt.Fprintf(&b, "Average success rate: %.1f%%\n", sum/float64(rated))
	}

	return fmt.Sprintf(`Based on the user's habit data, provide insights and recommendations.

%s
Please analyze their habits and provide:
1. Overall performance assessment
2. Strengths (what they're doing well)
3. Areas for improvement
4. Specific recommendations for better habit formation

Format as JSON:
{
  "performance_score": "number between 1-10",
  "strengths": ["strength1", "strength2", "strength3"],
  "improvements": ["improvement1", "improvement2"],
  "recommendations": ["recommendation1", "recommendation2", "recommendation3"]
}`, b.String())
}

func formatCounts(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %d", name, counts[name]))
	}
	return strings.Join(parts, ", ")
}
