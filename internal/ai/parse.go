package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	jsonArrayRe  = regexp.MustCompile(`(?s)\[.*\]`)
	jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

	errNoJSON = errors.New("no JSON found in model output")
)

type rawSuggestion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Frequency   string `json:"frequency"`
	Reason      string `json:"reason"`
}

// ParseSuggestions extracts up to limit valid suggestions from model output.
// A suggestion is valid when name, description, category and frequency are
// present and the frequency is daily or weekly.
func ParseSuggestions(text string, limit int) ([]Suggestion, error) {
	match := jsonArrayRe.FindString(text)
	if match == "" {
		return nil, errNoJSON
	}

	var raw []rawSuggestion
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode suggestions: %w", err)
	}

	var out []Suggestion
	for _, r := range raw {
		s := Suggestion{
			Name:        strings.TrimSpace(r.Name),
			Description: strings.TrimSpace(r.Description),
			Category:    strings.TrimSpace(r.Category),
			Frequency:   strings.ToLower(strings.TrimSpace(r.Frequency)),
			Reason:      strings.TrimSpace(r.Reason),
		}
		if s.Name == "" || s.Description == "" || s.Category == "" {
			continue
		}
		if s.Frequency != "daily" && s.Frequency != "weekly" {
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	if len(out) == 0 {
		return nil, errors.New("model output contained no valid suggestions")
	}
	return out, nil
}

type rawAnalysis struct {
	PerformanceScore json.RawMessage `json:"performance_score"`
	Strengths        []string        `json:"strengths"`
	Improvements     []string        `json:"improvements"`
	Recommendations  []string        `json:"recommendations"`
}

// ParseAnalysis extracts an analysis from model output. The score may be a
// number or a numeric string and is clamped to 1..10.
func ParseAnalysis(text string) (*Analysis, error) {
	match := jsonObjectRe.FindString(text)
	if match == "" {
		return nil, errNoJSON
	}

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}

	score, err := parseScore(raw.PerformanceScore)
	if err != nil {
		return nil, err
	}

	a := &Analysis{
		PerformanceScore: score,
		Strengths:        cleanList(raw.Strengths),
		Improvements:     cleanList(raw.Improvements),
		Recommendations:  cleanList(raw.Recommendations),
	}
	if len(a.Strengths)+len(a.Improvements)+len(a.Recommendations) == 0 {
		return nil, errors.New("analysis contained no insights")
	}
	return a, nil
}

func parseScore(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, errors.New("performance_score is missing")
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("invalid performance_score %s", raw)
		}
		f, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid performance_score %q", s)
		}
	}

	score := int(math.Round(f))
	return min(max(score, 1), 10), nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseCategories keeps single-word alphabetic lines shorter than 50
// characters, title-cased and de-duplicated.
func ParseCategories(text string) []string {
	caser := cases.Title(language.English)
	seen := make(map[string]bool)
	var out []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) >= 50 || !isAlpha(line) {
			continue
		}
		name := caser.String(line)
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
