package analytics

import (
	"habithero/internal/dates"
	"habithero/internal/models"
)

var d = dates.MustParse

func daily(start string) *models.Habit {
	return &models.Habit{
		Base:      models.Base{ID: "h-daily"},
		Name:      "Read",
		Frequency: models.FrequencyDaily,
		Category:  "Learning",
		StartDate: d(start),
	}
}

func weekly(start string) *models.Habit {
	return &models.Habit{
		Base:      models.Base{ID: "h-weekly"},
		Name:      "Long run",
		Frequency: models.FrequencyWeekly,
		Category:  "Fitness",
		StartDate: d(start),
	}
}

func done(dates ...string) []models.CheckIn {
	out := make([]models.CheckIn, 0, len(dates))
	for _, s := range dates {
		out = append(out, models.CheckIn{Base: models.Base{ID: "c-" + s}, Date: d(s), Completed: true})
	}
	return out
}

func missed(dates ...string) []models.CheckIn {
	out := make([]models.CheckIn, 0, len(dates))
	for _, s := range dates {
		out = append(out, models.CheckIn{Base: models.Base{ID: "m-" + s}, Date: d(s), Completed: false})
	}
	return out
}

func join(groups ...[]models.CheckIn) []models.CheckIn {
	var out []models.CheckIn
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
