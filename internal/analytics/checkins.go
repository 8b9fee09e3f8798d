package analytics

import (
	"habithero/internal/dates"
	"habithero/internal/logger"
	"habithero/internal/models"
)

// validCheckIns drops check-ins whose date could not be read, logging each one.
func validCheckIns(h *models.Habit, checkins []models.CheckIn) []models.CheckIn {
	out := make([]models.CheckIn, 0, len(checkins))
	for _, c := range checkins {
		if !c.Date.IsValid() {
			logger.Get().Warnw("skipping check-in with invalid date",
				"habit_id", h.ID,
				"checkin_id", c.ID,
			)
			continue
		}
		out = append(out, c)
	}
	return out
}

// indexByDate maps each date to its check-in. If the input holds more than one
// record for a date, a completed record wins.
func indexByDate(checkins []models.CheckIn) map[dates.Date]models.CheckIn {
	idx := make(map[dates.Date]models.CheckIn, len(checkins))
	for _, c := range checkins {
		if prev, ok := idx[c.Date]; ok && prev.Completed && !c.Completed {
			continue
		}
		idx[c.Date] = c
	}
	return idx
}
