package adherence

import (
	"sort"
	"time"

	"github.com/arshanh/nutriplan-cli/internal/model"
)

// OccurrencesFor resolves which scheduled meals apply to the given calendar
// date across all active plans: every scheduled meal whose weekday set
// contains the date's weekday number. No time-of-day filtering; a scheduled
// meal applies to the whole day. Inactive plans contribute nothing.
func OccurrencesFor(date time.Time, plans []model.DietPlan) []model.ScheduledMeal {
	weekday := model.WeekdayNumber(date)
	occurrences := make([]model.ScheduledMeal, 0)
	for i := range plans {
		if !plans[i].IsActive {
			continue
		}
		for _, sm := range plans[i].ScheduledMeals {
			if sm.RecursOn(weekday) {
				occurrences = append(occurrences, sm)
			}
		}
	}
	return occurrences
}

// PlannedOccurrence is one scheduled-meal occurrence shaped for the external
// reminder scheduler: the concrete fire time on a specific date.
type PlannedOccurrence struct {
	ScheduledMealID string
	Name            string
	Category        string
	At              time.Time
}

// UpcomingOccurrences expands the date's occurrences into concrete fire
// times, sorted by time of day. A scheduled meal with an unparseable
// time-of-day fires at start of day rather than being dropped.
func UpcomingOccurrences(date time.Time, plans []model.DietPlan) []PlannedOccurrence {
	start := model.BeginningOfDay(date)
	occurrences := OccurrencesFor(date, plans)
	planned := make([]PlannedOccurrence, 0, len(occurrences))
	for _, sm := range occurrences {
		at := start
		if t, err := time.Parse("15:04", sm.TimeOfDay); err == nil {
			at = start.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
		}
		planned = append(planned, PlannedOccurrence{
			ScheduledMealID: sm.ID,
			Name:            sm.Name,
			Category:        sm.Category,
			At:              at,
		})
	}
	sort.SliceStable(planned, func(i, j int) bool {
		if planned[i].At.Equal(planned[j].At) {
			return planned[i].Name < planned[j].Name
		}
		return planned[i].At.Before(planned[j].At)
	})
	return planned
}
