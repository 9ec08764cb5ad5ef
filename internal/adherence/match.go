package adherence

import (
	"time"

	"github.com/arshanh/nutriplan-cli/internal/model"
)

// MatchResult classifies a day's scheduled occurrences and logged meals.
// Completed and Missed partition the scheduled list; OffDiet holds logged
// meals not linked to any completion record for the date.
type MatchResult struct {
	Completed       map[string]bool
	CompletedMealID map[string]string
	Missed          []model.ScheduledMeal
	OffDiet         []model.Meal
}

// MatchDay matches a date's logged meals against its scheduled occurrences
// through the persisted reminder records.
//
// A scheduled occurrence is completed iff a reminder exists for it on the
// date with WasCompleted set; otherwise it is missed. A logged meal is
// off-diet iff no reminder on the date names it as the completing meal.
func MatchDay(date time.Time, scheduled []model.ScheduledMeal, reminders []model.MealReminder, meals []model.Meal) MatchResult {
	day := model.DayKey(date)

	completedByScheduled := make(map[string]string)
	usedMealIDs := make(map[string]bool)
	for _, r := range reminders {
		if model.DayKey(r.ReminderDate) != day {
			continue
		}
		if r.CompletedMealID != "" {
			usedMealIDs[r.CompletedMealID] = true
		}
		if r.WasCompleted {
			completedByScheduled[r.ScheduledMealID] = r.CompletedMealID
		}
	}

	result := MatchResult{
		Completed:       make(map[string]bool),
		CompletedMealID: make(map[string]string),
		Missed:          make([]model.ScheduledMeal, 0),
		OffDiet:         make([]model.Meal, 0),
	}
	for _, sm := range scheduled {
		if mealID, ok := completedByScheduled[sm.ID]; ok {
			result.Completed[sm.ID] = true
			result.CompletedMealID[sm.ID] = mealID
		} else {
			result.Missed = append(result.Missed, sm)
		}
	}
	for _, m := range meals {
		if !usedMealIDs[m.ID] {
			result.OffDiet = append(result.OffDiet, m)
		}
	}
	return result
}
