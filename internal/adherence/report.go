package adherence

import (
	"time"

	"github.com/arshanh/nutriplan-cli/internal/model"
)

// Report is the derived per-day adherence result. It is a pure computation
// over persisted entities and has no lifecycle of its own.
type Report struct {
	Date              time.Time
	ScheduledMeals    []model.ScheduledMeal
	CompletedMeals    map[string]bool
	MissedMeals       []model.ScheduledMeal
	OffDietMeals      []model.Meal
	OffDietCalories   int
	GoalAchievedMeals map[string]bool
	GoalMissedMeals   map[string]bool
}

// BuildReport folds matcher output and per-occurrence goal evaluation into a
// day report. mealsByID resolves completion records to logged meals; a
// completed occurrence whose meal is no longer resolvable stays completed but
// contributes to neither goal set.
func BuildReport(date time.Time, scheduled []model.ScheduledMeal, match MatchResult, mealsByID map[string]model.Meal) Report {
	report := Report{
		Date:              date,
		ScheduledMeals:    scheduled,
		CompletedMeals:    match.Completed,
		MissedMeals:       match.Missed,
		OffDietMeals:      match.OffDiet,
		GoalAchievedMeals: make(map[string]bool),
		GoalMissedMeals:   make(map[string]bool),
	}
	for _, m := range match.OffDiet {
		report.OffDietCalories += m.TotalCalories()
	}

	scheduledByID := make(map[string]model.ScheduledMeal, len(scheduled))
	for _, sm := range scheduled {
		scheduledByID[sm.ID] = sm
	}
	for scheduledID := range match.Completed {
		sm, ok := scheduledByID[scheduledID]
		if !ok {
			continue
		}
		meal, ok := mealsByID[match.CompletedMealID[scheduledID]]
		if !ok {
			continue
		}
		if achieved, _ := EvaluateGoal(meal, sm); achieved {
			report.GoalAchievedMeals[scheduledID] = true
		} else {
			report.GoalMissedMeals[scheduledID] = true
		}
	}
	return report
}

// CompletionRate is completed over scheduled. An empty schedule is vacuously
// fully adhered: nothing was asked of the user.
func (r Report) CompletionRate() float64 {
	if len(r.ScheduledMeals) == 0 {
		return 1.0
	}
	return float64(len(r.CompletedMeals)) / float64(len(r.ScheduledMeals))
}

// GoalAchievementRate is achieved over evaluated. With nothing evaluated
// (no templates, or no completions) the rate is 1.0.
func (r Report) GoalAchievementRate() float64 {
	evaluated := len(r.GoalAchievedMeals) + len(r.GoalMissedMeals)
	if evaluated == 0 {
		return 1.0
	}
	return float64(len(r.GoalAchievedMeals)) / float64(evaluated)
}

// HasPerfectAdherence reports a perfect day: every scheduled meal completed,
// no off-diet meals, no goal misses. One off-diet snack or one goal miss
// breaks perfection even when everything scheduled was completed.
func (r Report) HasPerfectAdherence() bool {
	return r.CompletionRate() == 1.0 && len(r.OffDietMeals) == 0 && len(r.GoalMissedMeals) == 0
}
