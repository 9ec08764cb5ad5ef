package service

import (
	"database/sql"
	"time"

	"github.com/arshanh/nutriplan-cli/internal/model"
)

// TodayStatus is the day's totals against the effective goal: what the
// presentation layer and the widget snapshot both consume.
type TodayStatus struct {
	Date              string  `json:"date"`
	Calories          int     `json:"calories"`
	ProteinG          float64 `json:"protein_g"`
	CarbsG            float64 `json:"carbs_g"`
	FatG              float64 `json:"fat_g"`
	MealCount         int     `json:"meal_count"`
	BurnedCalories    int     `json:"burned_calories"`
	HasGoal           bool    `json:"has_goal"`
	GoalCalories      int     `json:"goal_calories,omitempty"`
	GoalProteinG      float64 `json:"goal_protein_g,omitempty"`
	GoalCarbsG        float64 `json:"goal_carbs_g,omitempty"`
	GoalFatG          float64 `json:"goal_fat_g,omitempty"`
	RolloverCalories  int     `json:"rollover_calories,omitempty"`
	RemainingCalories int     `json:"remaining_calories,omitempty"`
}

// TodaySummary combines the day's logged totals with the effective goal.
// GoalCalories is the effective goal (base plus enabled adjustments), not the
// raw base.
func TodaySummary(db *sql.DB, now time.Time) (*TodayStatus, error) {
	status := &TodayStatus{Date: model.DayKey(now)}

	summary, err := DaySummaryFor(db, now)
	if err != nil {
		return nil, err
	}
	if summary != nil {
		status.Calories = summary.Calories
		status.ProteinG = summary.ProteinG
		status.CarbsG = summary.CarbsG
		status.FatG = summary.FatG
		status.MealCount = summary.MealCount
	}

	goal, err := EffectiveGoal(db, now)
	if err != nil {
		return nil, err
	}
	status.BurnedCalories = goal.BurnedCalories
	if goal.HasGoal {
		status.HasGoal = true
		status.GoalCalories = goal.EffectiveCalories
		status.GoalProteinG = goal.BaseProteinG
		status.GoalCarbsG = goal.BaseCarbsG
		status.GoalFatG = goal.BaseFatG
		status.RolloverCalories = goal.RolloverCalories
		status.RemainingCalories = goal.EffectiveCalories - status.Calories
	}
	return status, nil
}
