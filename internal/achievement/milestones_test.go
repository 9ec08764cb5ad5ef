package achievement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arshanh/nutriplan-cli/internal/model"
)

func codes(milestones []Milestone) []string {
	out := make([]string, 0, len(milestones))
	for _, m := range milestones {
		out = append(out, m.Code)
	}
	return out
}

func week(calories int, proteinG float64, mealCount int) []model.DaySummary {
	days := make([]model.DaySummary, 7)
	for i := range days {
		days[i] = model.DaySummary{Calories: calories, ProteinG: proteinG, MealCount: mealCount}
	}
	return days
}

func TestCheckMilestonesMealCountThresholds(t *testing.T) {
	got := CheckMilestones(Input{TotalMealsLogged: 25})
	assert.Contains(t, codes(got), CodeFirstMeal)
	assert.Contains(t, codes(got), "meals_10")
	assert.Contains(t, codes(got), "meals_25")
	assert.NotContains(t, codes(got), "meals_50")
}

func TestCheckMilestonesEarnedNeverReReported(t *testing.T) {
	earned := map[string]bool{CodeFirstMeal: true, "meals_10": true}
	got := CheckMilestones(Input{TotalMealsLogged: 12, Earned: earned})
	assert.Empty(t, codes(got))
}

func TestCheckMilestonesFirstExercise(t *testing.T) {
	got := CheckMilestones(Input{TotalExercises: 1})
	assert.Equal(t, []string{CodeFirstExercise}, codes(got))
}

func TestCheckMilestonesCalorieTargetBand(t *testing.T) {
	in := Input{CalorieGoal: 2000, Today: model.DaySummary{Calories: 2050, MealCount: 1}}
	assert.Contains(t, codes(CheckMilestones(in)), CodeCalorieTarget)

	in.Today.Calories = 2051
	assert.NotContains(t, codes(CheckMilestones(in)), CodeCalorieTarget)

	// An unlogged day does not hit the target even with a tiny goal.
	in.Today.Calories = 0
	in.CalorieGoal = 40
	assert.NotContains(t, codes(CheckMilestones(in)), CodeCalorieTarget)
}

func TestCheckMilestonesWeekStreak(t *testing.T) {
	in := Input{Last7Days: week(1800, 100, 2)}
	assert.Contains(t, codes(CheckMilestones(in)), CodeWeekStreak)

	broken := week(1800, 100, 2)
	broken[3].MealCount = 0
	in.Last7Days = broken
	assert.NotContains(t, codes(CheckMilestones(in)), CodeWeekStreak)
}

func TestCheckMilestonesPerfectWeekRequiresLogging(t *testing.T) {
	in := Input{CalorieGoal: 2000, Last7Days: week(1980, 0, 1)}
	assert.Contains(t, codes(CheckMilestones(in)), CodePerfectWeek)

	// A zero-calorie day fails even though |0 - goal| is irrelevant: an
	// unlogged day must not pass by default.
	days := week(1980, 0, 1)
	days[6].Calories = 0
	in.Last7Days = days
	assert.NotContains(t, codes(CheckMilestones(in)), CodePerfectWeek)

	days = week(1980, 0, 1)
	days[0].Calories = 2100
	in.Last7Days = days
	assert.NotContains(t, codes(CheckMilestones(in)), CodePerfectWeek)
}

func TestCheckMilestonesProteinStreakLastFiveDays(t *testing.T) {
	days := week(1800, 90, 1)
	// Protein low 6 days ago does not break the trailing 5-day window.
	days[0].ProteinG = 10
	days[1].ProteinG = 10
	in := Input{ProteinGoalG: 90, Last7Days: days}
	assert.Contains(t, codes(CheckMilestones(in)), CodeProteinStreak)

	days[4].ProteinG = 89.5
	assert.NotContains(t, codes(CheckMilestones(in)), CodeProteinStreak)
}

func TestCheckMilestonesZeroGoalsDisableGoalRules(t *testing.T) {
	in := Input{Last7Days: week(2000, 200, 3), Today: model.DaySummary{Calories: 10, MealCount: 1}}
	got := codes(CheckMilestones(in))
	assert.NotContains(t, got, CodeCalorieTarget)
	assert.NotContains(t, got, CodePerfectWeek)
	assert.NotContains(t, got, CodeProteinStreak)
	assert.Contains(t, got, CodeWeekStreak)
}
