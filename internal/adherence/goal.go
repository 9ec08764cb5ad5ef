package adherence

import (
	"math"

	"github.com/arshanh/nutriplan-cli/internal/model"
)

// GoalTolerance is the symmetric fractional band within which a completed
// meal counts as meeting its template's calorie target. The bound is
// inclusive.
const GoalTolerance = 0.20

// EvaluateGoal decides whether a completed meal met the scheduled meal's
// nutrition target, and by how much it deviated.
//
// The deviation is (actual - expected) / expected: positive means over
// target. A scheduled meal without a template, or with a zero-calorie
// template, cannot be missed: the result is (true, 0).
func EvaluateGoal(meal model.Meal, scheduled model.ScheduledMeal) (achieved bool, deviation float64) {
	if !scheduled.HasTemplate() {
		return true, 0
	}
	expected := scheduled.TemplateCalories()
	if expected == 0 {
		return true, 0
	}
	actual := meal.TotalCalories()
	deviation = (float64(actual) - float64(expected)) / float64(expected)
	return math.Abs(deviation) <= GoalTolerance, deviation
}
