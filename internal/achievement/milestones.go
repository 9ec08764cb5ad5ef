package achievement

import (
	"fmt"

	"github.com/arshanh/nutriplan-cli/internal/model"
)

// Milestone codes. The code is the stable identity persisted in the earned
// set; titles are presentation only.
const (
	CodeFirstMeal       = "first_meal"
	CodeFirstExercise   = "first_exercise"
	CodeCalorieTarget   = "calorie_target_day"
	CodeWeekStreak      = "week_streak"
	CodePerfectWeek     = "perfect_week"
	CodeProteinStreak   = "protein_streak_5"
	mealCountCodeFormat = "meals_%d"
)

// CalorieTargetBand is the ± kcal window around the calorie goal that counts
// as hitting the target for milestone purposes.
const CalorieTargetBand = 50

var mealCountThresholds = []int{10, 25, 50, 100}

type Milestone struct {
	Code  string
	Title string
}

// Input is everything the rule set evaluates. Last7Days must be aligned by
// calendar day, oldest first, ending with today; days without logging appear
// as zero summaries. Earned is the persisted set of already-awarded codes.
type Input struct {
	TotalMealsLogged int
	TotalExercises   int
	Today            model.DaySummary
	Last7Days        []model.DaySummary
	CalorieGoal      int
	ProteinGoalG     float64
	Earned           map[string]bool
}

// CheckMilestones evaluates the fixed rule set against the input. Each rule
// is independent; codes already in the earned set are never re-reported.
func CheckMilestones(in Input) []Milestone {
	earned := make([]Milestone, 0)
	award := func(code, title string, hit bool) {
		if hit && !in.Earned[code] {
			earned = append(earned, Milestone{Code: code, Title: title})
		}
	}

	award(CodeFirstMeal, "First meal logged", in.TotalMealsLogged >= 1)
	for _, threshold := range mealCountThresholds {
		award(
			fmt.Sprintf(mealCountCodeFormat, threshold),
			fmt.Sprintf("%d meals logged", threshold),
			in.TotalMealsLogged >= threshold,
		)
	}
	award(CodeFirstExercise, "First exercise logged", in.TotalExercises >= 1)
	award(CodeCalorieTarget, "Hit the calorie target", hitCalorieTarget(in.Today, in.CalorieGoal))
	award(CodeWeekStreak, "Logged meals 7 days straight", loggingStreak(in.Last7Days, 7))
	award(CodePerfectWeek, "Perfect week on calories", perfectWeek(in.Last7Days, in.CalorieGoal))
	award(CodeProteinStreak, "Protein goal 5 days straight", proteinStreak(in.Last7Days, in.ProteinGoalG, 5))
	return earned
}

func hitCalorieTarget(today model.DaySummary, goal int) bool {
	if goal <= 0 || today.Calories == 0 {
		return false
	}
	return abs(today.Calories-goal) <= CalorieTargetBand
}

func loggingStreak(days []model.DaySummary, length int) bool {
	if len(days) < length {
		return false
	}
	for _, d := range days[len(days)-length:] {
		if d.MealCount == 0 {
			return false
		}
	}
	return true
}

// perfectWeek requires every one of the trailing 7 days within the calorie
// band with something actually logged; an unlogged day never passes.
func perfectWeek(days []model.DaySummary, goal int) bool {
	if goal <= 0 || len(days) < 7 {
		return false
	}
	for _, d := range days[len(days)-7:] {
		if d.Calories == 0 || abs(d.Calories-goal) > CalorieTargetBand {
			return false
		}
	}
	return true
}

func proteinStreak(days []model.DaySummary, goalG float64, length int) bool {
	if goalG <= 0 || len(days) < length {
		return false
	}
	for _, d := range days[len(days)-length:] {
		if d.ProteinG < goalG {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
