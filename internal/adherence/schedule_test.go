package adherence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arshanh/nutriplan-cli/internal/model"
)

// 2026-03-02 is a Monday (weekday number 2).
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)

func activePlan(meals ...model.ScheduledMeal) model.DietPlan {
	return model.DietPlan{ID: "plan-1", Name: "Cut", IsActive: true, ScheduledMeals: meals}
}

func TestOccurrencesForMatchesWeekday(t *testing.T) {
	plan := activePlan(
		model.ScheduledMeal{ID: "sm-1", Name: "Oats", Category: model.CategoryBreakfast, Weekdays: []int{2, 4, 6}},
		model.ScheduledMeal{ID: "sm-2", Name: "Salmon", Category: model.CategoryDinner, Weekdays: []int{1, 7}},
	)

	got := OccurrencesFor(monday, []model.DietPlan{plan})
	require.Len(t, got, 1)
	assert.Equal(t, "sm-1", got[0].ID)

	sunday := monday.AddDate(0, 0, -1)
	got = OccurrencesFor(sunday, []model.DietPlan{plan})
	require.Len(t, got, 1)
	assert.Equal(t, "sm-2", got[0].ID)
}

func TestOccurrencesForSpansMultipleActivePlans(t *testing.T) {
	plans := []model.DietPlan{
		{ID: "p1", IsActive: true, ScheduledMeals: []model.ScheduledMeal{{ID: "a", Weekdays: []int{2}}}},
		{ID: "p2", IsActive: true, ScheduledMeals: []model.ScheduledMeal{{ID: "b", Weekdays: []int{2}}}},
		{ID: "p3", IsActive: false, ScheduledMeals: []model.ScheduledMeal{{ID: "c", Weekdays: []int{2}}}},
	}
	got := OccurrencesFor(monday, plans)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestOccurrencesForEmptyWeekdaySetNeverRecurs(t *testing.T) {
	plan := activePlan(model.ScheduledMeal{ID: "sm-1", Weekdays: nil})
	for i := 0; i < 7; i++ {
		assert.Empty(t, OccurrencesFor(monday.AddDate(0, 0, i), []model.DietPlan{plan}))
	}
}

func TestOccurrencesForNoActivePlans(t *testing.T) {
	assert.Empty(t, OccurrencesFor(monday, nil))
}

func TestUpcomingOccurrencesSortedByFireTime(t *testing.T) {
	plan := activePlan(
		model.ScheduledMeal{ID: "sm-d", Name: "Dinner", Category: model.CategoryDinner, TimeOfDay: "19:30", Weekdays: []int{2}},
		model.ScheduledMeal{ID: "sm-b", Name: "Breakfast", Category: model.CategoryBreakfast, TimeOfDay: "08:00", Weekdays: []int{2}},
		model.ScheduledMeal{ID: "sm-l", Name: "Lunch", Category: model.CategoryLunch, TimeOfDay: "12:15", Weekdays: []int{2}},
	)

	got := UpcomingOccurrences(monday, []model.DietPlan{plan})
	require.Len(t, got, 3)
	assert.Equal(t, []string{"sm-b", "sm-l", "sm-d"}, []string{got[0].ScheduledMealID, got[1].ScheduledMealID, got[2].ScheduledMealID})
	assert.Equal(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local), got[0].At)
	assert.Equal(t, time.Date(2026, 3, 2, 19, 30, 0, 0, time.Local), got[2].At)
}

func TestUpcomingOccurrencesBadTimeOfDayFallsBackToMidnight(t *testing.T) {
	plan := activePlan(model.ScheduledMeal{ID: "sm-1", Name: "Oats", TimeOfDay: "not-a-time", Weekdays: []int{2}})
	got := UpcomingOccurrences(monday, []model.DietPlan{plan})
	require.Len(t, got, 1)
	assert.Equal(t, monday, got[0].At)
}
