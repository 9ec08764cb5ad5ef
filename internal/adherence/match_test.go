package adherence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arshanh/nutriplan-cli/internal/model"
)

func completedReminder(scheduledID, mealID string, date time.Time) model.MealReminder {
	return model.MealReminder{
		ID:              "rem-" + scheduledID,
		ScheduledMealID: scheduledID,
		ReminderDate:    date,
		WasCompleted:    true,
		CompletedMealID: mealID,
	}
}

func TestMatchDayPartitionsScheduledMeals(t *testing.T) {
	scheduled := []model.ScheduledMeal{
		{ID: "sm-1", Name: "Oats"},
		{ID: "sm-2", Name: "Salmon"},
		{ID: "sm-3", Name: "Snack"},
	}
	reminders := []model.MealReminder{
		completedReminder("sm-1", "meal-1", monday.Add(8*time.Hour)),
		{ID: "rem-sm-2", ScheduledMealID: "sm-2", ReminderDate: monday.Add(19 * time.Hour), WasCompleted: false},
	}
	meals := []model.Meal{{ID: "meal-1", Name: "Oats"}}

	got := MatchDay(monday, scheduled, reminders, meals)

	// Every scheduled occurrence classified exactly once.
	require.Len(t, got.Missed, 2)
	assert.True(t, got.Completed["sm-1"])
	for _, missed := range got.Missed {
		assert.False(t, got.Completed[missed.ID])
	}
	assert.Equal(t, len(scheduled), len(got.Completed)+len(got.Missed))
	assert.Equal(t, "meal-1", got.CompletedMealID["sm-1"])
	assert.Empty(t, got.OffDiet)
}

func TestMatchDayIgnoresRemindersFromOtherDates(t *testing.T) {
	scheduled := []model.ScheduledMeal{{ID: "sm-1"}}
	reminders := []model.MealReminder{
		completedReminder("sm-1", "meal-1", monday.AddDate(0, 0, -1)),
	}
	got := MatchDay(monday, scheduled, reminders, nil)
	assert.Empty(t, got.Completed)
	require.Len(t, got.Missed, 1)
}

func TestMatchDayOffDietMeals(t *testing.T) {
	scheduled := []model.ScheduledMeal{{ID: "sm-1"}}
	reminders := []model.MealReminder{completedReminder("sm-1", "meal-1", monday)}
	meals := []model.Meal{
		{ID: "meal-1", Name: "Oats"},
		{ID: "meal-2", Name: "Late snack", Items: []model.MealItem{{Calories: 500}}},
	}

	got := MatchDay(monday, scheduled, reminders, meals)
	require.Len(t, got.OffDiet, 1)
	assert.Equal(t, "meal-2", got.OffDiet[0].ID)
}

func TestMatchDayEmptySchedule(t *testing.T) {
	meals := []model.Meal{{ID: "meal-1"}, {ID: "meal-2"}}
	got := MatchDay(monday, nil, nil, meals)
	assert.Empty(t, got.Completed)
	assert.Empty(t, got.Missed)
	assert.Len(t, got.OffDiet, 2)
}
