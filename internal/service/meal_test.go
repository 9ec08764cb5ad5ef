package service_test

import (
	"testing"

	"github.com/arshanh/nutriplan-cli/internal/service"
)

func TestLogMealUpdatesDaySummary(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	logMealAt(t, sqldb, "Oatmeal", 300, testMonday)
	logMealAt(t, sqldb, "Chicken salad", 450, testMonday)

	summary, err := service.DaySummaryFor(sqldb, testMonday)
	if err != nil {
		t.Fatalf("day summary: %v", err)
	}
	if summary == nil {
		t.Fatalf("expected a summary row")
	}
	if summary.Calories != 750 {
		t.Fatalf("expected 750 calories, got %d", summary.Calories)
	}
	if summary.MealCount != 2 {
		t.Fatalf("expected 2 meals, got %d", summary.MealCount)
	}
}

func TestDeleteMealReversesDaySummary(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	keepID := logMealAt(t, sqldb, "Oatmeal", 300, testMonday)
	dropID := logMealAt(t, sqldb, "Chicken salad", 450, testMonday)

	if err := service.DeleteMeal(sqldb, dropID); err != nil {
		t.Fatalf("delete meal: %v", err)
	}
	summary, err := service.DaySummaryFor(sqldb, testMonday)
	if err != nil {
		t.Fatalf("day summary: %v", err)
	}
	if summary == nil || summary.Calories != 300 || summary.MealCount != 1 {
		t.Fatalf("expected 300 kcal / 1 meal after delete, got %+v", summary)
	}

	// Deleting the last meal prunes the row entirely.
	if err := service.DeleteMeal(sqldb, keepID); err != nil {
		t.Fatalf("delete last meal: %v", err)
	}
	summary, err = service.DaySummaryFor(sqldb, testMonday)
	if err != nil {
		t.Fatalf("day summary after prune: %v", err)
	}
	if summary != nil {
		t.Fatalf("expected no summary row, got %+v", summary)
	}
}

func TestLogMealRejectsBadInput(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	cases := []struct {
		name string
		in   service.LogMealInput
	}{
		{"empty name", service.LogMealInput{ConsumedAt: testMonday, Items: []service.MealItemInput{{Name: "Oats", Portion: 80, Unit: "g", Calories: 300}}}},
		{"no items", service.LogMealInput{Name: "Oatmeal", ConsumedAt: testMonday}},
		{"bad category", service.LogMealInput{Name: "Oatmeal", Category: "brunch", ConsumedAt: testMonday, Items: []service.MealItemInput{{Name: "Oats", Portion: 80, Unit: "g", Calories: 300}}}},
		{"zero portion", service.LogMealInput{Name: "Oatmeal", ConsumedAt: testMonday, Items: []service.MealItemInput{{Name: "Oats", Portion: 0, Unit: "g", Calories: 300}}}},
		{"negative calories", service.LogMealInput{Name: "Oatmeal", ConsumedAt: testMonday, Items: []service.MealItemInput{{Name: "Oats", Portion: 80, Unit: "g", Calories: -1}}}},
	}
	for _, tc := range cases {
		if _, err := service.LogMeal(sqldb, tc.in); err == nil {
			t.Fatalf("%s: expected an error", tc.name)
		}
	}
}

func TestMealsForDayExcludesNeighboringDays(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	logMealAt(t, sqldb, "Sunday dinner", 600, testMonday.AddDate(0, 0, -1))
	logMealAt(t, sqldb, "Oatmeal", 300, testMonday)
	logMealAt(t, sqldb, "Tuesday lunch", 500, testMonday.AddDate(0, 0, 1))

	meals, err := service.MealsForDay(sqldb, testMonday)
	if err != nil {
		t.Fatalf("meals for day: %v", err)
	}
	if len(meals) != 1 {
		t.Fatalf("expected one meal, got %d", len(meals))
	}
	if meals[0].Name != "Oatmeal" {
		t.Fatalf("expected Oatmeal, got %s", meals[0].Name)
	}
	if len(meals[0].Items) != 1 {
		t.Fatalf("expected items to load, got %d", len(meals[0].Items))
	}
}
