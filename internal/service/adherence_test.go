package service_test

import (
	"math"
	"testing"
	"time"

	"github.com/arshanh/nutriplan-cli/internal/service"
)

func TestAdherenceCompletedWithinTolerance(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	planID := createActivePlan(t, sqldb, "Cut")
	addBreakfastWithTemplate(t, sqldb, planID, 300)

	mealID := logMealAt(t, sqldb, "Oatmeal", 345, testMonday)
	reminderID := singleReminderFor(t, sqldb, testMonday)

	achieved, deviation, err := service.CompleteReminder(sqldb, reminderID, mealID, testMonday)
	if err != nil {
		t.Fatalf("complete reminder: %v", err)
	}
	if !achieved {
		t.Fatalf("expected goal achieved at 15%% over, got deviation %v", deviation)
	}
	if math.Abs(deviation-0.15) > 1e-9 {
		t.Fatalf("expected deviation 0.15, got %v", deviation)
	}

	report, err := service.AdherenceForDate(sqldb, testMonday)
	if err != nil {
		t.Fatalf("adherence for date: %v", err)
	}
	if report.CompletionRate() != 1.0 {
		t.Fatalf("expected completion rate 1.0, got %v", report.CompletionRate())
	}
	if report.GoalAchievementRate() != 1.0 {
		t.Fatalf("expected goal achievement rate 1.0, got %v", report.GoalAchievementRate())
	}
	if !report.HasPerfectAdherence() {
		t.Fatalf("expected perfect adherence, got %+v", report)
	}
}

func TestAdherenceCompletedOverTolerance(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	planID := createActivePlan(t, sqldb, "Cut")
	addBreakfastWithTemplate(t, sqldb, planID, 300)

	mealID := logMealAt(t, sqldb, "Big breakfast", 375, testMonday)
	reminderID := singleReminderFor(t, sqldb, testMonday)

	achieved, deviation, err := service.CompleteReminder(sqldb, reminderID, mealID, testMonday)
	if err != nil {
		t.Fatalf("complete reminder: %v", err)
	}
	if achieved {
		t.Fatalf("expected goal missed at 25%% over")
	}
	if math.Abs(deviation-0.25) > 1e-9 {
		t.Fatalf("expected deviation 0.25, got %v", deviation)
	}

	report, err := service.AdherenceForDate(sqldb, testMonday)
	if err != nil {
		t.Fatalf("adherence for date: %v", err)
	}
	if len(report.CompletedMeals) != 1 {
		t.Fatalf("expected one completed meal, got %d", len(report.CompletedMeals))
	}
	if len(report.GoalMissedMeals) != 1 {
		t.Fatalf("expected one goal miss, got %d", len(report.GoalMissedMeals))
	}
	if report.GoalAchievementRate() != 0.0 {
		t.Fatalf("expected goal achievement rate 0.0, got %v", report.GoalAchievementRate())
	}
	if report.HasPerfectAdherence() {
		t.Fatalf("expected imperfect adherence")
	}
}

func TestAdherenceMissedMealWithOffDietSnack(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	planID := createActivePlan(t, sqldb, "Cut")
	addBreakfastWithTemplate(t, sqldb, planID, 300)

	// Reminder exists but is never completed; an unrelated snack is logged.
	singleReminderFor(t, sqldb, testMonday)
	logMealAt(t, sqldb, "Vending machine snack", 500, testMonday.Add(6*time.Hour))

	report, err := service.AdherenceForDate(sqldb, testMonday)
	if err != nil {
		t.Fatalf("adherence for date: %v", err)
	}
	if len(report.MissedMeals) != 1 {
		t.Fatalf("expected one missed meal, got %d", len(report.MissedMeals))
	}
	if len(report.OffDietMeals) != 1 {
		t.Fatalf("expected one off-diet meal, got %d", len(report.OffDietMeals))
	}
	if report.OffDietCalories != 500 {
		t.Fatalf("expected 500 off-diet calories, got %d", report.OffDietCalories)
	}
	if report.CompletionRate() != 0.0 {
		t.Fatalf("expected completion rate 0.0, got %v", report.CompletionRate())
	}
	if report.HasPerfectAdherence() {
		t.Fatalf("expected imperfect adherence")
	}
}

func TestAdherenceSurvivesDeletedScheduledMeal(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	planID := createActivePlan(t, sqldb, "Cut")
	scheduledID := addBreakfastWithTemplate(t, sqldb, planID, 300)

	mealID := logMealAt(t, sqldb, "Oatmeal", 300, testMonday)
	reminderID := singleReminderFor(t, sqldb, testMonday)
	if _, _, err := service.CompleteReminder(sqldb, reminderID, mealID, testMonday); err != nil {
		t.Fatalf("complete reminder: %v", err)
	}

	// Plan edited: the scheduled meal goes away. The reminder now dangles and
	// must contribute nothing, but the meal it names stays linked to it and
	// never becomes off-diet.
	if err := service.RemoveScheduledMeal(sqldb, scheduledID); err != nil {
		t.Fatalf("remove scheduled meal: %v", err)
	}

	report, err := service.AdherenceForDate(sqldb, testMonday)
	if err != nil {
		t.Fatalf("adherence for date: %v", err)
	}
	if len(report.ScheduledMeals) != 0 {
		t.Fatalf("expected empty schedule, got %d", len(report.ScheduledMeals))
	}
	if report.CompletionRate() != 1.0 {
		t.Fatalf("expected vacuous completion rate 1.0, got %v", report.CompletionRate())
	}
	if len(report.OffDietMeals) != 0 {
		t.Fatalf("completed meal should stay linked to its reminder, got %d off-diet", len(report.OffDietMeals))
	}
}

func TestAdherenceVacuousPerfection(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	report, err := service.AdherenceForDate(sqldb, testMonday)
	if err != nil {
		t.Fatalf("adherence for date: %v", err)
	}
	if !report.HasPerfectAdherence() {
		t.Fatalf("expected a day with no schedule and no meals to be trivially perfect")
	}
}
