package service_test

import (
	"testing"

	"github.com/arshanh/nutriplan-cli/internal/achievement"
	"github.com/arshanh/nutriplan-cli/internal/service"
)

func TestCheckAchievementsFirstMeal(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	logMealAt(t, sqldb, "Oatmeal", 300, testMonday)

	milestones, err := service.CheckAchievements(sqldb, testMonday)
	if err != nil {
		t.Fatalf("check achievements: %v", err)
	}
	if !containsCode(milestones, achievement.CodeFirstMeal) {
		t.Fatalf("expected %s, got %+v", achievement.CodeFirstMeal, milestones)
	}

	// A second run reports nothing new.
	milestones, err = service.CheckAchievements(sqldb, testMonday)
	if err != nil {
		t.Fatalf("recheck achievements: %v", err)
	}
	if len(milestones) != 0 {
		t.Fatalf("expected no repeat awards, got %+v", milestones)
	}

	earned, err := service.ListAchievements(sqldb)
	if err != nil {
		t.Fatalf("list achievements: %v", err)
	}
	if len(earned) != 1 || earned[0].Code != achievement.CodeFirstMeal {
		t.Fatalf("expected one persisted achievement, got %+v", earned)
	}
}

func TestCheckAchievementsCalorieTargetDay(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if err := service.SetGoal(sqldb, service.SetGoalInput{Calories: 2000, EffectiveDate: "2026-03-01"}); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	logMealAt(t, sqldb, "Day of food", 1980, testMonday)

	milestones, err := service.CheckAchievements(sqldb, testMonday)
	if err != nil {
		t.Fatalf("check achievements: %v", err)
	}
	if !containsCode(milestones, achievement.CodeCalorieTarget) {
		t.Fatalf("expected %s within the target band, got %+v", achievement.CodeCalorieTarget, milestones)
	}
}

func TestCheckAchievementsWeekStreak(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	for i := 6; i >= 0; i-- {
		logMealAt(t, sqldb, "Daily meal", 600, testMonday.AddDate(0, 0, -i))
	}

	milestones, err := service.CheckAchievements(sqldb, testMonday)
	if err != nil {
		t.Fatalf("check achievements: %v", err)
	}
	if !containsCode(milestones, achievement.CodeWeekStreak) {
		t.Fatalf("expected %s after 7 logged days, got %+v", achievement.CodeWeekStreak, milestones)
	}
}

func TestCheckAchievementsFirstExercise(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if _, err := service.LogExercise(sqldb, service.LogExerciseInput{CaloriesBurned: 250, Date: testMonday}, testMonday); err != nil {
		t.Fatalf("log exercise: %v", err)
	}

	milestones, err := service.CheckAchievements(sqldb, testMonday)
	if err != nil {
		t.Fatalf("check achievements: %v", err)
	}
	if !containsCode(milestones, achievement.CodeFirstExercise) {
		t.Fatalf("expected %s, got %+v", achievement.CodeFirstExercise, milestones)
	}
}

func containsCode(milestones []achievement.Milestone, code string) bool {
	for _, m := range milestones {
		if m.Code == code {
			return true
		}
	}
	return false
}
