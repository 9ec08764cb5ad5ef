package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/arshanh/nutriplan-cli/internal/db"
	"github.com/arshanh/nutriplan-cli/internal/service"
)

// 2026-03-02 is a Monday.
var testMonday = time.Date(2026, 3, 2, 7, 30, 0, 0, time.Local)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nutriplan.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func createActivePlan(t *testing.T, sqldb *sql.DB, name string) string {
	t.Helper()
	id, err := service.CreatePlan(sqldb, service.CreatePlanInput{Name: name, Activate: true})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}
	return id
}

// addBreakfastWithTemplate schedules a Monday breakfast carrying a template
// with the given expected calories.
func addBreakfastWithTemplate(t *testing.T, sqldb *sql.DB, planID string, calories int) string {
	t.Helper()
	id, err := service.AddScheduledMeal(sqldb, service.AddScheduledMealInput{
		PlanID:       planID,
		Name:         "Breakfast",
		Category:     "breakfast",
		TimeOfDay:    "08:00",
		Weekdays:     []int{2},
		TemplateName: "Standard breakfast",
		TemplateItems: []service.TemplateItemInput{
			{Name: "Oats", Portion: 80, Unit: "g", Calories: calories, ProteinG: 10, CarbsG: 54, FatG: 6},
		},
	})
	if err != nil {
		t.Fatalf("add scheduled meal: %v", err)
	}
	return id
}

func logMealAt(t *testing.T, sqldb *sql.DB, name string, calories int, at time.Time) string {
	t.Helper()
	id, err := service.LogMeal(sqldb, service.LogMealInput{
		Name:       name,
		ConsumedAt: at,
		Items: []service.MealItemInput{
			{Name: name, Portion: 1, Unit: "serving", Calories: calories, ProteinG: 10, CarbsG: 20, FatG: 5},
		},
	})
	if err != nil {
		t.Fatalf("log meal %s: %v", name, err)
	}
	return id
}

func singleReminderFor(t *testing.T, sqldb *sql.DB, date time.Time) string {
	t.Helper()
	if _, err := service.EnsureRemindersForDate(sqldb, date); err != nil {
		t.Fatalf("ensure reminders: %v", err)
	}
	reminders, err := service.RemindersForDate(sqldb, date)
	if err != nil {
		t.Fatalf("reminders for date: %v", err)
	}
	if len(reminders) != 1 {
		t.Fatalf("expected exactly one reminder, got %d", len(reminders))
	}
	return reminders[0].ID
}
