package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arshanh/nutriplan-cli/internal/adherence"
	"github.com/arshanh/nutriplan-cli/internal/model"
)

// EnsureRemindersForDate materializes the date's scheduled occurrences into
// reminder rows, skipping occurrences that already have one. It returns the
// full planned list for the external scheduler.
func EnsureRemindersForDate(db *sql.DB, date time.Time) ([]adherence.PlannedOccurrence, error) {
	plans, err := ActivePlans(db)
	if err != nil {
		return nil, err
	}
	planned := adherence.UpcomingOccurrences(date, plans)

	existing, err := RemindersForDate(db, date)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(existing))
	for _, r := range existing {
		have[r.ScheduledMealID] = true
	}

	for _, occ := range planned {
		if have[occ.ScheduledMealID] {
			continue
		}
		if _, err := db.Exec(`
INSERT INTO meal_reminders(id, scheduled_meal_id, reminder_date, was_completed)
VALUES(?, ?, ?, 0)
`, uuid.NewString(), occ.ScheduledMealID, occ.At.Format(time.RFC3339)); err != nil {
			return nil, fmt.Errorf("create reminder for %s: %w", occ.ScheduledMealID, err)
		}
	}
	return planned, nil
}

// RemindersForDate loads every reminder whose fire time falls on the date's
// calendar day.
func RemindersForDate(db *sql.DB, date time.Time) ([]model.MealReminder, error) {
	start, end := dayBounds(date)
	rows, err := db.Query(`
SELECT id, scheduled_meal_id, reminder_date, was_completed, IFNULL(completed_meal_id, ''), completed_at, goal_achieved, goal_deviation
FROM meal_reminders
WHERE reminder_date >= ? AND reminder_date < ?
ORDER BY reminder_date ASC
`, start.Format(time.RFC3339), end.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("query reminders for day: %w", err)
	}
	defer rows.Close()

	reminders := make([]model.MealReminder, 0)
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reminders: %w", err)
	}
	return reminders, nil
}

// GetReminder loads one reminder, or nil when it does not exist.
func GetReminder(db *sql.DB, reminderID string) (*model.MealReminder, error) {
	row := db.QueryRow(`
SELECT id, scheduled_meal_id, reminder_date, was_completed, IFNULL(completed_meal_id, ''), completed_at, goal_achieved, goal_deviation
FROM meal_reminders WHERE id = ?
`, reminderID)
	r, err := scanReminder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reminder %s: %w", reminderID, err)
	}
	return &r, nil
}

// CompleteReminder marks a reminder satisfied by the given logged meal and
// persists the goal evaluation computed at that moment. A reminder is
// write-once: completing it twice is an error.
func CompleteReminder(db *sql.DB, reminderID, mealID string, now time.Time) (achieved bool, deviation float64, err error) {
	reminder, err := GetReminder(db, reminderID)
	if err != nil {
		return false, 0, err
	}
	if reminder == nil {
		return false, 0, fmt.Errorf("reminder %s does not exist", reminderID)
	}
	if reminder.WasCompleted {
		return false, 0, fmt.Errorf("reminder %s is already completed", reminderID)
	}
	meal, err := GetMeal(db, mealID)
	if err != nil {
		return false, 0, err
	}
	if meal == nil {
		return false, 0, fmt.Errorf("meal %s does not exist", mealID)
	}

	// A dangling scheduled-meal reference still completes; without a template
	// the goal is trivially achieved.
	scheduled, err := GetScheduledMeal(db, reminder.ScheduledMealID)
	if err != nil {
		return false, 0, err
	}
	if scheduled != nil {
		achieved, deviation = adherence.EvaluateGoal(*meal, *scheduled)
	} else {
		achieved, deviation = true, 0
	}

	if _, err := db.Exec(`
UPDATE meal_reminders
SET was_completed = 1, completed_meal_id = ?, completed_at = ?, goal_achieved = ?, goal_deviation = ?
WHERE id = ?
`, mealID, now.Format(time.RFC3339), achieved, deviation, reminderID); err != nil {
		return false, 0, fmt.Errorf("complete reminder %s: %w", reminderID, err)
	}
	return achieved, deviation, nil
}

type reminderScanner interface {
	Scan(dest ...any) error
}

func scanReminder(row reminderScanner) (model.MealReminder, error) {
	var r model.MealReminder
	var reminderDate string
	var completedAt sql.NullString
	var goalAchieved sql.NullBool
	var goalDeviation sql.NullFloat64
	if err := row.Scan(&r.ID, &r.ScheduledMealID, &reminderDate, &r.WasCompleted, &r.CompletedMealID, &completedAt, &goalAchieved, &goalDeviation); err != nil {
		if err == sql.ErrNoRows {
			return r, err
		}
		return r, fmt.Errorf("scan reminder: %w", err)
	}
	var err error
	if r.ReminderDate, err = parseStoredTime(reminderDate); err != nil {
		return r, fmt.Errorf("parse reminder timestamp: %w", err)
	}
	if completedAt.Valid {
		t, err := parseStoredTime(completedAt.String)
		if err != nil {
			return r, fmt.Errorf("parse reminder completion timestamp: %w", err)
		}
		r.CompletedAt = &t
	}
	if goalAchieved.Valid {
		v := goalAchieved.Bool
		r.GoalAchieved = &v
	}
	if goalDeviation.Valid {
		v := goalDeviation.Float64
		r.GoalDeviation = &v
	}
	return r, nil
}
