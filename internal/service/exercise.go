package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arshanh/nutriplan-cli/internal/model"
)

type LogExerciseInput struct {
	CaloriesBurned int
	DurationMin    *int
	Date           time.Time
	Notes          string
}

// LogExercise records an exercise for the date's calendar day and refreshes
// the burned-calories cache when the exercise lands on today.
func LogExercise(db *sql.DB, in LogExerciseInput, now time.Time) (string, error) {
	if in.CaloriesBurned <= 0 {
		return "", fmt.Errorf("calories burned must be > 0")
	}
	if in.DurationMin != nil && *in.DurationMin <= 0 {
		return "", fmt.Errorf("duration must be > 0")
	}
	day := model.DayKey(in.Date)
	id := uuid.NewString()
	var duration any
	if in.DurationMin != nil {
		duration = *in.DurationMin
	}
	if _, err := db.Exec(`
INSERT INTO exercise_records(id, calories_burned, duration_min, day, notes)
VALUES(?, ?, ?, ?, ?)
`, id, in.CaloriesBurned, duration, day, strings.TrimSpace(in.Notes)); err != nil {
		return "", fmt.Errorf("log exercise: %w", err)
	}
	if day == model.DayKey(now) {
		if _, err := RefreshBurnedCalories(db, now); err != nil {
			return "", err
		}
	}
	return id, nil
}

func DeleteExercise(db *sql.DB, exerciseID string, now time.Time) error {
	var day string
	err := db.QueryRow(`SELECT day FROM exercise_records WHERE id = ?`, exerciseID).Scan(&day)
	if err == sql.ErrNoRows {
		return fmt.Errorf("exercise %s does not exist", exerciseID)
	}
	if err != nil {
		return fmt.Errorf("get exercise %s: %w", exerciseID, err)
	}
	if _, err := db.Exec(`DELETE FROM exercise_records WHERE id = ?`, exerciseID); err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	if day == model.DayKey(now) {
		if _, err := RefreshBurnedCalories(db, now); err != nil {
			return err
		}
	}
	return nil
}

func ListExercises(db *sql.DB, date time.Time) ([]model.ExerciseRecord, error) {
	rows, err := db.Query(`
SELECT id, calories_burned, duration_min, day, IFNULL(notes, ''), created_at
FROM exercise_records WHERE day = ? ORDER BY created_at ASC
`, model.DayKey(date))
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer rows.Close()

	records := make([]model.ExerciseRecord, 0)
	for rows.Next() {
		var r model.ExerciseRecord
		var duration sql.NullInt64
		if err := rows.Scan(&r.ID, &r.CaloriesBurned, &duration, &r.Day, &r.Notes, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		if duration.Valid {
			v := int(duration.Int64)
			r.DurationMin = &v
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercises: %w", err)
	}
	return records, nil
}

// BurnedCaloriesForDay sums the day's exercise calories from the records.
func BurnedCaloriesForDay(db *sql.DB, date time.Time) (int, error) {
	var total int
	if err := db.QueryRow(`SELECT IFNULL(SUM(calories_burned), 0) FROM exercise_records WHERE day = ?`, model.DayKey(date)).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum burned calories: %w", err)
	}
	return total, nil
}

func CountExercises(db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(1) FROM exercise_records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count exercises: %w", err)
	}
	return count, nil
}
