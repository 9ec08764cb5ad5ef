package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/arshanh/nutriplan-cli/internal/model"
)

// applyDaySummaryDelta incrementally adjusts the day's aggregate row inside
// the caller's transaction. Rows that drop to zero meals are removed rather
// than kept as all-zero noise.
func applyDaySummaryDelta(tx *sql.Tx, day string, calories int, proteinG, carbsG, fatG float64, mealDelta int) error {
	if _, err := tx.Exec(`
INSERT INTO day_summaries(day, calories, protein_g, carbs_g, fat_g, meal_count)
VALUES(?, ?, ?, ?, ?, ?)
ON CONFLICT(day) DO UPDATE SET
  calories = calories + excluded.calories,
  protein_g = protein_g + excluded.protein_g,
  carbs_g = carbs_g + excluded.carbs_g,
  fat_g = fat_g + excluded.fat_g,
  meal_count = meal_count + excluded.meal_count
`, day, calories, proteinG, carbsG, fatG, mealDelta); err != nil {
		return fmt.Errorf("apply day summary delta for %s: %w", day, err)
	}
	if _, err := tx.Exec(`DELETE FROM day_summaries WHERE day = ? AND meal_count <= 0`, day); err != nil {
		return fmt.Errorf("prune empty day summary for %s: %w", day, err)
	}
	return nil
}

// DaySummaryFor returns the day's aggregate, or nil when nothing was logged.
func DaySummaryFor(db *sql.DB, date time.Time) (*model.DaySummary, error) {
	var s model.DaySummary
	err := db.QueryRow(`
SELECT day, calories, protein_g, carbs_g, fat_g, meal_count
FROM day_summaries WHERE day = ?
`, model.DayKey(date)).Scan(&s.Day, &s.Calories, &s.ProteinG, &s.CarbsG, &s.FatG, &s.MealCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("day summary for %s: %w", model.DayKey(date), err)
	}
	return &s, nil
}

// TrailingDaySummaries returns summaries for the `days` calendar days ending
// with (and including) the given date, oldest first, with zero summaries
// filling unlogged days.
func TrailingDaySummaries(db *sql.DB, date time.Time, days int) ([]model.DaySummary, error) {
	start := model.BeginningOfDay(date).AddDate(0, 0, -(days - 1))
	rows, err := db.Query(`
SELECT day, calories, protein_g, carbs_g, fat_g, meal_count
FROM day_summaries
WHERE day >= ? AND day <= ?
`, model.DayKey(start), model.DayKey(date))
	if err != nil {
		return nil, fmt.Errorf("query trailing day summaries: %w", err)
	}
	defer rows.Close()

	byDay := make(map[string]model.DaySummary)
	for rows.Next() {
		var s model.DaySummary
		if err := rows.Scan(&s.Day, &s.Calories, &s.ProteinG, &s.CarbsG, &s.FatG, &s.MealCount); err != nil {
			return nil, fmt.Errorf("scan day summary: %w", err)
		}
		byDay[s.Day] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate day summaries: %w", err)
	}

	out := make([]model.DaySummary, 0, days)
	for i := 0; i < days; i++ {
		day := model.DayKey(start.AddDate(0, 0, i))
		if s, ok := byDay[day]; ok {
			out = append(out, s)
		} else {
			out = append(out, model.DaySummary{Day: day})
		}
	}
	return out, nil
}

// RebuildDaySummary recomputes one day's aggregate from its meals, replacing
// whatever the incremental deltas left behind. Used by doctor --fix.
func RebuildDaySummary(db *sql.DB, date time.Time) error {
	meals, err := MealsForDay(db, date)
	if err != nil {
		return err
	}
	day := model.DayKey(date)
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin rebuild day summary: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM day_summaries WHERE day = ?`, day); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear day summary for %s: %w", day, err)
	}
	if len(meals) > 0 {
		calories := 0
		var proteinG, carbsG, fatG float64
		for _, m := range meals {
			calories += m.TotalCalories()
			p, c, f := m.Totals()
			proteinG += p
			carbsG += c
			fatG += f
		}
		if _, err := tx.Exec(`
INSERT INTO day_summaries(day, calories, protein_g, carbs_g, fat_g, meal_count)
VALUES(?, ?, ?, ?, ?, ?)
`, day, calories, proteinG, carbsG, fatG, len(meals)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("rebuild day summary for %s: %w", day, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rebuild day summary: %w", err)
	}
	return nil
}
