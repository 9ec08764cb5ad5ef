package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arshanh/nutriplan-cli/internal/model"
)

type MealItemInput struct {
	Name     string
	Portion  float64
	Unit     string
	Calories int
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

type LogMealInput struct {
	Name       string
	Category   string
	ConsumedAt time.Time
	Notes      string
	Items      []MealItemInput
}

// LogMeal records a meal with its items and applies the day-summary delta for
// the meal's calendar day in the same transaction.
func LogMeal(db *sql.DB, in LogMealInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", fmt.Errorf("meal name is required")
	}
	category, err := validateCategory(in.Category)
	if err != nil {
		return "", err
	}
	if len(in.Items) == 0 {
		return "", fmt.Errorf("a meal needs at least one item")
	}
	totalCalories := 0
	var totalProtein, totalCarbs, totalFat float64
	for _, item := range in.Items {
		if strings.TrimSpace(item.Name) == "" {
			return "", fmt.Errorf("meal item name is required")
		}
		if item.Portion <= 0 {
			return "", fmt.Errorf("meal item portion must be > 0")
		}
		if err := validateNonNegativeInt("calories", item.Calories); err != nil {
			return "", err
		}
		if err := validateNonNegativeFloat("protein", item.ProteinG); err != nil {
			return "", err
		}
		if err := validateNonNegativeFloat("carbs", item.CarbsG); err != nil {
			return "", err
		}
		if err := validateNonNegativeFloat("fat", item.FatG); err != nil {
			return "", err
		}
		totalCalories += item.Calories
		totalProtein += item.ProteinG
		totalCarbs += item.CarbsG
		totalFat += item.FatG
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin log meal: %w", err)
	}
	id := uuid.NewString()
	var storedCategory any
	if category != "" {
		storedCategory = category
	}
	if _, err := tx.Exec(`
INSERT INTO meals(id, name, category, consumed_at, notes)
VALUES(?, ?, ?, ?, ?)
`, id, name, storedCategory, in.ConsumedAt.Format(time.RFC3339), strings.TrimSpace(in.Notes)); err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("log meal: %w", err)
	}
	for pos, item := range in.Items {
		if _, err := tx.Exec(`
INSERT INTO meal_items(id, meal_id, position, name, portion, unit, calories, protein_g, carbs_g, fat_g)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, uuid.NewString(), id, pos, strings.TrimSpace(item.Name), item.Portion, strings.TrimSpace(item.Unit), item.Calories, item.ProteinG, item.CarbsG, item.FatG); err != nil {
			_ = tx.Rollback()
			return "", fmt.Errorf("log meal item: %w", err)
		}
	}
	if err := applyDaySummaryDelta(tx, model.DayKey(in.ConsumedAt), totalCalories, totalProtein, totalCarbs, totalFat, 1); err != nil {
		_ = tx.Rollback()
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit log meal: %w", err)
	}
	return id, nil
}

// DeleteMeal removes the meal and its items (cascade) and reverses its
// day-summary contribution.
func DeleteMeal(db *sql.DB, mealID string) error {
	meal, err := GetMeal(db, mealID)
	if err != nil {
		return err
	}
	if meal == nil {
		return fmt.Errorf("meal %s does not exist", mealID)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete meal: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM meals WHERE id = ?`, mealID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete meal: %w", err)
	}
	proteinG, carbsG, fatG := meal.Totals()
	if err := applyDaySummaryDelta(tx, model.DayKey(meal.ConsumedAt), -meal.TotalCalories(), -proteinG, -carbsG, -fatG, -1); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete meal: %w", err)
	}
	return nil
}

// GetMeal loads one meal with its items, or nil when it does not exist.
func GetMeal(db *sql.DB, mealID string) (*model.Meal, error) {
	var m model.Meal
	var category sql.NullString
	var consumedAt string
	err := db.QueryRow(`
SELECT id, name, category, consumed_at, IFNULL(notes, ''), created_at
FROM meals WHERE id = ?
`, mealID).Scan(&m.ID, &m.Name, &category, &consumedAt, &m.Notes, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get meal %s: %w", mealID, err)
	}
	m.Category = category.String
	m.ConsumedAt, err = parseStoredTime(consumedAt)
	if err != nil {
		return nil, fmt.Errorf("parse meal timestamp: %w", err)
	}
	items, err := mealItems(db, []string{m.ID})
	if err != nil {
		return nil, err
	}
	m.Items = items[m.ID]
	return &m, nil
}

// MealsForDay loads every meal consumed on the date's calendar day, items
// included, ordered by consumption time.
func MealsForDay(db *sql.DB, date time.Time) ([]model.Meal, error) {
	start, end := dayBounds(date)
	rows, err := db.Query(`
SELECT id, name, category, consumed_at, IFNULL(notes, ''), created_at
FROM meals
WHERE consumed_at >= ? AND consumed_at < ?
ORDER BY consumed_at ASC
`, start.Format(time.RFC3339), end.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("query meals for day: %w", err)
	}
	defer rows.Close()

	meals := make([]model.Meal, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var m model.Meal
		var category sql.NullString
		var consumedAt string
		if err := rows.Scan(&m.ID, &m.Name, &category, &consumedAt, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		m.Category = category.String
		if m.ConsumedAt, err = parseStoredTime(consumedAt); err != nil {
			return nil, fmt.Errorf("parse meal timestamp: %w", err)
		}
		meals = append(meals, m)
		ids = append(ids, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meals: %w", err)
	}
	if len(meals) == 0 {
		return meals, nil
	}

	items, err := mealItems(db, ids)
	if err != nil {
		return nil, err
	}
	for i := range meals {
		meals[i].Items = items[meals[i].ID]
	}
	return meals, nil
}

func CountMeals(db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(1) FROM meals`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count meals: %w", err)
	}
	return count, nil
}

func mealItems(db *sql.DB, mealIDs []string) (map[string][]model.MealItem, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(mealIDs)), ",")
	args := make([]any, len(mealIDs))
	for i, id := range mealIDs {
		args[i] = id
	}
	rows, err := db.Query(`
SELECT id, meal_id, position, name, portion, unit, calories, protein_g, carbs_g, fat_g
FROM meal_items
WHERE meal_id IN (`+placeholders+`)
ORDER BY meal_id, position ASC
`, args...)
	if err != nil {
		return nil, fmt.Errorf("query meal items: %w", err)
	}
	defer rows.Close()

	byMeal := make(map[string][]model.MealItem)
	for rows.Next() {
		var item model.MealItem
		if err := rows.Scan(&item.ID, &item.MealID, &item.Position, &item.Name, &item.Portion, &item.Unit, &item.Calories, &item.ProteinG, &item.CarbsG, &item.FatG); err != nil {
			return nil, fmt.Errorf("scan meal item: %w", err)
		}
		byMeal[item.MealID] = append(byMeal[item.MealID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal items: %w", err)
	}
	return byMeal, nil
}

func parseStoredTime(value string) (time.Time, error) {
	if t, err := time.ParseInLocation(time.RFC3339, value, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04:05", value, time.Local)
}
