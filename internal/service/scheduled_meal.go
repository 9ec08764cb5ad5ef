package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/arshanh/nutriplan-cli/internal/model"
)

type TemplateItemInput struct {
	Name     string
	Portion  float64
	Unit     string
	Calories int
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

type AddScheduledMealInput struct {
	PlanID        string
	Name          string
	Category      string
	TimeOfDay     string
	Weekdays      []int
	TemplateName  string
	TemplateItems []TemplateItemInput
}

// AddScheduledMeal appends a scheduled meal (and its optional nutrition
// template) to a plan.
func AddScheduledMeal(db *sql.DB, in AddScheduledMealInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", fmt.Errorf("scheduled meal name is required")
	}
	category, err := validateCategory(in.Category)
	if err != nil {
		return "", err
	}
	if category == "" {
		return "", fmt.Errorf("scheduled meal category is required")
	}
	timeOfDay, err := validateTimeOfDay(in.TimeOfDay)
	if err != nil {
		return "", err
	}
	weekdays, err := encodeWeekdays(in.Weekdays)
	if err != nil {
		return "", err
	}
	templateName := strings.TrimSpace(in.TemplateName)
	if templateName == "" && len(in.TemplateItems) > 0 {
		return "", fmt.Errorf("template items require a template name")
	}
	for _, item := range in.TemplateItems {
		if strings.TrimSpace(item.Name) == "" {
			return "", fmt.Errorf("template item name is required")
		}
		if item.Portion <= 0 {
			return "", fmt.Errorf("template item portion must be > 0")
		}
		if err := validateNonNegativeInt("template item calories", item.Calories); err != nil {
			return "", err
		}
	}

	plan, err := GetPlan(db, in.PlanID)
	if err != nil {
		return "", err
	}
	if plan == nil {
		return "", fmt.Errorf("plan %s does not exist", in.PlanID)
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin add scheduled meal: %w", err)
	}
	id := uuid.NewString()
	var storedTemplate any
	if templateName != "" {
		storedTemplate = templateName
	}
	if _, err := tx.Exec(`
INSERT INTO scheduled_meals(id, plan_id, name, category, time_of_day, weekdays, template_name, position)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, id, in.PlanID, name, category, timeOfDay, weekdays, storedTemplate, len(plan.ScheduledMeals)); err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("add scheduled meal: %w", err)
	}
	for pos, item := range in.TemplateItems {
		if _, err := tx.Exec(`
INSERT INTO template_items(id, scheduled_meal_id, position, name, portion, unit, calories, protein_g, carbs_g, fat_g)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, uuid.NewString(), id, pos, strings.TrimSpace(item.Name), item.Portion, strings.TrimSpace(item.Unit), item.Calories, item.ProteinG, item.CarbsG, item.FatG); err != nil {
			_ = tx.Rollback()
			return "", fmt.Errorf("add template item: %w", err)
		}
	}
	if _, err := tx.Exec(`UPDATE diet_plans SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, in.PlanID); err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("touch plan: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit add scheduled meal: %w", err)
	}
	return id, nil
}

// RemoveScheduledMeal deletes the scheduled meal and cascades its template
// items. Reminders referencing it become dangling, which the adherence
// engine treats as contributing nothing.
func RemoveScheduledMeal(db *sql.DB, scheduledMealID string) error {
	res, err := db.Exec(`DELETE FROM scheduled_meals WHERE id = ?`, scheduledMealID)
	if err != nil {
		return fmt.Errorf("remove scheduled meal: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove scheduled meal result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("scheduled meal %s does not exist", scheduledMealID)
	}
	return nil
}

// GetScheduledMeal loads one scheduled meal with template items, or nil when
// it does not exist.
func GetScheduledMeal(db *sql.DB, scheduledMealID string) (*model.ScheduledMeal, error) {
	var sm model.ScheduledMeal
	var weekdays string
	err := db.QueryRow(`
SELECT id, plan_id, name, category, time_of_day, weekdays, IFNULL(template_name, ''), position
FROM scheduled_meals WHERE id = ?
`, scheduledMealID).Scan(&sm.ID, &sm.PlanID, &sm.Name, &sm.Category, &sm.TimeOfDay, &weekdays, &sm.TemplateName, &sm.Position)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get scheduled meal %s: %w", scheduledMealID, err)
	}
	sm.Weekdays = decodeWeekdays(weekdays)

	rows, err := db.Query(`
SELECT id, scheduled_meal_id, position, name, portion, unit, calories, protein_g, carbs_g, fat_g
FROM template_items WHERE scheduled_meal_id = ? ORDER BY position ASC
`, scheduledMealID)
	if err != nil {
		return nil, fmt.Errorf("query template items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item model.TemplateItem
		if err := rows.Scan(&item.ID, &item.ScheduledMealID, &item.Position, &item.Name, &item.Portion, &item.Unit, &item.Calories, &item.ProteinG, &item.CarbsG, &item.FatG); err != nil {
			return nil, fmt.Errorf("scan template item: %w", err)
		}
		sm.TemplateItems = append(sm.TemplateItems, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate template items: %w", err)
	}
	return &sm, nil
}
