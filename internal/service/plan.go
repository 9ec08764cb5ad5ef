package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/arshanh/nutriplan-cli/internal/model"
)

type CreatePlanInput struct {
	Name     string
	Activate bool
}

// CreatePlan creates a diet plan. When Activate is set, every other plan is
// deactivated first: switching plans deactivates, never deletes.
func CreatePlan(db *sql.DB, in CreatePlanInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", fmt.Errorf("plan name is required")
	}
	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin create plan: %w", err)
	}
	if in.Activate {
		if _, err := tx.Exec(`UPDATE diet_plans SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE is_active = 1`); err != nil {
			_ = tx.Rollback()
			return "", fmt.Errorf("deactivate current plans: %w", err)
		}
	}
	id := uuid.NewString()
	active := 0
	if in.Activate {
		active = 1
	}
	if _, err := tx.Exec(`INSERT INTO diet_plans(id, name, is_active) VALUES(?, ?, ?)`, id, name, active); err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("create plan: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit create plan: %w", err)
	}
	return id, nil
}

// ActivatePlan makes the given plan the active one and deactivates the rest.
func ActivatePlan(db *sql.DB, planID string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin activate plan: %w", err)
	}
	res, err := tx.Exec(`UPDATE diet_plans SET is_active = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, planID)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("activate plan: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("activate plan result: %w", err)
	}
	if affected == 0 {
		_ = tx.Rollback()
		return fmt.Errorf("plan %s does not exist", planID)
	}
	if _, err := tx.Exec(`UPDATE diet_plans SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE id != ? AND is_active = 1`, planID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("deactivate other plans: %w", err)
	}
	return tx.Commit()
}

func DeactivatePlan(db *sql.DB, planID string) error {
	res, err := db.Exec(`UPDATE diet_plans SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, planID)
	if err != nil {
		return fmt.Errorf("deactivate plan: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivate plan result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("plan %s does not exist", planID)
	}
	return nil
}

func ListPlans(db *sql.DB) ([]model.DietPlan, error) {
	rows, err := db.Query(`SELECT id, name, is_active, created_at, updated_at FROM diet_plans ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	plans := make([]model.DietPlan, 0)
	for rows.Next() {
		var p model.DietPlan
		if err := rows.Scan(&p.ID, &p.Name, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plans: %w", err)
	}
	return plans, nil
}

// GetPlan loads one plan with its scheduled meals and template items.
// Returns nil when the plan does not exist.
func GetPlan(db *sql.DB, planID string) (*model.DietPlan, error) {
	var p model.DietPlan
	err := db.QueryRow(`SELECT id, name, is_active, created_at, updated_at FROM diet_plans WHERE id = ?`, planID).
		Scan(&p.ID, &p.Name, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get plan %s: %w", planID, err)
	}
	meals, err := scheduledMealsForPlans(db, []string{p.ID})
	if err != nil {
		return nil, err
	}
	p.ScheduledMeals = meals[p.ID]
	return &p, nil
}

// ActivePlans loads every active plan fully populated. The engine tolerates
// multiple active plans even though normal usage keeps at most one.
func ActivePlans(db *sql.DB) ([]model.DietPlan, error) {
	rows, err := db.Query(`SELECT id, name, is_active, created_at, updated_at FROM diet_plans WHERE is_active = 1 ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list active plans: %w", err)
	}
	defer rows.Close()

	plans := make([]model.DietPlan, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var p model.DietPlan
		if err := rows.Scan(&p.ID, &p.Name, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan active plan: %w", err)
		}
		plans = append(plans, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate active plans: %w", err)
	}
	if len(plans) == 0 {
		return plans, nil
	}

	mealsByPlan, err := scheduledMealsForPlans(db, ids)
	if err != nil {
		return nil, err
	}
	for i := range plans {
		plans[i].ScheduledMeals = mealsByPlan[plans[i].ID]
	}
	return plans, nil
}

func scheduledMealsForPlans(db *sql.DB, planIDs []string) (map[string][]model.ScheduledMeal, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(planIDs)), ",")
	args := make([]any, len(planIDs))
	for i, id := range planIDs {
		args[i] = id
	}
	rows, err := db.Query(`
SELECT id, plan_id, name, category, time_of_day, weekdays, IFNULL(template_name, ''), position
FROM scheduled_meals
WHERE plan_id IN (`+placeholders+`)
ORDER BY plan_id, position ASC
`, args...)
	if err != nil {
		return nil, fmt.Errorf("query scheduled meals: %w", err)
	}
	defer rows.Close()

	byPlan := make(map[string][]model.ScheduledMeal)
	mealIndex := make(map[string]int)
	order := make([]string, 0)
	for rows.Next() {
		var sm model.ScheduledMeal
		var weekdays string
		if err := rows.Scan(&sm.ID, &sm.PlanID, &sm.Name, &sm.Category, &sm.TimeOfDay, &weekdays, &sm.TemplateName, &sm.Position); err != nil {
			return nil, fmt.Errorf("scan scheduled meal: %w", err)
		}
		sm.Weekdays = decodeWeekdays(weekdays)
		byPlan[sm.PlanID] = append(byPlan[sm.PlanID], sm)
		mealIndex[sm.ID] = len(byPlan[sm.PlanID]) - 1
		order = append(order, sm.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scheduled meals: %w", err)
	}
	if len(order) == 0 {
		return byPlan, nil
	}

	itemRows, err := db.Query(`
SELECT ti.id, ti.scheduled_meal_id, ti.position, ti.name, ti.portion, ti.unit, ti.calories, ti.protein_g, ti.carbs_g, ti.fat_g
FROM template_items ti
JOIN scheduled_meals sm ON sm.id = ti.scheduled_meal_id
WHERE sm.plan_id IN (`+placeholders+`)
ORDER BY ti.scheduled_meal_id, ti.position ASC
`, args...)
	if err != nil {
		return nil, fmt.Errorf("query template items: %w", err)
	}
	defer itemRows.Close()

	itemsByMeal := make(map[string][]model.TemplateItem)
	for itemRows.Next() {
		var item model.TemplateItem
		if err := itemRows.Scan(&item.ID, &item.ScheduledMealID, &item.Position, &item.Name, &item.Portion, &item.Unit, &item.Calories, &item.ProteinG, &item.CarbsG, &item.FatG); err != nil {
			return nil, fmt.Errorf("scan template item: %w", err)
		}
		itemsByMeal[item.ScheduledMealID] = append(itemsByMeal[item.ScheduledMealID], item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate template items: %w", err)
	}

	for planID, meals := range byPlan {
		for i := range meals {
			meals[i].TemplateItems = itemsByMeal[meals[i].ID]
		}
		byPlan[planID] = meals
	}
	return byPlan, nil
}
