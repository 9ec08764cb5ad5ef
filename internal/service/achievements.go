package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/arshanh/nutriplan-cli/internal/achievement"
	"github.com/arshanh/nutriplan-cli/internal/model"
)

// CheckAchievements evaluates the milestone rules against current data and
// persists anything newly earned. Running it repeatedly is idempotent.
func CheckAchievements(db *sql.DB, now time.Time) ([]achievement.Milestone, error) {
	totalMeals, err := CountMeals(db)
	if err != nil {
		return nil, err
	}
	totalExercises, err := CountExercises(db)
	if err != nil {
		return nil, err
	}
	last7, err := TrailingDaySummaries(db, now, 7)
	if err != nil {
		return nil, err
	}
	today := last7[len(last7)-1]

	var calorieGoal int
	var proteinGoal float64
	if goal, err := CurrentGoal(db, model.DayKey(now)); err != nil {
		return nil, err
	} else if goal != nil {
		calorieGoal = goal.Calories
		proteinGoal = goal.ProteinG
	}

	earned, err := earnedAchievementCodes(db)
	if err != nil {
		return nil, err
	}

	milestones := achievement.CheckMilestones(achievement.Input{
		TotalMealsLogged: totalMeals,
		TotalExercises:   totalExercises,
		Today:            today,
		Last7Days:        last7,
		CalorieGoal:      calorieGoal,
		ProteinGoalG:     proteinGoal,
		Earned:           earned,
	})
	for _, m := range milestones {
		if _, err := db.Exec(`
INSERT INTO achievements(code, title, earned_at) VALUES(?, ?, ?)
ON CONFLICT(code) DO NOTHING
`, m.Code, m.Title, now.Format(time.RFC3339)); err != nil {
			return nil, fmt.Errorf("record achievement %s: %w", m.Code, err)
		}
	}
	return milestones, nil
}

func ListAchievements(db *sql.DB) ([]model.Achievement, error) {
	rows, err := db.Query(`SELECT code, title, earned_at FROM achievements ORDER BY earned_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	out := make([]model.Achievement, 0)
	for rows.Next() {
		var a model.Achievement
		var earnedAt string
		if err := rows.Scan(&a.Code, &a.Title, &earnedAt); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		if a.EarnedAt, err = parseStoredTime(earnedAt); err != nil {
			return nil, fmt.Errorf("parse achievement timestamp: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate achievements: %w", err)
	}
	return out, nil
}

func earnedAchievementCodes(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query(`SELECT code FROM achievements`)
	if err != nil {
		return nil, fmt.Errorf("query earned achievements: %w", err)
	}
	defer rows.Close()
	earned := make(map[string]bool)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan earned achievement: %w", err)
		}
		earned[code] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate earned achievements: %w", err)
	}
	return earned, nil
}
