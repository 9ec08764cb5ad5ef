package service

import (
	"database/sql"
	"time"

	"github.com/arshanh/nutriplan-cli/internal/adherence"
	"github.com/arshanh/nutriplan-cli/internal/model"
)

// AdherenceForDate computes the day's adherence report live from current
// schedule state: resolve occurrences, match logged meals through reminders,
// evaluate goals per completed occurrence, fold.
//
// Storage errors propagate unrecovered; the report is never partial.
func AdherenceForDate(db *sql.DB, date time.Time) (*adherence.Report, error) {
	plans, err := ActivePlans(db)
	if err != nil {
		return nil, err
	}
	scheduled := adherence.OccurrencesFor(date, plans)

	reminders, err := RemindersForDate(db, date)
	if err != nil {
		return nil, err
	}
	meals, err := MealsForDay(db, date)
	if err != nil {
		return nil, err
	}
	mealsByID := make(map[string]model.Meal, len(meals))
	for _, m := range meals {
		mealsByID[m.ID] = m
	}

	match := adherence.MatchDay(date, scheduled, reminders, meals)
	report := adherence.BuildReport(date, scheduled, match, mealsByID)
	return &report, nil
}
