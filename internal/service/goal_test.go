package service_test

import (
	"testing"

	"github.com/arshanh/nutriplan-cli/internal/service"
)

func TestGoalVersioningByEffectiveDate(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if err := service.SetGoal(sqldb, service.SetGoalInput{Calories: 2400, ProteinG: 160, EffectiveDate: "2026-01-01"}); err != nil {
		t.Fatalf("set first goal: %v", err)
	}
	if err := service.SetGoal(sqldb, service.SetGoalInput{Calories: 2000, ProteinG: 150, EffectiveDate: "2026-03-01"}); err != nil {
		t.Fatalf("set second goal: %v", err)
	}

	goal, err := service.CurrentGoal(sqldb, "2026-02-15")
	if err != nil {
		t.Fatalf("goal for february: %v", err)
	}
	if goal == nil || goal.Calories != 2400 {
		t.Fatalf("expected the january goal in february, got %+v", goal)
	}

	goal, err = service.CurrentGoal(sqldb, "2026-03-02")
	if err != nil {
		t.Fatalf("goal for march: %v", err)
	}
	if goal == nil || goal.Calories != 2000 {
		t.Fatalf("expected the march goal, got %+v", goal)
	}

	goal, err = service.CurrentGoal(sqldb, "2025-12-31")
	if err != nil {
		t.Fatalf("goal before any version: %v", err)
	}
	if goal != nil {
		t.Fatalf("expected no goal before the first effective date, got %+v", goal)
	}
}

func TestSetGoalSameDateOverwrites(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if err := service.SetGoal(sqldb, service.SetGoalInput{Calories: 2000, EffectiveDate: "2026-03-01"}); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	if err := service.SetGoal(sqldb, service.SetGoalInput{Calories: 2100, EffectiveDate: "2026-03-01"}); err != nil {
		t.Fatalf("overwrite goal: %v", err)
	}

	history, err := service.GoalHistory(sqldb)
	if err != nil {
		t.Fatalf("goal history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected one version per effective date, got %d", len(history))
	}
	if history[0].Calories != 2100 {
		t.Fatalf("expected the overwritten calories, got %d", history[0].Calories)
	}
}

func TestSetGoalRejectsNegativeAndBadDate(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if err := service.SetGoal(sqldb, service.SetGoalInput{Calories: -1, EffectiveDate: "2026-03-01"}); err == nil {
		t.Fatalf("expected negative calories to fail")
	}
	if err := service.SetGoal(sqldb, service.SetGoalInput{Calories: 2000, EffectiveDate: "03/01/2026"}); err == nil {
		t.Fatalf("expected a malformed date to fail")
	}
}
