package service

import (
	"database/sql"
	"fmt"
	"strconv"

	"time"

	"github.com/arshanh/nutriplan-cli/internal/model"
)

// RolloverCap bounds how many unused calories carry forward from one day to
// the next.
const RolloverCap = 200

// EffectiveGoalResult breaks down the calorie goal actually shown for a day:
// the versioned base goal plus the two optional day-scoped adjustments.
type EffectiveGoalResult struct {
	Date              string  `json:"date"`
	HasGoal           bool    `json:"has_goal"`
	BaseCalories      int     `json:"base_calories"`
	BaseProteinG      float64 `json:"base_protein_g"`
	BaseCarbsG        float64 `json:"base_carbs_g"`
	BaseFatG          float64 `json:"base_fat_g"`
	BurnedCalories    int     `json:"burned_calories"`
	RolloverCalories  int     `json:"rollover_calories"`
	IncludeBurned     bool    `json:"include_burned"`
	IncludeRollover   bool    `json:"include_rollover"`
	EffectiveCalories int     `json:"effective_calories"`
}

// EffectiveGoal combines the base goal with the burned-calories and rollover
// adjustments, honoring the user's include toggles. Both adjustments are
// cached per start-of-day date and recomputed when the cache is stale.
func EffectiveGoal(db *sql.DB, now time.Time) (*EffectiveGoalResult, error) {
	today := model.DayKey(now)
	result := &EffectiveGoalResult{Date: today}

	goal, err := CurrentGoal(db, today)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return result, nil
	}
	result.HasGoal = true
	result.BaseCalories = goal.Calories
	result.BaseProteinG = goal.ProteinG
	result.BaseCarbsG = goal.CarbsG
	result.BaseFatG = goal.FatG

	if result.IncludeBurned, err = boolSetting(db, SettingIncludeBurnedCalories); err != nil {
		return nil, err
	}
	if result.IncludeRollover, err = boolSetting(db, SettingIncludeRollover); err != nil {
		return nil, err
	}

	if result.BurnedCalories, err = burnedCaloriesForToday(db, now); err != nil {
		return nil, err
	}
	if result.RolloverCalories, err = rolloverForToday(db, now, goal.Calories); err != nil {
		return nil, err
	}

	result.EffectiveCalories = result.BaseCalories
	if result.IncludeBurned {
		result.EffectiveCalories += result.BurnedCalories
	}
	if result.IncludeRollover {
		result.EffectiveCalories += result.RolloverCalories
	}
	return result, nil
}

// RefreshBurnedCalories recomputes today's burned-calories cache from the
// exercise records. Called whenever today's exercise changes and whenever a
// read finds the cache stale.
func RefreshBurnedCalories(db *sql.DB, now time.Time) (int, error) {
	burned, err := BurnedCaloriesForDay(db, now)
	if err != nil {
		return 0, err
	}
	if err := writeDayCache(db, settingBurnedCacheDate, settingBurnedCacheAmount, model.DayKey(now), burned); err != nil {
		return 0, err
	}
	return burned, nil
}

// burnedCaloriesForToday trusts the cache only when its date stamp is today;
// a stale cache is recomputed from source records, never reused.
func burnedCaloriesForToday(db *sql.DB, now time.Time) (int, error) {
	cachedDate, amount, err := readDayCache(db, settingBurnedCacheDate, settingBurnedCacheAmount)
	if err != nil {
		return 0, err
	}
	if !isStale(cachedDate, now) {
		return amount, nil
	}
	return RefreshBurnedCalories(db, now)
}

// rolloverForToday computes the rollover once per day, lazily, from
// yesterday's finalized summary, then serves it from the cache for the rest
// of the day. On any later day the cache is stale and the value is derived
// from that day's own yesterday, so it never accumulates or carries forward.
func rolloverForToday(db *sql.DB, now time.Time, baseCalories int) (int, error) {
	cachedDate, amount, err := readDayCache(db, settingRolloverCacheDate, settingRolloverCacheAmount)
	if err != nil {
		return 0, err
	}
	if !isStale(cachedDate, now) {
		return amount, nil
	}

	yesterday, err := DaySummaryFor(db, now.AddDate(0, 0, -1))
	if err != nil {
		return 0, err
	}
	rollover := 0
	if yesterday != nil {
		rollover = RolloverAmount(baseCalories, yesterday.Calories)
	}
	if err := writeDayCache(db, settingRolloverCacheDate, settingRolloverCacheAmount, model.DayKey(now), rollover); err != nil {
		return 0, err
	}
	return rollover, nil
}

// RolloverAmount is the unused-calorie carryover: capped, never negative.
func RolloverAmount(baseCalories, yesterdayCalories int) int {
	unused := baseCalories - yesterdayCalories
	if unused < 0 {
		return 0
	}
	if unused > RolloverCap {
		return RolloverCap
	}
	return unused
}

// isStale compares start-of-day keys, not timestamps: a cache written any
// time yesterday is stale all of today.
func isStale(cachedDate string, now time.Time) bool {
	return cachedDate != model.DayKey(now)
}

func readDayCache(db *sql.DB, dateKey, amountKey string) (string, int, error) {
	date, ok, err := GetSetting(db, dateKey)
	if err != nil {
		return "", 0, err
	}
	if !ok {
		return "", 0, nil
	}
	raw, ok, err := GetSetting(db, amountKey)
	if err != nil {
		return "", 0, err
	}
	if !ok {
		return date, 0, nil
	}
	amount, err := strconv.Atoi(raw)
	if err != nil {
		return "", 0, fmt.Errorf("corrupt cache amount %q for %s: %w", raw, amountKey, err)
	}
	return date, amount, nil
}

func writeDayCache(db *sql.DB, dateKey, amountKey, day string, amount int) error {
	if err := SetSetting(db, dateKey, day); err != nil {
		return err
	}
	return SetSetting(db, amountKey, strconv.Itoa(amount))
}
