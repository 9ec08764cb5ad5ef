package service

import (
	"database/sql"
	"fmt"
	"strings"
)

// Settings keys. The two cache pairs back the day-scoped, self-expiring
// adjustments in the effective-goal calculation.
const (
	SettingIncludeBurnedCalories = "include_burned_calories"
	SettingIncludeRollover       = "include_rollover"
	settingBurnedCacheDate       = "burned_cache_date"
	settingBurnedCacheAmount     = "burned_cache_amount"
	settingRolloverCacheDate     = "rollover_cache_date"
	settingRolloverCacheAmount   = "rollover_cache_amount"
)

func SetSetting(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("setting key is required")
	}
	_, err := db.Exec(`
INSERT INTO app_settings(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func GetSetting(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("setting key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, true, nil
}

func ListSettings(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_settings ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}
	return out, nil
}

func boolSetting(db *sql.DB, key string) (bool, error) {
	value, ok, err := GetSetting(db, key)
	if err != nil {
		return false, err
	}
	return ok && value == "true", nil
}
