package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS diet_plans (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS scheduled_meals (
  id TEXT PRIMARY KEY,
  plan_id TEXT NOT NULL,
  name TEXT NOT NULL,
  category TEXT NOT NULL CHECK(category IN ('breakfast', 'lunch', 'dinner', 'snack')),
  time_of_day TEXT NOT NULL,
  weekdays TEXT NOT NULL DEFAULT '',
  template_name TEXT,
  position INTEGER NOT NULL DEFAULT 0,
  FOREIGN KEY(plan_id) REFERENCES diet_plans(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_scheduled_meals_plan_id ON scheduled_meals(plan_id);

CREATE TABLE IF NOT EXISTS template_items (
  id TEXT PRIMARY KEY,
  scheduled_meal_id TEXT NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  name TEXT NOT NULL,
  portion REAL NOT NULL CHECK(portion > 0),
  unit TEXT NOT NULL,
  calories INTEGER NOT NULL CHECK(calories >= 0),
  protein_g REAL NOT NULL CHECK(protein_g >= 0),
  carbs_g REAL NOT NULL CHECK(carbs_g >= 0),
  fat_g REAL NOT NULL CHECK(fat_g >= 0),
  FOREIGN KEY(scheduled_meal_id) REFERENCES scheduled_meals(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_template_items_scheduled_meal_id ON template_items(scheduled_meal_id);

CREATE TABLE IF NOT EXISTS meals (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT,
  consumed_at DATETIME NOT NULL,
  notes TEXT NOT NULL DEFAULT '',
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_meals_consumed_at ON meals(consumed_at);

CREATE TABLE IF NOT EXISTS meal_items (
  id TEXT PRIMARY KEY,
  meal_id TEXT NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  name TEXT NOT NULL,
  portion REAL NOT NULL CHECK(portion > 0),
  unit TEXT NOT NULL,
  calories INTEGER NOT NULL CHECK(calories >= 0),
  protein_g REAL NOT NULL CHECK(protein_g >= 0),
  carbs_g REAL NOT NULL CHECK(carbs_g >= 0),
  fat_g REAL NOT NULL CHECK(fat_g >= 0),
  FOREIGN KEY(meal_id) REFERENCES meals(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_meal_items_meal_id ON meal_items(meal_id);
`,
	},
	{
		version: 2,
		name:    "reminders_and_summaries",
		sql: `
-- Reminder references are weak by design: no foreign keys, a dangling
-- scheduled_meal_id or completed_meal_id is legal.
CREATE TABLE IF NOT EXISTS meal_reminders (
  id TEXT PRIMARY KEY,
  scheduled_meal_id TEXT NOT NULL,
  reminder_date DATETIME NOT NULL,
  was_completed INTEGER NOT NULL DEFAULT 0,
  completed_meal_id TEXT,
  completed_at DATETIME,
  goal_achieved INTEGER,
  goal_deviation REAL
);

CREATE INDEX IF NOT EXISTS idx_meal_reminders_reminder_date ON meal_reminders(reminder_date);
CREATE INDEX IF NOT EXISTS idx_meal_reminders_scheduled_meal_id ON meal_reminders(scheduled_meal_id);

CREATE TABLE IF NOT EXISTS day_summaries (
  day TEXT PRIMARY KEY,
  calories INTEGER NOT NULL DEFAULT 0,
  protein_g REAL NOT NULL DEFAULT 0,
  carbs_g REAL NOT NULL DEFAULT 0,
  fat_g REAL NOT NULL DEFAULT 0,
  meal_count INTEGER NOT NULL DEFAULT 0
);
`,
	},
	{
		version: 3,
		name:    "goals",
		sql: `
CREATE TABLE IF NOT EXISTS goals (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  calories INTEGER NOT NULL CHECK(calories >= 0),
  protein_g REAL NOT NULL CHECK(protein_g >= 0),
  carbs_g REAL NOT NULL CHECK(carbs_g >= 0),
  fat_g REAL NOT NULL CHECK(fat_g >= 0),
  effective_date TEXT NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(effective_date)
);
`,
	},
	{
		version: 4,
		name:    "exercise_and_weight",
		sql: `
CREATE TABLE IF NOT EXISTS exercise_records (
  id TEXT PRIMARY KEY,
  calories_burned INTEGER NOT NULL CHECK(calories_burned > 0),
  duration_min INTEGER CHECK(duration_min > 0),
  day TEXT NOT NULL,
  notes TEXT NOT NULL DEFAULT '',
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_exercise_records_day ON exercise_records(day);

CREATE TABLE IF NOT EXISTS weight_entries (
  id TEXT PRIMARY KEY,
  weight_kg REAL NOT NULL CHECK(weight_kg > 0),
  recorded_at DATETIME NOT NULL,
  notes TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_weight_entries_recorded_at ON weight_entries(recorded_at);
`,
	},
	{
		version: 5,
		name:    "app_settings",
		sql: `
CREATE TABLE IF NOT EXISTS app_settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
	{
		version: 6,
		name:    "achievements",
		sql: `
CREATE TABLE IF NOT EXISTS achievements (
  code TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  earned_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}
	return nil
}
