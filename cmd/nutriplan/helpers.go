package nutriplan

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/arshanh/nutriplan-cli/internal/app"
	"github.com/arshanh/nutriplan-cli/internal/db"
	"github.com/arshanh/nutriplan-cli/internal/service"
)

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}

func parseDateOrNow(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return t, nil
}

func parseDateTimeOrNow(date, timeStr string) (time.Time, error) {
	date = strings.TrimSpace(date)
	timeStr = strings.TrimSpace(timeStr)
	if date == "" && timeStr == "" {
		return time.Now(), nil
	}
	if date == "" {
		return time.Time{}, fmt.Errorf("--date is required when --time is set")
	}
	if timeStr == "" {
		t, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
		}
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date/--time (expected YYYY-MM-DD and HH:MM)")
	}
	return t, nil
}

// parseItemSpec decodes one repeated --item flag:
// "name,portion,unit,calories[,protein,carbs,fat]".
func parseItemSpec(value string) (service.MealItemInput, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 4 && len(parts) != 7 {
		return service.MealItemInput{}, fmt.Errorf("invalid --item %q (expected name,portion,unit,calories[,protein,carbs,fat])", value)
	}
	item := service.MealItemInput{
		Name: strings.TrimSpace(parts[0]),
		Unit: strings.TrimSpace(parts[2]),
	}
	var err error
	if item.Portion, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return service.MealItemInput{}, fmt.Errorf("invalid portion in --item %q", value)
	}
	if item.Calories, err = strconv.Atoi(strings.TrimSpace(parts[3])); err != nil {
		return service.MealItemInput{}, fmt.Errorf("invalid calories in --item %q", value)
	}
	if len(parts) == 7 {
		if item.ProteinG, err = strconv.ParseFloat(strings.TrimSpace(parts[4]), 64); err != nil {
			return service.MealItemInput{}, fmt.Errorf("invalid protein in --item %q", value)
		}
		if item.CarbsG, err = strconv.ParseFloat(strings.TrimSpace(parts[5]), 64); err != nil {
			return service.MealItemInput{}, fmt.Errorf("invalid carbs in --item %q", value)
		}
		if item.FatG, err = strconv.ParseFloat(strings.TrimSpace(parts[6]), 64); err != nil {
			return service.MealItemInput{}, fmt.Errorf("invalid fat in --item %q", value)
		}
	}
	return item, nil
}

func parseWeekdays(value string) ([]int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("--weekdays is required (comma-separated, 1=Sunday .. 7=Saturday)")
	}
	parts := strings.Split(value, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || d < 1 || d > 7 {
			return nil, fmt.Errorf("invalid weekday %q (expected 1=Sunday .. 7=Saturday)", p)
		}
		out = append(out, d)
	}
	return out, nil
}
