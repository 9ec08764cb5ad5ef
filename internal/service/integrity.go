package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

type DoctorReport struct {
	DanglingReminderRefs int `json:"dangling_reminder_refs"`
	DanglingCompletions  int `json:"dangling_completions"`
	DriftedDaySummaries  int `json:"drifted_day_summaries"`
	RebuiltDaySummaries  int `json:"rebuilt_day_summaries,omitempty"`
}

// RunDoctor checks the weak-reference and derived-data invariants. Dangling
// reminder references are legal (the engine skips them) but worth surfacing;
// drifted day summaries are real defects that --fix rebuilds from the meals.
func RunDoctor(db *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}
	if err := db.QueryRow(`
SELECT COUNT(1) FROM meal_reminders r
LEFT JOIN scheduled_meals sm ON sm.id = r.scheduled_meal_id
WHERE sm.id IS NULL
`).Scan(&report.DanglingReminderRefs); err != nil {
		return report, fmt.Errorf("doctor dangling reminder check: %w", err)
	}
	if err := db.QueryRow(`
SELECT COUNT(1) FROM meal_reminders r
LEFT JOIN meals m ON m.id = r.completed_meal_id
WHERE r.completed_meal_id IS NOT NULL AND r.completed_meal_id != '' AND m.id IS NULL
`).Scan(&report.DanglingCompletions); err != nil {
		return report, fmt.Errorf("doctor dangling completion check: %w", err)
	}

	drifted, err := driftedDays(db)
	if err != nil {
		return report, err
	}
	report.DriftedDaySummaries = len(drifted)
	if fix {
		for _, day := range drifted {
			date, err := time.ParseInLocation("2006-01-02", day, time.Local)
			if err != nil {
				return report, fmt.Errorf("doctor parse day %q: %w", day, err)
			}
			if err := RebuildDaySummary(db, date); err != nil {
				return report, err
			}
			report.RebuiltDaySummaries++
		}
	}
	return report, nil
}

// driftedDays finds day_summaries rows whose totals disagree with the meals,
// and days that have meals but no summary row.
func driftedDays(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`
SELECT day FROM (
  SELECT
    IFNULL(s.day, m.day) AS day,
    IFNULL(s.calories, 0) AS summary_calories,
    IFNULL(s.meal_count, 0) AS summary_meals,
    IFNULL(m.calories, 0) AS meal_calories,
    IFNULL(m.meal_count, 0) AS meal_meals
  FROM day_summaries s
  FULL OUTER JOIN (
    SELECT substr(meals.consumed_at, 1, 10) AS day,
           SUM(items.calories) AS calories,
           COUNT(DISTINCT meals.id) AS meal_count
    FROM meals
    JOIN meal_items items ON items.meal_id = meals.id
    GROUP BY day
  ) m ON m.day = s.day
)
WHERE summary_calories != meal_calories OR summary_meals != meal_meals
ORDER BY day ASC
`)
	if err != nil {
		return nil, fmt.Errorf("doctor drift query: %w", err)
	}
	defer rows.Close()

	days := make([]string, 0)
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("doctor scan drifted day: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("doctor iterate drifted days: %w", err)
	}
	return days, nil
}

func CreateBackup(dbPath, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(dbPath) == "" {
		return BackupInfo{}, fmt.Errorf("db path is required")
	}
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if err := copyFile(dbPath, outPath); err != nil {
		return BackupInfo{}, err
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".db") {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, BackupInfo{Path: full, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return out.Sync()
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
