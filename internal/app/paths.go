package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName       = "nutriplan"
	dbFileName       = "nutriplan.db"
	snapshotFileName = "widget_snapshot.json"
)

func DefaultDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dbFileName), nil
}

// WidgetSnapshotPath is where the cross-process day snapshot lives, next to
// the database so both surfaces resolve the same directory.
func WidgetSnapshotPath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), snapshotFileName)
}

func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}
