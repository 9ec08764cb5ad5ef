package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arshanh/nutriplan-cli/internal/model"
)

type LogWeightInput struct {
	WeightKg   float64
	RecordedAt time.Time
	Notes      string
}

func LogWeight(db *sql.DB, in LogWeightInput) (string, error) {
	if in.WeightKg <= 0 {
		return "", fmt.Errorf("weight must be > 0")
	}
	id := uuid.NewString()
	if _, err := db.Exec(`
INSERT INTO weight_entries(id, weight_kg, recorded_at, notes)
VALUES(?, ?, ?, ?)
`, id, in.WeightKg, in.RecordedAt.Format(time.RFC3339), strings.TrimSpace(in.Notes)); err != nil {
		return "", fmt.Errorf("log weight: %w", err)
	}
	return id, nil
}

func DeleteWeight(db *sql.DB, weightID string) error {
	res, err := db.Exec(`DELETE FROM weight_entries WHERE id = ?`, weightID)
	if err != nil {
		return fmt.Errorf("delete weight entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete weight entry result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("weight entry %s does not exist", weightID)
	}
	return nil
}

func ListWeights(db *sql.DB, limit int) ([]model.WeightEntry, error) {
	query := `SELECT id, weight_kg, recorded_at, IFNULL(notes, '') FROM weight_entries ORDER BY recorded_at DESC`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query weight entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.WeightEntry, 0)
	for rows.Next() {
		var w model.WeightEntry
		var recordedAt string
		if err := rows.Scan(&w.ID, &w.WeightKg, &recordedAt, &w.Notes); err != nil {
			return nil, fmt.Errorf("scan weight entry: %w", err)
		}
		if w.RecordedAt, err = parseStoredTime(recordedAt); err != nil {
			return nil, fmt.Errorf("parse weight timestamp: %w", err)
		}
		entries = append(entries, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weight entries: %w", err)
	}
	return entries, nil
}
