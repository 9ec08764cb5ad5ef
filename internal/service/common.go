package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/arshanh/nutriplan-cli/internal/model"
)

func validateNonNegativeInt(name string, value int) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func validateCategory(category string) (string, error) {
	category = strings.TrimSpace(strings.ToLower(category))
	if category == "" {
		return "", nil
	}
	if !model.ValidCategories[category] {
		return "", fmt.Errorf("invalid category %q (expected breakfast, lunch, dinner, or snack)", category)
	}
	return category, nil
}

func validateTimeOfDay(timeOfDay string) (string, error) {
	timeOfDay = strings.TrimSpace(timeOfDay)
	if _, err := time.Parse("15:04", timeOfDay); err != nil {
		return "", fmt.Errorf("invalid time of day %q (expected HH:MM)", timeOfDay)
	}
	return timeOfDay, nil
}

// encodeWeekdays stores a weekday set as a sorted CSV of 1..7 (1=Sunday).
func encodeWeekdays(weekdays []int) (string, error) {
	set := make(map[int]bool)
	for _, d := range weekdays {
		if d < 1 || d > 7 {
			return "", fmt.Errorf("invalid weekday %d (expected 1=Sunday .. 7=Saturday)", d)
		}
		set[d] = true
	}
	sorted := make([]int, 0, len(set))
	for d := range set {
		sorted = append(sorted, d)
	}
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, d := range sorted {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ","), nil
}

// decodeWeekdays tolerates malformed stored values: unparseable fragments are
// dropped, yielding a smaller (possibly empty) set rather than an error.
func decodeWeekdays(encoded string) []int {
	if strings.TrimSpace(encoded) == "" {
		return nil
	}
	out := make([]int, 0)
	for _, part := range strings.Split(encoded, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || d < 1 || d > 7 {
			continue
		}
		out = append(out, d)
	}
	return out
}

func dayBounds(date time.Time) (start, end time.Time) {
	start = model.BeginningOfDay(date)
	return start, start.Add(24 * time.Hour)
}
