package model

import "time"

// Meal categories. Stored as plain strings; ValidCategories is the canonical
// accepted set.
const (
	CategoryBreakfast = "breakfast"
	CategoryLunch     = "lunch"
	CategoryDinner    = "dinner"
	CategorySnack     = "snack"
)

var ValidCategories = map[string]bool{
	CategoryBreakfast: true,
	CategoryLunch:     true,
	CategoryDinner:    true,
	CategorySnack:     true,
}

type DietPlan struct {
	ID             string
	Name           string
	IsActive       bool
	ScheduledMeals []ScheduledMeal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ScheduledMeal recurs on the weekdays in Weekdays (1=Sunday .. 7=Saturday)
// at TimeOfDay ("HH:MM"). TemplateName is empty when no nutrition template
// is attached.
type ScheduledMeal struct {
	ID            string
	PlanID        string
	Name          string
	Category      string
	TimeOfDay     string
	Weekdays      []int
	TemplateName  string
	TemplateItems []TemplateItem
	Position      int
}

type TemplateItem struct {
	ID              string
	ScheduledMealID string
	Position        int
	Name            string
	Portion         float64
	Unit            string
	Calories        int
	ProteinG        float64
	CarbsG          float64
	FatG            float64
}

type Meal struct {
	ID         string
	Name       string
	Category   string
	ConsumedAt time.Time
	Notes      string
	Items      []MealItem
	CreatedAt  time.Time
}

type MealItem struct {
	ID       string
	MealID   string
	Position int
	Name     string
	Portion  float64
	Unit     string
	Calories int
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

// MealReminder is one concrete occurrence of a ScheduledMeal. The
// scheduled-meal and meal references are weak (ids only); either target may
// have been deleted since.
type MealReminder struct {
	ID              string
	ScheduledMealID string
	ReminderDate    time.Time
	WasCompleted    bool
	CompletedMealID string
	CompletedAt     *time.Time
	GoalAchieved    *bool
	GoalDeviation   *float64
}

// DaySummary aggregates one calendar day of logged meals. Day is the
// "YYYY-MM-DD" start-of-day key.
type DaySummary struct {
	Day       string
	Calories  int
	ProteinG  float64
	CarbsG    float64
	FatG      float64
	MealCount int
}

type ExerciseRecord struct {
	ID             string
	CaloriesBurned int
	DurationMin    *int
	Day            string
	Notes          string
	CreatedAt      time.Time
}

type WeightEntry struct {
	ID         string
	WeightKg   float64
	RecordedAt time.Time
	Notes      string
}

type Goal struct {
	ID            int64
	Calories      int
	ProteinG      float64
	CarbsG        float64
	FatG          float64
	EffectiveDate string
	CreatedAt     time.Time
}

type Achievement struct {
	Code     string
	Title    string
	EarnedAt time.Time
}

// HasTemplate reports whether a nutrition template is attached.
func (s ScheduledMeal) HasTemplate() bool {
	return s.TemplateName != ""
}

// TemplateCalories is the template's expected calories: the sum of its items.
func (s ScheduledMeal) TemplateCalories() int {
	total := 0
	for i := range s.TemplateItems {
		total += s.TemplateItems[i].Calories
	}
	return total
}

// RecursOn reports whether the scheduled meal recurs on the given weekday
// number. An empty weekday set never recurs.
func (s ScheduledMeal) RecursOn(weekday int) bool {
	for _, d := range s.Weekdays {
		if d == weekday {
			return true
		}
	}
	return false
}

// TotalCalories is the sum of the meal's item calories.
func (m Meal) TotalCalories() int {
	total := 0
	for i := range m.Items {
		total += m.Items[i].Calories
	}
	return total
}

// Totals returns the meal's aggregate protein, carbs, and fat grams.
func (m Meal) Totals() (proteinG, carbsG, fatG float64) {
	for i := range m.Items {
		proteinG += m.Items[i].ProteinG
		carbsG += m.Items[i].CarbsG
		fatG += m.Items[i].FatG
	}
	return proteinG, carbsG, fatG
}

// WeekdayNumber maps a time to the 1=Sunday .. 7=Saturday numbering used by
// scheduled-meal weekday sets.
func WeekdayNumber(t time.Time) int {
	return int(t.Weekday()) + 1
}

// DayKey is the "YYYY-MM-DD" start-of-day key for a timestamp.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// BeginningOfDay truncates a timestamp to local midnight.
func BeginningOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
