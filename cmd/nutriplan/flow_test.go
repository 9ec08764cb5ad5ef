package nutriplan

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes one command against the given database and returns its
// output.
func runCLI(t *testing.T, db string, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--db", db}, args...))
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("nutriplan %s: %v\n%s", strings.Join(args, " "), err, buf.String())
	}
	return buf.String()
}

// lastID pulls the trailing identifier from "Created plan <id>" style output.
func lastID(t *testing.T, output string) string {
	t.Helper()
	fields := strings.Fields(strings.TrimSpace(output))
	if len(fields) == 0 {
		t.Fatalf("expected an id in output %q", output)
	}
	return fields[len(fields)-1]
}

func TestPlanAndMealFlow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "nutriplan.db")

	planID := lastID(t, runCLI(t, db, "plan", "create", "--name", "Cut", "--activate"))

	runCLI(t, db, "plan", "add-meal", planID,
		"--name", "Breakfast",
		"--category", "breakfast",
		"--time", "08:00",
		"--weekdays", "1,2,3,4,5,6,7",
		"--template", "Standard breakfast",
		"--item", "Oats,80,g,300,10,54,6")

	show := runCLI(t, db, "plan", "show", planID)
	if !strings.Contains(show, "Breakfast") || !strings.Contains(show, "300") {
		t.Fatalf("expected the scheduled meal in plan show output:\n%s", show)
	}

	mealID := lastID(t, runCLI(t, db, "meal", "log",
		"--name", "Oatmeal",
		"--category", "breakfast",
		"--item", "Oats,80,g,320,10,56,6"))

	due := runCLI(t, db, "reminder", "due")
	if !strings.Contains(due, "08:00") {
		t.Fatalf("expected the 08:00 occurrence in reminder due output:\n%s", due)
	}
	list := runCLI(t, db, "reminder", "list")
	lines := strings.Split(strings.TrimSpace(list), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one reminder:\n%s", list)
	}
	reminderID := strings.Fields(lines[1])[0]

	complete := runCLI(t, db, "reminder", "complete", "--reminder", reminderID, "--meal", mealID)
	if !strings.Contains(complete, "goal achieved") {
		t.Fatalf("expected goal achieved at ~7%% over:\n%s", complete)
	}

	adherence := runCLI(t, db, "adherence")
	if !strings.Contains(adherence, "Completion rate: 100%") {
		t.Fatalf("expected full completion:\n%s", adherence)
	}
	if !strings.Contains(adherence, "Perfect adherence") {
		t.Fatalf("expected a perfect day:\n%s", adherence)
	}

	runCLI(t, db, "goal", "set", "--calories", "2000", "--protein", "150", "--carbs", "200", "--fat", "60")
	today := runCLI(t, db, "today")
	if !strings.Contains(today, "Intake: 320 kcal") {
		t.Fatalf("expected the logged intake in today output:\n%s", today)
	}
	if !strings.Contains(today, "Goal: 2000 kcal") {
		t.Fatalf("expected the goal in today output:\n%s", today)
	}

	widget := runCLI(t, db, "widget", "show")
	if !strings.Contains(widget, "Intake: 320 kcal") {
		t.Fatalf("expected the published snapshot to match today:\n%s", widget)
	}

	check := runCLI(t, db, "achievements", "check")
	if !strings.Contains(check, "first_meal") {
		t.Fatalf("expected the first-meal milestone:\n%s", check)
	}

	doctor := runCLI(t, db, "doctor")
	if !strings.Contains(doctor, "Drifted day summaries: 0") {
		t.Fatalf("expected a clean doctor run:\n%s", doctor)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	db := filepath.Join(t.TempDir(), "nutriplan.db")

	runCLI(t, db, "settings", "set", "include_rollover", "true")
	got := runCLI(t, db, "settings", "get", "include_rollover")
	if strings.TrimSpace(got) != "true" {
		t.Fatalf("expected true, got %q", got)
	}
	list := runCLI(t, db, "settings", "list")
	if !strings.Contains(list, "include_rollover") {
		t.Fatalf("expected the key in settings list:\n%s", list)
	}
}
