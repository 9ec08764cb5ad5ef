package nutriplan

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/arshanh/nutriplan-cli/internal/app"
	"github.com/arshanh/nutriplan-cli/internal/service"
	"github.com/arshanh/nutriplan-cli/internal/widget"
	"github.com/spf13/cobra"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the day's intake against the effective goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := time.Now()
		if todayDate != "" {
			parsed, err := parseDateOrNow(todayDate)
			if err != nil {
				return err
			}
			target = parsed
		}
		return withDB(func(sqldb *sql.DB) error {
			status, err := service.TodaySummary(sqldb, target)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", status.Date)
			fmt.Fprintf(out, "Intake: %d kcal (%d meals)\n", status.Calories, status.MealCount)
			fmt.Fprintf(out, "Macros: P %.1fg | C %.1fg | F %.1fg\n", status.ProteinG, status.CarbsG, status.FatG)
			if status.HasGoal {
				fmt.Fprintf(out, "Goal: %d kcal", status.GoalCalories)
				if status.BurnedCalories > 0 || status.RolloverCalories > 0 {
					fmt.Fprintf(out, " (burned +%d, rollover +%d)", status.BurnedCalories, status.RolloverCalories)
				}
				fmt.Fprintln(out)
				fmt.Fprintf(out, "Remaining: %d kcal\n", status.RemainingCalories)
			} else {
				fmt.Fprintln(out, "Goal: not set")
			}

			publishSnapshot(status)
			return nil
		})
	},
}

// publishSnapshot refreshes the cross-process widget file. Fire-and-forget:
// a failed publish never fails the command.
func publishSnapshot(status *service.TodayStatus) {
	path, err := resolveDBPath()
	if err != nil {
		return
	}
	_ = widget.Publish(app.WidgetSnapshotPath(path), widget.Snapshot{
		Date:         status.Date,
		Calories:     status.Calories,
		ProteinG:     status.ProteinG,
		CarbsG:       status.CarbsG,
		FatG:         status.FatG,
		GoalCalories: status.GoalCalories,
		GoalProteinG: status.GoalProteinG,
		GoalCarbsG:   status.GoalCarbsG,
		GoalFatG:     status.GoalFatG,
	})
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
}
