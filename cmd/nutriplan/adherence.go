package nutriplan

import (
	"database/sql"
	"fmt"

	"github.com/arshanh/nutriplan-cli/internal/service"
	"github.com/spf13/cobra"
)

var adherenceDate string

var adherenceCmd = &cobra.Command{
	Use:   "adherence",
	Short: "Show the day's diet adherence report",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseDateOrNow(adherenceDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.AdherenceForDate(sqldb, target)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", report.Date.Format("2006-01-02"))
			fmt.Fprintf(out, "Scheduled: %d\n", len(report.ScheduledMeals))
			fmt.Fprintf(out, "Completed: %d\n", len(report.CompletedMeals))
			fmt.Fprintf(out, "Completion rate: %.0f%%\n", report.CompletionRate()*100)
			fmt.Fprintf(out, "Goal achievement rate: %.0f%%\n", report.GoalAchievementRate()*100)
			if len(report.MissedMeals) > 0 {
				fmt.Fprintln(out, "Missed:")
				for _, sm := range report.MissedMeals {
					fmt.Fprintf(out, "  %s at %s\n", sm.Name, sm.TimeOfDay)
				}
			}
			if len(report.OffDietMeals) > 0 {
				fmt.Fprintf(out, "Off-diet: %d meal(s), %d kcal\n", len(report.OffDietMeals), report.OffDietCalories)
				for _, m := range report.OffDietMeals {
					fmt.Fprintf(out, "  %s (%d kcal)\n", m.Name, m.TotalCalories())
				}
			}
			if report.HasPerfectAdherence() {
				fmt.Fprintln(out, "Perfect adherence")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(adherenceCmd)
	adherenceCmd.Flags().StringVar(&adherenceDate, "date", "", "Date YYYY-MM-DD (default today)")
}
