package nutriplan

import (
	"database/sql"
	"fmt"

	"github.com/arshanh/nutriplan-cli/internal/service"
	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dangling reminder refs: %d\n", report.DanglingReminderRefs)
			fmt.Fprintf(cmd.OutOrStdout(), "Dangling completions: %d\n", report.DanglingCompletions)
			fmt.Fprintf(cmd.OutOrStdout(), "Drifted day summaries: %d\n", report.DriftedDaySummaries)
			if doctorFix {
				fmt.Fprintf(cmd.OutOrStdout(), "Rebuilt day summaries: %d\n", report.RebuiltDaySummaries)
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(sqldb, false)
				if err != nil {
					return err
				}
			}
			if report.DriftedDaySummaries > 0 {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Rebuild drifted day summaries from the meals")
}
