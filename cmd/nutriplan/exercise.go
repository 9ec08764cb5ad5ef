package nutriplan

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/arshanh/nutriplan-cli/internal/service"
	"github.com/spf13/cobra"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Manage exercise records",
}

var (
	exerciseCalories    int
	exerciseDurationMin int
	exerciseDate        string
	exerciseNotes       string
)

var exerciseLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Log an exercise",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDateOrNow(exerciseDate)
		if err != nil {
			return err
		}
		var duration *int
		if cmd.Flags().Changed("duration-min") {
			v := exerciseDurationMin
			duration = &v
		}
		in := service.LogExerciseInput{
			CaloriesBurned: exerciseCalories,
			DurationMin:    duration,
			Date:           day,
			Notes:          exerciseNotes,
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.LogExercise(sqldb, in, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged exercise %s\n", id)
			return nil
		})
	},
}

var exerciseListDate string

var exerciseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the day's exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseDateOrNow(exerciseListDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			records, err := service.ListExercises(sqldb, target)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tKCAL_BURNED\tDURATION_MIN\tNOTES")
			for _, r := range records {
				duration := ""
				if r.DurationMin != nil {
					duration = fmt.Sprintf("%d", *r.DurationMin)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\t%s\n", r.ID, r.CaloriesBurned, duration, r.Notes)
			}
			return nil
		})
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:   "delete <exercise-id>",
	Short: "Delete an exercise record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteExercise(sqldb, args[0], time.Now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted exercise %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exerciseCmd)
	exerciseCmd.AddCommand(exerciseLogCmd, exerciseListCmd, exerciseDeleteCmd)

	exerciseLogCmd.Flags().IntVar(&exerciseCalories, "calories", 0, "Calories burned")
	exerciseLogCmd.Flags().IntVar(&exerciseDurationMin, "duration-min", 0, "Duration in minutes (optional)")
	exerciseLogCmd.Flags().StringVar(&exerciseDate, "date", "", "Date YYYY-MM-DD (default today)")
	exerciseLogCmd.Flags().StringVar(&exerciseNotes, "notes", "", "Optional notes")
	_ = exerciseLogCmd.MarkFlagRequired("calories")

	exerciseListCmd.Flags().StringVar(&exerciseListDate, "date", "", "Date YYYY-MM-DD (default today)")
}
