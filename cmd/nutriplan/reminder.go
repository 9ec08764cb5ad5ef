package nutriplan

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/arshanh/nutriplan-cli/internal/service"
	"github.com/spf13/cobra"
)

var reminderCmd = &cobra.Command{
	Use:   "reminder",
	Short: "Materialize and complete meal reminders",
}

var reminderDate string

var reminderDueCmd = &cobra.Command{
	Use:   "due",
	Short: "Materialize the day's scheduled occurrences and list fire times",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseDateOrNow(reminderDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			planned, err := service.EnsureRemindersForDate(sqldb, target)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "TIME\tSCHEDULED_MEAL_ID\tNAME")
			for _, occ := range planned {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", occ.At.Local().Format("15:04"), occ.ScheduledMealID, occ.Name)
			}
			return nil
		})
	},
}

var reminderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the day's reminders with completion state",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseDateOrNow(reminderDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			reminders, err := service.RemindersForDate(sqldb, target)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tTIME\tCOMPLETED\tGOAL\tDEVIATION")
			for _, r := range reminders {
				completed := "no"
				if r.WasCompleted {
					completed = "yes"
				}
				goal := ""
				if r.GoalAchieved != nil {
					if *r.GoalAchieved {
						goal = "achieved"
					} else {
						goal = "missed"
					}
				}
				deviation := ""
				if r.GoalDeviation != nil {
					deviation = fmt.Sprintf("%+.2f", *r.GoalDeviation)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n", r.ID, r.ReminderDate.Local().Format("15:04"), completed, goal, deviation)
			}
			return nil
		})
	},
}

var (
	completeReminderID string
	completeMealID     string
)

var reminderCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Mark a reminder satisfied by a logged meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			achieved, deviation, err := service.CompleteReminder(sqldb, completeReminderID, completeMealID, time.Now())
			if err != nil {
				return err
			}
			if achieved {
				fmt.Fprintf(cmd.OutOrStdout(), "Completed reminder %s: goal achieved (deviation %+.2f)\n", completeReminderID, deviation)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Completed reminder %s: goal missed (deviation %+.2f)\n", completeReminderID, deviation)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(reminderCmd)
	reminderCmd.AddCommand(reminderDueCmd, reminderListCmd, reminderCompleteCmd)

	reminderDueCmd.Flags().StringVar(&reminderDate, "date", "", "Date YYYY-MM-DD (default today)")
	reminderListCmd.Flags().StringVar(&reminderDate, "date", "", "Date YYYY-MM-DD (default today)")

	reminderCompleteCmd.Flags().StringVar(&completeReminderID, "reminder", "", "Reminder ID")
	reminderCompleteCmd.Flags().StringVar(&completeMealID, "meal", "", "Logged meal ID that satisfies the reminder")
	_ = reminderCompleteCmd.MarkFlagRequired("reminder")
	_ = reminderCompleteCmd.MarkFlagRequired("meal")
}
