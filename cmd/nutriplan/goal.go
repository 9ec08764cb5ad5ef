package nutriplan

import (
	"database/sql"
	"fmt"

	"github.com/arshanh/nutriplan-cli/internal/service"
	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage daily calorie and macro goals",
}

var (
	goalCalories int
	goalProtein  float64
	goalCarbs    float64
	goalFat      float64
	goalDate     string
)

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set daily goals with an effective date",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.SetGoalInput{
			Calories:      goalCalories,
			ProteinG:      goalProtein,
			CarbsG:        goalCarbs,
			FatG:          goalFat,
			EffectiveDate: goalDate,
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetGoal(sqldb, in); err != nil {
				return err
			}
			if in.EffectiveDate == "" {
				in.EffectiveDate = "today"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set goal effective %s\n", in.EffectiveDate)
			return nil
		})
	},
}

var showGoalDate string

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the goal in effect, with day adjustments",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseDateOrNow(showGoalDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			goal, err := service.EffectiveGoal(sqldb, target)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !goal.HasGoal {
				fmt.Fprintln(out, "No goal configured")
				return nil
			}
			fmt.Fprintf(out, "Base: %d kcal | P %.1fg | C %.1fg | F %.1fg\n", goal.BaseCalories, goal.BaseProteinG, goal.BaseCarbsG, goal.BaseFatG)
			fmt.Fprintf(out, "Burned: +%d kcal (included: %v)\n", goal.BurnedCalories, goal.IncludeBurned)
			fmt.Fprintf(out, "Rollover: +%d kcal (included: %v)\n", goal.RolloverCalories, goal.IncludeRollover)
			fmt.Fprintf(out, "Effective: %d kcal\n", goal.EffectiveCalories)
			return nil
		})
	},
}

var goalHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show goal history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			goals, err := service.GoalHistory(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tKCAL\tP\tC\tF")
			for _, g := range goals {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%.1f\t%.1f\t%.1f\n", g.EffectiveDate, g.Calories, g.ProteinG, g.CarbsG, g.FatG)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalSetCmd, goalShowCmd, goalHistoryCmd)

	goalSetCmd.Flags().IntVar(&goalCalories, "calories", 0, "Daily calorie target")
	goalSetCmd.Flags().Float64Var(&goalProtein, "protein", 0, "Daily protein target grams")
	goalSetCmd.Flags().Float64Var(&goalCarbs, "carbs", 0, "Daily carbs target grams")
	goalSetCmd.Flags().Float64Var(&goalFat, "fat", 0, "Daily fat target grams")
	goalSetCmd.Flags().StringVar(&goalDate, "effective-date", "", "Effective date YYYY-MM-DD (default today)")
	_ = goalSetCmd.MarkFlagRequired("calories")

	goalShowCmd.Flags().StringVar(&showGoalDate, "date", "", "Resolve goal at date YYYY-MM-DD (default today)")
}
