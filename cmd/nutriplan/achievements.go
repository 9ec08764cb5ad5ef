package nutriplan

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/arshanh/nutriplan-cli/internal/service"
	"github.com/spf13/cobra"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Check and list earned achievements",
}

var achievementsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate milestone rules and report anything newly earned",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			milestones, err := service.CheckAchievements(sqldb, time.Now())
			if err != nil {
				return err
			}
			if len(milestones) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing new earned")
				return nil
			}
			for _, m := range milestones {
				fmt.Fprintf(cmd.OutOrStdout(), "Earned: %s (%s)\n", m.Title, m.Code)
			}
			return nil
		})
	},
}

var achievementsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List earned achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			earned, err := service.ListAchievements(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "CODE\tTITLE\tEARNED")
			for _, a := range earned {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", a.Code, a.Title, a.EarnedAt.Local().Format("2006-01-02"))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(achievementsCmd)
	achievementsCmd.AddCommand(achievementsCheckCmd, achievementsListCmd)
}
