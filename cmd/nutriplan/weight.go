package nutriplan

import (
	"database/sql"
	"fmt"

	"github.com/arshanh/nutriplan-cli/internal/service"
	"github.com/spf13/cobra"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Track body weight",
}

var (
	weightKg    float64
	weightDate  string
	weightTime  string
	weightNotes string
)

var weightLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a weight entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		recorded, err := parseDateTimeOrNow(weightDate, weightTime)
		if err != nil {
			return err
		}
		in := service.LogWeightInput{WeightKg: weightKg, RecordedAt: recorded, Notes: weightNotes}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.LogWeight(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged weight %s\n", id)
			return nil
		})
	},
}

var weightLimit int

var weightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List weight entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			entries, err := service.ListWeights(sqldb, weightLimit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tKG\tNOTES")
			for _, w := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.1f\t%s\n", w.ID, w.RecordedAt.Local().Format("2006-01-02 15:04"), w.WeightKg, w.Notes)
			}
			return nil
		})
	},
}

var weightDeleteCmd = &cobra.Command{
	Use:   "delete <weight-id>",
	Short: "Delete a weight entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteWeight(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted weight entry %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(weightCmd)
	weightCmd.AddCommand(weightLogCmd, weightListCmd, weightDeleteCmd)

	weightLogCmd.Flags().Float64Var(&weightKg, "kg", 0, "Weight in kilograms")
	weightLogCmd.Flags().StringVar(&weightDate, "date", "", "Date YYYY-MM-DD (default now)")
	weightLogCmd.Flags().StringVar(&weightTime, "time", "", "Time HH:MM")
	weightLogCmd.Flags().StringVar(&weightNotes, "notes", "", "Optional notes")
	_ = weightLogCmd.MarkFlagRequired("kg")

	weightListCmd.Flags().IntVar(&weightLimit, "limit", 30, "Result limit (0 for all)")
}
