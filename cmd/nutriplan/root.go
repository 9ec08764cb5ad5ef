package nutriplan

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "nutriplan",
	Short: "nutriplan tracks diet plans, adherence, and goals from your terminal",
	Long:  "nutriplan is a local-first nutrition CLI with diet plans, scheduled meals, adherence reports, effective calorie goals, and achievements.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
