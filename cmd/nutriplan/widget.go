package nutriplan

import (
	"fmt"

	"github.com/arshanh/nutriplan-cli/internal/app"
	"github.com/arshanh/nutriplan-cli/internal/widget"
	"github.com/spf13/cobra"
)

var widgetCmd = &cobra.Command{
	Use:   "widget",
	Short: "Inspect the cross-process widget snapshot",
}

var widgetShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the last published snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		snapshot, err := widget.Read(app.WidgetSnapshotPath(path))
		if err != nil {
			return err
		}
		if snapshot == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No snapshot published yet")
			return nil
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Date: %s\n", snapshot.Date)
		fmt.Fprintf(out, "Intake: %d kcal\n", snapshot.Calories)
		fmt.Fprintf(out, "Macros: P %.1fg | C %.1fg | F %.1fg\n", snapshot.ProteinG, snapshot.CarbsG, snapshot.FatG)
		if snapshot.GoalCalories > 0 {
			fmt.Fprintf(out, "Goal: %d kcal | P %.1fg | C %.1fg | F %.1fg\n", snapshot.GoalCalories, snapshot.GoalProteinG, snapshot.GoalCarbsG, snapshot.GoalFatG)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(widgetCmd)
	widgetCmd.AddCommand(widgetShowCmd)
}
