package nutriplan

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/arshanh/nutriplan-cli/internal/provider/mealvision"
	"github.com/arshanh/nutriplan-cli/internal/service"
	"github.com/spf13/cobra"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log and manage eaten meals",
}

var (
	mealName      string
	mealCategory  string
	mealDate      string
	mealTime      string
	mealNotes     string
	mealItems     []string
	mealPhoto     string
	mealVisionURL string
)

var mealLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Log an eaten meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		consumed, err := parseDateTimeOrNow(mealDate, mealTime)
		if err != nil {
			return err
		}
		in := service.LogMealInput{
			Name:       mealName,
			Category:   mealCategory,
			ConsumedAt: consumed,
			Notes:      mealNotes,
		}
		for _, spec := range mealItems {
			item, err := parseItemSpec(spec)
			if err != nil {
				return err
			}
			in.Items = append(in.Items, item)
		}
		if mealPhoto != "" {
			if len(in.Items) > 0 {
				return fmt.Errorf("cannot combine --from-photo with --item")
			}
			estimate, err := analyzePhoto(cmd.Context(), mealPhoto)
			if err != nil {
				return err
			}
			if in.Name == "" {
				in.Name = estimate.Name
			}
			for _, it := range estimate.Items {
				in.Items = append(in.Items, service.MealItemInput{
					Name:     it.Name,
					Portion:  it.Portion,
					Unit:     it.Unit,
					Calories: it.Calories,
					ProteinG: it.ProteinG,
					CarbsG:   it.CarbsG,
					FatG:     it.FatG,
				})
			}
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.LogMeal(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged meal %s\n", id)
			return nil
		})
	},
}

var mealListDate string

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meals for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseDateOrNow(mealListDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			meals, err := service.MealsForDay(sqldb, target)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tTIME\tCATEGORY\tNAME\tKCAL\tP\tC\tF")
			for _, m := range meals {
				p, c, f := m.Totals()
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%d\t%.1f\t%.1f\t%.1f\n", m.ID, m.ConsumedAt.Local().Format("15:04"), m.Category, m.Name, m.TotalCalories(), p, c, f)
			}
			return nil
		})
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <meal-id>",
	Short: "Delete a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteMeal(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %s\n", args[0])
			return nil
		})
	},
}

func analyzePhoto(ctx context.Context, path string) (mealvision.Estimate, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return mealvision.Estimate{}, fmt.Errorf("read photo %s: %w", path, err)
	}
	client := &mealvision.Client{BaseURL: mealVisionURL}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return client.AnalyzePhoto(ctx, image)
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealLogCmd, mealListCmd, mealDeleteCmd)

	mealLogCmd.Flags().StringVar(&mealName, "name", "", "Meal name")
	mealLogCmd.Flags().StringVar(&mealCategory, "category", "", "Category: breakfast, lunch, dinner, or snack (optional)")
	mealLogCmd.Flags().StringVar(&mealDate, "date", "", "Date YYYY-MM-DD (default now)")
	mealLogCmd.Flags().StringVar(&mealTime, "time", "", "Time HH:MM")
	mealLogCmd.Flags().StringVar(&mealNotes, "notes", "", "Optional notes")
	mealLogCmd.Flags().StringArrayVar(&mealItems, "item", nil, "Meal item: name,portion,unit,calories[,protein,carbs,fat] (repeatable)")
	mealLogCmd.Flags().StringVar(&mealPhoto, "from-photo", "", "Photo file to analyze for a nutrition estimate")
	mealLogCmd.Flags().StringVar(&mealVisionURL, "vision-url", "", "Photo analysis service base URL (required with --from-photo)")

	mealListCmd.Flags().StringVar(&mealListDate, "date", "", "Date YYYY-MM-DD (default today)")
}
