package nutriplan

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/arshanh/nutriplan-cli/internal/service"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage diet plans and their scheduled meals",
}

var (
	planName     string
	planActivate bool
)

var planCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a diet plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.CreatePlan(sqldb, service.CreatePlanInput{Name: planName, Activate: planActivate})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created plan %s\n", id)
			return nil
		})
	},
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List diet plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			plans, err := service.ListPlans(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tACTIVE")
			for _, p := range plans {
				active := ""
				if p.IsActive {
					active = "yes"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", p.ID, p.Name, active)
			}
			return nil
		})
	},
}

var planActivateCmd = &cobra.Command{
	Use:   "activate <plan-id>",
	Short: "Activate a plan (deactivates the rest)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.ActivatePlan(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Activated plan %s\n", args[0])
			return nil
		})
	},
}

var planDeactivateCmd = &cobra.Command{
	Use:   "deactivate <plan-id>",
	Short: "Deactivate a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeactivatePlan(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deactivated plan %s\n", args[0])
			return nil
		})
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show <plan-id>",
	Short: "Show a plan with its scheduled meals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			plan, err := service.GetPlan(sqldb, args[0])
			if err != nil {
				return err
			}
			if plan == nil {
				return fmt.Errorf("plan %s does not exist", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan: %s\n", plan.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Active: %v\n", plan.IsActive)
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tCATEGORY\tTIME\tWEEKDAYS\tTEMPLATE\tKCAL")
			for _, sm := range plan.ScheduledMeals {
				days := make([]string, len(sm.Weekdays))
				for i, d := range sm.Weekdays {
					days[i] = fmt.Sprintf("%d", d)
				}
				template := sm.TemplateName
				calories := ""
				if sm.HasTemplate() {
					calories = fmt.Sprintf("%d", sm.TemplateCalories())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", sm.ID, sm.Name, sm.Category, sm.TimeOfDay, strings.Join(days, ","), template, calories)
			}
			return nil
		})
	},
}

var (
	scheduledName     string
	scheduledCategory string
	scheduledTime     string
	scheduledWeekdays string
	scheduledTemplate string
	scheduledItems    []string
)

var planAddMealCmd = &cobra.Command{
	Use:   "add-meal <plan-id>",
	Short: "Add a scheduled meal to a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		weekdays, err := parseWeekdays(scheduledWeekdays)
		if err != nil {
			return err
		}
		items := make([]service.TemplateItemInput, 0, len(scheduledItems))
		for _, spec := range scheduledItems {
			item, err := parseItemSpec(spec)
			if err != nil {
				return err
			}
			items = append(items, service.TemplateItemInput(item))
		}
		in := service.AddScheduledMealInput{
			PlanID:        args[0],
			Name:          scheduledName,
			Category:      scheduledCategory,
			TimeOfDay:     scheduledTime,
			Weekdays:      weekdays,
			TemplateName:  scheduledTemplate,
			TemplateItems: items,
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.AddScheduledMeal(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added scheduled meal %s\n", id)
			return nil
		})
	},
}

var planRemoveMealCmd = &cobra.Command{
	Use:   "remove-meal <scheduled-meal-id>",
	Short: "Remove a scheduled meal from its plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.RemoveScheduledMeal(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed scheduled meal %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planCreateCmd, planListCmd, planActivateCmd, planDeactivateCmd, planShowCmd, planAddMealCmd, planRemoveMealCmd)

	planCreateCmd.Flags().StringVar(&planName, "name", "", "Plan name")
	planCreateCmd.Flags().BoolVar(&planActivate, "activate", false, "Activate the plan immediately")
	_ = planCreateCmd.MarkFlagRequired("name")

	planAddMealCmd.Flags().StringVar(&scheduledName, "name", "", "Scheduled meal name")
	planAddMealCmd.Flags().StringVar(&scheduledCategory, "category", "", "Category: breakfast, lunch, dinner, or snack")
	planAddMealCmd.Flags().StringVar(&scheduledTime, "time", "", "Time of day HH:MM")
	planAddMealCmd.Flags().StringVar(&scheduledWeekdays, "weekdays", "", "Recurrence weekdays, comma-separated (1=Sunday .. 7=Saturday)")
	planAddMealCmd.Flags().StringVar(&scheduledTemplate, "template", "", "Nutrition template name (required with --item)")
	planAddMealCmd.Flags().StringArrayVar(&scheduledItems, "item", nil, "Template item: name,portion,unit,calories[,protein,carbs,fat] (repeatable)")
	_ = planAddMealCmd.MarkFlagRequired("name")
	_ = planAddMealCmd.MarkFlagRequired("category")
	_ = planAddMealCmd.MarkFlagRequired("time")
	_ = planAddMealCmd.MarkFlagRequired("weekdays")
}
