package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mariakotova/atelier/internal/cli/formatter"
	"github.com/mariakotova/atelier/internal/domain"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Planner capacity settings",
	}

	cmd.AddCommand(
		newSettingsShowCmd(app),
		newSettingsSetCmd(app),
	)

	return cmd
}

func newSettingsShowCmd(app *App) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Settings.Get(context.Background(), userOrDefault(app, user))
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header("Planner Settings"))
			fmt.Printf("  Hours per day:  %d (%s capacity)\n", cfg.HoursPerDay, formatter.FormatMinutes(cfg.HoursPerDay*60))
			fmt.Printf("  Work days:      %s\n", workDayNames(cfg.WorkDays))
			return nil
		},
	}

	addUserFlag(cmd.Flags(), &user)
	return cmd
}

func newSettingsSetCmd(app *App) *cobra.Command {
	var workDays, user string
	var hours int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change capacity or work days",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			uid := userOrDefault(app, user)

			cfg, err := app.Settings.Get(ctx, uid)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("hours") && workDays == "" {
				if !app.interactive() {
					return fmt.Errorf("pass --hours or --work-days")
				}
				hoursStr := strconv.Itoa(cfg.HoursPerDay)
				daysStr := cfg.WorkDays.String()
				if err := settingsForm(&hoursStr, &daysStr).Run(); err != nil {
					return err
				}
				if v, err := strconv.Atoi(hoursStr); err == nil {
					cfg.HoursPerDay = v
				}
				cfg.WorkDays = domain.ParseWorkDays(daysStr)
			} else {
				if cmd.Flags().Changed("hours") {
					cfg.HoursPerDay = hours
				}
				if workDays != "" {
					cfg.WorkDays = domain.ParseWorkDays(workDays)
				}
			}

			if err := app.Settings.Update(ctx, cfg); err != nil {
				return err
			}
			fmt.Printf("Saved: %dh per day, work days %s\n", cfg.HoursPerDay, workDayNames(cfg.WorkDays))
			return nil
		},
	}

	cmd.Flags().IntVar(&hours, "hours", 8, "Working hours per day (1-24)")
	cmd.Flags().StringVar(&workDays, "work-days", "", "Comma-separated ISO weekdays, e.g. 1,2,3,4,5")
	addUserFlag(cmd.Flags(), &user)

	return cmd
}

var weekdayShort = map[int]string{
	1: "Mon", 2: "Tue", 3: "Wed", 4: "Thu", 5: "Fri", 6: "Sat", 7: "Sun",
}

func workDayNames(days domain.WorkDaySet) string {
	if len(days) == 0 {
		return formatter.Dim("none")
	}
	out := ""
	for d := 1; d <= 7; d++ {
		if !days[d] {
			continue
		}
		if out != "" {
			out += " "
		}
		out += weekdayShort[d]
	}
	return out
}
