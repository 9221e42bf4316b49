package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mariakotova/atelier/internal/cli/formatter"
	"github.com/mariakotova/atelier/internal/contract"
	"github.com/mariakotova/atelier/internal/planner"
	"github.com/spf13/cobra"
)

func newPlannerCmd(app *App) *cobra.Command {
	var from, user string
	var weeks int

	cmd := &cobra.Command{
		Use:   "planner",
		Short: "Show the day-capacity planner",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewPlannerViewRequest(userOrDefault(app, user))
			if weeks > 0 {
				req.Weeks = weeks
			}
			if from != "" {
				d, err := parseDateFlag(from)
				if err != nil {
					return err
				}
				req.StartDate = &d
			}

			resp, err := app.Planner.View(context.Background(), req)
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header(fmt.Sprintf("Planner from %s", resp.StartDate.Format("Jan 2"))))
			fmt.Printf("  Daily capacity: %s\n\n", formatter.FormatMinutes(resp.CapacityMinutes))

			headers := []string{"DAY", "LOAD", "PLANNED", "ORDERS"}
			rows := make([][]string, 0, len(resp.Days))
			for _, day := range resp.Days {
				rows = append(rows, plannerRow(day))
			}
			fmt.Print(formatter.RenderTable(headers, rows))

			if len(resp.Unscheduled) > 0 {
				fmt.Println()
				fmt.Print(formatter.RenderBox("Waiting", renderUnscheduled(resp.Unscheduled)))
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&weeks, "weeks", 0, "Number of weeks to show (default 2)")
	cmd.Flags().StringVar(&from, "from", "", "First week to show (YYYY-MM-DD, snaps to Monday)")
	addUserFlag(cmd.Flags(), &user)

	cmd.AddCommand(newPlannerDayCmd(app))
	return cmd
}

func newPlannerDayCmd(app *App) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "day DATE",
		Short: "Show one day in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateFlag(args[0])
			if err != nil {
				return err
			}

			resp, err := app.Planner.DayOn(context.Background(), userOrDefault(app, user), date)
			if err != nil {
				return err
			}
			day := resp.Days[0]

			fmt.Println(formatter.Header(formatter.DayHeading(day.Date)))
			fmt.Printf("  %s  %s of %s planned\n\n",
				formatter.OccupancyBar(day.OccupancyPct, day.IsOverLimit, 12),
				formatter.FormatMinutes(day.TotalMinutes),
				formatter.FormatMinutes(day.CapacityMinutes),
			)
			if day.IsOverLimit {
				fmt.Printf("  %s\n\n", formatter.StyleRed.Render(fmt.Sprintf("Over limit by %s", formatter.FormatMinutes(day.OverMinutes))))
			}
			if !day.IsWorkDay {
				fmt.Printf("  %s\n\n", formatter.Dim("Day off"))
			}

			if len(day.Orders) == 0 {
				fmt.Println(formatter.Dim("  Nothing planned."))
				return nil
			}

			headers := []string{"#", "ID", "ORDER", "PART", "MINUTES", "STATUS"}
			rows := make([][]string, 0, len(day.Orders))
			for i, o := range day.Orders {
				rows = append(rows, []string{
					fmt.Sprintf("%d", i+1),
					formatter.TruncID(o.ID),
					o.Title,
					formatter.PartBadge(o.PartLabel()),
					formatter.FormatMinutes(o.PlannedMinutes),
					formatter.StatusPill(o.Status),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	addUserFlag(cmd.Flags(), &user)
	return cmd
}

func plannerRow(day planner.DayView) []string {
	heading := formatter.DayHeading(day.Date)
	if !day.IsWorkDay {
		heading = formatter.Dim(heading)
	}

	titles := make([]string, 0, len(day.Orders))
	for _, o := range day.Orders {
		title := o.Title
		if badge := formatter.PartBadge(o.PartLabel()); badge != "" {
			title += " " + badge
		}
		titles = append(titles, title)
	}

	return []string{
		heading,
		formatter.OccupancyBar(day.OccupancyPct, day.IsOverLimit, 8),
		formatter.FormatMinutes(day.TotalMinutes),
		strings.Join(titles, ", "),
	}
}

func renderUnscheduled(cards []contract.OrderCard) string {
	headers := []string{"ID", "ORDER", "DURATION", "CUSTOMER"}
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		customer := c.CustomerName
		if customer == "" {
			customer = formatter.Dim("--")
		}
		rows = append(rows, []string{
			formatter.TruncID(c.ID),
			c.Title,
			formatter.FormatMinutes(c.TotalMinutes),
			customer,
		})
	}
	return formatter.RenderTable(headers, rows)
}
