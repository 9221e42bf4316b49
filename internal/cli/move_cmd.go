package cli

import (
	"context"
	"fmt"

	"github.com/mariakotova/atelier/internal/cli/formatter"
	"github.com/mariakotova/atelier/internal/contract"
	"github.com/spf13/cobra"
)

func newMoveCmd(app *App) *cobra.Command {
	var to, user string
	var rank int
	var unschedule, dryRun bool

	cmd := &cobra.Command{
		Use:   "move ORDER_ID",
		Short: "Place an order on a day, splitting it over capacity limits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" && !unschedule {
				return fmt.Errorf("pass --to DATE or --unschedule")
			}
			if to != "" && unschedule {
				return fmt.Errorf("--to and --unschedule are mutually exclusive")
			}

			req := contract.NewMoveOrderRequest(userOrDefault(app, user), args[0])
			req.DryRun = dryRun
			if to != "" {
				d, err := parseDateFlag(to)
				if err != nil {
					return err
				}
				req.Date = &d
			}
			if cmd.Flags().Changed("rank") {
				req.Rank = &rank
			}

			resp, err := app.Planner.MoveOrder(context.Background(), req)
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Println(formatter.Dim("Dry run; nothing saved."))
			}

			o := resp.Order
			if o.PlannedDate == nil {
				fmt.Printf("Unscheduled %q\n", o.Title)
			} else if len(resp.Parts) == 0 {
				fmt.Printf("Planned %q on %s (%s)\n",
					o.Title, formatter.DayHeading(*o.PlannedDate), formatter.FormatMinutes(o.PlannedMinutes))
			} else {
				fmt.Printf("Planned %q across %d days:\n", o.Title, o.TotalParts)
				headers := []string{"PART", "DAY", "MINUTES"}
				rows := [][]string{{formatter.PartBadge(o.PartLabel()), formatter.DayHeading(*o.PlannedDate), formatter.FormatMinutes(o.PlannedMinutes)}}
				for _, p := range resp.Parts {
					rows = append(rows, []string{
						formatter.PartBadge(p.PartLabel()),
						formatter.DayHeading(*p.PlannedDate),
						formatter.FormatMinutes(p.PlannedMinutes),
					})
				}
				fmt.Print(formatter.RenderTable(headers, rows))
			}

			for _, w := range resp.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "  WARNING: %s\n", w)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Target date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&unschedule, "unschedule", false, "Take the order off the calendar")
	cmd.Flags().IntVar(&rank, "rank", 0, "Position within the day (0-based)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute the plan without saving")
	addUserFlag(cmd.Flags(), &user)

	return cmd
}

func newCheckCmd(app *App) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "check ORDER_ID DATE",
		Short: "Check whether a day has room for an order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateFlag(args[1])
			if err != nil {
				return err
			}

			check, err := app.Planner.CheckDayLimit(context.Background(), contract.DayLimitRequest{
				UserID:  userOrDefault(app, user),
				OrderID: args[0],
				Date:    date,
			})
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header(formatter.DayHeading(check.Date)))
			fmt.Printf("  Committed: %s of %s\n", formatter.FormatMinutes(check.CommittedMinutes), formatter.FormatMinutes(check.CapacityMinutes))
			fmt.Printf("  Order:     %s\n", formatter.FormatMinutes(check.OrderMinutes))
			fmt.Printf("  Projected: %s\n", formatter.FormatMinutes(check.ProjectedMinutes))
			if check.Exceeds {
				fmt.Printf("  %s\n", formatter.StyleRed.Render(fmt.Sprintf("Over the limit by %s; the tail would spill onto following days", formatter.FormatMinutes(check.OverMinutes))))
			} else {
				fmt.Printf("  %s\n", formatter.StyleGreen.Render("Fits"))
			}
			return nil
		},
	}

	addUserFlag(cmd.Flags(), &user)
	return cmd
}
