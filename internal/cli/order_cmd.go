package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mariakotova/atelier/internal/cli/formatter"
	"github.com/mariakotova/atelier/internal/domain"
	"github.com/spf13/cobra"
)

func newOrderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Manage orders",
	}

	cmd.AddCommand(
		newOrderAddCmd(app),
		newOrderListCmd(app),
		newOrderShowCmd(app),
		newOrderStatusCmd(app),
		newOrderRemoveCmd(app),
	)

	return cmd
}

func newOrderAddCmd(app *App) *cobra.Command {
	var title, customerID, category, comment, user string
	var minutes int
	var price float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if title == "" && app.interactive() {
				var minutesStr string
				form := orderAddForm(&title, &minutesStr, &category, &comment)
				if err := form.Run(); err != nil {
					return err
				}
				if minutesStr != "" {
					minutes, _ = strconv.Atoi(minutesStr)
				}
			}
			if title == "" {
				return fmt.Errorf("pass --title or run interactively")
			}

			o := &domain.Order{
				UserID:       userOrDefault(app, user),
				Title:        title,
				Category:     category,
				Comment:      comment,
				TotalMinutes: minutes,
				PriceCents:   int64(price * 100),
			}
			if customerID != "" {
				o.CustomerID = &customerID
			}

			if err := app.Orders.Create(ctx, o); err != nil {
				return err
			}
			fmt.Printf("Created order %q (%s, %s)\n", o.Title, formatter.FormatMinutes(o.TotalMinutes), o.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Order title")
	cmd.Flags().IntVar(&minutes, "minutes", 60, "Estimated duration in minutes")
	cmd.Flags().StringVar(&customerID, "customer", "", "Customer ID")
	cmd.Flags().StringVar(&category, "category", "", "Order category")
	cmd.Flags().Float64Var(&price, "price", 0, "Price")
	cmd.Flags().StringVar(&comment, "comment", "", "Free-form comment")
	addUserFlag(cmd.Flags(), &user)

	return cmd
}

func newOrderListCmd(app *App) *cobra.Command {
	var user string
	var waitingOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			uid := userOrDefault(app, user)

			var orders []*domain.Order
			var err error
			if waitingOnly {
				orders, err = app.Orders.ListUnscheduled(ctx, uid)
			} else {
				orders, err = app.Orders.ListByUser(ctx, uid)
			}
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Println("No orders found.")
				return nil
			}

			headers := []string{"ID", "ORDER", "STATUS", "DURATION", "PLANNED", "PRICE"}
			rows := make([][]string, 0, len(orders))
			for _, o := range orders {
				planned := formatter.Dim("--")
				if o.PlannedDate != nil {
					planned = formatter.DayHeading(*o.PlannedDate)
					if badge := formatter.PartBadge(o.PartLabel()); badge != "" {
						planned += " " + badge
					}
				}
				rows = append(rows, []string{
					formatter.TruncID(o.ID),
					o.Title,
					formatter.StatusPill(o.Status),
					formatter.FormatMinutes(o.TotalMinutes),
					planned,
					formatter.FormatPrice(o.PriceCents),
				})
			}
			fmt.Print(formatter.RenderBox("Orders", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&waitingOnly, "waiting", false, "Only orders not yet on the calendar")
	addUserFlag(cmd.Flags(), &user)
	return cmd
}

func newOrderShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			o, err := app.Orders.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header(o.Title))
			fmt.Printf("  Status:   %s\n", formatter.StatusPill(o.Status))
			fmt.Printf("  Duration: %s\n", formatter.FormatMinutes(o.TotalMinutes))
			fmt.Printf("  Price:    %s\n", formatter.FormatPrice(o.PriceCents))
			if o.Category != "" {
				fmt.Printf("  Category: %s\n", o.Category)
			}
			if o.CustomerID != nil {
				if c, err := app.Customers.GetByID(ctx, *o.CustomerID); err == nil {
					fmt.Printf("  Customer: %s\n", c.DisplayName())
				}
			}
			if o.PlannedDate != nil {
				fmt.Printf("  Planned:  %s, %s", formatter.DayHeading(*o.PlannedDate), formatter.FormatMinutes(o.PlannedMinutes))
				if badge := formatter.PartBadge(o.PartLabel()); badge != "" {
					fmt.Printf(" %s", badge)
				}
				fmt.Println()
			} else {
				fmt.Printf("  Planned:  %s\n", formatter.Dim("not scheduled"))
			}
			if o.Comment != "" {
				fmt.Printf("  Comment:  %s\n", formatter.Dim(o.Comment))
			}
			return nil
		},
	}
}

func newOrderStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Set an order's status (new|in_progress|completed|canceled)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := domain.OrderStatus(args[1])
			if err := app.Orders.SetStatus(context.Background(), args[0], status); err != nil {
				return err
			}
			fmt.Printf("Order %s is now %s\n", args[0], formatter.StatusPill(status))
			return nil
		},
	}
}

func newOrderRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete an order and its split parts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Orders.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed order %s\n", args[0])
			return nil
		},
	}
}
