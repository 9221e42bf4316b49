package cli

import (
	"context"
	"fmt"

	"github.com/mariakotova/atelier/internal/cli/formatter"
	"github.com/mariakotova/atelier/internal/domain"
	"github.com/spf13/cobra"
)

func newCustomerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage the customer book",
	}

	cmd.AddCommand(
		newCustomerAddCmd(app),
		newCustomerListCmd(app),
		newCustomerRemoveCmd(app),
	)

	return cmd
}

func newCustomerAddCmd(app *App) *cobra.Command {
	var firstName, lastName, phone, comment, user string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if firstName == "" && lastName == "" && app.interactive() {
				form := customerAddForm(&firstName, &lastName, &phone)
				if err := form.Run(); err != nil {
					return err
				}
			}
			if firstName == "" && lastName == "" {
				return fmt.Errorf("pass --first or --last, or run interactively")
			}

			c := &domain.Customer{
				UserID:    userOrDefault(app, user),
				FirstName: firstName,
				LastName:  lastName,
				Phone:     phone,
				Comment:   comment,
			}
			if err := app.Customers.Create(context.Background(), c); err != nil {
				return err
			}
			fmt.Printf("Added customer %s (%s)\n", c.DisplayName(), c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first", "", "First name")
	cmd.Flags().StringVar(&lastName, "last", "", "Last name")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone (+999999999, 9-15 digits)")
	cmd.Flags().StringVar(&comment, "comment", "", "Free-form comment")
	addUserFlag(cmd.Flags(), &user)

	return cmd
}

func newCustomerListCmd(app *App) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			customers, err := app.Customers.ListByUser(context.Background(), userOrDefault(app, user))
			if err != nil {
				return err
			}
			if len(customers) == 0 {
				fmt.Println("No customers yet.")
				return nil
			}

			headers := []string{"ID", "NAME", "PHONE", "COMMENT"}
			rows := make([][]string, 0, len(customers))
			for _, c := range customers {
				phone := c.Phone
				if phone == "" {
					phone = formatter.Dim("--")
				}
				rows = append(rows, []string{
					formatter.TruncID(c.ID),
					c.DisplayName(),
					phone,
					formatter.Dim(c.Comment),
				})
			}
			fmt.Print(formatter.RenderBox("Customers", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	addUserFlag(cmd.Flags(), &user)
	return cmd
}

func newCustomerRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a customer; their orders stay, unlinked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Customers.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed customer %s\n", args[0])
			return nil
		},
	}
}
