package cli

import (
	"github.com/mariakotova/atelier/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Orders    service.OrderService
	Customers service.CustomerService
	Settings  service.SettingsService
	Planner   service.PlannerService

	// UserID scopes every command; single-tenant installs keep the default.
	UserID string

	// IsInteractive reports whether stdin is a terminal. Wizards and the
	// board need it; nil means non-interactive.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "atelier" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "atelier",
		Short: "Day-capacity planner for tailoring orders",
	}

	root.AddCommand(
		newPlannerCmd(app),
		newMoveCmd(app),
		newCheckCmd(app),
		newOrderCmd(app),
		newCustomerCmd(app),
		newSettingsCmd(app),
		newBoardCmd(app),
	)

	return root
}
