package main

import (
	"fmt"
	"os"

	"github.com/mariakotova/atelier/internal/cli"
	"github.com/mariakotova/atelier/internal/config"
	"github.com/mariakotova/atelier/internal/db"
	"github.com/mariakotova/atelier/internal/repository"
	"github.com/mariakotova/atelier/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := config.EnsureDirectories(); err != nil {
		return fmt.Errorf("preparing data directories: %w", err)
	}

	dbPath, err := cfg.ResolveDatabasePath()
	if err != nil {
		return fmt.Errorf("resolving database path: %w", err)
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	orderRepo := repository.NewSQLiteOrderRepo(database)
	customerRepo := repository.NewSQLiteCustomerRepo(database)
	configRepo := repository.NewSQLitePlannerConfigRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	settingsSvc := service.NewSettingsService(configRepo, cfg.DefaultHoursPerDay, cfg.DefaultWorkDays)

	var observers []service.UseCaseObserver
	if os.Getenv("ATELIER_DEBUG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Orders:    service.NewOrderService(orderRepo),
		Customers: service.NewCustomerService(customerRepo),
		Settings:  settingsSvc,
		Planner:   service.NewPlannerService(orderRepo, customerRepo, settingsSvc, uow, observers...),
		UserID:    cfg.DefaultUser,
	}

	// Detect interactive terminal for forms and the board.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
