package main

import (
	"os"

	"github.com/spf13/cobra"

	"budgeteer/internal/cli"
	"budgeteer/internal/config"
	"budgeteer/internal/log"
	"budgeteer/internal/repo"
	"budgeteer/internal/services"
)

// app bundles the wired services for the command handlers. It is
// populated once in the root PersistentPreRun.
type app struct {
	logger       *log.Logger
	cfg          *config.Config
	repos        repo.Repositories
	settings     *services.SettingsService
	periods      *services.PeriodService
	categories   *services.CategoryService
	transactions *services.TransactionService
	budgets      *services.BudgetService
	alerts       *services.AlertService
	csv          *services.CSVService

	closeRepos func() error
}

var a app

var rootCmd = &cobra.Command{
	Use:   "budgeteer",
	Short: "Single-user budget tracker",
	Long:  "Track periods, category budgets, transactions and left-to-spend from the command line.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		cli.LoadEnvFile()
		bootstrapLogger := cli.SetupLogger("info")
		a.cfg = cli.LoadAndValidateConfig(bootstrapLogger)
		a.logger = cli.SetupLogger(a.cfg.LogLevel)
		a.repos, a.closeRepos = cli.OpenRepositories(a.logger, a.cfg)

		a.settings = services.NewSettingsService(a.repos.Settings)
		a.periods = services.NewPeriodService(a.repos.Periods, a.settings)
		a.categories = services.NewCategoryService(a.repos.Categories)
		a.transactions = services.NewTransactionService(a.repos.Transactions, a.repos.Categories, a.repos.Periods)
		a.budgets = services.NewBudgetService(a.repos.Budgets, a.repos.Periods, a.repos.Categories, a.repos.Transactions, a.settings)
		a.alerts = services.NewAlertService(a.repos.Alerts, a.repos.Categories, a.budgets, a.settings)
		a.csv = services.NewCSVService(a.repos.Transactions, a.repos.Categories, a.repos.Periods, a.repos.Budgets, a.repos.ImportBatches)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if a.closeRepos != nil {
			if err := a.closeRepos(); err != nil {
				a.logger.Error("Failed to close repositories", "error", err)
			}
		}
	},
	RunE: runSummary,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
