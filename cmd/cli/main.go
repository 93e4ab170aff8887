package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/juliagrant/careshift/cmd/cli/commands"
	"github.com/juliagrant/careshift/internal/config"
	"github.com/juliagrant/careshift/pkg/clients/geminiclient"
	"github.com/juliagrant/careshift/pkg/clients/identityclient"
	"github.com/juliagrant/careshift/pkg/core/match"
	"github.com/juliagrant/careshift/pkg/postgres"
	"github.com/juliagrant/careshift/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "careshift",
		Short: "Careshift CLI - Match healthcare staff to hospital shifts",
		Long:  `A CLI tool for staffing recommendations, shift assignment validation and recurring shift posting management.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.RecommendStaffCmd(appRef()))
	rootCmd.AddCommand(commands.RecommendJobsCmd(appRef()))
	rootCmd.AddCommand(commands.ConfirmAssignmentCmd(appRef()))
	rootCmd.AddCommand(commands.UpdateAssignmentCmd(appRef()))
	rootCmd.AddCommand(commands.DefineShiftSeriesCmd(appRef()))
	rootCmd.AddCommand(commands.RegisterStaffCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext, creating the placeholder that
// initApp later fills. Commands capture the pointer before PersistentPreRunE
// runs.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up the logger, config, clients and database
func initApp() error {
	appRef()
	app.Ctx = context.Background()

	var err error
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	// API keys live in .env, not in the yaml config
	if err := godotenv.Load(); err != nil {
		app.Logger.Debug("no .env file found, relying on process environment")
	}

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	geminiKey := os.Getenv("GEMINI_API_KEY")
	app.Reranker = match.NewReranker(match.RerankConfig{
		Enabled:    app.Cfg.Recommendations.Enabled,
		Provider:   app.Cfg.Recommendations.Provider,
		Model:      app.Cfg.Recommendations.Model,
		APIKey:     geminiKey,
		Timeout:    app.Cfg.Recommendations.Timeout(),
		MaxRetries: app.Cfg.Recommendations.Retries(),
	}, geminiclient.New(geminiKey), app.Logger)

	app.Identity = identityclient.New(app.Cfg.Identity.BaseURL, os.Getenv("IDENTITY_SERVICE_KEY"))

	app.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Database = database
	app.Logger.Info("Database initialized successfully")

	return nil
}
