package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unclebandit/campaign-workflow/internal/config"
	"github.com/unclebandit/campaign-workflow/internal/logger"
	"github.com/unclebandit/campaign-workflow/internal/provider"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		kind        string
		fixturePath string
		migrate     bool
	)

	cmd := &cobra.Command{
		Use:   "seeder",
		Short: "Load a YAML dataset into a SQL-backed data provider",
		Long: `Creates the campaign tables and loads records from a fixture file.

The target store comes from the environment, the same way the server picks it.
Use --provider to override DATA_PROVIDER.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if kind != "" {
				cfg.DataProvider = kind
			}
			if fixturePath != "" {
				cfg.FixturePath = fixturePath
			}
			logr := logger.Must(cfg.Production(), cfg.LogLevel)
			defer logr.Sync()

			return seed(cmd.Context(), cfg, migrate, logr)
		},
	}

	cmd.Flags().StringVar(&kind, "provider", "", "target provider: databricks, postgres or sqlite")
	cmd.Flags().StringVar(&fixturePath, "fixture", "", "fixture file (default FIXTURE_PATH)")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "create missing tables first")
	return cmd
}

func seed(ctx context.Context, cfg config.Config, migrate bool, logr *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	p, err := provider.New(cfg, logr)
	if err != nil {
		return err
	}
	w, ok := p.(*provider.Warehouse)
	if !ok {
		return fmt.Errorf("provider %s has no SQL store to seed", p.Kind())
	}
	defer w.Close()

	data, err := provider.ReadFixture(cfg.FixturePath)
	if err != nil {
		return err
	}
	if migrate {
		if err := w.Migrate(ctx); err != nil {
			return err
		}
		logr.Info("tables ready", zap.String("campaigns", w.Tables().Campaigns))
	}
	return w.Seed(ctx, data)
}
