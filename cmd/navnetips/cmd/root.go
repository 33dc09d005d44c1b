package cmd

import (
	"context"
	"fmt"

	"github.com/magnuspl/navnetips/internal/app"
	"github.com/magnuspl/navnetips/internal/domain/catalog"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagDataDir string
	flagStorage string
	flagColor   string
	flagNoColor bool
	flagJSON    bool
)

// useColor is resolved once per invocation from --color/--no-color.
var useColor bool

var rootCmd = &cobra.Command{
	Use:           "navnetips",
	Short:         "navnetips: Norwegian baby and pet names",
	Long:          "Browse, search and shuffle Norwegian names for boys, girls, dogs and cats, and keep a list of favorites.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		useColor, err = resolveColor(flagColor, flagNoColor, cmd.OutOrStdout())
		return err
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "error: %v\n", err)
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagDataDir, "data-dir", "", "data directory (overrides NAVNETIPS_DATA_DIR)")
	pf.StringVar(&flagStorage, "storage", "", "favorites storage: bolt, file or redis (overrides NAVNETIPS_STORAGE)")
	pf.StringVar(&flagColor, "color", "auto", "color output: auto, always or never")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable color output")
	pf.BoolVar(&flagJSON, "json", false, "print JSON instead of text")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(originsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(popularCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(favCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the environment (and .env) and applies flag overrides.
func loadConfig() (app.Config, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return cfg, err
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagStorage != "" {
		cfg.Storage = flagStorage
	}
	return cfg, cfg.Validate()
}

// loadCatalogue loads only the catalogue, without opening storage. Used by
// the read-only commands so they work while `serve` holds the bolt lock.
func loadCatalogue() (*catalog.Catalogue, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.LoadCatalogue(cfg.CatalogPath)
}

// openApp creates a fully wired App. The caller must Stop it.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := app.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		if isDBLockError(err) {
			return nil, fmt.Errorf("%s", diagnoseDBLock(app.NewPaths(cfg.DataDir)))
		}
		log.Debug("init failed", zap.Error(err))
		return nil, fmt.Errorf("init: %w", err)
	}
	return a, nil
}
