package cmd

import (
	"fmt"

	"github.com/magnuspl/navnetips/internal/app"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows the effective configuration, data paths and whether a server is running. Opens no storage.",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

type configResult struct {
	Config app.Config `json:"config"`
	Paths  *app.Paths `json:"paths"`
	Server string     `json:"server,omitempty"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	paths := app.NewPaths(cfg.DataDir)
	addr, running := paths.ServerAddr()

	if flagJSON {
		res := configResult{Config: cfg, Paths: paths}
		if running {
			res.Server = "http://" + addr
		}
		return writeJSON(cmd.OutOrStdout(), res)
	}

	catalogue := cfg.CatalogPath
	if catalogue == "" {
		catalogue = "(embedded)"
	}
	serverStatus := paint(colorYellow, "✗ not running")
	if running {
		serverStatus = paint(colorGreen, "✓ http://"+addr)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s\n", paint(colorBold, "⚡ navnetips config"))
	fmt.Fprintf(w, "  Data:       %s\n", paths.Root)
	fmt.Fprintf(w, "  Storage:    %s\n", cfg.Storage)
	switch cfg.Storage {
	case app.StorageBolt:
		fmt.Fprintf(w, "  DB:         %s\n", paths.DB)
	case app.StorageFile:
		fmt.Fprintf(w, "  KV dir:     %s\n", paths.KVDir)
	case app.StorageRedis:
		fmt.Fprintf(w, "  Redis:      %s\n", cfg.RedisURL)
	}
	fmt.Fprintf(w, "  Key:        %s\n", cfg.FavoritesKey)
	fmt.Fprintf(w, "  Catalogue:  %s\n", catalogue)
	fmt.Fprintf(w, "  Page size:  %d\n", cfg.PageSize)
	fmt.Fprintf(w, "  Server:     %s\n", serverStatus)
	return nil
}
