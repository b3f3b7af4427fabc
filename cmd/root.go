// Package cmd implements the arviewer command line.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/medar/arviewer/internal/catalog"
	"github.com/medar/arviewer/internal/config"
	"github.com/medar/arviewer/internal/loader"
	"github.com/medar/arviewer/internal/logging"
	"github.com/medar/arviewer/version"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "arviewer",
	Short: "Interactive 3D anatomy viewer with annotated landmarks",
	Long: `arviewer displays organ models with anatomical landmarks for medical
education. Landmarks are grouped into basic, intermediate and advanced levels;
selecting one shows its description and marks it as visited.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(configDir); err != nil {
			return err
		}
		logging.Setup(config.GetString("logLevel"), os.Stderr)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory containing arviewer.yaml and .env")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("debug", false, "show debug output and error details")
	rootCmd.PersistentFlags().String("catalog-dir", "", "load models.yaml and catalogs from a directory instead of the built-in data")
	rootCmd.PersistentFlags().String("base-url", "", "base URL for relative asset paths")

	_ = viper.BindPFlag("logLevel", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("catalog.dir", rootCmd.PersistentFlags().Lookup("catalog-dir"))
	_ = viper.BindPFlag("assets.baseUrl", rootCmd.PersistentFlags().Lookup("base-url"))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadRegistry returns the configured model registry
func loadRegistry() (*catalog.Registry, error) {
	var (
		reg *catalog.Registry
		err error
	)
	if dir := config.GetString("catalog.dir"); dir != "" {
		reg, err = catalog.LoadDir(dir)
	} else {
		reg, err = catalog.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	if base := config.GetString("assets.baseUrl"); base != "" {
		reg.SetBaseURL(base)
	}
	return reg, nil
}

// newLoader creates a loader from the configuration
func newLoader(reg *catalog.Registry) *loader.Loader {
	return loader.New(loader.Config{
		BaseURL:  reg.BaseURL(),
		CacheDir: config.GetString("assets.cacheDir"),
		Timeout:  config.GetDuration("assets.timeout"),
		Debug:    config.GetBool("debug"),
	})
}

// sessionPath returns where the signed-in user is stored
func sessionPath() string {
	if p := config.GetString("session.file"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "arviewer", "session.json")
}
