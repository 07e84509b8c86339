package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"neocommerce.in/storefront/pkg/catalog"
	"neocommerce.in/storefront/pkg/global"
)

var (
	envFile     string
	catalogFile string
)

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "NeoCommerce storefront backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnv(envFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "YAML catalogue file (overrides CATALOG_FILE)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCatalogCmd)
	rootCmd.AddCommand(searchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadEnv applies the dotenv file. A missing file is not an error.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

func setup() (*global.Config, *zap.Logger, error) {
	cfg, err := global.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if catalogFile != "" {
		cfg.CatalogFile = catalogFile
	}
	logger, err := global.NewLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, logger, nil
}

// fileOrDefaultCatalog reads the configured YAML catalogue, falling back to the built-in one.
func fileOrDefaultCatalog(cfg *global.Config) (*catalog.Catalog, error) {
	if cfg.CatalogFile == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(cfg.CatalogFile)
}
