package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"neocommerce.in/storefront/pkg/global"
	"neocommerce.in/storefront/pkg/mongo"
)

var seedCatalogCmd = &cobra.Command{
	Use:   "seed-catalog",
	Short: "Write the catalogue into MongoDB and ensure its indexes",
	Long: `Upserts every product from --catalog (or the built-in catalogue) into the
products collection of MONGODB_DATABASE, keyed by product id, then creates the
product indexes. Running it twice is safe.`,
	RunE: runSeedCatalog,
}

func runSeedCatalog(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cat, err := fileOrDefaultCatalog(cfg)
	if err != nil {
		return err
	}

	mc, err := mongo.Connect(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = mc.Disconnect(context.Background()) }()

	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	if err := mc.EnsureIndexes(ctx); err != nil {
		return err
	}
	changed, err := mc.SeedProducts(ctx, cat.Products())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d products (%d inserted or updated)\n", cat.Len(), changed)
	return nil
}
