package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"neocommerce.in/storefront/internal/router"
	"neocommerce.in/storefront/pkg/catalog"
	"neocommerce.in/storefront/pkg/global"
	"neocommerce.in/storefront/pkg/mongo"
	"neocommerce.in/storefront/pkg/redis"
	"neocommerce.in/storefront/pkg/signup"
	"neocommerce.in/storefront/pkg/storage"
	"neocommerce.in/storefront/pkg/view"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := router.Dependencies{
		Config: cfg,
		Logger: logger,
		Health: map[string]router.Pinger{},
		Accounts: &signup.SimulatedAPI{
			Delay:       cfg.SignupDelay,
			FailureRate: cfg.SignupFailureRate,
		},
	}

	switch cfg.StorageBackend {
	case global.StorageRedis:
		rs := redis.NewStore(redis.RedisClient(cfg), cfg.StorageTTL)
		defer rs.Close()
		pingCtx, cancel := global.GetDefaultTimer()
		err := rs.Ping(pingCtx)
		cancel()
		if err != nil {
			return err
		}
		logger.Info("Connected to Redis", zap.String("address", cfg.RedisAddress))
		deps.Storage = rs
		deps.Health["redis"] = rs
	default:
		deps.Storage = storage.NewMemoryStore()
	}

	var mc *mongo.Client
	if cfg.MongoURI != "" {
		mc, err = mongo.Connect(cfg, logger)
		if err != nil {
			return err
		}
		defer func() { _ = mc.Disconnect(context.Background()) }()
		deps.Health["mongodb"] = mc
	}

	deps.Catalog, err = serveCatalog(cfg, mc)
	if err != nil {
		return err
	}
	logger.Info("Catalogue loaded", zap.Int("products", deps.Catalog.Len()))

	deps.Renderer, err = view.NewRenderer()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewEngine(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server is running", zap.String("port", cfg.Port), zap.String("storage", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// serveCatalog prefers an explicit file, then MongoDB, then the built-in catalogue.
func serveCatalog(cfg *global.Config, mc *mongo.Client) (*catalog.Catalog, error) {
	if cfg.CatalogFile != "" || mc == nil {
		return fileOrDefaultCatalog(cfg)
	}
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	return mc.LoadCatalog(ctx)
}
