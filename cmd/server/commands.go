package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dappwork/marketplace/internal/bootstrap"
	"github.com/dappwork/marketplace/internal/config"
	"github.com/dappwork/marketplace/internal/infra/cache"
	"github.com/dappwork/marketplace/internal/infra/db"
	mq "github.com/dappwork/marketplace/internal/infra/queue"
	"github.com/dappwork/marketplace/internal/modules/handler"
	"github.com/dappwork/marketplace/internal/router"
	"github.com/dappwork/marketplace/internal/telemetry"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/samber/do"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		inj := bootstrap.BuildContainer()
		cfg := do.MustInvoke[*config.Config](inj)
		log := do.MustInvoke[*zap.Logger](inj)
		defer log.Sync()

		if cfg.Store.InMemory() {
			return errors.New("store.driver is memory, nothing to migrate")
		}
		d, err := do.Invoke[*gorm.DB](inj)
		if err != nil {
			return err
		}
		// auto_migrate already ran while the container built the connection.
		if !cfg.Database.AutoMigrate {
			if err := db.Migrate(d); err != nil {
				return err
			}
		}
		log.Info("schema is up to date")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample marketplace into the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		inj := bootstrap.BuildContainer()
		log := do.MustInvoke[*zap.Logger](inj)
		defer log.Sync()
		defer closeClients(inj, log)

		seeder, err := do.Invoke[*bootstrap.Seeder](inj)
		if err != nil {
			return err
		}
		return seeder.Run(cmd.Context())
	},
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	inj := bootstrap.BuildContainer()
	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer log.Sync()

	if _, err := telemetry.SetupTracing(cfg); err != nil {
		log.Warn("tracing disabled", zap.Error(err))
	}

	if cfg.Database.Seed {
		seeder := do.MustInvoke[*bootstrap.Seeder](inj)
		if err := seeder.Run(parent); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	engine := router.NewRouter(router.RouterDeps{
		Config:               cfg,
		Log:                  log,
		UserHandler:          do.MustInvoke[*handler.UserHandler](inj),
		ProjectHandler:       do.MustInvoke[*handler.ProjectHandler](inj),
		ProjectModuleHandler: do.MustInvoke[*handler.ProjectModuleHandler](inj),
		SmartContractHandler: do.MustInvoke[*handler.SmartContractHandler](inj),
		ProposalHandler:      do.MustInvoke[*handler.ProposalHandler](inj),
		MessageHandler:       do.MustInvoke[*handler.MessageHandler](inj),
		MilestoneHandler:     do.MustInvoke[*handler.MilestoneHandler](inj),
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           c.Handler(engine),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Sugar().Infow("starting http server", "addr", srv.Addr, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.App.ShutdownTimeoutSec)*time.Second)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		if terr := telemetry.Shutdown(shutdownCtx); terr != nil {
			log.Warn("flush traces", zap.Error(terr))
		}
		closeClients(inj, log)
		return err
	})
	return g.Wait()
}

// closeClients releases the connections the container opened, if any.
func closeClients(inj *do.Injector, log *zap.Logger) {
	cfg := do.MustInvoke[*config.Config](inj)
	if cfg.RabbitMQ.Enabled {
		if pub, err := do.Invoke[*mq.Publisher](inj); err == nil {
			if err := pub.Close(); err != nil {
				log.Warn("close rabbitmq", zap.Error(err))
			}
		}
	}
	if cfg.Redis.Enabled {
		if rdb, err := do.Invoke[*redis.Client](inj); err == nil {
			if err := cache.Close(rdb); err != nil {
				log.Warn("close redis", zap.Error(err))
			}
		}
	}
}
