package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/storefront/gateway"
	"github.com/example/storefront/pkg/audit"
	"github.com/example/storefront/pkg/config"
	"github.com/example/storefront/pkg/discovery"
	"github.com/example/storefront/pkg/grpc"
	"github.com/example/storefront/pkg/repository"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// @title Storefront API
// @version 1.0
// @description Catalog, customers, orders and stock reports for the storefront.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configPath := pflag.StringP("config", "c", "config/config.yaml", "path to the YAML config file")
	pflag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	logger, err := cfg.Log.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting storefront API",
		zap.String("name", cfg.Server.Name),
		zap.Int("port", cfg.Server.Port))

	// MySQL
	db, err := repository.OpenMySQL(&cfg.MySQL)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	store := repository.NewStore(db, logger.Named("store"))
	defer store.Close()

	if err := store.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	ctx := context.Background()
	opts := gateway.Options{}

	// Redis profile cache
	if cfg.Redis.Addr != "" {
		redisRepo := repository.NewRedisRepository(&cfg.Redis)
		defer redisRepo.Close()

		if err := redisRepo.Ping(ctx); err != nil {
			logger.Warn("Redis connection failed, profile cache disabled", zap.Error(err))
		} else {
			logger.Info("Redis connected successfully")
			opts.Cache = redisRepo
		}
	}

	// MongoDB audit trail
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := repository.NewMongoRepository(ctx, &cfg.MongoDB)
		if err != nil {
			logger.Warn("MongoDB unreachable, audit trail disabled", zap.Error(err))
		} else {
			logger.Info("MongoDB connected successfully")

			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				mongoRepo.Close(closeCtx)
			}()

			recorder, err := audit.NewRecorder(mongoRepo, logger)
			if err != nil {
				logger.Fatal("Failed to start audit recorder", zap.Error(err))
			}
			defer recorder.Stop()
			opts.Audit = recorder
		}
	}

	gw := gateway.NewGateway(cfg, store, logger.Named("gateway"), opts)
	gw.SetupRoutes()

	serverErr := make(chan error, 2)
	go func() {
		if err := gw.Start(); err != nil {
			serverErr <- err
		}
	}()

	// gRPC health
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if cfg.Server.GRPCPort > 0 {
		hs := grpc.NewHealthServer(cfg.Server.Name, store, 15*time.Second, logger.Named("health"))
		go hs.Watch(watchCtx)
		go func() {
			if err := hs.Start(cfg.Server.Host, cfg.Server.GRPCPort); err != nil {
				serverErr <- err
			}
		}()
		defer hs.Stop()
	}

	// etcd registration
	var registration *discovery.Registration
	if len(cfg.Etcd.Endpoints) > 0 {
		sd, err := discovery.NewServiceDiscovery(&cfg.Etcd, logger.Named("discovery"))
		if err != nil {
			logger.Warn("Failed to connect to etcd, continuing without service discovery", zap.Error(err))
		} else {
			defer sd.Close()

			instance := &discovery.ServiceInstance{
				Name: cfg.Server.Name,
				Host: cfg.Server.Host,
				Port: cfg.Server.Port,
			}
			registration, err = sd.Register(ctx, instance)
			if err != nil {
				logger.Warn("Failed to register service", zap.Error(err))
			} else {
				logger.Info("Service registered in etcd",
					zap.String("name", instance.Name),
					zap.String("address", instance.Addr()))
			}
		}
	}

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-serverErr:
		logger.Error("Server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if registration != nil {
		if err := registration.Deregister(shutdownCtx); err != nil {
			logger.Error("Failed to deregister service", zap.Error(err))
		}
	}

	if err := gw.Shutdown(shutdownCtx); err != nil {
		logger.Error("Gateway shutdown failed", zap.Error(err))
	}

	logger.Info("Storefront API stopped")
}
