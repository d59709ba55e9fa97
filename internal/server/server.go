// Package server boots the sweet shop: configuration, logging, database,
// storage, the object graph and the HTTP listener with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/sweetshop/app/controllers"
	"github.com/shashiranjanraj/sweetshop/app/repositories"
	"github.com/shashiranjanraj/sweetshop/app/routes"
	"github.com/shashiranjanraj/sweetshop/app/services"
	"github.com/shashiranjanraj/sweetshop/config"
	"github.com/shashiranjanraj/sweetshop/pkg/database"
	"github.com/shashiranjanraj/sweetshop/pkg/logger"
	"github.com/shashiranjanraj/sweetshop/pkg/router"
	"github.com/shashiranjanraj/sweetshop/pkg/storage"
)

const shutdownGrace = 10 * time.Second

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests, disconnects Mongo and flushes the log sink.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if uri := config.LogMongoURI(); uri != "" {
		mh, err := logger.AttachMongo(uri, config.LogMongoDB())
		if err != nil {
			return fmt.Errorf("attach mongo log sink: %w", err)
		}
		defer mh.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := database.Connect(ctx, config.MongoURI())
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer database.Disconnect(client)

	db := client.Database(config.MongoDB())
	if err := database.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	storage.Connect()

	authController, sweetController := buildControllers(db)

	r := router.New()
	routes.RegisterAPI(r, authController, sweetController)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("sweetshop listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// buildControllers wires the object graph: mongo repositories into services
// into controllers. The database handle is injected explicitly rather than
// read from a global, so every dependency of a handler is visible here.
func buildControllers(db *mongo.Database) (*controllers.AuthController, *controllers.SweetController) {
	users := repositories.NewMongoUserRepository(db)
	sweets := repositories.NewMongoSweetRepository(db)

	authService := services.NewAuthService(users)
	sweetService := services.NewSweetService(sweets, storage.Default())

	return controllers.NewAuthController(authService), controllers.NewSweetController(sweetService)
}
