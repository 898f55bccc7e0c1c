package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"trip-booking/cmd"
	"trip-booking/internal/data/repository"
	"trip-booking/internal/event"
	"trip-booking/internal/scheduler"
	"trip-booking/internal/wire"
	"trip-booking/pkg/database"
	"trip-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if config.Database.Migrate {
		if err := database.Migrate(database.DSN(config.Database), logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	rdb := database.InitRedis(ctx, config.Redis, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	var publisher event.Publisher = event.NoopPublisher{}
	if config.RabbitMQ.URL != "" {
		amqpPublisher, err := event.NewAMQPPublisher(config.RabbitMQ.URL, logger)
		if err != nil {
			logger.Warn("RabbitMQ unavailable, booking events disabled", zap.Error(err))
		} else {
			publisher = amqpPublisher
		}
	}
	defer publisher.Close()

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, publisher, rdb, logger)

	go scheduler.New(app.Service.Booking, config.Booking.ExpiryInterval, logger).Start(ctx)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
