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

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"dispatch/cmd"
	httpserver "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/broadcast"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/ports"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	configs := getConfigs()

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	var extraPublishers []ports.EventPublisher
	if configs.AMQPURL != "" {
		publisher, closeAMQP, err := openAMQPPublisher(configs)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to AMQP broker")
		}
		defer closeAMQP()
		extraPublishers = append(extraPublishers, publisher)
	}

	root, err := cmd.NewCompositionRoot(configs, gormDB, log, extraPublishers...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to assemble application")
	}
	defer root.Hub().Close()

	e := echo.New()
	e.HideBanner = true

	validator, err := httpserver.NewValidationMiddleware()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load API contract")
	}
	e.Use(validator)

	root.CreateHTTPServer().RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(root.Recorder().Handler()))

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()
	log.Info().Str("port", configs.HTTPPort).Msg("dispatch engine started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
}

func getConfigs() cmd.Config {
	// Missing .env is fine, variables may come from the environment itself.
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:      envOrDefault("HTTP_PORT", "8080"),
		DBHost:        envOrDefault("DB_HOST", "localhost"),
		DBPort:        envOrDefault("DB_PORT", "5432"),
		DBUser:        envOrDefault("DB_USER", "postgres"),
		DBPassword:    envOrDefault("DB_PASSWORD", "postgres"),
		DBName:        envOrDefault("DB_NAME", "dispatch"),
		DBSslMode:     envOrDefault("DB_SSLMODE", "disable"),
		AMQPURL:       os.Getenv("AMQP_URL"),
		AMQPExchange:  envOrDefault("AMQP_EXCHANGE", "dispatch.events"),
		StagingPoints: os.Getenv("STAGING_POINTS"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func openAMQPPublisher(configs cmd.Config) (ports.EventPublisher, func(), error) {
	conn, err := amqp.Dial(configs.AMQPURL)
	if err != nil {
		return nil, nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	publisher, err := broadcast.NewAMQPPublisher(ch, configs.AMQPExchange)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, err
	}

	closeAll := func() {
		_ = ch.Close()
		_ = conn.Close()
	}
	return publisher, closeAll, nil
}
